package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemStatus is the lifecycle state of an item. Transitions are monotonic:
// awaiting_valuation -> {recycled, ready_to_sell, scrapped}, ready_to_sell -> sold.
type ItemStatus string

const (
	StatusAwaitingValuation ItemStatus = "awaiting_valuation"
	StatusReadyToSell       ItemStatus = "ready_to_sell"
	StatusSold              ItemStatus = "sold"
	StatusRecycled          ItemStatus = "recycled"
	StatusScrapped          ItemStatus = "scrapped"
)

// Decision is an official's processing determination for a submitted item.
type Decision string

const (
	DecisionRecycle   Decision = "recycle"
	DecisionRefurbish Decision = "refurbish"
	DecisionScrap     Decision = "scrap"
)

// Human-readable branch labels recorded on the item at processing time.
const (
	BranchNone      = "N/A"
	BranchRecycle   = "Recycle"
	BranchRefurbish = "Refurbish & Sell"
	BranchScrap     = "Scrap/Not Usable"
)

// Item conditions as reported by the seller.
const (
	ConditionWorking    = "Working"
	ConditionRepairable = "Repairable"
	ConditionScrap      = "Scrap"
)

// RecycleResaleValue is the fixed resale value of a recycled item in Rs.
// Recycled material has a standardized market value, not a negotiated one.
var RecycleResaleValue = decimal.NewFromInt(150)

// Item represents one piece of e-waste and its full financial and state
// history. Items are never deleted; they remain as a permanent audit record.
// Every Rs amount carries an ETH counterpart frozen at the exchange rate in
// effect when the value was set.
type Item struct {
	Id                   string          `db:"id"`
	Category             string          `db:"category"`
	Condition            string          `db:"condition"`
	SellerQuotedPrice    decimal.Decimal `db:"seller_quoted_price"`
	SellerQuotedPriceEth decimal.Decimal `db:"seller_quoted_price_eth"`
	FinalPayout          decimal.Decimal `db:"final_payout"`
	FinalPayoutEth       decimal.Decimal `db:"final_payout_eth"`
	RepairCost           decimal.Decimal `db:"repair_cost"`
	RepairCostEth        decimal.Decimal `db:"repair_cost_eth"`
	SellingPrice         decimal.Decimal `db:"selling_price"`
	SellingPriceEth      decimal.Decimal `db:"selling_price_eth"`
	Status               ItemStatus      `db:"status"`
	Branch               string          `db:"branch"`
	SellerId             string          `db:"seller_id"`
	BuyerId              string          `db:"buyer_id"`
	ProcessedBy          string          `db:"processed_by"`
	MediaPaths           []string        `db:"-"`
	CreatedAt            time.Time       `db:"created_at"`
	UpdatedAt            time.Time       `db:"updated_at"`
}

// Terminal reports whether the item can undergo no further transitions.
func (i *Item) Terminal() bool {
	switch i.Status {
	case StatusSold, StatusRecycled, StatusScrapped:
		return true
	}
	return false
}

// ValidDecision reports whether d is one of the enumerated processing decisions.
func ValidDecision(d Decision) bool {
	switch d {
	case DecisionRecycle, DecisionRefurbish, DecisionScrap:
		return true
	}
	return false
}
