package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettlementType distinguishes payouts to sellers from purchase payments
// received from buyers.
type SettlementType string

const (
	SettlementPayout   SettlementType = "payout"
	SettlementPurchase SettlementType = "purchase"
)

// Settlement statuses.
const (
	SettlementPending   = "pending"
	SettlementConfirmed = "confirmed"
)

// SettlementEntry is one row of the append-only settlement ledger. Entries
// are written by the lifecycle engine when a simulated crypto transfer is
// executed and are never mutated or deleted afterwards. The item record
// stays the source of truth for current state; the ledger exists for audit
// reconstruction.
type SettlementEntry struct {
	Id           string          `db:"id"`
	ItemId       string          `db:"item_id"`
	Type         SettlementType  `db:"transaction_type"`
	FromAddress  string          `db:"from_address"`
	ToAddress    string          `db:"to_address"`
	AmountRs     decimal.Decimal `db:"amount_rs"`
	AmountEth    decimal.Decimal `db:"amount_eth"`
	ExchangeRate decimal.Decimal `db:"exchange_rate"`
	TxHash       string          `db:"transaction_hash"`
	Status       string          `db:"status"`
	CreatedAt    time.Time       `db:"created_at"`
	ConfirmedAt  time.Time       `db:"confirmed_at"`
}
