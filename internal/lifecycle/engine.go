package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ewaste-exchange-go/internal/currency"
	"ewaste-exchange-go/internal/models"
	"ewaste-exchange-go/internal/store"
	"ewaste-exchange-go/internal/wallet"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Engine enforces the item lifecycle state machine and runs the settlement
// side effects of each transition. Terminal transitions (processing,
// purchase) commit through the store's conditional updates, so at most one
// of N concurrent actors wins; losers observe store.ErrConflict.
//
// The simulate-payment-then-commit sequence is not atomic. When a confirmed
// simulated payment is followed by a lost commit race, the engine appends
// the payment entry plus a compensating reversal to the settlement ledger,
// so the audit trail nets to zero instead of silently dropping the payment.
type Engine struct {
	store  store.ExchangeStore
	wallet wallet.Provider
}

func NewEngine(st store.ExchangeStore, provider wallet.Provider) *Engine {
	return &Engine{
		store:  st,
		wallet: provider,
	}
}

// SubmitItemParams contains a seller's submission.
type SubmitItemParams struct {
	SellerId    string
	Category    string
	Condition   string
	QuotedPrice decimal.Decimal
	MediaPaths  []string
}

// SubmitItem creates a new item record in awaiting_valuation.
func (e *Engine) SubmitItem(ctx context.Context, params SubmitItemParams) (*models.Item, error) {
	if params.SellerId == "" {
		return nil, fmt.Errorf("seller id is required - %w", store.ErrValidation)
	}
	if params.Category == "" {
		return nil, fmt.Errorf("category is required - %w", store.ErrValidation)
	}
	if params.Condition == "" {
		return nil, fmt.Errorf("condition is required - %w", store.ErrValidation)
	}
	if params.QuotedPrice.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("quoted price must be positive, got %s - %w",
			params.QuotedPrice.String(), store.ErrValidation)
	}

	if _, err := e.store.GetProfile(ctx, params.SellerId); err != nil {
		return nil, err
	}

	rate, err := e.store.ExchangeRate(ctx)
	if err != nil {
		return nil, err
	}

	item, err := e.store.CreateItem(ctx, store.SubmitItemParams{
		SellerId:       params.SellerId,
		Category:       params.Category,
		Condition:      params.Condition,
		QuotedPrice:    params.QuotedPrice,
		QuotedPriceEth: currency.RsToEth(params.QuotedPrice, rate),
	})
	if err != nil {
		return nil, err
	}

	for _, path := range params.MediaPaths {
		if err := e.store.AttachMedia(ctx, item.Id, path); err != nil {
			return nil, err
		}
	}

	return e.store.GetItem(ctx, item.Id)
}

// ProcessItemParams contains an official's processing decision. RepairCost
// and SellingPrice are only read for the refurbish decision.
type ProcessItemParams struct {
	OfficialId   string
	ItemId       string
	Decision     models.Decision
	FinalPayout  decimal.Decimal
	RepairCost   decimal.Decimal
	SellingPrice decimal.Decimal
}

// ProcessItem applies a processing decision to an item in awaiting_valuation:
// the seller is paid out via a simulated transfer, the decision branch fixes
// the financial fields, and the new status is committed conditionally.
//
// Input errors (invalid decision, negative amounts) and the wallet
// verification check are rejected before any external call is made.
func (e *Engine) ProcessItem(ctx context.Context, params ProcessItemParams) (*models.Item, *models.SettlementEntry, error) {
	if !models.ValidDecision(params.Decision) {
		return nil, nil, fmt.Errorf("decision %q - %w", params.Decision, store.ErrInvalidDecision)
	}
	if params.FinalPayout.LessThanOrEqual(decimal.Zero) {
		return nil, nil, fmt.Errorf("final payout must be positive, got %s - %w",
			params.FinalPayout.String(), store.ErrValidation)
	}
	if params.RepairCost.IsNegative() || params.SellingPrice.IsNegative() {
		return nil, nil, fmt.Errorf("repair cost and selling price cannot be negative - %w", store.ErrValidation)
	}
	if params.Decision == models.DecisionRefurbish && params.SellingPrice.LessThanOrEqual(decimal.Zero) {
		return nil, nil, fmt.Errorf("selling price is required for refurbish - %w", store.ErrValidation)
	}

	item, err := e.store.GetItem(ctx, params.ItemId)
	if err != nil {
		return nil, nil, err
	}
	if item.Status != models.StatusAwaitingValuation {
		return nil, nil, fmt.Errorf("item %s already processed (status %s) - %w",
			item.Id, item.Status, store.ErrInvalidTransition)
	}

	official, err := e.store.GetProfile(ctx, params.OfficialId)
	if err != nil {
		return nil, nil, err
	}
	if official.Role != models.RoleOfficial {
		return nil, nil, fmt.Errorf("profile %s is not an official - %w", official.Id, store.ErrValidation)
	}

	seller, err := e.store.GetProfile(ctx, item.SellerId)
	if err != nil {
		return nil, nil, err
	}
	if err := requireVerifiedWallet(seller); err != nil {
		return nil, nil, err
	}

	rate, err := e.store.ExchangeRate(ctx)
	if err != nil {
		return nil, nil, err
	}

	// Branch effects. Recycled material resells at the fixed market value;
	// scrap recovers nothing.
	decisionParams := store.ApplyDecisionParams{
		ItemId:         item.Id,
		OfficialId:     official.Id,
		Decision:       params.Decision,
		FinalPayout:    params.FinalPayout,
		FinalPayoutEth: currency.RsToEth(params.FinalPayout, rate),
	}
	switch params.Decision {
	case models.DecisionRecycle:
		decisionParams.Status = models.StatusRecycled
		decisionParams.Branch = models.BranchRecycle
		decisionParams.SellingPrice = models.RecycleResaleValue
		decisionParams.SellingPriceEth = currency.RsToEth(models.RecycleResaleValue, rate)
	case models.DecisionRefurbish:
		decisionParams.Status = models.StatusReadyToSell
		decisionParams.Branch = models.BranchRefurbish
		decisionParams.RepairCost = params.RepairCost
		decisionParams.RepairCostEth = currency.RsToEth(params.RepairCost, rate)
		decisionParams.SellingPrice = params.SellingPrice
		decisionParams.SellingPriceEth = currency.RsToEth(params.SellingPrice, rate)
	case models.DecisionScrap:
		decisionParams.Status = models.StatusScrapped
		decisionParams.Branch = models.BranchScrap
	}

	// Simulated payout precedes the commit; see the saga note on Engine.
	txHash, err := e.wallet.AuthorizeTransfer(ctx, wallet.CompanyAddress, seller.WalletAddress, decisionParams.FinalPayoutEth)
	if err != nil {
		return nil, nil, fmt.Errorf("payout transfer failed: %w", err)
	}

	updated, err := e.store.ApplyDecision(ctx, decisionParams)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			e.compensate(ctx, item.Id, models.SettlementPayout,
				wallet.CompanyAddress, seller.WalletAddress,
				params.FinalPayout, decisionParams.FinalPayoutEth, rate, txHash)
		}
		return nil, nil, err
	}

	entry, err := e.store.AppendSettlement(ctx, store.AppendSettlementParams{
		ItemId:       item.Id,
		Type:         models.SettlementPayout,
		FromAddress:  wallet.CompanyAddress,
		ToAddress:    seller.WalletAddress,
		AmountRs:     params.FinalPayout,
		AmountEth:    decisionParams.FinalPayoutEth,
		ExchangeRate: rate,
		TxHash:       txHash,
		Status:       models.SettlementConfirmed,
		ConfirmedAt:  time.Now(),
	})
	if err != nil {
		return nil, nil, err
	}

	return updated, entry, nil
}

// PurchaseItem commits a buyer's purchase of a listed item. The purchase
// payment is simulated from the buyer's wallet to the company wallet at the
// ETH price frozen when the item was processed.
func (e *Engine) PurchaseItem(ctx context.Context, buyerId, itemId string) (*models.Item, *models.SettlementEntry, error) {
	if buyerId == "" {
		return nil, nil, fmt.Errorf("buyer id is required - %w", store.ErrValidation)
	}

	item, err := e.store.GetItem(ctx, itemId)
	if err != nil {
		return nil, nil, err
	}
	if item.Status != models.StatusReadyToSell {
		return nil, nil, fmt.Errorf("item %s is not listed for sale (status %s) - %w",
			item.Id, item.Status, store.ErrInvalidTransition)
	}

	buyer, err := e.store.GetProfile(ctx, buyerId)
	if err != nil {
		return nil, nil, err
	}
	if buyer.Id == item.SellerId {
		return nil, nil, fmt.Errorf("buyer cannot purchase their own item - %w", store.ErrValidation)
	}
	if err := requireVerifiedWallet(buyer); err != nil {
		return nil, nil, err
	}

	// The ledger entry carries the rate the listing was frozen at, not the
	// current one, so AmountRs and AmountEth stay consistent with it.
	rate := decimal.Zero
	if item.SellingPriceEth.IsPositive() {
		rate = item.SellingPrice.Div(item.SellingPriceEth)
	}

	txHash, err := e.wallet.AuthorizeTransfer(ctx, buyer.WalletAddress, wallet.CompanyAddress, item.SellingPriceEth)
	if err != nil {
		return nil, nil, fmt.Errorf("purchase transfer failed: %w", err)
	}

	updated, err := e.store.MarkSold(ctx, item.Id, buyer.Id)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			e.compensate(ctx, item.Id, models.SettlementPurchase,
				buyer.WalletAddress, wallet.CompanyAddress,
				item.SellingPrice, item.SellingPriceEth, rate, txHash)
		}
		return nil, nil, err
	}

	entry, err := e.store.AppendSettlement(ctx, store.AppendSettlementParams{
		ItemId:       item.Id,
		Type:         models.SettlementPurchase,
		FromAddress:  buyer.WalletAddress,
		ToAddress:    wallet.CompanyAddress,
		AmountRs:     item.SellingPrice,
		AmountEth:    item.SellingPriceEth,
		ExchangeRate: rate,
		TxHash:       txHash,
		Status:       models.SettlementConfirmed,
		ConfirmedAt:  time.Now(),
	})
	if err != nil {
		return nil, nil, err
	}

	return updated, entry, nil
}

// VerifyWallet validates and stores an actor's wallet address, marking the
// profile crypto-verified. A malformed address is rejected and blocks every
// operation that requires wallet verification.
func (e *Engine) VerifyWallet(ctx context.Context, profileId, address string) (*models.Profile, error) {
	if !wallet.ValidAddress(address) {
		return nil, fmt.Errorf("malformed wallet address %q - %w", address, store.ErrValidation)
	}
	return e.store.SaveWalletAddress(ctx, profileId, address, true)
}

// compensate records the already-confirmed payment and its reversal after a
// lost commit race. Both entries land in the ledger so the audit trail shows
// the full round-trip instead of an orphaned payment.
func (e *Engine) compensate(ctx context.Context, itemId string, settlementType models.SettlementType,
	fromAddress, toAddress string, amountRs, amountEth, rate decimal.Decimal, txHash string) {

	zap.L().Warn("Lost commit race after confirmed payment, recording compensating reversal",
		zap.String("item_id", itemId),
		zap.String("type", string(settlementType)),
		zap.String("tx_hash", txHash),
		zap.String("amount_rs", amountRs.String()))

	now := time.Now()
	_, err := e.store.AppendSettlement(ctx, store.AppendSettlementParams{
		ItemId:       itemId,
		Type:         settlementType,
		FromAddress:  fromAddress,
		ToAddress:    toAddress,
		AmountRs:     amountRs,
		AmountEth:    amountEth,
		ExchangeRate: rate,
		TxHash:       txHash,
		Status:       models.SettlementConfirmed,
		ConfirmedAt:  now,
	})
	if err != nil && !errors.Is(err, store.ErrDuplicateSettlement) {
		zap.L().Error("Failed to record payment entry for reversal", zap.Error(err))
	}

	_, err = e.store.AppendSettlement(ctx, store.AppendSettlementParams{
		ItemId:       itemId,
		Type:         settlementType,
		FromAddress:  toAddress,
		ToAddress:    fromAddress,
		AmountRs:     amountRs,
		AmountEth:    amountEth,
		ExchangeRate: rate,
		TxHash:       txHash + "-reversal",
		Status:       models.SettlementConfirmed,
		ConfirmedAt:  now,
	})
	if err != nil && !errors.Is(err, store.ErrDuplicateSettlement) {
		zap.L().Error("Failed to record compensating reversal", zap.Error(err))
	}
}

func requireVerifiedWallet(p *models.Profile) error {
	if !p.CryptoVerified || !wallet.ValidAddress(p.WalletAddress) {
		return fmt.Errorf("profile %s has no verified wallet - %w", p.Id, store.ErrWalletNotVerified)
	}
	return nil
}
