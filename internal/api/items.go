package api

import (
	"context"
	"errors"

	"ewaste-exchange-go/internal/lifecycle"
	"ewaste-exchange-go/internal/models"
	"ewaste-exchange-go/internal/store"

	"go.uber.org/zap"
)

// SubmitItem creates a new item record for a seller.
func (s *ExchangeService) SubmitItem(ctx context.Context, params lifecycle.SubmitItemParams) *models.SubmitResult {
	zap.L().Info("Submitting item",
		zap.String("seller_id", params.SellerId),
		zap.String("category", params.Category),
		zap.String("condition", params.Condition),
		zap.String("quoted_price", params.QuotedPrice.String()))

	item, err := s.engine.SubmitItem(ctx, params)
	if err != nil {
		zap.L().Error("Item submission failed",
			zap.String("seller_id", params.SellerId),
			zap.Error(err))
		return &models.SubmitResult{Success: false, Error: err.Error()}
	}

	return &models.SubmitResult{Success: true, Item: item}
}

// ProcessItem applies an official's processing decision. Conflicts and
// invalid transitions come back as failed results, never as success.
func (s *ExchangeService) ProcessItem(ctx context.Context, params lifecycle.ProcessItemParams) *models.ProcessResult {
	zap.L().Info("Processing item",
		zap.String("item_id", params.ItemId),
		zap.String("official_id", params.OfficialId),
		zap.String("decision", string(params.Decision)),
		zap.String("final_payout", params.FinalPayout.String()))

	item, entry, err := s.engine.ProcessItem(ctx, params)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrConflict):
			zap.L().Warn("Processing lost a commit race",
				zap.String("item_id", params.ItemId),
				zap.String("official_id", params.OfficialId))
		case errors.Is(err, store.ErrInvalidTransition):
			zap.L().Info("Processing rejected: item no longer awaiting valuation",
				zap.String("item_id", params.ItemId))
		default:
			zap.L().Error("Processing failed",
				zap.String("item_id", params.ItemId),
				zap.Error(err))
		}
		return &models.ProcessResult{Success: false, Error: err.Error()}
	}

	return &models.ProcessResult{Success: true, Item: item, Settlement: entry}
}

// PurchaseItem commits a buyer's purchase of a listed item.
func (s *ExchangeService) PurchaseItem(ctx context.Context, buyerId, itemId string) *models.PurchaseResult {
	zap.L().Info("Purchasing item",
		zap.String("item_id", itemId),
		zap.String("buyer_id", buyerId))

	item, entry, err := s.engine.PurchaseItem(ctx, buyerId, itemId)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrConflict):
			zap.L().Warn("Purchase lost a commit race",
				zap.String("item_id", itemId),
				zap.String("buyer_id", buyerId))
		case errors.Is(err, store.ErrInvalidTransition):
			zap.L().Info("Purchase rejected: item not listed for sale",
				zap.String("item_id", itemId))
		default:
			zap.L().Error("Purchase failed",
				zap.String("item_id", itemId),
				zap.Error(err))
		}
		return &models.PurchaseResult{Success: false, Error: err.Error()}
	}

	return &models.PurchaseResult{Success: true, Item: item, Settlement: entry}
}

// VerifyWallet validates and stores a profile's wallet address.
func (s *ExchangeService) VerifyWallet(ctx context.Context, profileId, address string) (*models.Profile, error) {
	return s.engine.VerifyWallet(ctx, profileId, address)
}
