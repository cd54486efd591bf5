package api

import (
	"context"
	"fmt"

	"ewaste-exchange-go/internal/finance"
	"ewaste-exchange-go/internal/models"
)

// Financials aggregates revenue, cost and profit over a fresh snapshot of
// all item records.
func (s *ExchangeService) Financials(ctx context.Context) (finance.Summary, error) {
	items, err := s.db.ListItems(ctx, "")
	if err != nil {
		return finance.Summary{}, fmt.Errorf("failed to snapshot items: %w", err)
	}
	return finance.Aggregate(items), nil
}

// AuditTrail returns the settlement ledger, optionally scoped to one item.
func (s *ExchangeService) AuditTrail(ctx context.Context, itemId string) ([]models.SettlementEntry, error) {
	return s.db.ListSettlements(ctx, itemId)
}
