package database

import (
	"context"
	"database/sql"
	"fmt"

	"ewaste-exchange-go/internal/models"
	"ewaste-exchange-go/internal/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateItem inserts a new item record in awaiting_valuation.
func (s *Service) CreateItem(ctx context.Context, params store.SubmitItemParams) (*models.Item, error) {
	itemId := uuid.New().String()

	_, err := s.db.ExecContext(ctx, queryInsertItem,
		itemId, params.Category, params.Condition,
		params.QuotedPrice.String(), params.QuotedPriceEth.String(),
		string(models.StatusAwaitingValuation), models.BranchNone, params.SellerId)
	if err != nil {
		return nil, fmt.Errorf("failed to insert item: %w", err)
	}

	zap.L().Info("Item record created",
		zap.String("item_id", itemId),
		zap.String("category", params.Category),
		zap.String("seller_id", params.SellerId),
		zap.String("quoted_price", params.QuotedPrice.String()))

	s.notify(store.TableItems)
	return s.GetItem(ctx, itemId)
}

// GetItem returns the item with its media paths, or ErrItemNotFound.
func (s *Service) GetItem(ctx context.Context, itemId string) (*models.Item, error) {
	row := s.db.QueryRowContext(ctx, queryGetItem, itemId)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, queryGetItemMedia, itemId)
	if err != nil {
		return nil, fmt.Errorf("failed to get item media: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, fmt.Errorf("failed to scan media path: %w", err)
		}
		item.MediaPaths = append(item.MediaPaths, path)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating media rows: %w", err)
	}

	return item, nil
}

// ListItems returns all items, or only those in the given status.
func (s *Service) ListItems(ctx context.Context, status models.ItemStatus) ([]models.Item, error) {
	var rows *sql.Rows
	var err error
	if status == "" {
		rows, err = s.db.QueryContext(ctx, queryListItems)
	} else {
		rows, err = s.db.QueryContext(ctx, queryListItemsByStatus, string(status))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return collectItems(rows)
}

// ListItemsBySeller returns every item a seller has submitted.
func (s *Service) ListItemsBySeller(ctx context.Context, sellerId string) ([]models.Item, error) {
	rows, err := s.db.QueryContext(ctx, queryListItemsBySeller, sellerId)
	if err != nil {
		return nil, fmt.Errorf("failed to list items by seller: %w", err)
	}
	return collectItems(rows)
}

// ApplyDecision commits a processing decision, conditional on the item still
// being in awaiting_valuation. A displaced expectation yields ErrConflict and
// leaves the record untouched.
func (s *Service) ApplyDecision(ctx context.Context, params store.ApplyDecisionParams) (*models.Item, error) {
	result, err := s.db.ExecContext(ctx, queryApplyDecision,
		params.FinalPayout.String(), params.FinalPayoutEth.String(),
		params.RepairCost.String(), params.RepairCostEth.String(),
		params.SellingPrice.String(), params.SellingPriceEth.String(),
		string(params.Status), params.Branch, params.OfficialId,
		params.ItemId)
	if err != nil {
		return nil, fmt.Errorf("failed to apply decision: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		if _, getErr := s.GetItem(ctx, params.ItemId); getErr != nil {
			return nil, getErr
		}
		return nil, fmt.Errorf("decision commit failed for item %s - %w", params.ItemId, store.ErrConflict)
	}

	zap.L().Info("Processing decision committed",
		zap.String("item_id", params.ItemId),
		zap.String("decision", string(params.Decision)),
		zap.String("status", string(params.Status)),
		zap.String("official_id", params.OfficialId),
		zap.String("final_payout", params.FinalPayout.String()))

	s.notify(store.TableItems)
	return s.GetItem(ctx, params.ItemId)
}

// MarkSold commits a purchase, conditional on the item still being listed.
func (s *Service) MarkSold(ctx context.Context, itemId, buyerId string) (*models.Item, error) {
	result, err := s.db.ExecContext(ctx, queryMarkSold, buyerId, itemId)
	if err != nil {
		return nil, fmt.Errorf("failed to mark item sold: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		if _, getErr := s.GetItem(ctx, itemId); getErr != nil {
			return nil, getErr
		}
		return nil, fmt.Errorf("purchase commit failed for item %s - %w", itemId, store.ErrConflict)
	}

	zap.L().Info("Item sold",
		zap.String("item_id", itemId),
		zap.String("buyer_id", buyerId))

	s.notify(store.TableItems)
	return s.GetItem(ctx, itemId)
}

// AttachMedia records a media reference against an item.
func (s *Service) AttachMedia(ctx context.Context, itemId, path string) error {
	if _, err := s.GetItem(ctx, itemId); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, queryInsertMedia, uuid.New().String(), itemId, path); err != nil {
		return fmt.Errorf("failed to attach media: %w", err)
	}
	s.notify(store.TableItems)
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*models.Item, error) {
	var item models.Item
	var quotedStr, quotedEthStr, payoutStr, payoutEthStr string
	var repairStr, repairEthStr, sellingStr, sellingEthStr string

	err := row.Scan(&item.Id, &item.Category, &item.Condition,
		&quotedStr, &quotedEthStr, &payoutStr, &payoutEthStr,
		&repairStr, &repairEthStr, &sellingStr, &sellingEthStr,
		&item.Status, &item.Branch, &item.SellerId,
		&item.BuyerId, &item.ProcessedBy, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}

	fields := []struct {
		dst *decimal.Decimal
		src string
	}{
		{&item.SellerQuotedPrice, quotedStr},
		{&item.SellerQuotedPriceEth, quotedEthStr},
		{&item.FinalPayout, payoutStr},
		{&item.FinalPayoutEth, payoutEthStr},
		{&item.RepairCost, repairStr},
		{&item.RepairCostEth, repairEthStr},
		{&item.SellingPrice, sellingStr},
		{&item.SellingPriceEth, sellingEthStr},
	}
	for _, f := range fields {
		*f.dst, err = decimal.NewFromString(f.src)
		if err != nil {
			return nil, fmt.Errorf("failed to parse amount '%s': %w", f.src, err)
		}
	}

	return &item, nil
}

func collectItems(rows *sql.Rows) ([]models.Item, error) {
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var items []models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		zap.L().Error("Error during item row iteration", zap.Error(err))
		return nil, fmt.Errorf("error iterating item rows: %w", err)
	}

	return items, nil
}
