package database

import (
	"context"
	"database/sql"
	"fmt"

	"ewaste-exchange-go/internal/models"
	"ewaste-exchange-go/internal/store"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AppendSettlement writes one entry to the settlement ledger. Entries use
// ULID ids so the ledger sorts chronologically by primary key. The ledger is
// append-only: nothing in this package updates or deletes a settlement row.
func (s *Service) AppendSettlement(ctx context.Context, params store.AppendSettlementParams) (*models.SettlementEntry, error) {
	if params.TxHash != "" {
		var existingId string
		err := s.db.QueryRowContext(ctx, queryCheckDuplicateSettlement, params.TxHash).Scan(&existingId)
		if err == nil {
			zap.L().Warn("Duplicate settlement transaction hash detected, skipping",
				zap.String("transaction_hash", params.TxHash),
				zap.String("existing_entry_id", existingId))
			return nil, fmt.Errorf("%w: transaction_hash %s already recorded", store.ErrDuplicateSettlement, params.TxHash)
		} else if err != sql.ErrNoRows {
			return nil, fmt.Errorf("failed to check for duplicate settlement: %w", err)
		}
	}

	entryId := ulid.Make().String()

	var confirmedAt sql.NullTime
	if !params.ConfirmedAt.IsZero() {
		confirmedAt = sql.NullTime{Time: params.ConfirmedAt, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, queryInsertSettlement,
		entryId, params.ItemId, string(params.Type),
		params.FromAddress, params.ToAddress,
		params.AmountRs.String(), params.AmountEth.String(), params.ExchangeRate.String(),
		params.TxHash, params.Status, confirmedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to append settlement entry: %w", err)
	}

	zap.L().Info("Settlement entry appended",
		zap.String("entry_id", entryId),
		zap.String("item_id", params.ItemId),
		zap.String("type", string(params.Type)),
		zap.String("amount_rs", params.AmountRs.String()),
		zap.String("amount_eth", params.AmountEth.String()),
		zap.String("tx_hash", params.TxHash),
		zap.String("status", params.Status))

	s.notify(store.TableSettlements)
	return s.getSettlement(ctx, entryId)
}

// ListSettlements returns the ledger in append order, optionally filtered to
// one item.
func (s *Service) ListSettlements(ctx context.Context, itemId string) ([]models.SettlementEntry, error) {
	var rows *sql.Rows
	var err error
	if itemId == "" {
		rows, err = s.db.QueryContext(ctx, queryListSettlements)
	} else {
		rows, err = s.db.QueryContext(ctx, queryListSettlementsByItem, itemId)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var entries []models.SettlementEntry
	for rows.Next() {
		entry, err := scanSettlement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating settlement rows: %w", err)
	}

	return entries, nil
}

func (s *Service) getSettlement(ctx context.Context, entryId string) (*models.SettlementEntry, error) {
	entry, err := scanSettlement(s.db.QueryRowContext(ctx, queryGetSettlement, entryId))
	if err != nil {
		return nil, fmt.Errorf("failed to get settlement entry: %w", err)
	}
	return entry, nil
}

func scanSettlement(row rowScanner) (*models.SettlementEntry, error) {
	var entry models.SettlementEntry
	var amountRsStr, amountEthStr, rateStr string
	var confirmedAt sql.NullTime

	err := row.Scan(&entry.Id, &entry.ItemId, &entry.Type,
		&entry.FromAddress, &entry.ToAddress,
		&amountRsStr, &amountEthStr, &rateStr,
		&entry.TxHash, &entry.Status, &entry.CreatedAt, &confirmedAt)
	if err != nil {
		return nil, err
	}

	if entry.AmountRs, err = decimal.NewFromString(amountRsStr); err != nil {
		return nil, fmt.Errorf("failed to parse amount_rs '%s': %w", amountRsStr, err)
	}
	if entry.AmountEth, err = decimal.NewFromString(amountEthStr); err != nil {
		return nil, fmt.Errorf("failed to parse amount_eth '%s': %w", amountEthStr, err)
	}
	if entry.ExchangeRate, err = decimal.NewFromString(rateStr); err != nil {
		return nil, fmt.Errorf("failed to parse exchange_rate '%s': %w", rateStr, err)
	}
	if confirmedAt.Valid {
		entry.ConfirmedAt = confirmedAt.Time
	}

	return &entry, nil
}
