package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const exchangeRateKey = "rs_to_eth_rate"

// DefaultExchangeRate is the Rs-per-ETH rate used when system configuration
// has not been seeded yet.
var DefaultExchangeRate = decimal.NewFromInt(250000)

// ExchangeRate returns the current Rs-per-ETH rate from system configuration.
// A missing row falls back to the default rather than failing; the rate is
// read fresh on every call since officials may change it between events.
func (s *Service) ExchangeRate(ctx context.Context) (decimal.Decimal, error) {
	var rateStr string
	err := s.db.QueryRowContext(ctx, queryGetConfigValue, exchangeRateKey).Scan(&rateStr)
	if err == sql.ErrNoRows {
		zap.L().Warn("Exchange rate not configured, using default",
			zap.String("default", DefaultExchangeRate.String()))
		return DefaultExchangeRate, nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read exchange rate: %w", err)
	}

	rate, err := decimal.NewFromString(rateStr)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse exchange rate '%s': %w", rateStr, err)
	}
	return rate, nil
}

// SetExchangeRate updates the Rs-per-ETH rate. Values already recorded on
// items and settlements keep the rate they were converted at.
func (s *Service) SetExchangeRate(ctx context.Context, rate decimal.Decimal) error {
	if rate.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("exchange rate must be positive, got %s", rate.String())
	}

	if _, err := s.db.ExecContext(ctx, querySetConfigValue, exchangeRateKey, rate.String()); err != nil {
		return fmt.Errorf("failed to set exchange rate: %w", err)
	}

	zap.L().Info("Exchange rate updated", zap.String("rs_per_eth", rate.String()))
	return nil
}
