package api

import (
	"context"
	"fmt"

	"ewaste-exchange-go/internal/database"
	"ewaste-exchange-go/internal/lifecycle"
)

// ExchangeService provides minimal API
type ExchangeService struct {
	engine *lifecycle.Engine
	db     *database.Service
}

func NewExchangeService(engine *lifecycle.Engine, db *database.Service) *ExchangeService {
	return &ExchangeService{
		engine: engine,
		db:     db,
	}
}

func (s *ExchangeService) HealthCheck(ctx context.Context) error {
	_, err := s.db.ListProfiles(ctx)
	if err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	return nil
}
