package database

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"ewaste-exchange-go/internal/models"
	"ewaste-exchange-go/internal/store"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// Compile-time check: *Service must satisfy store.ExchangeStore.
var _ store.ExchangeStore = (*Service)(nil)

type Service struct {
	db *sql.DB

	mu      sync.Mutex
	subs    map[string]map[int]func()
	nextSub int
}

func NewService(ctx context.Context, cfg models.DatabaseConfig) (*Service, error) {
	// Validate configuration
	if cfg.Path == "" {
		return nil, fmt.Errorf("database path cannot be empty")
	}
	if cfg.MaxOpenConns <= 0 {
		return nil, fmt.Errorf("max open connections must be positive, got %d", cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns < 0 {
		return nil, fmt.Errorf("max idle connections cannot be negative, got %d", cfg.MaxIdleConns)
	}
	if cfg.PingTimeout <= 0 {
		return nil, fmt.Errorf("ping timeout must be positive, got %v", cfg.PingTimeout)
	}

	zap.L().Info("Opening SQLite database", zap.String("file", cfg.Path))
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=1000")
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}

	// Set connection timeouts and limits
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// Test connection with timeout
	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, closeErr
		}
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	service := &Service{
		db:   db,
		subs: make(map[string]map[int]func()),
	}
	if err := service.initSchema(cfg.CreateDemoProfiles); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, closeErr
		}
		return nil, fmt.Errorf("unable to initialize schema: %w", err)
	}

	zap.L().Info("Database service initialized successfully")
	return service, nil
}

func (s *Service) Close() {
	if err := s.db.Close(); err != nil {
		zap.L().Warn("Failed to close database connection", zap.Error(err))
	}
}

func (s *Service) initSchema(createDemoProfiles bool) error {
	schema := `
	-- Actor profiles: sellers/buyers ("user") and processing staff ("official")
	CREATE TABLE IF NOT EXISTS profiles (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		role TEXT NOT NULL DEFAULT 'user',
		wallet_address TEXT NOT NULL DEFAULT '',
		is_crypto_verified BOOLEAN NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_profiles_email ON profiles(email);
	CREATE INDEX IF NOT EXISTS idx_profiles_role ON profiles(role);

	-- Item records: permanent audit trail, rows are never deleted.
	-- Monetary columns are stored as TEXT to preserve decimal precision.
	CREATE TABLE IF NOT EXISTS items (
		id TEXT PRIMARY KEY,
		category TEXT NOT NULL,
		condition TEXT NOT NULL,
		seller_quoted_price TEXT NOT NULL,
		seller_quoted_price_eth TEXT NOT NULL,
		final_payout TEXT NOT NULL DEFAULT '0',
		final_payout_eth TEXT NOT NULL DEFAULT '0',
		repair_cost TEXT NOT NULL DEFAULT '0',
		repair_cost_eth TEXT NOT NULL DEFAULT '0',
		selling_price TEXT NOT NULL DEFAULT '0',
		selling_price_eth TEXT NOT NULL DEFAULT '0',
		status TEXT NOT NULL,
		branch TEXT NOT NULL DEFAULT 'N/A',
		seller_id TEXT NOT NULL REFERENCES profiles(id),
		buyer_id TEXT NOT NULL DEFAULT '',
		processed_by TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_items_status ON items(status);
	CREATE INDEX IF NOT EXISTS idx_items_seller ON items(seller_id);
	CREATE INDEX IF NOT EXISTS idx_items_created_at ON items(created_at);

	-- Photo/video attachments, referenced by opaque path
	CREATE TABLE IF NOT EXISTS item_media (
		id TEXT PRIMARY KEY,
		item_id TEXT NOT NULL REFERENCES items(id),
		path TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_item_media_item ON item_media(item_id);

	-- Settlement ledger (append-only audit trail of simulated payments)
	CREATE TABLE IF NOT EXISTS crypto_transactions (
		id TEXT PRIMARY KEY,
		item_id TEXT NOT NULL,
		transaction_type TEXT NOT NULL,
		from_address TEXT NOT NULL,
		to_address TEXT NOT NULL,
		amount_rs TEXT NOT NULL,
		amount_eth TEXT NOT NULL,
		exchange_rate TEXT NOT NULL,
		transaction_hash TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		confirmed_at TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_crypto_tx_item ON crypto_transactions(item_id);
	CREATE INDEX IF NOT EXISTS idx_crypto_tx_hash ON crypto_transactions(transaction_hash);
	CREATE INDEX IF NOT EXISTS idx_crypto_tx_status ON crypto_transactions(status);

	-- Mutable system configuration (exchange rate)
	CREATE TABLE IF NOT EXISTS system_config (
		config_key TEXT PRIMARY KEY,
		config_value TEXT NOT NULL
	);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	// Seed demo profiles for local testing if configured to do so
	if createDemoProfiles {
		profiles := []struct {
			id    string
			name  string
			email string
			role  string
		}{
			{uuid.New().String(), "Asha Perera", "asha.perera@example.com", models.RoleUser},
			{uuid.New().String(), "Ravi Fernando", "ravi.fernando@example.com", models.RoleUser},
			{uuid.New().String(), "Nadia Silva", "nadia.silva@example.com", models.RoleOfficial},
		}

		for _, p := range profiles {
			if _, err := s.db.Exec(queryInsertProfile, p.id, p.name, p.email, p.role); err != nil {
				zap.L().Error("Failed to insert demo profile", zap.String("name", p.name), zap.Error(err))
			} else {
				zap.L().Info("Demo profile created",
					zap.String("id", p.id),
					zap.String("name", p.name),
					zap.String("role", p.role))
			}
		}
	} else {
		zap.L().Info("Skipping demo profile creation (CREATE_DEMO_PROFILES=false)")
	}

	return nil
}

// Subscribe registers fn to run after every committed write to the given
// table. The returned cancel function removes the subscription. Callbacks
// run on their own goroutines so a slow subscriber never blocks a writer.
func (s *Service) Subscribe(table string, fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.subs[table] == nil {
		s.subs[table] = make(map[int]func())
	}
	id := s.nextSub
	s.nextSub++
	s.subs[table][id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs[table], id)
	}
}

func (s *Service) notify(table string) {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.subs[table]))
	for _, fn := range s.subs[table] {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		go fn()
	}
}
