package common

import (
	"context"
	"log"
	"strings"

	"ewaste-exchange-go/internal/database"
	"ewaste-exchange-go/internal/lifecycle"
	"ewaste-exchange-go/internal/models"
	"ewaste-exchange-go/internal/wallet"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// init loads environment variables from .env file if it exists
func init() {
	// Environment variables can also be set via other means (shell export,
	// docker, etc.), so a missing .env is fine.
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: No .env file found or unable to load it: %v\n", err)
	} else {
		log.Println("Loaded environment variables from .env file")
	}
}

type Services struct {
	Store  *database.Service
	Wallet wallet.Provider
	Engine *lifecycle.Engine
}

func InitializeLogger() (*zap.Logger, func()) {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	zap.ReplaceGlobals(logger)

	cleanup := func() {
		if err := logger.Sync(); err != nil {
			if !isIgnorableSyncError(err) {
				log.Printf("Failed to sync logger: %v\n", err)
			}
		}
	}

	return logger, cleanup
}

func InitializeServices(ctx context.Context, cfg *models.Config) (*Services, error) {
	dbService, err := database.NewService(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	provider := wallet.NewSimulator()
	engine := lifecycle.NewEngine(dbService, provider)

	zap.L().Info("Services initialized",
		zap.String("network", provider.Network()),
		zap.String("company_wallet", wallet.CompanyAddress))

	return &Services{
		Store:  dbService,
		Wallet: provider,
		Engine: engine,
	}, nil
}

// InitializeDatabaseOnly initializes just the database service without the
// wallet provider. Useful for read-only tools like financials and audit.
func InitializeDatabaseOnly(ctx context.Context, cfg *models.Config) (*database.Service, error) {
	dbService, err := database.NewService(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	return dbService, nil
}

func (cs *Services) Close() {
	if cs.Store != nil {
		cs.Store.Close()
	}
}

func isIgnorableSyncError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "sync /dev/stderr: inappropriate ioctl for device") ||
		strings.Contains(msg, "sync /dev/stdout: inappropriate ioctl for device")
}
