package store

import (
	"context"
	"errors"
	"time"

	"ewaste-exchange-go/internal/models"

	"github.com/shopspring/decimal"
)

// Sentinel errors shared across all backend implementations.
var (
	ErrItemNotFound        = errors.New("item not found")
	ErrProfileNotFound     = errors.New("profile not found")
	ErrInvalidTransition   = errors.New("invalid lifecycle transition")
	ErrInvalidDecision     = errors.New("invalid processing decision")
	ErrValidation          = errors.New("validation failed")
	ErrConflict            = errors.New("concurrent modification detected")
	ErrWalletNotVerified   = errors.New("wallet not verified")
	ErrDuplicateSettlement = errors.New("duplicate settlement entry")
)

// Tables that can be watched via Subscribe.
const (
	TableItems       = "items"
	TableProfiles    = "profiles"
	TableSettlements = "crypto_transactions"
)

// SubmitItemParams contains the parameters for creating a new item record.
type SubmitItemParams struct {
	SellerId       string
	Category       string
	Condition      string
	QuotedPrice    decimal.Decimal
	QuotedPriceEth decimal.Decimal
}

// ApplyDecisionParams captures the full effect of a processing decision.
// The commit is conditional on the item still being in awaiting_valuation.
type ApplyDecisionParams struct {
	ItemId          string
	OfficialId      string
	Decision        models.Decision
	Branch          string
	Status          models.ItemStatus
	FinalPayout     decimal.Decimal
	FinalPayoutEth  decimal.Decimal
	RepairCost      decimal.Decimal
	RepairCostEth   decimal.Decimal
	SellingPrice    decimal.Decimal
	SellingPriceEth decimal.Decimal
}

// AppendSettlementParams contains the parameters for one settlement ledger entry.
type AppendSettlementParams struct {
	ItemId       string
	Type         models.SettlementType
	FromAddress  string
	ToAddress    string
	AmountRs     decimal.Decimal
	AmountEth    decimal.Decimal
	ExchangeRate decimal.Decimal
	TxHash       string
	Status       string
	ConfirmedAt  time.Time
}

// ExchangeStore defines the contract that every backend must satisfy.
// Writes to a given item are serialized by conditional-status commits
// (ApplyDecision, MarkSold); reads never block.
type ExchangeStore interface {
	// --- Items ---
	CreateItem(ctx context.Context, params SubmitItemParams) (*models.Item, error)
	GetItem(ctx context.Context, itemId string) (*models.Item, error)
	ListItems(ctx context.Context, status models.ItemStatus) ([]models.Item, error)
	ListItemsBySeller(ctx context.Context, sellerId string) ([]models.Item, error)
	ApplyDecision(ctx context.Context, params ApplyDecisionParams) (*models.Item, error)
	MarkSold(ctx context.Context, itemId, buyerId string) (*models.Item, error)
	AttachMedia(ctx context.Context, itemId, path string) error

	// --- Profiles ---
	CreateProfile(ctx context.Context, profileId, name, email, role string) (*models.Profile, error)
	GetProfile(ctx context.Context, profileId string) (*models.Profile, error)
	GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error)
	ListProfiles(ctx context.Context) ([]models.Profile, error)
	SaveWalletAddress(ctx context.Context, profileId, address string, verified bool) (*models.Profile, error)

	// --- Settlement ledger (append-only) ---
	AppendSettlement(ctx context.Context, params AppendSettlementParams) (*models.SettlementEntry, error)
	ListSettlements(ctx context.Context, itemId string) ([]models.SettlementEntry, error)

	// --- Exchange-rate configuration ---
	ExchangeRate(ctx context.Context) (decimal.Decimal, error)
	SetExchangeRate(ctx context.Context, rate decimal.Decimal) error

	// --- Change notification ---
	Subscribe(table string, fn func()) (cancel func())

	// --- Lifecycle ---
	Close()
}
