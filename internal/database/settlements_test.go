package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"ewaste-exchange-go/internal/models"
	"ewaste-exchange-go/internal/store"

	"github.com/shopspring/decimal"
)

func payoutParams(itemId, txHash string) store.AppendSettlementParams {
	return store.AppendSettlementParams{
		ItemId:       itemId,
		Type:         models.SettlementPayout,
		FromAddress:  "0xd1b6d088b8f3e291ced23419302f15b4f1f88530",
		ToAddress:    "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		AmountRs:     decimal.NewFromInt(500),
		AmountEth:    decimal.NewFromFloat(0.002),
		ExchangeRate: decimal.NewFromInt(250000),
		TxHash:       txHash,
		Status:       models.SettlementConfirmed,
		ConfirmedAt:  time.Now(),
	}
}

func TestAppendSettlement(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()
	ctx := context.Background()

	entry, err := service.AppendSettlement(ctx, payoutParams("item1", "tx1"))
	if err != nil {
		t.Fatalf("AppendSettlement failed: %v", err)
	}

	if entry.Id == "" {
		t.Error("Expected a ledger entry id")
	}
	if entry.Type != models.SettlementPayout {
		t.Errorf("Expected payout type, got %s", entry.Type)
	}
	if !entry.AmountRs.Equal(decimal.NewFromInt(500)) {
		t.Errorf("Expected Rs 500, got %s", entry.AmountRs.String())
	}
	if !entry.ExchangeRate.Equal(decimal.NewFromInt(250000)) {
		t.Errorf("Expected rate 250000, got %s", entry.ExchangeRate.String())
	}
	if entry.ConfirmedAt.IsZero() {
		t.Error("Expected a confirmation timestamp")
	}
}

func TestAppendSettlement_DuplicateHash(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := service.AppendSettlement(ctx, payoutParams("item1", "dup-tx")); err != nil {
		t.Fatalf("First AppendSettlement failed: %v", err)
	}

	_, err := service.AppendSettlement(ctx, payoutParams("item1", "dup-tx"))
	if !errors.Is(err, store.ErrDuplicateSettlement) {
		t.Fatalf("Expected ErrDuplicateSettlement, got %v", err)
	}
}

func TestListSettlements_AppendOrderPerItem(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()
	ctx := context.Background()

	for i, tx := range []string{"tx-a", "tx-b", "tx-c"} {
		itemId := "item1"
		if i == 2 {
			itemId = "item2"
		}
		if _, err := service.AppendSettlement(ctx, payoutParams(itemId, tx)); err != nil {
			t.Fatalf("AppendSettlement failed: %v", err)
		}
	}

	all, err := service.ListSettlements(ctx, "")
	if err != nil {
		t.Fatalf("ListSettlements failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(all))
	}
	if all[0].TxHash != "tx-a" || all[1].TxHash != "tx-b" || all[2].TxHash != "tx-c" {
		t.Error("Ledger entries not in append order")
	}

	forItem, err := service.ListSettlements(ctx, "item1")
	if err != nil {
		t.Fatalf("ListSettlements failed: %v", err)
	}
	if len(forItem) != 2 {
		t.Errorf("Expected 2 entries for item1, got %d", len(forItem))
	}
}

func TestExchangeRate_DefaultAndUpdate(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()
	ctx := context.Background()

	rate, err := service.ExchangeRate(ctx)
	if err != nil {
		t.Fatalf("ExchangeRate failed: %v", err)
	}
	if !rate.Equal(DefaultExchangeRate) {
		t.Errorf("Expected default rate %s, got %s", DefaultExchangeRate.String(), rate.String())
	}

	if err := service.SetExchangeRate(ctx, decimal.NewFromInt(300000)); err != nil {
		t.Fatalf("SetExchangeRate failed: %v", err)
	}

	rate, err = service.ExchangeRate(ctx)
	if err != nil {
		t.Fatalf("ExchangeRate failed: %v", err)
	}
	if !rate.Equal(decimal.NewFromInt(300000)) {
		t.Errorf("Expected rate 300000, got %s", rate.String())
	}

	if err := service.SetExchangeRate(ctx, decimal.Zero); err == nil {
		t.Error("Expected error for non-positive rate")
	}
}

func TestProfiles(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()
	ctx := context.Background()

	created, err := service.CreateProfile(ctx, "p1", "Asha Perera", "asha@example.com", models.RoleUser)
	if err != nil {
		t.Fatalf("CreateProfile failed: %v", err)
	}
	if created.CryptoVerified {
		t.Error("New profile must not be crypto-verified")
	}

	if _, err := service.CreateProfile(ctx, "p2", "X", "x@example.com", "superadmin"); err == nil {
		t.Error("Expected error for unknown role")
	}

	byEmail, err := service.GetProfileByEmail(ctx, "asha@example.com")
	if err != nil || byEmail.Id != "p1" {
		t.Fatalf("GetProfileByEmail failed: %v", err)
	}

	updated, err := service.SaveWalletAddress(ctx, "p1", "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", true)
	if err != nil {
		t.Fatalf("SaveWalletAddress failed: %v", err)
	}
	if !updated.CryptoVerified || updated.WalletAddress == "" {
		t.Error("Expected verified wallet on profile")
	}

	if _, err := service.SaveWalletAddress(ctx, "missing", "0xbb", false); !errors.Is(err, store.ErrProfileNotFound) {
		t.Errorf("Expected ErrProfileNotFound, got %v", err)
	}
}
