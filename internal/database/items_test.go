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

func setupTestDb(t *testing.T) (*Service, func()) {
	t.Helper()

	service, err := NewService(context.Background(), models.DatabaseConfig{
		Path:            ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: 5 * time.Minute,
		ConnMaxIdleTime: 30 * time.Second,
		PingTimeout:     5 * time.Second,
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	return service, service.Close
}

func createTestItem(t *testing.T, service *Service, sellerId string) *models.Item {
	t.Helper()
	ctx := context.Background()

	if _, err := service.CreateProfile(ctx, sellerId, "Test Seller", sellerId+"@example.com", models.RoleUser); err != nil {
		t.Fatalf("CreateProfile failed: %v", err)
	}

	item, err := service.CreateItem(ctx, store.SubmitItemParams{
		SellerId:       sellerId,
		Category:       "Phone",
		Condition:      models.ConditionWorking,
		QuotedPrice:    decimal.NewFromInt(1000),
		QuotedPriceEth: decimal.NewFromFloat(0.004),
	})
	if err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}
	return item
}

func TestCreateItem(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	item := createTestItem(t, service, "seller1")

	if item.Status != models.StatusAwaitingValuation {
		t.Errorf("Expected status awaiting_valuation, got %s", item.Status)
	}
	if item.Branch != models.BranchNone {
		t.Errorf("Expected branch N/A, got %s", item.Branch)
	}
	if !item.FinalPayout.IsZero() || !item.RepairCost.IsZero() || !item.SellingPrice.IsZero() {
		t.Error("New item must start with zero financial fields")
	}
}

func TestGetItem_NotFound(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	_, err := service.GetItem(context.Background(), "missing")
	if !errors.Is(err, store.ErrItemNotFound) {
		t.Errorf("Expected ErrItemNotFound, got %v", err)
	}
}

func TestApplyDecision_ConditionalCommit(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()
	ctx := context.Background()

	item := createTestItem(t, service, "seller1")

	params := store.ApplyDecisionParams{
		ItemId:          item.Id,
		OfficialId:      "official1",
		Decision:        models.DecisionRefurbish,
		Branch:          models.BranchRefurbish,
		Status:          models.StatusReadyToSell,
		FinalPayout:     decimal.NewFromInt(800),
		FinalPayoutEth:  decimal.NewFromFloat(0.0032),
		RepairCost:      decimal.NewFromInt(200),
		RepairCostEth:   decimal.NewFromFloat(0.0008),
		SellingPrice:    decimal.NewFromInt(3000),
		SellingPriceEth: decimal.NewFromFloat(0.012),
	}

	updated, err := service.ApplyDecision(ctx, params)
	if err != nil {
		t.Fatalf("ApplyDecision failed: %v", err)
	}
	if updated.Status != models.StatusReadyToSell {
		t.Errorf("Expected status ready_to_sell, got %s", updated.Status)
	}
	if !updated.FinalPayout.Equal(decimal.NewFromInt(800)) {
		t.Errorf("Expected payout 800, got %s", updated.FinalPayout.String())
	}

	// Second commit must lose: the guarding status is gone.
	_, err = service.ApplyDecision(ctx, params)
	if !errors.Is(err, store.ErrConflict) {
		t.Fatalf("Expected ErrConflict on second commit, got %v", err)
	}
}

func TestApplyDecision_MissingItem(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	_, err := service.ApplyDecision(context.Background(), store.ApplyDecisionParams{
		ItemId:      "missing",
		OfficialId:  "official1",
		Decision:    models.DecisionScrap,
		Branch:      models.BranchScrap,
		Status:      models.StatusScrapped,
		FinalPayout: decimal.NewFromInt(100),
	})
	if !errors.Is(err, store.ErrItemNotFound) {
		t.Errorf("Expected ErrItemNotFound, got %v", err)
	}
}

func TestMarkSold_ConditionalCommit(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()
	ctx := context.Background()

	item := createTestItem(t, service, "seller1")

	// Not listed yet: the conditional update must refuse.
	_, err := service.MarkSold(ctx, item.Id, "buyer1")
	if !errors.Is(err, store.ErrConflict) {
		t.Fatalf("Expected ErrConflict for unlisted item, got %v", err)
	}

	_, err = service.ApplyDecision(ctx, store.ApplyDecisionParams{
		ItemId:       item.Id,
		OfficialId:   "official1",
		Decision:     models.DecisionRefurbish,
		Branch:       models.BranchRefurbish,
		Status:       models.StatusReadyToSell,
		FinalPayout:  decimal.NewFromInt(500),
		SellingPrice: decimal.NewFromInt(900),
	})
	if err != nil {
		t.Fatalf("ApplyDecision failed: %v", err)
	}

	sold, err := service.MarkSold(ctx, item.Id, "buyer1")
	if err != nil {
		t.Fatalf("MarkSold failed: %v", err)
	}
	if sold.Status != models.StatusSold || sold.BuyerId != "buyer1" {
		t.Errorf("Expected sold to buyer1, got status=%s buyer=%s", sold.Status, sold.BuyerId)
	}

	// Exactly one buyer wins.
	_, err = service.MarkSold(ctx, item.Id, "buyer2")
	if !errors.Is(err, store.ErrConflict) {
		t.Fatalf("Expected ErrConflict on second sale, got %v", err)
	}

	after, err := service.GetItem(ctx, item.Id)
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if after.BuyerId != "buyer1" {
		t.Errorf("Buyer identity changed after lost race: %s", after.BuyerId)
	}
}

func TestListItemsByStatusAndSeller(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()
	ctx := context.Background()

	first := createTestItem(t, service, "seller1")
	second := createTestItem(t, service, "seller2")

	_, err := service.ApplyDecision(ctx, store.ApplyDecisionParams{
		ItemId:      first.Id,
		OfficialId:  "official1",
		Decision:    models.DecisionScrap,
		Branch:      models.BranchScrap,
		Status:      models.StatusScrapped,
		FinalPayout: decimal.NewFromInt(50),
	})
	if err != nil {
		t.Fatalf("ApplyDecision failed: %v", err)
	}

	pending, err := service.ListItems(ctx, models.StatusAwaitingValuation)
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if len(pending) != 1 || pending[0].Id != second.Id {
		t.Errorf("Expected only the second item pending, got %d items", len(pending))
	}

	all, err := service.ListItems(ctx, "")
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected 2 items, got %d", len(all))
	}

	mine, err := service.ListItemsBySeller(ctx, "seller1")
	if err != nil {
		t.Fatalf("ListItemsBySeller failed: %v", err)
	}
	if len(mine) != 1 || mine[0].Id != first.Id {
		t.Errorf("Expected seller1 to own exactly the first item")
	}
}

func TestAttachMedia(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()
	ctx := context.Background()

	item := createTestItem(t, service, "seller1")

	if err := service.AttachMedia(ctx, item.Id, "items/photo-1.jpg"); err != nil {
		t.Fatalf("AttachMedia failed: %v", err)
	}
	if err := service.AttachMedia(ctx, "missing", "x.jpg"); !errors.Is(err, store.ErrItemNotFound) {
		t.Errorf("Expected ErrItemNotFound, got %v", err)
	}

	loaded, err := service.GetItem(ctx, item.Id)
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if len(loaded.MediaPaths) != 1 || loaded.MediaPaths[0] != "items/photo-1.jpg" {
		t.Errorf("Expected one media path, got %v", loaded.MediaPaths)
	}
}

func TestSubscribeNotifiesOnItemWrites(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	notified := make(chan struct{}, 4)
	cancel := service.Subscribe(store.TableItems, func() {
		notified <- struct{}{}
	})
	defer cancel()

	createTestItem(t, service, "seller1")

	select {
	case <-notified:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected a change notification for items")
	}
}
