package wallet

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidAddress(t *testing.T) {
	tests := []struct {
		address string
		valid   bool
	}{
		{CompanyAddress, true},
		{"0x" + strings.Repeat("a", 40), true},
		{"0x" + strings.Repeat("A1", 20), true},
		{"", false},
		{"0x123", false},
		{strings.Repeat("a", 42), false},
		{"0x" + strings.Repeat("g", 40), false},
		{"0x" + strings.Repeat("a", 41), false},
	}

	for _, tt := range tests {
		if got := ValidAddress(tt.address); got != tt.valid {
			t.Errorf("ValidAddress(%q) = %v, want %v", tt.address, got, tt.valid)
		}
	}
}

func TestWeiFromEth(t *testing.T) {
	wei := WeiFromEth(decimal.NewFromFloat(0.002))
	expected := decimal.NewFromInt(2000000000000000)
	if !wei.Equal(expected) {
		t.Errorf("Expected %s Wei, got %s", expected.String(), wei.String())
	}
}

func TestSimulatorAuthorizeTransfer(t *testing.T) {
	sim := NewSimulator()
	ctx := context.Background()
	buyer := "0x" + strings.Repeat("1", 40)

	txHash, err := sim.AuthorizeTransfer(ctx, buyer, CompanyAddress, decimal.NewFromFloat(0.012))
	if err != nil {
		t.Fatalf("AuthorizeTransfer failed: %v", err)
	}
	if !strings.HasPrefix(txHash, "simulated_") {
		t.Errorf("Expected simulated tx hash, got %q", txHash)
	}
}

func TestSimulatorRejectsBadInputs(t *testing.T) {
	sim := NewSimulator()
	ctx := context.Background()
	buyer := "0x" + strings.Repeat("1", 40)

	if _, err := sim.AuthorizeTransfer(ctx, "0x123", CompanyAddress, decimal.NewFromInt(1)); err == nil {
		t.Error("Expected error for invalid sender address")
	}
	if _, err := sim.AuthorizeTransfer(ctx, buyer, "not-an-address", decimal.NewFromInt(1)); err == nil {
		t.Error("Expected error for invalid recipient address")
	}
	if _, err := sim.AuthorizeTransfer(ctx, buyer, CompanyAddress, decimal.Zero); err == nil {
		t.Error("Expected error for non-positive amount")
	}
}
