package store

import (
	"testing"
)

// Compile-time checks that the interface is importable and usable.
func TestExchangeStoreInterfaceExists(t *testing.T) {
	// This test simply validates that the ExchangeStore interface compiles
	// and the sentinel errors are accessible.
	_ = ErrItemNotFound
	_ = ErrInvalidTransition
	_ = ErrInvalidDecision
	_ = ErrConflict
	_ = ErrWalletNotVerified
	_ = SubmitItemParams{}
	_ = ApplyDecisionParams{}
	_ = AppendSettlementParams{}

	// Ensure the interface is non-nil type.
	var _ ExchangeStore
}
