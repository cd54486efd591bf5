package wallet

import (
	"context"
	"fmt"
	"regexp"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CompanyAddress receives purchase payments and sends payouts.
const CompanyAddress = "0xd1b6d088b8f3e291ced23419302f15b4f1f88530"

// All simulated transfers run on the Sepolia test network.
const (
	NetworkSepolia = "sepolia"
	SepoliaChainId = "0xaa36a7"
)

// An address is exactly 42 characters: 0x followed by 40 hex digits.
var addressPattern = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)

// ValidAddress reports whether address is a well-formed wallet address.
func ValidAddress(address string) bool {
	if address == "" {
		return false
	}
	return addressPattern.MatchString(address)
}

// WeiFromEth converts an ETH amount to whole Wei (1 ETH = 10^18 Wei).
func WeiFromEth(amountEth decimal.Decimal) decimal.Decimal {
	return amountEth.Shift(18).Floor()
}

// Provider authorizes a transfer of a given ETH amount between two addresses
// on a test network, returning a transaction reference or failing. The
// engine treats it as an external collaborator: no retries, failures are
// surfaced to the caller.
type Provider interface {
	Network() string
	AuthorizeTransfer(ctx context.Context, fromAddress, toAddress string, amountEth decimal.Decimal) (string, error)
}

// Simulator is a Provider that logs the would-be transfer and fabricates a
// placeholder transaction reference instead of touching a real chain.
// txSeq keeps simulated references unique process-wide even when transfers
// land in the same millisecond.
var txSeq atomic.Int64

type Simulator struct {
	network string
	now     func() time.Time
}

func NewSimulator() *Simulator {
	return &Simulator{
		network: NetworkSepolia,
		now:     time.Now,
	}
}

func (s *Simulator) Network() string {
	return s.network
}

func (s *Simulator) AuthorizeTransfer(_ context.Context, fromAddress, toAddress string, amountEth decimal.Decimal) (string, error) {
	if !ValidAddress(fromAddress) {
		return "", fmt.Errorf("invalid sender wallet address: %q", fromAddress)
	}
	if !ValidAddress(toAddress) {
		return "", fmt.Errorf("invalid recipient wallet address: %q", toAddress)
	}
	if amountEth.LessThanOrEqual(decimal.Zero) {
		return "", fmt.Errorf("transfer amount must be positive, got %s", amountEth.String())
	}

	txHash := fmt.Sprintf("simulated_%d_%d", s.now().UnixMilli(), txSeq.Add(1))

	zap.L().Info("Simulated transfer authorized",
		zap.String("network", s.network),
		zap.String("from", fromAddress),
		zap.String("to", toAddress),
		zap.String("amount_eth", amountEth.String()),
		zap.String("amount_wei", WeiFromEth(amountEth).String()),
		zap.String("tx_hash", txHash))

	return txHash, nil
}
