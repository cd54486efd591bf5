package currency

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRsToEth(t *testing.T) {
	rate := decimal.NewFromInt(250000)
	eth := RsToEth(decimal.NewFromInt(500), rate)

	expected := decimal.NewFromFloat(0.002)
	if !eth.Equal(expected) {
		t.Errorf("Expected %s ETH, got %s", expected.String(), eth.String())
	}
}

func TestEthToRs(t *testing.T) {
	rate := decimal.NewFromInt(250000)
	rs := EthToRs(decimal.NewFromFloat(0.002), rate)

	expected := decimal.NewFromInt(500)
	if !rs.Equal(expected) {
		t.Errorf("Expected Rs %s, got %s", expected.String(), rs.String())
	}
}

func TestRoundTrip(t *testing.T) {
	// toPrimary(toSecondary(x, r), r) == x within tolerance.
	tolerance := decimal.NewFromFloat(0.000001)
	rates := []decimal.Decimal{
		decimal.NewFromInt(250000),
		decimal.NewFromFloat(123456.789),
		decimal.NewFromInt(1),
	}
	amounts := []decimal.Decimal{
		decimal.NewFromInt(150),
		decimal.NewFromInt(1000),
		decimal.NewFromFloat(3333.33),
		decimal.NewFromFloat(0.01),
	}

	for _, rate := range rates {
		for _, amount := range amounts {
			back := EthToRs(RsToEth(amount, rate), rate)
			if back.Sub(amount).Abs().GreaterThan(tolerance) {
				t.Errorf("Round trip failed for amount=%s rate=%s: got %s",
					amount.String(), rate.String(), back.String())
			}
		}
	}
}

func TestNonPositiveInputsYieldZero(t *testing.T) {
	rate := decimal.NewFromInt(250000)

	if !RsToEth(decimal.Zero, rate).IsZero() {
		t.Error("Expected zero for zero amount")
	}
	if !RsToEth(decimal.NewFromInt(-5), rate).IsZero() {
		t.Error("Expected zero for negative amount")
	}
	if !RsToEth(decimal.NewFromInt(100), decimal.Zero).IsZero() {
		t.Error("Expected zero for zero rate")
	}
	if !EthToRs(decimal.NewFromFloat(0.5), decimal.NewFromInt(-1)).IsZero() {
		t.Error("Expected zero for negative rate")
	}
}

func TestFormatting(t *testing.T) {
	rs := decimal.NewFromFloat(1234.5)
	eth := decimal.NewFromFloat(0.002)

	if got := FormatRs(rs); got != "1234.50" {
		t.Errorf("Expected 1234.50, got %s", got)
	}
	if got := FormatEth(eth); got != "0.00200000" {
		t.Errorf("Expected 0.00200000, got %s", got)
	}
	if got := FormatDual(rs, eth); got != "Rs 1234.50 / 0.00200000 ETH" {
		t.Errorf("Unexpected dual format: %s", got)
	}
}
