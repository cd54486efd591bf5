package currency

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Conversion between the Rs base currency and its ETH-equivalent secondary
// unit. The exchange rate (Rs per 1 ETH) lives in mutable system
// configuration and may change between calls; callers must pass the rate in
// effect at the time of the financial event so previously recorded values
// stay frozen under later rate changes. Nothing here caches a rate.

// RsToEth converts an Rs amount to ETH at the given rate. Non-positive
// amounts or rates yield zero rather than an error.
func RsToEth(amountRs, rate decimal.Decimal) decimal.Decimal {
	if amountRs.LessThanOrEqual(decimal.Zero) || rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return amountRs.Div(rate)
}

// EthToRs converts an ETH amount back to Rs at the given rate. Non-positive
// amounts or rates yield zero rather than an error.
func EthToRs(amountEth, rate decimal.Decimal) decimal.Decimal {
	if amountEth.LessThanOrEqual(decimal.Zero) || rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return amountEth.Mul(rate)
}

// FormatRs formats an Rs amount for display (2 decimal places).
func FormatRs(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// FormatEth formats an ETH amount for display (8 decimal places).
func FormatEth(amount decimal.Decimal) string {
	return amount.StringFixed(8)
}

// FormatDual formats a dual-currency amount, e.g. "Rs 500.00 / 0.00200000 ETH".
func FormatDual(amountRs, amountEth decimal.Decimal) string {
	return fmt.Sprintf("Rs %s / %s ETH", FormatRs(amountRs), FormatEth(amountEth))
}
