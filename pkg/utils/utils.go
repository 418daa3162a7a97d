// Package utils provides small shared helpers for the journal backend.
package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ClampFloat clamps a value to [min, max].
func ClampFloat(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// FormatMoney formats a decimal amount for display in the given
// account currency.
func FormatMoney(d decimal.Decimal, currency string) string {
	switch strings.ToUpper(currency) {
	case "USD":
		return "$" + d.StringFixed(2)
	case "GBP":
		return "£" + d.StringFixed(2)
	case "EUR":
		return "€" + d.StringFixed(2)
	default:
		return d.StringFixed(2) + " " + currency
	}
}

// FormatSymbol normalizes an instrument symbol for comparison:
// uppercased, with separators removed.
func FormatSymbol(symbol string) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	return strings.NewReplacer("/", "", "-", "", "_", "").Replace(symbol)
}
