package utils

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestClampFloat(t *testing.T) {
	cases := []struct {
		value, min, max, want float64
	}{
		{50, 0, 100, 50},
		{-10, 0, 100, 0},
		{150, 0, 100, 100},
		{0, 0, 100, 0},
	}
	for _, c := range cases {
		if got := ClampFloat(c.value, c.min, c.max); got != c.want {
			t.Errorf("ClampFloat(%v, %v, %v) = %v, want %v", c.value, c.min, c.max, got, c.want)
		}
	}
}

func TestFormatMoney(t *testing.T) {
	if got := FormatMoney(decimal.NewFromFloat(1234.5), "USD"); got != "$1234.50" {
		t.Errorf("FormatMoney(USD) = %q", got)
	}
	if got := FormatMoney(decimal.NewFromFloat(10), "CHF"); got != "10.00 CHF" {
		t.Errorf("FormatMoney(CHF) = %q", got)
	}
}

func TestFormatSymbol(t *testing.T) {
	cases := map[string]string{
		"eur/usd": "EURUSD",
		"EUR-USD": "EURUSD",
		"eur_usd": "EURUSD",
		"NAS100":  "NAS100",
	}
	for in, want := range cases {
		if got := FormatSymbol(in); got != want {
			t.Errorf("FormatSymbol(%q) = %q, want %q", in, got, want)
		}
	}
}
