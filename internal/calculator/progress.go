package calculator

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Percent returns current as a percentage of max, capped at 100. A non-positive max
// yields 0.
func Percent(current, max float64) float64 {
	if max <= 0 {
		return 0
	}
	p := current / max * 100
	if p > 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return p
}

// FormatAmount renders d with two decimals.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CNY": "¥",
	"INR": "₹",
	"KRW": "₩",
	"BRL": "R$",
	"CAD": "C$",
	"AUD": "A$",
	"MXN": "MX$",
	"CHF": "CHF",
	"RUB": "₽",
	"TRY": "₺",
	"PHP": "₱",
}

// CurrencySymbol maps an ISO 4217 code to its display symbol. Unknown codes are
// returned unchanged and an empty code falls back to "$".
func CurrencySymbol(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "$"
	}
	if s, ok := currencySymbols[code]; ok {
		return s
	}
	return code
}
