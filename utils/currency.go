package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencySymbol prefixes formatted amounts. Overridden from configuration.
var CurrencySymbol = "R$"

// FormatCurrency formats an amount with dot thousands and comma decimals.
// Example: 1234.5 -> "R$ 1.234,50"
func FormatCurrency(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	parts := strings.SplitN(amount.StringFixed(2), ".", 2)
	integerPart, decimalPart := parts[0], parts[1]

	var groups []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{integerPart[start:i]}, groups...)
	}
	return sign + CurrencySymbol + " " + strings.Join(groups, ".") + "," + decimalPart
}
