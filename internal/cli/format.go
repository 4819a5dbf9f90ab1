// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatAmount formats a decimal with two places and comma separators.
// e.g., 1234567.5 -> "1,234,567.50", -3 -> "-3.00"
func FormatAmount(d decimal.Decimal) string {
	fixed := d.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	if n, err := strconv.ParseInt(whole, 10, 64); err == nil {
		whole = humanize.Comma(n)
	}

	sign := ""
	if d.IsNegative() && fixed != "0.00" {
		sign = "-"
	}
	return sign + whole + "." + frac
}

// FormatMoney prefixes FormatAmount with a currency symbol, keeping the sign
// in front: "-$12.00".
func FormatMoney(currency string, d decimal.Decimal) string {
	s := FormatAmount(d)
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		return "-" + currency + rest
	}
	return currency + s
}

// FormatSigned is FormatMoney with an explicit "+" on non-negative values.
func FormatSigned(currency string, d decimal.Decimal) string {
	s := FormatMoney(currency, d)
	if strings.HasPrefix(s, "-") {
		return s
	}
	return "+" + s
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}
