// Package utils provides formatting, time and symbol helpers for Trademetriks.
package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatINR formats an amount in Indian Rupee format (₹12,34,567.89).
// Uses the Indian numbering system: last 3 digits, then groups of 2.
// Amounts are rounded half-to-even to paise before formatting.
func FormatINR(amount decimal.Decimal) string {
	rounded := amount.RoundBank(2)
	intPart, frac, _ := strings.Cut(rounded.Abs().StringFixed(2), ".")

	formatted := "₹" + formatIndianNumber(intPart) + "." + frac
	if rounded.IsNegative() {
		return "-" + formatted
	}
	return formatted
}

// FormatRupees formats a whole-rupee amount without paise (₹1,23,456).
func FormatRupees(amount int64) string {
	if amount < 0 {
		return "-₹" + formatIndianNumber(strconv.FormatInt(-amount, 10))
	}
	return "₹" + formatIndianNumber(strconv.FormatInt(amount, 10))
}

// FormatINRCompact formats an amount in compact Indian notation, used for
// chart axis labels.
// e.g., 1927345 → "₹19.27 L", 250000000 → "₹25 Cr"
func FormatINRCompact(amount decimal.Decimal) string {
	prefix := "₹"
	if amount.IsNegative() {
		prefix = "-₹"
	}
	v := amount.Abs().InexactFloat64()

	switch {
	case v >= 1e7:
		return prefix + formatWithDecimals(v/1e7) + " Cr"
	case v >= 1e5:
		return prefix + formatWithDecimals(v/1e5) + " L"
	case v >= 1e3:
		return prefix + formatWithDecimals(v/1e3) + " K"
	default:
		return prefix + formatWithDecimals(v)
	}
}

// FormatPct formats a 0..1 fraction as a percentage.
// e.g., 0.62 → "62.00%"
func FormatPct(fraction decimal.Decimal) string {
	return fraction.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}

// FormatSigned prefixes non-negative amounts with "+" (used for P/L cells).
func FormatSigned(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return FormatINR(amount)
	}
	return "+" + FormatINR(amount)
}

// FormatQty formats a share/lot quantity with Indian grouping.
func FormatQty(qty int64) string {
	if qty < 0 {
		return "-" + formatIndianNumber(strconv.FormatInt(-qty, 10))
	}
	return formatIndianNumber(strconv.FormatInt(qty, 10))
}

// formatIndianNumber groups a string of digits the Indian way (last 3, then 2s).
func formatIndianNumber(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	result := digits[len(digits)-3:]
	remaining := digits[:len(digits)-3]

	for len(remaining) > 2 {
		result = remaining[len(remaining)-2:] + "," + result
		remaining = remaining[:len(remaining)-2]
	}
	if remaining != "" {
		result = remaining + "," + result
	}
	return result
}

// formatWithDecimals formats a number with up to 2 decimal places,
// removing trailing zeros.
func formatWithDecimals(n float64) string {
	s := fmt.Sprintf("%.2f", n)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}
