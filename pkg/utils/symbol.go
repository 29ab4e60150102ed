package utils

import "strings"

// StripExchangePrefix drops the fixed-width exchange/segment prefix from a
// tradebook symbol: "NSE:SBIN-EQ" → "SBIN-EQ" for width 4.
// Symbols shorter than the prefix yield "".
func StripExchangePrefix(symbol string, width int) string {
	if width <= 0 {
		return symbol
	}
	runes := []rune(symbol)
	if len(runes) <= width {
		return ""
	}
	return string(runes[width:])
}

// HasSeriesSuffix reports whether a symbol carries the given series suffix,
// e.g. "EQ" for cash-segment equity.
func HasSeriesSuffix(symbol, suffix string) bool {
	return suffix != "" && strings.HasSuffix(symbol, suffix)
}

// Exchange returns the exchange code before the first ':' ("NSE" for
// "NSE:SBIN-EQ"), or "" if the symbol has none.
func Exchange(symbol string) string {
	code, _, ok := strings.Cut(symbol, ":")
	if !ok {
		return ""
	}
	return code
}
