package core

import (
	"strconv"
	"strings"
)

// ParseAmountOrZero coerces a raw history or form value to a float64 with a
// documented default of zero. It accepts both dot (12.34) and comma (12,34)
// decimal separators. Anything that still fails to parse becomes zero:
// malformed historical data must never block the current month's report.
func ParseAmountOrZero(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", ".")
	// "1.234.56" style values are ambiguous; keep only the last separator
	// as the decimal point.
	if strings.Count(s, ".") > 1 {
		last := strings.LastIndex(s, ".")
		s = strings.ReplaceAll(s[:last], ".", "") + s[last:]
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseAmount parses a strictly non-negative decimal value, accepting comma
// or dot separators. Used where the caller wants an error instead of the
// silent zero default, e.g. validated form input outside the guarded UI.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, ErrInvalidAmount
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if v < 0 {
		return 0, ErrNegativeInput
	}
	return v, nil
}
