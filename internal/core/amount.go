// Package core provides the domain types shared across the application.
//
// This file contains amount parsing and formatting. Amounts are plain
// float64 values mirroring the REAL columns they are stored in; the export
// format depends on FormatAmount producing a stable decimal text.
package core

import (
	"strconv"
	"strings"
)

// ParseAmount converts caller-supplied amount text to a numeric value.
// Returns ErrInvalidAmount when the text is not a decimal number.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

// FormatAmount renders an amount with the shortest decimal representation,
// always keeping at least one fractional digit (1000 -> "1000.0",
// 12.34 -> "12.34"). CSV export relies on this exact shape.
func FormatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
