package http

import (
	"strings"

	"github.com/shopspring/decimal"

	"finance/internal/core"
)

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, s)
}

func kindLabel(k core.Kind) string {
	switch k {
	case core.Income:
		return "Income"
	case core.Expense:
		return "Expense"
	default:
		return string(k)
	}
}

// floats converts already rounded values for chart and JSON output.
func floats(values []decimal.Decimal) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v.InexactFloat64()
	}
	return out
}
