// Package report turns a snapshot of stored transactions into the filtered
// view and the aggregates shown on the dashboard.
//
// Every function here is pure: inputs are read, never mutated, and no
// malformed value ever produces an error. Callers may share one snapshot
// across goroutines.
package report

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"finance/internal/core"
)

// Query narrows the visible set. Empty fields mean no constraint.
type Query struct {
	DateFrom string // inclusive, YYYY-MM-DD
	DateTo   string // inclusive, YYYY-MM-DD
	Category string // case-insensitive substring
}

// Filter returns the records matching q, most recent first. Records sharing a
// date keep their input order.
func Filter(records []core.Transaction, q Query) []core.Transaction {
	from := strings.TrimSpace(q.DateFrom)
	to := strings.TrimSpace(q.DateTo)
	needle := strings.TrimSpace(q.Category)

	// Caser is stateful; one per call keeps Filter goroutine-safe.
	folder := cases.Fold()
	if needle != "" {
		needle = folder.String(needle)
	}

	out := make([]core.Transaction, 0, len(records))
	for _, r := range records {
		date := r.Date.String()
		if from != "" && date < from {
			continue
		}
		if to != "" && date > to {
			continue
		}
		if needle != "" && !strings.Contains(folder.String(strings.TrimSpace(r.Category)), needle) {
			continue
		}
		out = append(out, r)
	}

	slices.SortStableFunc(out, func(a, b core.Transaction) int {
		return strings.Compare(b.Date.String(), a.Date.String())
	})
	return out
}

// MatchesCategory reports whether category contains query under Unicode
// case folding. An empty query matches everything.
func MatchesCategory(category, query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}
	folder := cases.Fold()
	return strings.Contains(folder.String(strings.TrimSpace(category)), folder.String(query))
}
