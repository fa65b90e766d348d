package core

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount decimal.Decimal
}

// Round2 rounds half away from zero to the cent.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// RoundParts rounds each part to the cent so that the rounded parts add up
// to the rounded sum (largest remainder). Parts with equal remainders are
// served in input order. Parts must be non-negative.
func RoundParts(parts []decimal.Decimal) (rounded []decimal.Decimal, total decimal.Decimal) {
	rounded = make([]decimal.Decimal, len(parts))
	if len(parts) == 0 {
		return rounded, decimal.Zero
	}

	sum := decimal.Sum(decimal.Zero, parts...)
	total = Round2(sum)

	remainders := make([]decimal.Decimal, len(parts))
	floorSum := decimal.Zero
	for i, p := range parts {
		cents := p.Shift(2)
		floor := cents.Floor()
		rounded[i] = floor
		remainders[i] = cents.Sub(floor)
		floorSum = floorSum.Add(floor)
	}

	missing := total.Shift(2).Sub(floorSum).IntPart()
	if missing > 0 {
		order := make([]int, len(parts))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool {
			return remainders[order[a]].GreaterThan(remainders[order[b]])
		})
		for _, idx := range order[:min(int(missing), len(order))] {
			rounded[idx] = rounded[idx].Add(decimal.NewFromInt(1))
		}
	}

	for i := range rounded {
		rounded[i] = rounded[i].Shift(-2)
	}
	return rounded, total
}
