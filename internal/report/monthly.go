package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"finance/internal/core"
)

// MonthlySeries holds per-day income and expense for one calendar month.
// Index 0 is day 1.
type MonthlySeries struct {
	Year         int
	Month        int
	DaysInMonth  int
	IncomeByDay  []decimal.Decimal
	ExpenseByDay []decimal.Decimal
	DisplayMonth string // YYYY-MM of the resolved month
}

// ResolveMonth parses "YYYY-MM". Anything that is not two integers naming a
// real month falls back to the month of now.
func ResolveMonth(yearMonth string, now time.Time) (year, month int) {
	year, month = now.Year(), int(now.Month())

	parts := strings.Split(strings.TrimSpace(yearMonth), "-")
	if len(parts) != 2 {
		return year, month
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return year, month
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return year, month
	}
	if y < 1 || y > 9999 || m < 1 || m > 12 {
		return year, month
	}
	return y, m
}

// DaysIn returns the number of days of the given month, leap years included.
func DaysIn(year, month int) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FormatMonth renders a year and month as YYYY-MM.
func FormatMonth(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// BuildMonthlySeries buckets the records of the resolved month by day.
// Records whose date cannot be parsed are skipped.
func BuildMonthlySeries(records []core.Transaction, yearMonth string, now time.Time) MonthlySeries {
	year, month := ResolveMonth(yearMonth, now)
	days := DaysIn(year, month)

	inMonth := Filter(records, Query{
		DateFrom: core.NewDate(year, month, 1).String(),
		DateTo:   core.NewDate(year, month, days).String(),
	})

	income := make([]decimal.Decimal, days)
	expense := make([]decimal.Decimal, days)
	for i := range days {
		income[i] = decimal.Zero
		expense[i] = decimal.Zero
	}

	for _, r := range inMonth {
		y, m, d, ok := r.Date.Parts()
		// "2024-03-05T..." sorts inside the month; a malformed value that
		// happens to sort there too must not land in a bucket.
		if !ok || y != year || m != month {
			continue
		}
		switch r.Kind {
		case core.Income:
			income[d-1] = income[d-1].Add(r.Amount.Decimal())
		case core.Expense:
			expense[d-1] = expense[d-1].Add(r.Amount.Decimal())
		}
	}

	income, _ = core.RoundParts(income)
	expense, _ = core.RoundParts(expense)

	return MonthlySeries{
		Year:         year,
		Month:        month,
		DaysInMonth:  days,
		IncomeByDay:  income,
		ExpenseByDay: expense,
		DisplayMonth: FormatMonth(year, month),
	}
}

// Labels returns the day numbers 1..DaysInMonth for chart axes.
func (s MonthlySeries) Labels() []int {
	out := make([]int, s.DaysInMonth)
	for i := range out {
		out[i] = i + 1
	}
	return out
}
