package report

import (
	"github.com/shopspring/decimal"

	"finance/internal/core"
)

// Totals summarises a set of transactions. All values are rounded to the
// cent; ByCategory always adds up to Expense.
type Totals struct {
	Income     decimal.Decimal
	Expense    decimal.Decimal
	Balance    decimal.Decimal
	ByCategory []core.CategoryAmount // expense only, first-seen order
}

// Aggregate sums incomes, expenses and expenses per category.
//
// Categories are grouped by their exact text, so "Food" and "food" are two
// separate slices of the breakdown even though the category search treats
// them alike.
func Aggregate(records []core.Transaction) Totals {
	income := decimal.Zero
	var (
		names  []string
		sums   []decimal.Decimal
		lookup = make(map[string]int)
	)

	for _, r := range records {
		amount := r.Amount.Decimal()
		switch r.Kind {
		case core.Income:
			income = income.Add(amount)
		case core.Expense:
			idx, ok := lookup[r.Category]
			if !ok {
				idx = len(names)
				lookup[r.Category] = idx
				names = append(names, r.Category)
				sums = append(sums, decimal.Zero)
			}
			sums[idx] = sums[idx].Add(amount)
		}
	}

	rounded, expense := core.RoundParts(sums)
	byCategory := make([]core.CategoryAmount, len(names))
	for i, name := range names {
		byCategory[i] = core.CategoryAmount{Name: name, Amount: rounded[i]}
	}

	income = core.Round2(income)
	return Totals{
		Income:     income,
		Expense:    expense,
		Balance:    income.Sub(expense),
		ByCategory: byCategory,
	}
}

// CategoryLabels returns the breakdown names in chart order.
func (t Totals) CategoryLabels() []string {
	out := make([]string, len(t.ByCategory))
	for i, c := range t.ByCategory {
		out[i] = c.Name
	}
	return out
}

// CategoryValues returns the breakdown amounts in chart order.
func (t Totals) CategoryValues() []decimal.Decimal {
	out := make([]decimal.Decimal, len(t.ByCategory))
	for i, c := range t.ByCategory {
		out[i] = c.Amount
	}
	return out
}
