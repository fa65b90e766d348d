package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"finance/internal/core"
)

func tx(id int64, kind core.Kind, category, amount, date string) core.Transaction {
	return core.Transaction{
		ID:       id,
		Kind:     kind,
		Category: category,
		Amount:   core.AmountOf(amount),
		Date:     core.DateOf(date),
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleRecords() []core.Transaction {
	return []core.Transaction{
		tx(1, core.Income, "Salary", "1000", "2024-03-01"),
		tx(2, core.Expense, "Food", "150.505", "2024-03-05"),
		tx(3, core.Expense, "food", "49.495", "2024-03-20"),
	}
}

func TestBuild_EndToEnd(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	rep := Build(sampleRecords(), Params{YearMonth: "2024-03"}, now)

	if len(rep.Visible) != 3 {
		t.Fatalf("visible = %d, want 3", len(rep.Visible))
	}
	if !rep.Totals.Income.Equal(dec("1000")) {
		t.Fatalf("income = %s, want 1000.00", rep.Totals.Income)
	}
	if !rep.Totals.Expense.Equal(dec("200")) {
		t.Fatalf("expense = %s, want 200.00", rep.Totals.Expense)
	}
	if !rep.Totals.Balance.Equal(dec("800")) {
		t.Fatalf("balance = %s, want 800.00", rep.Totals.Balance)
	}

	want := []core.CategoryAmount{{Name: "Food", Amount: dec("150.51")}, {Name: "food", Amount: dec("49.49")}}
	if len(rep.Totals.ByCategory) != len(want) {
		t.Fatalf("categories = %v, want %v", rep.Totals.ByCategory, want)
	}
	for i, c := range want {
		got := rep.Totals.ByCategory[i]
		if got.Name != c.Name || !got.Amount.Equal(c.Amount) {
			t.Fatalf("category[%d] = %s %s, want %s %s", i, got.Name, got.Amount, c.Name, c.Amount)
		}
	}

	m := rep.Monthly
	if m.Year != 2024 || m.Month != 3 || m.DaysInMonth != 31 || m.DisplayMonth != "2024-03" {
		t.Fatalf("monthly header = %d-%d days=%d display=%q", m.Year, m.Month, m.DaysInMonth, m.DisplayMonth)
	}
	for day := range m.DaysInMonth {
		wantIncome, wantExpense := dec("0"), dec("0")
		switch day {
		case 0:
			wantIncome = dec("1000")
		case 4:
			wantExpense = dec("150.51")
		case 19:
			wantExpense = dec("49.49")
		}
		if !m.IncomeByDay[day].Equal(wantIncome) || !m.ExpenseByDay[day].Equal(wantExpense) {
			t.Fatalf("day %d: income=%s expense=%s, want %s %s", day+1, m.IncomeByDay[day], m.ExpenseByDay[day], wantIncome, wantExpense)
		}
	}
}

// Grouping is case-sensitive while search is not. This asymmetry is kept on
// purpose; if product decides to merge "Food" and "food", this test is the
// one to change.
func TestBuild_CategoryGroupingIsCaseSensitive(t *testing.T) {
	rep := Build(sampleRecords(), Params{Category: "FOOD"}, time.Now())
	if len(rep.Visible) != 2 {
		t.Fatalf("search should match both spellings, got %d records", len(rep.Visible))
	}
	if len(rep.Totals.ByCategory) != 2 {
		t.Fatalf("breakdown should keep spellings apart, got %v", rep.Totals.CategoryLabels())
	}
}

func TestBuild_MonthlyIgnoresFilters(t *testing.T) {
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	rep := Build(sampleRecords(), Params{
		DateFrom: "2024-03-10",
		Category: "salary-that-does-not-exist",
	}, now)

	if len(rep.Visible) != 0 {
		t.Fatalf("visible = %v, want empty", rep.Visible)
	}
	if !rep.Totals.Income.IsZero() || !rep.Totals.Expense.IsZero() || len(rep.Totals.ByCategory) != 0 {
		t.Fatalf("totals of empty set = %+v", rep.Totals)
	}
	if !rep.Monthly.IncomeByDay[0].Equal(dec("1000")) {
		t.Fatalf("monthly chart should still show day 1 income, got %s", rep.Monthly.IncomeByDay[0])
	}
}

func TestBuild_EmptyInput(t *testing.T) {
	rep := Build(nil, Params{}, time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC))
	if rep.Visible == nil || len(rep.Visible) != 0 {
		t.Fatalf("visible should be an empty, non-nil slice")
	}
	if rep.Monthly.DaysInMonth != 28 || len(rep.Monthly.IncomeByDay) != 28 {
		t.Fatalf("february 2023 should have 28 days, got %d", rep.Monthly.DaysInMonth)
	}
}

func TestBuild_TrimsParams(t *testing.T) {
	rep := Build(sampleRecords(), Params{DateFrom: " 2024-03-05 ", YearMonth: " 2024-03 "}, time.Now())
	if rep.Params.DateFrom != "2024-03-05" || rep.Params.YearMonth != "2024-03" {
		t.Fatalf("params not normalized: %+v", rep.Params)
	}
	if len(rep.Visible) != 2 {
		t.Fatalf("visible = %d, want 2", len(rep.Visible))
	}
}

func TestEngine_UsesClock(t *testing.T) {
	fixed := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	e := &Engine{Now: func() time.Time { return fixed }}

	rep := e.Build(sampleRecords(), Params{})
	if rep.Monthly.DisplayMonth != "2024-02" || rep.Monthly.DaysInMonth != 29 {
		t.Fatalf("engine month = %s (%d days)", rep.Monthly.DisplayMonth, rep.Monthly.DaysInMonth)
	}
	if y, m := e.Month("not-a-month"); y != 2024 || m != 2 {
		t.Fatalf("Month fallback = %d-%d", y, m)
	}

	var zero *Engine
	if rep := zero.Build(nil, Params{}); rep.Monthly.DaysInMonth == 0 {
		t.Fatalf("nil engine should fall back to wall clock")
	}
}

func TestBuild_DoesNotMutateInput(t *testing.T) {
	records := sampleRecords()
	_ = Build(records, Params{Category: "food"}, time.Now())
	for i, want := range sampleRecords() {
		if records[i] != want {
			t.Fatalf("record %d mutated: %+v", i, records[i])
		}
	}
}
