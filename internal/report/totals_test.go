package report

import (
	"testing"

	"github.com/shopspring/decimal"

	"finance/internal/core"
)

func TestAggregate_CategoryOrderAndCorruptAmounts(t *testing.T) {
	records := []core.Transaction{
		tx(1, core.Expense, "Rent", "500", "2024-01-01"),
		tx(2, core.Income, "Salary", "2000.10", "2024-01-02"),
		tx(3, core.Expense, "Food", "12.30", "2024-01-03"),
		tx(4, core.Expense, "Rent", "oops", "2024-01-04"),
		tx(5, core.Expense, "Fun", "-40", "2024-01-05"),
		tx(6, core.Expense, "Food", "7.70", "2024-01-06"),
		tx(7, core.Kind("transfer"), "Savings", "300", "2024-01-07"),
	}
	got := Aggregate(records)

	if !got.Income.Equal(dec("2000.10")) || !got.Expense.Equal(dec("520")) {
		t.Fatalf("income=%s expense=%s", got.Income, got.Expense)
	}
	wantNames := []string{"Rent", "Food", "Fun"}
	wantValues := []string{"500", "20", "0"}
	labels, values := got.CategoryLabels(), got.CategoryValues()
	if len(labels) != len(wantNames) {
		t.Fatalf("labels = %v, want %v", labels, wantNames)
	}
	for i := range wantNames {
		if labels[i] != wantNames[i] || !values[i].Equal(dec(wantValues[i])) {
			t.Fatalf("category %d = %s %s, want %s %s", i, labels[i], values[i], wantNames[i], wantValues[i])
		}
	}
}

func TestAggregate_Properties(t *testing.T) {
	sets := [][]core.Transaction{
		sampleRecords(),
		filterFixture(),
		{
			tx(1, core.Expense, "a", "0.333", "2024-05-01"),
			tx(2, core.Expense, "b", "0.333", "2024-05-01"),
			tx(3, core.Expense, "c", "0.334", "2024-05-01"),
			tx(4, core.Income, "x", "1.01", "2024-05-02"),
			tx(5, core.Expense, "a", "0.005", "2024-05-03"),
		},
		nil,
	}
	for i, records := range sets {
		got := Aggregate(records)

		categorySum := decimal.Zero
		for _, c := range got.ByCategory {
			categorySum = categorySum.Add(c.Amount)
		}
		if !categorySum.Equal(got.Expense) {
			t.Fatalf("set %d: categories sum to %s, expense total is %s", i, categorySum, got.Expense)
		}

		signed := decimal.Zero
		for _, r := range records {
			switch r.Kind {
			case core.Income:
				signed = signed.Add(r.Amount.Decimal())
			case core.Expense:
				signed = signed.Sub(r.Amount.Decimal())
			}
		}
		diff := got.Income.Sub(got.Expense).Sub(signed).Abs()
		if diff.GreaterThan(dec("0.01")) {
			t.Fatalf("set %d: income-expense=%s, signed sum=%s", i, got.Income.Sub(got.Expense), signed)
		}
		if !got.Balance.Equal(got.Income.Sub(got.Expense)) {
			t.Fatalf("set %d: balance %s inconsistent", i, got.Balance)
		}
	}
}

func TestAggregate_ExactCentsBalanceMatchesSignedSum(t *testing.T) {
	records := []core.Transaction{
		tx(1, core.Income, "Salary", "1500.25", "2024-06-01"),
		tx(2, core.Expense, "Food", "99.99", "2024-06-02"),
		tx(3, core.Expense, "Food", "0.01", "2024-06-03"),
		tx(4, core.Income, "Bonus", "10", "2024-06-04"),
	}
	got := Aggregate(records)
	if !got.Balance.Equal(dec("1410.25")) {
		t.Fatalf("balance = %s, want 1410.25", got.Balance)
	}
}

func TestAggregate_HugeExponentCountsAsZero(t *testing.T) {
	records := []core.Transaction{
		tx(1, core.Expense, "Food", "12.50", "2024-01-01"),
		tx(2, core.Expense, "Food", "1e999999", "2024-01-02"),
		tx(3, core.Income, "Salary", "1e2000000000", "2024-01-03"),
		tx(4, core.Expense, "Fun", "1e-999999", "2024-01-04"),
	}
	got := Aggregate(records)
	if !got.Expense.Equal(dec("12.50")) || !got.Income.IsZero() {
		t.Fatalf("income=%s expense=%s", got.Income, got.Expense)
	}
	if len(got.ByCategory) != 2 || !got.ByCategory[1].Amount.IsZero() {
		t.Fatalf("by category = %+v", got.ByCategory)
	}
}
