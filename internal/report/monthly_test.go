package report

import (
	"testing"
	"time"

	"finance/internal/core"
)

func TestResolveMonth(t *testing.T) {
	now := time.Date(2025, 7, 4, 9, 0, 0, 0, time.UTC)
	cases := []struct {
		in          string
		year, month int
	}{
		{"2024-03", 2024, 3},
		{"2024-3", 2024, 3},
		{" 2024-12 ", 2024, 12},
		{"", 2025, 7},
		{"not-a-month", 2025, 7},
		{"2024", 2025, 7},
		{"2024-03-01", 2025, 7},
		{"2024-13", 2025, 7},
		{"2024-00", 2025, 7},
		{"0-05", 2025, 7},
		{"abcd-05", 2025, 7},
	}
	for _, tc := range cases {
		y, m := ResolveMonth(tc.in, now)
		if y != tc.year || m != tc.month {
			t.Fatalf("%q resolved to %d-%d, want %d-%d", tc.in, y, m, tc.year, tc.month)
		}
	}
}

func TestBuildMonthlySeries_MalformedMonthMatchesAbsent(t *testing.T) {
	now := time.Date(2025, 7, 4, 9, 0, 0, 0, time.UTC)
	absent := BuildMonthlySeries(sampleRecords(), "", now)
	bad := BuildMonthlySeries(sampleRecords(), "not-a-month", now)
	if absent.Year != bad.Year || absent.Month != bad.Month || bad.DisplayMonth != "2025-07" {
		t.Fatalf("absent=%s bad=%s", absent.DisplayMonth, bad.DisplayMonth)
	}
}

func TestBuildMonthlySeries_Lengths(t *testing.T) {
	now := time.Now()
	cases := map[string]int{
		"2024-02": 29,
		"2023-02": 28,
		"2000-02": 29,
		"1900-02": 28,
		"2024-04": 30,
		"2024-12": 31,
	}
	for ym, days := range cases {
		s := BuildMonthlySeries(nil, ym, now)
		if s.DaysInMonth != days || len(s.IncomeByDay) != days || len(s.ExpenseByDay) != days || len(s.Labels()) != days {
			t.Fatalf("%s: days=%d income=%d expense=%d, want %d", ym, s.DaysInMonth, len(s.IncomeByDay), len(s.ExpenseByDay), days)
		}
		if s.Labels()[days-1] != days {
			t.Fatalf("%s: last label = %d", ym, s.Labels()[days-1])
		}
	}
}

func TestBuildMonthlySeries_SkipsBadDatesAndOtherMonths(t *testing.T) {
	records := []core.Transaction{
		tx(1, core.Expense, "a", "10", "2024-02-29"),
		tx(2, core.Expense, "b", "5", "2024-02-1x"), // sorts inside the month, not a date
		tx(3, core.Income, "c", "1", "2024-03-01"),
		tx(4, core.Income, "d", "2", "2024-01-31"),
		tx(5, core.Expense, "e", "3.5", "2024-02-01T08:00"),
		tx(6, core.Expense, "f", "bad", "2024-02-10"),
	}
	s := BuildMonthlySeries(records, "2024-02", time.Now())

	if !s.ExpenseByDay[28].Equal(dec("10")) {
		t.Fatalf("day 29 expense = %s", s.ExpenseByDay[28])
	}
	if !s.ExpenseByDay[0].Equal(dec("3.5")) {
		t.Fatalf("day 1 expense = %s", s.ExpenseByDay[0])
	}
	if !s.ExpenseByDay[9].IsZero() {
		t.Fatalf("corrupt amount should count as zero, got %s", s.ExpenseByDay[9])
	}
	for i, v := range s.IncomeByDay {
		if !v.IsZero() {
			t.Fatalf("income day %d = %s, want 0", i+1, v)
		}
	}
}

func TestBuildMonthlySeries_SameDayAccumulates(t *testing.T) {
	records := []core.Transaction{
		tx(1, core.Expense, "a", "1.10", "2024-05-07"),
		tx(2, core.Expense, "b", "2.20", "2024-05-07"),
		tx(3, core.Income, "c", "3.333", "2024-05-07"),
	}
	s := BuildMonthlySeries(records, "2024-05", time.Now())
	if !s.ExpenseByDay[6].Equal(dec("3.30")) || !s.IncomeByDay[6].Equal(dec("3.33")) {
		t.Fatalf("day 7 = income %s expense %s", s.IncomeByDay[6], s.ExpenseByDay[6])
	}
}

func TestDaysInAndFormatMonth(t *testing.T) {
	if DaysIn(2024, 2) != 29 || DaysIn(2100, 2) != 28 || DaysIn(2024, 1) != 31 {
		t.Fatalf("DaysIn wrong")
	}
	if FormatMonth(987, 3) != "0987-03" {
		t.Fatalf("FormatMonth = %q", FormatMonth(987, 3))
	}
}

func TestBuildMonthlySeries_HugeExponentCountsAsZero(t *testing.T) {
	records := []core.Transaction{
		tx(1, core.Expense, "a", "1e999999", "2024-05-02"),
		tx(2, core.Expense, "b", "4", "2024-05-02"),
	}
	s := BuildMonthlySeries(records, "2024-05", time.Now())
	if !s.ExpenseByDay[1].Equal(dec("4")) {
		t.Fatalf("day 2 expense = %s", s.ExpenseByDay[1])
	}
}

func TestBuildMonthlySeries_DaysRoundedTogether(t *testing.T) {
	records := []core.Transaction{
		tx(1, core.Expense, "a", "0.004", "2024-05-01"),
		tx(2, core.Expense, "b", "0.004", "2024-05-02"),
		tx(3, core.Expense, "c", "0.004", "2024-05-03"),
	}
	s := BuildMonthlySeries(records, "2024-05", time.Now())

	// Rounding each day on its own would give 0 for all three days and lose
	// the cent the month adds up to; the leftover goes to the first day with
	// the largest remainder instead.
	want := []string{"0.01", "0", "0"}
	for i, w := range want {
		if !s.ExpenseByDay[i].Equal(dec(w)) {
			t.Fatalf("day %d expense = %s, want %s", i+1, s.ExpenseByDay[i], w)
		}
	}
}
