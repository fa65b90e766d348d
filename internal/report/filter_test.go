package report

import (
	"testing"

	"finance/internal/core"
)

func ids(records []core.Transaction) []int64 {
	out := make([]int64, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func filterFixture() []core.Transaction {
	return []core.Transaction{
		tx(1, core.Expense, "Кафе", "10", "2024-01-10"),
		tx(2, core.Expense, "Groceries", "20", "2024-01-15"),
		tx(3, core.Income, "Salary", "100", "2024-01-15"),
		tx(4, core.Expense, "  Кафе у дома ", "5", "2024-02-01"),
		tx(5, core.Expense, "Transport", "7", "2023-12-31"),
		tx(6, core.Expense, "Broken", "x", "not-a-date"),
	}
}

func TestFilter_NoConstraintsReturnsCopySortedByDate(t *testing.T) {
	in := filterFixture()
	got := Filter(in, Query{})

	// "not-a-date" sorts above every ISO date; ties keep input order (2 before 3)
	want := []int64{6, 4, 2, 3, 1, 5}
	if !equalIDs(ids(got), want) {
		t.Fatalf("order = %v, want %v", ids(got), want)
	}
	got[0].Category = "changed"
	if in[5].Category != "Broken" {
		t.Fatalf("Filter result aliases its input")
	}
}

func TestFilter_DateBoundsAreInclusive(t *testing.T) {
	got := Filter(filterFixture(), Query{DateFrom: "2024-01-10", DateTo: "2024-01-15"})
	if want := []int64{2, 3, 1}; !equalIDs(ids(got), want) {
		t.Fatalf("ids = %v, want %v", ids(got), want)
	}

	got = Filter(filterFixture(), Query{DateTo: "2023-12-31"})
	if want := []int64{5}; !equalIDs(ids(got), want) {
		t.Fatalf("ids = %v, want %v", ids(got), want)
	}
}

func TestFilter_Monotonicity(t *testing.T) {
	records := filterFixture()
	ranges := []Query{
		{DateFrom: "2024-01-12", DateTo: "2024-01-20"},
		{DateFrom: "2024-01-10", DateTo: "2024-01-31"},
		{DateFrom: "2024-01-01", DateTo: "2024-12-31"},
		{DateFrom: "2024-01-01"},
		{},
	}
	for i := 1; i < len(ranges); i++ {
		inner := Filter(records, ranges[i-1])
		outer := make(map[int64]bool)
		for _, r := range Filter(records, ranges[i]) {
			outer[r.ID] = true
		}
		for _, r := range inner {
			if !outer[r.ID] {
				t.Fatalf("record %d in %+v but not in wider %+v", r.ID, ranges[i-1], ranges[i])
			}
		}
	}
}

func TestFilter_CategoryFoldsCaseAcrossScripts(t *testing.T) {
	cases := []struct {
		query string
		want  []int64
	}{
		{"каф", []int64{4, 1}},
		{"КАФ", []int64{4, 1}},
		{"афе", []int64{4, 1}},
		{"  кафе у ", []int64{4}},
		{"GRO", []int64{2}},
		{"eries", []int64{2}},
		{"sAlArY", []int64{3}},
		{"   ", []int64{6, 4, 2, 3, 1, 5}},
		{"nothing", []int64{}},
	}
	for _, tc := range cases {
		got := Filter(filterFixture(), Query{Category: tc.query})
		if !equalIDs(ids(got), tc.want) {
			t.Fatalf("query %q: ids = %v, want %v", tc.query, ids(got), tc.want)
		}
	}
}

func TestMatchesCategory(t *testing.T) {
	if !MatchesCategory("Кафе", "КАФ") || !MatchesCategory(" Ёлка ", "ёЛК") {
		t.Fatalf("expected case-folded matches")
	}
	if MatchesCategory("Food", "drink") {
		t.Fatalf("unexpected match")
	}
	if !MatchesCategory("anything", "") {
		t.Fatalf("empty query should match")
	}
}
