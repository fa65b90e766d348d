package core

import (
	"errors"
	"testing"
)

func TestParseKind(t *testing.T) {
	cases := []struct {
		in   string
		want Kind
		ok   bool
	}{
		{"income", Income, true},
		{"expense", Expense, true},
		{" Expense ", Expense, true},
		{"INCOME", Income, true},
		{"transfer", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseKind(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("%q expected %q, got %q (err=%v)", tc.in, tc.want, got, err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidKind) {
			t.Fatalf("%q expected ErrInvalidKind, got %v", tc.in, err)
		}
	}
}

func TestDateParts(t *testing.T) {
	cases := []struct {
		in               string
		year, month, day int
		ok               bool
	}{
		{"2024-03-05", 2024, 3, 5, true},
		{"2024-02-29", 2024, 2, 29, true},
		{"2023-02-29", 0, 0, 0, false},
		{"2024-03-05T10:30:00", 2024, 3, 5, true},
		{"2024-03-05 10:30", 2024, 3, 5, true},
		{"05/03/2024", 0, 0, 0, false},
		{"", 0, 0, 0, false},
		{"garbage", 0, 0, 0, false},
	}
	for _, tc := range cases {
		y, m, d, ok := DateOf(tc.in).Parts()
		if ok != tc.ok || y != tc.year || m != tc.month || d != tc.day {
			t.Fatalf("%q expected (%d,%d,%d,%v), got (%d,%d,%d,%v)", tc.in, tc.year, tc.month, tc.day, tc.ok, y, m, d, ok)
		}
	}
}

func TestParseDate(t *testing.T) {
	if _, err := ParseDate("2025-01-31"); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	for _, bad := range []string{"2025-1-31", "2025-02-30", "2025-01-31T00:00", "tomorrow"} {
		if _, err := ParseDate(bad); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("%q expected ErrInvalidDate, got %v", bad, err)
		}
	}
	if got := NewDate(2024, 3, 1).String(); got != "2024-03-01" {
		t.Fatalf("NewDate formatted as %q", got)
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		Kind:     Expense,
		Category: "Кафе",
		Amount:   AmountOf("12.50"),
		Date:     NewDate(2025, 1, 1),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []struct {
		name string
		tx   Transaction
		want error
	}{
		{"kind", Transaction{Kind: "gift", Category: "c", Amount: AmountOf("1"), Date: NewDate(2025, 1, 1)}, ErrInvalidKind},
		{"category", Transaction{Kind: Income, Category: "  ", Amount: AmountOf("1"), Date: NewDate(2025, 1, 1)}, ErrEmptyCategory},
		{"zero amount", Transaction{Kind: Income, Category: "c", Amount: AmountOf("0"), Date: NewDate(2025, 1, 1)}, ErrInvalidAmount},
		{"text amount", Transaction{Kind: Income, Category: "c", Amount: AmountOf("abc"), Date: NewDate(2025, 1, 1)}, ErrInvalidAmount},
		{"date", Transaction{Kind: Income, Category: "c", Amount: AmountOf("1"), Date: DateOf("2025-13-01")}, ErrInvalidDate},
	}
	for _, tc := range bads {
		if err := tc.tx.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}
