package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

const isoDateLayout = "2006-01-02"

type (
	// Kind selects which bucket a transaction's amount contributes to.
	Kind string

	// Date is an ISO-8601 calendar date kept in its textual form. ISO text
	// orders lexically the same way it orders chronologically.
	Date struct {
		raw string
	}

	Transaction struct {
		ID       int64 // Store-assigned, immutable
		Kind     Kind
		Category string
		Amount   Amount
		Date     Date
		Comment  string
	}
)

var (
	ErrInvalidKind     = errors.New("invalid kind")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrEmptyCategory   = errors.New("empty category")
	ErrCategoryTooLong = errors.New("category too long (max 100 characters)")
	ErrCommentTooLong  = errors.New("comment too long (max 500 characters)")
)

// ParseKind accepts the two wire values, ignoring case and surrounding space.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case Income:
		return Income, nil
	case Expense:
		return Expense, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
}

func (k Kind) Valid() bool {
	return k == Income || k == Expense
}

func (k Kind) String() string {
	return string(k)
}

// DateOf wraps stored text without validating it. Legacy rows may carry
// malformed dates; readers use Parts to find out.
func DateOf(s string) Date {
	return Date{raw: strings.TrimSpace(s)}
}

// ParseDate validates s as YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	d := DateOf(s)
	if _, _, _, ok := d.Parts(); !ok || len(d.raw) != len(isoDateLayout) {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// NewDate creates a Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{raw: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Format(isoDateLayout)}
}

func (d Date) String() string {
	return d.raw
}

func (d Date) IsEmpty() bool {
	return d.raw == ""
}

// Parts returns the calendar components. A trailing time component
// ("2024-03-05T10:00" or "2024-03-05 10:00") is ignored.
func (d Date) Parts() (year, month, day int, ok bool) {
	s := d.raw
	if len(s) > len(isoDateLayout) && (s[len(isoDateLayout)] == 'T' || s[len(isoDateLayout)] == ' ') {
		s = s[:len(isoDateLayout)]
	}
	t, err := time.Parse(isoDateLayout, s)
	if err != nil {
		return 0, 0, 0, false
	}
	return t.Year(), int(t.Month()), t.Day(), true
}

// Validate is applied on the write path only; reads tolerate anything.
func (t Transaction) Validate() error {
	if !t.Kind.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidKind, t.Kind)
	}
	category := strings.TrimSpace(t.Category)
	if category == "" {
		return ErrEmptyCategory
	}
	if utf8.RuneCountInString(category) > 100 {
		return ErrCategoryTooLong
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if _, err := ParseDate(t.Date.String()); err != nil {
		return err
	}
	if utf8.RuneCountInString(t.Comment) > 500 {
		return ErrCommentTooLong
	}
	return nil
}
