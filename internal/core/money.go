// Package core provides money parsing and handling utilities.
//
// Amounts are carried as text exactly as stored and converted to
// decimal.Decimal only when read, so corrupt legacy rows never abort a
// computation.
package core

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Bounds on stored magnitudes. Anything outside them is treated as corrupt:
// an exponent like 1e2000000000 would otherwise expand to billions of digits
// once rounded.
const (
	maxIntegerDigits = 15
	minExponent      = -30
)

// plainAmount is the only shape accepted from forms: digits with an optional
// dot or comma fraction, no sign and no exponent.
var plainAmount = regexp.MustCompile(`^[0-9]{1,15}([.,][0-9]{1,12})?$`)

// Amount is a monetary value in its stored textual form.
type Amount struct {
	raw string
}

// AmountOf wraps stored text without validating it.
func AmountOf(s string) Amount {
	return Amount{raw: strings.TrimSpace(s)}
}

// AmountFromDecimal creates an Amount from an exact decimal value.
func AmountFromDecimal(d decimal.Decimal) Amount {
	return Amount{raw: d.String()}
}

// ParseAmount parses user input for the write path.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators.
// Empty, non-numeric, zero and negative values are rejected.
//
// Examples:
//
//	ParseAmount("12.34")  -> 12.34, nil
//	ParseAmount("12,34")  -> 12.34, nil
//	ParseAmount("-1")     -> ErrInvalidAmount
//	ParseAmount("1e3")    -> ErrInvalidAmount
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}, ErrInvalidAmount
	}
	if !plainAmount.MatchString(s) {
		return Amount{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsPositive() {
		return Amount{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return AmountFromDecimal(d), nil
}

func (a Amount) String() string {
	return a.raw
}

// Decimal coerces the amount for aggregation: anything unparseable, not
// strictly positive or out of range counts as zero.
func (a Amount) Decimal() decimal.Decimal {
	d, err := decimal.NewFromString(a.raw)
	if err != nil || !d.IsPositive() || !inRange(d) {
		return decimal.Zero
	}
	return d
}

func inRange(d decimal.Decimal) bool {
	exp := int(d.Exponent())
	return exp >= minExponent && exp+d.NumDigits() <= maxIntegerDigits
}

func (a Amount) Validate() error {
	if _, err := decimal.NewFromString(a.raw); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidAmount, a.raw)
	}
	if !a.Decimal().IsPositive() {
		return fmt.Errorf("%w: %q", ErrInvalidAmount, a.raw)
	}
	return nil
}

// Display formats a rounded value with exactly two decimals.
func Display(d decimal.Decimal) string {
	return d.StringFixed(2)
}
