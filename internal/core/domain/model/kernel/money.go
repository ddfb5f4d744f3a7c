package kernel

import (
	"fmt"

	"orderdesk/internal/pkg/errs"
)

// Money is a value object holding a monetary amount in minor currency units
// (cents). Storing integers avoids floating point drift in totals and revenue
// aggregation. Money is immutable; arithmetic returns new values.
//
// The zero value (zero cents) is valid: shipping and tax are frequently zero.
// Negative amounts are rejected at construction.
type Money struct {
	cents int64
}

// NewMoney creates a Money value from an amount in minor units.
// Returns an error for negative amounts.
func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"money",
			fmt.Errorf("%d is negative", cents),
		)
	}
	return Money{cents: cents}, nil
}

// MustNewMoney creates a Money value and panics on a negative amount.
// Intended for tests and fixtures with known-valid values.
func MustNewMoney(cents int64) Money {
	m, err := NewMoney(cents)
	if err != nil {
		panic(err)
	}
	return m
}

// Cents returns the amount in minor currency units.
func (m Money) Cents() int64 {
	return m.cents
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// IsEqual compares two amounts for equality.
func (m Money) IsEqual(other Money) bool {
	return m.cents == other.cents
}

// IsGreaterOrEqual reports whether m is at least other.
func (m Money) IsGreaterOrEqual(other Money) bool {
	return m.cents >= other.cents
}

// String formats the amount as a decimal with two fraction digits, e.g. "150.00".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}
