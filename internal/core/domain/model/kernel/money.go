package kernel

import (
	"fmt"
	"math"

	"trackorder/internal/pkg/errs"
)

// ErrMoneyIsNegative is returned when constructing a Money from a negative amount.
var ErrMoneyIsNegative = errs.NewValueIsInvalidError("money amount must not be negative")

// Money is a monetary amount stored as an integer count of cents.
//
// The workflow splits every commission price into a 30% deposit and a 70%
// balance; doing that arithmetic in cents keeps the two parts summing exactly
// to the stored total, which the final-payment amount is derived from.
//
// The zero value is a valid amount of 0.00 and is used for unselected addons.
type Money struct {
	cents int64
}

// NewMoneyFromCents creates a Money from a cent count.
func NewMoneyFromCents(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrMoneyIsNegative
	}
	return Money{cents: cents}, nil
}

// NewMoneyFromFloat creates a Money from a decimal amount such as 125.00,
// rounding half away from zero to the nearest cent. This is the conversion
// applied once at the platform boundary; internal arithmetic never goes back
// through floating point.
func NewMoneyFromFloat(amount float64) (Money, error) {
	if amount < 0 {
		return Money{}, ErrMoneyIsNegative
	}
	return Money{cents: int64(math.Round(amount * 100))}, nil
}

// Cents returns the amount as a cent count.
func (m Money) Cents() int64 {
	return m.cents
}

// Float64 returns the amount as a decimal number of currency units.
func (m Money) Float64() float64 {
	return float64(m.cents) / 100
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// Sub returns the difference of two amounts.
// Returns an error when the result would be negative.
func (m Money) Sub(other Money) (Money, error) {
	if other.cents > m.cents {
		return Money{}, ErrMoneyIsNegative
	}
	return Money{cents: m.cents - other.cents}, nil
}

// Share returns the given percentage of the amount, rounded half away from
// zero to the nearest cent. Share(30) of 125.00 is exactly 37.50.
func (m Money) Share(percent int64) Money {
	raw := m.cents * percent
	return Money{cents: (raw + 50) / 100}
}

// IsZero reports whether the amount is 0.00.
func (m Money) IsZero() bool {
	return m.cents == 0
}

// IsEqual compares two amounts by value.
func (m Money) IsEqual(other Money) bool {
	return m.cents == other.cents
}

// String formats the amount with two decimal places, e.g. "37.50".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}
