package kernel

import (
	"fmt"

	"orderhub/internal/pkg/errs"
)

// Money is a monetary amount in integer minor currency units (cents).
// Financial arithmetic is exact integer arithmetic throughout the domain;
// floating point is never used for money.
//
// The zero value is a valid amount of zero, so Money needs no constructor
// guard. Negative amounts are representable (modifier deltas may reduce an
// item's price) but entry points that require non-negative amounts enforce
// that with ValidateNonNegative.
//
// Example usage:
//
//	unit := kernel.NewMoney(500)
//	line := unit.MultiplyBy(2).Add(kernel.NewMoney(100)) // 1100
type Money struct {
	amount int64
}

// NewMoney creates a Money value from an amount in minor units.
func NewMoney(amount int64) Money {
	return Money{amount: amount}
}

// Amount returns the amount in minor units.
func (m Money) Amount() int64 {
	return m.amount
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount + other.amount}
}

// MultiplyBy returns the amount multiplied by an integer factor.
func (m Money) MultiplyBy(factor int) Money {
	return Money{amount: m.amount * int64(factor)}
}

// IsEqual compares two amounts for exact equality.
func (m Money) IsEqual(other Money) bool {
	return m.amount == other.amount
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.amount < 0
}

// ValidateNonNegative returns an error naming paramName if the amount is
// negative. Used for tax, tip, and totals, which must never be negative.
func (m Money) ValidateNonNegative(paramName string) error {
	if m.amount < 0 {
		return errs.NewValueIsInvalidErrorWithCause(paramName,
			fmt.Errorf("%d is negative", m.amount))
	}
	return nil
}

// String renders the amount in minor units, e.g. "1188".
func (m Money) String() string {
	return fmt.Sprintf("%d", m.amount)
}
