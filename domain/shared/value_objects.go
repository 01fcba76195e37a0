package shared

import (
	"errors"
	"fmt"
	"math"
)

// KRW is the only currency the storefront trades in. Amounts are stored in
// the smallest unit (won), so there is no fractional part to round.
const KRW = "KRW"

// Money value object - represents an amount of money
type Money struct {
	amount   int64  // smallest currency unit (won)
	currency string // currency code (KRW)
}

// NewMoney creates a new Money value object
func NewMoney(amount int64, currency string) *Money {
	return &Money{
		amount:   amount,
		currency: currency,
	}
}

// Won creates a KRW Money value object
func Won(amount int64) Money {
	return Money{amount: amount, currency: KRW}
}

// Amount returns the amount in the smallest currency unit
func (m Money) Amount() int64 {
	return m.amount
}

// Currency returns the currency code
func (m Money) Currency() string {
	return m.currency
}

// Add returns a new Money value object holding the sum
func (m Money) Add(other Money) (*Money, error) {
	if m.currency != other.currency {
		return nil, errors.New("cannot add money with different currencies")
	}

	return &Money{
		amount:   m.amount + other.amount,
		currency: m.currency,
	}, nil
}

// Subtract returns a new Money value object holding the difference
func (m Money) Subtract(other Money) (*Money, error) {
	if m.currency != other.currency {
		return nil, errors.New("cannot subtract money with different currencies")
	}

	return &Money{
		amount:   m.amount - other.amount,
		currency: m.currency,
	}, nil
}

// Multiply returns the amount multiplied by a non-negative quantity,
// guarding against int64 overflow
func (m Money) Multiply(quantity int) (*Money, error) {
	if quantity < 0 {
		return nil, errors.New("cannot multiply money by a negative quantity")
	}
	if quantity != 0 && m.amount > math.MaxInt64/int64(quantity) {
		return nil, fmt.Errorf("money overflow: %d * %d", m.amount, quantity)
	}

	return &Money{
		amount:   m.amount * int64(quantity),
		currency: m.currency,
	}, nil
}

// IsGreaterThan reports whether the amount is greater than the other amount
func (m Money) IsGreaterThan(other Money) bool {
	return m.amount > other.amount
}

// IsGreaterThanOrEqual reports whether the amount is at least the other amount
func (m Money) IsGreaterThanOrEqual(other Money) bool {
	return m.amount >= other.amount
}

// Equals compares two Money value objects
func (m Money) Equals(other Money) bool {
	return m.amount == other.amount && m.currency == other.currency
}
