// Package money converts between decimal amount strings and integer
// minor units (cents). All arithmetic elsewhere in the application is
// done on int64 cents; decimals only appear at the API boundary.
package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned for unparseable, zero, negative, or
// out-of-range amounts.
var ErrInvalidAmount = errors.New("invalid amount")

// ParseCents parses a decimal amount string into integer cents.
// Amounts must be strictly positive. A third decimal place is rounded
// half away from zero.
func ParseCents(s string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if d.LessThanOrEqual(decimal.Zero) {
		return 0, ErrInvalidAmount
	}

	cents := d.Shift(2).Round(0)
	if !cents.BigInt().IsInt64() {
		return 0, ErrInvalidAmount
	}
	n := cents.IntPart()
	if n <= 0 {
		return 0, ErrInvalidAmount
	}
	return n, nil
}

// Format renders cents as a fixed two-decimal string, e.g. 1234 -> "12.34".
func Format(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}
