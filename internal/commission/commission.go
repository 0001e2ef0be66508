// Package commission computes staff commission amounts from job amounts and
// configured percentage rates.
package commission

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrNegativeAmount    = errors.New("invalid_amount")
	ErrInvalidPercentage = errors.New("invalid_percentage")
)

var oneHundred = decimal.NewFromInt(100)

// Compute returns amount * percentage / 100 at full precision.
// amount must be >= 0 and percentage must be within [0, 100].
func Compute(amount, percentage decimal.Decimal) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Zero, ErrNegativeAmount
	}
	if percentage.IsNegative() || percentage.GreaterThan(oneHundred) {
		return decimal.Zero, ErrInvalidPercentage
	}
	return amount.Mul(percentage).Div(oneHundred), nil
}

// ValidPercentage reports whether p is within [0, 100].
func ValidPercentage(p decimal.Decimal) bool {
	return !p.IsNegative() && !p.GreaterThan(oneHundred)
}

// RoundForDisplay rounds a stored commission to the currency minor unit.
// Stored values keep full precision; only presentation rounds.
func RoundForDisplay(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}
