package domain

import "github.com/shopspring/decimal"

var half = decimal.New(5, -1)

// Round2 rounds to two decimal places, halves away from zero for
// non-negative amounts.
func Round2(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return Round2(d.Neg()).Neg()
	}
	return d.Shift(2).Add(half).Floor().Shift(-2)
}

// AmountsMatch reports whether a and b differ by no more than epsilon.
func AmountsMatch(a, b, epsilon decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(epsilon)
}
