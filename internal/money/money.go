// Package money converts between decimal currency values and their exact
// integer representation in cents.
//
// Amounts are stored and transported as decimals (DECIMAL(12,2) in the
// database), but all arithmetic that must be exact, like splitting an
// amount into installments, happens on integer cents. The two functions here are
// the only place where the conversion happens.
package money

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ToCents converts a currency value to integer cents.
//
// Rounding is half away from zero, so 10.005 becomes 1001 and 10.004
// becomes 1000.
func ToCents(value decimal.Decimal) int64 {
	return value.Mul(hundred).Round(0).IntPart()
}

// FromCents converts integer cents back to a currency value with exactly
// two decimal places.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
