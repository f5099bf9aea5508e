// Package money provides a fixed-point representation for monetary amounts.
// Amounts are tracked as integer cents internally so that repeated addition
// never accumulates binary floating-point drift; conversion to float64
// happens only at API boundaries.
package money

import "math"

// Cents is a monetary amount in integer cents.
type Cents int64

// FromAmount converts a decimal amount to cents, rounding to the nearest cent.
func FromAmount(amount float64) Cents {
	return Cents(math.Round(amount * 100))
}

// Amount converts cents back to a decimal amount with 2 decimal places.
func (c Cents) Amount() float64 {
	return float64(c) / 100
}

// Abs returns the absolute value.
func (c Cents) Abs() Cents {
	if c < 0 {
		return -c
	}
	return c
}

// Round rounds a decimal amount to 2 decimal places.
func Round(amount float64) float64 {
	return math.Round(amount*100) / 100
}
