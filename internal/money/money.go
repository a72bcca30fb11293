// Package money provides two-decimal currency helpers.
//
// Amounts travel through the engine as float64 values; this package is the
// single place where they are rounded (half-up, two decimals) or divided,
// using decimal arithmetic so no binary floating-point drift leaks across
// an output boundary.
package money

import "github.com/shopspring/decimal"

// Round rounds v half-up to two decimal places.
func Round(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// Cents converts v to an integer number of cents, rounding half-up.
func Cents(v float64) int64 {
	return decimal.NewFromFloat(v).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// FromCents converts an integer number of cents back to a float amount.
func FromCents(c int64) float64 {
	f, _ := decimal.NewFromInt(c).Div(decimal.NewFromInt(100)).Float64()
	return f
}

// SplitEven divides total across n shares so the shares sum exactly to
// total. Division happens in cents; the leftover cents go to the last
// shares, so earlier shares round down and later shares absorb the
// remainder (100.00 across 3 yields 33.33, 33.33, 33.34).
func SplitEven(total float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	cents := Cents(total)
	base := cents / int64(n)
	rem := cents - base*int64(n)

	shares := make([]float64, n)
	for i := range shares {
		c := base
		// The last rem shares each take one extra cent.
		if int64(n-i) <= rem {
			c++
		}
		shares[i] = FromCents(c)
	}
	return shares
}
