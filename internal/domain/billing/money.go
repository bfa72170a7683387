// Package billing derives the totals shown on customer and farmer bills.
//
// Everything here is a pure function of its inputs: no I/O, no clocks, no
// shared state. Amounts use decimal arithmetic so recomputing a bill twice
// yields identical values.
package billing

import "github.com/shopspring/decimal"

// Tolerance is the smallest change the reconciler propagates from one
// linked field to the other.
var Tolerance = decimal.New(1, -2)

var hundred = decimal.NewFromInt(100)

// Round2 rounds half away from zero to two decimal places.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// NonNegative clamps d at zero. Callers use it when mapping loosely
// validated input into engine values.
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func withinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(Tolerance)
}

func qty(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}
