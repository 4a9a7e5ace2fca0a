package utils

import (
	"math"

	"github.com/shopspring/decimal"
)

// LineTotal returns quantity * price computed in decimal, so 3 x 150.5 is
// exactly 451.5 and 3 x 0.1 is 0.3 rather than 0.30000000000000004.
// NaN or infinite input counts as 0, and a product that does not fit a
// float64 yields 0.
func LineTotal(quantity, price float64) float64 {
	return toFloat(amount(quantity).Mul(amount(price)))
}

// Sum adds amounts in decimal and returns the nearest float64, with the same
// treatment of non-finite values as LineTotal.
func Sum(amounts ...float64) float64 {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(amount(a))
	}
	return toFloat(total)
}

// Finite reports whether f is neither NaN nor infinite.
func Finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func amount(f float64) decimal.Decimal {
	if !Finite(f) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

func toFloat(d decimal.Decimal) float64 {
	f := d.InexactFloat64()
	if !Finite(f) {
		return 0
	}
	return f
}
