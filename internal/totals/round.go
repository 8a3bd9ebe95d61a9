// Package totals derives the monetary totals of a commercial document
// (purchase order or sales quotation) from its line items and document-level
// adjustments. Every function here is pure: callers recompute from scratch
// after any edit instead of patching previous results.
package totals

import "math"

// epsilon is the gap between 1.0 and the next representable float64.
var epsilon = math.Nextafter(1, 2) - 1

// Round2 rounds x to two decimal places, nudging by epsilon first so values
// such as 1.005 or 0.1+0.2 land on the expected cent. Non-finite inputs, and
// values too large to scale by 100, round to 0.
func Round2(x float64) float64 {
	return finite(math.Round((finite(x)+epsilon)*100) / 100)
}

// finite maps NaN and ±Inf to 0.
func finite(x float64) float64 {
	if !isFinite(x) {
		return 0
	}
	return x
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
