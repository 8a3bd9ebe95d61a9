package totals

import (
	"sort"
)

// LineItem is one row of a document. Only Quantity, UnitPrice and
// DiscountPercent take part in the arithmetic; the remaining fields are
// carried through untouched.
type LineItem struct {
	ProductID       string  `json:"product_id"`
	Description     string  `json:"description"`
	Unit            string  `json:"unit"`
	Quantity        float64 `json:"quantity"`
	UnitPrice       float64 `json:"unit_price"`
	DiscountPercent float64 `json:"discount_percent"`
}

// LineValuation holds the unrounded amounts for a single line.
type LineValuation struct {
	Base     float64 `json:"base"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

// ValuateLine computes base, discount and total for one line. No rounding
// is applied here; it happens once at the subtotal boundary. A line whose
// arithmetic overflows float64 is valued at 0, like a non-numeric input.
func ValuateLine(item LineItem) LineValuation {
	qty := finite(item.Quantity)
	price := finite(item.UnitPrice)
	pct := finite(item.DiscountPercent)

	base := qty * price
	discount := base * pct / 100
	v := LineValuation{
		Base:     base,
		Discount: discount,
		Total:    base - discount,
	}
	if !isFinite(v.Base) || !isFinite(v.Discount) || !isFinite(v.Total) {
		return LineValuation{}
	}
	return v
}

// Accumulation is the fold of all line valuations.
type Accumulation struct {
	SubTotal          float64 `json:"sub_total"`
	LineDiscountTotal float64 `json:"line_discount_total"`
}

// Accumulate sums line totals and line discounts and rounds both sums.
// Terms are added in ascending order so the result does not depend on
// the order of items. A sum that overflows rounds to 0 in Round2.
func Accumulate(items []LineItem) Accumulation {
	if len(items) == 0 {
		return Accumulation{}
	}

	totals := make([]float64, len(items))
	discounts := make([]float64, len(items))
	for i := range items {
		v := ValuateLine(items[i])
		totals[i] = v.Total
		discounts[i] = v.Discount
	}

	return Accumulation{
		SubTotal:          Round2(sortedSum(totals)),
		LineDiscountTotal: Round2(sortedSum(discounts)),
	}
}

func sortedSum(xs []float64) float64 {
	sort.Float64s(xs)
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum
}
