package totals

import (
	"fmt"
	"math"
)

// verifyTolerance is the largest difference accepted between a submitted
// figure and its recomputed value.
const verifyTolerance = 0.01

// Mismatch reports a submitted figure that disagrees with recomputation.
type Mismatch struct {
	Field    string  `json:"field"`
	Expected float64 `json:"expected"`
	Actual   float64 `json:"actual"`
	Message  string  `json:"message"`
}

// Verify recomputes a submitted payload and returns every figure that is
// off by more than one cent. An empty result means the payload is consistent.
func (p Profile) Verify(submitted Payload, cfg *TaxConfiguration) []Mismatch {
	items, adj := submitted.Inputs()
	computed := p.BuildPayload(items, adj, submitted.TaxTypeID, p.Recompute(items, adj, cfg))
	return p.Diff(computed, submitted)
}

// Diff compares the derived figures of submitted against computed.
// Inputs such as quantities and the paid amount are not compared.
func (p Profile) Diff(computed, submitted Payload) []Mismatch {
	var out []Mismatch
	check := func(field string, expected, actual float64) {
		if math.Abs(expected-actual) > verifyTolerance+epsilon {
			out = append(out, Mismatch{
				Field:    field,
				Expected: expected,
				Actual:   actual,
				Message:  fmt.Sprintf("%s mismatch (expected %.2f, got %.2f)", field, expected, actual),
			})
		}
	}

	if len(computed.Items) != len(submitted.Items) {
		out = append(out, Mismatch{
			Field:    "items",
			Expected: float64(len(computed.Items)),
			Actual:   float64(len(submitted.Items)),
			Message:  fmt.Sprintf("item count mismatch (expected %d, got %d)", len(computed.Items), len(submitted.Items)),
		})
	} else {
		for i := range computed.Items {
			check(fmt.Sprintf("items[%d].total", i), computed.Items[i].Total, submitted.Items[i].Total)
		}
	}

	check("grandTotal", computed.GrandTotal, submitted.GrandTotal)
	check("totalDiscount", computed.TotalDiscount, submitted.TotalDiscount)
	check("igstRate", computed.IGSTRate, submitted.IGSTRate)
	check("cgstRate", computed.CGSTRate, submitted.CGSTRate)
	check("sgstRate", computed.SGSTRate, submitted.SGSTRate)
	check("netTotal", computed.NetTotal, submitted.NetTotal)

	if p.TracksSettlement {
		check("due", deref(computed.Due), deref(submitted.Due))
		check("change", deref(computed.Change), deref(submitted.Change))
	}
	return out
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
