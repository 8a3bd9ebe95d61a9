package totals

// TaxConfiguration is the selected tax type as the engine sees it.
// A nil *TaxConfiguration means no tax type is selected, which is a
// different state from the document-level no-tax override.
type TaxConfiguration struct {
	IsInterState bool    `json:"is_inter_state"`
	Percentage   float64 `json:"percentage"`
}

// TaxBreakdown is the effective GST split for a document.
// Exactly one of IGSTRate or the CGST/SGST pair is non-zero when tax applies.
type TaxBreakdown struct {
	IGSTRate   float64 `json:"igst_rate"`
	CGSTRate   float64 `json:"cgst_rate"`
	SGSTRate   float64 `json:"sgst_rate"`
	IGSTAmount float64 `json:"igst_amount"`
	CGSTAmount float64 `json:"cgst_amount"`
	SGSTAmount float64 `json:"sgst_amount"`
	TaxAmount  float64 `json:"tax_amount"`
}

// ResolveTax maps the selected configuration to an IGST or CGST/SGST split
// and computes the tax on the taxable amount.
func ResolveTax(cfg *TaxConfiguration, noTax bool, taxableAmount float64) TaxBreakdown {
	if noTax || cfg == nil {
		return TaxBreakdown{}
	}

	pct := finite(cfg.Percentage)
	var b TaxBreakdown
	if cfg.IsInterState {
		b.IGSTRate = pct
	} else {
		b.CGSTRate = pct / 2
		b.SGSTRate = pct / 2
	}

	b.TaxAmount = Round2(finite(taxableAmount) * (b.IGSTRate + b.CGSTRate + b.SGSTRate) / 100)

	// Component amounts always re-add to TaxAmount.
	if cfg.IsInterState {
		b.IGSTAmount = b.TaxAmount
	} else {
		b.CGSTAmount = Round2(b.TaxAmount / 2)
		b.SGSTAmount = Round2(b.TaxAmount - b.CGSTAmount)
	}
	return b
}
