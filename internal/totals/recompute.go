package totals

import "math"

// Adjustments are the document-level inputs that sit beside the line items.
// PaidAmount is nil for documents that do not record a payment.
type Adjustments struct {
	GlobalDiscount float64  `json:"global_discount"`
	ShippingCost   float64  `json:"shipping_cost"`
	NoTax          bool     `json:"no_tax"`
	PaidAmount     *float64 `json:"paid_amount,omitempty"`
}

// DocumentTotals is fully derived from line items, adjustments and the
// selected tax configuration. It is never updated in place.
type DocumentTotals struct {
	SubTotal          float64      `json:"sub_total"`
	LineDiscountTotal float64      `json:"line_discount_total"`
	TotalDiscount     float64      `json:"total_discount"`
	TaxableAmount     float64      `json:"taxable_amount"`
	Tax               TaxBreakdown `json:"tax"`
	TaxAmount         float64      `json:"tax_amount"`
	NetPayable        float64      `json:"net_payable"`
	DueAmount         float64      `json:"due_amount"`
	ChangeAmount      float64      `json:"change_amount"`
	TracksSettlement  bool         `json:"tracks_settlement"`
	AmountInWords     string       `json:"amount_in_words"`
}

// Profile captures the differences between document kinds. Purchase orders
// reconcile a paid amount; quotations do not.
type Profile struct {
	Name             string
	TracksSettlement bool
}

var (
	// PurchaseOrderProfile computes due and change against the paid amount.
	PurchaseOrderProfile = Profile{Name: "purchase_order", TracksSettlement: true}
	// QuotationProfile never exposes settlement figures.
	QuotationProfile = Profile{Name: "quotation", TracksSettlement: false}
)

// Recompute runs line valuation, accumulation, tax resolution and settlement
// in that order and returns a fresh DocumentTotals.
func (p Profile) Recompute(items []LineItem, adj Adjustments, cfg *TaxConfiguration) DocumentTotals {
	acc := Accumulate(items)

	globalDiscount := finite(adj.GlobalDiscount)
	taxable := Round2(math.Max(0, acc.SubTotal-globalDiscount))
	tax := ResolveTax(cfg, adj.NoTax, taxable)

	var paid *float64
	if p.TracksSettlement {
		paid = adj.PaidAmount
		if paid == nil {
			zero := 0.0
			paid = &zero
		}
	}
	s := Settle(taxable, tax.TaxAmount, finite(adj.ShippingCost), paid)

	return DocumentTotals{
		SubTotal:          acc.SubTotal,
		LineDiscountTotal: acc.LineDiscountTotal,
		TotalDiscount:     Round2(acc.LineDiscountTotal + globalDiscount),
		TaxableAmount:     taxable,
		Tax:               tax,
		TaxAmount:         tax.TaxAmount,
		NetPayable:        s.NetPayable,
		DueAmount:         s.DueAmount,
		ChangeAmount:      s.ChangeAmount,
		TracksSettlement:  s.Tracked,
		AmountInWords:     AmountInWords(s.NetPayable),
	}
}
