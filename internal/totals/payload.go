package totals

// PayloadItem is a line as sent to the persistence backend. Discount is the
// line discount percent; Total is the rounded line total.
type PayloadItem struct {
	ProductID string  `json:"productId"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Discount  float64 `json:"discount"`
	Total     float64 `json:"total"`
}

// Payload is the save/update body shaped from a recomputation.
// PaidAmount, Due and Change are only set for profiles that track settlement.
type Payload struct {
	Discount      float64       `json:"discount"`
	TotalDiscount float64       `json:"totalDiscount"`
	ShippingCost  float64       `json:"shippingCost"`
	GrandTotal    float64       `json:"grandTotal"`
	NetTotal      float64       `json:"netTotal"`
	PaidAmount    *float64      `json:"paidAmount,omitempty"`
	Due           *float64      `json:"due,omitempty"`
	Change        *float64      `json:"change,omitempty"`
	NoTax         int           `json:"noTax"`
	TaxTypeID     *string       `json:"taxTypeId"`
	IGSTRate      float64       `json:"igstRate"`
	CGSTRate      float64       `json:"cgstRate"`
	SGSTRate      float64       `json:"sgstRate"`
	Items         []PayloadItem `json:"items"`
}

// BuildPayload shapes items, adjustments and their totals into a Payload.
func (p Profile) BuildPayload(items []LineItem, adj Adjustments, taxTypeID *string, t DocumentTotals) Payload {
	out := Payload{
		Discount:      finite(adj.GlobalDiscount),
		TotalDiscount: t.TotalDiscount,
		ShippingCost:  finite(adj.ShippingCost),
		GrandTotal:    t.SubTotal,
		NetTotal:      t.NetPayable,
		TaxTypeID:     taxTypeID,
		IGSTRate:      t.Tax.IGSTRate,
		CGSTRate:      t.Tax.CGSTRate,
		SGSTRate:      t.Tax.SGSTRate,
		Items:         make([]PayloadItem, 0, len(items)),
	}
	if adj.NoTax {
		out.NoTax = 1
	}

	if p.TracksSettlement {
		paid := 0.0
		if adj.PaidAmount != nil {
			paid = finite(*adj.PaidAmount)
		}
		due, change := t.DueAmount, t.ChangeAmount
		out.PaidAmount = &paid
		out.Due = &due
		out.Change = &change
	}

	for _, item := range items {
		v := ValuateLine(item)
		out.Items = append(out.Items, PayloadItem{
			ProductID: item.ProductID,
			Quantity:  finite(item.Quantity),
			UnitPrice: finite(item.UnitPrice),
			Discount:  finite(item.DiscountPercent),
			Total:     Round2(v.Total),
		})
	}
	return out
}

// Inputs reverses a Payload back into engine inputs.
func (pl Payload) Inputs() ([]LineItem, Adjustments) {
	items := make([]LineItem, 0, len(pl.Items))
	for _, it := range pl.Items {
		items = append(items, LineItem{
			ProductID:       it.ProductID,
			Quantity:        it.Quantity,
			UnitPrice:       it.UnitPrice,
			DiscountPercent: it.Discount,
		})
	}
	adj := Adjustments{
		GlobalDiscount: pl.Discount,
		ShippingCost:   pl.ShippingCost,
		NoTax:          pl.NoTax == 1,
		PaidAmount:     pl.PaidAmount,
	}
	return items, adj
}
