package domain

import (
	"time"

	"github.com/google/uuid"

	"bizdocs/internal/totals"
)

// Tenant represents an isolated organizational tenant.
type Tenant struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	StateCode string    `db:"state_code" json:"state_code"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// User represents an authenticated user belonging to a tenant.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	TenantID     uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// TaxType is a tenant's GST configuration that documents select by ID.
type TaxType struct {
	ID           uuid.UUID `db:"id" json:"id"`
	TenantID     uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Name         string    `db:"name" json:"name"`
	Percentage   float64   `db:"percentage" json:"percentage"`
	IsInterState bool      `db:"is_inter_state" json:"is_inter_state"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Configuration returns the engine view of the tax type.
func (t *TaxType) Configuration() *totals.TaxConfiguration {
	if t == nil {
		return nil
	}
	return &totals.TaxConfiguration{IsInterState: t.IsInterState, Percentage: t.Percentage}
}

// Document is a purchase order or a sales quotation. All monetary figures
// below ShippingCost are derived by the totals engine and stored as computed.
type Document struct {
	ID             uuid.UUID    `db:"id" json:"id"`
	TenantID       uuid.UUID    `db:"tenant_id" json:"tenant_id"`
	Kind           DocumentKind `db:"kind" json:"kind"`
	DocumentNumber string       `db:"document_number" json:"document_number"`
	PartyRef       string       `db:"party_ref" json:"party_ref"`
	PartyName      string       `db:"party_name" json:"party_name"`
	PartyEmail     string       `db:"party_email" json:"party_email"`
	PartyStateCode string       `db:"party_state_code" json:"party_state_code"`
	DocumentDate   time.Time    `db:"document_date" json:"document_date"`
	Notes          string       `db:"notes" json:"notes"`

	TaxTypeID      *uuid.UUID `db:"tax_type_id" json:"tax_type_id"`
	NoTax          bool       `db:"no_tax" json:"no_tax"`
	GlobalDiscount float64    `db:"global_discount" json:"global_discount"`
	ShippingCost   float64    `db:"shipping_cost" json:"shipping_cost"`
	PaidAmount     *float64   `db:"paid_amount" json:"paid_amount,omitempty"`

	SubTotal          float64  `db:"sub_total" json:"sub_total"`
	LineDiscountTotal float64  `db:"line_discount_total" json:"line_discount_total"`
	TotalDiscount     float64  `db:"total_discount" json:"total_discount"`
	TaxableAmount     float64  `db:"taxable_amount" json:"taxable_amount"`
	IGSTRate          float64  `db:"igst_rate" json:"igst_rate"`
	CGSTRate          float64  `db:"cgst_rate" json:"cgst_rate"`
	SGSTRate          float64  `db:"sgst_rate" json:"sgst_rate"`
	IGSTAmount        float64  `db:"igst_amount" json:"igst_amount"`
	CGSTAmount        float64  `db:"cgst_amount" json:"cgst_amount"`
	SGSTAmount        float64  `db:"sgst_amount" json:"sgst_amount"`
	TaxAmount         float64  `db:"tax_amount" json:"tax_amount"`
	NetTotal          float64  `db:"net_total" json:"net_total"`
	DueAmount         *float64 `db:"due_amount" json:"due_amount,omitempty"`
	ChangeAmount      *float64 `db:"change_amount" json:"change_amount,omitempty"`
	AmountInWords     string   `db:"amount_in_words" json:"amount_in_words"`

	CreatedBy uuid.UUID `db:"created_by" json:"created_by"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	Items []DocumentItem `db:"-" json:"items"`
}

// DocumentItem is one stored line of a Document.
type DocumentItem struct {
	ID              uuid.UUID `db:"id" json:"id"`
	DocumentID      uuid.UUID `db:"document_id" json:"document_id"`
	TenantID        uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Position        int       `db:"position" json:"position"`
	ProductID       string    `db:"product_id" json:"product_id"`
	Description     string    `db:"description" json:"description"`
	Unit            string    `db:"unit" json:"unit"`
	Quantity        float64   `db:"quantity" json:"quantity"`
	UnitPrice       float64   `db:"unit_price" json:"unit_price"`
	DiscountPercent float64   `db:"discount_percent" json:"discount_percent"`
	DiscountAmount  float64   `db:"discount_amount" json:"discount_amount"`
	LineTotal       float64   `db:"line_total" json:"line_total"`
}

// LineItems returns the engine inputs for the document's items.
func (d *Document) LineItems() []totals.LineItem {
	out := make([]totals.LineItem, len(d.Items))
	for i := range d.Items {
		it := &d.Items[i]
		out[i] = totals.LineItem{
			ProductID:       it.ProductID,
			Description:     it.Description,
			Unit:            it.Unit,
			Quantity:        it.Quantity,
			UnitPrice:       it.UnitPrice,
			DiscountPercent: it.DiscountPercent,
		}
	}
	return out
}

// Adjustments returns the document-level engine inputs.
func (d *Document) Adjustments() totals.Adjustments {
	return totals.Adjustments{
		GlobalDiscount: d.GlobalDiscount,
		ShippingCost:   d.ShippingCost,
		NoTax:          d.NoTax,
		PaidAmount:     d.PaidAmount,
	}
}

// ApplyTotals copies a recomputation onto the document and its items.
// Settlement fields are cleared unless t tracks settlement.
func (d *Document) ApplyTotals(t totals.DocumentTotals) {
	d.SubTotal = t.SubTotal
	d.LineDiscountTotal = t.LineDiscountTotal
	d.TotalDiscount = t.TotalDiscount
	d.TaxableAmount = t.TaxableAmount
	d.IGSTRate = t.Tax.IGSTRate
	d.CGSTRate = t.Tax.CGSTRate
	d.SGSTRate = t.Tax.SGSTRate
	d.IGSTAmount = t.Tax.IGSTAmount
	d.CGSTAmount = t.Tax.CGSTAmount
	d.SGSTAmount = t.Tax.SGSTAmount
	d.TaxAmount = t.TaxAmount
	d.NetTotal = t.NetPayable
	d.AmountInWords = t.AmountInWords

	if t.TracksSettlement {
		due, change := t.DueAmount, t.ChangeAmount
		d.DueAmount = &due
		d.ChangeAmount = &change
	} else {
		d.PaidAmount = nil
		d.DueAmount = nil
		d.ChangeAmount = nil
	}

	for i := range d.Items {
		it := &d.Items[i]
		v := totals.ValuateLine(totals.LineItem{
			Quantity:        it.Quantity,
			UnitPrice:       it.UnitPrice,
			DiscountPercent: it.DiscountPercent,
		})
		it.Position = i
		it.DiscountAmount = totals.Round2(v.Discount)
		it.LineTotal = totals.Round2(v.Total)
	}
}

// DocumentFilters narrows document listings.
type DocumentFilters struct {
	Kind     DocumentKind
	PartyRef string
	From     *time.Time
	To       *time.Time
}
