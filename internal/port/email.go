package port

import "context"

// QuotationEmail is the summary of a quotation sent to a customer.
type QuotationEmail struct {
	DocumentNumber string
	SenderName     string
	SubTotal       float64
	TotalDiscount  float64
	TaxAmount      float64
	ShippingCost   float64
	NetTotal       float64
	AmountInWords  string
	Lines          []QuotationEmailLine
}

// QuotationEmailLine is one line in a quotation e-mail.
type QuotationEmailLine struct {
	ProductID string
	Quantity  float64
	UnitPrice float64
	Total     float64
}

// EmailSender defines the contract for sending emails.
type EmailSender interface {
	SendQuotation(ctx context.Context, toEmail, toName string, q QuotationEmail) error
}
