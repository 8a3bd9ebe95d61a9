// Package email renders outgoing messages shared by the sender implementations.
package email

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"bizdocs/internal/port"
)

// Message is a rendered e-mail.
type Message struct {
	Subject string
	HTML    string
	Text    string
}

var quotationHTML = template.Must(template.New("quotation").Funcs(template.FuncMap{
	"money": money,
	"qty":   qty,
}).Parse(`<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; color: #1f2937;">
  <p>Dear {{.ToName}},</p>
  <p>Please find our quotation <strong>{{.Q.DocumentNumber}}</strong> below.</p>
  <table cellpadding="6" cellspacing="0" style="border-collapse: collapse; border: 1px solid #e5e7eb;">
    <tr style="background: #f3f4f6;"><th align="left">Product</th><th align="right">Qty</th><th align="right">Unit Price</th><th align="right">Total</th></tr>
    {{- range .Q.Lines}}
    <tr><td>{{.ProductID}}</td><td align="right">{{qty .Quantity}}</td><td align="right">{{money .UnitPrice}}</td><td align="right">{{money .Total}}</td></tr>
    {{- end}}
  </table>
  <table cellpadding="4" style="margin-top: 12px;">
    <tr><td>Sub Total</td><td align="right">{{money .Q.SubTotal}}</td></tr>
    <tr><td>Discount</td><td align="right">{{money .Q.TotalDiscount}}</td></tr>
    <tr><td>Tax</td><td align="right">{{money .Q.TaxAmount}}</td></tr>
    <tr><td>Shipping</td><td align="right">{{money .Q.ShippingCost}}</td></tr>
    <tr><td><strong>Net Total</strong></td><td align="right"><strong>{{money .Q.NetTotal}}</strong></td></tr>
  </table>
  <p><em>{{.Q.AmountInWords}}</em></p>
  <p>Regards,<br>{{.Q.SenderName}}</p>
</body>
</html>`))

// RenderQuotation builds the quotation e-mail for toName.
func RenderQuotation(toName string, q port.QuotationEmail) (Message, error) {
	var html bytes.Buffer
	if err := quotationHTML.Execute(&html, struct {
		ToName string
		Q      port.QuotationEmail
	}{toName, q}); err != nil {
		return Message{}, fmt.Errorf("rendering quotation html: %w", err)
	}

	var text strings.Builder
	fmt.Fprintf(&text, "Dear %s,\n\nPlease find our quotation %s below.\n\n", toName, q.DocumentNumber)
	for _, l := range q.Lines {
		fmt.Fprintf(&text, "%s  x%s @ %s = %s\n", l.ProductID, qty(l.Quantity), money(l.UnitPrice), money(l.Total))
	}
	fmt.Fprintf(&text, "\nSub Total: %s\nDiscount: %s\nTax: %s\nShipping: %s\nNet Total: %s\n%s\n\nRegards,\n%s",
		money(q.SubTotal), money(q.TotalDiscount), money(q.TaxAmount), money(q.ShippingCost),
		money(q.NetTotal), q.AmountInWords, q.SenderName)

	return Message{
		Subject: fmt.Sprintf("Quotation %s from %s", q.DocumentNumber, q.SenderName),
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func qty(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
