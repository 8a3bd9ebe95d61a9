package email_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizdocs/internal/email"
	"bizdocs/internal/port"
)

func sampleQuotation() port.QuotationEmail {
	return port.QuotationEmail{
		DocumentNumber: "QT-0042",
		SenderName:     "Acme <Traders>",
		SubTotal:       230,
		TotalDiscount:  50,
		TaxAmount:      36,
		ShippingCost:   10,
		NetTotal:       246,
		AmountInWords:  "Two Hundred and Forty Six Rupees Only",
		Lines: []port.QuotationEmailLine{
			{ProductID: "p-1", Quantity: 2, UnitPrice: 100, Total: 180},
			{ProductID: "p-2", Quantity: 1.5, UnitPrice: 50, Total: 75},
		},
	}
}

func TestRenderQuotation(t *testing.T) {
	msg, err := email.RenderQuotation("Ravi", sampleQuotation())
	require.NoError(t, err)

	assert.Equal(t, "Quotation QT-0042 from Acme <Traders>", msg.Subject)
	assert.Contains(t, msg.Text, "Dear Ravi")
	assert.Contains(t, msg.Text, "p-2  x1.5 @ 50.00 = 75.00")
	assert.Contains(t, msg.Text, "Net Total: 246.00")
	assert.Contains(t, msg.Text, "Two Hundred and Forty Six Rupees Only")

	assert.Contains(t, msg.HTML, "<strong>QT-0042</strong>")
	assert.Contains(t, msg.HTML, "246.00")
	assert.Contains(t, msg.HTML, "Acme &lt;Traders&gt;")
	assert.NotContains(t, msg.HTML, "Acme <Traders>")
}
