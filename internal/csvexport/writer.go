package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"bizdocs/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Columns is the CSV header row.
var Columns = []string{
	"Document Number",
	"Kind",
	"Document Date",
	"Party Ref",
	"Party Name",
	"Line Item Count",
	"Sub Total",
	"Line Discount",
	"Global Discount",
	"Total Discount",
	"Taxable Amount",
	"IGST Rate",
	"CGST Rate",
	"SGST Rate",
	"IGST",
	"CGST",
	"SGST",
	"Tax Amount",
	"Shipping",
	"Net Total",
	"Paid",
	"Due",
	"Change",
	"Amount In Words",
	"Created At",
}

// Writer wraps csv.Writer for exporting documents as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(Columns)
}

// WriteDocuments converts a batch of documents to CSV rows and writes them.
func (w *Writer) WriteDocuments(docs []domain.Document) error {
	for i := range docs {
		if err := w.csv.Write(Row(&docs[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// Row converts a document to one value per column. Settlement columns are
// blank for documents that do not track a paid amount.
func Row(doc *domain.Document) []string {
	return []string{
		doc.DocumentNumber,
		doc.Kind.Label(),
		doc.DocumentDate.Format("2006-01-02"),
		doc.PartyRef,
		doc.PartyName,
		strconv.Itoa(len(doc.Items)),
		FormatMoney(doc.SubTotal),
		FormatMoney(doc.LineDiscountTotal),
		FormatMoney(doc.GlobalDiscount),
		FormatMoney(doc.TotalDiscount),
		FormatMoney(doc.TaxableAmount),
		FormatMoney(doc.IGSTRate),
		FormatMoney(doc.CGSTRate),
		FormatMoney(doc.SGSTRate),
		FormatMoney(doc.IGSTAmount),
		FormatMoney(doc.CGSTAmount),
		FormatMoney(doc.SGSTAmount),
		FormatMoney(doc.TaxAmount),
		FormatMoney(doc.ShippingCost),
		FormatMoney(doc.NetTotal),
		formatOptional(doc.PaidAmount, doc.DueAmount != nil),
		formatOptional(doc.DueAmount, false),
		formatOptional(doc.ChangeAmount, false),
		doc.AmountInWords,
		doc.CreatedAt.Format(time.RFC3339),
	}
}

// FormatMoney renders v with two decimals.
func FormatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// formatOptional renders a nullable amount; zeroWhenNil prints 0.00 for a
// nil value that belongs to a settled document.
func formatOptional(v *float64, zeroWhenNil bool) string {
	if v == nil {
		if zeroWhenNil {
			return FormatMoney(0)
		}
		return ""
	}
	return FormatMoney(*v)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "export"
	}
	return s
}

// BuildFilename returns {sanitized_name}_{YYYY-MM-DD}.{ext}.
func BuildFilename(name string, date time.Time, ext string) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(name), date.Format("2006-01-02"), ext)
}
