// Package xlsxexport renders documents as an Excel workbook with a
// "Documents" summary sheet and an "Items" sheet of line items.
package xlsxexport

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"bizdocs/internal/csvexport"
	"bizdocs/internal/domain"
)

const (
	DocumentsSheet = "Documents"
	ItemsSheet     = "Items"

	// ContentType is the MIME type of the generated workbook.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ItemColumns is the header row of the Items sheet.
var ItemColumns = []string{
	"Document Number",
	"Position",
	"Product ID",
	"Description",
	"Unit",
	"Quantity",
	"Unit Price",
	"Discount %",
	"Discount Amount",
	"Line Total",
}

// Build creates a workbook for docs. The caller owns the returned file and
// must Close it.
func Build(docs []domain.Document) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", DocumentsSheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("renaming sheet: %w", err)
	}
	if _, err := f.NewSheet(ItemsSheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("creating items sheet: %w", err)
	}

	if err := fill(f, docs); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

// Write renders docs as a workbook into w.
func Write(w io.Writer, docs []domain.Document) error {
	f, err := Build(docs)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func fill(f *excelize.File, docs []domain.Document) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E5E7EB"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return fmt.Errorf("creating money style: %w", err)
	}

	if err := writeHeader(f, DocumentsSheet, csvexport.Columns, headerStyle); err != nil {
		return err
	}
	if err := writeHeader(f, ItemsSheet, ItemColumns, headerStyle); err != nil {
		return err
	}

	itemRow := 2
	for i := range docs {
		doc := &docs[i]
		if err := setRow(f, DocumentsSheet, i+2, documentValues(doc)); err != nil {
			return err
		}
		for j := range doc.Items {
			if err := setRow(f, ItemsSheet, itemRow, itemValues(doc, &doc.Items[j])); err != nil {
				return err
			}
			itemRow++
		}
	}

	// Money columns G..W on Documents, F..J on Items.
	if len(docs) > 0 {
		if err := f.SetCellStyle(DocumentsSheet, "G2", fmt.Sprintf("W%d", len(docs)+1), moneyStyle); err != nil {
			return fmt.Errorf("styling documents: %w", err)
		}
	}
	if itemRow > 2 {
		if err := f.SetCellStyle(ItemsSheet, "F2", fmt.Sprintf("J%d", itemRow-1), moneyStyle); err != nil {
			return fmt.Errorf("styling items: %w", err)
		}
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, columns []string, style int) error {
	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(columns), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("styling %s header: %w", sheet, err)
	}
	return f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing %s row %d: %w", sheet, row, err)
	}
	return nil
}

// documentValues mirrors csvexport.Columns with numeric cells for amounts.
func documentValues(doc *domain.Document) []interface{} {
	return []interface{}{
		doc.DocumentNumber,
		doc.Kind.Label(),
		doc.DocumentDate.Format("2006-01-02"),
		doc.PartyRef,
		doc.PartyName,
		len(doc.Items),
		doc.SubTotal,
		doc.LineDiscountTotal,
		doc.GlobalDiscount,
		doc.TotalDiscount,
		doc.TaxableAmount,
		doc.IGSTRate,
		doc.CGSTRate,
		doc.SGSTRate,
		doc.IGSTAmount,
		doc.CGSTAmount,
		doc.SGSTAmount,
		doc.TaxAmount,
		doc.ShippingCost,
		doc.NetTotal,
		optional(doc.PaidAmount, doc.DueAmount != nil),
		optional(doc.DueAmount, false),
		optional(doc.ChangeAmount, false),
		doc.AmountInWords,
		doc.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func itemValues(doc *domain.Document, it *domain.DocumentItem) []interface{} {
	return []interface{}{
		doc.DocumentNumber,
		it.Position + 1,
		it.ProductID,
		it.Description,
		it.Unit,
		it.Quantity,
		it.UnitPrice,
		it.DiscountPercent,
		it.DiscountAmount,
		it.LineTotal,
	}
}

func optional(v *float64, zeroWhenNil bool) interface{} {
	if v == nil {
		if zeroWhenNil {
			return 0.0
		}
		return ""
	}
	return *v
}
