// Package report renders invoices for export: a PDF of a single invoice
// and an xlsx register of all invoices.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Auckfmine/client-portal/internal/domain/billing"
	"github.com/Auckfmine/client-portal/internal/domain/entity"
)

// Reporter renders invoice exports
type Reporter struct {
	companyName string
	logger      *zap.Logger
}

// NewReporter creates a new Reporter
func NewReporter(companyName string, logger *zap.Logger) *Reporter {
	return &Reporter{
		companyName: companyName,
		logger:      logger,
	}
}

// InvoicePDF renders one invoice as a PDF document
func (r *Reporter) InvoicePDF(invoice *entity.Invoice) ([]byte, error) {
	r.logger.Info("Rendering invoice PDF",
		zap.Int64("invoice_id", invoice.ID),
		zap.String("number", invoice.InvoiceNumber))

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(120, 10, r.companyName)
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "INVOICE", "", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, "Invoice Number: "+invoice.InvoiceNumber, "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 6, "Issue Date: "+billing.FormatDate(invoice.IssueDate), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 6, "Due Date: "+billing.FormatDate(invoice.DueDate), "", 1, "R", false, 0, "")

	badge := billing.BadgeFor(billing.EffectiveStatus(invoice.Status, invoice.DueDate, time.Now()))
	pdf.CellFormat(0, 6, "Status: "+badge.Label, "", 1, "R", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 6, "Bill To")
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, invoice.ClientName)
	pdf.Ln(10)

	// Items table
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(90, 8, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 8, "Quantity", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 8, "Unit Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 8, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, item := range invoice.Items {
		pdf.CellFormat(90, 8, item.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, item.Quantity.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, item.UnitPrice.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, item.Amount().StringFixed(2), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	totalRow := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Arial", style, 10)
		pdf.CellFormat(155, 7, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, value, "", 1, "R", false, 0, "")
	}
	totalRow("Subtotal", invoice.Subtotal.StringFixed(2), false)
	if invoice.Discount.IsPositive() {
		totalRow(fmt.Sprintf("Discount (%s%%)", invoice.DiscountPct.String()), "-"+invoice.Discount.StringFixed(2), false)
	}
	if invoice.Tax.IsPositive() {
		totalRow(fmt.Sprintf("Tax (%s%%)", invoice.TaxRate.String()), invoice.Tax.StringFixed(2), false)
	}
	totalRow("Total", invoice.Total.StringFixed(2), true)
	totalRow("Amount Due", invoice.AmountDue.StringFixed(2), true)

	if invoice.Notes != "" {
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 10)
		pdf.Cell(0, 6, "Notes")
		pdf.Ln(6)
		pdf.SetFont("Arial", "", 9)
		pdf.MultiCell(0, 5, invoice.Notes, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}

var registerColumns = []string{"Invoice Number", "Client", "Issue Date", "Due Date", "Status", "Subtotal", "Discount", "Tax", "Total", "Amount Due"}

// InvoiceRegister renders all invoices into an xlsx workbook, one row per
// invoice, with the derived display status.
func (r *Reporter) InvoiceRegister(invoices []*entity.Invoice) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	for col, title := range registerColumns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to build header cell: %w", err)
		}
		r.setCell(f, sheet, cell, title)
	}

	now := time.Now()
	for row, inv := range invoices {
		badge := billing.BadgeFor(billing.EffectiveStatus(inv.Status, inv.DueDate, now))
		values := []interface{}{
			inv.InvoiceNumber,
			inv.ClientName,
			billing.FormatDate(inv.IssueDate),
			billing.FormatDate(inv.DueDate),
			badge.Label,
			inv.Subtotal.StringFixed(2),
			inv.Discount.StringFixed(2),
			inv.Tax.StringFixed(2),
			inv.Total.StringFixed(2),
			inv.AmountDue.StringFixed(2),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, fmt.Errorf("failed to build cell: %w", err)
			}
			r.setCell(f, sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write register workbook: %w", err)
	}

	r.logger.Info("Invoice register rendered", zap.Int("invoices", len(invoices)))
	return buf.Bytes(), nil
}

func (r *Reporter) setCell(f *excelize.File, sheet, cell string, value interface{}) {
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		r.logger.Warn("Failed to set cell value",
			zap.String("sheet", sheet),
			zap.String("cell", cell),
			zap.Error(err))
	}
}
