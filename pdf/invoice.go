package pdf

import (
	"bytes"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/tailorbooks/backoffice_backend/models"
	"github.com/tailorbooks/backoffice_backend/utils"
)

const dateLayout = "02/01/2006"

// RenderInvoice lays out an A4 tax invoice: seller block, buyer block, the
// line-item table with per-line GST splits, and the totals box with the
// round-off line when one was applied.
func RenderInvoice(invoice *models.Invoice, company *models.Company, customer *models.Customer) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle("Invoice "+invoice.InvoiceNumber, false)
	doc.AddPage()

	doc.SetFont("Arial", "B", 16)
	doc.CellFormat(0, 10, "TAX INVOICE", "", 1, "C", false, 0, "")

	if company != nil {
		doc.SetFont("Arial", "B", 11)
		doc.CellFormat(0, 6, company.Name, "", 1, "L", false, 0, "")
		doc.SetFont("Arial", "", 9)
		if company.Address != "" {
			doc.CellFormat(0, 5, company.Address, "", 1, "L", false, 0, "")
		}
		if company.Gstin != "" {
			doc.CellFormat(0, 5, "GSTIN: "+company.Gstin, "", 1, "L", false, 0, "")
		}
		if company.Phone != "" {
			doc.CellFormat(0, 5, "Phone: "+company.Phone, "", 1, "L", false, 0, "")
		}
	}
	doc.Ln(3)

	doc.SetFont("Arial", "", 10)
	doc.CellFormat(95, 6, "Invoice No: "+invoice.InvoiceNumber, "", 0, "L", false, 0, "")
	doc.CellFormat(95, 6, "Invoice Date: "+invoice.InvoiceDate.Format(dateLayout), "", 1, "L", false, 0, "")
	if invoice.DueDate != nil {
		doc.CellFormat(95, 6, "Due Date: "+invoice.DueDate.Format(dateLayout), "", 0, "L", false, 0, "")
	}
	doc.CellFormat(95, 6, "Status: "+string(invoice.CurrentStatus), "", 1, "L", false, 0, "")
	doc.Ln(2)

	if customer != nil {
		doc.SetFont("Arial", "B", 10)
		doc.CellFormat(0, 6, "Bill To:", "", 1, "L", false, 0, "")
		doc.SetFont("Arial", "", 9)
		doc.CellFormat(0, 5, customer.Name, "", 1, "L", false, 0, "")
		if customer.Address != "" {
			doc.CellFormat(0, 5, customer.Address, "", 1, "L", false, 0, "")
		}
		if customer.Gstin != "" {
			doc.CellFormat(0, 5, "GSTIN: "+customer.Gstin, "", 1, "L", false, 0, "")
		}
	}
	doc.Ln(3)

	writeLineItemTable(doc, invoice)
	writeTotals(doc, invoice)

	if invoice.Notes != "" {
		doc.Ln(4)
		doc.SetFont("Arial", "I", 9)
		doc.MultiCell(0, 5, "Notes: "+invoice.Notes, "", "L", false)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeLineItemTable(doc *gofpdf.Fpdf, invoice *models.Invoice) {
	doc.SetFont("Arial", "B", 9)
	doc.SetFillColor(230, 230, 230)
	doc.CellFormat(60, 7, "Description", "1", 0, "L", true, 0, "")
	doc.CellFormat(18, 7, "HSN", "1", 0, "C", true, 0, "")
	doc.CellFormat(14, 7, "Qty", "1", 0, "R", true, 0, "")
	doc.CellFormat(22, 7, "Rate", "1", 0, "R", true, 0, "")
	doc.CellFormat(22, 7, "IGST", "1", 0, "R", true, 0, "")
	doc.CellFormat(22, 7, "CGST+SGST", "1", 0, "R", true, 0, "")
	doc.CellFormat(32, 7, "Line Total", "1", 1, "R", true, 0, "")

	doc.SetFont("Arial", "", 9)
	for _, item := range invoice.Details {
		doc.CellFormat(60, 7, item.Description, "1", 0, "L", false, 0, "")
		doc.CellFormat(18, 7, item.HsnCode, "1", 0, "C", false, 0, "")
		doc.CellFormat(14, 7, item.DetailQty.String(), "1", 0, "R", false, 0, "")
		doc.CellFormat(22, 7, money(item.DetailUnitRate), "1", 0, "R", false, 0, "")
		doc.CellFormat(22, 7, money(item.IgstAmount), "1", 0, "R", false, 0, "")
		doc.CellFormat(22, 7, money(item.CgstAmount.Add(item.SgstAmount)), "1", 0, "R", false, 0, "")
		doc.CellFormat(32, 7, money(item.LineTotal), "1", 1, "R", false, 0, "")
	}
}

func writeTotals(doc *gofpdf.Fpdf, invoice *models.Invoice) {
	doc.Ln(3)
	totalRow(doc, "Subtotal", invoice.Subtotal, false)
	if !invoice.TotalIgstAmount.IsZero() {
		totalRow(doc, "IGST", invoice.TotalIgstAmount, false)
	}
	if !invoice.TotalCgstAmount.IsZero() {
		totalRow(doc, "CGST", invoice.TotalCgstAmount, false)
	}
	if !invoice.TotalSgstAmount.IsZero() {
		totalRow(doc, "SGST", invoice.TotalSgstAmount, false)
	}
	if utils.DereferencePtr(invoice.RoundOffApplied) {
		totalRow(doc, "Round Off", invoice.RoundOffDelta, false)
	}
	totalRow(doc, "Grand Total", invoice.TotalAmount, true)
	if invoice.TotalPaidAmount.GreaterThan(decimal.Zero) {
		totalRow(doc, "Amount Paid", invoice.TotalPaidAmount, false)
		totalRow(doc, "Balance Due", invoice.TotalAmount.Sub(invoice.TotalPaidAmount), false)
	}
}

func totalRow(doc *gofpdf.Fpdf, label string, amount decimal.Decimal, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	doc.SetFont("Arial", style, 10)
	doc.CellFormat(136, 6, "", "", 0, "L", false, 0, "")
	doc.CellFormat(22, 6, label, "", 0, "R", false, 0, "")
	doc.CellFormat(32, 6, money(amount), "", 1, "R", false, 0, "")
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FileName is the suggested download name for an invoice PDF.
func FileName(invoice *models.Invoice) string {
	return "invoice-" + invoice.InvoiceNumber + "-" + time.Now().Format("20060102") + ".pdf"
}
