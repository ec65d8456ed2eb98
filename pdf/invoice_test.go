package pdf

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tailorbooks/backoffice_backend/gst"
	"github.com/tailorbooks/backoffice_backend/models"
)

func sampleInvoice() *models.Invoice {
	applied := true
	due := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	return &models.Invoice{
		ID:              1,
		InvoiceNumber:   "INV-0001",
		CustomerId:      7,
		InvoiceDate:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		DueDate:         &due,
		CurrentStatus:   gst.InvoiceStatusUnpaid,
		Subtotal:        decimal.NewFromInt(2000),
		TotalCgstAmount: decimal.NewFromInt(180),
		TotalSgstAmount: decimal.NewFromInt(180),
		TotalTaxAmount:  decimal.NewFromInt(360),
		TotalAmount:     decimal.NewFromInt(2360),
		RoundOffApplied: &applied,
		RoundOffDelta:   decimal.NewFromFloat(0.40),
		Details: []models.InvoiceItem{
			{
				Description:    "Kurta stitching",
				HsnCode:        "9988",
				DetailQty:      decimal.NewFromInt(2),
				DetailUnitRate: decimal.NewFromInt(1000),
				CgstAmount:     decimal.NewFromInt(180),
				SgstAmount:     decimal.NewFromInt(180),
				LineTotal:      decimal.NewFromInt(2360),
			},
		},
	}
}

func TestRenderInvoice(t *testing.T) {
	company := &models.Company{Name: "Sharma Tailors", Gstin: "27AAPFU0939F1ZV", Address: "14 MG Road, Pune"}
	customer := &models.Customer{Name: "Anil Kumar", Address: "7 FC Road, Pune"}

	rendered, err := RenderInvoice(sampleInvoice(), company, customer)
	if err != nil {
		t.Fatalf("RenderInvoice: %v", err)
	}
	if !bytes.HasPrefix(rendered, []byte("%PDF")) {
		t.Fatalf("output is not a PDF, starts with %q", rendered[:8])
	}
	if len(rendered) < 1000 {
		t.Fatalf("suspiciously small document: %d bytes", len(rendered))
	}
}

func TestRenderInvoice_NilCompanyAndCustomer(t *testing.T) {
	rendered, err := RenderInvoice(sampleInvoice(), nil, nil)
	if err != nil {
		t.Fatalf("RenderInvoice without profile: %v", err)
	}
	if !bytes.HasPrefix(rendered, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
}

func TestFileName(t *testing.T) {
	name := FileName(sampleInvoice())
	if !strings.HasPrefix(name, "invoice-INV-0001-") || !strings.HasSuffix(name, ".pdf") {
		t.Fatalf("unexpected file name %q", name)
	}
}
