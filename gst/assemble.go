package gst

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// InvoiceMeta is the customer/shipment metadata a form submits alongside the
// raw line items. Customer and company are weak id references; the core never
// dereferences them.
type InvoiceMeta struct {
	CustomerID string     `json:"customer_id" validate:"required"`
	CompanyID  string     `json:"company_id"`
	Draft      bool       `json:"draft"`
	DueDate    *time.Time `json:"due_date"`
	Notes      string     `json:"notes"`
}

// InvoiceRecord is the assembled invoice shape handed to the persistence
// collaborator. The core creates it once per submission and never mutates it
// in place; a recomputation produces a new record value. CreatedAt/UpdatedAt
// are assigned at the persistence boundary.
type InvoiceRecord struct {
	CustomerID      string           `json:"customer_id"`
	CompanyID       string           `json:"company_id"`
	LineItems       []LineItem       `json:"line_items"`
	Results         []LineItemResult `json:"results"`
	Totals          InvoiceTotals    `json:"totals"`
	Status          InvoiceStatus    `json:"status"`
	Amount          decimal.Decimal  `json:"amount"`
	DueDate         *time.Time       `json:"due_date"`
	Notes           string           `json:"notes"`
	RoundOffApplied bool             `json:"round_off_applied"`
	RoundOffDelta   decimal.Decimal  `json:"round_off_delta"`
}

// Assemble runs the calculator over every line item, aggregates and rounds,
// derives the initial status and stamps the invoice amount. A non-draft
// invoice needs a customer reference and at least one line item.
func Assemble(lineItems []LineItem, meta InvoiceMeta) (*InvoiceRecord, error) {
	if err := validate.Struct(meta); err != nil {
		return nil, validationErr("customer_id", "required")
	}
	if !meta.Draft && len(lineItems) == 0 {
		return nil, validationErr("line_items", "a non-draft invoice needs at least one line item")
	}

	results := make([]LineItemResult, 0, len(lineItems))
	for _, item := range lineItems {
		result, err := ComputeLineItem(item)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	totals := Aggregate(results)

	status := InvoiceStatusUnpaid
	if meta.Draft {
		status = InvoiceStatusDraft
	}

	record := InvoiceRecord{
		CustomerID:      meta.CustomerID,
		CompanyID:       meta.CompanyID,
		LineItems:       lineItems,
		Results:         results,
		Totals:          totals,
		Status:          status,
		Amount:          totals.GrandTotalRounded,
		DueDate:         meta.DueDate,
		Notes:           meta.Notes,
		RoundOffApplied: totals.RoundOffApplied,
		RoundOffDelta:   totals.RoundOffDelta,
	}
	return &record, nil
}
