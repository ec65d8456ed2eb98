package bridge

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tailorbooks/backoffice_backend/models"
	"github.com/tailorbooks/backoffice_backend/utils"
)

// Amount accepts both bare JSON numbers and the formatted strings desktop
// clients send ("1,180.00", "Rs 1,500", "₹99").
type Amount struct {
	decimal.Decimal
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 1 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := utils.ParseAmount(s)
		if err != nil {
			return err
		}
		a.Decimal = parsed
		return nil
	}
	return a.Decimal.UnmarshalJSON(data)
}

type invoicePayload struct {
	Id            int           `json:"id"`
	InvoiceNumber string        `json:"invoice_number"`
	CustomerId    int           `json:"customer_id"`
	CompanyId     int           `json:"company_id"`
	InvoiceDate   *time.Time    `json:"invoice_date"`
	DueDate       *time.Time    `json:"due_date"`
	Draft         bool          `json:"draft"`
	Notes         string        `json:"notes"`
	Details       []itemPayload `json:"details"`
}

type itemPayload struct {
	Description    string `json:"description"`
	HsnCode        string `json:"hsn_code"`
	DetailQty      Amount `json:"detail_qty"`
	DetailUnitRate Amount `json:"detail_unit_rate"`
	ApplyIgst      bool   `json:"apply_igst"`
	ApplyCgst      bool   `json:"apply_cgst"`
	ApplySgst      bool   `json:"apply_sgst"`
	IgstRate       Amount `json:"igst_rate"`
	CgstRate       Amount `json:"cgst_rate"`
	SgstRate       Amount `json:"sgst_rate"`
}

func (p invoicePayload) toNewInvoice() *models.NewInvoice {
	input := &models.NewInvoice{
		InvoiceNumber: p.InvoiceNumber,
		CustomerId:    p.CustomerId,
		CompanyId:     p.CompanyId,
		DueDate:       p.DueDate,
		Draft:         p.Draft,
		Notes:         p.Notes,
	}
	if p.InvoiceDate != nil {
		input.InvoiceDate = *p.InvoiceDate
	}
	for _, item := range p.Details {
		input.Details = append(input.Details, models.NewInvoiceItem{
			Description:    item.Description,
			HsnCode:        item.HsnCode,
			DetailQty:      item.DetailQty.Decimal,
			DetailUnitRate: item.DetailUnitRate.Decimal,
			ApplyIgst:      item.ApplyIgst,
			ApplyCgst:      item.ApplyCgst,
			ApplySgst:      item.ApplySgst,
			IgstRate:       item.IgstRate.Decimal,
			CgstRate:       item.CgstRate.Decimal,
			SgstRate:       item.SgstRate.Decimal,
		})
	}
	return input
}
