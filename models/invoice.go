package models

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tailorbooks/backoffice_backend/config"
	"github.com/tailorbooks/backoffice_backend/gst"
	"github.com/tailorbooks/backoffice_backend/utils"
	"gorm.io/gorm"
)

type Invoice struct {
	ID              int             `gorm:"primary_key" json:"id"`
	InvoiceNumber   string          `gorm:"size:255;not null" json:"invoice_number"`
	CustomerId      int             `gorm:"index;not null" json:"customer_id" binding:"required"`
	CompanyId       int             `gorm:"index;default:null" json:"company_id"`
	InvoiceDate     time.Time       `gorm:"not null" json:"invoice_date"`
	DueDate         *time.Time      `gorm:"default:null" json:"due_date"`
	CurrentStatus   InvoiceStatus   `gorm:"type:enum('Draft', 'Unpaid', 'Partially Paid', 'Paid', 'Overdue');not null" json:"current_status"`
	Notes           string          `gorm:"type:text;default:null" json:"notes"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"subtotal"`
	TotalIgstAmount decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_igst_amount"`
	TotalCgstAmount decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_cgst_amount"`
	TotalSgstAmount decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_sgst_amount"`
	TotalTaxAmount  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_tax_amount"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_amount"`
	TotalPaidAmount decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_paid_amount"`
	RoundOffApplied *bool           `gorm:"not null;default:false" json:"round_off_applied"`
	RoundOffDelta   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"round_off_delta"`
	Details         []InvoiceItem   `gorm:"foreignKey:InvoiceId" json:"details"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type InvoiceItem struct {
	ID             int             `gorm:"primary_key" json:"id"`
	InvoiceId      int             `gorm:"index;not null" json:"invoice_id"`
	DisplayOrder   int             `gorm:"not null;default:0" json:"display_order"`
	Description    string          `gorm:"size:255;not null" json:"description"`
	HsnCode        string          `gorm:"size:20;default:null" json:"hsn_code"`
	DetailQty      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"detail_qty"`
	DetailUnitRate decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"detail_unit_rate"`
	ApplyIgst      *bool           `gorm:"not null;default:false" json:"apply_igst"`
	ApplyCgst      *bool           `gorm:"not null;default:false" json:"apply_cgst"`
	ApplySgst      *bool           `gorm:"not null;default:false" json:"apply_sgst"`
	IgstRate       decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"igst_rate"`
	CgstRate       decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"cgst_rate"`
	SgstRate       decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"sgst_rate"`
	TaxableValue   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"taxable_value"`
	IgstAmount     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"igst_amount"`
	CgstAmount     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"cgst_amount"`
	SgstAmount     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"sgst_amount"`
	LineTotal      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"line_total"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewInvoice struct {
	InvoiceNumber string           `json:"invoice_number"`
	CustomerId    int              `json:"customer_id" binding:"required"`
	CompanyId     int              `json:"company_id"`
	InvoiceDate   time.Time        `json:"invoice_date"`
	DueDate       *time.Time       `json:"due_date"`
	Draft         bool             `json:"draft"`
	Notes         string           `json:"notes"`
	Details       []NewInvoiceItem `json:"details"`
}

type NewInvoiceItem struct {
	Description    string          `json:"description" binding:"required"`
	HsnCode        string          `json:"hsn_code"`
	DetailQty      decimal.Decimal `json:"detail_qty" binding:"required"`
	DetailUnitRate decimal.Decimal `json:"detail_unit_rate"`
	ApplyIgst      bool            `json:"apply_igst"`
	ApplyCgst      bool            `json:"apply_cgst"`
	ApplySgst      bool            `json:"apply_sgst"`
	IgstRate       decimal.Decimal `json:"igst_rate"`
	CgstRate       decimal.Decimal `json:"cgst_rate"`
	SgstRate       decimal.Decimal `json:"sgst_rate"`
}

func (input NewInvoiceItem) toLineItem() gst.LineItem {
	return gst.LineItem{
		Description: input.Description,
		Quantity:    input.DetailQty,
		UnitPrice:   input.DetailUnitRate,
		HsnCode:     input.HsnCode,
		ApplyIgst:   input.ApplyIgst,
		ApplyCgst:   input.ApplyCgst,
		ApplySgst:   input.ApplySgst,
		IgstRate:    input.IgstRate,
		CgstRate:    input.CgstRate,
		SgstRate:    input.SgstRate,
	}
}

func (input NewInvoice) validate(ctx context.Context) error {
	if err := validateResourceId[Customer](ctx, input.CustomerId); err != nil {
		return &gst.ValidationError{Field: "customer_id", Reason: "customer not found"}
	}
	if input.CompanyId > 0 {
		if err := validateResourceId[Company](ctx, input.CompanyId); err != nil {
			return &gst.ValidationError{Field: "company_id", Reason: "company not found"}
		}
	}
	return nil
}

// assemble runs the computation core over the submitted lines and maps the
// result into the persisted shape. Timestamps stay with gorm.
func (input NewInvoice) assemble() (*Invoice, error) {
	lineItems := make([]gst.LineItem, 0, len(input.Details))
	for _, detail := range input.Details {
		lineItems = append(lineItems, detail.toLineItem())
	}

	record, err := gst.Assemble(lineItems, gst.InvoiceMeta{
		CustomerID: strconv.Itoa(input.CustomerId),
		CompanyID:  strconv.Itoa(input.CompanyId),
		Draft:      input.Draft,
		DueDate:    input.DueDate,
		Notes:      input.Notes,
	})
	if err != nil {
		return nil, err
	}

	invoiceDate := input.InvoiceDate
	if invoiceDate.IsZero() {
		invoiceDate = time.Now()
	}
	invoiceNumber := strings.TrimSpace(input.InvoiceNumber)
	if invoiceNumber == "" {
		invoiceNumber = "INV-" + strings.ToUpper(uuid.NewString()[:8])
	}

	invoice := Invoice{
		InvoiceNumber:   invoiceNumber,
		CustomerId:      input.CustomerId,
		CompanyId:       input.CompanyId,
		InvoiceDate:     invoiceDate,
		DueDate:         record.DueDate,
		CurrentStatus:   record.Status,
		Notes:           record.Notes,
		Subtotal:        record.Totals.Subtotal,
		TotalIgstAmount: record.Totals.TotalIgst,
		TotalCgstAmount: record.Totals.TotalCgst,
		TotalSgstAmount: record.Totals.TotalSgst,
		TotalTaxAmount:  record.Totals.TotalTax,
		TotalAmount:     record.Amount,
		RoundOffApplied: &record.RoundOffApplied,
		RoundOffDelta:   record.RoundOffDelta,
	}
	for i := range record.LineItems {
		item := record.LineItems[i]
		result := record.Results[i]
		invoice.Details = append(invoice.Details, InvoiceItem{
			DisplayOrder:   i,
			Description:    item.Description,
			HsnCode:        item.HsnCode,
			DetailQty:      item.Quantity,
			DetailUnitRate: item.UnitPrice,
			ApplyIgst:      boolPtr(item.ApplyIgst),
			ApplyCgst:      boolPtr(item.ApplyCgst),
			ApplySgst:      boolPtr(item.ApplySgst),
			IgstRate:       item.IgstRate,
			CgstRate:       item.CgstRate,
			SgstRate:       item.SgstRate,
			TaxableValue:   result.TaxableValue,
			IgstAmount:     result.IgstAmount,
			CgstAmount:     result.CgstAmount,
			SgstAmount:     result.SgstAmount,
			LineTotal:      result.LineTotal,
		})
	}
	return &invoice, nil
}

func boolPtr(b bool) *bool {
	if b {
		return utils.NewTrue()
	}
	return utils.NewFalse()
}

func CreateInvoice(ctx context.Context, input *NewInvoice) (*Invoice, error) {
	db := config.GetDB()

	if err := input.validate(ctx); err != nil {
		return nil, err
	}
	invoice, err := input.assemble()
	if err != nil {
		return nil, err
	}

	tx := db.Begin()
	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback().Error
			panic(r)
		}
	}()
	defer func() { _ = tx.Rollback().Error }()

	if err := tx.WithContext(ctx).Create(invoice).Error; err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return invoice, nil
}

// UpdateInvoice replaces the invoice with a fresh assembly of the submitted
// lines. Invoices with recorded payments are immutable; reverse the payments
// first.
func UpdateInvoice(ctx context.Context, id int, input *NewInvoice) (*Invoice, error) {
	db := config.GetDB()

	existing, err := fetchInvoice(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if existing.CurrentStatus == gst.InvoiceStatusPaid || existing.CurrentStatus == gst.InvoiceStatusPartialPaid {
		return nil, &gst.StateTransitionError{From: existing.CurrentStatus, To: existing.CurrentStatus}
	}
	if config.StrictPaidInvoiceImmutability() && existing.TotalPaidAmount.GreaterThan(decimal.Zero) {
		return nil, &gst.StateTransitionError{From: existing.CurrentStatus, To: existing.CurrentStatus}
	}

	if err := input.validate(ctx); err != nil {
		return nil, err
	}
	// A finalized invoice never drops back to Draft through an edit.
	if existing.CurrentStatus != gst.InvoiceStatusDraft {
		input.Draft = false
	}
	invoice, err := input.assemble()
	if err != nil {
		return nil, err
	}
	invoice.ID = existing.ID
	if strings.TrimSpace(input.InvoiceNumber) == "" {
		invoice.InvoiceNumber = existing.InvoiceNumber
	}
	if existing.CurrentStatus == gst.InvoiceStatusOverdue {
		invoice.CurrentStatus = existing.CurrentStatus
	}
	invoice.TotalPaidAmount = existing.TotalPaidAmount

	tx := db.Begin()
	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback().Error
			panic(r)
		}
	}()
	defer func() { _ = tx.Rollback().Error }()

	if err := tx.WithContext(ctx).Where("invoice_id = ?", existing.ID).Delete(&InvoiceItem{}).Error; err != nil {
		return nil, err
	}
	if err := tx.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(invoice).Error; err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return invoice, nil
}

func DeleteInvoice(ctx context.Context, id int) (*Invoice, error) {
	db := config.GetDB()

	invoice, err := fetchInvoice(ctx, db, id)
	if err != nil {
		return nil, err
	}

	tx := db.Begin()
	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback().Error
			panic(r)
		}
	}()
	defer func() { _ = tx.Rollback().Error }()

	if err := tx.WithContext(ctx).Where("invoice_id = ?", id).Delete(&InvoiceItem{}).Error; err != nil {
		return nil, err
	}
	if err := tx.WithContext(ctx).Where("invoice_id = ?", id).Delete(&InvoicePayment{}).Error; err != nil {
		return nil, err
	}
	if err := tx.WithContext(ctx).Delete(invoice).Error; err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return invoice, nil
}

func GetInvoice(ctx context.Context, id int) (*Invoice, error) {
	db := config.GetDB()
	invoice, err := fetchInvoice(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if err := syncDerivedStatus(ctx, db, invoice, time.Now()); err != nil {
		return nil, err
	}
	return invoice, nil
}

func GetInvoices(ctx context.Context, customerId *int, status *gst.InvoiceStatus) ([]*Invoice, error) {
	db := config.GetDB()

	var results []*Invoice
	dbCtx := db.WithContext(ctx).Preload("Details", func(db *gorm.DB) *gorm.DB {
		return db.Order("display_order")
	})
	if customerId != nil && *customerId > 0 {
		dbCtx = dbCtx.Where("customer_id = ?", *customerId)
	}
	if status != nil && *status != "" {
		dbCtx = dbCtx.Where("current_status = ?", *status)
	}
	if err := dbCtx.Order("invoice_date DESC, id DESC").Find(&results).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	for _, invoice := range results {
		if err := syncDerivedStatus(ctx, db, invoice, now); err != nil {
			return nil, err
		}
	}
	return results, nil
}

// FinalizeInvoice moves a draft into the payment lifecycle.
func FinalizeInvoice(ctx context.Context, id int) (*Invoice, error) {
	db := config.GetDB()

	invoice, err := fetchInvoice(ctx, db, id)
	if err != nil {
		return nil, err
	}
	status, err := gst.Finalize(invoice.CurrentStatus)
	if err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Model(invoice).Update("CurrentStatus", status).Error; err != nil {
		return nil, err
	}
	invoice.CurrentStatus = status

	// A finalized invoice whose due date already passed is immediately overdue.
	if err := syncDerivedStatus(ctx, db, invoice, time.Now()); err != nil {
		return nil, err
	}
	return invoice, nil
}

// syncDerivedStatus re-derives the payment status from recorded facts and
// persists the advisory change (typically entering Overdue once the due date
// passes).
func syncDerivedStatus(ctx context.Context, db *gorm.DB, invoice *Invoice, now time.Time) error {
	derived, err := gst.DeriveStatus(invoice.CurrentStatus, invoice.TotalAmount, invoice.TotalPaidAmount, invoice.DueDate, now)
	if err != nil {
		return err
	}
	if derived == invoice.CurrentStatus {
		return nil
	}
	if err := db.WithContext(ctx).Model(invoice).Update("CurrentStatus", derived).Error; err != nil {
		return err
	}
	invoice.CurrentStatus = derived
	return nil
}

func fetchInvoice(ctx context.Context, db *gorm.DB, id int) (*Invoice, error) {
	var invoice Invoice
	err := db.WithContext(ctx).Preload("Details", func(db *gorm.DB) *gorm.DB {
		return db.Order("display_order")
	}).First(&invoice, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &invoice, nil
}
