package models

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tailorbooks/backoffice_backend/config"
	"github.com/tailorbooks/backoffice_backend/gst"
	"gorm.io/gorm"
)

// PurchaseInvoice is the vendor-side mirror of Invoice. It shares the status
// enum and timestamp conventions but carries no tax computation; totals come
// in as recorded on the supplier bill.
type PurchaseInvoice struct {
	ID              int             `gorm:"primary_key" json:"id"`
	BillNumber      string          `gorm:"size:255;not null" json:"bill_number" binding:"required"`
	VendorName      string          `gorm:"size:255;not null" json:"vendor_name" binding:"required"`
	BillDate        time.Time       `gorm:"not null" json:"bill_date"`
	DueDate         *time.Time      `gorm:"default:null" json:"due_date"`
	CurrentStatus   InvoiceStatus   `gorm:"type:enum('Draft', 'Unpaid', 'Partially Paid', 'Paid', 'Overdue');not null" json:"current_status"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_amount"`
	TotalPaidAmount decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_paid_amount"`
	Notes           string          `gorm:"type:text;default:null" json:"notes"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewPurchaseInvoice struct {
	BillNumber  string          `json:"bill_number" binding:"required"`
	VendorName  string          `json:"vendor_name" binding:"required"`
	BillDate    time.Time       `json:"bill_date"`
	DueDate     *time.Time      `json:"due_date"`
	Draft       bool            `json:"draft"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Notes       string          `json:"notes"`
}

func CreatePurchaseInvoice(ctx context.Context, input *NewPurchaseInvoice) (*PurchaseInvoice, error) {
	db := config.GetDB()

	if input.TotalAmount.LessThan(decimal.Zero) {
		return nil, &gst.ValidationError{Field: "total_amount", Reason: "must not be negative"}
	}
	billDate := input.BillDate
	if billDate.IsZero() {
		billDate = time.Now()
	}
	status := gst.InvoiceStatusUnpaid
	if input.Draft {
		status = gst.InvoiceStatusDraft
	}

	bill := PurchaseInvoice{
		BillNumber:    input.BillNumber,
		VendorName:    input.VendorName,
		BillDate:      billDate,
		DueDate:       input.DueDate,
		CurrentStatus: status,
		TotalAmount:   input.TotalAmount,
		Notes:         input.Notes,
	}
	if err := db.WithContext(ctx).Create(&bill).Error; err != nil {
		return nil, err
	}
	return &bill, nil
}

func GetPurchaseInvoice(ctx context.Context, id int) (*PurchaseInvoice, error) {
	db := config.GetDB()
	bill, err := fetchModel[PurchaseInvoice](ctx, id)
	if err != nil {
		return nil, err
	}
	if err := syncPurchaseInvoiceStatus(ctx, db, bill, time.Now()); err != nil {
		return nil, err
	}
	return bill, nil
}

func GetPurchaseInvoices(ctx context.Context, status *gst.InvoiceStatus) ([]*PurchaseInvoice, error) {
	db := config.GetDB()
	var results []*PurchaseInvoice
	dbCtx := db.WithContext(ctx)
	if status != nil && *status != "" {
		dbCtx = dbCtx.Where("current_status = ?", *status)
	}
	if err := dbCtx.Order("bill_date DESC, id DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	now := time.Now()
	for _, bill := range results {
		if err := syncPurchaseInvoiceStatus(ctx, db, bill, now); err != nil {
			return nil, err
		}
	}
	return results, nil
}

func DeletePurchaseInvoice(ctx context.Context, id int) (*PurchaseInvoice, error) {
	return deleteModel[PurchaseInvoice](ctx, id)
}

// RecordPurchasePayment adds to the paid total and re-derives the status
// through the shared machine.
func RecordPurchasePayment(ctx context.Context, id int, amount decimal.Decimal) (*PurchaseInvoice, error) {
	db := config.GetDB()

	bill, err := fetchModel[PurchaseInvoice](ctx, id)
	if err != nil {
		return nil, err
	}
	if bill.CurrentStatus == gst.InvoiceStatusDraft {
		return nil, &gst.StateTransitionError{From: gst.InvoiceStatusDraft, To: gst.InvoiceStatusPartialPaid}
	}
	if !amount.GreaterThan(decimal.Zero) {
		return nil, &gst.ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}

	paidTotal := bill.TotalPaidAmount.Add(amount)
	status, err := gst.DeriveStatus(bill.CurrentStatus, bill.TotalAmount, paidTotal, bill.DueDate, time.Now())
	if err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Model(bill).Updates(map[string]interface{}{
		"TotalPaidAmount": paidTotal,
		"CurrentStatus":   status,
	}).Error; err != nil {
		return nil, err
	}
	bill.TotalPaidAmount = paidTotal
	bill.CurrentStatus = status
	return bill, nil
}

func syncPurchaseInvoiceStatus(ctx context.Context, db *gorm.DB, bill *PurchaseInvoice, now time.Time) error {
	derived, err := gst.DeriveStatus(bill.CurrentStatus, bill.TotalAmount, bill.TotalPaidAmount, bill.DueDate, now)
	if err != nil {
		return err
	}
	if derived == bill.CurrentStatus {
		return nil
	}
	if err := db.WithContext(ctx).Model(bill).Update("CurrentStatus", derived).Error; err != nil {
		return err
	}
	bill.CurrentStatus = derived
	return nil
}
