package models

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tailorbooks/backoffice_backend/config"
	"github.com/tailorbooks/backoffice_backend/gst"
	"github.com/tailorbooks/backoffice_backend/utils"
	"gorm.io/gorm"
)

type InvoicePayment struct {
	ID            int             `gorm:"primary_key" json:"id"`
	InvoiceId     int             `gorm:"index;not null" json:"invoice_id"`
	PaymentNumber string          `gorm:"size:64;not null" json:"payment_number"`
	PaymentDate   time.Time       `gorm:"not null" json:"payment_date"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount"`
	PaymentMode   PaymentMode     `gorm:"type:enum('Cash', 'Bank', 'Card', 'UPI');default:'Cash'" json:"payment_mode"`
	Notes         string          `gorm:"size:255;default:null" json:"notes"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewInvoicePayment struct {
	PaymentDate time.Time       `json:"payment_date"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	PaymentMode PaymentMode     `json:"payment_mode"`
	Notes       string          `json:"notes"`
}

func GetInvoicePayments(ctx context.Context, invoiceId int) ([]*InvoicePayment, error) {
	db := config.GetDB()
	var payments []*InvoicePayment
	if err := db.WithContext(ctx).
		Where("invoice_id = ?", invoiceId).
		Order("payment_date, id").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func sumPayments(ctx context.Context, tx *gorm.DB, invoiceId int) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := tx.WithContext(ctx).Model(&InvoicePayment{}).
		Select("SUM(amount)").
		Where("invoice_id = ?", invoiceId).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// RecordInvoicePayment stores a payment and re-derives the invoice status
// from the new paid total. A payment recorded after the due date still moves
// the invoice to Paid once the full amount is covered.
func RecordInvoicePayment(ctx context.Context, invoiceId int, input *NewInvoicePayment) (*Invoice, error) {
	db := config.GetDB()

	invoice, err := fetchInvoice(ctx, db, invoiceId)
	if err != nil {
		return nil, err
	}
	if invoice.CurrentStatus == gst.InvoiceStatusDraft {
		return nil, &gst.StateTransitionError{From: gst.InvoiceStatusDraft, To: gst.InvoiceStatusPartialPaid}
	}
	if !input.Amount.GreaterThan(decimal.Zero) {
		return nil, &gst.ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}

	paymentDate := input.PaymentDate
	if paymentDate.IsZero() {
		paymentDate = time.Now()
	}
	paymentMode := input.PaymentMode
	if paymentMode == "" {
		paymentMode = PaymentModeCash
	}

	tx := db.Begin()
	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback().Error
			panic(r)
		}
	}()
	defer func() { _ = tx.Rollback().Error }()

	payment := InvoicePayment{
		InvoiceId:     invoiceId,
		PaymentNumber: "PAY-" + uuid.NewString(),
		PaymentDate:   paymentDate,
		Amount:        input.Amount,
		PaymentMode:   paymentMode,
		Notes:         input.Notes,
	}
	if err := tx.WithContext(ctx).Create(&payment).Error; err != nil {
		return nil, err
	}

	paidTotal, err := sumPayments(ctx, tx, invoiceId)
	if err != nil {
		return nil, err
	}
	status, err := gst.DeriveStatus(invoice.CurrentStatus, invoice.TotalAmount, paidTotal, invoice.DueDate, time.Now())
	if err != nil {
		return nil, err
	}
	if err := tx.WithContext(ctx).Model(invoice).Updates(map[string]interface{}{
		"TotalPaidAmount": paidTotal,
		"CurrentStatus":   status,
	}).Error; err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	invoice.TotalPaidAmount = paidTotal
	invoice.CurrentStatus = status
	return invoice, nil
}

// ReverseInvoicePayment removes a recorded payment. This is the explicit
// reversal action, the only path out of Paid.
func ReverseInvoicePayment(ctx context.Context, invoiceId int, paymentId int) (*Invoice, error) {
	db := config.GetDB()

	invoice, err := fetchInvoice(ctx, db, invoiceId)
	if err != nil {
		return nil, err
	}

	var payment InvoicePayment
	if err := db.WithContext(ctx).
		Where("invoice_id = ?", invoiceId).
		First(&payment, paymentId).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.ErrorRecordNotFound
		}
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

	if err := tx.WithContext(ctx).Delete(&payment).Error; err != nil {
		return nil, err
	}
	paidTotal, err := sumPayments(ctx, tx, invoiceId)
	if err != nil {
		return nil, err
	}
	status, err := gst.ReversePayment(invoice.CurrentStatus, invoice.TotalAmount, paidTotal, invoice.DueDate, time.Now())
	if err != nil {
		return nil, err
	}
	if err := tx.WithContext(ctx).Model(invoice).Updates(map[string]interface{}{
		"TotalPaidAmount": paidTotal,
		"CurrentStatus":   status,
	}).Error; err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	invoice.TotalPaidAmount = paidTotal
	invoice.CurrentStatus = status
	return invoice, nil
}
