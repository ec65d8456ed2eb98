package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tailorbooks/backoffice_backend/gst"
	"github.com/tailorbooks/backoffice_backend/models"
	"github.com/tailorbooks/backoffice_backend/pdf"
	"github.com/tailorbooks/backoffice_backend/utils"
)

func GetInvoices(c *gin.Context) {
	ctx := c.Request.Context()

	var customerId *int
	if v := c.Query("customer_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "customer_id must be a positive integer"})
			return
		}
		customerId = &id
	}
	var status *gst.InvoiceStatus
	if v := c.Query("status"); v != "" {
		parsed, err := gst.ParseInvoiceStatus(v)
		if err != nil {
			respondBadRequest(c, err)
			return
		}
		status = &parsed
	}

	invoices, err := models.GetInvoices(ctx, customerId, status)
	if err != nil {
		respondError(c, "invoice.go", "GetInvoices", err)
		return
	}
	c.JSON(http.StatusOK, invoices)
}

func GetInvoice(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	invoice, err := models.GetInvoice(c.Request.Context(), id)
	if err != nil {
		respondError(c, "invoice.go", "GetInvoice", err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func CreateInvoice(c *gin.Context) {
	var input models.NewInvoice
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err)
		return
	}
	invoice, err := models.CreateInvoice(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "invoice.go", "CreateInvoice", err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func UpdateInvoice(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input models.NewInvoice
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err)
		return
	}
	invoice, err := models.UpdateInvoice(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "invoice.go", "UpdateInvoice", err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func DeleteInvoice(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	invoice, err := models.DeleteInvoice(c.Request.Context(), id)
	if err != nil {
		respondError(c, "invoice.go", "DeleteInvoice", err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func FinalizeInvoice(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	invoice, err := models.FinalizeInvoice(c.Request.Context(), id)
	if err != nil {
		respondError(c, "invoice.go", "FinalizeInvoice", err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func GetInvoicePayments(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if _, err := models.GetInvoice(c.Request.Context(), id); err != nil {
		respondError(c, "invoice.go", "GetInvoicePayments", err)
		return
	}
	payments, err := models.GetInvoicePayments(c.Request.Context(), id)
	if err != nil {
		respondError(c, "invoice.go", "GetInvoicePayments", err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

func RecordInvoicePayment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input models.NewInvoicePayment
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err)
		return
	}
	invoice, err := models.RecordInvoicePayment(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "invoice.go", "RecordInvoicePayment", err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

type reversePaymentRequest struct {
	PaymentId int `json:"payment_id" binding:"required"`
}

func ReverseInvoicePayment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req reversePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	invoice, err := models.ReverseInvoicePayment(c.Request.Context(), id, req.PaymentId)
	if err != nil {
		respondError(c, "invoice.go", "ReverseInvoicePayment", err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

// GetInvoicePdf streams the rendered invoice. The company profile and the
// customer are best-effort; a missing profile still produces a document.
func GetInvoicePdf(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	invoice, err := models.GetInvoice(ctx, id)
	if err != nil {
		respondError(c, "invoice.go", "GetInvoicePdf", err)
		return
	}
	company, err := models.GetCompany(ctx)
	if err != nil && err != utils.ErrorRecordNotFound {
		respondError(c, "invoice.go", "GetInvoicePdf", err)
		return
	}
	customer, err := models.GetCustomer(ctx, invoice.CustomerId)
	if err != nil && err != utils.ErrorRecordNotFound {
		respondError(c, "invoice.go", "GetInvoicePdf", err)
		return
	}

	rendered, err := pdf.RenderInvoice(invoice, company, customer)
	if err != nil {
		respondError(c, "invoice.go", "GetInvoicePdf", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+pdf.FileName(invoice)+`"`)
	c.Data(http.StatusOK, "application/pdf", rendered)
}
