package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/tailorbooks/backoffice_backend/gst"
	"github.com/tailorbooks/backoffice_backend/models"
)

func GetPurchaseInvoices(c *gin.Context) {
	var status *gst.InvoiceStatus
	if v := c.Query("status"); v != "" {
		parsed, err := gst.ParseInvoiceStatus(v)
		if err != nil {
			respondBadRequest(c, err)
			return
		}
		status = &parsed
	}
	bills, err := models.GetPurchaseInvoices(c.Request.Context(), status)
	if err != nil {
		respondError(c, "purchaseInvoice.go", "GetPurchaseInvoices", err)
		return
	}
	c.JSON(http.StatusOK, bills)
}

func GetPurchaseInvoice(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	bill, err := models.GetPurchaseInvoice(c.Request.Context(), id)
	if err != nil {
		respondError(c, "purchaseInvoice.go", "GetPurchaseInvoice", err)
		return
	}
	c.JSON(http.StatusOK, bill)
}

func CreatePurchaseInvoice(c *gin.Context) {
	var input models.NewPurchaseInvoice
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err)
		return
	}
	bill, err := models.CreatePurchaseInvoice(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "purchaseInvoice.go", "CreatePurchaseInvoice", err)
		return
	}
	c.JSON(http.StatusOK, bill)
}

func DeletePurchaseInvoice(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	bill, err := models.DeletePurchaseInvoice(c.Request.Context(), id)
	if err != nil {
		respondError(c, "purchaseInvoice.go", "DeletePurchaseInvoice", err)
		return
	}
	c.JSON(http.StatusOK, bill)
}

type purchasePaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

func RecordPurchasePayment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req purchasePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	bill, err := models.RecordPurchasePayment(c.Request.Context(), id, req.Amount)
	if err != nil {
		respondError(c, "purchaseInvoice.go", "RecordPurchasePayment", err)
		return
	}
	c.JSON(http.StatusOK, bill)
}
