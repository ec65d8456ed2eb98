package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tailorbooks/backoffice_backend/models"
)

func GetMeasurements(c *gin.Context) {
	var customerId *int
	if v := c.Query("customer_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "customer_id must be a positive integer"})
			return
		}
		customerId = &id
	}
	measurements, err := models.GetMeasurements(c.Request.Context(), customerId)
	if err != nil {
		respondError(c, "measurement.go", "GetMeasurements", err)
		return
	}
	c.JSON(http.StatusOK, measurements)
}

func GetMeasurement(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	measurement, err := models.GetMeasurement(c.Request.Context(), id)
	if err != nil {
		respondError(c, "measurement.go", "GetMeasurement", err)
		return
	}
	c.JSON(http.StatusOK, measurement)
}

func CreateMeasurement(c *gin.Context) {
	var input models.NewMeasurement
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err)
		return
	}
	measurement, err := models.CreateMeasurement(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "measurement.go", "CreateMeasurement", err)
		return
	}
	c.JSON(http.StatusOK, measurement)
}

type measurementStatusRequest struct {
	Status models.MeasurementStatus `json:"status" binding:"required"`
}

func UpdateMeasurementStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req measurementStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	measurement, err := models.UpdateMeasurementStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, "measurement.go", "UpdateMeasurementStatus", err)
		return
	}
	c.JSON(http.StatusOK, measurement)
}

func DeleteMeasurement(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	measurement, err := models.DeleteMeasurement(c.Request.Context(), id)
	if err != nil {
		respondError(c, "measurement.go", "DeleteMeasurement", err)
		return
	}
	c.JSON(http.StatusOK, measurement)
}
