package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tailorbooks/backoffice_backend/models"
)

func GetCompany(c *gin.Context) {
	company, err := models.GetCompany(c.Request.Context())
	if err != nil {
		respondError(c, "company.go", "GetCompany", err)
		return
	}
	c.JSON(http.StatusOK, company)
}

func SaveCompany(c *gin.Context) {
	var input models.NewCompany
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err)
		return
	}
	company, err := models.SaveCompany(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "company.go", "SaveCompany", err)
		return
	}
	c.JSON(http.StatusOK, company)
}
