package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tailorbooks/backoffice_backend/config"
	"github.com/tailorbooks/backoffice_backend/gst"
	"github.com/tailorbooks/backoffice_backend/utils"
)

// respondError maps domain errors onto the HTTP surface. Validation problems
// are the caller's fault, illegal lifecycle moves are conflicts, and anything
// unrecognized is logged before a generic 500 goes out.
func respondError(c *gin.Context, moduleName string, funcName string, err error) {
	var validationErr *gst.ValidationError
	var transitionErr *gst.StateTransitionError
	var computationErr *gst.ComputationError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.As(err, &computationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": computationErr.Error()})
	case errors.As(err, &transitionErr):
		c.JSON(http.StatusConflict, gin.H{"error": transitionErr.Error()})
	case errors.Is(err, utils.ErrorRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	default:
		logger := config.GetLogger()
		cid, _ := utils.GetCorrelationIdFromContext(c.Request.Context())
		clientIP, _ := utils.GetClientIPFromContext(c.Request.Context())
		config.LogError(logger, moduleName, funcName, c.Request.URL.Path, gin.H{
			"correlation_id": cid,
			"client_ip":      clientIP,
		}, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// idParam parses the :id path segment. Non-numeric ids are a 400, not a 404;
// the route matched, the value didn't.
func idParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a positive integer"})
		return 0, false
	}
	return id, true
}
