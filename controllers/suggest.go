package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tailorbooks/backoffice_backend/suggest"
)

type suggestRequest struct {
	Description string `json:"description" binding:"required"`
	HsnCode     string `json:"hsn_code"`
}

// SuggestHandler resolves an advisory from the external provider. The
// provider is optional; an unreachable or disabled provider degrades to the
// standard fallback instead of failing the request.
func SuggestHandler(provider suggest.Suggester, kind suggest.SuggestionKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req suggestRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, err)
			return
		}
		suggestion := suggest.WithFallback(c.Request.Context(), provider, suggest.Input{
			Kind:        kind,
			Description: req.Description,
			HsnCode:     req.HsnCode,
		})
		c.JSON(http.StatusOK, suggestion)
	}
}
