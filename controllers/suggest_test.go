package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/tailorbooks/backoffice_backend/suggest"
)

type stubSuggester struct {
	suggestion suggest.Suggestion
}

func (s stubSuggester) Suggest(ctx context.Context, input suggest.Input) (suggest.Suggestion, error) {
	return s.suggestion, nil
}

func TestSuggestHandler_PostSuccessIs200(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	provider := stubSuggester{suggestion: suggest.Suggestion{
		Suggestion: "textiles",
		GstRate:    decimal.NewFromInt(5),
		Confidence: 0.9,
	}}
	r.POST("/suggest/tax-category", SuggestHandler(provider, suggest.KindTaxCategory))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/suggest/tax-category", strings.NewReader(`{"description":"silk saree"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("successful POST must return 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "textiles") {
		t.Fatalf("suggestion missing from body: %s", w.Body.String())
	}
}

func TestSuggestHandler_MissingDescriptionIs400(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/suggest/tax-category", SuggestHandler(suggest.Disabled(), suggest.KindTaxCategory))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/suggest/tax-category", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing description must return 400, got %d", w.Code)
	}
}
