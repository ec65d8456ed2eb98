package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWithFallback_DisabledProviderDegrades(t *testing.T) {
	s := Disabled()
	got := WithFallback(context.Background(), s, Input{Kind: KindTaxCategory, Description: "silk saree"})
	if got.Suggestion != "unknown" {
		t.Fatalf("expected unknown fallback, got %q", got.Suggestion)
	}
	if !got.GstRate.Equal(DefaultSuggestion().GstRate) {
		t.Fatalf("expected 18%% fallback rate, got %s", got.GstRate)
	}
	if got.Confidence != 0 {
		t.Fatalf("fallback confidence expected 0, got %v", got.Confidence)
	}
}

func TestWithFallback_ProviderFailureDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewHTTPClient(srv.URL)
	got := WithFallback(context.Background(), s, Input{Kind: KindTaxCategory, Description: "silk saree"})
	if got.Suggestion != "unknown" || got.Confidence != 0 {
		t.Fatalf("expected fallback on provider failure, got %+v", got)
	}
}

func TestHTTPClient_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var input Input
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			t.Fatalf("decode input: %v", err)
		}
		if input.Kind != KindTaxCategory {
			t.Fatalf("unexpected kind %q", input.Kind)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"suggestion": "textiles",
			"gst_rate":   "5",
			"confidence": 0.92,
		})
	}))
	defer srv.Close()

	s := NewHTTPClient(srv.URL)
	got, err := s.Suggest(context.Background(), Input{Kind: KindTaxCategory, Description: "silk saree"})
	if err != nil {
		t.Fatalf("Suggest error: %v", err)
	}
	if got.Suggestion != "textiles" || got.Confidence != 0.92 {
		t.Fatalf("unexpected suggestion %+v", got)
	}
}

func TestHTTPClient_FailureIsCollaboratorUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	s := NewHTTPClient(srv.URL)
	_, err := s.Suggest(context.Background(), Input{Kind: KindSalesStrategy})
	var cu *CollaboratorUnavailable
	if !errors.As(err, &cu) {
		t.Fatalf("expected CollaboratorUnavailable, got %v", err)
	}
}

func TestNewHTTPClient_BlankEndpointIsDisabled(t *testing.T) {
	s := NewHTTPClient("   ")
	if _, err := s.Suggest(context.Background(), Input{}); err == nil {
		t.Fatalf("disabled provider must report unavailable")
	}
}
