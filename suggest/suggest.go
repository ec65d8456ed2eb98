package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SuggestionKind selects which advisory the provider is asked for.
type SuggestionKind string

const (
	KindTaxCategory   SuggestionKind = "tax-category"
	KindSalesStrategy SuggestionKind = "sales-strategy"
)

type Input struct {
	Kind        SuggestionKind `json:"kind"`
	Description string         `json:"description"`
	HsnCode     string         `json:"hsn_code,omitempty"`
}

type Suggestion struct {
	Suggestion string          `json:"suggestion"`
	GstRate    decimal.Decimal `json:"gst_rate"`
	Confidence float64         `json:"confidence"`
}

// Suggester is the capability-optional collaborator. A disabled or failing
// provider never blocks invoice creation; callers go through WithFallback.
type Suggester interface {
	Suggest(ctx context.Context, input Input) (Suggestion, error)
}

// CollaboratorUnavailable wraps a provider failure so callers can tell a
// degraded suggestion from a provider bug.
type CollaboratorUnavailable struct {
	Collaborator string
	Err          error
}

func (e *CollaboratorUnavailable) Error() string {
	return e.Collaborator + " unavailable: " + e.Err.Error()
}

func (e *CollaboratorUnavailable) Unwrap() error { return e.Err }

// DefaultSuggestion is the mandated fallback: unknown category at the
// standard 18% slab, confidence zero.
func DefaultSuggestion() Suggestion {
	return Suggestion{
		Suggestion: "unknown",
		GstRate:    decimal.NewFromInt(18),
		Confidence: 0,
	}
}

type httpClient struct {
	endpoint string
	http     *http.Client
}

// NewHTTPClient talks to an external suggestion service. A blank endpoint
// returns Disabled().
func NewHTTPClient(endpoint string) Suggester {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return Disabled()
	}
	return &httpClient{
		endpoint: strings.TrimRight(endpoint, "/"),
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *httpClient) Suggest(ctx context.Context, input Input) (Suggestion, error) {
	payload, err := json.Marshal(input)
	if err != nil {
		return Suggestion{}, &CollaboratorUnavailable{Collaborator: "suggestion provider", Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return Suggestion{}, &CollaboratorUnavailable{Collaborator: "suggestion provider", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Suggestion{}, &CollaboratorUnavailable{Collaborator: "suggestion provider", Err: err}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Suggestion{}, &CollaboratorUnavailable{
			Collaborator: "suggestion provider",
			Err:          fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	var parsed Suggestion
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Suggestion{}, &CollaboratorUnavailable{Collaborator: "suggestion provider", Err: err}
	}
	return parsed, nil
}

type disabled struct{}

func (disabled) Suggest(ctx context.Context, input Input) (Suggestion, error) {
	return Suggestion{}, &CollaboratorUnavailable{
		Collaborator: "suggestion provider",
		Err:          fmt.Errorf("disabled"),
	}
}

// Disabled is a provider that always degrades to the fallback.
func Disabled() Suggester {
	return disabled{}
}

// WithFallback resolves a suggestion, degrading to DefaultSuggestion when
// the provider is disabled or unavailable. Only non-collaborator errors
// (a cancelled context) propagate.
func WithFallback(ctx context.Context, s Suggester, input Input) Suggestion {
	suggestion, err := s.Suggest(ctx, input)
	if err != nil {
		return DefaultSuggestion()
	}
	return suggestion
}
