package config

import (
	"os"
	"strings"
)

// StrictPaidInvoiceImmutability blocks edits to invoices that have reached
// Paid; they must go through an explicit payment reversal first.
//
// Set via env:
// - STRICT_PAID_INVOICE_IMMUTABLE=true
func StrictPaidInvoiceImmutability() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("STRICT_PAID_INVOICE_IMMUTABLE")))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}

// AISuggestURL returns the endpoint of the AI suggestion provider, or ""
// when the provider is disabled. A blank value is not an error: invoice
// creation never depends on suggestions.
//
// Set via env:
// - AI_SUGGEST_URL=https://suggest.internal/v1/suggest
func AISuggestURL() string {
	return strings.TrimSpace(os.Getenv("AI_SUGGEST_URL"))
}

// RateLimitEnabled gates the redis-backed request rate limiter.
//
// Set via env:
// - RATE_LIMIT_ENABLED=true
func RateLimitEnabled() bool {
	return strings.EqualFold(strings.TrimSpace(os.Getenv("RATE_LIMIT_ENABLED")), "true")
}
