package gst

import "fmt"

// ValidationError reports contractually-invalid input. Inputs are never
// auto-corrected or clamped; the caller gets the violation back.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

func validationErr(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// StateTransitionError reports an illegal invoice status change.
// The invoice is left in its prior state.
type StateTransitionError struct {
	From InvoiceStatus
	To   InvoiceStatus
}

func (e *StateTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition %q -> %q", e.From, e.To)
}

// ComputationError reports an arithmetic failure (a result outside the
// currency column range). Fatal to the single operation only.
type ComputationError struct {
	Op    string
	Value string
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("%s: result %s exceeds currency range", e.Op, e.Value)
}
