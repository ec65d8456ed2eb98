package gst

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoiceStatusDraft       InvoiceStatus = "Draft"
	InvoiceStatusUnpaid      InvoiceStatus = "Unpaid"
	InvoiceStatusPartialPaid InvoiceStatus = "Partially Paid"
	InvoiceStatusPaid        InvoiceStatus = "Paid"
	InvoiceStatusOverdue     InvoiceStatus = "Overdue"
)

var invoiceStatusNames = map[string]InvoiceStatus{
	"Draft":          InvoiceStatusDraft,
	"Unpaid":         InvoiceStatusUnpaid,
	"Partially Paid": InvoiceStatusPartialPaid,
	"Paid":           InvoiceStatusPaid,
	"Overdue":        InvoiceStatusOverdue,
}

func ParseInvoiceStatus(s string) (InvoiceStatus, error) {
	status, ok := invoiceStatusNames[s]
	if !ok {
		return "", errors.New("invalid invoice status")
	}
	return status, nil
}

// allowedTransitions is the closed transition map. Paid is terminal; the only
// way out is ReversePayment, which is an explicit action rather than a
// transition.
var allowedTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoiceStatusDraft:       {InvoiceStatusUnpaid},
	InvoiceStatusUnpaid:      {InvoiceStatusPartialPaid, InvoiceStatusPaid, InvoiceStatusOverdue},
	InvoiceStatusPartialPaid: {InvoiceStatusPaid, InvoiceStatusOverdue},
	InvoiceStatusOverdue:     {InvoiceStatusPartialPaid, InvoiceStatusPaid},
	InvoiceStatusPaid:        {},
}

// Transition validates a status change. Same-status is a no-op. An illegal
// change returns a StateTransitionError and implies the invoice keeps its
// prior state.
func Transition(from, to InvoiceStatus) error {
	if from == to {
		return nil
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return nil
		}
	}
	return &StateTransitionError{From: from, To: to}
}

// Finalize moves a draft into the payment lifecycle.
func Finalize(current InvoiceStatus) (InvoiceStatus, error) {
	if err := Transition(current, InvoiceStatusUnpaid); err != nil {
		return current, err
	}
	return InvoiceStatusUnpaid, nil
}

// deriveFromFacts maps payment facts onto a status, ignoring the current one.
// paid >= amount settles the invoice; a finalized zero-amount invoice is
// settled from the start.
func deriveFromFacts(amount, paid decimal.Decimal, dueDate *time.Time, now time.Time) InvoiceStatus {
	if paid.GreaterThanOrEqual(amount) {
		return InvoiceStatusPaid
	}
	outstanding := amount.Sub(paid)
	if dueDate != nil && dueDate.Before(now) && outstanding.GreaterThan(decimalZero) {
		return InvoiceStatusOverdue
	}
	if paid.GreaterThan(decimalZero) {
		return InvoiceStatusPartialPaid
	}
	return InvoiceStatusUnpaid
}

// DeriveStatus re-derives the status from recorded payments and the due date.
// Draft invoices are excluded from payment-status derivation, and Paid is
// sticky: a payment recorded after the due date still resolves to Paid, and
// leaving Paid requires ReversePayment. The derived change is validated
// against the transition map before it is returned.
func DeriveStatus(current InvoiceStatus, amount, paid decimal.Decimal, dueDate *time.Time, now time.Time) (InvoiceStatus, error) {
	if current == InvoiceStatusDraft || current == InvoiceStatusPaid {
		return current, nil
	}
	derived := deriveFromFacts(amount, paid, dueDate, now)
	// Advisory: when the facts point at a state the machine cannot reach from
	// here (a due date pushed back out of Overdue), keep the current status.
	if err := Transition(current, derived); err != nil {
		return current, nil
	}
	return derived, nil
}

// ReversePayment is the explicit action that may leave Paid. It recomputes
// the status from the post-reversal payment facts.
func ReversePayment(current InvoiceStatus, amount, paid decimal.Decimal, dueDate *time.Time, now time.Time) (InvoiceStatus, error) {
	if current == InvoiceStatusDraft {
		return current, &StateTransitionError{From: current, To: current}
	}
	return deriveFromFacts(amount, paid, dueDate, now), nil
}
