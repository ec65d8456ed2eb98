package gst

import (
	"errors"
	"testing"
	"time"
)

func TestTransition_Table(t *testing.T) {
	cases := []struct {
		from InvoiceStatus
		to   InvoiceStatus
		ok   bool
	}{
		{InvoiceStatusDraft, InvoiceStatusUnpaid, true},
		{InvoiceStatusDraft, InvoiceStatusPaid, false},
		{InvoiceStatusDraft, InvoiceStatusOverdue, false},
		{InvoiceStatusUnpaid, InvoiceStatusPartialPaid, true},
		{InvoiceStatusUnpaid, InvoiceStatusPaid, true},
		{InvoiceStatusUnpaid, InvoiceStatusOverdue, true},
		{InvoiceStatusUnpaid, InvoiceStatusDraft, false},
		{InvoiceStatusPartialPaid, InvoiceStatusPaid, true},
		{InvoiceStatusPartialPaid, InvoiceStatusOverdue, true},
		{InvoiceStatusPartialPaid, InvoiceStatusUnpaid, false},
		{InvoiceStatusOverdue, InvoiceStatusPartialPaid, true},
		{InvoiceStatusOverdue, InvoiceStatusPaid, true},
		{InvoiceStatusPaid, InvoiceStatusUnpaid, false},
		{InvoiceStatusPaid, InvoiceStatusOverdue, false},
		{InvoiceStatusPaid, InvoiceStatusPaid, true},
	}
	for _, tc := range cases {
		err := Transition(tc.from, tc.to)
		if tc.ok && err != nil {
			t.Fatalf("%s -> %s should be allowed: %v", tc.from, tc.to, err)
		}
		if !tc.ok {
			var stErr *StateTransitionError
			if !errors.As(err, &stErr) {
				t.Fatalf("%s -> %s should fail with StateTransitionError, got %v", tc.from, tc.to, err)
			}
		}
	}
}

func TestFinalize(t *testing.T) {
	status, err := Finalize(InvoiceStatusDraft)
	if err != nil || status != InvoiceStatusUnpaid {
		t.Fatalf("finalize draft expected Unpaid, got %s / %v", status, err)
	}
	if _, err := Finalize(InvoiceStatusPaid); err == nil {
		t.Fatalf("finalizing a paid invoice must fail")
	}
}

func TestDeriveStatus(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -10)
	future := now.AddDate(0, 0, 10)

	cases := []struct {
		name     string
		current  InvoiceStatus
		amount   string
		paid     string
		due      *time.Time
		expected InvoiceStatus
	}{
		{"unpaid stays unpaid", InvoiceStatusUnpaid, "1000", "0", &future, InvoiceStatusUnpaid},
		{"partial payment", InvoiceStatusUnpaid, "1000", "400", &future, InvoiceStatusPartialPaid},
		{"full payment", InvoiceStatusUnpaid, "1000", "1000", &future, InvoiceStatusPaid},
		{"overpayment", InvoiceStatusPartialPaid, "1000", "1200", &future, InvoiceStatusPaid},
		{"past due unpaid", InvoiceStatusUnpaid, "1000", "0", &past, InvoiceStatusOverdue},
		{"past due partial", InvoiceStatusPartialPaid, "1000", "400", &past, InvoiceStatusOverdue},
		{"paid after due date resolves to paid", InvoiceStatusOverdue, "1000", "1000", &past, InvoiceStatusPaid},
		{"no due date never overdue", InvoiceStatusUnpaid, "1000", "0", nil, InvoiceStatusUnpaid},
		{"draft excluded from derivation", InvoiceStatusDraft, "1000", "1000", &past, InvoiceStatusDraft},
		{"paid is sticky", InvoiceStatusPaid, "1000", "0", &past, InvoiceStatusPaid},
		{"zero-amount invoice settles with no payment", InvoiceStatusUnpaid, "0", "0", nil, InvoiceStatusPaid},
		{"zero-amount invoice settles past due", InvoiceStatusUnpaid, "0", "0", &past, InvoiceStatusPaid},
	}
	for _, tc := range cases {
		status, err := DeriveStatus(tc.current, dec(tc.amount), dec(tc.paid), tc.due, now)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if status != tc.expected {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.expected, status)
		}
	}
}

func TestDeriveStatus_NeverPaidBelowAmount(t *testing.T) {
	now := time.Now()
	for _, paid := range []string{"0", "1", "500", "999.99"} {
		status, err := DeriveStatus(InvoiceStatusUnpaid, dec("1000"), dec(paid), nil, now)
		if err != nil {
			t.Fatalf("paid=%s: %v", paid, err)
		}
		if status == InvoiceStatusPaid {
			t.Fatalf("paid=%s: reached Paid below the invoice amount", paid)
		}
	}
}

func TestReversePayment_LeavesPaid(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -5)

	status, err := ReversePayment(InvoiceStatusPaid, dec("1000"), dec("400"), nil, now)
	if err != nil || status != InvoiceStatusPartialPaid {
		t.Fatalf("reversal to partial expected, got %s / %v", status, err)
	}
	status, err = ReversePayment(InvoiceStatusPaid, dec("1000"), dec("0"), &past, now)
	if err != nil || status != InvoiceStatusOverdue {
		t.Fatalf("reversal past due expected Overdue, got %s / %v", status, err)
	}
	if _, err := ReversePayment(InvoiceStatusDraft, dec("1000"), dec("0"), nil, now); err == nil {
		t.Fatalf("reversing a draft must fail")
	}
}

func TestParseInvoiceStatus(t *testing.T) {
	if _, err := ParseInvoiceStatus("Partially Paid"); err != nil {
		t.Fatalf("expected valid status: %v", err)
	}
	if _, err := ParseInvoiceStatus("Pending"); err == nil {
		t.Fatalf("free-form status must be rejected")
	}
}
