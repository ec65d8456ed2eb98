package gst

import (
	"errors"
	"testing"
	"time"
)

func TestAssemble_StampsAmountFromRoundedTotal(t *testing.T) {
	due := time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)
	items := []LineItem{
		{Quantity: dec("2"), UnitPrice: dec("500"), ApplyCgst: true, ApplySgst: true, CgstRate: dec("9"), SgstRate: dec("9")},
		{Quantity: dec("1"), UnitPrice: dec("170.34")},
	}
	record, err := Assemble(items, InvoiceMeta{CustomerID: "cus-1", DueDate: &due})
	if err != nil {
		t.Fatalf("Assemble error: %v", err)
	}
	if record.Status != InvoiceStatusUnpaid {
		t.Fatalf("finalized invoice expected Unpaid, got %s", record.Status)
	}
	// 1180 + 170.34 = 1350.34 -> 1350
	if !record.Amount.Equal(dec("1350")) {
		t.Fatalf("amount expected 1350, got %s", record.Amount)
	}
	if !record.RoundOffApplied || !record.RoundOffDelta.Equal(dec("-0.34")) {
		t.Fatalf("round-off expected delta -0.34, got applied=%v delta=%s", record.RoundOffApplied, record.RoundOffDelta)
	}
	if len(record.Results) != len(items) {
		t.Fatalf("expected %d results, got %d", len(items), len(record.Results))
	}
}

func TestAssemble_DraftMayBeEmpty(t *testing.T) {
	record, err := Assemble(nil, InvoiceMeta{CustomerID: "cus-1", Draft: true})
	if err != nil {
		t.Fatalf("empty draft must assemble: %v", err)
	}
	if record.Status != InvoiceStatusDraft {
		t.Fatalf("expected Draft, got %s", record.Status)
	}
	if !record.Amount.IsZero() {
		t.Fatalf("empty draft amount expected 0, got %s", record.Amount)
	}
}

func TestAssemble_NonDraftNeedsLineItems(t *testing.T) {
	_, err := Assemble(nil, InvoiceMeta{CustomerID: "cus-1"})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestAssemble_CustomerRequired(t *testing.T) {
	items := []LineItem{{Quantity: dec("1"), UnitPrice: dec("100")}}
	_, err := Assemble(items, InvoiceMeta{})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestAssemble_PropagatesLineValidation(t *testing.T) {
	items := []LineItem{{Quantity: dec("-1"), UnitPrice: dec("100")}}
	_, err := Assemble(items, InvoiceMeta{CustomerID: "cus-1"})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
