package gst

import (
	"math/rand"
	"testing"
)

func computeAll(t *testing.T, items []LineItem) []LineItemResult {
	t.Helper()
	results := make([]LineItemResult, 0, len(items))
	for i, item := range items {
		r, err := ComputeLineItem(item)
		if err != nil {
			t.Fatalf("item %d: %v", i, err)
		}
		results = append(results, r)
	}
	return results
}

func TestAggregate_TwoIdenticalLines(t *testing.T) {
	item := LineItem{
		Quantity:  dec("2"),
		UnitPrice: dec("500"),
		ApplyCgst: true,
		ApplySgst: true,
		CgstRate:  dec("9"),
		SgstRate:  dec("9"),
	}
	totals := Aggregate(computeAll(t, []LineItem{item, item}))
	if !totals.Subtotal.Equal(dec("2000")) {
		t.Fatalf("subtotal expected 2000, got %s", totals.Subtotal)
	}
	if !totals.TotalTax.Equal(dec("360")) {
		t.Fatalf("total tax expected 360, got %s", totals.TotalTax)
	}
	if !totals.GrandTotalRaw.Equal(dec("2360")) || !totals.GrandTotalRounded.Equal(dec("2360")) {
		t.Fatalf("grand total expected 2360/2360, got %s/%s", totals.GrandTotalRaw, totals.GrandTotalRounded)
	}
	if totals.RoundOffApplied || !totals.RoundOffDelta.IsZero() {
		t.Fatalf("no round-off expected, got applied=%v delta=%s", totals.RoundOffApplied, totals.RoundOffDelta)
	}
}

func TestAggregate_RoundOffRetainsDelta(t *testing.T) {
	// raw grand total 2360.60 rounds up to 2361, delta 0.40
	results := []LineItemResult{{
		TaxableValue: dec("2360.60"),
		IgstAmount:   dec("0"),
		CgstAmount:   dec("0"),
		SgstAmount:   dec("0"),
		LineTotal:    dec("2360.60"),
	}}
	totals := Aggregate(results)
	if !totals.GrandTotalRounded.Equal(dec("2361")) {
		t.Fatalf("rounded total expected 2361, got %s", totals.GrandTotalRounded)
	}
	if !totals.RoundOffDelta.Equal(dec("0.40")) {
		t.Fatalf("round-off delta expected 0.40, got %s", totals.RoundOffDelta)
	}
	if !totals.RoundOffApplied {
		t.Fatalf("round-off must be marked applied")
	}
}

func TestAggregate_RoundHalfUp(t *testing.T) {
	cases := []struct {
		raw      string
		expected string
	}{
		{"2360.49", "2360"},
		{"2360.50", "2361"},
		{"2360.51", "2361"},
		{"0.5", "1"},
	}
	for _, tc := range cases {
		if got := RoundHalfUp(dec(tc.raw)); !got.Equal(dec(tc.expected)) {
			t.Fatalf("RoundHalfUp(%s) expected %s, got %s", tc.raw, tc.expected, got)
		}
	}
}

func TestAggregate_EmptyIsZero(t *testing.T) {
	totals := Aggregate(nil)
	if !totals.Subtotal.IsZero() || !totals.TotalTax.IsZero() || !totals.GrandTotalRounded.IsZero() {
		t.Fatalf("empty aggregation must be all zero, got %+v", totals)
	}
	if totals.RoundOffApplied {
		t.Fatalf("empty aggregation must not apply round-off")
	}
}

func TestAggregate_OrderIndependent(t *testing.T) {
	items := []LineItem{
		{Quantity: dec("2"), UnitPrice: dec("500"), ApplyCgst: true, ApplySgst: true, CgstRate: dec("9"), SgstRate: dec("9")},
		{Quantity: dec("1"), UnitPrice: dec("333.33"), ApplyIgst: true, IgstRate: dec("18")},
		{Quantity: dec("5"), UnitPrice: dec("19.99")},
		{Quantity: dec("1.25"), UnitPrice: dec("480"), ApplyCgst: true, ApplySgst: true, CgstRate: dec("6"), SgstRate: dec("6")},
	}
	base := Aggregate(computeAll(t, items))

	rng := rand.New(rand.NewSource(7))
	for run := 0; run < 50; run++ {
		shuffled := make([]LineItem, len(items))
		copy(shuffled, items)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		totals := Aggregate(computeAll(t, shuffled))
		if !totals.GrandTotalRounded.Equal(base.GrandTotalRounded) ||
			!totals.Subtotal.Equal(base.Subtotal) ||
			!totals.TotalIgst.Equal(base.TotalIgst) ||
			!totals.TotalCgst.Equal(base.TotalCgst) ||
			!totals.TotalSgst.Equal(base.TotalSgst) ||
			!totals.RoundOffDelta.Equal(base.RoundOffDelta) {
			t.Fatalf("run %d: permuted totals differ: %+v vs %+v", run, totals, base)
		}
	}
}

func TestAggregate_RoundingIdempotent(t *testing.T) {
	results := []LineItemResult{{
		TaxableValue: dec("1234.56"),
		LineTotal:    dec("1234.56"),
	}}
	first := Aggregate(results)

	// re-aggregate the rounded total as a single zero-tax line
	again := Aggregate([]LineItemResult{{
		TaxableValue: first.GrandTotalRounded,
		LineTotal:    first.GrandTotalRounded,
	}})
	if !again.GrandTotalRounded.Equal(first.GrandTotalRounded) {
		t.Fatalf("re-aggregating a rounded total changed it: %s -> %s", first.GrandTotalRounded, again.GrandTotalRounded)
	}
	if again.RoundOffApplied {
		t.Fatalf("re-aggregating a rounded total must not round again")
	}
}
