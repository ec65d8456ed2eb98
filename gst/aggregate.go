package gst

import "github.com/shopspring/decimal"

// InvoiceTotals aggregates line item results. RoundOffDelta is the signed
// difference the round-off rule applied to reach a whole currency unit; it is
// retained on the record so ledger reconciliation can audit the adjustment.
type InvoiceTotals struct {
	Subtotal          decimal.Decimal `json:"subtotal"`
	TotalIgst         decimal.Decimal `json:"total_igst"`
	TotalCgst         decimal.Decimal `json:"total_cgst"`
	TotalSgst         decimal.Decimal `json:"total_sgst"`
	TotalTax          decimal.Decimal `json:"total_tax"`
	GrandTotalRaw     decimal.Decimal `json:"grand_total_raw"`
	GrandTotalRounded decimal.Decimal `json:"grand_total_rounded"`
	RoundOffApplied   bool            `json:"round_off_applied"`
	RoundOffDelta     decimal.Decimal `json:"round_off_delta"`
}

// RoundHalfUp rounds to the nearest whole currency unit, halves away from zero.
func RoundHalfUp(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}

// Aggregate sums line item results into invoice totals and applies the
// round-off policy. Sums are associative; line order never changes the
// result. An empty sequence is a valid draft and yields all-zero totals.
func Aggregate(results []LineItemResult) InvoiceTotals {
	totals := InvoiceTotals{
		Subtotal:  decimalZero,
		TotalIgst: decimalZero,
		TotalCgst: decimalZero,
		TotalSgst: decimalZero,
	}
	for _, r := range results {
		totals.Subtotal = totals.Subtotal.Add(r.TaxableValue)
		totals.TotalIgst = totals.TotalIgst.Add(r.IgstAmount)
		totals.TotalCgst = totals.TotalCgst.Add(r.CgstAmount)
		totals.TotalSgst = totals.TotalSgst.Add(r.SgstAmount)
	}
	totals.TotalTax = totals.TotalIgst.Add(totals.TotalCgst).Add(totals.TotalSgst)
	totals.GrandTotalRaw = totals.Subtotal.Add(totals.TotalTax)
	totals.GrandTotalRounded = RoundHalfUp(totals.GrandTotalRaw)
	totals.RoundOffDelta = totals.GrandTotalRounded.Sub(totals.GrandTotalRaw)
	totals.RoundOffApplied = !totals.RoundOffDelta.IsZero()
	return totals
}
