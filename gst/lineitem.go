package gst

import (
	"github.com/shopspring/decimal"
)

// LineItem is one invoice line with its GST configuration.
// IGST applies to inter-state supply and is mutually exclusive with the
// CGST+SGST pair (intra-state supply). All flags off is a tax-exempt line.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	HsnCode     string          `json:"hsn_code"`
	ApplyIgst   bool            `json:"apply_igst"`
	ApplyCgst   bool            `json:"apply_cgst"`
	ApplySgst   bool            `json:"apply_sgst"`
	IgstRate    decimal.Decimal `json:"igst_rate"`
	CgstRate    decimal.Decimal `json:"cgst_rate"`
	SgstRate    decimal.Decimal `json:"sgst_rate"`
}

// LineItemResult is the derived tax breakdown for one line. Immutable.
type LineItemResult struct {
	TaxableValue decimal.Decimal `json:"taxable_value"`
	IgstAmount   decimal.Decimal `json:"igst_amount"`
	CgstAmount   decimal.Decimal `json:"cgst_amount"`
	SgstAmount   decimal.Decimal `json:"sgst_amount"`
	LineTotal    decimal.Decimal `json:"line_total"`
}

var (
	decimalZero       = decimal.NewFromInt(0)
	decimalOneHundred = decimal.NewFromInt(100)

	// Largest magnitude that fits the decimal(20,4) currency columns.
	maxCurrencyValue = decimal.New(1, 16)
)

func validateRate(field string, rate decimal.Decimal) error {
	if rate.LessThan(decimalZero) || rate.GreaterThan(decimalOneHundred) {
		return validationErr(field, "rate must be between 0 and 100")
	}
	return nil
}

// Validate checks the line item contract: positive quantity, non-negative
// unit price, rates within 0-100 and a consistent set of tax flags.
func (item LineItem) Validate() error {
	if !item.Quantity.GreaterThan(decimalZero) {
		return validationErr("quantity", "must be greater than zero")
	}
	if item.UnitPrice.LessThan(decimalZero) {
		return validationErr("unit_price", "must not be negative")
	}
	if err := validateRate("igst_rate", item.IgstRate); err != nil {
		return err
	}
	if err := validateRate("cgst_rate", item.CgstRate); err != nil {
		return err
	}
	if err := validateRate("sgst_rate", item.SgstRate); err != nil {
		return err
	}
	if item.ApplyIgst && (item.ApplyCgst || item.ApplySgst) {
		return validationErr("apply_igst", "IGST cannot be combined with CGST/SGST")
	}
	if item.ApplyCgst != item.ApplySgst {
		return validationErr("apply_cgst", "CGST and SGST must be applied together")
	}
	return nil
}

// taxAmount applies the percentage exactly: multiply first, then divide by
// 100, which is a pure exponent shift in decimal. No rounding happens before
// aggregation.
func taxAmount(taxableValue decimal.Decimal, rate decimal.Decimal, apply bool) decimal.Decimal {
	if !apply {
		return decimalZero
	}
	return taxableValue.Mul(rate).Div(decimalOneHundred)
}

// ComputeLineItem derives the tax breakdown for one line item.
// Pure and side-effect-free; the only failure modes are input-contract
// violations (ValidationError) and currency-range overflow (ComputationError).
func ComputeLineItem(item LineItem) (LineItemResult, error) {
	if err := item.Validate(); err != nil {
		return LineItemResult{}, err
	}

	taxableValue := item.Quantity.Mul(item.UnitPrice)
	if taxableValue.Abs().GreaterThan(maxCurrencyValue) {
		return LineItemResult{}, &ComputationError{Op: "taxable value", Value: taxableValue.String()}
	}

	result := LineItemResult{
		TaxableValue: taxableValue,
		IgstAmount:   taxAmount(taxableValue, item.IgstRate, item.ApplyIgst),
		CgstAmount:   taxAmount(taxableValue, item.CgstRate, item.ApplyCgst),
		SgstAmount:   taxAmount(taxableValue, item.SgstRate, item.ApplySgst),
	}
	result.LineTotal = result.TaxableValue.
		Add(result.IgstAmount).
		Add(result.CgstAmount).
		Add(result.SgstAmount)

	if result.LineTotal.Abs().GreaterThan(maxCurrencyValue) {
		return LineItemResult{}, &ComputationError{Op: "line total", Value: result.LineTotal.String()}
	}
	return result, nil
}
