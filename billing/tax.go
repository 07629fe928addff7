package billing

import "math"

// Totals are the denormalized money fields carried on both draft and
// finalized orders:
//
//	subtotal   = Σ(line.unitPrice * line.quantity)
//	sgstAmount = subtotal * sgstRate/100
//	cgstAmount = subtotal * cgstRate/100
//	total      = subtotal + sgstAmount + cgstAmount
//
// Values stay full-precision float64; rounding happens only at
// display time via RoundMoney, so recomputing from the same lines is
// bit-identical.
type Totals struct {
	Subtotal   float64 `json:"subtotal"`
	SGSTRate   float64 `json:"sgst_rate"`
	CGSTRate   float64 `json:"cgst_rate"`
	SGSTAmount float64 `json:"sgst_amount"`
	CGSTAmount float64 `json:"cgst_amount"`
	Total      float64 `json:"total"`
}

// ClampRate bounds a tax percentage to [0, 100]. Negative or absurd
// rates coming from a misconfigured branch are clamped rather than
// rejected so billing never produces a negative tax amount.
func ClampRate(rate float64) float64 {
	if rate < 0 || math.IsNaN(rate) {
		return 0
	}
	if rate > 100 {
		return 100
	}
	return rate
}

// ComputeTotals derives the totals for a line set priced through the
// catalog. Unresolved lines price at zero; callers that must not
// tolerate them check Catalog.AllResolved first.
func ComputeTotals(lines []Line, catalog Catalog, sgstRate, cgstRate float64) Totals {
	sgstRate = ClampRate(sgstRate)
	cgstRate = ClampRate(cgstRate)

	var subtotal float64
	for _, l := range lines {
		subtotal += catalog.UnitPrice(l.Key()) * float64(l.Quantity)
	}

	sgst := subtotal * sgstRate / 100
	cgst := subtotal * cgstRate / 100
	return Totals{
		Subtotal:   subtotal,
		SGSTRate:   sgstRate,
		CGSTRate:   cgstRate,
		SGSTAmount: sgst,
		CGSTAmount: cgst,
		Total:      subtotal + sgst + cgst,
	}
}

// RoundMoney rounds to two decimals for display/print. Never used
// mid-calculation.
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
