// Package tax derives and reconciles the VAT split on monetary documents.
package tax

import "math"

// Rate is the fixed VAT rate applied across the whole system.
// It is not stored per record.
const Rate = 0.15

// SplitTolerance is the accepted currency-rounding slack when checking
// that amount_before_tax + tax_amount matches the total.
const SplitTolerance = 0.01

// Split is the tax breakdown of a document total.
type Split struct {
	AmountBeforeTax float64 `json:"amount_before_tax"`
	TaxAmount       float64 `json:"tax_amount"`
}

// Round2 rounds to two decimal places, half away from zero.
// Amounts in this domain are always positive, so this behaves as
// round-half-up.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// DeriveSplit recomputes the tax breakdown from the document total.
//
// When taxIncluded is true the total already contains VAT and the base is
// back-calculated by dividing by 1+Rate; the tax portion is the residual
// against the base (not independently rounded) so the two parts always sum
// to the rounded total. Totals of zero or less pass through unchanged with
// a zero tax portion.
func DeriveSplit(amount float64, taxIncluded bool) Split {
	if amount <= 0 {
		return Split{AmountBeforeTax: amount, TaxAmount: 0}
	}
	if !taxIncluded {
		return Split{AmountBeforeTax: amount, TaxAmount: 0}
	}

	before := Round2(amount / (1 + Rate))
	return Split{
		AmountBeforeTax: before,
		TaxAmount:       Round2(amount - before),
	}
}

// ConsistentSplit reports whether a stored breakdown still matches the
// total within SplitTolerance.
func ConsistentSplit(amount, amountBeforeTax, taxAmount float64) bool {
	return math.Abs(amountBeforeTax+taxAmount-amount) < SplitTolerance
}
