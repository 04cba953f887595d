package extract

import (
	"github.com/shopspring/decimal"

	"github.com/jarvis-assistant-bys/expense-tracker/internal/model"
)

// Tolerance absorbs OCR digit noise and per-line rounding when the
// recognized total is compared against the computed one.
var Tolerance = decimal.New(2, -2) // 0.02

var one = decimal.NewFromInt(1)

// Reconciliation is the consistent amount triple derived from the tax
// lines and the independently recognized total, plus the dominant rate
// retained for callers that only support a single rate.
type Reconciliation struct {
	AmountTTC  *decimal.Decimal
	AmountHT   *decimal.Decimal
	TVA        *decimal.Decimal
	TVARate    *decimal.Decimal
	Reconciled bool
}

// Reconcile combines recognized tax lines with the parsed total.
//
// With tax lines present, the pre-tax and tax sums are accumulated
// unrounded and rounded once at the end, so per-line rounding cannot
// drift. Reconciled is set only when an independently recognized total
// agrees with the computed one within Tolerance; a disagreeing total
// is kept as the value of record and the mismatch surfaces as
// Reconciled=false, never as a silent correction.
//
// Without tax lines the single-rate fallback applies: total minus a
// legacy tax amount, or splitting the total over a lone recognized
// rate. No cross-check exists on that path, so Reconciled stays false.
func Reconcile(lines []model.TaxLine, total *decimal.Decimal, legacyTax, legacyRate *decimal.Decimal) Reconciliation {
	if len(lines) > 0 {
		return reconcileLines(lines, total)
	}
	return reconcileSingle(total, legacyTax, legacyRate)
}

func reconcileLines(lines []model.TaxLine, total *decimal.Decimal) Reconciliation {
	sumHT := decimal.Zero
	sumTVA := decimal.Zero
	for _, l := range lines {
		sumHT = sumHT.Add(l.AmountPretax)
		sumTVA = sumTVA.Add(l.AmountTax)
	}
	sumHT = sumHT.Round(2)
	sumTVA = sumTVA.Round(2)
	calculated := sumHT.Add(sumTVA).Round(2)

	// dominant rate = largest pre-tax base, first occurrence wins ties
	dominant := lines[0].Rate
	best := lines[0].AmountPretax
	for _, l := range lines[1:] {
		if l.AmountPretax.GreaterThan(best) {
			best = l.AmountPretax
			dominant = l.Rate
		}
	}

	r := Reconciliation{AmountHT: &sumHT, TVA: &sumTVA, TVARate: &dominant}
	if total != nil {
		r.AmountTTC = total
		r.Reconciled = calculated.Sub(*total).Abs().LessThanOrEqual(Tolerance)
	} else {
		// no external value existed to confirm against
		r.AmountTTC = &calculated
	}
	return r
}

func reconcileSingle(total, tax, rate *decimal.Decimal) Reconciliation {
	r := Reconciliation{AmountTTC: total, TVA: tax, TVARate: rate}

	switch {
	case total != nil && tax != nil:
		ht := total.Sub(*tax).Round(2)
		r.AmountHT = &ht
	case total != nil && rate != nil:
		ht := total.Div(one.Add(rate.Div(hundred))).Round(2)
		tva := total.Sub(ht).Round(2)
		r.AmountHT = &ht
		r.TVA = &tva
	}

	return r
}
