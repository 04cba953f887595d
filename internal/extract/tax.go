package extract

import (
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/jarvis-assistant-bys/expense-tracker/internal/model"
	"github.com/jarvis-assistant-bys/expense-tracker/internal/money"
)

var hundred = decimal.NewFromInt(100)

var (
	// "TVA 10 %    31,82    3,18    35,00" — rate, pre-tax, tax. The
	// trailing TTC column is deliberately not captured; it is
	// recomputed rather than trusted.
	reTaxLine = regexp.MustCompile(`(?i)TVA\s*(\d+[,.]?\d*)\s*%\s+(\d+[,.]\d{2})\s+(\d+[,.]\d{2})`)

	// "TVA 20% : 2,33€" — rate and a lone amount taken as the tax
	// amount. Used only when the primary pattern matched nothing.
	reTaxSingle = regexp.MustCompile(`(?i)TVA\s*(\d+[,.]?\d*)\s*%[:\s]*(\d+[,.]\d{2})`)

	// Single-value patterns for receipts that print one VAT figure
	// without a bracket table. Feed the reconciliation fallback only.
	legacyTaxPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)TVA[:\s]*(\d+[,.]\d{2})`),
		regexp.MustCompile(`(?i)T\.V\.A[:\s]*(\d+[,.]\d{2})`),
	}
	legacyRatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)TVA\s*(\d+[,.]?\d*)\s*%`),
		regexp.MustCompile(`(\d+[,.]?\d*)\s*%`),
	}
)

// ExtractTaxLines extracts every VAT bracket from recognized text, in
// order of appearance. A match is kept only when its rate belongs to
// the legal rate set and both amounts parsed; anything else is
// silently discarded. Two matches of the same rate stay separate
// lines. When the primary rate+pretax+tax pattern matches nothing, a
// fallback pattern captures rate plus a lone amount, assumes it is the
// tax amount and derives the pre-tax base arithmetically — a receipt
// printing only the pre-tax figure is indistinguishable here and comes
// out wrong; that ambiguity is inherent to the single-amount layout.
func ExtractTaxLines(text string) []model.TaxLine {
	var lines []model.TaxLine

	for _, m := range reTaxLine.FindAllStringSubmatch(text, -1) {
		rate, okRate := money.Parse(m[1])
		pretax, okPretax := money.Parse(m[2])
		tax, okTax := money.Parse(m[3])
		if !okRate || !okPretax || !okTax || !model.IsValidTaxRate(rate) {
			continue
		}
		if pretax.IsZero() || tax.IsZero() {
			continue
		}
		lines = append(lines, model.TaxLine{Rate: rate, AmountPretax: pretax, AmountTax: tax})
	}
	if len(lines) > 0 {
		return lines
	}

	for _, m := range reTaxSingle.FindAllStringSubmatch(text, -1) {
		rate, okRate := money.Parse(m[1])
		tax, okTax := money.Parse(m[2])
		if !okRate || !okTax || !model.IsValidTaxRate(rate) || tax.IsZero() {
			continue
		}
		pretax := tax.Div(rate.Div(hundred)).Round(2)
		lines = append(lines, model.TaxLine{Rate: rate, AmountPretax: pretax, AmountTax: tax})
	}

	return lines
}

// ParseLegacyTax extracts a single VAT amount and rate for receipts
// where no bracket line was recognized. Either value may be nil.
func ParseLegacyTax(text string) (amount, rate *decimal.Decimal) {
	for _, re := range legacyTaxPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if d, ok := money.Parse(m[1]); ok {
			amount = &d
		}
		break
	}

	for _, re := range legacyRatePatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if r, ok := money.Parse(m[1]); ok && model.IsValidTaxRate(r) {
			rate = &r
			break
		}
	}

	return amount, rate
}
