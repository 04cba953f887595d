// Package extract turns noisy recognized receipt text into a
// structured financial record: date, vendor, total and the multi-rate
// VAT breakdown, with a numeric consistency check across the three
// amounts. Every parser is a pure function of the text; misses come
// back as absent fields, never as errors.
package extract

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jarvis-assistant-bys/expense-tracker/internal/model"
)

// Parser assembles the field parsers into one extraction pass. It is
// stateless and safe for concurrent use.
type Parser struct{}

// NewParser creates a parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse runs every field parser over the recognized text and
// reconciles the amounts into one consistent record. Deterministic for
// a given text. A result with every optional field absent is valid and
// means nothing could be extracted.
func (p *Parser) Parse(text string) *model.ExtractedData {
	lines := ExtractTaxLines(text)
	total := ParseTotal(text)

	var legacyTax, legacyRate *decimal.Decimal
	if len(lines) == 0 {
		legacyTax, legacyRate = ParseLegacyTax(text)
	}

	rec := Reconcile(lines, total, legacyTax, legacyRate)

	return &model.ExtractedData{
		Date:       ParseDate(text),
		AmountTTC:  rec.AmountTTC,
		AmountHT:   rec.AmountHT,
		TVA:        rec.TVA,
		TVARate:    rec.TVARate,
		Vendor:     GuessVendor(text),
		RawText:    text,
		TaxLines:   lines,
		Reconciled: rec.Reconciled,
	}
}

// GuessVendor returns the first non-blank line of the recognized text,
// trimmed. Receipts usually open with the business name, but nothing
// validates that; this is a heuristic with no correctness guarantee.
func GuessVendor(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			return s
		}
	}
	return ""
}
