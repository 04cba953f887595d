package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ValidTaxRates holds the French VAT rates a receipt can legally carry.
var ValidTaxRates = []decimal.Decimal{
	decimal.NewFromFloat(5.5),
	decimal.NewFromInt(10),
	decimal.NewFromInt(20),
}

// IsValidTaxRate reports whether rate belongs to the legal rate set.
func IsValidTaxRate(rate decimal.Decimal) bool {
	for _, r := range ValidTaxRates {
		if rate.Equal(r) {
			return true
		}
	}
	return false
}

// TaxLine is one recognized VAT bracket on a receipt.
type TaxLine struct {
	Rate         decimal.Decimal `json:"rate"`
	AmountPretax decimal.Decimal `json:"amount_ht"`
	AmountTax    decimal.Decimal `json:"amount_tva"`
}

// AmountTotal returns the tax-inclusive amount for this bracket.
func (l TaxLine) AmountTotal() decimal.Decimal {
	return l.AmountPretax.Add(l.AmountTax).Round(2)
}

// ExtractedData is the structured result of reading one receipt.
// Pointer fields distinguish "not recognized" from a genuine zero;
// a value with every optional field nil is a valid result meaning
// nothing could be extracted.
type ExtractedData struct {
	Date       *time.Time       `json:"date,omitempty"`
	AmountTTC  *decimal.Decimal `json:"amount_ttc,omitempty"`
	AmountHT   *decimal.Decimal `json:"amount_ht,omitempty"`
	TVA        *decimal.Decimal `json:"tva,omitempty"`
	TVARate    *decimal.Decimal `json:"tva_rate,omitempty"`
	Vendor     string           `json:"vendor,omitempty"`
	RawText    string           `json:"raw_text"`
	TaxLines   []TaxLine        `json:"tax_lines,omitempty"`
	Reconciled bool             `json:"reconciled"`
}
