package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category classifies an expense for reporting.
type Category string

const (
	CategoryRepas             Category = "repas"
	CategoryTransport         Category = "transport"
	CategoryFournitures       Category = "fournitures"
	CategoryLogiciel          Category = "logiciel"
	CategoryTelecommunication Category = "telecommunication"
	CategoryHebergement       Category = "hebergement"
	CategoryFormation         Category = "formation"
	CategoryAutre             Category = "autre"
)

// Categories lists every valid expense category.
var Categories = []Category{
	CategoryRepas,
	CategoryTransport,
	CategoryFournitures,
	CategoryLogiciel,
	CategoryTelecommunication,
	CategoryHebergement,
	CategoryFormation,
	CategoryAutre,
}

// IsValidCategory reports whether c is a known category.
func IsValidCategory(c Category) bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// MaxRawTextLen caps the recognized text kept on a persisted record.
const MaxRawTextLen = 5000

// Expense is a persisted expense record, built from an ExtractedData
// and whatever corrections the user applied afterward.
type Expense struct {
	ID          int64            `json:"id"`
	Date        time.Time        `json:"date"`
	Description string           `json:"description,omitempty"`
	Category    Category         `json:"category"`
	Vendor      string           `json:"vendor,omitempty"`
	AmountHT    *decimal.Decimal `json:"amount_ht,omitempty"`
	TVA         *decimal.Decimal `json:"tva,omitempty"`
	AmountTTC   decimal.Decimal  `json:"amount_ttc"`
	TVARate     *decimal.Decimal `json:"tva_rate,omitempty"`
	Reconciled  bool             `json:"reconciled"`
	FilePath    string           `json:"file_path,omitempty"`
	OCRRaw      string           `json:"ocr_raw,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at,omitempty"`
}

// FromExtraction builds an Expense from extraction output. Missing
// date falls back to today, missing total to zero; both stay editable
// by the caller.
func FromExtraction(data *ExtractedData, filePath string) *Expense {
	e := &Expense{
		Category:   CategoryAutre,
		Vendor:     data.Vendor,
		AmountHT:   data.AmountHT,
		TVA:        data.TVA,
		TVARate:    data.TVARate,
		Reconciled: data.Reconciled,
		FilePath:   filePath,
		OCRRaw:     truncate(data.RawText, MaxRawTextLen),
	}
	// the vendor line doubles as the initial description
	e.Description = data.Vendor
	if data.Date != nil {
		e.Date = *data.Date
	} else {
		e.Date = time.Now().UTC().Truncate(24 * time.Hour)
	}
	if data.AmountTTC != nil {
		e.AmountTTC = *data.AmountTTC
	}
	return e
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
