// Package receiptlib provides a public API for extracting expense data
// from French receipts.
//
// This package exposes the core types for running OCR, pattern
// extraction and tax reconciliation over scanned receipts.
//
// Example usage:
//
//	proc := receiptlib.NewDefaultProcessor()
//	result, err := proc.ProcessText(ctx, ocrText)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Data.AmountTTC)
package receiptlib

import "github.com/jarvis-assistant-bys/expense-tracker/internal/model"

// Re-export core types for public API
type (
	ExtractedData = model.ExtractedData
	TaxLine       = model.TaxLine
	Expense       = model.Expense
	Category      = model.Category
)

// Re-export expense categories
const (
	CategoryRepas             = model.CategoryRepas
	CategoryTransport         = model.CategoryTransport
	CategoryFournitures       = model.CategoryFournitures
	CategoryLogiciel          = model.CategoryLogiciel
	CategoryTelecommunication = model.CategoryTelecommunication
	CategoryHebergement       = model.CategoryHebergement
	CategoryFormation         = model.CategoryFormation
	CategoryAutre             = model.CategoryAutre
)

// Re-export error types
type (
	DecodeError     = model.DecodeError
	ExtractionError = model.ExtractionError
)

// IsValidTaxRate reports whether a rate is one of the recognized
// French TVA rates (5.5%, 10%, 20%).
var IsValidTaxRate = model.IsValidTaxRate
