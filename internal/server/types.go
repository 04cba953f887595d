package server

import (
	"github.com/shopspring/decimal"

	"github.com/jarvis-assistant-bys/expense-tracker/internal/model"
)

// UpdateExpenseRequest carries a partial expense update; nil fields
// are left untouched.
type UpdateExpenseRequest struct {
	Date        *string          `json:"date"`
	Description *string          `json:"description"`
	Category    *model.Category  `json:"category"`
	Vendor      *string          `json:"vendor"`
	AmountHT    *decimal.Decimal `json:"amount_ht"`
	TVA         *decimal.Decimal `json:"tva"`
	AmountTTC   *decimal.Decimal `json:"amount_ttc"`
	TVARate     *decimal.Decimal `json:"tva_rate"`
}

// UploadResponse is the persisted record plus extraction metadata the
// client can use to drive a review flow.
type UploadResponse struct {
	Expense  *model.Expense  `json:"expense"`
	TaxLines []model.TaxLine `json:"tax_lines,omitempty"`
	Method   string          `json:"method"`
	Warnings []string        `json:"warnings,omitempty"`
}

// ListResponse is a filtered expense listing with its tax-inclusive
// sum.
type ListResponse struct {
	Expenses []model.Expense `json:"expenses"`
	Total    decimal.Decimal `json:"total_ttc"`
}
