// Package llm is the optional extraction assist. When the regex engine
// reads nothing usable out of a receipt, the recognized text can be
// handed to an OpenAI-compatible model as a second opinion. Assisted
// values only ever fill fields the pattern engine left absent.
package llm

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/jarvis-assistant-bys/expense-tracker/internal/model"
	"github.com/jarvis-assistant-bys/expense-tracker/internal/money"
)

// Extractor extracts receipt fields from OCR text using an LLM.
type Extractor struct {
	client *Client
	model  string
}

// ExtractorOption configures the extractor
type ExtractorOption func(*Extractor)

// WithModel sets the extraction model
func WithModel(m string) ExtractorOption {
	return func(e *Extractor) {
		e.model = m
	}
}

// NewExtractor creates an extractor over the given client.
func NewExtractor(client *Client, opts ...ExtractorOption) *Extractor {
	e := &Extractor{client: client}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// receiptJSON is the response schema the prompt asks for.
type receiptJSON struct {
	Date      string   `json:"date"`
	AmountTTC *float64 `json:"amount_ttc"`
	AmountHT  *float64 `json:"amount_ht"`
	TVA       *float64 `json:"tva"`
	TVARate   *float64 `json:"tva_rate"`
	Vendor    string   `json:"vendor"`
}

// ExtractFromText asks the model for the receipt fields hidden in raw
// OCR text. The result is never marked reconciled — no numeric
// cross-check backs an LLM answer — and rates outside the legal set
// are dropped rather than trusted.
func (e *Extractor) ExtractFromText(ctx context.Context, text string) (*model.ExtractedData, error) {
	resp, err := e.client.ChatText(ctx, e.model, systemPromptReceipt, userPromptReceipt(text))
	if err != nil {
		return nil, model.NewExtractionError("llm", "chat request failed", err)
	}

	var parsed receiptJSON
	if err := json.Unmarshal([]byte(ExtractJSON(resp)), &parsed); err != nil {
		return nil, model.NewExtractionError("llm", "response is not valid JSON", err)
	}

	data := &model.ExtractedData{
		Vendor:  strings.TrimSpace(parsed.Vendor),
		RawText: text,
	}

	if t, err := time.Parse("2006-01-02", parsed.Date); err == nil {
		data.Date = &t
	}
	if parsed.AmountTTC != nil {
		d := money.FromFloat(*parsed.AmountTTC)
		data.AmountTTC = &d
	}
	if parsed.AmountHT != nil {
		d := money.FromFloat(*parsed.AmountHT)
		data.AmountHT = &d
	}
	if parsed.TVA != nil {
		d := money.FromFloat(*parsed.TVA)
		data.TVA = &d
	}
	if parsed.TVARate != nil {
		r := money.FromFloat(*parsed.TVARate)
		if model.IsValidTaxRate(r) {
			data.TVARate = &r
		}
	}

	return data, nil
}
