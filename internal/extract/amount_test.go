package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jarvis-assistant-bys/expense-tracker/internal/extract"
	"github.com/jarvis-assistant-bys/expense-tracker/internal/money"
)

func TestParseTotal(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"TOTAL keyword", "TOTAL 49,00 €", "49.00"},
		{"TOTAL with colon", "Total: 123,45", "123.45"},
		{"lowercase total", "total 8.50 EUR", "8.50"},
		{"amount then euro sign", "A PAYER 35,00 €", "35.00"},
		{"euro sign then amount", "€ 12,90 merci", "12.90"},
		{"EUR prefix", "EUR 99,99", "99.99"},
		{"EUR suffix", "19,90 EUR", "19.90"},
		{"period decimal separator", "TOTAL 49.00", "49.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extract.ParseTotal(tt.text)
			require.NotNil(t, got)
			assert.True(t, got.Equal(money.MustParse(tt.expected)), "got %s", got)
		})
	}
}

func TestParseTotal_PatternPriority(t *testing.T) {
	// The TOTAL keyword wins over a bare euro amount even when the
	// bare amount appears first in the text.
	got := extract.ParseTotal("Menu 12,50 €\nTOTAL 25,00")
	require.NotNil(t, got)
	assert.True(t, got.Equal(money.MustParse("25.00")))
}

func TestParseTotal_FirstMatchWins(t *testing.T) {
	// Two TOTAL lines: only the first occurrence is taken.
	got := extract.ParseTotal("TOTAL 10,00\nTOTAL 20,00")
	require.NotNil(t, got)
	assert.True(t, got.Equal(money.MustParse("10.00")))
}

func TestParseTotal_NoMatch(t *testing.T) {
	assert.Nil(t, extract.ParseTotal("merci de votre visite"))
	assert.Nil(t, extract.ParseTotal(""))
	// An integer amount without cents does not match.
	assert.Nil(t, extract.ParseTotal("TOTAL 49"))
}
