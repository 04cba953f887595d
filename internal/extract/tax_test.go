package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jarvis-assistant-bys/expense-tracker/internal/extract"
	"github.com/jarvis-assistant-bys/expense-tracker/internal/money"
)

func TestExtractTaxLines_MultiRate(t *testing.T) {
	text := `CHEZ MARCEL
TVA 10 % 31,82 3,18 35,00
TVA 20 % 11,67 2,33 14,00
TOTAL 49,00 €`

	lines := extract.ExtractTaxLines(text)
	require.Len(t, lines, 2)

	assert.True(t, lines[0].Rate.Equal(money.MustParse("10")))
	assert.True(t, lines[0].AmountPretax.Equal(money.MustParse("31.82")))
	assert.True(t, lines[0].AmountTax.Equal(money.MustParse("3.18")))
	assert.True(t, lines[0].AmountTotal().Equal(money.MustParse("35.00")))

	assert.True(t, lines[1].Rate.Equal(money.MustParse("20")))
	assert.True(t, lines[1].AmountPretax.Equal(money.MustParse("11.67")))
	assert.True(t, lines[1].AmountTax.Equal(money.MustParse("2.33")))
}

func TestExtractTaxLines_ReducedRate(t *testing.T) {
	lines := extract.ExtractTaxLines("TVA 5,5 % 20,00 1,10 21,10")
	require.Len(t, lines, 1)
	assert.True(t, lines[0].Rate.Equal(money.MustParse("5.5")))
}

func TestExtractTaxLines_InvalidRateDiscarded(t *testing.T) {
	// 19% is not a legal French rate: the bracket is dropped.
	lines := extract.ExtractTaxLines("TVA 19 % 10,00 1,90 11,90")
	assert.Empty(t, lines)
}

func TestExtractTaxLines_ZeroAmountsDiscarded(t *testing.T) {
	lines := extract.ExtractTaxLines("TVA 20 % 0,00 0,00 0,00")
	assert.Empty(t, lines)
}

func TestExtractTaxLines_DuplicateRatesKeptSeparate(t *testing.T) {
	text := "TVA 20 % 10,00 2,00 12,00\nTVA 20 % 5,00 1,00 6,00"
	lines := extract.ExtractTaxLines(text)
	require.Len(t, lines, 2)
	assert.True(t, lines[0].AmountPretax.Equal(money.MustParse("10.00")))
	assert.True(t, lines[1].AmountPretax.Equal(money.MustParse("5.00")))
}

func TestExtractTaxLines_SingleAmountFallback(t *testing.T) {
	// Rate plus a lone amount: treated as the tax amount, pre-tax base
	// derived arithmetically (2.33 / 0.20 = 11.65).
	lines := extract.ExtractTaxLines("TVA 20% : 2,33€")
	require.Len(t, lines, 1)

	assert.True(t, lines[0].Rate.Equal(money.MustParse("20")))
	assert.True(t, lines[0].AmountTax.Equal(money.MustParse("2.33")))
	assert.True(t, lines[0].AmountPretax.Equal(money.MustParse("11.65")))
}

func TestExtractTaxLines_PrimarySuppressesFallback(t *testing.T) {
	// When a full bracket line matched, single-amount matches in the
	// same text are not consulted.
	text := "TVA 10 % 31,82 3,18 35,00\nTVA 20% : 2,33"
	lines := extract.ExtractTaxLines(text)
	require.Len(t, lines, 1)
	assert.True(t, lines[0].Rate.Equal(money.MustParse("10")))
}

func TestExtractTaxLines_Empty(t *testing.T) {
	assert.Empty(t, extract.ExtractTaxLines(""))
	assert.Empty(t, extract.ExtractTaxLines("TOTAL 49,00 €"))
}

func TestParseLegacyTax(t *testing.T) {
	amount, rate := extract.ParseLegacyTax("TVA: 3,18 ... TVA 10 %")
	require.NotNil(t, amount)
	require.NotNil(t, rate)
	assert.True(t, amount.Equal(money.MustParse("3.18")))
	assert.True(t, rate.Equal(money.MustParse("10")))
}

func TestParseLegacyTax_DottedSpelling(t *testing.T) {
	amount, rate := extract.ParseLegacyTax("T.V.A 2,50")
	require.NotNil(t, amount)
	assert.True(t, amount.Equal(money.MustParse("2.50")))
	assert.Nil(t, rate)
}

func TestParseLegacyTax_InvalidRateIgnored(t *testing.T) {
	// 19% is not a legal rate: the rate stays nil but the bare
	// percent pattern keeps scanning for a valid one.
	_, rate := extract.ParseLegacyTax("remise 19 %")
	assert.Nil(t, rate)
}

func TestParseLegacyTax_Nothing(t *testing.T) {
	amount, rate := extract.ParseLegacyTax("merci")
	assert.Nil(t, amount)
	assert.Nil(t, rate)
}
