package extract_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jarvis-assistant-bys/expense-tracker/internal/extract"
	"github.com/jarvis-assistant-bys/expense-tracker/internal/money"
)

const restaurantReceipt = `CHEZ MARCEL
12 rue de la Paix, 75002 Paris
Le 15/03/2024

1 Menu du jour        14,00
1 Plat du jour        21,00
1 Café                 2,00
Vin au verre          12,00

TVA 10 % 31,82 3,18 35,00
TVA 20 % 11,67 2,33 14,00

TOTAL 49,00 €
Merci de votre visite`

func TestParse_RestaurantReceipt(t *testing.T) {
	data := extract.NewParser().Parse(restaurantReceipt)

	assert.Equal(t, "CHEZ MARCEL", data.Vendor)

	require.NotNil(t, data.Date)
	assert.True(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC).Equal(*data.Date))

	require.Len(t, data.TaxLines, 2)
	assert.True(t, data.TaxLines[0].Rate.Equal(money.MustParse("10")))
	assert.True(t, data.TaxLines[1].Rate.Equal(money.MustParse("20")))

	require.NotNil(t, data.AmountHT)
	require.NotNil(t, data.TVA)
	require.NotNil(t, data.AmountTTC)
	require.NotNil(t, data.TVARate)
	assert.True(t, data.AmountHT.Equal(money.MustParse("43.49")))
	assert.True(t, data.TVA.Equal(money.MustParse("5.51")))
	assert.True(t, data.AmountTTC.Equal(money.MustParse("49.00")))
	assert.True(t, data.TVARate.Equal(money.MustParse("10")))
	assert.True(t, data.Reconciled)

	assert.Equal(t, restaurantReceipt, data.RawText)
}

func TestParse_SingleAmountFallback(t *testing.T) {
	data := extract.NewParser().Parse("TVA 20% : 2,33€")

	require.Len(t, data.TaxLines, 1)
	assert.True(t, data.TaxLines[0].Rate.Equal(money.MustParse("20")))
	assert.True(t, data.TaxLines[0].AmountTax.Equal(money.MustParse("2.33")))
	assert.True(t, data.TaxLines[0].AmountPretax.Equal(money.MustParse("11.65")))
	assert.False(t, data.Reconciled)
}

func TestParse_DisagreeingTotalKept(t *testing.T) {
	text := "TVA 20 % 40,00 8,00 48,00\nTOTAL 50,00 €"
	data := extract.NewParser().Parse(text)

	require.NotNil(t, data.AmountTTC)
	assert.True(t, data.AmountTTC.Equal(money.MustParse("50.00")), "recognized total is kept, not corrected")
	assert.False(t, data.Reconciled)
}

func TestParse_EmptyText(t *testing.T) {
	for _, text := range []string{"", "   \n\t  \n"} {
		data := extract.NewParser().Parse(text)

		assert.Nil(t, data.Date)
		assert.Nil(t, data.AmountTTC)
		assert.Nil(t, data.AmountHT)
		assert.Nil(t, data.TVA)
		assert.Nil(t, data.TVARate)
		assert.Empty(t, data.TaxLines)
		assert.Empty(t, data.Vendor)
		assert.False(t, data.Reconciled)
	}
}

func TestParse_MonthNameDate(t *testing.T) {
	data := extract.NewParser().Parse("Paris, le 15 mars 2024\nTOTAL 10,00 €")

	require.NotNil(t, data.Date)
	assert.True(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC).Equal(*data.Date))
}

func TestParse_Deterministic(t *testing.T) {
	p := extract.NewParser()
	first := p.Parse(restaurantReceipt)
	second := p.Parse(restaurantReceipt)

	assert.Equal(t, first, second)
}

func TestGuessVendor(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"first line", "CARREFOUR MARKET\n12 avenue", "CARREFOUR MARKET"},
		{"leading blank lines", "\n\n  BOULANGERIE PAUL  \nticket", "BOULANGERIE PAUL"},
		{"empty", "", ""},
		{"whitespace only", "  \n \t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extract.GuessVendor(tt.text))
		})
	}
}
