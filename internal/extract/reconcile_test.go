package extract_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jarvis-assistant-bys/expense-tracker/internal/extract"
	"github.com/jarvis-assistant-bys/expense-tracker/internal/model"
	"github.com/jarvis-assistant-bys/expense-tracker/internal/money"
)

func taxLine(rate, pretax, tax string) model.TaxLine {
	return model.TaxLine{
		Rate:         money.MustParse(rate),
		AmountPretax: money.MustParse(pretax),
		AmountTax:    money.MustParse(tax),
	}
}

func amount(s string) *decimal.Decimal {
	d := money.MustParse(s)
	return &d
}

func TestReconcile_MultiRateAgreesWithTotal(t *testing.T) {
	lines := []model.TaxLine{
		taxLine("10", "31.82", "3.18"),
		taxLine("20", "11.67", "2.33"),
	}

	rec := extract.Reconcile(lines, amount("49.00"), nil, nil)

	require.NotNil(t, rec.AmountHT)
	require.NotNil(t, rec.TVA)
	require.NotNil(t, rec.AmountTTC)
	require.NotNil(t, rec.TVARate)

	assert.True(t, rec.AmountHT.Equal(money.MustParse("43.49")))
	assert.True(t, rec.TVA.Equal(money.MustParse("5.51")))
	assert.True(t, rec.AmountTTC.Equal(money.MustParse("49.00")))
	assert.True(t, rec.TVARate.Equal(money.MustParse("10")), "dominant rate is the largest pre-tax base")
	assert.True(t, rec.Reconciled)
}

func TestReconcile_ToleranceBoundary(t *testing.T) {
	lines := []model.TaxLine{taxLine("20", "40.00", "8.00")} // computes to 48.00

	tests := []struct {
		name       string
		total      string
		reconciled bool
	}{
		{"exact", "48.00", true},
		{"off by one cent", "48.01", true},
		{"off by two cents", "48.02", true},
		{"off by three cents", "48.03", false},
		{"off by three euros", "51.00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := extract.Reconcile(lines, amount(tt.total), nil, nil)
			assert.Equal(t, tt.reconciled, rec.Reconciled)
			// The recognized total is never overwritten.
			assert.True(t, rec.AmountTTC.Equal(money.MustParse(tt.total)))
		})
	}
}

func TestReconcile_NoTotalAdoptsComputed(t *testing.T) {
	lines := []model.TaxLine{taxLine("20", "11.65", "2.33")}

	rec := extract.Reconcile(lines, nil, nil, nil)

	require.NotNil(t, rec.AmountTTC)
	assert.True(t, rec.AmountTTC.Equal(money.MustParse("13.98")))
	assert.False(t, rec.Reconciled, "nothing independent to confirm against")
}

func TestReconcile_DominantRateTie(t *testing.T) {
	// Equal pre-tax bases: the first line wins.
	lines := []model.TaxLine{
		taxLine("5.5", "10.00", "0.55"),
		taxLine("20", "10.00", "2.00"),
	}

	rec := extract.Reconcile(lines, nil, nil, nil)
	require.NotNil(t, rec.TVARate)
	assert.True(t, rec.TVARate.Equal(money.MustParse("5.5")))
}

func TestReconcile_SingleValueTotalMinusTax(t *testing.T) {
	rec := extract.Reconcile(nil, amount("49.00"), amount("5.51"), nil)

	require.NotNil(t, rec.AmountHT)
	assert.True(t, rec.AmountHT.Equal(money.MustParse("43.49")))
	assert.True(t, rec.TVA.Equal(money.MustParse("5.51")))
	assert.False(t, rec.Reconciled)
}

func TestReconcile_SingleValueRateSplit(t *testing.T) {
	rec := extract.Reconcile(nil, amount("12.00"), nil, amount("20"))

	require.NotNil(t, rec.AmountHT)
	require.NotNil(t, rec.TVA)
	assert.True(t, rec.AmountHT.Equal(money.MustParse("10.00")))
	assert.True(t, rec.TVA.Equal(money.MustParse("2.00")))
	assert.False(t, rec.Reconciled)
}

func TestReconcile_NothingRecognized(t *testing.T) {
	rec := extract.Reconcile(nil, nil, nil, nil)

	assert.Nil(t, rec.AmountTTC)
	assert.Nil(t, rec.AmountHT)
	assert.Nil(t, rec.TVA)
	assert.Nil(t, rec.TVARate)
	assert.False(t, rec.Reconciled)
}
