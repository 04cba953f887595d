package receiptlib_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jarvis-assistant-bys/expense-tracker/pkg/receiptlib"
)

func TestNewProcessor(t *testing.T) {
	opts := receiptlib.DefaultPipelineOptions()
	opts.EnableLLM = false

	proc := receiptlib.NewProcessor(opts)
	require.NotNil(t, proc)
}

func TestNewDefaultProcessor(t *testing.T) {
	proc := receiptlib.NewDefaultProcessor()
	require.NotNil(t, proc)
}

func TestDefaultPipelineOptions(t *testing.T) {
	opts := receiptlib.DefaultPipelineOptions()

	assert.Equal(t, "fra+eng", opts.OCRLanguage)
	assert.True(t, opts.EnableLLM)
	assert.Equal(t, "https://openrouter.ai/api/v1", opts.LLMBaseURL)
	assert.NotEmpty(t, opts.LLMModel)
}

func TestProcessText(t *testing.T) {
	opts := receiptlib.DefaultPipelineOptions()
	opts.EnableLLM = false
	proc := receiptlib.NewProcessor(opts)

	text := `CHEZ MARCEL
Le 15/03/2024
TVA 10 % 31,82 3,18 35,00
TVA 20 % 11,67 2,33 14,00
TOTAL 49,00 €`

	result, err := proc.ProcessText(context.Background(), text)
	require.NoError(t, err)
	require.NotNil(t, result.Data)

	assert.Equal(t, "pattern", result.Method)
	assert.Equal(t, "CHEZ MARCEL", result.Data.Vendor)
	require.NotNil(t, result.Data.Date)
	assert.True(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC).Equal(*result.Data.Date))
	assert.True(t, result.Data.Reconciled)
	assert.False(t, result.NeedsReview)
}

func TestProcessText_NeedsReview(t *testing.T) {
	opts := receiptlib.DefaultPipelineOptions()
	opts.EnableLLM = false
	proc := receiptlib.NewProcessor(opts)

	// a lone total reconciles against nothing
	result, err := proc.ProcessText(context.Background(), "TOTAL 49,00 €")
	require.NoError(t, err)
	assert.False(t, result.Data.Reconciled)
	assert.True(t, result.NeedsReview)
}

func TestReExportedTypes(t *testing.T) {
	var data receiptlib.ExtractedData
	data.Vendor = "CHEZ MARCEL"
	assert.Equal(t, "CHEZ MARCEL", data.Vendor)

	var line receiptlib.TaxLine
	assert.True(t, line.AmountTotal().IsZero())

	assert.Equal(t, receiptlib.Category("repas"), receiptlib.CategoryRepas)
	assert.Equal(t, receiptlib.Category("autre"), receiptlib.CategoryAutre)
}
