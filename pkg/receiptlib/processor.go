package receiptlib

import (
	"context"

	"github.com/jarvis-assistant-bys/expense-tracker/internal/llm"
	"github.com/jarvis-assistant-bys/expense-tracker/internal/ocr"
	"github.com/jarvis-assistant-bys/expense-tracker/internal/processor"
)

// ExtractionResult represents extraction result with metadata
type ExtractionResult struct {
	Data        *ExtractedData
	Method      string
	Warnings    []string
	NeedsReview bool
}

// PipelineOptions configures processor behavior
type PipelineOptions struct {
	// OCR Configuration
	OCRLanguage string // Tesseract language string (default: fra+eng)

	// LLM Configuration
	LLMAPIKey  string // API key (env: LLM_API_KEY)
	LLMBaseURL string // Base URL (env: LLM_BASE_URL)
	LLMModel   string // Text extraction model (env: LLM_MODEL)

	// Feature flags
	EnableLLM bool
}

// DefaultPipelineOptions returns default processor options
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		OCRLanguage: ocr.DefaultLanguage,
		EnableLLM:   true,
		LLMBaseURL:  llm.DefaultBaseURL,
		LLMModel:    llm.DefaultModel,
	}
}

// Processor runs the receipt extraction chain using the internal pipeline
type Processor struct {
	pipeline *processor.Pipeline
	options  PipelineOptions
}

// NewProcessor creates a new receipt processor with the given options
func NewProcessor(opts PipelineOptions) *Processor {
	lang := opts.OCRLanguage
	if lang == "" {
		lang = ocr.DefaultLanguage
	}
	acquirer := ocr.NewAcquirer(ocr.NewTesseract(lang))

	var pipelineOpts []processor.Option
	if opts.EnableLLM && opts.LLMAPIKey != "" {
		var clientOpts []llm.ClientOption
		if opts.LLMBaseURL != "" {
			clientOpts = append(clientOpts, llm.WithBaseURL(opts.LLMBaseURL))
		}
		client := llm.NewClient(opts.LLMAPIKey, clientOpts...)

		var extractorOpts []llm.ExtractorOption
		if opts.LLMModel != "" {
			extractorOpts = append(extractorOpts, llm.WithModel(opts.LLMModel))
		}
		pipelineOpts = append(pipelineOpts, processor.WithLLMExtractor(llm.NewExtractor(client, extractorOpts...)))
	}

	return &Processor{
		pipeline: processor.NewPipeline(acquirer, pipelineOpts...),
		options:  opts,
	}
}

// NewDefaultProcessor creates a processor with default options
func NewDefaultProcessor() *Processor {
	return NewProcessor(DefaultPipelineOptions())
}

// ProcessFile runs OCR and extraction over a receipt file (image or PDF)
func (p *Processor) ProcessFile(ctx context.Context, path string) (*ExtractionResult, error) {
	return convertResult(p.pipeline.ProcessFile(ctx, path))
}

// ProcessText runs extraction over already-recognized receipt text
func (p *Processor) ProcessText(ctx context.Context, text string) (*ExtractionResult, error) {
	return convertResult(p.pipeline.ProcessText(ctx, text))
}

func convertResult(result *processor.Result) (*ExtractionResult, error) {
	if result.Error != nil {
		return nil, result.Error
	}

	return &ExtractionResult{
		Data:        result.Data,
		Method:      string(result.Method),
		Warnings:    result.Warnings,
		NeedsReview: !result.Data.Reconciled,
	}, nil
}
