// Package processor wires acquisition, pattern extraction and the
// optional LLM assist into one pipeline. Each document is an
// independent unit of work with no shared mutable state, so one
// Pipeline serves concurrent invocations.
package processor

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jarvis-assistant-bys/expense-tracker/internal/extract"
	"github.com/jarvis-assistant-bys/expense-tracker/internal/llm"
	"github.com/jarvis-assistant-bys/expense-tracker/internal/model"
	"github.com/jarvis-assistant-bys/expense-tracker/internal/ocr"
)

// Method marks which extraction path produced a result.
type Method string

const (
	MethodPattern Method = "pattern"
	MethodLLM     Method = "llm"
)

// Result is the outcome of processing one document. Error is set only
// for unreadable documents; a result with nothing recognized is still
// a success with absent fields.
type Result struct {
	Data     *model.ExtractedData
	Method   Method
	Warnings []string
	Error    error
}

// Pipeline processes documents end to end: acquire text, run the
// pattern engine, optionally ask the LLM assist when the patterns came
// up empty.
type Pipeline struct {
	acquirer *ocr.Acquirer
	parser   *extract.Parser
	assist   *llm.Extractor
	log      *zap.Logger
}

// Option configures the pipeline.
type Option func(*Pipeline)

// WithLLMExtractor enables the LLM assist. A nil extractor leaves it
// disabled.
func WithLLMExtractor(e *llm.Extractor) Option {
	return func(p *Pipeline) {
		p.assist = e
	}
}

// WithLogger sets the pipeline logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) {
		p.log = l
	}
}

// NewPipeline creates a pipeline over the given acquirer.
func NewPipeline(acquirer *ocr.Acquirer, opts ...Option) *Pipeline {
	p := &Pipeline{
		acquirer: acquirer,
		parser:   extract.NewParser(),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProcessFile acquires text from the document at path and extracts a
// structured record from it. Decode failures come back in
// Result.Error; recognition and parsing misses come back as absent
// fields. The whole call respects ctx; callers needing bounded latency
// wrap it with a deadline.
func (p *Pipeline) ProcessFile(ctx context.Context, path string) *Result {
	text, err := p.acquirer.Text(ctx, path)
	if err != nil {
		p.log.Warn("acquisition failed", zap.String("path", path), zap.Error(err))
		return &Result{Error: err}
	}
	return p.ProcessText(ctx, text)
}

// ProcessText extracts a structured record from already recognized
// text. Pure over its input except for the optional LLM call.
func (p *Pipeline) ProcessText(ctx context.Context, text string) *Result {
	data := p.parser.Parse(text)
	result := &Result{Data: data, Method: MethodPattern}

	if p.assist == nil || !needsAssist(data) {
		return result
	}

	assisted, err := p.assist.ExtractFromText(ctx, text)
	if err != nil {
		// assist is best-effort; the pattern result stands
		result.Warnings = append(result.Warnings, fmt.Sprintf("llm assist failed: %v", err))
		p.log.Warn("llm assist failed", zap.Error(err))
		return result
	}

	fillAbsent(data, assisted)
	result.Method = MethodLLM
	return result
}

// needsAssist reports whether the pattern engine recognized nothing
// worth keeping.
func needsAssist(d *model.ExtractedData) bool {
	return d.Date == nil && d.AmountTTC == nil && len(d.TaxLines) == 0
}

// fillAbsent copies assisted values into fields the pattern engine
// left absent. Tax lines and the reconciled flag are never touched:
// only the numeric cross-check may set Reconciled.
func fillAbsent(dst, src *model.ExtractedData) {
	if dst.Date == nil {
		dst.Date = src.Date
	}
	if dst.AmountTTC == nil {
		dst.AmountTTC = src.AmountTTC
	}
	if dst.AmountHT == nil {
		dst.AmountHT = src.AmountHT
	}
	if dst.TVA == nil {
		dst.TVA = src.TVA
	}
	if dst.TVARate == nil {
		dst.TVARate = src.TVARate
	}
	if dst.Vendor == "" {
		dst.Vendor = src.Vendor
	}
}
