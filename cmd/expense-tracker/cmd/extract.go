package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jarvis-assistant-bys/expense-tracker/internal/llm"
	"github.com/jarvis-assistant-bys/expense-tracker/internal/model"
	"github.com/jarvis-assistant-bys/expense-tracker/internal/ocr"
	"github.com/jarvis-assistant-bys/expense-tracker/internal/processor"
)

var (
	outputFile string
	timeout    time.Duration
)

var extractCmd = &cobra.Command{
	Use:   "extract [files...]",
	Short: "Extract expense data from receipt files",
	Long: `Extract structured expense data from one or more receipt files.

Supported formats:
  - Images: .png, .jpg, .jpeg
  - PDF: .pdf (rasterized page by page)

The extraction flow:
  1. OCR the document text (Tesseract, fra+eng by default)
  2. Pattern extraction: date, totals, multi-rate TVA lines, vendor
  3. LLM assist when patterns come up empty (requires API key)

Examples:
  expense-tracker extract receipt.jpg
  expense-tracker extract receipt.pdf --api-key <key>
  expense-tracker extract scans/*.jpg -o results.json
  expense-tracker extract receipts/ -f table`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	extractCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "Processing timeout per file")
}

func runExtract(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no files found to process")
	}

	printVerbose("Found %d files to process\n", len(files))

	pipeline := newPipeline()

	results := make([]*ExtractResult, 0, len(files))
	for _, file := range files {
		printVerbose("Processing: %s\n", file)

		result := extractFile(pipeline, file)
		results = append(results, result)

		if result.Error != "" {
			printVerbose("  Error: %s\n", result.Error)
		} else {
			printVerbose("  Method: %s, Reconciled: %v\n", result.Method, result.Data.Reconciled)
		}
	}

	return outputResults(results)
}

// newPipeline builds the shared extraction pipeline from the global
// flags, with the LLM assist only when an API key was provided.
func newPipeline() *processor.Pipeline {
	lang := ocrLanguage
	if lang == "" {
		lang = ocr.DefaultLanguage
	}
	acquirer := ocr.NewAcquirer(ocr.NewTesseract(lang))

	var opts []processor.Option
	if apiKey != "" {
		var clientOpts []llm.ClientOption
		if llmBaseURL != "" {
			clientOpts = append(clientOpts, llm.WithBaseURL(llmBaseURL))
		}
		client := llm.NewClient(apiKey, clientOpts...)

		var extractorOpts []llm.ExtractorOption
		if llmModel != "" {
			extractorOpts = append(extractorOpts, llm.WithModel(llmModel))
		}
		opts = append(opts, processor.WithLLMExtractor(llm.NewExtractor(client, extractorOpts...)))
		printVerbose("LLM assist enabled (model: %s)\n", llmModel)
	}

	return processor.NewPipeline(acquirer, opts...)
}

func collectFiles(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		// Check if it's a glob pattern
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", arg, err)
		}

		if len(matches) == 0 {
			// Check if it's a directory
			info, err := os.Stat(arg)
			if err != nil {
				return nil, fmt.Errorf("file not found: %s", arg)
			}

			if info.IsDir() {
				err := filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
					if err != nil {
						return err
					}
					if !info.IsDir() && isSupportedFile(path) {
						files = append(files, path)
					}
					return nil
				})
				if err != nil {
					return nil, err
				}
			} else {
				files = append(files, arg)
			}
		} else {
			for _, match := range matches {
				info, err := os.Stat(match)
				if err != nil {
					continue
				}
				if !info.IsDir() && isSupportedFile(match) {
					files = append(files, match)
				}
			}
		}
	}

	return files, nil
}

func isSupportedFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".pdf", ".png", ".jpg", ".jpeg":
		return true
	default:
		return false
	}
}

func extractFile(pipeline *processor.Pipeline, filePath string) *ExtractResult {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	result := &ExtractResult{
		File: filePath,
	}

	pipelineResult := pipeline.ProcessFile(ctx, filePath)
	if pipelineResult.Error != nil {
		result.Error = pipelineResult.Error.Error()
		return result
	}

	result.Data = pipelineResult.Data
	result.Method = string(pipelineResult.Method)
	result.Warnings = pipelineResult.Warnings

	return result
}

func outputResults(results []*ExtractResult) error {
	var writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		writer = f
	}

	switch outputFormat {
	case "json":
		return outputJSON(writer, results)
	case "table":
		return outputTable(writer, results)
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}

func outputJSON(w *os.File, results []*ExtractResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(results)
}

func outputTable(w *os.File, results []*ExtractResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tDATE\tVENDOR\tTTC\tTVA\tRATE\tRECONCILED\tMETHOD")
	fmt.Fprintln(tw, "----\t----\t------\t---\t---\t----\t----------\t------")

	for _, r := range results {
		if r.Error != "" {
			fmt.Fprintf(tw, "%s\tERROR: %s\t\t\t\t\t\t\n", r.File, r.Error)
			continue
		}

		if r.Data != nil {
			date := ""
			if r.Data.Date != nil {
				date = r.Data.Date.Format("2006-01-02")
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%v\t%s\n",
				r.File,
				date,
				r.Data.Vendor,
				decimalString(r.Data.AmountTTC),
				decimalString(r.Data.TVA),
				decimalString(r.Data.TVARate),
				r.Data.Reconciled,
				r.Method,
			)
		}
	}

	return tw.Flush()
}

func decimalString(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}

// ExtractResult holds the result of processing a single file
type ExtractResult struct {
	File     string               `json:"file"`
	Data     *model.ExtractedData `json:"data,omitempty"`
	Method   string               `json:"method,omitempty"`
	Warnings []string             `json:"warnings,omitempty"`
	Error    string               `json:"error,omitempty"`
}
