package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "1.0.0"

	// Global flags
	verbose      bool
	outputFormat string
	ocrLanguage  string
	apiKey       string
	llmBaseURL   string
	llmModel     string
)

var rootCmd = &cobra.Command{
	Use:   "expense-tracker",
	Short: "Track expenses from French receipts (images and PDF)",
	Long: `Expense Tracker extracts structured data from scanned French receipts.

Supports:
  - Images: JPEG and PNG, OCR via Tesseract
  - PDF receipts: validated and rasterized page by page
  - Multi-rate TVA breakdowns (5.5%, 10%, 20%) with reconciliation
  - Optional LLM assist when pattern extraction comes up empty

Examples:
  # Extract a single receipt
  expense-tracker extract receipt.jpg

  # Extract a directory of receipts to JSON
  expense-tracker extract receipts/ -o results.json

  # Run the HTTP API with persistence
  expense-tracker serve

  # Export a monthly report
  expense-tracker export --month 3 --year 2025 -o mars.xlsx`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "json", "Output format (json, table)")
	rootCmd.PersistentFlags().StringVar(&ocrLanguage, "lang", "", "Tesseract language string (env: OCR_LANG, default fra+eng)")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "API key for LLM provider (env: LLM_API_KEY)")
	rootCmd.PersistentFlags().StringVar(&llmBaseURL, "llm-base-url", "", "LLM API base URL (env: LLM_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&llmModel, "llm-model", "", "LLM model for text extraction (env: LLM_MODEL)")

	// Load from environment variables if not set via flags
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if ocrLanguage == "" {
		ocrLanguage = os.Getenv("OCR_LANG")
	}
	if apiKey == "" {
		apiKey = os.Getenv("LLM_API_KEY")
	}
	if llmBaseURL == "" {
		llmBaseURL = os.Getenv("LLM_BASE_URL")
	}
	if llmModel == "" {
		llmModel = os.Getenv("LLM_MODEL")
	}
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
