package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jarvis-assistant-bys/expense-tracker/internal/config"
	"github.com/jarvis-assistant-bys/expense-tracker/internal/database"
	"github.com/jarvis-assistant-bys/expense-tracker/internal/llm"
	"github.com/jarvis-assistant-bys/expense-tracker/internal/logger"
	"github.com/jarvis-assistant-bys/expense-tracker/internal/ocr"
	"github.com/jarvis-assistant-bys/expense-tracker/internal/processor"
	"github.com/jarvis-assistant-bys/expense-tracker/internal/server"
)

var (
	serverAddr  string
	serverDebug bool
	dbPath      string
	uploadDir   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP API server for uploading receipts and managing expenses.

The API provides endpoints for:
  - POST   /api/expenses/upload        - Upload a receipt and extract an expense
  - GET    /api/expenses               - List expenses (month/year/category filters)
  - GET    /api/expenses/:id           - Get one expense
  - PUT    /api/expenses/:id           - Update an expense
  - DELETE /api/expenses/:id           - Delete an expense
  - GET    /api/expenses/export/excel  - Monthly Excel report
  - GET    /api/expenses/export/pdf    - Monthly PDF report
  - GET    /health                     - Health check

Examples:
  # Start server on default port
  expense-tracker serve

  # Start on custom port with LLM assist
  expense-tracker serve --address :8080 --api-key <key>

  # Start in debug mode
  expense-tracker serve --debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverAddr, "address", "", "Server listen address (env: ADDR, default :8000)")
	serveCmd.Flags().BoolVar(&serverDebug, "debug", false, "Enable debug mode")
	serveCmd.Flags().StringVar(&dbPath, "database", "", "SQLite database path (env: DATABASE_PATH)")
	serveCmd.Flags().StringVar(&uploadDir, "upload-dir", "", "Directory for stored receipt files (env: UPLOAD_DIR)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if serverAddr != "" {
		cfg.Addr = serverAddr
	}
	if serverDebug {
		cfg.Debug = true
	}
	if dbPath != "" {
		cfg.DatabasePath = dbPath
	}
	if uploadDir != "" {
		cfg.UploadDir = uploadDir
	}
	if apiKey != "" {
		cfg.LLMAPIKey = apiKey
	}
	if llmBaseURL != "" {
		cfg.LLMBaseURL = llmBaseURL
	}
	if llmModel != "" {
		cfg.LLMModel = llmModel
	}
	if ocrLanguage != "" {
		cfg.OCRLanguage = ocrLanguage
	}

	log, err := logger.New(cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Init(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	srv := server.New(cfg, db, serverPipeline(cfg, log), log)

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		fmt.Println("\nShutting down server...")
		db.Close()
		os.Exit(0)
	}()

	fmt.Printf("Starting server on %s\n", cfg.Addr)
	if cfg.LLMAPIKey != "" {
		fmt.Println("LLM assist enabled")
	} else {
		fmt.Println("LLM assist disabled (no API key)")
	}

	return srv.Run()
}

// serverPipeline builds the extraction pipeline from the resolved
// service configuration rather than the raw CLI flags.
func serverPipeline(cfg *config.Config, log *zap.Logger) *processor.Pipeline {
	lang := cfg.OCRLanguage
	if lang == "" {
		lang = ocr.DefaultLanguage
	}
	acquirer := ocr.NewAcquirer(ocr.NewTesseract(lang))

	opts := []processor.Option{processor.WithLogger(log)}
	if cfg.LLMAPIKey != "" {
		var clientOpts []llm.ClientOption
		if cfg.LLMBaseURL != "" {
			clientOpts = append(clientOpts, llm.WithBaseURL(cfg.LLMBaseURL))
		}
		client := llm.NewClient(cfg.LLMAPIKey, clientOpts...)

		var extractorOpts []llm.ExtractorOption
		if cfg.LLMModel != "" {
			extractorOpts = append(extractorOpts, llm.WithModel(cfg.LLMModel))
		}
		opts = append(opts, processor.WithLLMExtractor(llm.NewExtractor(client, extractorOpts...)))
	}

	return processor.NewPipeline(acquirer, opts...)
}
