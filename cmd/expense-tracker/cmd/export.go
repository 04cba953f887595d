package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jarvis-assistant-bys/expense-tracker/internal/config"
	"github.com/jarvis-assistant-bys/expense-tracker/internal/database"
	"github.com/jarvis-assistant-bys/expense-tracker/internal/export"
)

var (
	exportMonth  int
	exportYear   int
	exportOutput string
	exportDBPath string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a monthly expense report",
	Long: `Export the expenses of one month as an Excel or PDF report.

The report format follows the output file extension (.xlsx or .pdf).

Examples:
  expense-tracker export --month 3 --year 2025 -o mars.xlsx
  expense-tracker export --month 3 --year 2025 -o mars.pdf`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	now := time.Now()
	exportCmd.Flags().IntVar(&exportMonth, "month", int(now.Month()), "Month to export (1-12)")
	exportCmd.Flags().IntVar(&exportYear, "year", now.Year(), "Year to export")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (.xlsx or .pdf)")
	exportCmd.Flags().StringVar(&exportDBPath, "database", "", "SQLite database path (env: DATABASE_PATH)")
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportMonth < 1 || exportMonth > 12 {
		return fmt.Errorf("invalid month: %d", exportMonth)
	}
	if exportOutput == "" {
		exportOutput = fmt.Sprintf("expenses_%02d_%d.xlsx", exportMonth, exportYear)
	}

	cfg := config.Load()
	if exportDBPath != "" {
		cfg.DatabasePath = exportDBPath
	}

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Init(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	expenses, err := db.ListForPeriod(exportMonth, exportYear)
	if err != nil {
		return fmt.Errorf("failed to load expenses: %w", err)
	}

	printVerbose("Exporting %d expenses for %02d/%d\n", len(expenses), exportMonth, exportYear)

	ext := strings.ToLower(filepath.Ext(exportOutput))
	switch ext {
	case ".xlsx":
		buf, err := export.Excel(expenses, exportMonth, exportYear)
		if err != nil {
			return fmt.Errorf("failed to build Excel report: %w", err)
		}
		if err := os.WriteFile(exportOutput, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	case ".pdf":
		buf, err := export.PDF(expenses, exportMonth, exportYear)
		if err != nil {
			return fmt.Errorf("failed to build PDF report: %w", err)
		}
		if err := os.WriteFile(exportOutput, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	default:
		return fmt.Errorf("unsupported report format: %s", ext)
	}

	fmt.Printf("Wrote %s\n", exportOutput)
	return nil
}
