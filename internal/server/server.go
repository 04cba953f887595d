// Package server exposes the expense tracker HTTP API with gin. The
// extraction engine never fails a request over missing fields:
// unreconciled or partial extractions come back as data for the client
// to present as "needs review".
package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jarvis-assistant-bys/expense-tracker/internal/config"
	"github.com/jarvis-assistant-bys/expense-tracker/internal/database"
	"github.com/jarvis-assistant-bys/expense-tracker/internal/export"
	"github.com/jarvis-assistant-bys/expense-tracker/internal/model"
	"github.com/jarvis-assistant-bys/expense-tracker/internal/processor"
)

const extractTimeout = 2 * time.Minute

// Server is the HTTP API server.
type Server struct {
	cfg      *config.Config
	router   *gin.Engine
	db       *database.DB
	pipeline *processor.Pipeline
	log      *zap.Logger
}

// New creates the API server over an opened database and pipeline.
func New(cfg *config.Config, db *database.DB, pipeline *processor.Pipeline, log *zap.Logger) *Server {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Debug {
		router.Use(gin.Logger())
	}

	s := &Server{
		cfg:      cfg,
		router:   router,
		db:       db,
		pipeline: pipeline,
		log:      log,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api")
	{
		api.POST("/expenses/upload", s.handleUpload)
		api.GET("/expenses", s.handleList)
		api.GET("/expenses/export/excel", s.handleExportExcel)
		api.GET("/expenses/export/pdf", s.handleExportPDF)
		api.GET("/expenses/:id", s.handleGet)
		api.PUT("/expenses/:id", s.handleUpdate)
		api.DELETE("/expenses/:id", s.handleDelete)
	}
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
	}
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers or tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleUpload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file field"})
		return
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(file.Filename), "."))
	if !s.cfg.ExtAllowed(ext) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("unsupported extension %q, allowed: %s", ext, strings.Join(s.cfg.AllowedExts, ", ")),
		})
		return
	}
	if file.Size > s.cfg.MaxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot prepare upload directory"})
		return
	}
	storedPath := filepath.Join(s.cfg.UploadDir, uuid.NewString()+"."+ext)
	if err := c.SaveUploadedFile(file, storedPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot store file"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), extractTimeout)
	defer cancel()

	result := s.pipeline.ProcessFile(ctx, storedPath)
	if result.Error != nil {
		// the file is useless if it cannot be decoded
		os.Remove(storedPath)
		status := http.StatusInternalServerError
		if model.IsDecodeError(result.Error) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"error": result.Error.Error()})
		return
	}

	expense := model.FromExtraction(result.Data, storedPath)
	id, err := s.db.CreateExpense(expense)
	if err != nil {
		os.Remove(storedPath)
		s.log.Error("create expense", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot persist expense"})
		return
	}

	stored, err := s.db.GetExpense(id)
	if err != nil {
		s.log.Error("reload expense", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load expense"})
		return
	}

	s.log.Info("expense created from upload",
		zap.Int64("id", id),
		zap.String("method", string(result.Method)),
		zap.Bool("reconciled", stored.Reconciled))

	c.JSON(http.StatusCreated, UploadResponse{
		Expense:  stored,
		TaxLines: result.Data.TaxLines,
		Method:   string(result.Method),
		Warnings: result.Warnings,
	})
}

func (s *Server) handleList(c *gin.Context) {
	var filter database.ExpenseFilter

	if v := c.Query("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
			return
		}
		filter.Month = m
	}
	if v := c.Query("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y < 2000 || y > 2100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
			return
		}
		filter.Year = y
	}
	if v := c.Query("category"); v != "" {
		cat := model.Category(v)
		if !model.IsValidCategory(cat) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category"})
			return
		}
		filter.Category = cat
	}

	expenses, total, err := s.db.ListExpenses(filter)
	if err != nil {
		s.log.Error("list expenses", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot list expenses"})
		return
	}
	if expenses == nil {
		expenses = []model.Expense{}
	}
	c.JSON(http.StatusOK, ListResponse{Expenses: expenses, Total: total})
}

func (s *Server) handleGet(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	expense, err := s.db.GetExpense(id)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "expense not found"})
			return
		}
		s.log.Error("get expense", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load expense"})
		return
	}
	c.JSON(http.StatusOK, expense)
}

func (s *Server) handleUpdate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	expense, err := s.db.GetExpense(id)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "expense not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load expense"})
		return
	}

	if req.Date != nil {
		t, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
		expense.Date = t
	}
	if req.Description != nil {
		expense.Description = *req.Description
	}
	if req.Category != nil {
		if !model.IsValidCategory(*req.Category) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category"})
			return
		}
		expense.Category = *req.Category
	}
	if req.Vendor != nil {
		expense.Vendor = *req.Vendor
	}
	if req.AmountHT != nil {
		expense.AmountHT = req.AmountHT
	}
	if req.TVA != nil {
		expense.TVA = req.TVA
	}
	if req.AmountTTC != nil {
		expense.AmountTTC = *req.AmountTTC
	}
	if req.TVARate != nil {
		expense.TVARate = req.TVARate
	}

	if err := s.db.UpdateExpense(expense); err != nil {
		s.log.Error("update expense", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot update expense"})
		return
	}

	updated, err := s.db.GetExpense(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load expense"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) handleDelete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	expense, err := s.db.GetExpense(id)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "expense not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load expense"})
		return
	}

	if expense.FilePath != "" {
		if err := os.Remove(expense.FilePath); err != nil && !os.IsNotExist(err) {
			s.log.Warn("remove stored file", zap.String("path", expense.FilePath), zap.Error(err))
		}
	}

	if err := s.db.DeleteExpense(id); err != nil {
		s.log.Error("delete expense", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot delete expense"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "expense deleted"})
}

func (s *Server) handleExportExcel(c *gin.Context) {
	month, year, ok := parsePeriod(c)
	if !ok {
		return
	}

	expenses, err := s.db.ListForPeriod(month, year)
	if err != nil {
		s.log.Error("list period", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load expenses"})
		return
	}

	buf, err := export.Excel(expenses, month, year)
	if err != nil {
		s.log.Error("excel export", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot render report"})
		return
	}

	filename := fmt.Sprintf("note_frais_%02d_%d.xlsx", month, year)
	c.Header("Content-Disposition", `attachment; filename=`+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (s *Server) handleExportPDF(c *gin.Context) {
	month, year, ok := parsePeriod(c)
	if !ok {
		return
	}

	expenses, err := s.db.ListForPeriod(month, year)
	if err != nil {
		s.log.Error("list period", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load expenses"})
		return
	}

	buf, err := export.PDF(expenses, month, year)
	if err != nil {
		s.log.Error("pdf export", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot render report"})
		return
	}

	filename := fmt.Sprintf("note_frais_%02d_%d.pdf", month, year)
	c.Header("Content-Disposition", `attachment; filename=`+filename)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// Helper functions

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func parsePeriod(c *gin.Context) (month, year int, ok bool) {
	m, err := strconv.Atoi(c.Query("month"))
	if err != nil || m < 1 || m > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
		return 0, 0, false
	}
	y, err := strconv.Atoi(c.Query("year"))
	if err != nil || y < 2000 || y > 2100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return 0, 0, false
	}
	return m, y, true
}
