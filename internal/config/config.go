// Package config loads service configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the service configuration.
type Config struct {
	Addr           string
	DatabasePath   string
	UploadDir      string
	MaxUploadBytes int64
	AllowedExts    []string
	OCRLanguage    string

	LLMAPIKey  string
	LLMBaseURL string
	LLMModel   string

	Debug bool
}

// Load reads configuration from the environment. A missing .env file
// is not an error; OS environment variables always win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Addr:           getEnv("ADDR", ":8000"),
		DatabasePath:   getEnv("DATABASE_PATH", "data/expenses.db"),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadBytes: getEnvInt64("MAX_UPLOAD_BYTES", 10<<20),
		AllowedExts:    splitList(getEnv("ALLOWED_EXTENSIONS", "jpg,jpeg,png,pdf")),
		OCRLanguage:    getEnv("OCR_LANG", "fra+eng"),
		LLMAPIKey:      getEnv("LLM_API_KEY", ""),
		LLMBaseURL:     getEnv("LLM_BASE_URL", ""),
		LLMModel:       getEnv("LLM_MODEL", ""),
		Debug:          getEnvBool("DEBUG", false),
	}
}

// ExtAllowed reports whether the (dot-free, lowercase) extension is
// accepted for upload.
func (c *Config) ExtAllowed(ext string) bool {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	for _, allowed := range c.AllowedExts {
		if ext == allowed {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
