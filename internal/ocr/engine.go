// Package ocr prepares receipt documents for text recognition and
// assembles the recognized text. Recognition itself is behind the
// Engine interface; the default implementation shells into tesseract
// through gosseract.
package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// DefaultLanguage is the tesseract model selection for French receipts
// with the occasional English line.
const DefaultLanguage = "fra+eng"

// Engine recognizes the text in one prepared image file.
type Engine interface {
	Recognize(ctx context.Context, imagePath string) (string, error)
}

// Tesseract runs the tesseract engine. A fresh client is created per
// call, so one Tesseract value can serve concurrent recognitions.
type Tesseract struct {
	languages []string
}

// NewTesseract creates an engine with the given language hint
// ("fra+eng" selects the combined French+English model). An empty hint
// falls back to DefaultLanguage.
func NewTesseract(lang string) *Tesseract {
	if lang == "" {
		lang = DefaultLanguage
	}
	return &Tesseract{languages: strings.Split(lang, "+")}
}

// Recognize runs tesseract over the image at imagePath.
func (t *Tesseract) Recognize(ctx context.Context, imagePath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.languages...); err != nil {
		return "", fmt.Errorf("set language: %w", err)
	}
	if err := client.SetImage(imagePath); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("tesseract: %w", err)
	}
	return text, nil
}
