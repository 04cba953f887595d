package ocr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/go-fitz"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/jarvis-assistant-bys/expense-tracker/internal/model"
)

// Acquirer turns an image or multi-page PDF into recognized text. It
// holds no mutable state; concurrent documents each run with their own
// local temp files.
type Acquirer struct {
	engine Engine
}

// NewAcquirer creates an acquirer over the given recognition engine.
func NewAcquirer(engine Engine) *Acquirer {
	return &Acquirer{engine: engine}
}

// Text recognizes the document at path. Images are re-oriented from
// EXIF metadata and normalized before recognition; PDFs are rasterized
// page by page and the page texts joined with a line break in page
// order. An undecodable document yields a DecodeError; there is no
// retry at this layer.
func (a *Acquirer) Text(ctx context.Context, path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return a.pdfText(ctx, path)
	}
	return a.imageText(ctx, path)
}

func (a *Acquirer) imageText(ctx context.Context, path string) (string, error) {
	// AutoOrientation applies the EXIF orientation tag; decoding also
	// normalizes palette and alpha modes to NRGBA
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return "", model.NewDecodeError(path, "cannot decode image", err)
	}

	tmp, err := tempImagePath()
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp)

	if err := imaging.Save(img, tmp); err != nil {
		return "", model.NewDecodeError(path, "cannot write normalized image", err)
	}

	return a.engine.Recognize(ctx, tmp)
}

func (a *Acquirer) pdfText(ctx context.Context, path string) (string, error) {
	if err := api.ValidateFile(path, nil); err != nil {
		return "", model.NewDecodeError(path, "invalid PDF", err)
	}

	doc, err := fitz.New(path)
	if err != nil {
		return "", model.NewDecodeError(path, "cannot open PDF", err)
	}
	defer doc.Close()

	texts := make([]string, 0, doc.NumPage())
	for n := 0; n < doc.NumPage(); n++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		img, err := doc.Image(n)
		if err != nil {
			return "", model.NewDecodeError(path, fmt.Sprintf("cannot rasterize page %d", n+1), err)
		}

		tmp, err := tempImagePath()
		if err != nil {
			return "", err
		}
		if err := imaging.Save(img, tmp); err != nil {
			os.Remove(tmp)
			return "", model.NewDecodeError(path, fmt.Sprintf("cannot write page %d image", n+1), err)
		}

		text, err := a.engine.Recognize(ctx, tmp)
		os.Remove(tmp)
		if err != nil {
			return "", err
		}
		texts = append(texts, text)
	}

	return strings.Join(texts, "\n"), nil
}

func tempImagePath() (string, error) {
	f, err := os.CreateTemp("", "receipt-*.png")
	if err != nil {
		return "", fmt.Errorf("create temp image: %w", err)
	}
	name := f.Name()
	f.Close()
	return name, nil
}
