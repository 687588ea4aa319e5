// Package receipt extracts the text layer from uploaded receipt
// documents so the parsing engine can treat them like typed input.
package receipt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"
)

// Extractor pulls embedded text out of PDF receipts. Image-only scans
// have no text layer and yield an empty string; OCR is deliberately not
// attempted here.
type Extractor struct {
	logger *zap.Logger
}

// NewExtractor creates a receipt text extractor.
func NewExtractor(logger *zap.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// SupportedType reports whether the extractor can handle a file with
// the given name.
func SupportedType(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".pdf")
}

// ExtractText returns the concatenated text of every page in the PDF.
func (e *Extractor) ExtractText(data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("failed to open document: %w", err)
	}
	defer doc.Close()

	var pages []string
	for pageNum := 0; pageNum < doc.NumPage(); pageNum++ {
		text, err := doc.Text(pageNum)
		if err != nil {
			e.logger.Warn("Failed to extract page text",
				zap.Int("page", pageNum),
				zap.Error(err))
			continue
		}
		pages = append(pages, text)
	}

	text := strings.TrimSpace(strings.Join(pages, "\n"))
	e.logger.Debug("Receipt text extracted",
		zap.Int("pages", doc.NumPage()),
		zap.Int("chars", len(text)))
	return text, nil
}

// ExtractFile reads and extracts a PDF from disk.
func (e *Extractor) ExtractFile(path string) (string, error) {
	if !SupportedType(path) {
		return "", fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read receipt: %w", err)
	}
	return e.ExtractText(data)
}
