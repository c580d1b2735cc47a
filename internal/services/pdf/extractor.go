// Package pdf provides PDF text extraction for uploaded study material.
//
// Extraction is a two-step decision pipeline:
//  1. Read the embedded text layer with the ledongthuc/pdf library (pure Go).
//  2. If that yields too little text, the document is treated as scanned and
//     every page is rasterized and run through OCR.
//
// Go Pattern: Each step satisfies the small Extractor interface, so the
// pipeline can be tested with fakes and the OCR engine can be swapped
// without touching the decision logic.
package pdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Extraction is the raw output of a single extraction strategy.
type Extraction struct {
	Text      string
	PageCount int
}

// Extractor turns a PDF file on disk into text.
type Extractor interface {
	Extract(ctx context.Context, path string) (*Extraction, error)
}

// TextLayerExtractor reads the embedded (already digital) text of each page.
type TextLayerExtractor struct{}

// NewTextLayerExtractor creates a direct text-layer extractor.
func NewTextLayerExtractor() *TextLayerExtractor {
	return &TextLayerExtractor{}
}

// Extract opens the document, walks pages in order and joins each page's text
// with a newline. Pages without a text layer contribute nothing.
func (e *TextLayerExtractor) Extract(ctx context.Context, path string) (result *Extraction, err error) {
	// The pdf library panics on some malformed cross-reference tables.
	// Surface that as an ordinary error instead of crashing the request.
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("failed to parse PDF %s: %v", path, r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	pageCount := reader.NumPage()

	var allText strings.Builder
	for i := 1; i <= pageCount; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to extract text from page %d: %w", i, err)
		}
		if text == "" {
			continue
		}
		allText.WriteString(text)
		allText.WriteString("\n")
	}

	return &Extraction{
		Text:      strings.TrimSpace(allText.String()),
		PageCount: pageCount,
	}, nil
}

// ValidatePDF checks if the data looks like a valid PDF by checking the magic bytes.
func ValidatePDF(data []byte) bool {
	// PDF files start with "%PDF-"
	return len(data) >= 5 && string(data[:5]) == "%PDF-"
}
