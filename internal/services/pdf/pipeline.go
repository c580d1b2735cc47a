package pdf

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"unicode/utf8"

	"github.com/Shimizu-Technology/exam-prep-api/internal/textutil"
)

// MinTextLength is the character count the direct-extraction result must
// exceed for the document to count as text-based. It is measured over the
// whole document, so one good page among many scanned ones still passes.
const MinTextLength = 50

// PreviewLength is the number of characters returned as an upload preview.
const PreviewLength = 200

// Method records which strategy produced the final text.
type Method string

const (
	MethodText Method = "text"
	MethodOCR  Method = "ocr"
)

// Result holds the output from the extraction pipeline.
type Result struct {
	Text      string // Extracted text content
	Method    Method // "text" or "ocr"
	PageCount int    // Number of pages
	WordCount int    // Word count
	Preview   string // First PreviewLength characters
}

// IsTextBased judges whether direct extraction yielded usable text.
// The threshold counts characters, not bytes.
func IsTextBased(text string) bool {
	return utf8.RuneCountInString(text) > MinTextLength
}

// Pipeline runs direct extraction and falls back to OCR for scanned documents.
type Pipeline struct {
	direct Extractor
	ocr    Extractor
}

// NewPipeline creates a pipeline from a direct extractor and an OCR extractor.
func NewPipeline(direct, ocr Extractor) *Pipeline {
	return &Pipeline{direct: direct, ocr: ocr}
}

// Process extracts the text of the PDF at path.
//
// The direct result is used when IsTextBased accepts it; otherwise the OCR
// result is used as-is, even if empty. Errors from either step are returned
// unchanged in meaning; there is no partial result.
func (p *Pipeline) Process(ctx context.Context, path string) (*Result, error) {
	name := filepath.Base(path)

	direct, err := p.direct.Extract(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("text extraction failed: %w", err)
	}

	extraction, method := direct, MethodText
	if !IsTextBased(direct.Text) {
		log.Printf("🔍 %s: only %d characters in text layer, running OCR", name, utf8.RuneCountInString(direct.Text))
		ocr, err := p.ocr.Extract(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("OCR extraction failed: %w", err)
		}
		extraction, method = ocr, MethodOCR
	}

	pageCount := extraction.PageCount
	if pageCount == 0 {
		pageCount = direct.PageCount
	}

	log.Printf("📄 %s: extracted %d characters from %d pages (%s)", name, utf8.RuneCountInString(extraction.Text), pageCount, method)

	return &Result{
		Text:      extraction.Text,
		Method:    method,
		PageCount: pageCount,
		WordCount: textutil.CountWords(extraction.Text),
		Preview:   textutil.Truncate(extraction.Text, PreviewLength),
	}, nil
}
