package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os/exec"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// NativeDPI renders pages at the PDF's own coordinate resolution (1pt = 1px).
const NativeDPI = 72.0

// ErrOCRUnavailable is returned when no OCR engine is configured.
var ErrOCRUnavailable = errors.New("OCR engine not configured; set TESSERACT_PATH")

// Rasterizer renders every page of a PDF to an image, in page order.
type Rasterizer interface {
	Rasterize(ctx context.Context, path string, visit func(page int, img image.Image) error) (pageCount int, err error)
}

// Recognizer runs optical character recognition on a single page image.
type Recognizer interface {
	Recognize(ctx context.Context, img image.Image) (string, error)
}

// FitzRasterizer renders pages with MuPDF via go-fitz.
type FitzRasterizer struct {
	DPI float64
}

// NewFitzRasterizer creates a rasterizer at the document's native resolution.
func NewFitzRasterizer() *FitzRasterizer {
	return &FitzRasterizer{DPI: NativeDPI}
}

// Rasterize opens the document and hands each rendered page to visit.
// Page numbers passed to visit are 1-based.
func (r *FitzRasterizer) Rasterize(ctx context.Context, path string, visit func(page int, img image.Image) error) (int, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open PDF for rendering: %w", err)
	}
	defer doc.Close()

	n := doc.NumPage()
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		img, err := doc.ImageDPI(i, r.DPI)
		if err != nil {
			return 0, fmt.Errorf("failed to render page %d: %w", i+1, err)
		}
		if err := visit(i+1, img); err != nil {
			return 0, err
		}
	}
	return n, nil
}

// TesseractRecognizer shells out to the tesseract CLI, piping a PNG on stdin.
type TesseractRecognizer struct {
	binPath  string
	language string
}

// NewTesseractRecognizer creates a recognizer. An empty binPath yields a
// recognizer that always fails with ErrOCRUnavailable.
func NewTesseractRecognizer(binPath, language string) *TesseractRecognizer {
	if language == "" {
		language = "eng"
	}
	return &TesseractRecognizer{binPath: binPath, language: language}
}

// Available reports whether a tesseract binary is configured.
func (t *TesseractRecognizer) Available() bool {
	return t.binPath != ""
}

// Recognize encodes img as PNG and returns tesseract's plain-text output.
func (t *TesseractRecognizer) Recognize(ctx context.Context, img image.Image) (string, error) {
	if t.binPath == "" {
		return "", ErrOCRUnavailable
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode page image: %w", err)
	}

	// exec.CommandContext kills tesseract if the request is cancelled.
	cmd := exec.CommandContext(ctx, t.binPath, "stdin", "stdout", "-l", t.language)
	cmd.Stdin = &buf
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("tesseract failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// OCRExtractor rasterizes each page and recognizes its text.
type OCRExtractor struct {
	rasterizer Rasterizer
	recognizer Recognizer
}

// NewOCRExtractor wires a rasterizer and a recognizer together.
func NewOCRExtractor(rasterizer Rasterizer, recognizer Recognizer) *OCRExtractor {
	return &OCRExtractor{rasterizer: rasterizer, recognizer: recognizer}
}

// Extract recognizes every page in order and joins the results with newlines.
// Any render or recognition failure aborts the whole document.
func (o *OCRExtractor) Extract(ctx context.Context, path string) (*Extraction, error) {
	var allText strings.Builder

	pageCount, err := o.rasterizer.Rasterize(ctx, path, func(page int, img image.Image) error {
		text, err := o.recognizer.Recognize(ctx, img)
		if err != nil {
			return fmt.Errorf("OCR failed on page %d: %w", page, err)
		}
		allText.WriteString(text)
		allText.WriteString("\n")
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Extraction{
		Text:      strings.TrimSpace(allText.String()),
		PageCount: pageCount,
	}, nil
}
