// upload.go handles PDF upload, extraction and preview.
//
// POST /api/upload/pdf                        Upload a PDF, extract its text
// GET  /api/upload/preview/:filename          First 500 characters of a record
// GET  /api/upload/list-extracted-files       Stored record names
package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/exam-prep-api/internal/models"
	pdfservice "github.com/Shimizu-Technology/exam-prep-api/internal/services/pdf"
	"github.com/Shimizu-Technology/exam-prep-api/internal/storage/docstore"
	"github.com/Shimizu-Technology/exam-prep-api/internal/textutil"
)

// maxPDFSize is the max upload size for PDF files.
const maxPDFSize = 50 << 20 // 50MB

// previewLength is the size of the preview endpoint's excerpt.
const previewLength = 500

// UploadPDF stages an uploaded PDF, extracts its text and stores the record.
// POST /api/upload/pdf
//
// Accepts multipart upload with field name "file". Processing is synchronous;
// re-uploading the same filename overwrites the previous record.
func (h *Handler) UploadPDF(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPDFSize)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request",
			"No PDF file provided. Upload a file with the field name 'file'. Max size: 50MB.")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".pdf" {
		respondError(c, http.StatusBadRequest, "invalid_file_type",
			fmt.Sprintf("Unsupported file format '%s'. Only .pdf files are accepted.", ext))
		return
	}

	// The pdf library needs random access, so the upload is read fully.
	data, err := io.ReadAll(file)
	if err != nil {
		respondError(c, http.StatusBadRequest, "read_error", "Failed to read uploaded file")
		return
	}

	if !pdfservice.ValidatePDF(data) {
		respondError(c, http.StatusBadRequest, "invalid_pdf", "The uploaded file does not appear to be a valid PDF")
		return
	}

	path, err := h.Documents.Stage(header.Filename, data)
	if err != nil {
		if errors.Is(err, docstore.ErrInvalidFilename) {
			respondError(c, http.StatusBadRequest, "invalid_filename", err.Error())
			return
		}
		log.Printf("❌ Failed to stage %s: %v", header.Filename, err)
		respondError(c, http.StatusInternalServerError, "storage_error", "Failed to store uploaded file")
		return
	}

	result, err := h.Pipeline.Process(c.Request.Context(), path)
	if err != nil {
		log.Printf("❌ PDF extraction failed for %s: %v", header.Filename, err)
		respondError(c, http.StatusInternalServerError, "extraction_failed", "PDF text extraction failed: "+err.Error())
		return
	}

	jsonPath, err := h.Documents.Save(&docstore.Document{
		Filename:  filepath.Base(path),
		Content:   result.Text,
		Method:    string(result.Method),
		PageCount: result.PageCount,
		WordCount: result.WordCount,
	})
	if err != nil {
		log.Printf("❌ Failed to save extraction record for %s: %v", header.Filename, err)
		respondError(c, http.StatusInternalServerError, "storage_error", "Failed to save extracted text")
		return
	}

	c.JSON(http.StatusOK, models.UploadResponse{
		Status:    "success",
		JSONFile:  jsonPath,
		Preview:   result.Preview,
		Method:    string(result.Method),
		PageCount: result.PageCount,
		WordCount: result.WordCount,
	})
}

// PreviewExtraction returns the first 500 characters of a stored record.
// GET /api/upload/preview/:filename
func (h *Handler) PreviewExtraction(c *gin.Context) {
	filename := c.Param("filename")

	doc, err := h.Documents.Load(filename)
	if err != nil {
		switch {
		case errors.Is(err, docstore.ErrNotFound):
			respondError(c, http.StatusNotFound, "not_found", "No extracted document for "+filename)
		case errors.Is(err, docstore.ErrInvalidFilename):
			respondError(c, http.StatusBadRequest, "invalid_filename", err.Error())
		default:
			log.Printf("❌ Failed to load record %s: %v", filename, err)
			respondError(c, http.StatusInternalServerError, "storage_error", "Failed to read extracted document")
		}
		return
	}

	c.JSON(http.StatusOK, models.PreviewResponse{
		Filename: doc.Filename,
		Preview:  textutil.Truncate(doc.Content, previewLength),
	})
}

// ListExtractedFiles lists stored extraction records.
// GET /api/upload/list-extracted-files
func (h *Handler) ListExtractedFiles(c *gin.Context) {
	files, err := h.Documents.List()
	if err != nil {
		log.Printf("❌ Failed to list records: %v", err)
		respondError(c, http.StatusInternalServerError, "storage_error", "Failed to list extracted files")
		return
	}

	c.JSON(http.StatusOK, models.ExtractedFilesResponse{
		Files: files,
		Count: len(files),
	})
}
