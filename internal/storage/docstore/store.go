// Package docstore persists extracted documents as one JSON file per upload.
//
// Records are keyed by the uploaded filename: uploading "notes.pdf" twice
// overwrites extracted_json/notes.json. There is no versioning and no
// collision handling beyond filename sanitization.
package docstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no record exists for a filename.
var ErrNotFound = errors.New("extracted document not found")

// ErrInvalidFilename is returned for names that would escape the store directory.
var ErrInvalidFilename = errors.New("invalid filename")

// Document is the serialized record for one extracted PDF.
type Document struct {
	Filename    string    `json:"filename"`
	Content     string    `json:"content"`
	Method      string    `json:"method,omitempty"`
	PageCount   int       `json:"page_count,omitempty"`
	WordCount   int       `json:"word_count,omitempty"`
	ExtractedAt time.Time `json:"extracted_at"`
}

// Store writes staged uploads and extracted records to local directories.
type Store struct {
	uploadDir    string
	extractedDir string
}

// New creates the store, making both directories if needed.
func New(uploadDir, extractedDir string) (*Store, error) {
	for _, dir := range []string{uploadDir, extractedDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return &Store{uploadDir: uploadDir, extractedDir: extractedDir}, nil
}

// SanitizeFilename reduces name to a safe base name.
func SanitizeFilename(name string) (string, error) {
	name = strings.TrimSpace(name)
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "" || base == "." || base == ".." || base == "/" || strings.HasPrefix(base, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilename, name)
	}
	if base != name {
		return "", fmt.Errorf("%w: %q must not contain a path", ErrInvalidFilename, name)
	}
	return base, nil
}

// RecordName maps an uploaded filename to its record file name
// ("notes.pdf" -> "notes.json"). Names without a .pdf suffix get ".json" appended.
func RecordName(filename string) string {
	lower := strings.ToLower(filename)
	if strings.HasSuffix(lower, ".pdf") {
		return filename[:len(filename)-len(".pdf")] + ".json"
	}
	if strings.HasSuffix(lower, ".json") {
		return filename
	}
	return filename + ".json"
}

// Stage writes the uploaded bytes to the staging directory and returns the path.
// The write goes to a temp file first so a concurrent reader never sees a
// half-written PDF.
func (s *Store) Stage(filename string, data []byte) (string, error) {
	name, err := SanitizeFilename(filename)
	if err != nil {
		return "", err
	}
	path := filepath.Join(s.uploadDir, name)
	if err := writeAtomic(path, data); err != nil {
		return "", fmt.Errorf("failed to stage upload: %w", err)
	}
	return path, nil
}

// Save serializes doc under its filename and returns the record path.
// An existing record for the same filename is overwritten.
func (s *Store) Save(doc *Document) (string, error) {
	name, err := SanitizeFilename(doc.Filename)
	if err != nil {
		return "", err
	}
	if doc.ExtractedAt.IsZero() {
		doc.ExtractedAt = time.Now().UTC()
	}

	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return "", fmt.Errorf("failed to encode record: %w", err)
	}

	path := filepath.Join(s.extractedDir, RecordName(name))
	if err := writeAtomic(path, data); err != nil {
		return "", fmt.Errorf("failed to write record: %w", err)
	}
	return path, nil
}

// Load reads the record for filename ("notes.pdf" or "notes.json").
func (s *Store) Load(filename string) (*Document, error) {
	name, err := SanitizeFilename(filename)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(s.extractedDir, RecordName(name)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to read record: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode record %s: %w", name, err)
	}
	return &doc, nil
}

// List returns the record file names in the store, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.extractedDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// writeAtomic writes data to a uniquely named temp file beside path, then renames it.
func writeAtomic(path string, data []byte) error {
	tmp := filepath.Join(filepath.Dir(path), "."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
