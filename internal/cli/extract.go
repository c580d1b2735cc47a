package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Shimizu-Technology/exam-prep-api/internal/services/pdf"
	"github.com/Shimizu-Technology/exam-prep-api/internal/storage/docstore"
)

var (
	flagStore    bool
	flagFullText bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <file.pdf>",
	Short: "Extract the text of a PDF, falling back to OCR for scanned pages",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().BoolVar(&flagStore, "store", false, "Save the record to EXTRACTED_DIR like an upload would")
	extractCmd.Flags().BoolVar(&flagFullText, "text", false, "Print the full extracted text instead of a summary")
}

type extractSummary struct {
	File      string `json:"file"`
	Method    string `json:"method"`
	PageCount int    `json:"page_count"`
	WordCount int    `json:"word_count"`
	Preview   string `json:"preview"`
	Record    string `json:"record,omitempty"`
}

func runExtract(cmd *cobra.Command, args []string) error {
	path := args[0]

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if !pdf.ValidatePDF(data) {
		return fmt.Errorf("%s does not appear to be a valid PDF", path)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	pipeline := pdf.NewPipeline(
		pdf.NewTextLayerExtractor(),
		pdf.NewOCRExtractor(pdf.NewFitzRasterizer(), pdf.NewTesseractRecognizer(cfg.TesseractPath, cfg.OCRLanguage)),
	)
	result, err := pipeline.Process(cmd.Context(), path)
	if err != nil {
		return err
	}

	summary := extractSummary{
		File:      filepath.Base(path),
		Method:    string(result.Method),
		PageCount: result.PageCount,
		WordCount: result.WordCount,
		Preview:   result.Preview,
	}

	if flagStore {
		docs, err := docstore.New(cfg.UploadDir, cfg.ExtractedDir)
		if err != nil {
			return err
		}
		summary.Record, err = docs.Save(&docstore.Document{
			Filename:  filepath.Base(path),
			Content:   result.Text,
			Method:    string(result.Method),
			PageCount: result.PageCount,
			WordCount: result.WordCount,
		})
		if err != nil {
			return err
		}
	}

	if flagFullText {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), result.Text)
		return err
	}
	return printJSON(cmd.OutOrStdout(), summary)
}
