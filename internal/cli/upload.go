package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/YashPatkar/ShortlistAI/internal/errors"
	"github.com/YashPatkar/ShortlistAI/internal/ingest"
	"github.com/YashPatkar/ShortlistAI/internal/store"

	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [resume-pdf]",
	Short: "Store a PDF resume as the active resume",
	Long: `Extract text from a PDF resume and store it locally as the single
active resume. Any previously stored resume is replaced.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func runUpload(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	path := args[0]
	if !strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return errors.NewValidationError(errors.ErrCodeInvalidRequest, "File must be a PDF", nil)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return errors.NewIOError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("Cannot read file: %s", path), err)
	}
	if len(content) == 0 {
		return errors.NewValidationError(errors.ErrCodeInvalidRequest, "Empty file", nil)
	}
	if maxSize := cfg.App.MaxFileSize; maxSize > 0 && int64(len(content)) > maxSize {
		return errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"Resume file size must be less than 1 MB.", nil)
	}

	extractedText, err := ingest.ExtractPDFText(content)
	if err != nil {
		return err
	}

	db, err := store.Open(cfg.Storage.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open resume database: %w", err)
	}

	resumeStore, err := store.NewResumeStore(db, cfg.Storage.UploadDir, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize resume store: %w", err)
	}

	resume, err := resumeStore.Save(cmd.Context(), filepath.Base(path), content, extractedText)
	if err != nil {
		return fmt.Errorf("failed to save resume: %w", err)
	}

	logger.Info("Resume stored",
		"filename", resume.Filename,
		"extracted_chars", len(extractedText))
	fmt.Printf("Resume uploaded successfully: %s (%d characters extracted)\n",
		resume.Filename, len(extractedText))
	return nil
}
