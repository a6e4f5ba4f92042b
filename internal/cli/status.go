package cli

import (
	stderrors "errors"
	"fmt"

	"github.com/YashPatkar/ShortlistAI/internal/errors"
	"github.com/YashPatkar/ShortlistAI/internal/store"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the stored resume status",
	Long:  "Show whether a resume is currently stored, and when it was last updated.",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	db, err := store.Open(cfg.Storage.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open resume database: %w", err)
	}

	resumeStore, err := store.NewResumeStore(db, cfg.Storage.UploadDir, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize resume store: %w", err)
	}

	resume, err := resumeStore.Get(cmd.Context())
	if err != nil {
		var appErr *errors.AppError
		if stderrors.As(err, &appErr) && appErr.Code == errors.ErrCodeResumeNotFound {
			fmt.Println("No resume uploaded.")
			return nil
		}
		return err
	}

	fmt.Printf("Resume on file: %s\n", resume.Filename)
	fmt.Printf("Last updated:   %s\n", resume.UpdatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Extracted text: %d characters\n", len(resume.ExtractedText))
	return nil
}
