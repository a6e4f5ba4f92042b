package cli

import (
	"context"
	"fmt"

	"github.com/YashPatkar/ShortlistAI/internal/ai"
	"github.com/YashPatkar/ShortlistAI/internal/common"
	"github.com/YashPatkar/ShortlistAI/internal/config"
	"github.com/YashPatkar/ShortlistAI/internal/errors"
	"github.com/YashPatkar/ShortlistAI/internal/jd"
	"github.com/YashPatkar/ShortlistAI/internal/store"
	"github.com/YashPatkar/ShortlistAI/internal/types"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [job-description-file]",
	Short: "Analyze a job description against the stored resume",
	Long: `Analyze a job description against your stored resume using AI.
The command takes one argument: the path to a job description file in plain
text format. The text is first checked for plausibility as a job description,
then matched against the resume uploaded with 'shortlistai upload'.

The analysis includes:
- Match score (0-100)
- Skills listed in the job description but missing from the resume
- A suggested outreach email, direct message, or both
- Warnings about the posting worth knowing before applying`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if analyzeConfig.OutputFormat == "" {
			analyzeConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(analyzeConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runAnalyze,
}

var analyzeConfig common.CommandConfig

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	analyzeCmd.Flags().StringVar(&analyzeConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	// Add completion for format flag
	_ = analyzeCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	resume, err := loadStoredResume(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}

	// Create AI service for the analyze operation
	analyzeAIConfig := cfg.GetAnalyzeConfig()
	aiService, err := ai.NewService(&analyzeAIConfig, config.OperationAnalyze, logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}

	createInput := func(contents []string) (string, error) {
		if len(contents) != 1 {
			return "", fmt.Errorf("expected 1 file path, got %d", len(contents))
		}
		return jd.NormalizeText(contents[0]), nil
	}

	logDetails := func(input string, cfg common.CommandConfig) {
		logger.Info("Starting job description analysis",
			"resume_chars", len(resume.ExtractedText),
			"jd_chars", len(input),
			"output_format", cfg.OutputFormat)
	}

	// Validate the job description before spending an analysis call on it
	analyzeOperation := func(ctx context.Context, jdText string) (types.AnalysisResult, *ai.TokenUsage, error) {
		verdict := newJDValidator(cfg, logger).Validate(ctx, jdText)
		if !verdict.IsValid {
			return types.AnalysisResult{}, nil, errors.NewValidationError(errors.ErrCodeInvalidRequest, verdict.Reason, nil)
		}
		return aiService.Analyze(ctx, resume.ExtractedText, jdText)
	}

	err = common.RunAICommand(
		cmd.Context(),
		logger,
		analyzeConfig,
		args,
		createInput,
		analyzeOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to analyze job description: %w", err)
	}
	logger.Info("Job description analysis completed successfully")
	return nil
}

// loadStoredResume opens the resume store and fetches the stored resume
func loadStoredResume(ctx context.Context, cfg *config.Config, logger *errors.Logger) (*store.Resume, error) {
	db, err := store.Open(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open resume database: %w", err)
	}

	resumeStore, err := store.NewResumeStore(db, cfg.Storage.UploadDir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize resume store: %w", err)
	}

	return resumeStore.Get(ctx)
}

// newJDValidator builds the plausibility filter, degrading to heuristics
// only when the classify service cannot be created
func newJDValidator(cfg *config.Config, logger *errors.Logger) *jd.Validator {
	classifyAIConfig := cfg.GetClassifyConfig()

	var classifier jd.Classifier
	if classifyService, err := ai.NewService(&classifyAIConfig, config.OperationClassify, logger); err == nil {
		classifier = classifyService.Provider
	} else {
		logger.Warn("Classify service unavailable, falling back to heuristics only", "error", err)
	}

	return jd.NewValidator(classifier, logger)
}
