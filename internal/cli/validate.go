package cli

import (
	"context"
	"fmt"

	"github.com/YashPatkar/ShortlistAI/internal/ai"
	"github.com/YashPatkar/ShortlistAI/internal/common"
	"github.com/YashPatkar/ShortlistAI/internal/jd"
	"github.com/YashPatkar/ShortlistAI/internal/types"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [job-description-file]",
	Short: "Check whether a file plausibly contains a job description",
	Long: `Run the job description plausibility filter over a text file and
report the verdict. The filter combines a lexical heuristic with an advisory
AI yes/no check; the AI stage is skipped when no API key is configured.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if validateConfig.OutputFormat == "" {
			validateConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(validateConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runValidate,
}

var validateConfig common.CommandConfig

func init() {
	validateCmd.Flags().StringVarP(&validateConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	validateCmd.Flags().StringVar(&validateConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	validator := newJDValidator(cfg, logger)

	createInput := func(contents []string) (string, error) {
		if len(contents) != 1 {
			return "", fmt.Errorf("expected 1 file path, got %d", len(contents))
		}
		return jd.NormalizeText(contents[0]), nil
	}

	logDetails := func(input string, cfg common.CommandConfig) {
		logger.Info("Validating job description",
			"jd_chars", len(input),
			"output_format", cfg.OutputFormat)
	}

	validateOperation := func(ctx context.Context, jdText string) (types.ValidationVerdict, *ai.TokenUsage, error) {
		return validator.Validate(ctx, jdText), nil, nil
	}

	return common.RunAICommand(
		cmd.Context(),
		logger,
		validateConfig,
		args,
		createInput,
		validateOperation,
		logDetails,
	)
}
