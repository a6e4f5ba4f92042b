package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/YashPatkar/ShortlistAI/internal/config"
	"github.com/YashPatkar/ShortlistAI/internal/errors"
	"github.com/YashPatkar/ShortlistAI/internal/types"
)

// Service runs the resume/JD match analysis: one model call, then
// strict validation of the response against the wire contract.
// Malformed model output is always a hard failure; nothing is repaired
// or guessed.
type Service struct {
	Provider AIProvider // Exported for access from server package
	config   *config.OperationAIConfig
	logger   *errors.Logger
}

// NewService creates a new AI service instance with configuration for a specific operation
func NewService(cfg *config.OperationAIConfig, operationType string, logger *errors.Logger) (*Service, error) {
	var provider AIProvider
	var err error

	logger.Debug("Initializing AI service",
		"provider", cfg.Provider,
		"operation_type", operationType,
		"model", cfg.Model,
		"temperature", *cfg.Temperature,
		"timeout", *cfg.Timeout,
		"max_retries", *cfg.MaxRetries,
		"use_system_prompts", *cfg.UseSystemPrompts)

	switch cfg.Provider {
	case "gemini":
		provider, err = NewGeminiProvider(cfg, operationType, logger)
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("Unsupported AI provider: %s", cfg.Provider), nil)
	}

	if err != nil {
		return nil, err
	}

	return &Service{
		Provider: provider,
		config:   cfg,
		logger:   logger,
	}, nil
}

// Analyze matches the resume against the job description and returns
// the validated result
func (s *Service) Analyze(ctx context.Context, resumeText, jdText string) (types.AnalysisResult, *TokenUsage, error) {
	prompt := fmt.Sprintf(s.userPromptTemplate(), resumeText, jdText)

	raw, usage, err := s.Provider.Complete(ctx, prompt)
	if err != nil {
		return types.AnalysisResult{}, nil, err
	}

	result, err := ParseAnalysisResult(raw)
	if err != nil {
		s.logger.LogError(err, "Model returned a malformed analysis response")
		return types.AnalysisResult{}, usage, err
	}

	return result, usage, nil
}

// GetModelInfo returns information about the AI model for health checks
func (s *Service) GetModelInfo(ctx context.Context) any {
	return s.Provider.GetModelInfo(ctx)
}

func (s *Service) userPromptTemplate() string {
	loadedPrompts := config.GetPromptsForOperation(config.OperationAnalyze)
	return resolvePrompt(
		loadedPrompts.UserPrompts.AnalyzeMatch,
		s.config.CustomPrompts.UserPrompts.AnalyzeMatch,
		DefaultUserPrompts.AnalyzeMatch,
	)
}

// ParseAnalysisResult turns raw model text into a typed result. The
// payload is checked in a fixed order, failing on the first violation:
// required keys, score range, missing_skills shape, contact mode,
// mode-specific keys, warnings shape.
func ParseAnalysisResult(raw string) (types.AnalysisResult, error) {
	cleaned := StripCodeFences(raw)

	var payload map[string]any
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return types.AnalysisResult{}, errors.NewAIError(errors.ErrCodeMalformedOutput,
			"Failed to parse AI response as JSON", err)
	}

	return validateAnalysisPayload(payload)
}

// StripCodeFences removes the markdown code fences models sometimes
// wrap around JSON output
func StripCodeFences(raw string) string {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```json") {
		text = text[len("```json"):]
	}
	if strings.HasPrefix(text, "```") {
		text = text[len("```"):]
	}
	if strings.HasSuffix(text, "```") {
		text = text[:len(text)-len("```")]
	}
	return strings.TrimSpace(text)
}

func malformed(message string) error {
	return errors.NewAIError(errors.ErrCodeMalformedOutput, message, nil)
}

var contactModeKeys = map[types.ContactMode][]string{
	types.ContactModeEmail: {"destination_email", "email_subject", "email_body"},
	types.ContactModeDM:    {"dm_message"},
	types.ContactModeBoth:  {"destination_email", "email_subject", "email_body", "dm_message"},
}

func validateAnalysisPayload(payload map[string]any) (types.AnalysisResult, error) {
	var zero types.AnalysisResult

	for _, key := range []string{"match_score", "missing_skills", "contact_mode"} {
		if _, ok := payload[key]; !ok {
			return zero, malformed("Missing required key: " + key)
		}
	}

	score, ok := payload["match_score"].(float64)
	if !ok || score < 0 || score > 100 {
		return zero, malformed("match_score must be a number between 0 and 100")
	}

	rawSkills, ok := payload["missing_skills"].([]any)
	if !ok {
		return zero, malformed("missing_skills must be an array")
	}
	skills := make([]string, 0, len(rawSkills))
	for _, item := range rawSkills {
		s, ok := item.(string)
		if !ok {
			return zero, malformed("missing_skills must be an array of strings")
		}
		skills = append(skills, s)
	}

	modeStr, _ := payload["contact_mode"].(string)
	mode := types.ContactMode(modeStr)
	if !mode.Valid() {
		return zero, malformed("contact_mode must be 'email', 'dm', or 'both'")
	}

	fields := make(map[string]string, 4)
	for _, key := range contactModeKeys[mode] {
		value, ok := payload[key]
		if !ok {
			return zero, malformed(fmt.Sprintf("Missing required key for %s mode: %s", mode, key))
		}
		s, ok := value.(string)
		if !ok {
			return zero, malformed(key + " must be a string")
		}
		fields[key] = s
	}

	warnings := []string{}
	if rawWarnings, present := payload["warnings"]; present {
		list, ok := rawWarnings.([]any)
		if !ok {
			return zero, malformed("warnings must be an array")
		}
		for _, item := range list {
			w, ok := item.(string)
			if !ok {
				return zero, malformed("Each warning must be a string")
			}
			warnings = append(warnings, w)
		}
	}

	result := types.AnalysisResult{
		MatchScore:    score,
		MissingSkills: skills,
		ContactMode:   mode,
		Warnings:      warnings,
	}
	if mode == types.ContactModeEmail || mode == types.ContactModeBoth {
		result.Email = &types.EmailDraft{
			DestinationEmail: fields["destination_email"],
			Subject:          fields["email_subject"],
			Body:             fields["email_body"],
		}
	}
	if mode == types.ContactModeDM || mode == types.ContactModeBoth {
		result.DM = &types.DMDraft{Message: fields["dm_message"]}
	}

	return result, nil
}
