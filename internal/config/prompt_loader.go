package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// loadPromptsFromFiles loads custom prompts from external files if file paths are specified
func (c *Config) loadPromptsFromFiles() error {
	loadedPrompts = AllLoadedPrompts{}

	// Global prompts
	if err := c.loadSystemPromptsFromFiles(&c.AI.CustomPrompts.SystemPrompts, &loadedPrompts.Global.SystemPrompts); err != nil {
		return fmt.Errorf("failed to load global system prompts: %w", err)
	}
	if err := c.loadUserPromptsFromFiles(&c.AI.CustomPrompts.UserPrompts, &loadedPrompts.Global.UserPrompts); err != nil {
		return fmt.Errorf("failed to load global user prompts: %w", err)
	}

	// Operation-specific prompts
	if err := c.loadSystemPromptsFromFiles(&c.AI.Analyze.CustomPrompts.SystemPrompts, &loadedPrompts.Analyze.SystemPrompts); err != nil {
		return fmt.Errorf("failed to load analyze system prompts: %w", err)
	}
	if err := c.loadUserPromptsFromFiles(&c.AI.Analyze.CustomPrompts.UserPrompts, &loadedPrompts.Analyze.UserPrompts); err != nil {
		return fmt.Errorf("failed to load analyze user prompts: %w", err)
	}
	if err := c.loadSystemPromptsFromFiles(&c.AI.Classify.CustomPrompts.SystemPrompts, &loadedPrompts.Classify.SystemPrompts); err != nil {
		return fmt.Errorf("failed to load classify system prompts: %w", err)
	}

	c.logPromptLoadingSummary()

	return nil
}

// loadSystemPromptsFromFiles loads system prompts from files if file paths are specified
func (c *Config) loadSystemPromptsFromFiles(prompts *SystemPrompts, target *LoadedSystemPrompts) error {
	if prompts.AnalyzeMatchFile != "" {
		content, err := loadPromptFromFile(prompts.AnalyzeMatchFile, "system", "analyzeMatch")
		if err != nil {
			return err
		}
		target.AnalyzeMatch = content
	}

	if prompts.ClassifyJDFile != "" {
		content, err := loadPromptFromFile(prompts.ClassifyJDFile, "system", "classifyJd")
		if err != nil {
			return err
		}
		target.ClassifyJD = content
	}

	return nil
}

// loadUserPromptsFromFiles loads user prompts from files if file paths are specified
func (c *Config) loadUserPromptsFromFiles(prompts *UserPrompts, target *LoadedUserPrompts) error {
	if prompts.AnalyzeMatchFile != "" {
		content, err := loadPromptFromFile(prompts.AnalyzeMatchFile, "user", "analyzeMatch")
		if err != nil {
			return err
		}
		target.AnalyzeMatch = content
	}

	return nil
}

// loadPromptFromFile loads a prompt from a file with proper error handling and logging
func loadPromptFromFile(filePath, promptType, operation string) (string, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path for %s %s prompt file '%s': %w", promptType, operation, filePath, err)
	}

	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return "", fmt.Errorf("%s %s prompt file not found: %s", promptType, operation, absPath)
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s %s prompt file '%s': %w", promptType, operation, absPath, err)
	}

	trimmedContent := strings.TrimSpace(string(content))
	if trimmedContent == "" {
		return "", fmt.Errorf("%s %s prompt file '%s' is empty", promptType, operation, absPath)
	}

	log.Printf("[CONFIG] Loaded %s %s prompt from file: %s (%d characters)",
		promptType, operation, absPath, len(trimmedContent))

	return trimmedContent, nil
}

// validatePromptFiles validates that prompt files exist before loading
func (c *Config) validatePromptFiles() error {
	var validationErrors []string

	validateFile := func(filePath, promptType, operation string) {
		if filePath == "" {
			return
		}

		absPath, err := filepath.Abs(filePath)
		if err != nil {
			validationErrors = append(validationErrors, fmt.Sprintf("invalid path for %s %s prompt: %s", promptType, operation, filePath))
			return
		}

		if _, err := os.Stat(absPath); os.IsNotExist(err) {
			validationErrors = append(validationErrors, fmt.Sprintf("%s %s prompt file not found: %s", promptType, operation, absPath))
		}
	}

	validateFile(c.AI.CustomPrompts.SystemPrompts.AnalyzeMatchFile, "system", "analyzeMatch")
	validateFile(c.AI.CustomPrompts.SystemPrompts.ClassifyJDFile, "system", "classifyJd")
	validateFile(c.AI.CustomPrompts.UserPrompts.AnalyzeMatchFile, "user", "analyzeMatch")

	validateFile(c.AI.Analyze.CustomPrompts.SystemPrompts.AnalyzeMatchFile, "analyze system", "analyzeMatch")
	validateFile(c.AI.Analyze.CustomPrompts.UserPrompts.AnalyzeMatchFile, "analyze user", "analyzeMatch")
	validateFile(c.AI.Classify.CustomPrompts.SystemPrompts.ClassifyJDFile, "classify system", "classifyJd")

	if len(validationErrors) > 0 {
		return fmt.Errorf("prompt file validation failed:\n%s", strings.Join(validationErrors, "\n"))
	}

	return nil
}

// logPromptLoadingSummary logs a summary of loaded prompts
func (c *Config) logPromptLoadingSummary() {
	promptChecks := []struct {
		content string
		message string
	}{
		{loadedPrompts.Global.SystemPrompts.AnalyzeMatch, "[CONFIG] Global system analyze prompt: loaded from file"},
		{loadedPrompts.Global.SystemPrompts.ClassifyJD, "[CONFIG] Global system classify prompt: loaded from file"},
		{loadedPrompts.Global.UserPrompts.AnalyzeMatch, "[CONFIG] Global user analyze prompt: loaded from file"},
		{loadedPrompts.Analyze.SystemPrompts.AnalyzeMatch, "[CONFIG] Analyze-specific system prompt: loaded from file"},
		{loadedPrompts.Analyze.UserPrompts.AnalyzeMatch, "[CONFIG] Analyze-specific user prompt: loaded from file"},
		{loadedPrompts.Classify.SystemPrompts.ClassifyJD, "[CONFIG] Classify-specific system prompt: loaded from file"},
	}

	promptCount := 0
	for _, check := range promptChecks {
		if check.content != "" {
			log.Println(check.message)
			promptCount++
		}
	}

	if promptCount == 0 {
		log.Println("[CONFIG] No custom prompts loaded - using built-in defaults")
	} else {
		log.Printf("[CONFIG] Total custom prompts loaded: %d", promptCount)
	}
}
