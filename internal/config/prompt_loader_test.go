package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writePromptFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing prompt file: %v", err)
	}
	return path
}

func TestLoadPromptsFromFiles(t *testing.T) {
	systemFile := writePromptFile(t, "system.txt", "Custom analysis system prompt.")
	userFile := writePromptFile(t, "user.txt", "Custom analysis user prompt with %s and %s.")

	cfg := baseConfig()
	cfg.AI.Analyze.CustomPrompts.SystemPrompts.AnalyzeMatchFile = systemFile
	cfg.AI.Analyze.CustomPrompts.UserPrompts.AnalyzeMatchFile = userFile

	if err := cfg.loadPromptsFromFiles(); err != nil {
		t.Fatalf("loadPromptsFromFiles() error = %v", err)
	}

	loaded := GetPromptsForOperation(OperationAnalyze)
	if loaded.SystemPrompts.AnalyzeMatch != "Custom analysis system prompt." {
		t.Errorf("system prompt = %q", loaded.SystemPrompts.AnalyzeMatch)
	}
	if !strings.Contains(loaded.UserPrompts.AnalyzeMatch, "Custom analysis user prompt") {
		t.Errorf("user prompt = %q", loaded.UserPrompts.AnalyzeMatch)
	}
}

func TestLoadPromptsFromFilesMissingFile(t *testing.T) {
	cfg := baseConfig()
	cfg.AI.Classify.CustomPrompts.SystemPrompts.ClassifyJDFile = filepath.Join(t.TempDir(), "missing.txt")

	if err := cfg.loadPromptsFromFiles(); err == nil {
		t.Error("loadPromptsFromFiles() expected error for missing file")
	}
}

func TestLoadPromptsFromFilesEmptyFile(t *testing.T) {
	emptyFile := writePromptFile(t, "empty.txt", "   \n\t ")

	cfg := baseConfig()
	cfg.AI.CustomPrompts.SystemPrompts.AnalyzeMatchFile = emptyFile

	if err := cfg.loadPromptsFromFiles(); err == nil {
		t.Error("loadPromptsFromFiles() expected error for empty file")
	}
}

func TestValidatePromptFiles(t *testing.T) {
	existing := writePromptFile(t, "ok.txt", "prompt")

	cfg := baseConfig()
	cfg.AI.CustomPrompts.SystemPrompts.AnalyzeMatchFile = existing
	if err := cfg.validatePromptFiles(); err != nil {
		t.Errorf("validatePromptFiles() unexpected error: %v", err)
	}

	cfg.AI.CustomPrompts.UserPrompts.AnalyzeMatchFile = filepath.Join(t.TempDir(), "gone.txt")
	if err := cfg.validatePromptFiles(); err == nil {
		t.Error("validatePromptFiles() expected error for missing file")
	}
}

func TestGetPromptsForOperationUnknown(t *testing.T) {
	loadedPrompts = AllLoadedPrompts{}
	loadedPrompts.Global.SystemPrompts.AnalyzeMatch = "global"

	got := GetPromptsForOperation("something-else")
	if got.SystemPrompts.AnalyzeMatch != "global" {
		t.Errorf("unknown operation should fall back to global prompts, got %+v", got)
	}
}
