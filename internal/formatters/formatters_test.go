package formatters

import (
	"strings"
	"testing"

	"github.com/YashPatkar/ShortlistAI/internal/types"
)

func sampleResult() types.AnalysisResult {
	return types.AnalysisResult{
		MatchScore:    72,
		MissingSkills: []string{"Kubernetes", "Terraform"},
		ContactMode:   types.ContactModeBoth,
		Email: &types.EmailDraft{
			DestinationEmail: "hr@example.com",
			Subject:          "Application for Backend Engineer",
			Body:             "Dear Hiring Team,",
		},
		DM:       &types.DMDraft{Message: "Hi, I came across your posting."},
		Warnings: []string{"This role appears to be location-specific."},
	}
}

func TestFormatAnalysisResult(t *testing.T) {
	registry := NewFormatterRegistry()
	result := sampleResult()

	tests := []struct {
		format   string
		contains []string
	}{
		{"json", []string{`"match_score": 72`, `"dm_message"`, `"destination_email"`}},
		{"text", []string{"Match Score: 72/100", "Kubernetes", "hr@example.com", "WARNINGS"}},
		{"markdown", []string{"# Job Match Analysis", "**Match Score:** 72/100", "## Suggested Email", "## Warnings"}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			output, err := registry.Format(result, tt.format)
			if err != nil {
				t.Fatalf("Format(%s) error = %v", tt.format, err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("Format(%s) output missing %q", tt.format, want)
				}
			}
		})
	}
}

func TestFormatValidationVerdict(t *testing.T) {
	registry := NewFormatterRegistry()

	output, err := registry.Format(types.InvalidVerdict("too short"), "text")
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(output, "rejected: too short") {
		t.Errorf("output = %q, want rejection reason", output)
	}

	output, err = registry.Format(types.ValidVerdict(), "markdown")
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(output, "looks valid") {
		t.Errorf("output = %q, want valid message", output)
	}
}

func TestFormatUnknownFormat(t *testing.T) {
	registry := NewFormatterRegistry()
	if _, err := registry.Format(sampleResult(), "yaml"); err == nil {
		t.Error("Format() with unsupported format expected error")
	}
}
