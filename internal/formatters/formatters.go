package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/YashPatkar/ShortlistAI/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "AnalysisResult", &AnalysisTextFormatter{})
	registry.RegisterFormatter("markdown", "AnalysisResult", &AnalysisMarkdownFormatter{})
	registry.RegisterFormatter("text", "ValidationVerdict", &VerdictTextFormatter{})
	registry.RegisterFormatter("markdown", "ValidationVerdict", &VerdictMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.AnalysisResult:
		return "AnalysisResult"
	case types.ValidationVerdict:
		return "ValidationVerdict"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// AnalysisTextFormatter handles text formatting for analysis results
type AnalysisTextFormatter struct{}

func (atf *AnalysisTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.AnalysisResult)
	if !ok {
		return "", fmt.Errorf("expected AnalysisResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== JOB MATCH ANALYSIS ===\n\n")
	output.WriteString(fmt.Sprintf("Match Score: %.0f/100\n", result.MatchScore))
	output.WriteString(fmt.Sprintf("Contact Mode: %s\n\n", result.ContactMode))

	if len(result.MissingSkills) > 0 {
		output.WriteString("Missing Skills:\n")
		for _, skill := range result.MissingSkills {
			output.WriteString(fmt.Sprintf("- %s\n", skill))
		}
		output.WriteString("\n")
	} else {
		output.WriteString("No missing skills detected.\n\n")
	}

	if result.Email != nil {
		output.WriteString("=== SUGGESTED EMAIL ===\n")
		output.WriteString(fmt.Sprintf("To: %s\n", result.Email.DestinationEmail))
		output.WriteString(fmt.Sprintf("Subject: %s\n\n", result.Email.Subject))
		output.WriteString(result.Email.Body)
		output.WriteString("\n\n")
	}

	if result.DM != nil {
		output.WriteString("=== SUGGESTED DIRECT MESSAGE ===\n")
		output.WriteString(result.DM.Message)
		output.WriteString("\n\n")
	}

	if len(result.Warnings) > 0 {
		output.WriteString("=== WARNINGS ===\n")
		for _, warning := range result.Warnings {
			output.WriteString(fmt.Sprintf("- %s\n", warning))
		}
	}

	return output.String(), nil
}

func (atf *AnalysisTextFormatter) SupportedType() string {
	return "AnalysisResult"
}

// AnalysisMarkdownFormatter handles markdown formatting for analysis results
type AnalysisMarkdownFormatter struct{}

func (amf *AnalysisMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.AnalysisResult)
	if !ok {
		return "", fmt.Errorf("expected AnalysisResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Job Match Analysis\n\n")
	output.WriteString(fmt.Sprintf("**Match Score:** %.0f/100\n\n", result.MatchScore))
	output.WriteString(fmt.Sprintf("**Contact Mode:** %s\n\n", result.ContactMode))

	if len(result.MissingSkills) > 0 {
		output.WriteString("## Missing Skills\n\n")
		for _, skill := range result.MissingSkills {
			output.WriteString(fmt.Sprintf("- %s\n", skill))
		}
		output.WriteString("\n")
	} else {
		output.WriteString("## Missing Skills\n\nNone detected.\n\n")
	}

	if result.Email != nil {
		output.WriteString("## Suggested Email\n\n")
		output.WriteString(fmt.Sprintf("**To:** %s\n\n", result.Email.DestinationEmail))
		output.WriteString(fmt.Sprintf("**Subject:** %s\n\n", result.Email.Subject))
		output.WriteString(result.Email.Body)
		output.WriteString("\n\n")
	}

	if result.DM != nil {
		output.WriteString("## Suggested Direct Message\n\n")
		output.WriteString(result.DM.Message)
		output.WriteString("\n\n")
	}

	if len(result.Warnings) > 0 {
		output.WriteString("## Warnings\n\n")
		for _, warning := range result.Warnings {
			output.WriteString(fmt.Sprintf("- %s\n", warning))
		}
	}

	return output.String(), nil
}

func (amf *AnalysisMarkdownFormatter) SupportedType() string {
	return "AnalysisResult"
}

// VerdictTextFormatter handles text formatting for validation verdicts
type VerdictTextFormatter struct{}

func (vtf *VerdictTextFormatter) Format(data any) (string, error) {
	verdict, ok := data.(types.ValidationVerdict)
	if !ok {
		return "", fmt.Errorf("expected ValidationVerdict, got %T", data)
	}

	if verdict.IsValid {
		return "Job description looks valid.\n", nil
	}
	return fmt.Sprintf("Job description rejected: %s\n", verdict.Reason), nil
}

func (vtf *VerdictTextFormatter) SupportedType() string {
	return "ValidationVerdict"
}

// VerdictMarkdownFormatter handles markdown formatting for validation verdicts
type VerdictMarkdownFormatter struct{}

func (vmf *VerdictMarkdownFormatter) Format(data any) (string, error) {
	verdict, ok := data.(types.ValidationVerdict)
	if !ok {
		return "", fmt.Errorf("expected ValidationVerdict, got %T", data)
	}

	if verdict.IsValid {
		return "# Validation Result\n\nJob description looks valid.\n", nil
	}
	return fmt.Sprintf("# Validation Result\n\n**Rejected:** %s\n", verdict.Reason), nil
}

func (vmf *VerdictMarkdownFormatter) SupportedType() string {
	return "ValidationVerdict"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
