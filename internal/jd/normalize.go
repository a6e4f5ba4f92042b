package jd

import "strings"

// NormalizeText prepares user-supplied JD text for validation and
// analysis. Inner whitespace is preserved; the filter's word counting
// depends on it.
func NormalizeText(text string) string {
	return strings.TrimSpace(text)
}

// CleanText collapses runs of blank lines in extracted document text
// and trims each line
func CleanText(text string) string {
	lines := strings.Split(text, "\n")
	var cleaned []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return strings.Join(cleaned, "\n")
}
