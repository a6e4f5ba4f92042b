package jd

import (
	"context"
	"fmt"
	"strings"

	"github.com/YashPatkar/ShortlistAI/internal/errors"
	"github.com/YashPatkar/ShortlistAI/internal/types"
)

// RejectReason is the user-facing message returned for any text the
// filter classifies as not being a job description
const RejectReason = "This does not appear to be a valid job description. Please paste or upload a proper JD."

// jobKeywords are terms whose presence suggests employment-related text
var jobKeywords = []string{
	"responsibilities", "requirements", "qualifications", "experience",
	"skills", "role", "position", "candidate", "applicant", "job",
	"work", "team", "company", "years", "degree", "bachelor", "master",
	"develop", "design", "manage", "lead", "create", "implement",
}

// uiIndicators are terms typical of scraped page chrome rather than a JD
var uiIndicators = []string{
	"menu", "navigation", "sidebar", "click here", "sign in", "sign up",
	"cookie", "privacy policy", "terms of service", "chat", "new chat",
	"settings", "profile", "logout", "home", "back", "next", "previous",
}

// Classifier answers a yes/no question about a piece of text. It is the
// second, model-backed stage of the filter.
type Classifier interface {
	Classify(ctx context.Context, prompt string) (string, error)
}

// Validator decides whether free text plausibly is a job description.
// Stage one is a lexical heuristic over keyword and UI-noise counts;
// stage two asks the classifier. Stage two is advisory: any classifier
// error, and a nil classifier, leave a heuristically valid text valid.
type Validator struct {
	classifier Classifier
	logger     *errors.Logger
}

// NewValidator creates a validator. classifier may be nil, in which
// case only the heuristic stage runs.
func NewValidator(classifier Classifier, logger *errors.Logger) *Validator {
	return &Validator{classifier: classifier, logger: logger}
}

// Validate runs both filter stages over the given text
func (v *Validator) Validate(ctx context.Context, text string) types.ValidationVerdict {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return types.InvalidVerdict("Job description text is empty")
	}

	lower := strings.ToLower(trimmed)
	keywordCount := countOccurring(lower, jobKeywords)
	uiCount := countOccurring(lower, uiIndicators)
	wordCount := len(strings.Fields(trimmed))

	if uiCount >= 3 && keywordCount < 2 {
		return types.InvalidVerdict(RejectReason)
	}
	if wordCount < 20 {
		return types.InvalidVerdict(RejectReason)
	}
	if keywordCount < 2 && wordCount < 50 {
		return types.InvalidVerdict(RejectReason)
	}

	if v.classifier == nil {
		return types.ValidVerdict()
	}

	answer, err := v.classifier.Classify(ctx, BuildClassifyPrompt(trimmed))
	if err != nil {
		// Heuristics already passed; the model check must not block
		if v.logger != nil {
			v.logger.Warn("JD classification unavailable, trusting heuristics", "error", err.Error())
		}
		return types.ValidVerdict()
	}

	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "yes") {
		return types.ValidVerdict()
	}
	return types.InvalidVerdict(RejectReason)
}

// countOccurring counts how many of the terms appear as substrings
func countOccurring(lower string, terms []string) int {
	count := 0
	for _, term := range terms {
		if strings.Contains(lower, term) {
			count++
		}
	}
	return count
}

// BuildClassifyPrompt renders the yes/no question over the first 1000
// characters of the text
func BuildClassifyPrompt(text string) string {
	return fmt.Sprintf(classifyPromptTemplate, truncateRunes(text, 1000))
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

const classifyPromptTemplate = `Is the following text a valid job description? Answer only "yes" or "no".

Text:
%s

A valid job description should:
- Describe a job role or position
- List responsibilities or requirements
- Mention skills, experience, or qualifications
- Be about employment/work

Invalid examples:
- UI elements, navigation menus
- Random unrelated content
- Very short text without job context

Answer:`
