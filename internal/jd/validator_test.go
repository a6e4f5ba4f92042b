package jd

import (
	"context"
	"errors"
	"strings"
	"testing"
)

const validJD = "We are hiring a software engineer to join our team. The role requires five " +
	"years of experience with Go and distributed systems. Responsibilities include " +
	"building APIs and mentoring others. Requirements: strong testing habits."

const uiNoise = "Sign in Sign up New chat Settings Logout Menu Navigation sidebar " +
	"Click here to continue Privacy policy Cookie preferences"

// fillerWords has exactly 50 words, none of which contain a job keyword
// or a UI indicator as a substring
const fillerWords = "The quick brown fox jumps over the lazy dog while the sun rises " +
	"slowly above the quiet green valley and the river flows gently past the old " +
	"stone bridge toward the distant blue mountains where tall pine trees stand " +
	"silent under a wide open sky full of drifting white clouds"

type stubClassifier struct {
	answer string
	err    error
	calls  int
}

func (s *stubClassifier) Classify(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.answer, s.err
}

func TestValidateHeuristics(t *testing.T) {
	words := strings.Fields(fillerWords)
	if len(words) != 50 {
		t.Fatalf("fillerWords has %d words, fixture requires 50", len(words))
	}

	tests := []struct {
		name       string
		text       string
		wantValid  bool
		wantReason string
	}{
		{"empty", "", false, "Job description text is empty"},
		{"whitespace only", "  \n\t ", false, "Job description text is empty"},
		{"ui noise", uiNoise, false, RejectReason},
		{"too short", "Software engineer position open now", false, RejectReason},
		{"keyword poor at 49 words", strings.Join(words[:49], " "), false, RejectReason},
		{"keyword poor at 50 words", fillerWords, true, ""},
		{"valid jd", validJD, true, ""},
	}

	v := NewValidator(nil, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.Validate(context.Background(), tt.text)
			if got.IsValid != tt.wantValid {
				t.Errorf("IsValid = %v, want %v", got.IsValid, tt.wantValid)
			}
			if got.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", got.Reason, tt.wantReason)
			}
		})
	}
}

func TestValidateWordCountBoundary(t *testing.T) {
	// Exactly 20 words with two job keywords passes every heuristic
	text := "This role needs experience with cloud infrastructure and modern tooling " +
		"across many production systems serving a large customer base daily"
	if n := len(strings.Fields(text)); n != 20 {
		t.Fatalf("fixture has %d words, want 20", n)
	}

	v := NewValidator(nil, nil)
	if got := v.Validate(context.Background(), text); !got.IsValid {
		t.Errorf("20-word JD rejected: %q", got.Reason)
	}

	// Dropping one word crosses the minimum length rule
	short := strings.Join(strings.Fields(text)[:19], " ")
	if got := v.Validate(context.Background(), short); got.IsValid {
		t.Error("19-word JD accepted")
	}
}

func TestValidateUINoiseBoundary(t *testing.T) {
	// fillerWords has no keyword and no UI indicator, so the verdict
	// hinges on the number of appended UI terms
	v := NewValidator(nil, nil)

	atThree := fillerWords + " menu sidebar logout"
	if got := v.Validate(context.Background(), atThree); got.IsValid {
		t.Error("text with 3 UI terms and no keywords accepted")
	}

	belowThree := fillerWords + " menu sidebar"
	if got := v.Validate(context.Background(), belowThree); !got.IsValid {
		t.Errorf("text with 2 UI terms rejected: %q", got.Reason)
	}
}

func TestValidateClassifierStage(t *testing.T) {
	tests := []struct {
		name      string
		answer    string
		err       error
		wantValid bool
	}{
		{"yes", "yes", nil, true},
		{"yes with punctuation", " Yes.", nil, true},
		{"uppercase yes", "YES", nil, true},
		{"no", "no", nil, false},
		{"unexpected answer", "maybe", nil, false},
		{"classifier error fails open", "", errors.New("model unavailable"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &stubClassifier{answer: tt.answer, err: tt.err}
			v := NewValidator(c, nil)
			got := v.Validate(context.Background(), validJD)
			if got.IsValid != tt.wantValid {
				t.Errorf("IsValid = %v, want %v (reason %q)", got.IsValid, tt.wantValid, got.Reason)
			}
			if c.calls != 1 {
				t.Errorf("classifier called %d times, want 1", c.calls)
			}
		})
	}
}

func TestValidateSkipsClassifierOnHeuristicReject(t *testing.T) {
	c := &stubClassifier{answer: "yes"}
	v := NewValidator(c, nil)
	if got := v.Validate(context.Background(), "too short"); got.IsValid {
		t.Error("heuristically invalid text accepted")
	}
	if c.calls != 0 {
		t.Errorf("classifier called %d times on heuristic reject, want 0", c.calls)
	}
}

func TestBuildClassifyPromptTruncates(t *testing.T) {
	long := strings.Repeat("é", 1500)
	prompt := BuildClassifyPrompt(long)
	if got := strings.Count(prompt, "é"); got != 1000 {
		t.Errorf("prompt contains %d payload runes, want 1000", got)
	}
	if !strings.Contains(prompt, `Answer only "yes" or "no"`) {
		t.Error("prompt missing answer instruction")
	}
}

func TestNormalizeText(t *testing.T) {
	if got := NormalizeText("  some text \n"); got != "some text" {
		t.Errorf("NormalizeText() = %q", got)
	}
}

func TestCleanText(t *testing.T) {
	in := "  first line \n\n\n second line\n\n"
	want := "first line\nsecond line"
	if got := CleanText(in); got != want {
		t.Errorf("CleanText() = %q, want %q", got, want)
	}
}
