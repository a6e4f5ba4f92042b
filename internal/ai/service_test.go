package ai

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/YashPatkar/ShortlistAI/internal/config"
	"github.com/YashPatkar/ShortlistAI/internal/errors"
	"github.com/YashPatkar/ShortlistAI/internal/types"
)

const emailResponse = `{
	"match_score": 85,
	"missing_skills": ["Kubernetes", "Terraform"],
	"contact_mode": "email",
	"destination_email": "hiring@example.com",
	"email_subject": "Application for Backend Engineer",
	"email_body": "Dear hiring team,",
	"warnings": []
}`

const dmResponse = `{
	"match_score": 62.5,
	"missing_skills": [],
	"contact_mode": "dm",
	"dm_message": "Hi! I saw your posting and my Go experience looks like a strong fit."
}`

const bothResponse = `{
	"match_score": 91,
	"missing_skills": ["GraphQL"],
	"contact_mode": "both",
	"destination_email": "jobs@example.com",
	"email_subject": "Platform Engineer application",
	"email_body": "Hello,",
	"dm_message": "Hi, just applied via email as well.",
	"warnings": ["This role appears to be location-specific."]
}`

type stubProvider struct {
	response string
	err      error
	calls    int
}

func (s *stubProvider) Complete(_ context.Context, _ string) (string, *TokenUsage, error) {
	s.calls++
	if s.err != nil {
		return "", nil, s.err
	}
	return s.response, &TokenUsage{InputTokens: 100, OutputTokens: 50, TotalTokens: 150}, nil
}

func (s *stubProvider) Classify(_ context.Context, _ string) (string, error) {
	return "yes", nil
}

func (s *stubProvider) GetModelInfo(_ context.Context) *ModelInfo {
	return &ModelInfo{Name: "stub", Available: true}
}

func (s *stubProvider) Close() error { return nil }

func newTestService(t *testing.T, provider AIProvider) *Service {
	t.Helper()
	temperature := float32(0.3)
	timeout := 30 * time.Second
	maxRetries := 0
	useSystemPrompts := true
	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("creating logger: %v", err)
	}
	return &Service{
		Provider: provider,
		config: &config.OperationAIConfig{
			Provider:         "gemini",
			Model:            "gemini-2.0-flash",
			Temperature:      &temperature,
			Timeout:          &timeout,
			MaxRetries:       &maxRetries,
			UseSystemPrompts: &useSystemPrompts,
		},
		logger: logger,
	}
}

func TestAnalyzeValidShapes(t *testing.T) {
	tests := []struct {
		name      string
		response  string
		wantMode  types.ContactMode
		wantEmail bool
		wantDM    bool
	}{
		{"email", emailResponse, types.ContactModeEmail, true, false},
		{"dm", dmResponse, types.ContactModeDM, false, true},
		{"both", bothResponse, types.ContactModeBoth, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, &stubProvider{response: tt.response})
			result, usage, err := svc.Analyze(context.Background(), "resume text", "jd text")
			if err != nil {
				t.Fatalf("Analyze() error = %v", err)
			}
			if result.ContactMode != tt.wantMode {
				t.Errorf("ContactMode = %q, want %q", result.ContactMode, tt.wantMode)
			}
			if (result.Email != nil) != tt.wantEmail {
				t.Errorf("Email set = %v, want %v", result.Email != nil, tt.wantEmail)
			}
			if (result.DM != nil) != tt.wantDM {
				t.Errorf("DM set = %v, want %v", result.DM != nil, tt.wantDM)
			}
			if result.Warnings == nil {
				t.Error("Warnings is nil, want at least an empty slice")
			}
			if usage == nil || usage.TotalTokens != 150 {
				t.Errorf("unexpected token usage: %+v", usage)
			}
		})
	}
}

func TestAnalyzeIdempotentWithDeterministicProvider(t *testing.T) {
	svc := newTestService(t, &stubProvider{response: bothResponse})
	first, _, err := svc.Analyze(context.Background(), "resume", "jd")
	if err != nil {
		t.Fatalf("first Analyze() error = %v", err)
	}
	second, _, err := svc.Analyze(context.Background(), "resume", "jd")
	if err != nil {
		t.Fatalf("second Analyze() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("results differ:\n first %+v\nsecond %+v", first, second)
	}
}

func TestAnalyzeTransportError(t *testing.T) {
	wantErr := errors.NewAIError(errors.ErrCodeAIServiceFailed, "Failed to generate content", nil)
	svc := newTestService(t, &stubProvider{err: wantErr})

	result, _, err := svc.Analyze(context.Background(), "resume", "jd")
	if err == nil {
		t.Fatal("Analyze() expected error, got nil")
	}
	if !reflect.DeepEqual(result, types.AnalysisResult{}) {
		t.Errorf("result = %+v, want zero value", result)
	}
}

func TestParseAnalysisResultFenceVariants(t *testing.T) {
	tests := []struct {
		name string
		wrap func(string) string
	}{
		{"bare", func(s string) string { return s }},
		{"json fence", func(s string) string { return "```json\n" + s + "\n```" }},
		{"plain fence", func(s string) string { return "```\n" + s + "\n```" }},
		{"leading whitespace", func(s string) string { return "\n\n  " + s + "  \n" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseAnalysisResult(tt.wrap(dmResponse))
			if err != nil {
				t.Fatalf("ParseAnalysisResult() error = %v", err)
			}
			if result.ContactMode != types.ContactModeDM {
				t.Errorf("ContactMode = %q, want dm", result.ContactMode)
			}
		})
	}
}

func TestParseAnalysisResultRejectsMalformedPayloads(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantMsg string
	}{
		{"not json", "the model rambled instead", "Failed to parse AI response as JSON"},
		{"missing match_score", `{"missing_skills":[],"contact_mode":"dm","dm_message":"m"}`, "Missing required key: match_score"},
		{"missing missing_skills", `{"match_score":50,"contact_mode":"dm","dm_message":"m"}`, "Missing required key: missing_skills"},
		{"missing contact_mode", `{"match_score":50,"missing_skills":[]}`, "Missing required key: contact_mode"},
		{"score as string", `{"match_score":"90","missing_skills":[],"contact_mode":"dm","dm_message":"m"}`, "match_score must be a number"},
		{"score above range", `{"match_score":101,"missing_skills":[],"contact_mode":"dm","dm_message":"m"}`, "match_score must be a number"},
		{"score below range", `{"match_score":-1,"missing_skills":[],"contact_mode":"dm","dm_message":"m"}`, "match_score must be a number"},
		{"skills not array", `{"match_score":50,"missing_skills":"Go","contact_mode":"dm","dm_message":"m"}`, "missing_skills must be an array"},
		{"unknown contact_mode", `{"match_score":50,"missing_skills":[],"contact_mode":"phone"}`, "contact_mode must be"},
		{"email mode missing body", `{"match_score":50,"missing_skills":[],"contact_mode":"email","destination_email":"a@b.c","email_subject":"s"}`, "Missing required key for email mode: email_body"},
		{"dm mode missing message", `{"match_score":50,"missing_skills":[],"contact_mode":"dm"}`, "Missing required key for dm mode: dm_message"},
		{"both mode missing dm", `{"match_score":50,"missing_skills":[],"contact_mode":"both","destination_email":"a@b.c","email_subject":"s","email_body":"b"}`, "Missing required key for both mode: dm_message"},
		{"contact field not string", `{"match_score":50,"missing_skills":[],"contact_mode":"dm","dm_message":42}`, "dm_message must be a string"},
		{"warnings not array", `{"match_score":50,"missing_skills":[],"contact_mode":"dm","dm_message":"m","warnings":"oops"}`, "warnings must be an array"},
		{"warning not string", `{"match_score":50,"missing_skills":[],"contact_mode":"dm","dm_message":"m","warnings":[1]}`, "Each warning must be a string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseAnalysisResult(tt.payload)
			if err == nil {
				t.Fatal("ParseAnalysisResult() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want substring %q", err.Error(), tt.wantMsg)
			}
			appErr, ok := err.(*errors.AppError)
			if !ok {
				t.Fatalf("error type = %T, want *errors.AppError", err)
			}
			if appErr.Code != errors.ErrCodeMalformedOutput {
				t.Errorf("error code = %q, want %q", appErr.Code, errors.ErrCodeMalformedOutput)
			}
			if !reflect.DeepEqual(result, types.AnalysisResult{}) {
				t.Errorf("result = %+v, want zero value on failure", result)
			}
		})
	}
}

func TestParseAnalysisResultWarningsDefault(t *testing.T) {
	result, err := ParseAnalysisResult(dmResponse)
	if err != nil {
		t.Fatalf("ParseAnalysisResult() error = %v", err)
	}
	if result.Warnings == nil || len(result.Warnings) != 0 {
		t.Errorf("Warnings = %#v, want empty slice", result.Warnings)
	}
}

func TestParseAnalysisResultScoreBoundaries(t *testing.T) {
	for _, score := range []float64{0, 100} {
		payload := fmt.Sprintf(`{"match_score":%v,"missing_skills":[],"contact_mode":"dm","dm_message":"m"}`, score)
		result, err := ParseAnalysisResult(payload)
		if err != nil {
			t.Errorf("score %v rejected: %v", score, err)
			continue
		}
		if result.MatchScore != score {
			t.Errorf("MatchScore = %v, want %v", result.MatchScore, score)
		}
	}
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"```json\n{}\n```", "{}"},
		{"```\n{}\n```", "{}"},
		{"{}", "{}"},
		{"  {} ", "{}"},
	}
	for _, tt := range tests {
		if got := StripCodeFences(tt.in); got != tt.want {
			t.Errorf("StripCodeFences(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
