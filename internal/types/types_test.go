package types

import (
	"encoding/json"
	"reflect"
	"sort"
	"testing"
)

func keysOf(t *testing.T, data []byte) []string {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("invalid JSON produced: %v", err)
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func TestAnalysisResultMarshalShapes(t *testing.T) {
	email := &EmailDraft{
		DestinationEmail: "recruiter@example.com",
		Subject:          "Application for Backend Engineer",
		Body:             "Hello,",
	}
	dm := &DMDraft{Message: "Hi, I came across your posting."}

	tests := []struct {
		name     string
		result   AnalysisResult
		wantKeys []string
	}{
		{
			name: "email mode",
			result: AnalysisResult{
				MatchScore:    82,
				MissingSkills: []string{"Kubernetes"},
				ContactMode:   ContactModeEmail,
				Email:         email,
			},
			wantKeys: []string{
				"contact_mode", "destination_email", "email_body",
				"email_subject", "match_score", "missing_skills", "warnings",
			},
		},
		{
			name: "dm mode",
			result: AnalysisResult{
				MatchScore:    55.5,
				MissingSkills: []string{},
				ContactMode:   ContactModeDM,
				DM:            dm,
			},
			wantKeys: []string{
				"contact_mode", "dm_message", "match_score",
				"missing_skills", "warnings",
			},
		},
		{
			name: "both mode",
			result: AnalysisResult{
				MatchScore:    90,
				MissingSkills: []string{"Go", "gRPC"},
				ContactMode:   ContactModeBoth,
				Email:         email,
				DM:            dm,
				Warnings:      []string{"Location mismatch"},
			},
			wantKeys: []string{
				"contact_mode", "destination_email", "dm_message",
				"email_body", "email_subject", "match_score",
				"missing_skills", "warnings",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.result)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			got := keysOf(t, data)
			if !reflect.DeepEqual(got, tt.wantKeys) {
				t.Errorf("wire keys = %v, want %v", got, tt.wantKeys)
			}
		})
	}
}

func TestAnalysisResultMarshalRejectsInconsistentUnion(t *testing.T) {
	tests := []struct {
		name   string
		result AnalysisResult
	}{
		{"email mode without draft", AnalysisResult{MatchScore: 10, ContactMode: ContactModeEmail}},
		{"dm mode without draft", AnalysisResult{MatchScore: 10, ContactMode: ContactModeDM}},
		{"both mode missing dm", AnalysisResult{MatchScore: 10, ContactMode: ContactModeBoth, Email: &EmailDraft{}}},
		{"unknown mode", AnalysisResult{MatchScore: 10, ContactMode: "phone"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := json.Marshal(tt.result); err == nil {
				t.Error("Marshal() expected error, got nil")
			}
		})
	}
}

func TestAnalysisResultRoundTrip(t *testing.T) {
	original := AnalysisResult{
		MatchScore:    73,
		MissingSkills: []string{"Terraform"},
		ContactMode:   ContactModeBoth,
		Email: &EmailDraft{
			DestinationEmail: "jobs@example.com",
			Subject:          "Platform Engineer role",
			Body:             "Dear team,",
		},
		DM:       &DMDraft{Message: "Hello!"},
		Warnings: []string{},
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded AnalysisResult
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !reflect.DeepEqual(decoded, original) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", decoded, original)
	}
}

func TestAnalysisResultUnmarshalRejectsBadPayloads(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"missing match_score", `{"missing_skills":[],"contact_mode":"dm","dm_message":"hi"}`},
		{"missing missing_skills", `{"match_score":50,"contact_mode":"dm","dm_message":"hi"}`},
		{"bad contact_mode", `{"match_score":50,"missing_skills":[],"contact_mode":"fax"}`},
		{"email mode missing body", `{"match_score":50,"missing_skills":[],"contact_mode":"email","destination_email":"a@b.c","email_subject":"s"}`},
		{"both mode missing dm_message", `{"match_score":50,"missing_skills":[],"contact_mode":"both","destination_email":"a@b.c","email_subject":"s","email_body":"b"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r AnalysisResult
			if err := json.Unmarshal([]byte(tt.payload), &r); err == nil {
				t.Error("Unmarshal() expected error, got nil")
			}
		})
	}
}

func TestAnalysisResultWarningsDefaultEmpty(t *testing.T) {
	payload := `{"match_score":50,"missing_skills":[],"contact_mode":"dm","dm_message":"hi"}`
	var r AnalysisResult
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if r.Warnings == nil || len(r.Warnings) != 0 {
		t.Errorf("Warnings = %#v, want empty slice", r.Warnings)
	}
}
