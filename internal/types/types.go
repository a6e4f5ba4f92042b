package types

import (
	"encoding/json"
	"fmt"
)

// AnalysisInput represents the input for matching a resume against a job description
type AnalysisInput struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
}

// ContactMode selects which outreach channel the analysis recommends
type ContactMode string

const (
	ContactModeEmail ContactMode = "email"
	ContactModeDM    ContactMode = "dm"
	ContactModeBoth  ContactMode = "both"
)

// Valid reports whether the mode is one of the three known values
func (m ContactMode) Valid() bool {
	switch m {
	case ContactModeEmail, ContactModeDM, ContactModeBoth:
		return true
	}
	return false
}

// EmailDraft is the outreach email suggested by an analysis
type EmailDraft struct {
	DestinationEmail string `json:"destination_email"`
	Subject          string `json:"email_subject"`
	Body             string `json:"email_body"`
}

// DMDraft is the direct-message text suggested by an analysis
type DMDraft struct {
	Message string `json:"dm_message"`
}

// AnalysisResult is the outcome of one resume/JD match. It is a tagged
// union on ContactMode: Email is set for "email" and "both", DM is set
// for "dm" and "both". The JSON form is flat; each mode serializes to
// exactly the field set the wire contract defines for it.
type AnalysisResult struct {
	MatchScore    float64
	MissingSkills []string
	ContactMode   ContactMode
	Email         *EmailDraft
	DM            *DMDraft
	Warnings      []string
}

// MarshalJSON emits the flat wire shape for the result's contact mode
func (r AnalysisResult) MarshalJSON() ([]byte, error) {
	skills := r.MissingSkills
	if skills == nil {
		skills = []string{}
	}
	warnings := r.Warnings
	if warnings == nil {
		warnings = []string{}
	}

	out := map[string]any{
		"match_score":    r.MatchScore,
		"missing_skills": skills,
		"contact_mode":   r.ContactMode,
		"warnings":       warnings,
	}

	switch r.ContactMode {
	case ContactModeEmail:
		if r.Email == nil {
			return nil, fmt.Errorf("contact_mode %q requires an email draft", r.ContactMode)
		}
		addEmailFields(out, r.Email)
	case ContactModeDM:
		if r.DM == nil {
			return nil, fmt.Errorf("contact_mode %q requires a dm draft", r.ContactMode)
		}
		out["dm_message"] = r.DM.Message
	case ContactModeBoth:
		if r.Email == nil || r.DM == nil {
			return nil, fmt.Errorf("contact_mode %q requires both email and dm drafts", r.ContactMode)
		}
		addEmailFields(out, r.Email)
		out["dm_message"] = r.DM.Message
	default:
		return nil, fmt.Errorf("unknown contact_mode: %q", r.ContactMode)
	}

	return json.Marshal(out)
}

func addEmailFields(out map[string]any, e *EmailDraft) {
	out["destination_email"] = e.DestinationEmail
	out["email_subject"] = e.Subject
	out["email_body"] = e.Body
}

type wireAnalysisResult struct {
	MatchScore       *float64    `json:"match_score"`
	MissingSkills    []string    `json:"missing_skills"`
	ContactMode      ContactMode `json:"contact_mode"`
	DestinationEmail *string     `json:"destination_email"`
	EmailSubject     *string     `json:"email_subject"`
	EmailBody        *string     `json:"email_body"`
	DMMessage        *string     `json:"dm_message"`
	Warnings         []string    `json:"warnings"`
}

// UnmarshalJSON accepts the flat wire shape and rebuilds the union,
// rejecting payloads whose field set does not match the contact mode
func (r *AnalysisResult) UnmarshalJSON(data []byte) error {
	var w wireAnalysisResult
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.MatchScore == nil {
		return fmt.Errorf("missing required field: match_score")
	}
	if w.MissingSkills == nil {
		return fmt.Errorf("missing required field: missing_skills")
	}
	if !w.ContactMode.Valid() {
		return fmt.Errorf("invalid contact_mode: %q", w.ContactMode)
	}

	result := AnalysisResult{
		MatchScore:    *w.MatchScore,
		MissingSkills: w.MissingSkills,
		ContactMode:   w.ContactMode,
		Warnings:      w.Warnings,
	}
	if result.Warnings == nil {
		result.Warnings = []string{}
	}

	needsEmail := w.ContactMode == ContactModeEmail || w.ContactMode == ContactModeBoth
	needsDM := w.ContactMode == ContactModeDM || w.ContactMode == ContactModeBoth

	if needsEmail {
		if w.DestinationEmail == nil || w.EmailSubject == nil || w.EmailBody == nil {
			return fmt.Errorf("contact_mode %q requires destination_email, email_subject and email_body", w.ContactMode)
		}
		result.Email = &EmailDraft{
			DestinationEmail: *w.DestinationEmail,
			Subject:          *w.EmailSubject,
			Body:             *w.EmailBody,
		}
	}
	if needsDM {
		if w.DMMessage == nil {
			return fmt.Errorf("contact_mode %q requires dm_message", w.ContactMode)
		}
		result.DM = &DMDraft{Message: *w.DMMessage}
	}

	*r = result
	return nil
}

// ValidationVerdict is the outcome of the JD plausibility filter.
// Reason is empty exactly when IsValid is true.
type ValidationVerdict struct {
	IsValid bool   `json:"is_valid"`
	Reason  string `json:"reason,omitempty"`
}

// ValidVerdict returns a passing verdict
func ValidVerdict() ValidationVerdict {
	return ValidationVerdict{IsValid: true}
}

// InvalidVerdict returns a failing verdict with a user-facing reason
func InvalidVerdict(reason string) ValidationVerdict {
	return ValidationVerdict{IsValid: false, Reason: reason}
}
