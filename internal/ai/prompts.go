package ai

// SystemPrompts contains all system-level instructions for AI interactions
type SystemPrompts struct {
	AnalyzeMatch string
	ClassifyJD   string
}

// UserPrompts contains user-level prompts with placeholders for dynamic content
type UserPrompts struct {
	AnalyzeMatch string
}

// DefaultSystemPrompts provides the default system instructions
var DefaultSystemPrompts = SystemPrompts{
	AnalyzeMatch: `You are a helpful assistant that returns only valid JSON. Never include markdown code blocks or any text outside the JSON object.`,

	ClassifyJD: `You are a classifier. Answer only 'yes' or 'no'.`,
}

// DefaultUserPrompts provides the default user prompt templates
var DefaultUserPrompts = UserPrompts{
	AnalyzeMatch: `Analyze the following resume against the job description.

Resume:
%s

Job Description:
%s

IMPORTANT: Determine the contact method from the job description:
- EMAIL: Use if JD explicitly mentions an email address OR phrases like "email your resume to", "send your CV to", "apply via email"
- DM: Use if JD mentions "DM", "message", "reach out", "comment", "connect on LinkedIn", OR if it's a social media post without an email address
- BOTH: Use if JD mentions BOTH an email address AND DM/message options (e.g., "email us at X or DM us")

Return ONLY a valid JSON object with no additional text, comments, or markdown formatting.

IF contact_mode is "email", use this structure:
{
  "match_score": <number between 0 and 100>,
  "missing_skills": [<array of skill strings>],
  "contact_mode": "email",
  "destination_email": "<extracted email address>",
  "email_subject": "<subject line string>",
  "email_body": "<email body text>",
  "warnings": [<optional array of warning strings>]
}

IF contact_mode is "dm", use this structure:
{
  "match_score": <number between 0 and 100>,
  "missing_skills": [<array of skill strings>],
  "contact_mode": "dm",
  "dm_message": "<short professional DM message, 2-4 lines max>",
  "warnings": [<optional array of warning strings>]
}

IF contact_mode is "both", use this structure:
{
  "match_score": <number between 0 and 100>,
  "missing_skills": [<array of skill strings>],
  "contact_mode": "both",
  "destination_email": "<extracted email address>",
  "email_subject": "<subject line string>",
  "email_body": "<email body text>",
  "dm_message": "<short professional DM message, 2-4 lines max>",
  "warnings": [<optional array of warning strings>]
}

Rules:
- match_score: Calculate based on skill overlap between resume and JD (0-100)
- missing_skills: List skills mentioned in JD but not found in resume
- contact_mode: MUST be "email", "dm", or "both" based on JD content
- For email mode: destination_email must be an actual email address found in JD (do NOT guess or use "Not specified")
- For email mode: Generate professional email_subject and email_body
- For dm mode: Generate a short, direct, polite DM message (2-4 lines) that mentions the role, key skill fit, and ends with a call to action
- warnings: OPTIONAL array of warning strings. Add warnings if:
  * Location mismatch: Job location (city/region) is mentioned in JD AND candidate location is found in resume AND they are different AND JD is NOT explicitly marked as "Remote" or "Work from home"
    - Warning format: "Job location is [JD location], while your resume location is [resume location]." or "This role appears to be location-specific."
  * Seniority mismatch: JD requires SENIOR level (detect indicators: "Senior", "5+ years", "7+ years", "8+ years", "Lead", "Staff", "Principal", "Senior Engineer", "Senior Developer", etc.) AND resume reflects junior-mid level (based on years of experience, role titles like "Junior", "Associate", "Entry-level", or less than 5 years total experience)
    - Warning format: "This role is marked as Senior (requires [X] years experience), while your resume reflects a junior-mid level profile." or similar factual, neutral statement
    - Do NOT add this warning if resume shows senior-level experience or if JD is not clearly senior-level
  * If no mismatches, warnings array can be empty or omitted

Return ONLY the JSON object, nothing else.`,
}
