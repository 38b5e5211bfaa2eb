package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Scan is a persisted scan "module": the survey the user answered, the job
// text they scanned, and the scoring results. At most one scan per user is
// active at a time; it acts as that user's current profile.
type Scan struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	UserID         uuid.UUID       `json:"user_id" db:"user_id"`
	JobDescription string          `json:"job_description" db:"job_description"`
	SurveyData     json.RawMessage `json:"survey_data" db:"survey_data"`
	ScanResults    json.RawMessage `json:"scan_results" db:"scan_results"` // nil for survey-only scans
	IsActive       bool            `json:"is_active" db:"is_active"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	CompletedAt    *time.Time      `json:"completed_at" db:"completed_at"`
}

// MaxStoredJobDescription caps how much job text a scan row keeps,
// counted in characters.
const MaxStoredJobDescription = 2000

// TruncateJobDescription bounds job text before persistence. The cut counts
// runes, not bytes: slicing bytes could split a multi-byte character and
// Postgres rejects invalid UTF-8 on insert.
func TruncateJobDescription(text string) string {
	if len(text) <= MaxStoredJobDescription {
		return text
	}
	runes := []rune(text)
	if len(runes) <= MaxStoredJobDescription {
		return text
	}
	return string(runes[:MaxStoredJobDescription])
}
