package models

import "time"

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    time.Duration     `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}

// RecommendJobsResponse carries the scored, sorted job list for a candidate.
type RecommendJobsResponse struct {
	Jobs      []ScoredJob `json:"jobs"`
	Degraded  bool        `json:"degraded,omitempty"`
	RequestID string      `json:"request_id"`
	Timestamp time.Time   `json:"timestamp"`
}

// CandidateSearchResponse carries one page of (optionally relevance-sorted)
// scored candidates.
type CandidateSearchResponse struct {
	Candidates []ScoredCandidate `json:"candidates"`
	TotalCount int               `json:"total_count"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
	RequestID  string            `json:"request_id"`
	Timestamp  time.Time         `json:"timestamp"`
}

// JobSearchResponse carries one page of jobs matching the hard filters.
type JobSearchResponse struct {
	Jobs       []JobRecord `json:"jobs"`
	TotalCount int         `json:"total_count"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
	RequestID  string      `json:"request_id"`
	Timestamp  time.Time   `json:"timestamp"`
}

// OutreachResponse reports how many sends were accepted for delivery.
type OutreachResponse struct {
	Queued    int       `json:"queued"`
	Skipped   int       `json:"skipped"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}

// OTPResponse acknowledges that a code was issued and emailed.
type OTPResponse struct {
	Sent      bool      `json:"sent"`
	ExpiresIn string    `json:"expires_in,omitempty"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}

// OTPVerifyResponse reports the outcome of a verification attempt.
type OTPVerifyResponse struct {
	Verified     bool      `json:"verified"`
	Expired      bool      `json:"expired,omitempty"`
	AttemptsLeft int       `json:"attempts_left"`
	RequestID    string    `json:"request_id"`
	Timestamp    time.Time `json:"timestamp"`
}

// ExtractProfileResponse carries the AI-extracted profile fields.
type ExtractProfileResponse struct {
	Profile   *ExtractedProfile `json:"profile"`
	RequestID string            `json:"request_id"`
	Timestamp time.Time         `json:"timestamp"`
}

// ExtractedProfile is the structured result of resume text extraction.
type ExtractedProfile struct {
	Skills          []string `json:"skills"`
	Summary         string   `json:"summary"`
	ExperienceYears *int     `json:"experience_years,omitempty"`
	EducationLevel  string   `json:"education_level,omitempty"`
}
