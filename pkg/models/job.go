package models

import "time"

// JobRecord represents an active job posting as stored for matching.
// Experience and salary bounds are optional; an absent ExperienceMin is
// treated as 0 and an absent ExperienceMax as effectively unbounded.
type JobRecord struct {
	ID                string         `json:"id"`
	Title             string         `json:"title"`
	Company           string         `json:"company"`
	Location          string         `json:"location"`
	SkillsRequired    []string       `json:"skills_required"`
	ExperienceMin     *int           `json:"experience_min,omitempty"`
	ExperienceMax     *int           `json:"experience_max,omitempty"`
	SalaryMin         *int           `json:"salary_min,omitempty"`
	SalaryMax         *int           `json:"salary_max,omitempty"`
	EducationRequired EducationLevel `json:"education_required,omitempty"`
	Active            bool           `json:"active"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// ScoredJob is a job record annotated with its recommendation score.
// MatchScore is nil in degraded mode (no candidate profile available), where
// jobs are returned by recency only.
type ScoredJob struct {
	JobRecord
	MatchScore *int `json:"match_score,omitempty"`
}
