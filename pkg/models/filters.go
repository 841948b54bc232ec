package models

import "time"

// Sort modes accepted by candidate and job search.
const (
	SortRelevance  = "relevance"
	SortExperience = "experience"
	SortSalaryHigh = "salary_high"
	SortSalaryLow  = "salary_low"
	SortRecent     = "recent"
)

// Freshness windows accepted by search filters.
const (
	Freshness24h = "24h"
	Freshness7d  = "7d"
	Freshness30d = "30d"
	Freshness90d = "90d"
)

const (
	// DefaultPageSize is used when the caller does not specify one.
	DefaultPageSize = 20
	// MaxPageSize is the hard upper bound for a single page.
	MaxPageSize = 100
)

// SearchFilters are the recruiter- or candidate-specified hard filters.
// All fields are optional; absent fields do not constrain the query.
type SearchFilters struct {
	Keyword         string           `json:"keyword,omitempty"`
	Location        string           `json:"location,omitempty"`
	ExperienceMin   *int             `json:"experience_min,omitempty" validate:"omitempty,min=0"`
	ExperienceMax   *int             `json:"experience_max,omitempty" validate:"omitempty,min=0"`
	SalaryMin       *int             `json:"salary_min,omitempty" validate:"omitempty,min=0"`
	SalaryMax       *int             `json:"salary_max,omitempty" validate:"omitempty,min=0"`
	EducationLevels []EducationLevel `json:"education_levels,omitempty" validate:"omitempty,dive,education_level"`
	Skills          []string         `json:"skills,omitempty"`
	WorkPreferences []string         `json:"work_preferences,omitempty"`
	Freshness       string           `json:"freshness,omitempty" validate:"omitempty,freshness"`
	SortBy          string           `json:"sort_by,omitempty" validate:"omitempty,sort_mode"`
	Page            int              `json:"page,omitempty" validate:"omitempty,min=1"`
	PageSize        int              `json:"page_size,omitempty" validate:"omitempty,min=1,max=100"`
}

// Normalized returns a copy with pagination clamped to valid bounds.
// Pages are 1-indexed; page size is bounded to [1, MaxPageSize].
func (f SearchFilters) Normalized() SearchFilters {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
	return f
}

// FreshnessCutoff resolves the filter's freshness window to an absolute
// cutoff timestamp. ok is false when no (or an unknown) window is set.
func (f SearchFilters) FreshnessCutoff(now time.Time) (time.Time, bool) {
	switch f.Freshness {
	case Freshness24h:
		return now.Add(-24 * time.Hour), true
	case Freshness7d:
		return now.AddDate(0, 0, -7), true
	case Freshness30d:
		return now.AddDate(0, 0, -30), true
	case Freshness90d:
		return now.AddDate(0, 0, -90), true
	}
	return time.Time{}, false
}
