package models

import (
	"strings"
	"time"
)

// EducationLevel is an ordered ladder of education attainment. "other" sits
// outside the ladder and never participates in ordinal comparison.
type EducationLevel string

const (
	EducationHighSchool EducationLevel = "high_school"
	EducationAssociate  EducationLevel = "associate"
	EducationBachelor   EducationLevel = "bachelor"
	EducationMaster     EducationLevel = "master"
	EducationDoctorate  EducationLevel = "doctorate"
	EducationOther      EducationLevel = "other"
)

var educationOrdinals = map[EducationLevel]int{
	EducationHighSchool: 0,
	EducationAssociate:  1,
	EducationBachelor:   2,
	EducationMaster:     3,
	EducationDoctorate:  4,
}

// Ordinal returns the position of the level on the ladder. "other", empty and
// unrecognized values are incomparable and report ok=false so callers skip
// the comparison instead of ranking them as lowest.
func (e EducationLevel) Ordinal() (int, bool) {
	ord, ok := educationOrdinals[e]
	return ord, ok
}

// EducationLevels lists the accepted values, including the unordered "other".
func EducationLevels() []EducationLevel {
	return []EducationLevel{
		EducationHighSchool,
		EducationAssociate,
		EducationBachelor,
		EducationMaster,
		EducationDoctorate,
		EducationOther,
	}
}

// CandidateProfile is the scoring-relevant slice of a candidate's profile.
// Optional fields are pointers (or empty strings) and contribute nothing
// when absent.
type CandidateProfile struct {
	UserID            string         `json:"user_id"`
	Email             string         `json:"email,omitempty"`
	Skills            []string       `json:"skills"`
	Location          string         `json:"location,omitempty"`
	ExperienceYears   *int           `json:"experience_years,omitempty"`
	ExpectedSalaryMin *int           `json:"expected_salary_min,omitempty"`
	ExpectedSalaryMax *int           `json:"expected_salary_max,omitempty"`
	EducationLevel    EducationLevel `json:"education_level,omitempty"`
}

// CandidateRecord is a candidate row as fetched from storage for recruiter
// search. The storage layer applies the hard filters; scoring happens on top
// of these records in memory.
type CandidateRecord struct {
	ID                string         `json:"id"`
	UserID            string         `json:"user_id"`
	FullName          string         `json:"full_name"`
	Email             string         `json:"email"`
	Headline          string         `json:"headline,omitempty"`
	About             string         `json:"about,omitempty"`
	Summary           string         `json:"summary,omitempty"`
	Skills            []string       `json:"skills"`
	Location          string         `json:"location,omitempty"`
	ExperienceYears   *int           `json:"experience_years,omitempty"`
	ExpectedSalaryMin *int           `json:"expected_salary_min,omitempty"`
	ExpectedSalaryMax *int           `json:"expected_salary_max,omitempty"`
	EducationLevel    EducationLevel `json:"education_level,omitempty"`
	WorkPreferences   []string       `json:"work_preferences,omitempty"`
	ResumeURL         string         `json:"resume_url,omitempty"`
	PhotoURL          string         `json:"photo_url,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// HasResume reports whether the candidate uploaded a resume.
func (c *CandidateRecord) HasResume() bool {
	return strings.TrimSpace(c.ResumeURL) != ""
}

// HasSummary reports whether the candidate filled in a profile summary.
func (c *CandidateRecord) HasSummary() bool {
	return strings.TrimSpace(c.Summary) != ""
}

// HasPhoto reports whether the candidate uploaded a profile photo.
func (c *CandidateRecord) HasPhoto() bool {
	return strings.TrimSpace(c.PhotoURL) != ""
}

// ScoredCandidate is a candidate record annotated with a 0-100 match score.
type ScoredCandidate struct {
	CandidateRecord
	MatchScore int `json:"match_score"`
}
