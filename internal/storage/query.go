package storage

import (
	"fmt"
	"strings"
	"time"

	"talenthub-api/pkg/models"
)

// builder accumulates WHERE conditions with positional args.
type builder struct {
	conds []string
	args  []any
}

// bind appends an argument and returns its positional placeholder.
func (b *builder) bind(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *builder) where(cond string) {
	b.conds = append(b.conds, cond)
}

func (b *builder) whereClause() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

const candidateColumns = `id, user_id, full_name, email,
	COALESCE(headline, ''), COALESCE(about, ''), COALESCE(summary, ''),
	COALESCE(skills, '{}'), COALESCE(location, ''),
	experience_years, expected_salary_min, expected_salary_max,
	COALESCE(education_level, ''), COALESCE(work_preferences, '{}'),
	COALESCE(resume_url, ''), COALESCE(photo_url, ''),
	created_at, updated_at`

const jobColumns = `id, title, company, COALESCE(location, ''),
	COALESCE(skills_required, '{}'),
	experience_min, experience_max, salary_min, salary_max,
	COALESCE(education_required, ''), active, created_at, updated_at`

// buildCandidateQuery translates recruiter search filters into the data and
// count statements. The semantics are fixed: keyword is an OR of
// case-insensitive substring matches across headline/about/summary, salary
// and experience are overlap tests with open-ended absent sides, freshness
// cuts on updated_at, and pagination is 1-indexed.
func buildCandidateQuery(f models.SearchFilters, now time.Time) (dataSQL, countSQL string, args []any) {
	f = f.Normalized()
	b := &builder{}

	if f.Keyword != "" {
		ph := b.bind("%" + f.Keyword + "%")
		b.where(fmt.Sprintf("(headline ILIKE %s OR about ILIKE %s OR summary ILIKE %s)", ph, ph, ph))
	}
	if f.Location != "" {
		b.where(fmt.Sprintf("location ILIKE %s", b.bind("%"+f.Location+"%")))
	}
	if f.ExperienceMin != nil {
		b.where(fmt.Sprintf("experience_years >= %s", b.bind(*f.ExperienceMin)))
	}
	if f.ExperienceMax != nil {
		b.where(fmt.Sprintf("experience_years <= %s", b.bind(*f.ExperienceMax)))
	}
	// Band overlap: the candidate's expected range must intersect the
	// requested range, open-ended where either side is absent.
	if f.SalaryMin != nil {
		b.where(fmt.Sprintf("(expected_salary_max IS NULL OR expected_salary_max >= %s)", b.bind(*f.SalaryMin)))
	}
	if f.SalaryMax != nil {
		b.where(fmt.Sprintf("(expected_salary_min IS NULL OR expected_salary_min <= %s)", b.bind(*f.SalaryMax)))
	}
	if len(f.EducationLevels) > 0 {
		levels := make([]string, len(f.EducationLevels))
		for i, l := range f.EducationLevels {
			levels[i] = string(l)
		}
		b.where(fmt.Sprintf("education_level = ANY(%s)", b.bind(levels)))
	}
	if len(f.Skills) > 0 {
		b.where(fmt.Sprintf("skills && %s", b.bind(f.Skills)))
	}
	if len(f.WorkPreferences) > 0 {
		b.where(fmt.Sprintf("work_preferences && %s", b.bind(f.WorkPreferences)))
	}
	if cutoff, ok := f.FreshnessCutoff(now); ok {
		b.where(fmt.Sprintf("updated_at >= %s", b.bind(cutoff)))
	}

	where := b.whereClause()
	countSQL = "SELECT COUNT(*) FROM candidates" + where

	orderBy := candidateOrder(f.SortBy)
	limit := b.bind(f.PageSize)
	offset := b.bind((f.Page - 1) * f.PageSize)
	dataSQL = fmt.Sprintf("SELECT %s FROM candidates%s ORDER BY %s LIMIT %s OFFSET %s",
		candidateColumns, where, orderBy, limit, offset)

	return dataSQL, countSQL, b.args
}

// candidateOrder maps a sort mode to an ORDER BY expression. Relevance
// ordering happens in process after scoring, so storage falls back to
// recency for it.
func candidateOrder(sortBy string) string {
	switch sortBy {
	case models.SortExperience:
		return "experience_years DESC NULLS LAST, created_at DESC"
	case models.SortSalaryHigh:
		return "expected_salary_max DESC NULLS LAST, created_at DESC"
	case models.SortSalaryLow:
		return "expected_salary_min ASC NULLS LAST, created_at DESC"
	default:
		return "created_at DESC"
	}
}

// buildJobQuery translates job search filters into the data and count
// statements. Experience is an overlapping-interval test against the job's
// [experience_min, experience_max] band, not exact containment.
func buildJobQuery(f models.SearchFilters, now time.Time) (dataSQL, countSQL string, args []any) {
	f = f.Normalized()
	b := &builder{}

	b.where("active = TRUE")

	if f.Keyword != "" {
		ph := b.bind("%" + f.Keyword + "%")
		b.where(fmt.Sprintf("(title ILIKE %s OR company ILIKE %s OR array_to_string(skills_required, ' ') ILIKE %s)", ph, ph, ph))
	}
	if f.Location != "" {
		b.where(fmt.Sprintf("location ILIKE %s", b.bind("%"+f.Location+"%")))
	}
	if f.ExperienceMax != nil {
		b.where(fmt.Sprintf("(experience_min IS NULL OR experience_min <= %s)", b.bind(*f.ExperienceMax)))
	}
	if f.ExperienceMin != nil {
		b.where(fmt.Sprintf("(experience_max IS NULL OR experience_max >= %s)", b.bind(*f.ExperienceMin)))
	}
	if f.SalaryMin != nil {
		b.where(fmt.Sprintf("(salary_max IS NULL OR salary_max >= %s)", b.bind(*f.SalaryMin)))
	}
	if f.SalaryMax != nil {
		b.where(fmt.Sprintf("(salary_min IS NULL OR salary_min <= %s)", b.bind(*f.SalaryMax)))
	}
	if len(f.EducationLevels) > 0 {
		levels := make([]string, len(f.EducationLevels))
		for i, l := range f.EducationLevels {
			levels[i] = string(l)
		}
		b.where(fmt.Sprintf("education_required = ANY(%s)", b.bind(levels)))
	}
	if len(f.Skills) > 0 {
		b.where(fmt.Sprintf("skills_required && %s", b.bind(f.Skills)))
	}
	if cutoff, ok := f.FreshnessCutoff(now); ok {
		b.where(fmt.Sprintf("created_at >= %s", b.bind(cutoff)))
	}

	where := b.whereClause()
	countSQL = "SELECT COUNT(*) FROM jobs" + where

	orderBy := jobOrder(f.SortBy)
	limit := b.bind(f.PageSize)
	offset := b.bind((f.Page - 1) * f.PageSize)
	dataSQL = fmt.Sprintf("SELECT %s FROM jobs%s ORDER BY %s LIMIT %s OFFSET %s",
		jobColumns, where, orderBy, limit, offset)

	return dataSQL, countSQL, b.args
}

func jobOrder(sortBy string) string {
	switch sortBy {
	case models.SortExperience:
		return "experience_min DESC NULLS LAST, created_at DESC"
	case models.SortSalaryHigh:
		return "salary_max DESC NULLS LAST, created_at DESC"
	case models.SortSalaryLow:
		return "salary_min ASC NULLS LAST, created_at DESC"
	default:
		return "created_at DESC"
	}
}

// TotalPages returns ceil(total / pageSize) for 1-indexed pagination.
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
