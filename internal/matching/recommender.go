package matching

import (
	"sort"
	"strings"

	"talenthub-api/pkg/models"
)

// Job recommendation weights. Contributions are summed without
// normalization, so the final score is an unbounded non-negative integer.
const (
	jobSkillWeight       = 20
	jobLocationBonus     = 15
	jobExperienceTight   = 10
	jobExperienceLoose   = 5
	jobSalaryUpperBonus  = 10
	jobSalaryLowerBonus  = 5
	jobEducationBonus    = 5
	defaultExperienceMax = 99

	// DefaultRecommendLimit caps a scored recommendation list.
	DefaultRecommendLimit = 20
	// DegradedLimit caps the recency-only list returned without a profile.
	DegradedLimit = 10
)

// RecommendJobs scores the given active jobs against the candidate profile
// and returns them sorted by score descending, ties broken by creation time
// descending, truncated to limit (default 20).
//
// With a nil profile it degrades to a recency-only list of at most
// min(limit, 10) jobs with no scores attached. Inputs are never mutated.
func RecommendJobs(profile *models.CandidateProfile, jobs []models.JobRecord, limit int) []models.ScoredJob {
	if limit <= 0 {
		limit = DefaultRecommendLimit
	}

	if profile == nil {
		return recentJobs(jobs, min(limit, DegradedLimit))
	}

	scored := make([]models.ScoredJob, len(jobs))
	for i := range jobs {
		score := scoreJob(profile, &jobs[i])
		scored[i] = models.ScoredJob{JobRecord: jobs[i], MatchScore: &score}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		si, sj := *scored[i].MatchScore, *scored[j].MatchScore
		if si != sj {
			return si > sj
		}
		return scored[i].CreatedAt.After(scored[j].CreatedAt)
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

// recentJobs returns the newest jobs first with no scoring applied.
func recentJobs(jobs []models.JobRecord, limit int) []models.ScoredJob {
	ordered := make([]models.ScoredJob, len(jobs))
	for i := range jobs {
		ordered[i] = models.ScoredJob{JobRecord: jobs[i]}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})
	if len(ordered) > limit {
		ordered = ordered[:limit]
	}
	return ordered
}

// scoreJob sums the weighted match terms for one job. Missing optional
// fields contribute zero; there are no error conditions.
func scoreJob(p *models.CandidateProfile, job *models.JobRecord) int {
	score := matchingSkillCount(p.Skills, job.SkillsRequired) * jobSkillWeight

	if locationCompatible(p.Location, job.Location) {
		score += jobLocationBonus
	}

	if p.ExperienceYears != nil {
		score += experienceBonus(*p.ExperienceYears, job.ExperienceMin, job.ExperienceMax)
	}

	if p.ExpectedSalaryMin != nil && job.SalaryMax != nil && *job.SalaryMax >= *p.ExpectedSalaryMin {
		score += jobSalaryUpperBonus
	}
	if p.ExpectedSalaryMax != nil && job.SalaryMin != nil && *job.SalaryMin <= *p.ExpectedSalaryMax {
		score += jobSalaryLowerBonus
	}

	if candOrd, ok := p.EducationLevel.Ordinal(); ok {
		if jobOrd, ok := job.EducationRequired.Ordinal(); ok && candOrd >= jobOrd {
			score += jobEducationBonus
		}
	}

	return score
}

// matchingSkillCount counts candidate skills with at least one
// case-insensitive bidirectional substring match among the required skills.
// The bidirectional containment is a deliberate quirk of the ranking: short
// skills can match long ones ("R" matches "React").
func matchingSkillCount(candidate, required []string) int {
	count := 0
	for _, cs := range candidate {
		for _, rs := range required {
			if skillsMatch(cs, rs) {
				count++
				break
			}
		}
	}
	return count
}

func skillsMatch(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la == "" || lb == "" {
		return false
	}
	return strings.Contains(la, lb) || strings.Contains(lb, la)
}

// locationCompatible reports mutual substring containment between the two
// locations, or a "remote" job which matches any candidate location.
func locationCompatible(candidate, job string) bool {
	if candidate == "" || job == "" {
		return false
	}
	lc, lj := strings.ToLower(candidate), strings.ToLower(job)
	return strings.Contains(lj, lc) || strings.Contains(lc, lj) || lj == "remote"
}

// experienceBonus awards the tight-band bonus when years fall inside
// [min, max] (defaults 0 and 99), otherwise the loose bonus inside the
// widened band [min-1, max+2]. The two are mutually exclusive; the widening
// is asymmetric on purpose, over-qualification is tolerated more than
// under-qualification.
func experienceBonus(years int, expMin, expMax *int) int {
	lo, hi := 0, defaultExperienceMax
	if expMin != nil {
		lo = *expMin
	}
	if expMax != nil {
		hi = *expMax
	}

	if years >= lo && years <= hi {
		return jobExperienceTight
	}
	if years >= lo-1 && years <= hi+2 {
		return jobExperienceLoose
	}
	return 0
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
