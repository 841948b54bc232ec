package matching

import (
	"math"
	"sort"
	"strings"

	"talenthub-api/pkg/models"
)

// Candidate match weights. The sum is clamped to [0, 100] and rounded, so
// recruiter-facing scores always read as a percentage.
const (
	candSkillsWeight     = 50.0
	candLocationBonus    = 20.0
	candExperienceBonus  = 15.0
	candCompletenessStep = 5.0
	maxCandidateScore    = 100.0
)

// ScoreCandidates annotates one storage page of candidates with a 0-100
// match score against the recruiter's filters. The hard filters were already
// applied by the storage query and are not re-checked here.
//
// When the sort mode is relevance (or unset) the page is re-sorted by score
// descending with a stable sort, so equal scores keep their storage order.
// Any other sort mode preserves the incoming order untouched.
func ScoreCandidates(filters models.SearchFilters, page []models.CandidateRecord) []models.ScoredCandidate {
	scored := make([]models.ScoredCandidate, len(page))
	for i := range page {
		scored[i] = models.ScoredCandidate{
			CandidateRecord: page[i],
			MatchScore:      scoreCandidate(filters, &page[i]),
		}
	}

	if filters.SortBy == "" || filters.SortBy == models.SortRelevance {
		sort.SliceStable(scored, func(i, j int) bool {
			return scored[i].MatchScore > scored[j].MatchScore
		})
	}
	return scored
}

// scoreCandidate sums the weighted terms and clamps to [0, 100]. The skills
// term is real-valued until the final round.
func scoreCandidate(filters models.SearchFilters, c *models.CandidateRecord) int {
	sum := 0.0

	if len(filters.Skills) > 0 && len(c.Skills) > 0 {
		matched := matchingSkillCount(c.Skills, filters.Skills)
		sum += float64(matched) / float64(len(filters.Skills)) * candSkillsWeight
	}

	if filters.Location != "" && c.Location != "" && containsFold(c.Location, filters.Location) {
		sum += candLocationBonus
	}

	if filters.ExperienceMin != nil && c.ExperienceYears != nil && *c.ExperienceYears >= *filters.ExperienceMin {
		sum += candExperienceBonus
	}

	if c.HasResume() {
		sum += candCompletenessStep
	}
	if c.HasSummary() {
		sum += candCompletenessStep
	}
	if c.HasPhoto() {
		sum += candCompletenessStep
	}

	return int(math.Round(math.Min(maxCandidateScore, sum)))
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
