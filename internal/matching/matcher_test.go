package matching

import (
	"reflect"
	"testing"
	"time"

	"talenthub-api/pkg/models"
)

func candidate(id string) models.CandidateRecord {
	return models.CandidateRecord{ID: id, CreatedAt: time.Now(), UpdatedAt: time.Now()}
}

func TestScoreCandidatesAllFiltersAbsent(t *testing.T) {
	page := []models.CandidateRecord{candidate("c1")}
	got := ScoreCandidates(models.SearchFilters{}, page)
	if got[0].MatchScore != 0 {
		t.Errorf("score = %d, want 0 with no filters and empty profile", got[0].MatchScore)
	}
}

func TestScoreCandidatesSkillsRatio(t *testing.T) {
	filters := models.SearchFilters{Skills: []string{"React", "Node", "GraphQL", "Docker"}}
	c := candidate("c1")
	c.Skills = []string{"ReactJS", "NodeJS"}

	got := ScoreCandidates(filters, []models.CandidateRecord{c})
	// 2 of the candidate's skills match a filter skill: (2/4) * 50 = 25.
	if got[0].MatchScore != 25 {
		t.Errorf("score = %d, want 25", got[0].MatchScore)
	}
}

func TestScoreCandidatesSkillsEmptyFilterContributesZero(t *testing.T) {
	c := candidate("c1")
	c.Skills = []string{"Go"}
	got := ScoreCandidates(models.SearchFilters{}, []models.CandidateRecord{c})
	if got[0].MatchScore != 0 {
		t.Errorf("score = %d, want 0", got[0].MatchScore)
	}
}

func TestScoreCandidatesLocationContainment(t *testing.T) {
	filters := models.SearchFilters{Location: "bengaluru"}
	c := candidate("c1")
	c.Location = "Bengaluru, Karnataka"

	got := ScoreCandidates(filters, []models.CandidateRecord{c})
	if got[0].MatchScore != 20 {
		t.Errorf("score = %d, want 20", got[0].MatchScore)
	}

	// Containment is one-directional here: candidate location must contain
	// the filter location.
	filters.Location = "Bengaluru, Karnataka, India"
	c.Location = "Bengaluru"
	got = ScoreCandidates(filters, []models.CandidateRecord{c})
	if got[0].MatchScore != 0 {
		t.Errorf("score = %d, want 0 when candidate location does not contain filter", got[0].MatchScore)
	}
}

func TestScoreCandidatesExperienceThreshold(t *testing.T) {
	filters := models.SearchFilters{ExperienceMin: intp(3)}

	meets := candidate("c1")
	meets.ExperienceYears = intp(3)
	below := candidate("c2")
	below.ExperienceYears = intp(2)
	absent := candidate("c3")

	got := ScoreCandidates(filters, []models.CandidateRecord{meets, below, absent})
	scores := map[string]int{}
	for _, sc := range got {
		scores[sc.ID] = sc.MatchScore
	}
	if scores["c1"] != 15 {
		t.Errorf("c1 score = %d, want 15", scores["c1"])
	}
	if scores["c2"] != 0 || scores["c3"] != 0 {
		t.Errorf("c2/c3 scores = %d/%d, want 0/0", scores["c2"], scores["c3"])
	}
}

func TestScoreCandidatesCompletenessBonuses(t *testing.T) {
	c := candidate("c1")
	c.ResumeURL = "https://cdn.example.com/r.pdf"
	c.Summary = "Ten years of backend work."
	c.PhotoURL = "https://cdn.example.com/p.jpg"

	got := ScoreCandidates(models.SearchFilters{}, []models.CandidateRecord{c})
	if got[0].MatchScore != 15 {
		t.Errorf("score = %d, want 15 (5 per completeness signal)", got[0].MatchScore)
	}
}

func TestScoreCandidatesClampedToHundred(t *testing.T) {
	filters := models.SearchFilters{
		Skills:        []string{"Go"},
		Location:      "Berlin",
		ExperienceMin: intp(1),
	}
	c := candidate("c1")
	c.Skills = []string{"Go", "Golang", "Go tooling"}
	c.Location = "Berlin"
	c.ExperienceYears = intp(10)
	c.ResumeURL = "r"
	c.Summary = "s"
	c.PhotoURL = "p"

	got := ScoreCandidates(filters, []models.CandidateRecord{c})
	// Raw sum: (3/1)*50 + 20 + 15 + 15 = 200, clamped to 100.
	if got[0].MatchScore != 100 {
		t.Errorf("score = %d, want clamp at 100", got[0].MatchScore)
	}
}

func TestScoreCandidatesScoreAlwaysInRange(t *testing.T) {
	filters := models.SearchFilters{Skills: []string{"a", "b", "c"}, Location: "x", ExperienceMin: intp(0)}
	page := []models.CandidateRecord{candidate("c1"), candidate("c2")}
	page[0].Skills = []string{"abc", "bcd", "cde", "xyz"}
	page[0].Location = "xxxxx"
	page[0].ExperienceYears = intp(50)
	page[0].ResumeURL = "r"

	for _, sc := range ScoreCandidates(filters, page) {
		if sc.MatchScore < 0 || sc.MatchScore > 100 {
			t.Errorf("score %d out of [0,100]", sc.MatchScore)
		}
	}
}

func TestScoreCandidatesRelevanceSortIsStable(t *testing.T) {
	filters := models.SearchFilters{SortBy: models.SortRelevance, Skills: []string{"Go"}}

	high := candidate("high")
	high.Skills = []string{"Go"}
	equalA := candidate("equal-a")
	equalB := candidate("equal-b")

	got := ScoreCandidates(filters, []models.CandidateRecord{equalA, high, equalB})
	order := []string{got[0].ID, got[1].ID, got[2].ID}
	want := []string{"high", "equal-a", "equal-b"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v (stable among equals)", order, want)
	}
}

func TestScoreCandidatesNonRelevanceSortPreservesOrder(t *testing.T) {
	filters := models.SearchFilters{SortBy: models.SortExperience, Skills: []string{"Go"}}

	low := candidate("low")
	high := candidate("high")
	high.Skills = []string{"Go"}

	got := ScoreCandidates(filters, []models.CandidateRecord{low, high})
	if got[0].ID != "low" || got[1].ID != "high" {
		t.Errorf("order = [%s %s], want incoming order preserved", got[0].ID, got[1].ID)
	}
}

func TestScoreCandidatesDeterministicAndNonMutating(t *testing.T) {
	filters := models.SearchFilters{Skills: []string{"Go", "SQL"}, Location: "Pune"}
	page := []models.CandidateRecord{candidate("c1"), candidate("c2")}
	page[0].Skills = []string{"Golang"}
	page[1].Location = "Pune, India"
	snapshot := make([]models.CandidateRecord, len(page))
	copy(snapshot, page)

	first := ScoreCandidates(filters, page)
	second := ScoreCandidates(filters, page)

	if !reflect.DeepEqual(first, second) {
		t.Error("two runs over identical inputs produced different output")
	}
	if !reflect.DeepEqual(page, snapshot) {
		t.Error("input page was mutated")
	}
}
