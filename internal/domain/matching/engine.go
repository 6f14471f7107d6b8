package matching

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

const (
	skillWeight     = 40.0
	locationWeight  = 30.0
	educationWeight = 20.0
	recencyWeight   = 10.0

	recencyWindow = 7 * 24 * time.Hour

	// EducationAny on a candidate accepts every profile level.
	EducationAny = "Any"
)

// Profile is the part of a user profile the scorer reads.
type Profile struct {
	Skills         []string
	City           string
	EducationLevel string
}

// Candidate is the scorer's view of a job posting or a course.
type Candidate struct {
	Skills    []string
	City      string
	IsRemote  bool
	Education string
	CreatedAt time.Time
}

type Result struct {
	MatchScore         int
	MatchingSkillCount int
	Reasons            []string
}

// Ranked pairs an item with its score.
type Ranked[T any] struct {
	Item T
	Result
}

// Score computes the additive match score of a candidate for a profile at now.
func Score(p Profile, c Candidate, now time.Time) Result {
	profileSkills := normalizeSkills(p.Skills)
	candidateSkills := normalizeSkills(c.Skills)

	matching := 0
	for _, cs := range candidateSkills {
		if matchesAny(cs, profileSkills) {
			matching++
		}
	}

	total := 0.0
	if len(candidateSkills) > 0 {
		total += skillWeight * float64(matching) / float64(len(candidateSkills))
	}

	city := strings.TrimSpace(c.City)
	profileCity := strings.TrimSpace(p.City)
	if c.IsRemote || (city != "" && profileCity != "" && strings.EqualFold(city, profileCity)) {
		total += locationWeight
	}

	edu := strings.TrimSpace(c.Education)
	profileEdu := strings.TrimSpace(p.EducationLevel)
	if strings.EqualFold(edu, EducationAny) || (edu != "" && strings.EqualFold(edu, profileEdu)) {
		total += educationWeight
	}

	if !c.CreatedAt.IsZero() && now.Sub(c.CreatedAt) <= recencyWindow {
		total += recencyWeight
	}

	return Result{
		MatchScore:         clampInt(int(math.Round(total)), 0, 100),
		MatchingSkillCount: matching,
		Reasons:            reasons(matching, city, c.IsRemote, edu),
	}
}

// Rank scores every item and orders them by descending score. Items with
// equal scores keep their input order. The input slice is not modified.
func Rank[T any](p Profile, items []T, view func(T) Candidate, now time.Time) []Ranked[T] {
	out := make([]Ranked[T], 0, len(items))
	for _, it := range items {
		out = append(out, Ranked[T]{Item: it, Result: Score(p, view(it), now)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchScore > out[j].MatchScore
	})
	return out
}

func normalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

// matchesAny treats a skill as matching when either string contains the other.
func matchesAny(skill string, profileSkills []string) bool {
	for _, ps := range profileSkills {
		if strings.Contains(ps, skill) || strings.Contains(skill, ps) {
			return true
		}
	}
	return false
}

func reasons(matching int, city string, remote bool, edu string) []string {
	out := []string{fmt.Sprintf("%d matching skills", matching)}
	switch {
	case remote:
		out = append(out, "Remote work available")
	case city != "":
		out = append(out, "Located in "+city)
	}
	if edu != "" {
		out = append(out, fmt.Sprintf("Suitable for %s level", edu))
	}
	return out
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
