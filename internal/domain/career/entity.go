package career

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

var PersonalityTypes = []string{"Analyst", "Diplomat", "Sentinel", "Explorer"}

type SalaryRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// Suggestion is one recommended career path.
type Suggestion struct {
	Title           string      `json:"title"`
	MatchPercentage int         `json:"matchPercentage"`
	Description     string      `json:"description"`
	RequiredSkills  []string    `json:"requiredSkills"`
	SalaryRange     SalaryRange `json:"salaryRange"`
	GrowthProspects string      `json:"growthProspects"`
	Reasons         []string    `json:"reasons"`
	NextSteps       []string    `json:"nextSteps"`
}

// Analysis is the structured outcome of a career assessment.
type Analysis struct {
	PersonalityType string             `json:"personalityType"`
	Traits          map[string]float64 `json:"traits,omitempty"`
	Strengths       []string           `json:"strengths,omitempty"`
	Improvements    []string           `json:"improvements,omitempty"`
	Careers         []Suggestion       `json:"careers"`
}

type Goals struct {
	ShortTerm         []string `json:"shortTerm"`
	LongTerm          []string `json:"longTerm"`
	PreferredSectors  []string `json:"preferredSectors,omitempty"`
	SalaryExpectation string   `json:"salaryExpectation,omitempty"`
}

type CompletionStatus struct {
	Personality       bool `json:"personalityAssessment"`
	Skills            bool `json:"skillsAssessment"`
	Interests         bool `json:"interestsAssessment"`
	OverallCompletion int  `json:"overallCompletion"`
}

// Profile is the persisted assessment state of one user.
type Profile struct {
	UserID               uuid.UUID
	PersonalityResponses json.RawMessage
	PersonalityType      string
	Traits               map[string]float64
	SkillsAssessment     json.RawMessage
	Interests            []string
	Goals                Goals
	Careers              []Suggestion
	GeneratedAt          time.Time
	Completion           CompletionStatus
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func IsPersonalityType(s string) bool {
	for _, v := range PersonalityTypes {
		if v == s {
			return true
		}
	}
	return false
}
