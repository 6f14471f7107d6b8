package dto

import (
	"encoding/json"
	"time"

	"groweasy/internal/domain/career"

	"github.com/google/uuid"
)

type CareerProfileResponse struct {
	UserID               uuid.UUID               `json:"userId"`
	PersonalityResponses json.RawMessage         `json:"personalityResponses,omitempty"`
	PersonalityType      string                  `json:"personalityType"`
	Traits               map[string]float64      `json:"traits,omitempty"`
	SkillsAssessment     json.RawMessage         `json:"skillsAssessment,omitempty"`
	Interests            []string                `json:"interests"`
	Goals                career.Goals            `json:"careerGoals"`
	Recommendations      []career.Suggestion     `json:"careerRecommendations"`
	GeneratedAt          time.Time               `json:"generatedAt"`
	Completion           career.CompletionStatus `json:"completionStatus"`
	UpdatedAt            time.Time               `json:"updatedAt"`
}

func NewCareerProfileResponse(p career.Profile) CareerProfileResponse {
	recs := p.Careers
	if recs == nil {
		recs = []career.Suggestion{}
	}
	return CareerProfileResponse{
		UserID:               p.UserID,
		PersonalityResponses: p.PersonalityResponses,
		PersonalityType:      p.PersonalityType,
		Traits:               p.Traits,
		SkillsAssessment:     p.SkillsAssessment,
		Interests:            orEmpty(p.Interests),
		Goals:                p.Goals,
		Recommendations:      recs,
		GeneratedAt:          p.GeneratedAt,
		Completion:           p.Completion,
		UpdatedAt:            p.UpdatedAt,
	}
}

type CareerProfileViewResponse struct {
	Profile CareerProfileResponse `json:"profile"`
	User    UserResponse          `json:"user"`
}

type CareerRecommendationsResponse struct {
	Careers     []career.Suggestion `json:"careers"`
	Courses     []CourseResponse    `json:"courses"`
	GeneratedAt time.Time           `json:"generatedAt"`
}
