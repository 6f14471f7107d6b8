package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

var EducationLevels = []string{"High School", "Diploma", "Undergraduate", "Graduate", "Postgraduate"}

var ExperienceLevels = []string{"Fresher", "0-1 years", "1-2 years", "2-5 years", "5+ years"}

type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         string
	Profile      Profile
	Assessment   *AssessmentResults
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Location struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

type Education struct {
	Level       string `json:"level"`
	Field       string `json:"field"`
	Institution string `json:"institution"`
}

type Profile struct {
	Age        *int      `json:"age,omitempty"`
	Location   Location  `json:"location"`
	Education  Education `json:"education"`
	Skills     []string  `json:"skills"`
	Interests  []string  `json:"interests"`
	Experience string    `json:"experience"`
	Phone      string    `json:"phone"`
	Avatar     string    `json:"avatar"`
}

type CareerMatch struct {
	Career          string `json:"career"`
	MatchPercentage int    `json:"matchPercentage"`
	Description     string `json:"description"`
}

// AssessmentResults is the summary of the latest career assessment kept on the user.
type AssessmentResults struct {
	PersonalityType string        `json:"personalityType"`
	Strengths       []string      `json:"strengths"`
	Improvements    []string      `json:"improvements"`
	CareerMatches   []CareerMatch `json:"careerMatches"`
	CompletedAt     time.Time     `json:"completedAt"`
}

func IsEducationLevel(s string) bool {
	for _, l := range EducationLevels {
		if l == s {
			return true
		}
	}
	return false
}

func IsExperienceLevel(s string) bool {
	for _, l := range ExperienceLevels {
		if l == s {
			return true
		}
	}
	return false
}
