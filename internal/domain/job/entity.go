package job

import (
	"time"

	"github.com/google/uuid"
)

var WorkTypes = []string{"Full-time", "Part-time", "Contract", "Internship"}

var JobTypes = []string{"Software Development", "Data Science", "Digital Marketing", "Design", "Sales", "HR", "Finance", "Operations", "Other"}

var EducationLevels = []string{"High School", "Diploma", "Undergraduate", "Graduate", "Postgraduate", "Any"}

const (
	StatusApplied     = "Applied"
	StatusUnderReview = "Under Review"
	StatusInterview   = "Interview"
	StatusRejected    = "Rejected"
	StatusSelected    = "Selected"
)

type Company struct {
	Name    string `json:"name"`
	Logo    string `json:"logo,omitempty"`
	Website string `json:"website,omitempty"`
	About   string `json:"about,omitempty"`
}

type Location struct {
	City     string `json:"city"`
	State    string `json:"state"`
	Country  string `json:"country"`
	IsRemote bool   `json:"isRemote"`
	WorkType string `json:"workType"`
}

type Salary struct {
	Min      int64  `json:"min"`
	Max      int64  `json:"max"`
	Currency string `json:"currency"`
	Period   string `json:"period"`
}

type ExperienceRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type Job struct {
	ID                  uuid.UUID
	Title               string
	Company             Company
	Description         string
	Requirements        []string
	Responsibilities    []string
	RequiredSkills      []string
	PreferredSkills     []string
	Location            Location
	Salary              Salary
	Experience          ExperienceRange
	Education           string
	JobType             string
	Benefits            []string
	ApplicationDeadline *time.Time
	PostedBy            *uuid.UUID
	IsActive            bool
	Views               int
	Featured            bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// DeadlinePassed reports whether applications are closed at now.
func (j Job) DeadlinePassed(now time.Time) bool {
	return j.ApplicationDeadline != nil && now.After(*j.ApplicationDeadline)
}

type Application struct {
	ID          uuid.UUID
	JobID       uuid.UUID
	UserID      uuid.UUID
	Status      string
	ResumeURL   string
	CoverLetter string
	AppliedAt   time.Time
}

// ApplicationView is an application joined with the job it targets.
type ApplicationView struct {
	Application Application
	Job         Job
}

func IsWorkType(s string) bool  { return contains(WorkTypes, s) }
func IsJobType(s string) bool   { return contains(JobTypes, s) }
func IsEducation(s string) bool { return contains(EducationLevels, s) }

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
