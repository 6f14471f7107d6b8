package dto

import (
	"time"

	"groweasy/internal/domain/job"
	"groweasy/internal/domain/matching"
	"groweasy/internal/usecase"

	"github.com/google/uuid"
)

type JobResponse struct {
	ID                  uuid.UUID           `json:"id"`
	Title               string              `json:"title"`
	Company             job.Company         `json:"company"`
	Description         string              `json:"description"`
	Requirements        []string            `json:"requirements"`
	Responsibilities    []string            `json:"responsibilities"`
	RequiredSkills      []string            `json:"requiredSkills"`
	PreferredSkills     []string            `json:"preferredSkills"`
	Location            job.Location        `json:"location"`
	Salary              job.Salary          `json:"salary"`
	Experience          job.ExperienceRange `json:"experience"`
	Education           string              `json:"education"`
	JobType             string              `json:"jobType"`
	Benefits            []string            `json:"benefits"`
	ApplicationDeadline *time.Time          `json:"applicationDeadline"`
	PostedBy            *uuid.UUID          `json:"postedBy,omitempty"`
	IsActive            bool                `json:"isActive"`
	Views               int                 `json:"views"`
	Featured            bool                `json:"featured"`
	CreatedAt           time.Time           `json:"createdAt"`
	UpdatedAt           time.Time           `json:"updatedAt"`
}

func NewJobResponse(j job.Job) JobResponse {
	return JobResponse{
		ID:                  j.ID,
		Title:               j.Title,
		Company:             j.Company,
		Description:         j.Description,
		Requirements:        orEmpty(j.Requirements),
		Responsibilities:    orEmpty(j.Responsibilities),
		RequiredSkills:      orEmpty(j.RequiredSkills),
		PreferredSkills:     orEmpty(j.PreferredSkills),
		Location:            j.Location,
		Salary:              j.Salary,
		Experience:          j.Experience,
		Education:           j.Education,
		JobType:             j.JobType,
		Benefits:            orEmpty(j.Benefits),
		ApplicationDeadline: j.ApplicationDeadline,
		PostedBy:            j.PostedBy,
		IsActive:            j.IsActive,
		Views:               j.Views,
		Featured:            j.Featured,
		CreatedAt:           j.CreatedAt,
		UpdatedAt:           j.UpdatedAt,
	}
}

func NewJobResponses(jobs []job.Job) []JobResponse {
	out := make([]JobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, NewJobResponse(j))
	}
	return out
}

type JobListResponse struct {
	Jobs       []JobResponse      `json:"jobs"`
	Pagination usecase.Pagination `json:"pagination"`
}

type JobSearchResponse struct {
	Jobs    []JobResponse `json:"jobs"`
	Count   int           `json:"count"`
	Query   string        `json:"query"`
	Filters any           `json:"filters"`
}

type ApplicationResponse struct {
	ID          uuid.UUID   `json:"id"`
	Job         JobResponse `json:"job"`
	Status      string      `json:"status"`
	ResumeURL   string      `json:"resumeUrl,omitempty"`
	CoverLetter string      `json:"coverLetter,omitempty"`
	AppliedAt   time.Time   `json:"appliedAt"`
}

func NewApplicationResponses(views []job.ApplicationView) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(views))
	for _, v := range views {
		out = append(out, ApplicationResponse{
			ID:          v.Application.ID,
			Job:         NewJobResponse(v.Job),
			Status:      v.Application.Status,
			ResumeURL:   v.Application.ResumeURL,
			CoverLetter: v.Application.CoverLetter,
			AppliedAt:   v.Application.AppliedAt,
		})
	}
	return out
}

type RecommendedJob struct {
	JobResponse
	MatchScore         int      `json:"matchScore"`
	MatchingSkillCount int      `json:"matchingSkillCount"`
	Reasons            []string `json:"reasons"`
}

type JobRecommendationsResponse struct {
	Jobs        []RecommendedJob `json:"jobs"`
	UserProfile any              `json:"userProfile"`
}

func NewRecommendedJobs(items []matching.Ranked[job.Job]) []RecommendedJob {
	out := make([]RecommendedJob, 0, len(items))
	for _, it := range items {
		out = append(out, RecommendedJob{
			JobResponse:        NewJobResponse(it.Item),
			MatchScore:         it.MatchScore,
			MatchingSkillCount: it.MatchingSkillCount,
			Reasons:            orEmpty(it.Reasons),
		})
	}
	return out
}

func orEmpty(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
