package dto

import (
	"time"

	"groweasy/internal/domain/course"
	"groweasy/internal/domain/matching"
	"groweasy/internal/usecase"

	"github.com/google/uuid"
)

// PublicQuestion is a quiz question without its answer key.
type PublicQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type ModuleResponse struct {
	ID          uuid.UUID        `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Content     string           `json:"content,omitempty"`
	VideoURL    string           `json:"videoUrl,omitempty"`
	Duration    string           `json:"duration,omitempty"`
	Order       int              `json:"order"`
	Quiz        []PublicQuestion `json:"quiz"`
}

type CourseResponse struct {
	ID               uuid.UUID         `json:"id"`
	Title            string            `json:"title"`
	Description      string            `json:"description"`
	Category         string            `json:"category"`
	Level            string            `json:"level"`
	Duration         string            `json:"duration"`
	Modules          []ModuleResponse  `json:"modules"`
	Skills           []string          `json:"skills"`
	Prerequisites    []string          `json:"prerequisites"`
	Difficulty       int               `json:"difficulty"`
	Instructor       course.Instructor `json:"instructor"`
	Thumbnail        string            `json:"thumbnail,omitempty"`
	EnrolledStudents int               `json:"enrolledStudents"`
	Rating           float64           `json:"rating"`
	IsActive         bool              `json:"isActive"`
	IsFree           bool              `json:"isFree"`
	Price            int64             `json:"price"`
	Language         string            `json:"language"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// NewCourseResponse strips correct answers and explanations from every quiz.
func NewCourseResponse(c course.Course) CourseResponse {
	modules := make([]ModuleResponse, 0, len(c.Modules))
	for _, m := range c.Modules {
		quiz := make([]PublicQuestion, 0, len(m.Quiz))
		for _, q := range m.Quiz {
			quiz = append(quiz, PublicQuestion{Question: q.Question, Options: orEmpty(q.Options)})
		}
		modules = append(modules, ModuleResponse{
			ID:          m.ID,
			Title:       m.Title,
			Description: m.Description,
			Content:     m.Content,
			VideoURL:    m.VideoURL,
			Duration:    m.Duration,
			Order:       m.Order,
			Quiz:        quiz,
		})
	}
	return CourseResponse{
		ID:               c.ID,
		Title:            c.Title,
		Description:      c.Description,
		Category:         c.Category,
		Level:            c.Level,
		Duration:         c.Duration,
		Modules:          modules,
		Skills:           orEmpty(c.Skills),
		Prerequisites:    orEmpty(c.Prerequisites),
		Difficulty:       c.Difficulty,
		Instructor:       c.Instructor,
		Thumbnail:        c.Thumbnail,
		EnrolledStudents: c.EnrolledStudents,
		Rating:           c.Rating,
		IsActive:         c.IsActive,
		IsFree:           c.IsFree,
		Price:            c.Price,
		Language:         c.Language,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

func NewCourseResponses(courses []course.Course) []CourseResponse {
	out := make([]CourseResponse, 0, len(courses))
	for _, c := range courses {
		out = append(out, NewCourseResponse(c))
	}
	return out
}

type CourseListResponse struct {
	Courses    []CourseResponse   `json:"courses"`
	Pagination usecase.Pagination `json:"pagination"`
}

type CourseSearchResponse struct {
	Courses []CourseResponse `json:"courses"`
	Count   int              `json:"count"`
	Query   string           `json:"query"`
}

type EnrolledCourseResponse struct {
	Course           CourseResponse `json:"course"`
	EnrolledAt       time.Time      `json:"enrolledAt"`
	Progress         int            `json:"progress"`
	CompletedModules []int          `json:"completedModules"`
}

func NewEnrolledCourseResponses(items []course.EnrolledCourse) []EnrolledCourseResponse {
	out := make([]EnrolledCourseResponse, 0, len(items))
	for _, it := range items {
		done := it.Enrollment.CompletedModules
		if done == nil {
			done = []int{}
		}
		out = append(out, EnrolledCourseResponse{
			Course:           NewCourseResponse(it.Course),
			EnrolledAt:       it.Enrollment.EnrolledAt,
			Progress:         it.Enrollment.Progress,
			CompletedModules: done,
		})
	}
	return out
}

type ProgressResponse struct {
	CourseID         uuid.UUID `json:"courseId"`
	Progress         int       `json:"progress"`
	CompletedModules []int     `json:"completedModules"`
}

func NewProgressResponse(e course.Enrollment) ProgressResponse {
	done := e.CompletedModules
	if done == nil {
		done = []int{}
	}
	return ProgressResponse{CourseID: e.CourseID, Progress: e.Progress, CompletedModules: done}
}

type RecommendedCourse struct {
	CourseResponse
	MatchScore         int      `json:"matchScore"`
	MatchingSkillCount int      `json:"matchingSkillCount"`
	Reasons            []string `json:"reasons"`
}

func NewRecommendedCourses(items []matching.Ranked[course.Course]) []RecommendedCourse {
	out := make([]RecommendedCourse, 0, len(items))
	for _, it := range items {
		out = append(out, RecommendedCourse{
			CourseResponse:     NewCourseResponse(it.Item),
			MatchScore:         it.MatchScore,
			MatchingSkillCount: it.MatchingSkillCount,
			Reasons:            orEmpty(it.Reasons),
		})
	}
	return out
}
