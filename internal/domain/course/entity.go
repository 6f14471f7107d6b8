package course

import (
	"time"

	"github.com/google/uuid"
)

var Categories = []string{"Programming", "Data Science", "Digital Marketing", "Design", "Business", "Language", "Other"}

var Levels = []string{"Beginner", "Intermediate", "Advanced"}

type Instructor struct {
	Name   string  `json:"name"`
	Bio    string  `json:"bio,omitempty"`
	Avatar string  `json:"avatar,omitempty"`
	Rating float64 `json:"rating,omitempty"`
}

type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty"`
}

type Module struct {
	ID          uuid.UUID      `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Content     string         `json:"content,omitempty"`
	VideoURL    string         `json:"videoUrl,omitempty"`
	Duration    string         `json:"duration,omitempty"`
	Order       int            `json:"order"`
	Quiz        []QuizQuestion `json:"quiz"`
}

type Course struct {
	ID               uuid.UUID
	Title            string
	Description      string
	Category         string
	Level            string
	Duration         string
	Modules          []Module
	Skills           []string
	Prerequisites    []string
	Difficulty       int
	Instructor       Instructor
	Thumbnail        string
	EnrolledStudents int
	Rating           float64
	IsActive         bool
	IsFree           bool
	Price            int64
	Language         string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ModuleByID returns the module with the given id.
func (c Course) ModuleByID(id uuid.UUID) (Module, bool) {
	for _, m := range c.Modules {
		if m.ID == id {
			return m, true
		}
	}
	return Module{}, false
}

type Enrollment struct {
	UserID           uuid.UUID
	CourseID         uuid.UUID
	EnrolledAt       time.Time
	Progress         int
	CompletedModules []int
}

// EnrolledCourse is an enrollment joined with its course.
type EnrolledCourse struct {
	Course     Course
	Enrollment Enrollment
}

func IsCategory(s string) bool {
	for _, v := range Categories {
		if v == s {
			return true
		}
	}
	return false
}

func IsLevel(s string) bool {
	for _, v := range Levels {
		if v == s {
			return true
		}
	}
	return false
}
