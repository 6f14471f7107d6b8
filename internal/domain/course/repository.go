package course

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("course not found")
	ErrAlreadyEnrolled = errors.New("already enrolled")
	ErrNotEnrolled     = errors.New("not enrolled")
)

type ListFilter struct {
	Category string
	Level    string
	Limit    int
	Offset   int
}

type SearchFilter struct {
	Query    string
	Category string
	Level    string
}

// SuggestFilter selects courses related to career suggestions: shared skills,
// a title match, or one of the given categories.
type SuggestFilter struct {
	Skills     []string
	Titles     []string
	Categories []string
	Limit      int
}

type Repository interface {
	ListActive(ctx context.Context, f ListFilter) ([]Course, int, error)
	Search(ctx context.Context, f SearchFilter) ([]Course, error)
	Suggest(ctx context.Context, f SuggestFilter) ([]Course, error)
	ListAllActive(ctx context.Context) ([]Course, error)
	GetByID(ctx context.Context, id uuid.UUID) (Course, error)
}

type EnrollmentRepository interface {
	// Enroll records the enrollment and bumps the course's student count atomically.
	Enroll(ctx context.Context, e Enrollment) error
	GetEnrollment(ctx context.Context, userID, courseID uuid.UUID) (Enrollment, error)
	UpdateProgress(ctx context.Context, e Enrollment) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]EnrolledCourse, error)
}
