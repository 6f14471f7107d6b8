package job

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("job not found")
	ErrAlreadyApplied = errors.New("already applied")
)

// ListFilter selects open postings for browsing. Empty fields do not filter.
type ListFilter struct {
	JobType  string
	WorkType string
	City     string
	Limit    int
	Offset   int
	Now      time.Time
}

// SearchFilter is a free-text search over open postings.
type SearchFilter struct {
	Query string
	// Variants are alternate phrasings of Query; a posting matching any of
	// them matches. Empty means Query alone.
	Variants   []string
	Location   string
	Skills     []string
	Experience *int
	MinSalary  *int64
	Now        time.Time
}

// CandidateFilter selects open postings worth scoring for a profile: any
// skill overlap, or located in the city, or remote.
type CandidateFilter struct {
	Skills []string
	City   string
	Limit  int
	Now    time.Time
}

type Repository interface {
	ListOpen(ctx context.Context, f ListFilter) ([]Job, int, error)
	Search(ctx context.Context, f SearchFilter) ([]Job, error)
	ListCandidates(ctx context.Context, f CandidateFilter) ([]Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error
	Create(ctx context.Context, j Job) error
}

type ApplicationRepository interface {
	HasApplied(ctx context.Context, jobID, userID uuid.UUID) (bool, error)
	CreateApplication(ctx context.Context, a Application) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]ApplicationView, error)
}
