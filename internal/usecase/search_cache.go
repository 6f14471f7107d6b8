package usecase

import (
	"context"
	"time"
)

// SearchCache stores listing and search pages. Implementations treat an
// unavailable backend as a permanent miss rather than an error.
type SearchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	InvalidateJobs(ctx context.Context) error
	InvalidateCourses(ctx context.Context) error
}

// EventPublisher emits domain events. Publishing never fails the caller.
type EventPublisher interface {
	Publish(ctx context.Context, key string, payload any)
}

// Routing keys for domain events.
const (
	EventJobPosted      = "job.posted"
	EventJobApplied     = "job.applied"
	EventCourseEnrolled = "course.enrolled"
	EventAssessmentDone = "assessment.completed"
)
