package career

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("career profile not found")

type Repository interface {
	Upsert(ctx context.Context, p Profile) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (Profile, error)
}
