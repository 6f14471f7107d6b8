package seeder

import (
	"context"

	"groweasy/internal/database"
)

// Seeder loads one kind of reference data. Seeders must be safe to re-run.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
