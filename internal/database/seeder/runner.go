package seeder

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"groweasy/internal/database"
)

type Runner struct {
	Seeders []Seeder
	Log     *zap.Logger
}

func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		start := time.Now()
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		if r.Log != nil {
			r.Log.Info("seeder finished", zap.String("seeder", s.Name()), zap.Duration("elapsed", time.Since(start)))
		}
	}
	return nil
}
