package repository

import (
	"context"

	"github.com/google/uuid"

	"groweasy/internal/database"
	"groweasy/internal/database/postgres"
	"groweasy/internal/domain/job"
)

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

func (r *PostgresApplicationRepository) HasApplied(ctx context.Context, jobID, userID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM job_applications WHERE job_id = $1 AND user_id = $2)`,
		jobID, userID,
	).Scan(&exists)
	return exists, err
}

func (r *PostgresApplicationRepository) CreateApplication(ctx context.Context, a job.Application) error {
	status := a.Status
	if status == "" {
		status = job.StatusApplied
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO job_applications (id, job_id, user_id, status, resume_url, cover_letter, applied_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.JobID, a.UserID, status, a.ResumeURL, a.CoverLetter, a.AppliedAt,
	)
	if postgres.IsUniqueViolation(err) {
		return job.ErrAlreadyApplied
	}
	return err
}

func (r *PostgresApplicationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]job.ApplicationView, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.id, a.job_id, a.user_id, a.status, a.resume_url, a.cover_letter, a.applied_at, `+jobColumns+`
		 FROM job_applications a
		 JOIN jobs j ON j.id = a.job_id
		 WHERE a.user_id = $1
		 ORDER BY a.applied_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.ApplicationView, 0)
	for rows.Next() {
		var v job.ApplicationView
		app := &v.Application
		j, err := scanJob(prefixRow{row: rows, prefix: []any{
			&app.ID, &app.JobID, &app.UserID, &app.Status, &app.ResumeURL, &app.CoverLetter, &app.AppliedAt,
		}})
		if err != nil {
			return nil, err
		}
		v.Job = j
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// prefixRow scans leading columns into prefix before handing the rest to a
// row scanner that only knows its own columns.
type prefixRow struct {
	row    database.Row
	prefix []any
}

func (p prefixRow) Scan(dest ...any) error {
	all := make([]any, 0, len(p.prefix)+len(dest))
	all = append(all, p.prefix...)
	all = append(all, dest...)
	return p.row.Scan(all...)
}
