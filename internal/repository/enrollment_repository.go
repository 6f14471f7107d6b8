package repository

import (
	"context"

	"github.com/google/uuid"

	"groweasy/internal/database"
	"groweasy/internal/database/postgres"
	"groweasy/internal/domain/course"
)

type PostgresEnrollmentRepository struct {
	db database.DB
}

func NewPostgresEnrollmentRepository(db database.DB) *PostgresEnrollmentRepository {
	return &PostgresEnrollmentRepository{db: db}
}

func (r *PostgresEnrollmentRepository) Enroll(ctx context.Context, e course.Enrollment) error {
	return database.InTx(ctx, r.db, func(tx database.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO enrollments (user_id, course_id, enrolled_at, progress, completed_modules)
			 VALUES ($1, $2, $3, 0, '{}')`,
			e.UserID, e.CourseID, e.EnrolledAt,
		)
		if err != nil {
			if postgres.IsUniqueViolation(err) {
				return course.ErrAlreadyEnrolled
			}
			return err
		}
		affected, err := tx.Exec(ctx, `UPDATE courses SET enrolled_students = enrolled_students + 1 WHERE id = $1`, e.CourseID)
		if err != nil {
			return err
		}
		if affected == 0 {
			return course.ErrNotFound
		}
		return nil
	})
}

func (r *PostgresEnrollmentRepository) GetEnrollment(ctx context.Context, userID, courseID uuid.UUID) (course.Enrollment, error) {
	e, err := scanEnrollment(r.db.QueryRow(ctx,
		`SELECT user_id, course_id, enrolled_at, progress, completed_modules
		 FROM enrollments WHERE user_id = $1 AND course_id = $2`,
		userID, courseID,
	))
	if err != nil {
		if postgres.IsNoRows(err) {
			return course.Enrollment{}, course.ErrNotEnrolled
		}
		return course.Enrollment{}, err
	}
	return e, nil
}

func (r *PostgresEnrollmentRepository) UpdateProgress(ctx context.Context, e course.Enrollment) error {
	completed := make([]int32, 0, len(e.CompletedModules))
	for _, m := range e.CompletedModules {
		completed = append(completed, int32(m))
	}
	affected, err := r.db.Exec(ctx,
		`UPDATE enrollments SET progress = $3, completed_modules = $4 WHERE user_id = $1 AND course_id = $2`,
		e.UserID, e.CourseID, e.Progress, completed,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return course.ErrNotEnrolled
	}
	return nil
}

func (r *PostgresEnrollmentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]course.EnrolledCourse, error) {
	rows, err := r.db.Query(ctx,
		`SELECT e.user_id, e.course_id, e.enrolled_at, e.progress, e.completed_modules, `+courseColumns+`
		 FROM enrollments e
		 JOIN courses c ON c.id = e.course_id
		 WHERE e.user_id = $1
		 ORDER BY e.enrolled_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]course.EnrolledCourse, 0)
	for rows.Next() {
		var (
			ec        course.EnrolledCourse
			progress  int32
			completed []int32
		)
		en := &ec.Enrollment
		c, err := scanCourse(prefixRow{row: rows, prefix: []any{
			&en.UserID, &en.CourseID, &en.EnrolledAt, &progress, &completed,
		}})
		if err != nil {
			return nil, err
		}
		en.Progress = int(progress)
		en.CompletedModules = toInts(completed)
		ec.Course = c
		out = append(out, ec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanEnrollment(row database.Row) (course.Enrollment, error) {
	var (
		e         course.Enrollment
		progress  int32
		completed []int32
	)
	if err := row.Scan(&e.UserID, &e.CourseID, &e.EnrolledAt, &progress, &completed); err != nil {
		return course.Enrollment{}, err
	}
	e.Progress = int(progress)
	e.CompletedModules = toInts(completed)
	return e, nil
}

func toInts(in []int32) []int {
	out := make([]int, 0, len(in))
	for _, v := range in {
		out = append(out, int(v))
	}
	return out
}
