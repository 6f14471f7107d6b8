package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"groweasy/internal/database"
	"groweasy/internal/database/postgres"
	"groweasy/internal/domain/course"
)

const courseColumns = `c.id, c.title, c.description, c.category, c.level, c.duration, c.modules,
	c.skills, c.prerequisites, c.difficulty, c.instructor, c.thumbnail, c.enrolled_students,
	c.rating, c.is_active, c.is_free, c.price, c.language, c.created_at, c.updated_at`

type PostgresCourseRepository struct {
	db database.DB
}

func NewPostgresCourseRepository(db database.DB) *PostgresCourseRepository {
	return &PostgresCourseRepository{db: db}
}

func (r *PostgresCourseRepository) ListActive(ctx context.Context, f course.ListFilter) ([]course.Course, int, error) {
	a := &args{}
	where := []string{"c.is_active = true"}
	if f.Category != "" {
		where = append(where, "c.category = "+a.add(f.Category))
	}
	if f.Level != "" {
		where = append(where, "c.level = "+a.add(f.Level))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(1) FROM courses c WHERE `+cond, a.values...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := f.Limit, f.Offset
	if limit <= 0 {
		limit = 12
	}
	if offset < 0 {
		offset = 0
	}
	items, err := r.list(ctx, `SELECT `+courseColumns+` FROM courses c WHERE `+cond+
		` ORDER BY c.created_at DESC LIMIT `+a.add(limit)+` OFFSET `+a.add(offset), a.values...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *PostgresCourseRepository) Search(ctx context.Context, f course.SearchFilter) ([]course.Course, error) {
	a := &args{}
	q := a.add(contains(f.Query))
	where := []string{
		"c.is_active = true",
		`(c.title ILIKE ` + q + ` OR c.description ILIKE ` + q + ` OR c.instructor->>'name' ILIKE ` + q +
			` OR EXISTS (SELECT 1 FROM unnest(c.skills) s WHERE s ILIKE ` + q + `))`,
	}
	if f.Category != "" {
		where = append(where, "c.category = "+a.add(f.Category))
	}
	if f.Level != "" {
		where = append(where, "c.level = "+a.add(f.Level))
	}
	return r.list(ctx, `SELECT `+courseColumns+` FROM courses c WHERE `+strings.Join(where, " AND ")+
		` ORDER BY c.enrolled_students DESC, c.rating DESC`, a.values...)
}

func (r *PostgresCourseRepository) Suggest(ctx context.Context, f course.SuggestFilter) ([]course.Course, error) {
	a := &args{}
	var alts []string
	if len(f.Skills) > 0 {
		alts = append(alts, `c.skills && `+a.add(nonNil(f.Skills)))
	}
	if patterns := containsAll(f.Titles); len(patterns) > 0 {
		alts = append(alts, `c.title ILIKE ANY(`+a.add(patterns)+`)`)
	}
	if len(f.Categories) > 0 {
		alts = append(alts, `c.category = ANY(`+a.add(nonNil(f.Categories))+`)`)
	}
	if len(alts) == 0 {
		return []course.Course{}, nil
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 6
	}
	return r.list(ctx, `SELECT `+courseColumns+` FROM courses c WHERE c.is_active = true AND (`+
		strings.Join(alts, " OR ")+`) ORDER BY c.rating DESC, c.enrolled_students DESC LIMIT `+a.add(limit), a.values...)
}

// ListAllActive returns every active course, newest first.
func (r *PostgresCourseRepository) ListAllActive(ctx context.Context) ([]course.Course, error) {
	return r.list(ctx, `SELECT `+courseColumns+` FROM courses c WHERE c.is_active = true ORDER BY c.created_at DESC`)
}

func (r *PostgresCourseRepository) GetByID(ctx context.Context, id uuid.UUID) (course.Course, error) {
	c, err := scanCourse(r.db.QueryRow(ctx, `SELECT `+courseColumns+` FROM courses c WHERE c.id = $1`, id))
	if err != nil {
		if postgres.IsNoRows(err) {
			return course.Course{}, course.ErrNotFound
		}
		return course.Course{}, err
	}
	return c, nil
}

func (r *PostgresCourseRepository) list(ctx context.Context, query string, values ...any) ([]course.Course, error) {
	rows, err := r.db.Query(ctx, query, values...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]course.Course, 0)
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanCourse(row database.Row) (course.Course, error) {
	var (
		c          course.Course
		modules    []byte
		instructor []byte
		difficulty int32
		enrolled   int32
	)
	err := row.Scan(
		&c.ID, &c.Title, &c.Description, &c.Category, &c.Level, &c.Duration, &modules,
		&c.Skills, &c.Prerequisites, &difficulty, &instructor, &c.Thumbnail, &enrolled,
		&c.Rating, &c.IsActive, &c.IsFree, &c.Price, &c.Language, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return course.Course{}, err
	}
	c.Difficulty = int(difficulty)
	c.EnrolledStudents = int(enrolled)
	if len(modules) > 0 {
		if err := json.Unmarshal(modules, &c.Modules); err != nil {
			return course.Course{}, fmt.Errorf("decode modules: %w", err)
		}
	}
	if len(instructor) > 0 {
		if err := json.Unmarshal(instructor, &c.Instructor); err != nil {
			return course.Course{}, fmt.Errorf("decode instructor: %w", err)
		}
	}
	return c, nil
}
