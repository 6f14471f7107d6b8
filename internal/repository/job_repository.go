package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"groweasy/internal/database"
	"groweasy/internal/database/postgres"
	"groweasy/internal/domain/job"
)

const (
	jobSearchLimit  = 50
	jobCandidateMax = 200
	jobColumns      = `j.id, j.title, j.company_name, j.company_logo, j.company_website, j.company_about,
	j.description, j.requirements, j.responsibilities, j.required_skills, j.preferred_skills,
	j.city, j.state, j.country, j.is_remote, j.work_type, j.salary_min, j.salary_max,
	j.salary_currency, j.salary_period, j.experience_min, j.experience_max, j.education,
	j.job_type, j.benefits, j.application_deadline, j.posted_by, j.is_active, j.views,
	j.featured, j.created_at, j.updated_at`
)

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

// openClause restricts to active postings whose deadline has not passed.
func openClause(a *args, now time.Time) string {
	if now.IsZero() {
		now = time.Now()
	}
	return "j.is_active = true AND (j.application_deadline IS NULL OR j.application_deadline >= " + a.add(now) + ")"
}

func (r *PostgresJobRepository) ListOpen(ctx context.Context, f job.ListFilter) ([]job.Job, int, error) {
	a := &args{}
	where := []string{openClause(a, f.Now)}
	if f.JobType != "" {
		where = append(where, "j.job_type = "+a.add(f.JobType))
	}
	if f.WorkType != "" {
		where = append(where, "j.work_type = "+a.add(f.WorkType))
	}
	if f.City != "" {
		where = append(where, "j.city ILIKE "+a.add(contains(f.City)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(1) FROM jobs j WHERE `+cond, a.values...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := f.Limit, f.Offset
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + jobColumns + ` FROM jobs j WHERE ` + cond +
		` ORDER BY j.featured DESC, j.created_at DESC LIMIT ` + a.add(limit) + ` OFFSET ` + a.add(offset)

	items, err := r.list(ctx, query, a.values...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *PostgresJobRepository) Search(ctx context.Context, f job.SearchFilter) ([]job.Job, error) {
	a := &args{}
	where := []string{openClause(a, f.Now)}

	terms := f.Variants
	if len(terms) == 0 {
		terms = []string{f.Query}
	}
	q := a.add(containsAll(terms))
	where = append(where, `(j.title ILIKE ANY(`+q+`) OR j.description ILIKE ANY(`+q+`) OR j.company_name ILIKE ANY(`+q+`)`+
		` OR EXISTS (SELECT 1 FROM unnest(j.required_skills) s WHERE s ILIKE ANY(`+q+`)))`)

	if loc := strings.TrimSpace(f.Location); loc != "" {
		p := a.add(contains(loc))
		where = append(where, `(j.city ILIKE `+p+` OR j.state ILIKE `+p+`)`)
	}
	if patterns := containsAll(f.Skills); len(patterns) > 0 {
		where = append(where, `EXISTS (SELECT 1 FROM unnest(j.required_skills) s WHERE s ILIKE ANY(`+a.add(patterns)+`))`)
	}
	if f.Experience != nil {
		e := a.add(*f.Experience)
		where = append(where, `j.experience_min <= `+e+` AND j.experience_max >= `+e)
	}
	if f.MinSalary != nil {
		where = append(where, `j.salary_min >= `+a.add(*f.MinSalary))
	}

	query := `SELECT ` + jobColumns + ` FROM jobs j WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY j.featured DESC, j.views DESC LIMIT ` + a.add(jobSearchLimit)
	return r.list(ctx, query, a.values...)
}

func (r *PostgresJobRepository) ListCandidates(ctx context.Context, f job.CandidateFilter) ([]job.Job, error) {
	a := &args{}
	where := []string{openClause(a, f.Now)}

	alts := []string{"j.is_remote = true"}
	if patterns := containsAll(f.Skills); len(patterns) > 0 {
		alts = append(alts, `EXISTS (SELECT 1 FROM unnest(j.required_skills) s WHERE s ILIKE ANY(`+a.add(patterns)+`))`)
	}
	if city := strings.TrimSpace(f.City); city != "" {
		alts = append(alts, `lower(j.city) = lower(`+a.add(city)+`)`)
	}
	where = append(where, "("+strings.Join(alts, " OR ")+")")

	limit := f.Limit
	if limit <= 0 || limit > jobCandidateMax {
		limit = jobCandidateMax
	}
	query := `SELECT ` + jobColumns + ` FROM jobs j WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY j.featured DESC, j.created_at DESC LIMIT ` + a.add(limit)
	return r.list(ctx, query, a.values...)
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	j, err := scanJob(r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs j WHERE j.id = $1`, id))
	if err != nil {
		if postgres.IsNoRows(err) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, err
	}
	return j, nil
}

func (r *PostgresJobRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `UPDATE jobs SET views = views + 1 WHERE id = $1`, id)
	return err
}

func (r *PostgresJobRepository) Create(ctx context.Context, j job.Job) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO jobs (id, title, company_name, company_logo, company_website, company_about,
			description, requirements, responsibilities, required_skills, preferred_skills,
			city, state, country, is_remote, work_type, salary_min, salary_max, salary_currency, salary_period,
			experience_min, experience_max, education, job_type, benefits, application_deadline,
			posted_by, is_active, featured)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
			$21, $22, $23, $24, $25, $26, $27, $28, $29)`,
		j.ID, j.Title, j.Company.Name, j.Company.Logo, j.Company.Website, j.Company.About,
		j.Description, nonNil(j.Requirements), nonNil(j.Responsibilities), nonNil(j.RequiredSkills), nonNil(j.PreferredSkills),
		j.Location.City, j.Location.State, countryOrDefault(j.Location.Country), j.Location.IsRemote, j.Location.WorkType,
		j.Salary.Min, j.Salary.Max, orDefault(j.Salary.Currency, "INR"), orDefault(j.Salary.Period, "yearly"),
		j.Experience.Min, j.Experience.Max, orDefault(j.Education, "Any"), j.JobType, nonNil(j.Benefits),
		j.ApplicationDeadline, j.PostedBy, true, j.Featured,
	)
	return err
}

func (r *PostgresJobRepository) list(ctx context.Context, query string, values ...any) ([]job.Job, error) {
	rows, err := r.db.Query(ctx, query, values...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanJob(row database.Row) (job.Job, error) {
	var (
		j        job.Job
		expMin   int32
		expMax   int32
		views    int32
		postedBy *uuid.UUID
	)
	err := row.Scan(
		&j.ID, &j.Title, &j.Company.Name, &j.Company.Logo, &j.Company.Website, &j.Company.About,
		&j.Description, &j.Requirements, &j.Responsibilities, &j.RequiredSkills, &j.PreferredSkills,
		&j.Location.City, &j.Location.State, &j.Location.Country, &j.Location.IsRemote, &j.Location.WorkType,
		&j.Salary.Min, &j.Salary.Max, &j.Salary.Currency, &j.Salary.Period, &expMin, &expMax,
		&j.Education, &j.JobType, &j.Benefits, &j.ApplicationDeadline, &postedBy, &j.IsActive, &views,
		&j.Featured, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return job.Job{}, err
	}
	j.Experience = job.ExperienceRange{Min: int(expMin), Max: int(expMax)}
	j.Views = int(views)
	j.PostedBy = postedBy
	return j, nil
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
