package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"groweasy/internal/database"
	"groweasy/internal/database/postgres"
	"groweasy/internal/domain/user"
)

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const userColumns = `id, name, email, password_hash, role, age, city, state, country,
	education_level, education_field, education_institution, skills, interests, experience,
	phone, avatar, assessment, created_at, updated_at`

func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

func (r *PostgresUserRepository) CreateUser(ctx context.Context, u user.User) error {
	role := u.Role
	if role == "" {
		role = user.RoleStudent
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, name, email, password_hash, role, city, state, country, education_level, experience)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		u.ID, u.Name, u.Email, u.PasswordHash, role,
		u.Profile.Location.City, u.Profile.Location.State, countryOrDefault(u.Profile.Location.Country),
		u.Profile.Education.Level, experienceOrDefault(u.Profile.Experience),
	)
	return err
}

func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *PostgresUserRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *PostgresUserRepository) getOne(ctx context.Context, query string, arg any) (user.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if postgres.IsNoRows(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, name string, p user.Profile) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE users SET
			name = $2, age = $3, city = $4, state = $5, country = $6,
			education_level = $7, education_field = $8, education_institution = $9,
			skills = $10, interests = $11, experience = $12, phone = $13, avatar = $14,
			updated_at = now()
		 WHERE id = $1`,
		id, name, p.Age, p.Location.City, p.Location.State, countryOrDefault(p.Location.Country),
		p.Education.Level, p.Education.Field, p.Education.Institution,
		nonNil(p.Skills), nonNil(p.Interests), experienceOrDefault(p.Experience), p.Phone, p.Avatar,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) UpdateAssessment(ctx context.Context, id uuid.UUID, a user.AssessmentResults) error {
	b, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal assessment: %w", err)
	}
	affected, err := r.db.Exec(ctx, `UPDATE users SET assessment = $2, updated_at = now() WHERE id = $1`, id, b)
	if err != nil {
		return err
	}
	if affected == 0 {
		return user.ErrNotFound
	}
	return nil
}

func scanUser(row database.Row) (user.User, error) {
	var (
		u          user.User
		age        *int32
		assessment []byte
	)
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &age,
		&u.Profile.Location.City, &u.Profile.Location.State, &u.Profile.Location.Country,
		&u.Profile.Education.Level, &u.Profile.Education.Field, &u.Profile.Education.Institution,
		&u.Profile.Skills, &u.Profile.Interests, &u.Profile.Experience,
		&u.Profile.Phone, &u.Profile.Avatar, &assessment, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return user.User{}, err
	}
	if age != nil {
		v := int(*age)
		u.Profile.Age = &v
	}
	if len(assessment) > 0 {
		var a user.AssessmentResults
		if err := json.Unmarshal(assessment, &a); err != nil {
			return user.User{}, fmt.Errorf("decode assessment: %w", err)
		}
		u.Assessment = &a
	}
	return u, nil
}

func countryOrDefault(c string) string {
	if c == "" {
		return "India"
	}
	return c
}

func experienceOrDefault(e string) string {
	if e == "" {
		return "Fresher"
	}
	return e
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
