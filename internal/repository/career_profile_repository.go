package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"groweasy/internal/database"
	"groweasy/internal/database/postgres"
	"groweasy/internal/domain/career"
)

type PostgresCareerProfileRepository struct {
	db database.DB
}

func NewPostgresCareerProfileRepository(db database.DB) *PostgresCareerProfileRepository {
	return &PostgresCareerProfileRepository{db: db}
}

func (r *PostgresCareerProfileRepository) Upsert(ctx context.Context, p career.Profile) error {
	traits, err := json.Marshal(p.Traits)
	if err != nil {
		return fmt.Errorf("marshal traits: %w", err)
	}
	goals, err := json.Marshal(p.Goals)
	if err != nil {
		return fmt.Errorf("marshal goals: %w", err)
	}
	careers, err := json.Marshal(p.Careers)
	if err != nil {
		return fmt.Errorf("marshal careers: %w", err)
	}
	completion, err := json.Marshal(p.Completion)
	if err != nil {
		return fmt.Errorf("marshal completion: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO career_profiles (user_id, personality_responses, personality_type, traits,
			skills_assessment, interests, goals, careers, generated_at, completion)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (user_id) DO UPDATE SET
			personality_responses = EXCLUDED.personality_responses,
			personality_type = EXCLUDED.personality_type,
			traits = EXCLUDED.traits,
			skills_assessment = EXCLUDED.skills_assessment,
			interests = EXCLUDED.interests,
			goals = EXCLUDED.goals,
			careers = EXCLUDED.careers,
			generated_at = EXCLUDED.generated_at,
			completion = EXCLUDED.completion,
			updated_at = now()`,
		p.UserID, rawJSON(p.PersonalityResponses), p.PersonalityType, traits,
		rawJSON(p.SkillsAssessment), nonNil(p.Interests), goals, careers, p.GeneratedAt, completion,
	)
	return err
}

func (r *PostgresCareerProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (career.Profile, error) {
	var (
		p                          career.Profile
		responses, traits, skills  []byte
		goals, careers, completion []byte
	)
	err := r.db.QueryRow(ctx,
		`SELECT user_id, personality_responses, personality_type, traits, skills_assessment, interests,
			goals, careers, generated_at, completion, created_at, updated_at
		 FROM career_profiles WHERE user_id = $1`,
		userID,
	).Scan(
		&p.UserID, &responses, &p.PersonalityType, &traits, &skills, &p.Interests,
		&goals, &careers, &p.GeneratedAt, &completion, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if postgres.IsNoRows(err) {
			return career.Profile{}, career.ErrNotFound
		}
		return career.Profile{}, err
	}

	p.PersonalityResponses = json.RawMessage(responses)
	p.SkillsAssessment = json.RawMessage(skills)
	for _, f := range []struct {
		name string
		raw  []byte
		dst  any
	}{
		{"traits", traits, &p.Traits},
		{"goals", goals, &p.Goals},
		{"careers", careers, &p.Careers},
		{"completion", completion, &p.Completion},
	} {
		if len(f.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(f.raw, f.dst); err != nil {
			return career.Profile{}, fmt.Errorf("decode %s: %w", f.name, err)
		}
	}
	return p, nil
}

func rawJSON(b json.RawMessage) []byte {
	if len(b) == 0 {
		return []byte("{}")
	}
	return b
}
