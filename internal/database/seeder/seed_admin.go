package seeder

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"groweasy/internal/database"
)

// AdminSeeder creates the platform admin account if it does not exist yet.
type AdminSeeder struct {
	Email    string
	Password string
}

func (AdminSeeder) Name() string { return "admin" }

func (s AdminSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "users", "id", "name", "email", "password_hash", "role", "city", "state"); err != nil {
		return err
	}

	email := strings.ToLower(strings.TrimSpace(s.Email))
	if email == "" || len(s.Password) < 8 {
		return errors.New("admin email and a password of at least 8 characters are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = db.Exec(ctx, `
INSERT INTO users (name, email, password_hash, role, city, state)
VALUES ('Admin User', $1, $2, 'admin', 'Mumbai', 'Maharashtra')
ON CONFLICT (email) DO NOTHING`, email, string(hash))
	return err
}
