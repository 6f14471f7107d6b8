package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"groweasy/internal/domain/user"
)

type memUsers struct {
	byID      map[uuid.UUID]user.User
	createErr error
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[uuid.UUID]user.User{}}
}

func (m *memUsers) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUsers) CreateUser(_ context.Context, u user.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.byID[u.ID] = u
	return nil
}

func (m *memUsers) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *memUsers) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *memUsers) UpdateProfile(context.Context, uuid.UUID, string, user.Profile) error { return nil }
func (m *memUsers) UpdateAssessment(context.Context, uuid.UUID, user.AssessmentResults) error {
	return nil
}

func TestService_Register(t *testing.T) {
	users := newMemUsers()
	s := NewService(users)

	u, err := s.Register(context.Background(), RegisterInput{Name: " Asha ", Email: " Asha@Example.COM ", Password: "password1"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.Email != "asha@example.com" || u.Name != "Asha" || u.Role != user.RoleStudent {
		t.Fatalf("unexpected user: %+v", u)
	}
	if u.PasswordHash != "" {
		t.Fatalf("expected hash to be stripped")
	}
	stored := users.byID[u.ID]
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password1")) != nil {
		t.Fatalf("stored hash does not match password")
	}
}

func TestService_Register_InvalidInput(t *testing.T) {
	s := NewService(newMemUsers())
	cases := []RegisterInput{
		{Name: "", Email: "a@b.com", Password: "password1"},
		{Name: "A", Email: "not-an-email", Password: "password1"},
		{Name: "A", Email: "a@b.com", Password: "short"},
	}
	for _, in := range cases {
		if _, err := s.Register(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("input %+v: expected ErrInvalidInput, got %v", in, err)
		}
	}
}

func TestService_Register_Duplicate(t *testing.T) {
	s := NewService(newMemUsers())
	in := RegisterInput{Name: "A", Email: "a@b.com", Password: "password1"}
	if _, err := s.Register(context.Background(), in); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	in.Email = strings.ToUpper(in.Email)
	if _, err := s.Register(context.Background(), in); !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestService_Login(t *testing.T) {
	s := NewService(newMemUsers())
	if _, err := s.Register(context.Background(), RegisterInput{Name: "A", Email: "a@b.com", Password: "password1"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if _, err := s.Login(context.Background(), LoginInput{Email: "A@B.com", Password: "password1"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := s.Login(context.Background(), LoginInput{Email: "a@b.com", Password: "wrong-password"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := s.Login(context.Background(), LoginInput{Email: "nobody@b.com", Password: "password1"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
