package user

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"groweasy/internal/domain/user"
)

type memUsers struct {
	u         user.User
	updateErr error
}

func (m *memUsers) ExistsByEmail(context.Context, string) (bool, error) { return false, nil }
func (m *memUsers) CreateUser(context.Context, user.User) error         { return nil }
func (m *memUsers) GetUserByEmail(context.Context, string) (user.User, error) {
	return m.u, nil
}

func (m *memUsers) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	if id != m.u.ID {
		return user.User{}, user.ErrNotFound
	}
	return m.u, nil
}

func (m *memUsers) UpdateProfile(_ context.Context, _ uuid.UUID, name string, p user.Profile) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.u.Name = name
	m.u.Profile = p
	return nil
}

func (m *memUsers) UpdateAssessment(context.Context, uuid.UUID, user.AssessmentResults) error {
	return nil
}

func ptr[T any](v T) *T { return &v }

func TestService_UpdateProfile(t *testing.T) {
	id := uuid.New()
	repo := &memUsers{u: user.User{ID: id, Name: "Old", PasswordHash: "secret", Profile: user.Profile{Experience: "Fresher", Phone: "123"}}}
	s := NewService(repo)

	got, err := s.UpdateProfile(context.Background(), id, UpdateProfileInput{
		Name:      ptr("New Name"),
		Location:  &user.Location{City: " Indore "},
		Education: &user.Education{Level: "Graduate", Field: "CS"},
		Skills:    []string{"Go", " go ", "", "SQL"},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Name != "New Name" || got.PasswordHash != "" {
		t.Fatalf("unexpected user: %+v", got)
	}
	if got.Profile.Location.City != "Indore" || got.Profile.Location.Country != "India" {
		t.Fatalf("unexpected location: %+v", got.Profile.Location)
	}
	if len(got.Profile.Skills) != 2 || got.Profile.Skills[0] != "Go" || got.Profile.Skills[1] != "SQL" {
		t.Fatalf("unexpected skills: %v", got.Profile.Skills)
	}
	if got.Profile.Phone != "123" || got.Profile.Experience != "Fresher" {
		t.Fatalf("untouched fields changed: %+v", got.Profile)
	}
}

func TestService_UpdateProfile_Invalid(t *testing.T) {
	id := uuid.New()
	s := NewService(&memUsers{u: user.User{ID: id}})

	cases := []UpdateProfileInput{
		{Name: ptr("  ")},
		{Education: &user.Education{Level: "PhD"}},
		{Experience: ptr("10 years")},
		{Age: ptr(5)},
	}
	for _, in := range cases {
		if _, err := s.UpdateProfile(context.Background(), id, in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("input %+v: expected ErrInvalidInput, got %v", in, err)
		}
	}
}

func TestService_GetMe_NotFound(t *testing.T) {
	s := NewService(&memUsers{u: user.User{ID: uuid.New()}})
	if _, err := s.GetMe(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
