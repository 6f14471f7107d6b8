package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"groweasy/internal/domain/user"
	"groweasy/internal/pkg/jwt"
	ucauth "groweasy/internal/usecase/auth"
)

type stubUsers struct {
	users map[uuid.UUID]user.User
}

func (s *stubUsers) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, err := s.GetUserByEmail(context.Background(), email)
	return err == nil, nil
}

func (s *stubUsers) CreateUser(_ context.Context, u user.User) error {
	s.users[u.ID] = u
	return nil
}

func (s *stubUsers) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := s.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (s *stubUsers) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (s *stubUsers) UpdateProfile(context.Context, uuid.UUID, string, user.Profile) error { return nil }
func (s *stubUsers) UpdateAssessment(context.Context, uuid.UUID, user.AssessmentResults) error {
	return nil
}

func newAuth() (*Auth, *jwt.HMACService) {
	svc := jwt.NewHMACService("a", "r", time.Minute, time.Hour)
	return NewAuthUsecase(&stubUsers{users: map[uuid.UUID]user.User{}}, svc, nil), svc
}

func TestAuth_RegisterIssuesTokens(t *testing.T) {
	uc, svc := newAuth()
	usr, tokens, err := uc.Register(context.Background(), ucauth.RegisterInput{Name: "Ravi", Email: "ravi@x.in", Password: "password1"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	claims, err := svc.ValidateToken(tokens.AccessToken)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if claims.UserID != usr.ID || claims.Role != user.RoleStudent {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuth_Refresh(t *testing.T) {
	uc, _ := newAuth()
	_, tokens, err := uc.Register(context.Background(), ucauth.RegisterInput{Name: "Ravi", Email: "ravi@x.in", Password: "password1"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if _, err := uc.Refresh(context.Background(), tokens.AccessToken); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken for access token, got %v", err)
	}
	next, err := uc.Refresh(context.Background(), tokens.RefreshToken)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if next.AccessToken == "" || next.RefreshToken == "" {
		t.Fatalf("expected a new token pair")
	}
	if _, err := uc.Refresh(context.Background(), ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestPagination(t *testing.T) {
	page, limit := NormalizePage(0, 0, 12)
	if page != 1 || limit != 12 {
		t.Fatalf("unexpected defaults: %d %d", page, limit)
	}
	if _, limit := NormalizePage(1, 500, 12); limit != MaxPageSize {
		t.Fatalf("expected limit capped at %d, got %d", MaxPageSize, limit)
	}

	p := NewPagination(2, 10, 25)
	if p.TotalPages != 3 || !p.HasNextPage || !p.HasPrevPage {
		t.Fatalf("unexpected pagination: %+v", p)
	}
	if Offset(3, 10) != 20 {
		t.Fatalf("unexpected offset")
	}
}

func TestCacheKey_NormalizedParamsShareKey(t *testing.T) {
	type params struct {
		Q      string   `json:"q"`
		Skills []string `json:"skills"`
	}
	a := CacheKey(JobsSearchPrefix, params{Q: NormalizeSearchValue("  React   Developer "), Skills: NormalizeList([]string{"Go", " "})})
	b := CacheKey(JobsSearchPrefix, params{Q: NormalizeSearchValue("react developer"), Skills: NormalizeList([]string{"go"})})
	if a != b {
		t.Fatalf("expected equal keys, got %q and %q", a, b)
	}
	if a[:len(JobsSearchPrefix)] != JobsSearchPrefix {
		t.Fatalf("expected prefix, got %q", a)
	}
}
