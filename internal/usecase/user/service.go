package user

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"groweasy/internal/domain/user"
	ucauth "groweasy/internal/usecase/auth"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("user not found")
	ErrInternal     = errors.New("internal error")
)

// UpdateProfileInput carries a partial profile update. Nil fields are left as they are.
type UpdateProfileInput struct {
	Name       *string
	Age        *int
	Location   *user.Location
	Education  *user.Education
	Skills     []string
	Interests  []string
	Experience *string
	Phone      *string
	Avatar     *string
}

type Service struct {
	users user.Repository
}

func NewService(users user.Repository) *Service {
	return &Service{users: users}
}

func (s *Service) GetMe(ctx context.Context, userID uuid.UUID) (user.User, error) {
	usr, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrNotFound
		}
		return user.User{}, ErrInternal
	}
	return ucauth.Sanitize(usr), nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (user.User, error) {
	usr, err := s.GetMe(ctx, userID)
	if err != nil {
		return user.User{}, err
	}

	name := usr.Name
	if in.Name != nil {
		name = strings.TrimSpace(*in.Name)
		if name == "" {
			return user.User{}, ErrInvalidInput
		}
	}

	p := usr.Profile
	if in.Age != nil {
		if *in.Age < 13 || *in.Age > 100 {
			return user.User{}, ErrInvalidInput
		}
		age := *in.Age
		p.Age = &age
	}
	if in.Location != nil {
		p.Location = user.Location{
			City:    strings.TrimSpace(in.Location.City),
			State:   strings.TrimSpace(in.Location.State),
			Country: strings.TrimSpace(in.Location.Country),
		}
		if p.Location.Country == "" {
			p.Location.Country = "India"
		}
	}
	if in.Education != nil {
		level := strings.TrimSpace(in.Education.Level)
		if level != "" && !user.IsEducationLevel(level) {
			return user.User{}, ErrInvalidInput
		}
		p.Education = user.Education{
			Level:       level,
			Field:       strings.TrimSpace(in.Education.Field),
			Institution: strings.TrimSpace(in.Education.Institution),
		}
	}
	if in.Skills != nil {
		p.Skills = dedupe(in.Skills)
	}
	if in.Interests != nil {
		p.Interests = dedupe(in.Interests)
	}
	if in.Experience != nil {
		exp := strings.TrimSpace(*in.Experience)
		if !user.IsExperienceLevel(exp) {
			return user.User{}, ErrInvalidInput
		}
		p.Experience = exp
	}
	if in.Phone != nil {
		p.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Avatar != nil {
		p.Avatar = strings.TrimSpace(*in.Avatar)
	}

	if err := s.users.UpdateProfile(ctx, userID, name, p); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrNotFound
		}
		return user.User{}, ErrInternal
	}
	return s.GetMe(ctx, userID)
}

// dedupe trims items and drops blanks and case-insensitive repeats, keeping first spelling.
func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" {
			continue
		}
		k := strings.ToLower(it)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, it)
	}
	return out
}
