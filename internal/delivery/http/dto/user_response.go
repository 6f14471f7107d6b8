package dto

import (
	"time"

	"groweasy/internal/domain/user"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID                uuid.UUID               `json:"id"`
	Name              string                  `json:"name"`
	Email             string                  `json:"email"`
	Role              string                  `json:"role"`
	Profile           user.Profile            `json:"profile"`
	AssessmentResults *user.AssessmentResults `json:"assessmentResults,omitempty"`
	CreatedAt         time.Time               `json:"createdAt"`
	UpdatedAt         time.Time               `json:"updatedAt"`
}

// NewUserResponse never carries the password hash.
func NewUserResponse(u user.User) UserResponse {
	p := u.Profile
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Interests == nil {
		p.Interests = []string{}
	}
	return UserResponse{
		ID:                u.ID,
		Name:              u.Name,
		Email:             u.Email,
		Role:              u.Role,
		Profile:           p,
		AssessmentResults: u.Assessment,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

type AuthResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}
