package handler

import (
	"context"
	"errors"

	"groweasy/internal/delivery/http/dto"
	"groweasy/internal/delivery/http/middleware"
	"groweasy/internal/domain/user"
	"groweasy/internal/pkg/response"
	useruc "groweasy/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type UserUsecase interface {
	GetMe(ctx context.Context, userID uuid.UUID) (user.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, in useruc.UpdateProfileInput) (user.User, error)
}

type UserHandler struct {
	uc UserUsecase
}

type updateProfileRequest struct {
	Name       *string         `json:"name"`
	Age        *int            `json:"age"`
	Location   *user.Location  `json:"location"`
	Education  *user.Education `json:"education"`
	Skills     []string        `json:"skills"`
	Interests  []string        `json:"interests"`
	Experience *string         `json:"experience"`
	Phone      *string         `json:"phone"`
	Avatar     *string         `json:"avatar"`
}

func (r updateProfileRequest) empty() bool {
	return r.Name == nil && r.Age == nil && r.Location == nil && r.Education == nil &&
		r.Skills == nil && r.Interests == nil && r.Experience == nil && r.Phone == nil && r.Avatar == nil
}

func NewUserHandler(uc UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me", h.GetMe)
	r.Put("/me", h.UpdateMe)
}

func (h *UserHandler) GetMe(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	usr, err := h.uc.GetMe(c.Context(), userID)
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserResponse(usr))
}

func (h *UserHandler) UpdateMe(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if req.empty() {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, nil)
	}

	usr, err := h.uc.UpdateProfile(c.Context(), userID, useruc.UpdateProfileInput{
		Name:       req.Name,
		Age:        req.Age,
		Location:   req.Location,
		Education:  req.Education,
		Skills:     req.Skills,
		Interests:  req.Interests,
		Experience: req.Experience,
		Phone:      req.Phone,
		Avatar:     req.Avatar,
	})
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Profile updated successfully", dto.NewUserResponse(usr))
}

func mapUserUsecaseError(err error) error {
	switch {
	case errors.Is(err, useruc.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	case errors.Is(err, useruc.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	default:
		return internalError(err)
	}
}
