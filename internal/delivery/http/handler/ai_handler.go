package handler

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"groweasy/internal/delivery/http/dto"
	"groweasy/internal/delivery/http/middleware"
	"groweasy/internal/domain/career"
	"groweasy/internal/pkg/response"
	"groweasy/internal/usecase/assistant"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type AssistantUsecase interface {
	Chat(ctx context.Context, userID uuid.UUID, message, topic string) (assistant.ChatResult, error)
	SubmitAssessment(ctx context.Context, userID uuid.UUID, in assistant.AssessmentInput) (assistant.AssessmentResult, error)
	Recommendations(ctx context.Context, userID uuid.UUID) (assistant.CareerRecommendations, error)
	Profile(ctx context.Context, userID uuid.UUID) (assistant.ProfileView, error)
	Insights(ctx context.Context, userID uuid.UUID) (assistant.Insights, error)
}

type AIHandler struct {
	uc AssistantUsecase
}

type chatRequest struct {
	Message string `json:"message"`
	Context string `json:"context"`
}

type assessmentRequest struct {
	PersonalityResponses json.RawMessage `json:"personalityResponses"`
	SkillsAssessment     json.RawMessage `json:"skillsAssessment"`
	Interests            []string        `json:"interests"`
	CareerGoals          *career.Goals   `json:"careerGoals"`
}

func NewAIHandler(uc AssistantUsecase) *AIHandler {
	return &AIHandler{uc: uc}
}

// RegisterRoutes expects r to be behind the auth middleware already.
func (h *AIHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/chat", h.Chat)
	r.Post("/assessment", h.SubmitAssessment)
	r.Get("/recommendations", h.Recommendations)
	r.Get("/profile", h.Profile)
	r.Get("/insights", h.Insights)
}

func (h *AIHandler) Chat(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req chatRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if strings.TrimSpace(req.Message) == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "Message is required", nil, nil)
	}

	res, err := h.uc.Chat(c.Context(), userID, req.Message, req.Context)
	if err != nil {
		return mapAssistantUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *AIHandler) SubmitAssessment(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req assessmentRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	res, err := h.uc.SubmitAssessment(c.Context(), userID, assistant.AssessmentInput{
		PersonalityResponses: req.PersonalityResponses,
		SkillsAssessment:     req.SkillsAssessment,
		Interests:            req.Interests,
		Goals:                req.CareerGoals,
	})
	if err != nil {
		if errors.Is(err, assistant.ErrInvalidInput) {
			return middleware.NewAppError(fiber.StatusBadRequest, "All assessment sections are required", nil, err)
		}
		return mapAssistantUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Assessment completed successfully", res)
}

func (h *AIHandler) Recommendations(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	res, err := h.uc.Recommendations(c.Context(), userID)
	if err != nil {
		return mapAssistantUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.CareerRecommendationsResponse{
		Careers:     res.Careers,
		Courses:     dto.NewCourseResponses(res.Courses),
		GeneratedAt: res.GeneratedAt,
	})
}

func (h *AIHandler) Profile(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	view, err := h.uc.Profile(c.Context(), userID)
	if err != nil {
		return mapAssistantUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.CareerProfileViewResponse{
		Profile: dto.NewCareerProfileResponse(view.Profile),
		User:    dto.NewUserResponse(view.User),
	})
}

func (h *AIHandler) Insights(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	res, err := h.uc.Insights(c.Context(), userID)
	if err != nil {
		return mapAssistantUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func mapAssistantUsecaseError(err error) error {
	switch {
	case errors.Is(err, assistant.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	case errors.Is(err, assistant.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, assistant.ErrNoAssessment):
		return middleware.NewAppError(fiber.StatusNotFound, "Career profile not found. Please complete the assessment first.", nil, err)
	default:
		return internalError(err)
	}
}
