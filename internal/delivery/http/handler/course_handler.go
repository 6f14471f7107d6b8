package handler

import (
	"context"
	"errors"
	"strings"

	"groweasy/internal/delivery/http/dto"
	"groweasy/internal/delivery/http/middleware"
	"groweasy/internal/domain/course"
	"groweasy/internal/domain/matching"
	"groweasy/internal/pkg/response"
	courseuc "groweasy/internal/usecase/course"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type CourseUsecase interface {
	List(ctx context.Context, p courseuc.ListParams) (courseuc.ListResult, error)
	Search(ctx context.Context, p courseuc.SearchParams) (courseuc.SearchResult, error)
	Get(ctx context.Context, id uuid.UUID) (course.Course, error)
	Enroll(ctx context.Context, userID, courseID uuid.UUID) (course.Course, error)
	Enrolled(ctx context.Context, userID uuid.UUID) ([]course.EnrolledCourse, error)
	UpdateProgress(ctx context.Context, userID, courseID uuid.UUID, moduleIndex int, completed bool) (course.Enrollment, error)
	SubmitQuiz(ctx context.Context, userID, courseID, moduleID uuid.UUID, answers []int) (courseuc.QuizResult, error)
	Recommend(ctx context.Context, userID uuid.UUID) ([]matching.Ranked[course.Course], error)
}

type CourseHandler struct {
	uc CourseUsecase
}

type progressRequest struct {
	ModuleIndex *int `json:"moduleIndex"`
	Completed   bool `json:"completed"`
}

type quizRequest struct {
	Answers []int `json:"answers"`
}

func NewCourseHandler(uc CourseUsecase) *CourseHandler {
	return &CourseHandler{uc: uc}
}

// RegisterRoutes mounts the course routes. Fixed paths go before /:id.
func (h *CourseHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Get("/search", h.Search)
	r.Get("/user/enrolled", auth, h.Enrolled)
	r.Get("/user/recommendations", auth, h.Recommendations)
	r.Get("/:id", h.Get)

	r.Post("/enroll/:id", auth, h.Enroll)
	r.Put("/progress/:courseId", auth, h.UpdateProgress)
	r.Post("/quiz/:courseId/:moduleId", auth, h.SubmitQuiz)
}

func (h *CourseHandler) List(c fiber.Ctx) error {
	res, err := h.uc.List(c.Context(), courseuc.ListParams{
		Category: c.Query("category"),
		Level:    c.Query("level"),
		Page:     queryIntLenient(c, "page", 1),
		Limit:    queryIntLenient(c, "limit", 0),
	})
	if err != nil {
		return mapCourseUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.CourseListResponse{
		Courses:    dto.NewCourseResponses(res.Courses),
		Pagination: res.Pagination,
	})
}

func (h *CourseHandler) Search(c fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "Search query is required", nil, nil)
	}

	res, err := h.uc.Search(c.Context(), courseuc.SearchParams{
		Query:    q,
		Category: c.Query("category"),
		Level:    c.Query("level"),
	})
	if err != nil {
		return mapCourseUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.CourseSearchResponse{
		Courses: dto.NewCourseResponses(res.Courses),
		Count:   res.Count,
		Query:   res.Query,
	})
}

func (h *CourseHandler) Get(c fiber.Ctx) error {
	id, err := uuidParam(c, "id", "Course not found")
	if err != nil {
		return err
	}
	crs, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapCourseUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCourseResponse(crs))
}

func (h *CourseHandler) Enroll(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id", "Course not found")
	if err != nil {
		return err
	}

	crs, err := h.uc.Enroll(c.Context(), userID, id)
	if err != nil {
		return mapCourseUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Successfully enrolled in course", dto.NewCourseResponse(crs))
}

func (h *CourseHandler) Enrolled(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	items, err := h.uc.Enrolled(c.Context(), userID)
	if err != nil {
		return mapCourseUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewEnrolledCourseResponses(items))
}

func (h *CourseHandler) UpdateProgress(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	courseID, err := uuidParam(c, "courseId", "Course not found")
	if err != nil {
		return err
	}
	var req progressRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if req.ModuleIndex == nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "moduleIndex is required", nil, nil)
	}

	e, err := h.uc.UpdateProgress(c.Context(), userID, courseID, *req.ModuleIndex, req.Completed)
	if err != nil {
		if errors.Is(err, courseuc.ErrNotEnrolled) {
			return middleware.NewAppError(fiber.StatusNotFound, "Enrollment not found", nil, err)
		}
		return mapCourseUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Progress updated successfully", dto.NewProgressResponse(e))
}

func (h *CourseHandler) SubmitQuiz(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	courseID, err := uuidParam(c, "courseId", "Course not found")
	if err != nil {
		return err
	}
	moduleID, err := uuidParam(c, "moduleId", "Module not found")
	if err != nil {
		return err
	}
	var req quizRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	res, err := h.uc.SubmitQuiz(c.Context(), userID, courseID, moduleID, req.Answers)
	if err != nil {
		return mapCourseUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Quiz submitted successfully", res)
}

func (h *CourseHandler) Recommendations(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	items, err := h.uc.Recommend(c.Context(), userID)
	if err != nil {
		return mapCourseUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRecommendedCourses(items))
}

func mapCourseUsecaseError(err error) error {
	switch {
	case errors.Is(err, courseuc.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	case errors.Is(err, courseuc.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Course not found", nil, err)
	case errors.Is(err, courseuc.ErrModuleNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Module not found", nil, err)
	case errors.Is(err, courseuc.ErrAlreadyEnrolled):
		return middleware.NewAppError(fiber.StatusBadRequest, "Already enrolled in this course", nil, err)
	case errors.Is(err, courseuc.ErrNotEnrolled):
		return middleware.NewAppError(fiber.StatusForbidden, "You must be enrolled in this course to take the quiz", nil, err)
	default:
		return internalError(err)
	}
}
