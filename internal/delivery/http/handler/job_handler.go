package handler

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"groweasy/internal/delivery/http/dto"
	"groweasy/internal/delivery/http/middleware"
	"groweasy/internal/domain/job"
	"groweasy/internal/pkg/response"
	jobuc "groweasy/internal/usecase/job"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const maxResumeUpload = 5 << 20

type JobUsecase interface {
	List(ctx context.Context, p jobuc.ListParams) (jobuc.ListResult, error)
	Search(ctx context.Context, p jobuc.SearchParams) (jobuc.SearchResult, error)
	Get(ctx context.Context, id uuid.UUID) (job.Job, error)
	Create(ctx context.Context, postedBy uuid.UUID, in jobuc.CreateInput) (job.Job, error)
	Apply(ctx context.Context, userID, jobID uuid.UUID, in jobuc.ApplyInput) (jobuc.ApplyResult, error)
	Applications(ctx context.Context, userID uuid.UUID) ([]job.ApplicationView, error)
	Recommend(ctx context.Context, userID uuid.UUID) (jobuc.Recommendations, error)
}

type JobHandler struct {
	uc JobUsecase
}

type createJobRequest struct {
	Title               string              `json:"title"`
	Company             job.Company         `json:"company"`
	Description         string              `json:"description"`
	Requirements        []string            `json:"requirements"`
	Responsibilities    []string            `json:"responsibilities"`
	RequiredSkills      []string            `json:"requiredSkills"`
	PreferredSkills     []string            `json:"preferredSkills"`
	Location            job.Location        `json:"location"`
	Salary              job.Salary          `json:"salary"`
	Experience          job.ExperienceRange `json:"experience"`
	Education           string              `json:"education"`
	JobType             string              `json:"jobType"`
	Benefits            []string            `json:"benefits"`
	ApplicationDeadline *time.Time          `json:"applicationDeadline"`
	Featured            bool                `json:"featured"`
}

type applyRequest struct {
	CoverLetter string `json:"coverLetter"`
	Resume      string `json:"resume"`
}

func NewJobHandler(uc JobUsecase) *JobHandler {
	return &JobHandler{uc: uc}
}

// RegisterRoutes mounts the job routes. Fixed paths go before /:id.
func (h *JobHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler, admin fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Get("/search", h.Search)
	r.Get("/user/applications", auth, h.Applications)
	r.Get("/user/recommendations", auth, h.Recommendations)
	r.Get("/:id", h.Get)

	r.Post("/", auth, admin, h.Create)
	r.Post("/apply/:id", auth, h.Apply)
}

func (h *JobHandler) List(c fiber.Ctx) error {
	res, err := h.uc.List(c.Context(), jobuc.ListParams{
		JobType:  c.Query("jobType"),
		WorkType: c.Query("workType"),
		City:     c.Query("city"),
		Page:     queryIntLenient(c, "page", 1),
		Limit:    queryIntLenient(c, "limit", 0),
	})
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.JobListResponse{
		Jobs:       dto.NewJobResponses(res.Jobs),
		Pagination: res.Pagination,
	})
}

func (h *JobHandler) Search(c fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "Search query is required", nil, nil)
	}
	experience, err := queryOptionalInt(c, "experience")
	if err != nil {
		return err
	}
	salary, err := queryOptionalInt64(c, "salary")
	if err != nil {
		return err
	}

	res, err := h.uc.Search(c.Context(), jobuc.SearchParams{
		Query:      q,
		Location:   c.Query("location"),
		Skills:     splitCSV(c.Query("skills")),
		Experience: experience,
		MinSalary:  salary,
	})
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.JobSearchResponse{
		Jobs:    dto.NewJobResponses(res.Jobs),
		Count:   res.Count,
		Query:   res.Query,
		Filters: res.Filters,
	})
}

func (h *JobHandler) Get(c fiber.Ctx) error {
	id, err := uuidParam(c, "id", "Job not found")
	if err != nil {
		return err
	}
	j, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(j))
}

func (h *JobHandler) Create(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req createJobRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	j, err := h.uc.Create(c.Context(), userID, jobuc.CreateInput{
		Title:            req.Title,
		Company:          req.Company,
		Description:      req.Description,
		Requirements:     req.Requirements,
		Responsibilities: req.Responsibilities,
		RequiredSkills:   req.RequiredSkills,
		PreferredSkills:  req.PreferredSkills,
		Location:         req.Location,
		Salary:           req.Salary,
		Experience:       req.Experience,
		Education:        req.Education,
		JobType:          req.JobType,
		Benefits:         req.Benefits,
		Deadline:         req.ApplicationDeadline,
		Featured:         req.Featured,
	})
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Job posted successfully", dto.NewJobResponse(j))
}

// Apply accepts either a multipart form with an optional "resume" file or a
// JSON body carrying a resume URL.
func (h *JobHandler) Apply(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "id", "Job not found")
	if err != nil {
		return err
	}

	in, err := applyInput(c)
	if err != nil {
		return err
	}

	res, err := h.uc.Apply(c.Context(), userID, jobID, in)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Application submitted successfully", res)
}

func applyInput(c fiber.Ctx) (jobuc.ApplyInput, error) {
	if strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEMultipartForm) {
		in := jobuc.ApplyInput{CoverLetter: c.FormValue("coverLetter"), ResumeURL: c.FormValue("resume")}
		fh, err := c.FormFile("resume")
		if err != nil {
			// No file part; the form may still carry a URL.
			return in, nil
		}
		if fh.Size > maxResumeUpload {
			return jobuc.ApplyInput{}, middleware.NewAppError(fiber.StatusBadRequest, "Resume must be 5MB or smaller", nil, nil)
		}
		f, err := fh.Open()
		if err != nil {
			return jobuc.ApplyInput{}, middleware.NewAppError(fiber.StatusBadRequest, "Invalid resume upload", nil, err)
		}
		defer f.Close()
		data, err := io.ReadAll(io.LimitReader(f, maxResumeUpload+1))
		if err != nil {
			return jobuc.ApplyInput{}, middleware.NewAppError(fiber.StatusBadRequest, "Invalid resume upload", nil, err)
		}
		in.Resume = &jobuc.ResumeFile{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get(fiber.HeaderContentType),
			Data:        data,
		}
		return in, nil
	}

	var req applyRequest
	if len(c.Body()) > 0 {
		if err := bindJSON(c, &req); err != nil {
			return jobuc.ApplyInput{}, err
		}
	}
	return jobuc.ApplyInput{CoverLetter: req.CoverLetter, ResumeURL: req.Resume}, nil
}

func (h *JobHandler) Applications(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	views, err := h.uc.Applications(c.Context(), userID)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationResponses(views))
}

func (h *JobHandler) Recommendations(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	recs, err := h.uc.Recommend(c.Context(), userID)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.JobRecommendationsResponse{
		Jobs:        dto.NewRecommendedJobs(recs.Items),
		UserProfile: recs.UserProfile,
	})
}

func mapJobUsecaseError(err error) error {
	switch {
	case errors.Is(err, jobuc.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	case errors.Is(err, jobuc.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, jobuc.ErrAlreadyApplied):
		return middleware.NewAppError(fiber.StatusBadRequest, "You have already applied for this job", nil, err)
	case errors.Is(err, jobuc.ErrDeadlinePassed):
		return middleware.NewAppError(fiber.StatusBadRequest, "Application deadline has passed", nil, err)
	case errors.Is(err, jobuc.ErrUploadUnavailable):
		return middleware.NewAppError(fiber.StatusBadRequest, "Resume upload is not available, provide a resume link instead", nil, err)
	default:
		return internalError(err)
	}
}
