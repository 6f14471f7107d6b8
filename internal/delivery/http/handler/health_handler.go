package handler

import (
	"context"
	"time"

	"groweasy/internal/ai"
	"groweasy/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type AIStatus interface {
	Availability() ai.Availability
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	ai  AIStatus
	db  Pinger
	now func() time.Time
}

type healthResponse struct {
	Status    string          `json:"status"`
	Database  string          `json:"database"`
	AI        ai.Availability `json:"ai"`
	Timestamp time.Time       `json:"timestamp"`
}

func NewHealthHandler(aiStatus AIStatus, db Pinger) *HealthHandler {
	return &HealthHandler{ai: aiStatus, db: db, now: time.Now}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

// Health is a liveness probe; a failing database degrades the status but not the code.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	out := healthResponse{Status: "ok", Database: "unknown", Timestamp: h.now().UTC()}
	if h.ai != nil {
		out.AI = h.ai.Availability()
	}
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			out.Status = "degraded"
			out.Database = "down"
		} else {
			out.Database = "up"
		}
	}
	return response.Success(c, fiber.StatusOK, "GrowEasy API is running", out)
}
