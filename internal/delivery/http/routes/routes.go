package routes

import (
	"net/http"

	"groweasy/internal/delivery/http/handler"
	"groweasy/internal/delivery/http/middleware"
	"groweasy/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
)

// Registry holds everything the HTTP surface is built from.
type Registry struct {
	Health    *handler.HealthHandler
	Auth      *handler.AuthHandler
	Users     *handler.UserHandler
	Jobs      *handler.JobHandler
	Courses   *handler.CourseHandler
	AI        *handler.AIHandler
	WS        *ws.Handler
	AuthMw    *middleware.AuthMiddleware
	RateLimit *middleware.RateLimitMiddleware
	Metrics   http.Handler
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	if r.Health != nil {
		r.Health.RegisterRoutes(app)
	}
	if r.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(r.Metrics))
	}
	if r.WS != nil {
		app.Get("/ws/jobs", r.WS.HandleJobsWS)
	}

	api := app.Group("/api")
	if r.RateLimit != nil {
		api.Use(r.RateLimit.Middleware())
	}
	r.registerV1(api.Group("/v1"))
}
