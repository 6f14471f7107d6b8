package routes

import (
	"groweasy/internal/delivery/http/middleware"
	"groweasy/internal/domain/user"

	"github.com/gofiber/fiber/v3"
)

func (r *Registry) registerV1(v1 fiber.Router) {
	if v1 == nil {
		return
	}

	if r.Health != nil {
		r.Health.RegisterRoutes(v1)
	}
	if r.Auth != nil {
		r.Auth.RegisterRoutes(v1.Group("/auth"))
	}
	if r.AuthMw == nil {
		return
	}

	auth := r.AuthMw.Middleware()
	admin := middleware.RequireRole(user.RoleAdmin)

	if r.Users != nil {
		r.Users.RegisterRoutes(v1.Group("/users", auth))
	}
	if r.Jobs != nil {
		r.Jobs.RegisterRoutes(v1.Group("/jobs"), auth, admin)
	}
	if r.Courses != nil {
		r.Courses.RegisterRoutes(v1.Group("/courses"), auth)
	}
	if r.AI != nil {
		r.AI.RegisterRoutes(v1.Group("/ai", auth))
	}
}
