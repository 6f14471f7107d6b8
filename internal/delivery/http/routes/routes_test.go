package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"groweasy/internal/delivery/http/handler"
	"groweasy/internal/delivery/http/middleware"
	"groweasy/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
)

func TestRegistry_ProtectsUserRoutes(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(nil).Middleware())

	reg := &Registry{
		Health:  handler.NewHealthHandler(nil, nil),
		Users:   handler.NewUserHandler(nil),
		Jobs:    handler.NewJobHandler(nil),
		Courses: handler.NewCourseHandler(nil),
		AI:      handler.NewAIHandler(nil),
		AuthMw:  middleware.NewAuthMiddleware(jwt.NewHMACService("a", "r", time.Minute, time.Hour)),
		Metrics: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("groweasy_up 1\n"))
		}),
	}
	reg.Register(app)

	protected := []struct{ method, path string }{
		{fiber.MethodGet, "/api/v1/users/me"},
		{fiber.MethodGet, "/api/v1/jobs/user/applications"},
		{fiber.MethodPost, "/api/v1/jobs"},
		{fiber.MethodPost, "/api/v1/courses/enroll/x"},
		{fiber.MethodPost, "/api/v1/ai/chat"},
	}
	for _, p := range protected {
		resp, err := app.Test(httptest.NewRequest(p.method, p.path, nil))
		if err != nil {
			t.Fatalf("%s %s: unexpected err: %v", p.method, p.path, err)
		}
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", p.method, p.path, resp.StatusCode)
		}
	}

	for _, path := range []string{"/health", "/api/v1/health", "/metrics"} {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil))
		if err != nil {
			t.Fatalf("%s: unexpected err: %v", path, err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, resp.StatusCode)
		}
	}
}
