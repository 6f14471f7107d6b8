package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"groweasy/internal/config"
	"groweasy/internal/delivery/http/handler"
	"groweasy/internal/delivery/http/middleware"
	"groweasy/internal/delivery/http/routes"
	"groweasy/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// bodyLimit leaves room for a 5MB resume plus the rest of the form.
const bodyLimit = 6 << 20

type App struct {
	Fiber     *fiber.App
	container *Container
	limiters  *middleware.LimiterManager
}

// New builds the HTTP surface over an already wired container.
func New(c *Container) *App {
	cfg := c.Config
	f := fiber.New(fiber.Config{
		AppName:   cfg.App.AppName,
		BodyLimit: bodyLimit,
	})

	a := &App{Fiber: f, container: c}

	registerGlobalMiddleware(f, c)

	var rateLimit *middleware.RateLimitMiddleware
	if cfg.RateLimit.Enabled {
		a.limiters = middleware.NewLimiterManager(cfg.RateLimit.Requests, cfg.RateLimit.Window, c.Log)
		rateLimit = middleware.NewRateLimitMiddleware(a.limiters, c.Metrics)
	}

	reg := &routes.Registry{
		Health:    handler.NewHealthHandler(c.Chain, c.DB),
		Auth:      handler.NewAuthHandler(c.Auth),
		Users:     handler.NewUserHandler(c.Users),
		Jobs:      handler.NewJobHandler(c.Jobs),
		Courses:   handler.NewCourseHandler(c.Courses),
		AI:        handler.NewAIHandler(c.Assistant),
		WS:        ws.NewHandler(c.Hub),
		AuthMw:    middleware.NewAuthMiddleware(c.JWT),
		RateLimit: rateLimit,
		Metrics:   c.Metrics.Handler(),
	}
	reg.Register(f)

	return a
}

// Bootstrap wires the container and the HTTP app. cleanup releases both.
func Bootstrap(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	a := New(c)
	cleanup := func() error {
		if a.limiters != nil {
			a.limiters.Close()
		}
		return c.Close()
	}
	return a, cleanup, nil
}

// Container exposes the wired dependencies to callers that need direct access,
// such as the migrate step of integration tests.
func (a *App) Container() *Container { return a.container }

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(c.Log, c.Metrics).Middleware())
	app.Use(middleware.NewErrorMiddleware(c.Log).Middleware())
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (a *App) Run(ctx context.Context, addr string) error {
	hubCtx, stopHub := context.WithCancel(ctx)
	defer stopHub()
	go a.container.Hub.Run(hubCtx)
	if a.limiters != nil {
		a.limiters.Start()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Fiber.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
	}()
	a.container.Log.Info("http server listening", zap.String("addr", addr))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.Fiber.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
