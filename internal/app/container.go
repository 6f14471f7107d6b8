package app

import (
	"context"
	"errors"
	"time"

	"groweasy/internal/ai"
	"groweasy/internal/config"
	"groweasy/internal/database"
	dbpostgres "groweasy/internal/database/postgres"
	"groweasy/internal/infrastructure/broker"
	"groweasy/internal/infrastructure/cache"
	"groweasy/internal/infrastructure/llm"
	"groweasy/internal/infrastructure/storage"
	"groweasy/internal/metrics"
	"groweasy/internal/pkg/jwt"
	"groweasy/internal/repository"
	"groweasy/internal/usecase"
	"groweasy/internal/usecase/assistant"
	courseuc "groweasy/internal/usecase/course"
	jobuc "groweasy/internal/usecase/job"
	useruc "groweasy/internal/usecase/user"
	"groweasy/internal/ws"

	"go.uber.org/zap"
)

// Container owns every long-lived dependency of the server process.
type Container struct {
	Config  config.Config
	Log     *zap.Logger
	DB      database.DB
	Cache   *cache.Redis
	Broker  *broker.Publisher
	Metrics *metrics.Metrics
	Hub     *ws.Hub
	Chain   *ai.Chain
	JWT     jwt.Service

	Auth      *usecase.Auth
	Users     *useruc.Service
	Jobs      *jobuc.Service
	Courses   *courseuc.Service
	Assistant *assistant.Service
}

// NewContainer connects to PostgreSQL (required) and to the optional
// backends. Optional backends that are missing or unreachable are logged and
// left out.
func NewContainer(ctx context.Context, cfg config.Config, log *zap.Logger) (*Container, error) {
	if log == nil {
		log = zap.NewNop()
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, cfg.Database, log)
	if err != nil {
		return nil, err
	}

	c := &Container{
		Config:  cfg,
		Log:     log,
		DB:      db,
		Metrics: metrics.New(),
		JWT:     jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessExpiresIn, cfg.JWT.RefreshExpiresIn),
	}
	c.Cache = cache.NewRedis(ctx, cfg.Redis, log)
	c.Hub = ws.NewHub(log, c.Metrics)
	c.Chain = newChain(ctx, cfg, log, c.Metrics)

	var events usecase.EventPublisher
	if cfg.Broker.URL != "" {
		pub, err := broker.NewPublisher(cfg.Broker, log)
		if err != nil {
			log.Warn("event broker unavailable, events disabled", zap.Error(err))
		} else {
			c.Broker = pub
			events = pub
		}
	}

	var resumes jobuc.ResumeStore
	if cfg.Storage.Enabled() {
		store, err := storage.NewResumes(ctx, cfg.Storage)
		if err != nil {
			log.Warn("resume storage unavailable, uploads disabled", zap.Error(err))
		} else {
			resumes = store
		}
	}

	users := repository.NewPostgresUserRepository(db)
	jobs := repository.NewPostgresJobRepository(db)
	courses := repository.NewPostgresCourseRepository(db)

	c.Auth = usecase.NewAuthUsecase(users, c.JWT, log)
	c.Users = useruc.NewService(users)
	c.Jobs = jobuc.NewService(jobuc.Deps{
		Jobs:         jobs,
		Applications: repository.NewPostgresApplicationRepository(db),
		Users:        users,
		Cache:        c.Cache,
		Resumes:      resumes,
		Events:       events,
		Notifier:     ws.NewJobNotifier(c.Hub),
		Logger:       log,
	})
	c.Courses = courseuc.NewService(courseuc.Deps{
		Courses:     courses,
		Enrollments: repository.NewPostgresEnrollmentRepository(db),
		Users:       users,
		Cache:       c.Cache,
		Events:      events,
		Logger:      log,
	})
	c.Assistant = assistant.NewService(assistant.Deps{
		Advisor:  ai.NewAdvisor(c.Chain, log),
		Users:    users,
		Profiles: repository.NewPostgresCareerProfileRepository(db),
		Courses:  courses,
		Events:   events,
		Logger:   log,
	})

	return c, nil
}

// newChain wires whichever model providers can be built. Availability is fixed
// from here on.
func newChain(ctx context.Context, cfg config.Config, log *zap.Logger, rec ai.StageRecorder) *ai.Chain {
	chainCfg := ai.Config{
		PrimaryTimeout: cfg.AI.Primary.Timeout,
		LocalTimeout:   cfg.AI.Local.Timeout,
		Recorder:       rec,
		Logger:         log,
	}

	if cfg.AI.Primary.APIKey != "" {
		gemini, err := llm.NewGemini(ctx, cfg.AI, log)
		if err != nil {
			log.Warn("primary model unavailable", zap.Error(err))
		} else {
			chainCfg.Primary = gemini
		}
	}
	if cfg.AI.Local.Enabled {
		local, err := llm.NewLlamaCPP(ctx, cfg.AI.Local, log)
		if err != nil {
			log.Warn("local model unavailable", zap.Error(err))
		} else {
			chainCfg.Local = local
		}
	}

	chain := ai.NewChain(chainCfg)
	avail := chain.Availability()
	log.Info("ai providers configured", zap.Bool("primary", avail.Primary), zap.Bool("local", avail.Local))
	return chain
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Broker != nil {
		errs = append(errs, c.Broker.Close())
	}
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
