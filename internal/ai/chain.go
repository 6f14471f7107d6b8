package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"groweasy/internal/logger"
)

const (
	tracerName = "groweasy/ai"

	DefaultMaxTokens    = 500
	DefaultTemperature  = 0.7
	DefaultSystemPrompt = "You are a helpful AI tutor for GrowEasyAI, an education platform for students in India. " +
		"Provide clear, encouraging, and practical advice."
)

var (
	// ErrExhausted means even the static stage produced nothing.
	ErrExhausted = errors.New("ai: every response stage failed")

	errEmptyResponse = errors.New("ai: empty response")
)

// RemoteProvider is a hosted model with a separate system-instruction channel.
type RemoteProvider interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float64) (string, error)
}

// LocalModel is an offline model that only accepts a single prompt string.
type LocalModel interface {
	Prompt(ctx context.Context, fullPrompt string, maxTokens int, temperature float64) (string, error)
}

// StageRecorder receives one observation per attempted stage.
type StageRecorder interface {
	ObserveStage(stage string, outcome string, d time.Duration)
}

// Config fixes the chain's providers for the life of the process. A nil
// provider means it was not configured or failed to initialize at startup.
type Config struct {
	Primary        RemoteProvider
	Local          LocalModel
	PrimaryTimeout time.Duration
	LocalTimeout   time.Duration
	Recorder       StageRecorder
	Logger         *zap.Logger
}

type Options struct {
	MaxTokens    int
	Temperature  float64
	SystemPrompt string
}

type Option func(*Options)

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxTokens = n
		}
	}
}

func WithTemperature(t float64) Option {
	return func(o *Options) {
		switch {
		case t < 0:
			o.Temperature = 0
		case t > 1:
			o.Temperature = 1
		default:
			o.Temperature = t
		}
	}
}

func WithSystemPrompt(s string) Option {
	return func(o *Options) {
		if strings.TrimSpace(s) != "" {
			o.SystemPrompt = s
		}
	}
}

func resolveOptions(opts []Option) Options {
	o := Options{
		MaxTokens:    DefaultMaxTokens,
		Temperature:  DefaultTemperature,
		SystemPrompt: DefaultSystemPrompt,
	}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

// Availability reports which model stages were set up at startup.
type Availability struct {
	Primary bool `json:"primary"`
	Local   bool `json:"local"`
}

// Chain answers prompts from the primary provider, then the local model, then
// canned text. It holds no mutable state and is safe for concurrent use.
type Chain struct {
	cfg Config
	log *zap.Logger
}

func NewChain(cfg Config) *Chain {
	return &Chain{cfg: cfg, log: logger.Named(cfg.Logger, "ai.chain")}
}

func (c *Chain) Availability() Availability {
	if c == nil {
		return Availability{}
	}
	return Availability{Primary: c.cfg.Primary != nil, Local: c.cfg.Local != nil}
}

// Respond never fails because a model failed; the only error is ErrExhausted.
func (c *Chain) Respond(ctx context.Context, prompt string, opts ...Option) (Response, error) {
	o := resolveOptions(opts)

	ctx, span := otel.Tracer(tracerName).Start(ctx, "ai.Respond")
	defer span.End()

	if c != nil && c.cfg.Primary != nil {
		text, err := c.attempt(ctx, SourcePrimary, c.cfg.PrimaryTimeout, func(ctx context.Context) (string, error) {
			return c.cfg.Primary.Complete(ctx, o.SystemPrompt, prompt, o.MaxTokens, o.Temperature)
		})
		if err == nil {
			return c.done(span, Response{Text: text, Source: SourcePrimary}), nil
		}
	} else {
		c.logger().Debug("primary provider not configured, skipping")
	}

	if c != nil && c.cfg.Local != nil {
		full := o.SystemPrompt + "\n\n" + prompt
		text, err := c.attempt(ctx, SourceLocal, c.cfg.LocalTimeout, func(ctx context.Context) (string, error) {
			return c.cfg.Local.Prompt(ctx, full, o.MaxTokens, o.Temperature)
		})
		if err == nil {
			return c.done(span, Response{Text: text, Source: SourceLocal}), nil
		}
	} else {
		c.logger().Debug("local model not loaded, skipping")
	}

	text := FallbackText(prompt)
	c.record(SourceFallback, "success", 0)
	if text == "" {
		span.SetStatus(codes.Error, ErrExhausted.Error())
		return Response{}, ErrExhausted
	}
	return c.done(span, Response{Text: text, Source: SourceFallback}), nil
}

func (c *Chain) attempt(ctx context.Context, stage Source, timeout time.Duration, fn func(context.Context) (string, error)) (string, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "ai.stage."+stage.String())
	defer span.End()

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := safeCall(ctx, fn)
	text = strings.TrimSpace(text)
	if err == nil && text == "" {
		err = errEmptyResponse
	}
	elapsed := time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.record(stage, "error", elapsed)
		c.logger().Warn("ai stage failed, falling through",
			zap.String(logger.FieldStage, stage.String()),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		return "", err
	}

	c.record(stage, "success", elapsed)
	return text, nil
}

func safeCall(ctx context.Context, fn func(context.Context) (string, error)) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("ai: provider panic: %v", r)
		}
	}()
	return fn(ctx)
}

func (c *Chain) done(span trace.Span, r Response) Response {
	span.SetAttributes(attribute.String("ai.provider", r.Source.String()))
	c.logger().Debug("ai response ready", zap.String(logger.FieldProvider, r.Source.String()))
	return r
}

func (c *Chain) record(stage Source, outcome string, d time.Duration) {
	if c == nil || c.cfg.Recorder == nil {
		return
	}
	c.cfg.Recorder.ObserveStage(stage.String(), outcome, d)
}

func (c *Chain) logger() *zap.Logger {
	if c == nil || c.log == nil {
		return zap.NewNop()
	}
	return c.log
}
