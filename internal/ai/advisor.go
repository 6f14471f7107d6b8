package ai

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"groweasy/internal/domain/career"
	"groweasy/internal/domain/user"
	"groweasy/internal/logger"
)

// Responder is what the advisor needs from the chain.
type Responder interface {
	Respond(ctx context.Context, prompt string, opts ...Option) (Response, error)
}

// Advisor builds domain prompts on top of the response chain.
type Advisor struct {
	chain Responder
	log   *zap.Logger
}

func NewAdvisor(chain Responder, log *zap.Logger) *Advisor {
	return &Advisor{chain: chain, log: logger.Named(log, "ai.advisor")}
}

// AnalyzeProfile always returns a usable analysis. Model output that cannot
// be parsed is replaced by DefaultAnalysis.
func (a *Advisor) AnalyzeProfile(ctx context.Context, in ProfileInput) (career.Analysis, Source, error) {
	resp, err := a.chain.Respond(ctx, careerAnalysisPrompt(in),
		WithSystemPrompt(careerCounselorPrompt),
		WithMaxTokens(1000),
		WithTemperature(0.8),
	)
	if err != nil {
		return career.Analysis{}, 0, err
	}

	if resp.Source == SourceFallback {
		return DefaultAnalysis(), resp.Source, nil
	}

	analysis, perr := ParseAnalysis(resp.Text)
	if perr != nil {
		a.log.Warn("career analysis unparseable, using default",
			zap.String(logger.FieldProvider, resp.Source.String()),
			zap.String("sample", logger.Truncate(resp.Text, 200)),
			zap.Error(perr),
		)
		return DefaultAnalysis(), resp.Source, nil
	}
	return analysis, resp.Source, nil
}

func (a *Advisor) LearningRecommendations(ctx context.Context, p user.Profile, goals []string) (Response, error) {
	resp, err := a.chain.Respond(ctx, learningPrompt(p, goals),
		WithSystemPrompt(educationAdvisorPrompt),
		WithMaxTokens(600),
	)
	if err != nil {
		return Response{}, err
	}
	if resp.Source == SourceFallback || strings.TrimSpace(resp.Text) == "" {
		resp.Text = defaultLearningRecommendations
	}
	return resp, nil
}

func (a *Advisor) JobSearchTips(ctx context.Context, p user.Profile, prefs JobPreferences) (Response, error) {
	resp, err := a.chain.Respond(ctx, jobSearchPrompt(p, prefs),
		WithSystemPrompt(placementExpertPrompt),
		WithMaxTokens(500),
	)
	if err != nil {
		return Response{}, err
	}
	if resp.Source == SourceFallback || strings.TrimSpace(resp.Text) == "" {
		resp.Text = defaultJobSearchTips
	}
	return resp, nil
}

// Chat answers a free-form tutoring message with the student's profile as context.
func (a *Advisor) Chat(ctx context.Context, name string, p user.Profile, message, topic string) (Response, error) {
	return a.chain.Respond(ctx, message,
		WithSystemPrompt(tutorSystemPrompt(name, p, topic)),
		WithMaxTokens(300),
		WithTemperature(0.8),
	)
}
