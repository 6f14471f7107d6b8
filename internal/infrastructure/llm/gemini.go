package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"groweasy/internal/config"
	"groweasy/internal/logger"
)

const defaultGeminiModel = "gemini-2.5-flash"

// Gemini is the hosted primary provider. Each call is a single attempt;
// retrying is the chain's job, by moving on to the next stage.
type Gemini struct {
	client  *genai.Client
	model   string
	breaker *gobreaker.CircuitBreaker[string]
	log     *zap.Logger
}

func NewGemini(ctx context.Context, cfg config.AIConfig, log *zap.Logger) (*Gemini, error) {
	apiKey := strings.TrimSpace(cfg.Primary.APIKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	model := strings.TrimSpace(cfg.Primary.Model)
	if model == "" {
		model = defaultGeminiModel
	}

	l := logger.Named(log, "llm.gemini")
	return &Gemini{
		client:  client,
		model:   model,
		breaker: newBreaker("ai-primary", cfg.CircuitBreaker, l),
		log:     l,
	}, nil
}

func (g *Gemini) Complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float64) (string, error) {
	if g == nil || g.client == nil {
		return "", errors.New("gemini provider is not initialized")
	}

	gc := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(temperature)),
		MaxOutputTokens: int32(maxTokens),
	}
	if s := strings.TrimSpace(systemPrompt); s != "" {
		gc.SystemInstruction = genai.NewContentFromText(s, genai.RoleUser)
	}

	return execute(g.breaker, func() (string, error) {
		resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(userPrompt), gc)
		if err != nil {
			return "", fmt.Errorf("generate content: %w", err)
		}
		return collectText(resp)
	})
}

func collectText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", errors.New("gemini api returned no response")
	}

	var b strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.WriteString(text)
		}
	}

	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", errors.New("gemini api returned empty response")
	}
	return out, nil
}

func (g *Gemini) Model() string {
	if g == nil {
		return ""
	}
	return g.model
}
