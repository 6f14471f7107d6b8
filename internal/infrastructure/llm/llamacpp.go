package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"groweasy/internal/config"
	"groweasy/internal/logger"
)

// LlamaCPP talks to a llama.cpp server running next to the API. It only
// takes a single prompt string, so system text must be folded in by the caller.
type LlamaCPP struct {
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

type completionRequest struct {
	Prompt      string  `json:"prompt"`
	NPredict    int     `json:"n_predict"`
	Temperature float64 `json:"temperature"`
	Stream      bool    `json:"stream"`
}

type completionResponse struct {
	Content string `json:"content"`
}

// NewLlamaCPP probes the server once. An unreachable server returns an error
// and the local stage is left out for the life of the process.
func NewLlamaCPP(ctx context.Context, cfg config.LocalLLMConfig, log *zap.Logger) (*LlamaCPP, error) {
	if !cfg.Enabled {
		return nil, errors.New("local model disabled")
	}
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("local model base url is required")
	}

	l := &LlamaCPP{
		baseURL: base,
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		log: logger.Named(log, "llm.llamacpp"),
	}

	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := l.health(probeCtx); err != nil {
		return nil, fmt.Errorf("local model not ready: %w", err)
	}
	return l, nil
}

func (l *LlamaCPP) health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health returned %d", resp.StatusCode)
	}
	return nil
}

func (l *LlamaCPP) Prompt(ctx context.Context, fullPrompt string, maxTokens int, temperature float64) (string, error) {
	if l == nil {
		return "", errors.New("local model is not initialized")
	}

	body, err := json.Marshal(completionRequest{
		Prompt:      fullPrompt,
		NPredict:    maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.baseURL+"/completion", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("local completion: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("local completion returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode local completion: %w", err)
	}
	return strings.TrimSpace(out.Content), nil
}
