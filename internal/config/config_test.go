package config

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_NAME", "groweasy")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("JWT_ACCESS_SECRET", "access")
	t.Setenv("JWT_REFRESH_SECRET", "refresh")
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_NAME", "")
	t.Setenv("DB_USER", "")
	t.Setenv("JWT_ACCESS_SECRET", "")
	t.Setenv("JWT_REFRESH_SECRET", "")

	_, err := Load()
	if !errors.Is(err, errMissingRequiredEnv) {
		t.Fatalf("expected errMissingRequiredEnv, got %v", err)
	}
	if !strings.Contains(err.Error(), "DB_HOST") || !strings.Contains(err.Error(), "JWT_ACCESS_SECRET") {
		t.Fatalf("expected missing keys in error, got %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.RateLimit.Requests != 100 || cfg.RateLimit.Window != 15*time.Minute {
		t.Fatalf("unexpected rate limit defaults: %+v", cfg.RateLimit)
	}
	if cfg.JWT.AccessExpiresIn != 15*time.Minute {
		t.Fatalf("unexpected access expiry: %s", cfg.JWT.AccessExpiresIn)
	}
	if cfg.AI.Primary.APIKey != "" {
		t.Fatalf("expected no primary api key by default")
	}
	if cfg.Storage.Enabled() {
		t.Fatalf("expected storage disabled without bucket")
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("ENABLE_AI", "true")
	t.Setenv("LLAMA_BASE_URL", "http://127.0.0.1:8081")
	t.Setenv("RATE_LIMIT_REQUESTS", "10")
	t.Setenv("RATE_LIMIT_WINDOW", "1m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.AI.Primary.APIKey != "key" {
		t.Fatalf("expected api key override")
	}
	if !cfg.AI.Local.Enabled || cfg.AI.Local.BaseURL != "http://127.0.0.1:8081" {
		t.Fatalf("unexpected local config: %+v", cfg.AI.Local)
	}
	if cfg.RateLimit.Requests != 10 || cfg.RateLimit.Window != time.Minute {
		t.Fatalf("unexpected rate limit: %+v", cfg.RateLimit)
	}
}

func TestLoad_InvalidRateLimit(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("RATE_LIMIT_REQUESTS", "0")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for zero rate limit")
	}
}
