package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"groweasy/internal/config"
)

func newLlamaServer(t *testing.T, healthy bool, handle func(completionRequest) (int, string)) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if !healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	mux.HandleFunc("/completion", func(w http.ResponseWriter, r *http.Request) {
		var req completionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		status, body := handle(req)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestLlamaCPP_Prompt(t *testing.T) {
	var got completionRequest
	srv := newLlamaServer(t, true, func(req completionRequest) (int, string) {
		got = req
		return http.StatusOK, `{"content":"  Practice daily.  "}`
	})

	l, err := NewLlamaCPP(context.Background(), config.LocalLLMConfig{Enabled: true, BaseURL: srv.URL + "/", Timeout: time.Second}, nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	text, err := l.Prompt(context.Background(), "SYS\n\nhello", 300, 0.8)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if text != "Practice daily." {
		t.Fatalf("unexpected text: %q", text)
	}
	if got.Prompt != "SYS\n\nhello" || got.NPredict != 300 || got.Temperature != 0.8 || got.Stream {
		t.Fatalf("unexpected request: %+v", got)
	}
}

func TestLlamaCPP_ServerError(t *testing.T) {
	srv := newLlamaServer(t, true, func(completionRequest) (int, string) {
		return http.StatusInternalServerError, "model crashed"
	})
	l, err := NewLlamaCPP(context.Background(), config.LocalLLMConfig{Enabled: true, BaseURL: srv.URL}, nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := l.Prompt(context.Background(), "x", 10, 0.5); err == nil {
		t.Fatalf("expected error on 500")
	}
}

func TestNewLlamaCPP_NotReady(t *testing.T) {
	srv := newLlamaServer(t, false, nil)
	if _, err := NewLlamaCPP(context.Background(), config.LocalLLMConfig{Enabled: true, BaseURL: srv.URL}, nil); err == nil {
		t.Fatalf("expected error when health fails")
	}
	if _, err := NewLlamaCPP(context.Background(), config.LocalLLMConfig{Enabled: false, BaseURL: srv.URL}, nil); err == nil {
		t.Fatalf("expected error when disabled")
	}
	if _, err := NewLlamaCPP(context.Background(), config.LocalLLMConfig{Enabled: true}, nil); err == nil {
		t.Fatalf("expected error without base url")
	}
}

func TestBreaker_DisabledRunsDirectly(t *testing.T) {
	cb := newBreaker("test", config.CircuitBreakerConfig{Enabled: false}, nil)
	if cb != nil {
		t.Fatalf("expected nil breaker when disabled")
	}
	out, err := execute(cb, func() (string, error) { return "ok", nil })
	if err != nil || out != "ok" {
		t.Fatalf("unexpected: %q %v", out, err)
	}
}
