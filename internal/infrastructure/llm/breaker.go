package llm

import (
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"groweasy/internal/config"
)

// newBreaker returns nil when the breaker is disabled; a nil breaker runs calls directly.
func newBreaker(name string, cfg config.CircuitBreakerConfig, log *zap.Logger) *gobreaker.CircuitBreaker[string] {
	if !cfg.Enabled {
		return nil
	}
	if log == nil {
		log = zap.NewNop()
	}

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests == 0 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= cfg.MinRequests && failureRatio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Info("circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}
	return gobreaker.NewCircuitBreaker[string](settings)
}

func execute(cb *gobreaker.CircuitBreaker[string], fn func() (string, error)) (string, error) {
	if cb == nil {
		return fn()
	}
	return cb.Execute(fn)
}
