package middleware

import (
	"sync"
	"time"

	"groweasy/internal/logger"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimitRecorder counts rejected requests.
type RateLimitRecorder interface {
	RateLimited()
}

// LimiterManager keeps one token bucket per client key. A full bucket holds
// the whole window's allowance and refills evenly across the window.
type LimiterManager struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	lastSeen map[string]time.Time
	rate     rate.Limit
	burst    int
	idle     time.Duration
	now      func() time.Time
	done     chan struct{}
	once     sync.Once
	log      *zap.Logger
}

func NewLimiterManager(requests int, window time.Duration, log *zap.Logger) *LimiterManager {
	if requests <= 0 {
		requests = 100
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &LimiterManager{
		limiters: make(map[string]*rate.Limiter),
		lastSeen: make(map[string]time.Time),
		rate:     rate.Limit(float64(requests) / window.Seconds()),
		burst:    requests,
		idle:     window,
		now:      time.Now,
		done:     make(chan struct{}),
		log:      logger.Named(log, "ratelimit"),
	}
}

// Start runs the eviction loop until Close is called.
func (m *LimiterManager) Start() {
	go m.cleanupRoutine(m.idle)
}

func (m *LimiterManager) limiter(key string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.limiters[key]
	if !ok {
		l = rate.NewLimiter(m.rate, m.burst)
		m.limiters[key] = l
	}
	m.lastSeen[key] = m.now()
	return l
}

func (m *LimiterManager) Allow(key string) bool {
	return m.limiter(key).AllowN(m.now(), 1)
}

func (m *LimiterManager) Size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.limiters)
}

func (m *LimiterManager) cleanupRoutine(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.cleanup(m.idle)
		case <-m.done:
			return
		}
	}
}

func (m *LimiterManager) cleanup(evictionAge time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for key, seen := range m.lastSeen {
		if now.Sub(seen) > evictionAge {
			delete(m.limiters, key)
			delete(m.lastSeen, key)
		}
	}
	m.log.Debug("rate limiter cleanup", zap.Int("remaining", len(m.limiters)))
}

func (m *LimiterManager) Close() {
	m.once.Do(func() { close(m.done) })
}

type RateLimitMiddleware struct {
	limiters *LimiterManager
	metrics  RateLimitRecorder
}

func NewRateLimitMiddleware(limiters *LimiterManager, metrics RateLimitRecorder) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiters: limiters, metrics: metrics}
}

// Middleware rejects a client IP with 429 once its allowance is spent.
func (m *RateLimitMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if m == nil || m.limiters == nil {
			return c.Next()
		}
		if m.limiters.Allow("ip:" + c.IP()) {
			return c.Next()
		}
		if m.metrics != nil {
			m.metrics.RateLimited()
		}
		m.limiters.log.Info("rate limit exceeded",
			zap.String("ip", c.IP()),
			zap.String("path", c.Path()),
			zap.String(logger.FieldRequestID, RequestID(c)),
		)
		return NewAppError(fiber.StatusTooManyRequests, "Too many requests from this IP, please try again later.", nil, nil)
	}
}
