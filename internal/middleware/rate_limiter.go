package middleware

import (
	"context"
	"sync"
	"time"

	"mcq-quiz/internal/config"
	"mcq-quiz/internal/domain"
	"mcq-quiz/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// visitor pairs a client's limiter with its last request time for cleanup.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type ipRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
}

func (l *ipRateLimiter) allow(key string, now time.Time) bool {
	l.mu.Lock()
	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	l.mu.Unlock()

	return v.limiter.AllowN(now, 1)
}

func (l *ipRateLimiter) evictIdle(now time.Time, expiry time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	evicted := 0
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) > expiry {
			delete(l.visitors, key)
			evicted++
		}
	}
	return evicted
}

// RateLimiter limits each client IP to cfg.Requests per cfg.Window.
// Idle clients are forgotten until ctx is cancelled. A non-positive
// cfg.Requests disables limiting.
func RateLimiter(ctx context.Context, cfg config.RateLimitConfig) fiber.Handler {
	if cfg.Requests <= 0 || cfg.Window <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}

	l := &ipRateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Every(cfg.Window / time.Duration(cfg.Requests)),
		burst:    cfg.Requests,
	}

	expiry := cfg.Window * 3
	if expiry < time.Minute {
		expiry = time.Minute
	}
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if n := l.evictIdle(now, expiry); n > 0 {
					logger.Get().Debug("Evicted idle rate limiter entries", zap.Int("count", n))
				}
			}
		}
	}()

	return func(c *fiber.Ctx) error {
		if !l.allow(c.IP(), time.Now()) {
			logger.Get().Warn("Rate limit exceeded",
				zap.String("ip", c.IP()),
				zap.String("path", c.Path()))
			return domain.NewRateLimitedError()
		}
		return c.Next()
	}
}
