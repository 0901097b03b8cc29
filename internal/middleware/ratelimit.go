package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/time-tracker-api/internal/config"
	"github.com/iliyamo/time-tracker-api/internal/problem"
)

// apiPrefix marks the paths the limiter cares about. Requests outside
// the API surface (health probes, token issuing, metrics) are never
// throttled.
const apiPrefix = "/api"

// AccessLimiter spaces out requests per bearer token: once a token is
// seen, further requests carrying the same token are rejected until
// the cooldown has passed. State lives in process memory, so limits
// are per instance, not global across replicas.
//
// With RestampOnReject enabled (the default), a rejected request also
// refreshes the token's timestamp. A client that keeps retrying inside
// the cooldown therefore stays locked out until it backs off for a
// full cooldown, not merely until the original window expires.
type AccessLimiter struct {
	mu       sync.Mutex
	lastSeen map[string]time.Time

	cooldown time.Duration
	maxIdle  time.Duration
	restamp  bool

	now func() time.Time
}

// NewAccessLimiter builds a limiter from cfg. The config loader has
// already clamped MaxIdle to at least the cooldown; the constructor
// re-applies the clamp so a hand-built config cannot weaken it.
func NewAccessLimiter(cfg config.RateLimitConfig) *AccessLimiter {
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 5 * time.Second
	}
	if cfg.MaxIdle < cfg.Cooldown {
		cfg.MaxIdle = cfg.Cooldown
	}
	return &AccessLimiter{
		lastSeen: make(map[string]time.Time),
		cooldown: cfg.Cooldown,
		maxIdle:  cfg.MaxIdle,
		restamp:  cfg.RestampOnReject,
		now:      time.Now,
	}
}

// Allow records a request for token and reports whether it may
// proceed. The first sighting of a token always passes; after that a
// request passes only when at least the cooldown has elapsed since the
// stamp on record.
func (l *AccessLimiter) Allow(token string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	last, seen := l.lastSeen[token]
	if seen && now.Sub(last) < l.cooldown {
		if l.restamp {
			l.lastSeen[token] = now
		}
		return false
	}
	l.lastSeen[token] = now
	return true
}

// Middleware applies the limiter to API requests. Paths outside the
// API surface and requests without a bearer token pass through
// untouched; the token validator ahead of this middleware is the one
// that turns those away.
func (l *AccessLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !strings.Contains(c.Request().URL.Path, apiPrefix) {
				return next(c)
			}
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return next(c)
			}
			if l.Allow(token) {
				return next(c)
			}
			c.Response().Header().Set("Retry-After", strconv.Itoa(int(l.cooldown/time.Second)))
			return c.JSON(http.StatusTooManyRequests, problem.New(
				http.StatusTooManyRequests,
				"Limit reached",
				fmt.Sprintf("Requests with the same token are allowed once every %s.", l.cooldown),
				c.Request().URL.Path,
			))
		}
	}
}

// Sweep drops entries idle for at least MaxIdle and reports how many
// were removed. Because MaxIdle is never below the cooldown, an entry
// old enough to be swept would have been allowed through anyway, so
// eviction never changes a limiting decision.
func (l *AccessLimiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for token, last := range l.lastSeen {
		if now.Sub(last) >= l.maxIdle {
			delete(l.lastSeen, token)
			removed++
		}
	}
	return removed
}

// StartSweep runs Sweep on a ticker until ctx is canceled, keeping the
// map from holding every token ever seen.
func (l *AccessLimiter) StartSweep(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.Sweep()
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Len reports how many tokens the limiter currently tracks.
func (l *AccessLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.lastSeen)
}
