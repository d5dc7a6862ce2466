package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// accessLog writes one record per request.
func accessLog(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				// Let echo write the error response so the status is final.
				c.Error(err)
			}

			status := c.Response().Status
			ev := log.Info()
			if status >= http.StatusInternalServerError {
				ev = log.Error()
			}
			ev.Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Int("status", status).
				Dur("latency", time.Since(start)).
				Str("remote", c.RealIP()).
				Msg("request")
			return nil
		}
	}
}

// limiterIdle is how long a client's bucket survives without requests.
const limiterIdle = 10 * time.Minute

type clientEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientLimiter hands out one token bucket per client address. Buckets idle
// for longer than idle are dropped on a later lookup.
type clientLimiter struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	idle      time.Duration
	now       func() time.Time
	lastSweep time.Time
	limits    map[string]*clientEntry
}

func newClientLimiter(perSecond float64, burst int) *clientLimiter {
	if burst < 1 {
		burst = 1
	}
	return &clientLimiter{
		limit:  rate.Limit(perSecond),
		burst:  burst,
		idle:   limiterIdle,
		now:    time.Now,
		limits: make(map[string]*clientEntry),
	}
}

func (cl *clientLimiter) get(key string) *rate.Limiter {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	now := cl.now()
	if now.Sub(cl.lastSweep) >= cl.idle {
		cl.sweep(now)
	}

	if e, ok := cl.limits[key]; ok {
		e.lastSeen = now
		return e.limiter
	}
	e := &clientEntry{limiter: rate.NewLimiter(cl.limit, cl.burst), lastSeen: now}
	cl.limits[key] = e
	return e.limiter
}

// sweep drops idle buckets. Callers hold cl.mu.
func (cl *clientLimiter) sweep(now time.Time) {
	for key, e := range cl.limits {
		if now.Sub(e.lastSeen) > cl.idle {
			delete(cl.limits, key)
		}
	}
	cl.lastSweep = now
}

// Len returns the number of tracked clients.
func (cl *clientLimiter) Len() int {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return len(cl.limits)
}

// Allow reports whether the client may make a request now.
func (cl *clientLimiter) Allow(key string) bool {
	return cl.get(key).Allow()
}

func rateLimit(cl *clientLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !cl.Allow(c.RealIP()) {
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
