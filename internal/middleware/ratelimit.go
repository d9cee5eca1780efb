package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// RateLimitConfig bounds how many requests a single key may make per window.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// Validate rejects configurations that would disable or break limiting.
func (c RateLimitConfig) Validate() error {
	if c.Requests <= 0 {
		return fmt.Errorf("rate limit requests must be positive, got %d", c.Requests)
	}
	if c.Window <= 0 {
		return fmt.Errorf("rate limit window must be positive, got %s", c.Window)
	}
	return nil
}

// Default rate limits. Auth endpoints get a tight budget since they are the
// usual brute-force target; search is capped below the global limit because
// each query fans out across content types.
var (
	DefaultGlobalLimit = RateLimitConfig{Requests: 100, Window: time.Minute}
	DefaultAuthLimit   = RateLimitConfig{Requests: 10, Window: time.Minute}
	DefaultSearchLimit = RateLimitConfig{Requests: 30, Window: time.Minute}
)

// RateLimitStore tracks request counts per key. Allow reports whether the
// request may proceed and how many requests remain in the current window.
type RateLimitStore interface {
	Allow(ctx context.Context, key string, cfg RateLimitConfig) (allowed bool, remaining int, err error)
}

type windowEntry struct {
	count   int
	resetAt time.Time
}

// InMemoryRateLimitStore is a fixed-window counter suitable for a single
// process. Multi-instance deployments should use RedisRateLimitStore so
// the window is shared.
type InMemoryRateLimitStore struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
	now     func() time.Time
}

func NewInMemoryRateLimitStore() *InMemoryRateLimitStore {
	return &InMemoryRateLimitStore{
		entries: make(map[string]*windowEntry),
		now:     time.Now,
	}
}

func (s *InMemoryRateLimitStore) Allow(_ context.Context, key string, cfg RateLimitConfig) (bool, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e, ok := s.entries[key]
	if !ok || now.After(e.resetAt) {
		e = &windowEntry{resetAt: now.Add(cfg.Window)}
		s.entries[key] = e
	}

	if e.count >= cfg.Requests {
		return false, 0, nil
	}
	e.count++
	return true, cfg.Requests - e.count, nil
}

// Cleanup drops expired windows. Call it periodically from a goroutine;
// the store works correctly without it but memory grows with key churn.
func (s *InMemoryRateLimitStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, e := range s.entries {
		if now.After(e.resetAt) {
			delete(s.entries, key)
		}
	}
}

// KeyFunc derives the rate-limit key from a request.
type KeyFunc func(r *http.Request) string

// IPKeyFunc keys on the client IP, stripping the port from RemoteAddr.
func IPKeyFunc(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}

// UserKeyFunc keys on the authenticated user when there is one and falls
// back to the client IP for anonymous requests.
func UserKeyFunc(r *http.Request) string {
	if id := GetUserID(r.Context()); id != "" {
		return "user:" + id
	}
	return IPKeyFunc(r)
}

// RateLimiter enforces cfg per key. Store errors fail open: the request
// proceeds and the error is logged, so a limiter outage never takes the
// API down with it.
func RateLimiter(store RateLimitStore, cfg RateLimitConfig, keyFn KeyFunc, logger *slog.Logger, metrics *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFn(r)
			allowed, remaining, err := store.Allow(r.Context(), key, cfg)
			if err != nil {
				logger.Warn("rate limit store error, allowing request",
					slog.String("key", key),
					slog.String("error", err.Error()))
				if metrics != nil {
					metrics.RateLimitStoreErrors.Inc()
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Requests))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

			if !allowed {
				if metrics != nil {
					metrics.RateLimitRejections.Inc()
				}
				SetErrorCode(r.Context(), "rate_limited")
				retryAfter := int(cfg.Window.Seconds())
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				fmt.Fprintf(w, `{"error":{"code":"rate_limited","message":"too many requests, retry after %d seconds"}}`, retryAfter)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
