package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jessebautista/wpnew-sub000/internal/auth"
	"github.com/jessebautista/wpnew-sub000/internal/user"
)

func TestRequestIDGenerated(t *testing.T) {
	var got string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/pianos", nil))

	if got == "" {
		t.Fatal("expected a generated request id")
	}
	if rec.Header().Get("X-Request-ID") != got {
		t.Errorf("header %q does not match context id %q", rec.Header().Get("X-Request-ID"), got)
	}
}

func TestRequestIDPropagated(t *testing.T) {
	var got string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/pianos", nil)
	req.Header.Set("X-Request-ID", "upstream-id")
	h.ServeHTTP(httptest.NewRecorder(), req)

	if got != "upstream-id" {
		t.Errorf("got request id %q, want upstream-id", got)
	}
}

func TestErrorCodeRoundTrip(t *testing.T) {
	ctx := WithErrorCode(context.Background())
	SetErrorCode(ctx, "not_found")
	if got := GetErrorCode(ctx); got != "not_found" {
		t.Errorf("got %q, want not_found", got)
	}

	// Unprepared contexts are a no-op, not a panic.
	SetErrorCode(context.Background(), "ignored")
	if got := GetErrorCode(context.Background()); got != "" {
		t.Errorf("got %q from bare context, want empty", got)
	}
}

func TestInMemoryRateLimit(t *testing.T) {
	store := NewInMemoryRateLimitStore()
	cfg := RateLimitConfig{Requests: 3, Window: time.Minute}
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, remaining, err := store.Allow(ctx, "ip:1.2.3.4", cfg)
		if err != nil {
			t.Fatalf("Allow: %v", err)
		}
		if !allowed {
			t.Fatalf("request %d unexpectedly limited", i+1)
		}
		if want := 3 - (i + 1); remaining != want {
			t.Errorf("request %d: remaining = %d, want %d", i+1, remaining, want)
		}
	}

	allowed, _, err := store.Allow(ctx, "ip:1.2.3.4", cfg)
	if err != nil {
		t.Fatalf("Allow: %v", err)
	}
	if allowed {
		t.Error("fourth request should be limited")
	}

	// A different key has its own window.
	allowed, _, _ = store.Allow(ctx, "ip:5.6.7.8", cfg)
	if !allowed {
		t.Error("other key should not be limited")
	}
}

func TestInMemoryRateLimitWindowReset(t *testing.T) {
	store := NewInMemoryRateLimitStore()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	cfg := RateLimitConfig{Requests: 1, Window: time.Minute}
	ctx := context.Background()

	store.Allow(ctx, "k", cfg)
	if allowed, _, _ := store.Allow(ctx, "k", cfg); allowed {
		t.Fatal("second request in window should be limited")
	}

	now = now.Add(61 * time.Second)
	if allowed, _, _ := store.Allow(ctx, "k", cfg); !allowed {
		t.Error("request after window reset should be allowed")
	}
}

func TestRateLimiterRejects(t *testing.T) {
	store := NewInMemoryRateLimitStore()
	cfg := RateLimitConfig{Requests: 1, Window: time.Minute}
	logger := NewLogger("test")
	h := RateLimiter(store, cfg, IPKeyFunc, logger, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
	req.RemoteAddr = "9.9.9.9:1000"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first request: status %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: status %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header on 429")
	}
}

type failingStore struct{}

func (failingStore) Allow(context.Context, string, RateLimitConfig) (bool, int, error) {
	return false, 0, context.DeadlineExceeded
}

func TestRateLimiterFailsOpen(t *testing.T) {
	logger := NewLogger("test")
	h := RateLimiter(failingStore{}, DefaultGlobalLimit, IPKeyFunc, logger, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("store failure should fail open, got status %d", rec.Code)
	}
}

func TestRateLimitKeyFuncs(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:4242"

	if got := IPKeyFunc(req); got != "ip:10.0.0.1" {
		t.Errorf("IPKeyFunc = %q", got)
	}
	if got := UserKeyFunc(req); got != "ip:10.0.0.1" {
		t.Errorf("anonymous UserKeyFunc = %q", got)
	}

	req = req.WithContext(SetUserID(req.Context(), "u-1"))
	if got := UserKeyFunc(req); got != "user:u-1" {
		t.Errorf("authenticated UserKeyFunc = %q", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	cfg := DefaultCORSConfig([]string{"https://worldpianos.org"})
	h := CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("preflight should not reach the handler")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/pianos", nil)
	req.Header.Set("Origin", "https://worldpianos.org")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status %d, want 204", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://worldpianos.org" {
		t.Errorf("Allow-Origin = %q", got)
	}
	if rec.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Error("expected Allow-Methods on preflight")
	}
}

func TestCORSDisallowedOrigin(t *testing.T) {
	cfg := DefaultCORSConfig([]string{"https://worldpianos.org"})
	h := CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/pianos", nil)
	req.Header.Set("Origin", "https://evil.example")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("disallowed origin must not get CORS headers")
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/pianos", "/api/pianos"},
		{"/api/pianos/map", "/api/pianos/map"},
		{"/api/pianos/abc-123", "/api/pianos/{id}"},
		{"/api/pianos/abc-123/images", "/api/pianos/{id}/images"},
		{"/api/events/calendar", "/api/events/calendar"},
		{"/api/events/9f2", "/api/events/{id}"},
		{"/api/blog/9f2/comments", "/api/blog/{id}/comments"},
		{"/health", "/health"},
		{"/totally/unknown", "other"},
	}
	for _, tt := range tests {
		if got := normalizePath(tt.path); got != tt.want {
			t.Errorf("normalizePath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestAuthenticateAndRequireRole(t *testing.T) {
	jwt := auth.NewJWTService("test-secret-test-secret-test-secret")
	token, err := jwt.GenerateToken("u-7", user.RoleModerator)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	chain := Authenticate(jwt)(RequireRole(user.RoleModerator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUserID(r.Context()) != "u-7" {
			t.Errorf("user id = %q", GetUserID(r.Context()))
		}
		w.WriteHeader(http.StatusOK)
	})))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid token", "Bearer " + token, http.StatusOK},
		{"no token", "", http.StatusUnauthorized},
		{"garbage token", "Bearer nope", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/pianos/x/moderate", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			chain.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestRequireRoleInsufficient(t *testing.T) {
	jwt := auth.NewJWTService("test-secret-test-secret-test-secret")
	token, _ := jwt.GenerateToken("u-1", user.RoleUser)

	chain := Authenticate(jwt)(RequireRole(user.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("plain user must not reach admin handler")
	})))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("status %d, want 403", rec.Code)
	}
}
