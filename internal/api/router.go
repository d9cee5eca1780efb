package api

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jessebautista/wpnew-sub000/internal/auth"
	"github.com/jessebautista/wpnew-sub000/internal/middleware"
	"github.com/jessebautista/wpnew-sub000/internal/user"
)

// RouterConfig carries every handler group plus the cross-cutting pieces
// the route table needs.
type RouterConfig struct {
	Pianos     *PianoHandlers
	Events     *EventHandlers
	Blog       *BlogHandlers
	Comments   *CommentHandlers
	Reports    *ReportHandlers
	Admin      *AdminHandlers
	Settings   *SettingsHandlers
	AI         *AIHandlers
	Geocode    *GeocodeHandlers
	Uploads    *UploadHandlers
	Newsletter *NewsletterHandlers
	Search     *SearchHandlers
	Health     *HealthHandlers

	JWT            *auth.JWTService
	RateLimitStore middleware.RateLimitStore
	Metrics        *middleware.Metrics
	Registry       *prometheus.Registry
	AllowedOrigins []string
	Logger         *slog.Logger
}

// NewRouter builds the complete handler chain. Mutating routes require a
// session; moderation and admin routes are role-gated on top of that.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	requireUser := middleware.RequireRole(user.RoleUser)
	requireModerator := middleware.RequireRole(user.RoleModerator)
	requireAdmin := middleware.RequireRole(user.RoleAdmin)
	searchLimit := middleware.RateLimiter(cfg.RateLimitStore, middleware.DefaultSearchLimit, middleware.UserKeyFunc, cfg.Logger, cfg.Metrics)

	// Operational endpoints.
	mux.HandleFunc("GET /health", cfg.Health.Health)
	mux.Handle("GET /metrics", promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{}))

	// Pianos.
	mux.HandleFunc("GET /api/pianos", cfg.Pianos.List)
	mux.HandleFunc("GET /api/pianos/map", cfg.Pianos.Map)
	mux.HandleFunc("GET /api/pianos/{id}", cfg.Pianos.Get)
	mux.Handle("POST /api/pianos", requireUser(http.HandlerFunc(cfg.Pianos.Create)))
	mux.Handle("POST /api/pianos/{id}/moderate", requireModerator(http.HandlerFunc(cfg.Pianos.Moderate)))
	mux.Handle("DELETE /api/pianos/{id}", requireModerator(http.HandlerFunc(cfg.Pianos.Delete)))
	mux.Handle("POST /api/pianos/{id}/images", requireUser(http.HandlerFunc(cfg.Uploads.PianoImage)))

	// Events.
	mux.HandleFunc("GET /api/events", cfg.Events.List)
	mux.HandleFunc("GET /api/events/calendar", cfg.Events.Calendar)
	mux.HandleFunc("GET /api/events/{id}", cfg.Events.Get)
	mux.Handle("POST /api/events", requireUser(http.HandlerFunc(cfg.Events.Create)))
	mux.Handle("POST /api/events/{id}/moderate", requireModerator(http.HandlerFunc(cfg.Events.Moderate)))
	mux.Handle("DELETE /api/events/{id}", requireModerator(http.HandlerFunc(cfg.Events.Delete)))
	mux.HandleFunc("POST /api/events/{id}/attend", cfg.Events.Attend)

	// Blog.
	mux.HandleFunc("GET /api/blog", cfg.Blog.List)
	mux.HandleFunc("GET /api/blog/{id}", cfg.Blog.Get)
	mux.Handle("POST /api/blog", requireUser(http.HandlerFunc(cfg.Blog.Create)))
	mux.Handle("POST /api/blog/{id}/moderate", requireModerator(http.HandlerFunc(cfg.Blog.Moderate)))
	mux.Handle("DELETE /api/blog/{id}", requireModerator(http.HandlerFunc(cfg.Blog.Delete)))

	// Comments. Creation is open to anonymous sessions.
	mux.HandleFunc("GET /api/comments", cfg.Comments.List)
	mux.HandleFunc("POST /api/comments", cfg.Comments.Create)
	mux.Handle("POST /api/comments/{id}/moderate", requireModerator(http.HandlerFunc(cfg.Comments.Moderate)))
	mux.Handle("DELETE /api/comments/{id}", requireModerator(http.HandlerFunc(cfg.Comments.Delete)))

	// Reports.
	mux.Handle("POST /api/reports", requireUser(http.HandlerFunc(cfg.Reports.Create)))
	mux.Handle("GET /api/reports", requireModerator(http.HandlerFunc(cfg.Reports.List)))
	mux.Handle("POST /api/reports/{id}/status", requireModerator(http.HandlerFunc(cfg.Reports.SetStatus)))

	// Search, stats, geocode.
	mux.Handle("GET /api/search", searchLimit(http.HandlerFunc(cfg.Search.Search)))
	mux.HandleFunc("GET /api/stats", cfg.Search.Stats)
	mux.Handle("GET /api/geocode", searchLimit(http.HandlerFunc(cfg.Geocode.Search)))

	// AI.
	mux.Handle("POST /api/ai/enhance", requireUser(http.HandlerFunc(cfg.AI.Enhance)))
	mux.HandleFunc("GET /api/ai/structured", cfg.AI.StructuredData)

	// Settings.
	mux.HandleFunc("GET /api/settings", cfg.Settings.Get)
	mux.Handle("PUT /api/settings", requireAdmin(http.HandlerFunc(cfg.Settings.Update)))
	mux.HandleFunc("POST /api/settings/seo", cfg.Settings.AnalyzeSEO)

	// Newsletter.
	mux.HandleFunc("POST /api/newsletter", cfg.Newsletter.Subscribe)
	mux.HandleFunc("DELETE /api/newsletter", cfg.Newsletter.Unsubscribe)

	// Admin dashboard.
	mux.Handle("GET /api/admin/stats", requireAdmin(http.HandlerFunc(cfg.Admin.Stats)))
	mux.Handle("GET /api/admin/activity", requireAdmin(http.HandlerFunc(cfg.Admin.Activity)))

	// Outer chain, innermost listed last.
	var handler http.Handler = mux
	handler = middleware.RateLimiter(cfg.RateLimitStore, middleware.DefaultGlobalLimit, middleware.IPKeyFunc, cfg.Logger, cfg.Metrics)(handler)
	handler = middleware.Authenticate(cfg.JWT)(handler)
	handler = middleware.HTTPMetrics(cfg.Metrics)(handler)
	handler = middleware.CORS(middleware.DefaultCORSConfig(cfg.AllowedOrigins))(handler)
	handler = middleware.Logging(cfg.Logger)(handler)
	handler = middleware.RequestID(handler)
	return handler
}
