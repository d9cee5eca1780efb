package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// staticRoutes maps exact paths straight to their metric label.
var staticRoutes = map[string]string{
	"/health":              "/health",
	"/metrics":             "/metrics",
	"/api/pianos":          "/api/pianos",
	"/api/pianos/map":      "/api/pianos/map",
	"/api/events":          "/api/events",
	"/api/events/calendar": "/api/events/calendar",
	"/api/blog":            "/api/blog",
	"/api/comments":        "/api/comments",
	"/api/reports":         "/api/reports",
	"/api/search":          "/api/search",
	"/api/stats":           "/api/stats",
	"/api/newsletter":      "/api/newsletter",
	"/api/geocode":         "/api/geocode",
	"/api/ai/enhance":      "/api/ai/enhance",
	"/api/settings":        "/api/settings",
	"/api/settings/seo":    "/api/settings/seo",
	"/api/admin/stats":     "/api/admin/stats",
	"/api/admin/activity":  "/api/admin/activity",
}

// idPrefixes are routes whose next segment is a resource id; the id is
// replaced with {id} to keep metric cardinality bounded.
var idPrefixes = []string{
	"/api/pianos/",
	"/api/events/",
	"/api/blog/",
	"/api/comments/",
	"/api/reports/",
}

// normalizePath collapses per-resource paths into route templates so
// Prometheus labels stay low-cardinality.
func normalizePath(path string) string {
	if route, ok := staticRoutes[path]; ok {
		return route
	}
	for _, prefix := range idPrefixes {
		if rest, ok := strings.CutPrefix(path, prefix); ok {
			if i := strings.IndexByte(rest, '/'); i >= 0 {
				return prefix + "{id}/" + rest[i+1:]
			}
			return prefix + "{id}"
		}
	}
	return "other"
}

// HTTPMetrics observes request count, latency and response size per route.
func HTTPMetrics(m *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &responseWriter{ResponseWriter: w}

			next.ServeHTTP(rw, r)

			status := rw.status
			if status == 0 {
				status = http.StatusOK
			}
			route := normalizePath(r.URL.Path)

			m.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
			m.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
			m.HTTPResponseSize.WithLabelValues(route).Observe(float64(rw.bytes))
		})
	}
}
