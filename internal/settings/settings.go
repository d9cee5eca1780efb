// Package settings holds the administrator-editable site configuration:
// analytics toggles, SEO defaults, and AI-provider selection. One aggregate
// exists per deployment; updates are last-write-wins.
package settings

import (
	"context"
	"sync"
	"time"
)

// AnalyticsSettings configure the tracking integration.
type AnalyticsSettings struct {
	Enabled       bool   `json:"enabled"`
	MeasurementID string `json:"measurement_id,omitempty"`
}

// SEOSettings hold the site-wide metadata defaults.
type SEOSettings struct {
	DefaultTitle       string `json:"default_title,omitempty"`
	DefaultDescription string `json:"default_description,omitempty"`
	DefaultKeywords    string `json:"default_keywords,omitempty"`
	SitemapEnabled     bool   `json:"sitemap_enabled"`
}

// AISettings select the content-enhancement provider.
type AISettings struct {
	Enabled  bool   `json:"enabled"`
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
}

// Settings is the whole aggregate.
type Settings struct {
	Analytics AnalyticsSettings `json:"analytics"`
	SEO       SEOSettings       `json:"seo"`
	AI        AISettings        `json:"ai"`

	UpdatedAt time.Time `json:"updated_at"`
	UpdatedBy string    `json:"updated_by,omitempty"`
}

// Update carries the sections an admin wants to change; nil sections are
// left untouched.
type Update struct {
	Analytics *AnalyticsSettings `json:"analytics,omitempty"`
	SEO       *SEOSettings       `json:"seo,omitempty"`
	AI        *AISettings        `json:"ai,omitempty"`
}

// Defaults returns the settings a fresh deployment starts with.
func Defaults() Settings {
	return Settings{
		SEO: SEOSettings{
			DefaultTitle:       "WorldPianos - Find Public Pianos Near You",
			DefaultDescription: "A community directory of public pianos, events, and stories from around the world.",
			DefaultKeywords:    "public piano, street piano, piano map",
			SitemapEnabled:     true,
		},
		AI: AISettings{Provider: "openai", Model: "gpt-4o-mini"},
	}
}

// Service guards the aggregate. Each test constructs its own instance, so
// cases never observe each other's mutations.
type Service struct {
	mu      sync.RWMutex
	current Settings
	now     func() time.Time
}

// NewService starts from the given settings, usually Defaults().
func NewService(initial Settings) *Service {
	return &Service{current: initial, now: time.Now}
}

// Get returns a copy of the current aggregate.
func (s *Service) Get(_ context.Context) Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update shallow-merges the provided sections and stamps the audit fields.
func (s *Service) Update(_ context.Context, upd Update, updatedBy string) Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	if upd.Analytics != nil {
		s.current.Analytics = *upd.Analytics
	}
	if upd.SEO != nil {
		s.current.SEO = *upd.SEO
	}
	if upd.AI != nil {
		s.current.AI = *upd.AI
	}
	s.current.UpdatedAt = s.now().UTC()
	s.current.UpdatedBy = updatedBy
	return s.current
}
