// Package geocode resolves free-text place queries to coordinates. It
// talks to a Nominatim-compatible endpoint when one is configured and
// degrades to deterministic placeholder results when it is not, so address
// search keeps working in demo mode.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jessebautista/wpnew-sub000/internal/geo"
)

// MaxResults caps a single search.
const MaxResults = 5

const defaultEndpoint = "https://nominatim.openstreetmap.org/search"

// Result is one geocoding hit.
type Result struct {
	PlaceID     string    `json:"place_id"`
	DisplayName string    `json:"display_name"`
	Point       geo.Point `json:"point"`
}

// Service performs forward geocoding.
type Service struct {
	endpoint  string
	userAgent string
	client    *http.Client
	logger    *slog.Logger

	// live is false when no real endpoint should be called.
	live bool
}

// New builds a geocoding service. userAgent identifies the deployment to
// the upstream service, which Nominatim's usage policy requires; with an
// empty userAgent the service runs in mock-only mode.
func New(logger *slog.Logger, userAgent string) *Service {
	return &Service{
		endpoint:  defaultEndpoint,
		userAgent: userAgent,
		client:    &http.Client{Timeout: 10 * time.Second},
		logger:    logger,
		live:      userAgent != "",
	}
}

// nominatimRow mirrors the upstream response, which encodes numbers as
// strings.
type nominatimRow struct {
	PlaceID     json.Number `json:"place_id"`
	DisplayName string      `json:"display_name"`
	Lat         string      `json:"lat"`
	Lon         string      `json:"lon"`
}

// Search geocodes a free-text query. The context cancels an in-flight
// upstream call, which the address picker relies on when the user keeps
// typing.
func (s *Service) Search(ctx context.Context, query string) ([]Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if !s.live {
		return mockResults(query), nil
	}

	results, err := s.searchUpstream(ctx, query)
	if err != nil {
		// Cancellation is the caller's decision, not a degradation.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.Warn("geocoding upstream failed, serving mock results",
			"query", query, "error", err)
		return mockResults(query), nil
	}
	return results, nil
}

func (s *Service) searchUpstream(ctx context.Context, query string) ([]Result, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", strconv.Itoa(MaxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var rows []nominatimRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	out := make([]Result, 0, len(rows))
	for _, row := range rows {
		lat, latErr := strconv.ParseFloat(row.Lat, 64)
		lon, lonErr := strconv.ParseFloat(row.Lon, 64)
		if latErr != nil || lonErr != nil {
			continue
		}
		pt := geo.Point{Lat: lat, Lng: lon}
		if !pt.Valid() {
			continue
		}
		out = append(out, Result{
			PlaceID:     row.PlaceID.String(),
			DisplayName: row.DisplayName,
			Point:       pt,
		})
		if len(out) == MaxResults {
			break
		}
	}
	return out, nil
}

// GetCoordinates returns the best hit for a query, or nil when nothing
// matched.
func (s *Service) GetCoordinates(ctx context.Context, query string) (*geo.Point, error) {
	results, err := s.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	pt := results[0].Point
	return &pt, nil
}

// mockResults derives stable placeholder coordinates from the query text,
// so the same search always lands on the same spot on the demo map.
func mockResults(query string) []Result {
	h := fnv.New64a()
	h.Write([]byte(strings.ToLower(query)))
	sum := h.Sum64()

	lat := float64(sum%18000)/100.0 - 90.0
	lng := float64((sum/18000)%36000)/100.0 - 180.0
	return []Result{{
		PlaceID:     fmt.Sprintf("mock-%d", sum%1000000),
		DisplayName: query + " (approximate)",
		Point:       geo.Point{Lat: lat, Lng: lng},
	}}
}
