// Package listing implements the shared list-page mechanics: text search,
// composable filters, timeframe matching, and pagination. The helpers are
// generic so pianos, events, and blog posts share one implementation.
package listing

import (
	"errors"
	"strings"
	"time"
)

// Searchable is implemented by content models that expose their
// text-searchable fields.
type Searchable interface {
	SearchFields() []string
}

// Search keeps the items whose search fields contain the query,
// case-insensitively. An empty or whitespace query keeps everything.
func Search[T Searchable](items []T, query string) []T {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return items
	}
	var out []T
	for _, item := range items {
		for _, field := range item.SearchFields() {
			if strings.Contains(strings.ToLower(field), query) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// Filter keeps the items every predicate accepts. Predicates are
// independent, so applying them in any order yields the same result.
func Filter[T any](items []T, predicates ...func(T) bool) []T {
	if len(predicates) == 0 {
		return items
	}
	var out []T
outer:
	for _, item := range items {
		for _, keep := range predicates {
			if !keep(item) {
				continue outer
			}
		}
		out = append(out, item)
	}
	return out
}

// Page is one slice of a larger result set.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// DefaultPerPage is used when a page size is missing or out of range.
const DefaultPerPage = 12

// MaxPerPage caps client-requested page sizes.
const MaxPerPage = 100

// Paginate slices items into the requested page. Page numbers are 1-based;
// out-of-range values are clamped rather than rejected, so every item in
// the input appears on exactly one page.
func Paginate[T any](items []T, page, perPage int) Page[T] {
	if perPage < 1 || perPage > MaxPerPage {
		perPage = DefaultPerPage
	}
	total := len(items)
	totalPages := (total + perPage - 1) / perPage
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * perPage
	end := start + perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	return Page[T]{
		Items:      items[start:end],
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Timeframe selects events relative to now.
type Timeframe string

const (
	TimeframeAll       Timeframe = "all"
	TimeframeUpcoming  Timeframe = "upcoming"
	TimeframeToday     Timeframe = "today"
	TimeframeThisWeek  Timeframe = "this_week"
	TimeframeThisMonth Timeframe = "this_month"
	TimeframePast      Timeframe = "past"
)

// ErrInvalidTimeframe is returned for timeframes outside the closed set.
var ErrInvalidTimeframe = errors.New("invalid timeframe")

// ParseTimeframe validates a raw timeframe string; empty means all.
func ParseTimeframe(s string) (Timeframe, error) {
	if s == "" {
		return TimeframeAll, nil
	}
	switch Timeframe(s) {
	case TimeframeAll, TimeframeUpcoming, TimeframeToday, TimeframeThisWeek, TimeframeThisMonth, TimeframePast:
		return Timeframe(s), nil
	}
	return "", ErrInvalidTimeframe
}

// MatchTimeframe reports whether an instant falls inside the timeframe,
// judged against now. Weeks run Sunday through Saturday; "today" and the
// calendar ranges use now's location.
func MatchTimeframe(tf Timeframe, t, now time.Time) bool {
	loc := now.Location()
	t = t.In(loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	switch tf {
	case TimeframeAll, "":
		return true
	case TimeframeUpcoming:
		return !t.Before(dayStart)
	case TimeframeToday:
		return !t.Before(dayStart) && t.Before(dayStart.AddDate(0, 0, 1))
	case TimeframeThisWeek:
		weekStart := dayStart.AddDate(0, 0, -int(dayStart.Weekday()))
		return !t.Before(weekStart) && t.Before(weekStart.AddDate(0, 0, 7))
	case TimeframeThisMonth:
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		return !t.Before(monthStart) && t.Before(monthStart.AddDate(0, 1, 0))
	case TimeframePast:
		return t.Before(dayStart)
	}
	return false
}
