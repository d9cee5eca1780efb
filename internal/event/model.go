// Package event provides the community event model, repositories, and
// the calendar-view bucketing logic.
package event

import (
	"errors"
	"strings"
	"time"

	"github.com/jessebautista/wpnew-sub000/internal/content"
	"github.com/jessebautista/wpnew-sub000/internal/geo"
)

// Category is the closed set of event categories.
type Category string

const (
	CategoryConcert  Category = "concert"
	CategoryMeetup   Category = "meetup"
	CategoryFestival Category = "festival"
	CategoryWorkshop Category = "workshop"
	CategoryOther    Category = "other"
)

// ErrInvalidCategory is returned when a category is outside the closed set.
var ErrInvalidCategory = errors.New("invalid event category")

// ParseCategory validates a raw category string.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryConcert, CategoryMeetup, CategoryFestival, CategoryWorkshop, CategoryOther:
		return Category(s), nil
	}
	return "", ErrInvalidCategory
}

// Validation errors.
var (
	ErrTitleRequired      = errors.New("event title is required")
	ErrDateRequired       = errors.New("event date is required")
	ErrInvalidCoordinates = errors.New("latitude must be within -90..90 and longitude within -180..180")
)

// Lifecycle labels computed at read time from Date vs. now; never stored.
const (
	LifecycleUpcoming = "Upcoming"
	LifecycleToday    = "Today"
	LifecyclePast     = "Past Event"
)

// Event represents a community event, usually at or around a public piano.
type Event struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Date         time.Time  `json:"date"`
	LocationName string     `json:"location_name,omitempty"`
	Coordinates  *geo.Point `json:"coordinates,omitempty"`
	Category     Category   `json:"category"`
	Organizer    string     `json:"organizer,omitempty"`

	Verified         bool           `json:"verified"`
	ModerationStatus content.Status `json:"moderation_status"`
	VerifiedBy       *string        `json:"verified_by,omitempty"`

	CreatedBy     string `json:"created_by,omitempty"`
	AttendeeCount int    `json:"attendee_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks the submission-time invariants.
func (e *Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return ErrTitleRequired
	}
	if e.Date.IsZero() {
		return ErrDateRequired
	}
	if _, err := ParseCategory(string(e.Category)); err != nil {
		return err
	}
	if e.Coordinates != nil && !e.Coordinates.Valid() {
		return ErrInvalidCoordinates
	}
	return nil
}

// Lifecycle classifies the event against the given instant: events on the
// same calendar day (in now's location) are "Today", later dates are
// "Upcoming", earlier are "Past Event".
func (e *Event) Lifecycle(now time.Time) string {
	ey, em, ed := e.Date.In(now.Location()).Date()
	ny, nm, nd := now.Date()
	if ey == ny && em == nm && ed == nd {
		return LifecycleToday
	}
	if e.Date.After(now) {
		return LifecycleUpcoming
	}
	return LifecyclePast
}

// OnMap reports whether the event qualifies for map rendering.
func (e *Event) OnMap() bool {
	return e.Coordinates != nil && e.Coordinates.Valid()
}

// SearchFields returns the fields the list-page text search matches against.
func (e *Event) SearchFields() []string {
	return []string{e.Title, e.Description, e.LocationName, e.Organizer}
}
