// Package piano provides the public piano model and repositories.
package piano

import (
	"errors"
	"strings"
	"time"

	"github.com/jessebautista/wpnew-sub000/internal/content"
	"github.com/jessebautista/wpnew-sub000/internal/geo"
)

// Source records where a piano listing came from.
type Source string

const (
	SourceSingForHope   Source = "sing_for_hope"
	SourceUserSubmitted Source = "user_submitted"
)

// Categories a piano listing may carry. Free installations dominate the
// directory but indoor and seasonal listings exist too.
const (
	CategoryStreet   = "street"
	CategoryPark     = "park"
	CategoryAirport  = "airport"
	CategoryStation  = "station"
	CategoryIndoor   = "indoor"
	CategorySeasonal = "seasonal"
)

// Validation errors.
var (
	ErrTitleRequired      = errors.New("piano title is required")
	ErrInvalidCoordinates = errors.New("latitude must be within -90..90 and longitude within -180..180")
)

// Image is one entry of a piano's ordered image collection.
type Image struct {
	ID           string    `json:"id"`
	PianoID      string    `json:"piano_id"`
	ImageURL     string    `json:"image_url"`
	AltText      string    `json:"alt_text,omitempty"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

// Piano represents a public piano listing.
// Coordinates are optional: a piano without them is excluded from map
// rendering but remains valid for list rendering.
type Piano struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Statement     string     `json:"statement,omitempty"`
	LocationName  string     `json:"location_name,omitempty"`
	Coordinates   *geo.Point `json:"coordinates,omitempty"`
	ArtistName    string     `json:"artist_name,omitempty"`
	ArtistBio     string     `json:"artist_bio,omitempty"`
	ArtistWebsite string     `json:"artist_website,omitempty"`

	Category      string `json:"category,omitempty"`
	Condition     string `json:"condition,omitempty"`
	Accessibility string `json:"accessibility,omitempty"`
	Hours         string `json:"hours,omitempty"`

	Verified         bool           `json:"verified"`
	ModerationStatus content.Status `json:"moderation_status"`
	VerifiedBy       *string        `json:"verified_by,omitempty"`

	CreatedBy string  `json:"created_by,omitempty"`
	Source    Source  `json:"piano_source"`
	Images    []Image `json:"images,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks the submission-time invariants.
func (p *Piano) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return ErrTitleRequired
	}
	if p.Coordinates != nil && !p.Coordinates.Valid() {
		return ErrInvalidCoordinates
	}
	return nil
}

// OnMap reports whether the piano qualifies for map rendering.
func (p *Piano) OnMap() bool {
	return p.Coordinates != nil && p.Coordinates.Valid()
}

// SearchFields returns the fields the list-page text search matches against.
func (p *Piano) SearchFields() []string {
	return []string{p.Title, p.Statement, p.LocationName, p.ArtistName}
}
