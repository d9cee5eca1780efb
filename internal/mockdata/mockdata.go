// Package mockdata provides the built-in demo dataset the application
// serves when no database or external data service is configured. Fixtures
// are loaded into the in-memory repositories so the full API surface works
// offline, and mock writes append to the same stores for the life of the
// process.
package mockdata

import (
	"context"
	"fmt"
	"time"

	"github.com/jessebautista/wpnew-sub000/internal/blog"
	"github.com/jessebautista/wpnew-sub000/internal/comment"
	"github.com/jessebautista/wpnew-sub000/internal/content"
	"github.com/jessebautista/wpnew-sub000/internal/event"
	"github.com/jessebautista/wpnew-sub000/internal/geo"
	"github.com/jessebautista/wpnew-sub000/internal/newsletter"
	"github.com/jessebautista/wpnew-sub000/internal/piano"
	"github.com/jessebautista/wpnew-sub000/internal/report"
	"github.com/jessebautista/wpnew-sub000/internal/user"
)

// Latency is added to mock reads by callers that want the demo mode to
// feel like a network-backed service.
const Latency = 300 * time.Millisecond

// Store bundles pre-seeded in-memory repositories for every content type.
type Store struct {
	Users      *user.InMemoryRepository
	Pianos     *piano.InMemoryRepository
	Events     *event.InMemoryRepository
	Posts      *blog.InMemoryRepository
	Comments   *comment.InMemoryRepository
	Reports    *report.InMemoryRepository
	Newsletter *newsletter.InMemoryRepository
}

// NewStore creates the demo dataset. Seeding only fails on a programming
// error in the fixtures, so the error is worth surfacing loudly.
func NewStore() (*Store, error) {
	s := &Store{
		Users:      user.NewInMemoryRepository(),
		Pianos:     piano.NewInMemoryRepository(),
		Events:     event.NewInMemoryRepository(),
		Posts:      blog.NewInMemoryRepository(),
		Comments:   comment.NewInMemoryRepository(),
		Reports:    report.NewInMemoryRepository(),
		Newsletter: newsletter.NewInMemoryRepository(),
	}
	if err := s.seed(); err != nil {
		return nil, fmt.Errorf("seed mock data: %w", err)
	}
	return s, nil
}

func (s *Store) seed() error {
	c := context.Background()
	for _, u := range Users() {
		if err := s.Users.Create(c, &u); err != nil {
			return err
		}
	}
	for _, p := range Pianos() {
		if err := s.Pianos.Create(c, &p); err != nil {
			return err
		}
	}
	for _, ev := range Events() {
		if err := s.Events.Create(c, &ev); err != nil {
			return err
		}
	}
	for _, post := range BlogPosts() {
		if err := s.Posts.Create(c, &post); err != nil {
			return err
		}
	}
	for _, cm := range Comments() {
		if err := s.Comments.Create(c, &cm); err != nil {
			return err
		}
	}
	return nil
}

// Users returns the demo accounts: one of each role.
func Users() []user.User {
	return []user.User{
		{
			ID:       "mock-user-1",
			Email:    "admin@worldpianos.org",
			FullName: "Ada Admin",
			Role:     user.RoleAdmin,
			Location: "New York, NY",
		},
		{
			ID:       "mock-user-2",
			Email:    "morgan@worldpianos.org",
			FullName: "Morgan Mod",
			Role:     user.RoleModerator,
			Location: "London, UK",
		},
		{
			ID:       "mock-user-3",
			Email:    "casey@example.com",
			FullName: "Casey Keys",
			Role:     user.RoleUser,
			Bio:      "Street piano hunter.",
			Location: "Paris, France",
		},
	}
}

// Pianos returns the three demo pianos shown on the map and list pages.
func Pianos() []piano.Piano {
	return []piano.Piano{
		{
			ID:               "mock-piano-1",
			Title:            "Central Park Piano",
			Statement:        "A beloved fixture near the Bethesda Fountain, painted by local schoolchildren.",
			LocationName:     "Central Park, New York, NY",
			Coordinates:      &geo.Point{Lat: 40.7829, Lng: -73.9654},
			ArtistName:       "PS 87 Art Club",
			Category:         piano.CategoryPark,
			Condition:        "good",
			Hours:            "6am-1am daily",
			Verified:         true,
			ModerationStatus: content.StatusApproved,
			Source:           piano.SourceSingForHope,
			CreatedBy:        "mock-user-1",
		},
		{
			ID:               "mock-piano-2",
			Title:            "St Pancras Station Piano",
			Statement:        "The famous concourse upright, open to anyone waiting for a train.",
			LocationName:     "St Pancras International, London",
			Coordinates:      &geo.Point{Lat: 51.5322, Lng: -0.1270},
			Category:         piano.CategoryStation,
			Condition:        "excellent",
			Hours:            "Station hours",
			Verified:         true,
			ModerationStatus: content.StatusApproved,
			Source:           piano.SourceUserSubmitted,
			CreatedBy:        "mock-user-3",
		},
		{
			ID:               "mock-piano-3",
			Title:            "Montmartre Street Piano",
			Statement:        "A weathered upright on the steps below Sacre-Coeur, tuned by volunteers.",
			LocationName:     "Montmartre, Paris",
			Coordinates:      &geo.Point{Lat: 48.8867, Lng: 2.3431},
			ArtistName:       "Collectif Pianos Libres",
			Category:         piano.CategoryStreet,
			Condition:        "fair",
			Verified:         false,
			ModerationStatus: content.StatusPending,
			Source:           piano.SourceUserSubmitted,
			CreatedBy:        "mock-user-3",
		},
	}
}

// Events returns demo events spread across past, today-adjacent, and
// upcoming dates so list filters have something to bite on.
func Events() []event.Event {
	now := time.Now().UTC()
	return []event.Event{
		{
			ID:               "mock-event-1",
			Title:            "Sunset Sessions at Bethesda Fountain",
			Description:      "Open mic around the Central Park piano. Bring sheet music or just listen.",
			Date:             now.AddDate(0, 0, 7),
			LocationName:     "Central Park, New York, NY",
			Coordinates:      &geo.Point{Lat: 40.7829, Lng: -73.9654},
			Category:         event.CategoryMeetup,
			Organizer:        "WorldPianos NYC",
			Verified:         true,
			ModerationStatus: content.StatusApproved,
			CreatedBy:        "mock-user-1",
			AttendeeCount:    12,
		},
		{
			ID:               "mock-event-2",
			Title:            "Station Piano Marathon",
			Description:      "Twelve hours of continuous playing to raise funds for piano upkeep.",
			Date:             now,
			LocationName:     "St Pancras International, London",
			Coordinates:      &geo.Point{Lat: 51.5322, Lng: -0.1270},
			Category:         event.CategoryConcert,
			Organizer:        "Friends of the Concourse Piano",
			Verified:         true,
			ModerationStatus: content.StatusApproved,
			CreatedBy:        "mock-user-2",
			AttendeeCount:    48,
		},
		{
			ID:               "mock-event-3",
			Title:            "Beginner Improvisation Workshop",
			Description:      "A free outdoor workshop for first-time street piano players.",
			Date:             now.AddDate(0, 0, -14),
			LocationName:     "Montmartre, Paris",
			Category:         event.CategoryWorkshop,
			Organizer:        "Collectif Pianos Libres",
			ModerationStatus: content.StatusApproved,
			CreatedBy:        "mock-user-3",
			AttendeeCount:    9,
		},
	}
}

// BlogPosts returns the demo articles.
func BlogPosts() []blog.Post {
	return []blog.Post{
		{
			ID:               "mock-post-1",
			Title:            "Why Street Pianos Matter",
			Content:          "<p>A public piano turns a commute into a concert. In this post we look at what happens to a square when an instrument appears in it.</p>",
			Excerpt:          "What happens to a public square when a piano appears in it.",
			Category:         "community",
			Tags:             []string{"community", "public-space"},
			Published:        true,
			AllowComments:    true,
			AuthorID:         "mock-user-1",
			AuthorName:       "Ada Admin",
			ModerationStatus: content.StatusApproved,
		},
		{
			ID:               "mock-post-2",
			Title:            "Caring for an Outdoor Piano Through Winter",
			Content:          "<p>Covers, tuning schedules, and when to accept that an instrument has played its last season.</p>",
			Excerpt:          "Practical maintenance notes from volunteer tuners.",
			Category:         "maintenance",
			Tags:             []string{"maintenance", "winter"},
			Published:        true,
			AllowComments:    true,
			AuthorID:         "mock-user-2",
			AuthorName:       "Morgan Mod",
			ModerationStatus: content.StatusApproved,
		},
	}
}

// Comments returns a handful of demo comments across content types.
func Comments() []comment.Comment {
	return []comment.Comment{
		{
			ID:               "mock-comment-1",
			ContentType:      content.TypePiano,
			ContentID:        "mock-piano-1",
			AuthorID:         "mock-user-3",
			AuthorName:       "Casey Keys",
			Text:             "Played here last weekend, still holds its tune surprisingly well.",
			ModerationStatus: content.StatusApproved,
		},
		{
			ID:               "mock-comment-2",
			ContentType:      content.TypeBlogPost,
			ContentID:        "mock-post-1",
			AuthorName:       comment.AnonymousName("demo-session"),
			Text:             "The piano at my local station got me back into playing after twenty years.",
			ModerationStatus: content.StatusApproved,
		},
	}
}
