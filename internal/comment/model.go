// Package comment provides comments attached to pianos, events, and blog
// posts, keyed by content type and content id.
package comment

import (
	"errors"
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/jessebautista/wpnew-sub000/internal/content"
)

// Validation errors.
var (
	ErrTextRequired     = errors.New("comment text is required")
	ErrContentRequired  = errors.New("comment must reference a content item")
	ErrCommentsDisabled = errors.New("comments are disabled for this content")
)

// Comment is attached to exactly one content item.
type Comment struct {
	ID          string       `json:"id"`
	ContentType content.Type `json:"content_type"`
	ContentID   string       `json:"content_id"`

	AuthorID   string `json:"author_id,omitempty"`
	AuthorName string `json:"author_name"`

	Text string `json:"text"`

	ModerationStatus content.Status `json:"moderation_status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks the submission-time invariants.
func (c *Comment) Validate() error {
	if strings.TrimSpace(c.Text) == "" {
		return ErrTextRequired
	}
	if c.ContentID == "" {
		return ErrContentRequired
	}
	if _, err := content.ParseType(string(c.ContentType)); err != nil {
		return err
	}
	return nil
}

var anonymousAdjectives = []string{
	"Wandering", "Quiet", "Curious", "Traveling", "Midnight",
	"Cheerful", "Gentle", "Distant", "Rainy", "Golden",
}

// AnonymousName derives a stable pseudonym for unauthenticated commenters
// from a session identifier, so repeat comments in one session share a name.
func AnonymousName(sessionID string) string {
	h := fnv.New32a()
	h.Write([]byte(sessionID))
	sum := h.Sum32()
	adj := anonymousAdjectives[int(sum)%len(anonymousAdjectives)]
	return fmt.Sprintf("%s Pianist %03d", adj, sum%1000)
}
