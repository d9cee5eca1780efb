// Package blog provides the blog post model and repositories.
package blog

import (
	"errors"
	"strings"
	"time"

	"github.com/jessebautista/wpnew-sub000/internal/content"
)

// Validation errors.
var (
	ErrTitleRequired   = errors.New("post title is required")
	ErrContentRequired = errors.New("post content is required")
)

// Post is a long-form article. Content is sanitized HTML produced by the
// editor; Excerpt is plain text shown on list pages.
type Post struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Excerpt  string   `json:"excerpt,omitempty"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`

	Published     bool `json:"published"`
	AllowComments bool `json:"allow_comments"`

	AuthorID         string         `json:"author_id,omitempty"`
	AuthorName       string         `json:"author_name,omitempty"`
	ModerationStatus content.Status `json:"moderation_status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks the submission-time invariants.
func (p *Post) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(p.Content) == "" {
		return ErrContentRequired
	}
	return nil
}

// SearchFields returns the fields the list-page text search matches against.
func (p *Post) SearchFields() []string {
	fields := []string{p.Title, p.Excerpt, p.Category}
	fields = append(fields, p.Tags...)
	return fields
}
