// Package content defines the closed set of content kinds and the
// moderation lifecycle shared by pianos, events and blog posts.
package content

import "errors"

// Type identifies which kind of content a comment or report is attached to.
// The set is closed; anything outside it is rejected at the boundary.
type Type string

const (
	TypePiano    Type = "piano"
	TypeEvent    Type = "event"
	TypeBlogPost Type = "blog_post"
)

// AllTypes is the exhaustive list of valid content types.
var AllTypes = []Type{TypePiano, TypeEvent, TypeBlogPost}

// ErrInvalidType is returned when a content type is not in the closed set.
var ErrInvalidType = errors.New("invalid content type")

// ParseType validates a raw discriminant string and returns the typed value.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypePiano, TypeEvent, TypeBlogPost:
		return Type(s), nil
	}
	return "", ErrInvalidType
}

// Valid reports whether the type is one of the closed set.
func (t Type) Valid() bool {
	_, err := ParseType(string(t))
	return err == nil
}

// Status is the moderation status gating public visibility of
// user-submitted content.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ErrInvalidStatus is returned when a moderation status is not recognized.
var ErrInvalidStatus = errors.New("invalid moderation status")

// ParseStatus validates a raw status string and returns the typed value.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return Status(s), nil
	}
	return "", ErrInvalidStatus
}

// Valid reports whether the status is one of pending/approved/rejected.
func (s Status) Valid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}
