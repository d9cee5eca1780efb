// Package report provides user-submitted content reports and their
// moderation lifecycle.
package report

import (
	"errors"
	"time"

	"github.com/jessebautista/wpnew-sub000/internal/content"
)

// Reason is the closed set of report reasons.
type Reason string

const (
	ReasonInappropriate Reason = "inappropriate"
	ReasonSpam          Reason = "spam"
	ReasonIncorrectInfo Reason = "incorrect_info"
	ReasonDuplicate     Reason = "duplicate"
	ReasonOther         Reason = "other"
)

// ErrInvalidReason is returned when a reason is outside the closed set.
var ErrInvalidReason = errors.New("invalid report reason")

// ParseReason validates a raw reason string.
func ParseReason(s string) (Reason, error) {
	switch Reason(s) {
	case ReasonInappropriate, ReasonSpam, ReasonIncorrectInfo, ReasonDuplicate, ReasonOther:
		return Reason(s), nil
	}
	return "", ErrInvalidReason
}

// Status is a report's position in the moderation queue.
type Status string

const (
	StatusPending   Status = "pending"
	StatusReviewed  Status = "reviewed"
	StatusResolved  Status = "resolved"
	StatusDismissed Status = "dismissed"
)

// ErrInvalidStatus is returned when a status is outside the closed set.
var ErrInvalidStatus = errors.New("invalid report status")

// ParseStatus validates a raw status string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusReviewed, StatusResolved, StatusDismissed:
		return Status(s), nil
	}
	return "", ErrInvalidStatus
}

// Validation errors.
var (
	ErrContentRequired  = errors.New("report must reference a content item")
	ErrReporterRequired = errors.New("report must identify a reporter")
)

// Report flags one content item for moderator attention. A reporter may
// file at most one report per content item.
type Report struct {
	ID          string       `json:"id"`
	ContentType content.Type `json:"content_type"`
	ContentID   string       `json:"content_id"`
	ReporterID  string       `json:"reporter_id"`
	Reason      Reason       `json:"reason"`
	Description string       `json:"description,omitempty"`
	Status      Status       `json:"status"`

	ReviewedBy *string    `json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks the submission-time invariants.
func (r *Report) Validate() error {
	if r.ContentID == "" {
		return ErrContentRequired
	}
	if _, err := content.ParseType(string(r.ContentType)); err != nil {
		return err
	}
	if r.ReporterID == "" {
		return ErrReporterRequired
	}
	if _, err := ParseReason(string(r.Reason)); err != nil {
		return err
	}
	return nil
}
