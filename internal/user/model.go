// Package user provides the account model and repository.
package user

import (
	"errors"
	"time"
)

// Role controls which admin and moderation surfaces an account may use.
// Guests are implied by the absence of a session and have no Role value.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// ErrInvalidRole is returned when a role string is not recognized.
var ErrInvalidRole = errors.New("invalid role")

// ParseRole validates a raw role string.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleModerator, RoleAdmin:
		return Role(s), nil
	}
	return "", ErrInvalidRole
}

// CanModerate reports whether the role may approve/reject content.
func (r Role) CanModerate() bool {
	return r == RoleModerator || r == RoleAdmin
}

func (r Role) rank() int {
	switch r {
	case RoleAdmin:
		return 3
	case RoleModerator:
		return 2
	case RoleUser:
		return 1
	}
	return 0
}

// AtLeast reports whether the role grants at least the permissions of min.
func (r Role) AtLeast(min Role) bool {
	return r.rank() >= min.rank()
}

// User represents an account.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      Role      `json:"role"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	Location  string    `json:"location,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
