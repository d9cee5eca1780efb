package validate

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidEmail is returned for malformed addresses.
var ErrInvalidEmail = errors.New("invalid email format")

// emailPattern covers the common address shapes; stricter checks belong to
// the mail delivery layer.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email normalizes (trims, lowercases) and validates an email address.
func Email(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", ErrEmpty
	}
	// RFC 5321 length bounds.
	if len(email) > 254 {
		return "", ErrStringTooLong
	}
	if !emailPattern.MatchString(email) {
		return "", ErrInvalidEmail
	}
	local := email[:strings.Index(email, "@")]
	if len(local) > 64 {
		return "", ErrStringTooLong
	}
	return email, nil
}
