// Package validate provides input validation and sanitization for
// user-submitted text. Parameterized queries remain the primary injection
// defense; this layer enforces lengths and strips markup from fields that
// render as plain text.
package validate

import (
	"errors"
	"html"
	"strings"
	"unicode/utf8"
)

// String validation errors.
var (
	ErrEmpty         = errors.New("value is empty")
	ErrStringTooLong = errors.New("value is too long")
)

// TextConstraints bound a free-text field.
type TextConstraints struct {
	MaxLength  int  // maximum rune count, 0 = no maximum
	AllowEmpty bool // whether a blank value passes
	EscapeHTML bool // whether to escape markup for plain-text rendering
}

// Field limits shared by the submission forms.
var (
	TitleConstraints       = TextConstraints{MaxLength: 200}
	DescriptionConstraints = TextConstraints{MaxLength: 5000, AllowEmpty: true, EscapeHTML: true}
	CommentConstraints     = TextConstraints{MaxLength: 2000, EscapeHTML: true}
)

// Text trims and validates a free-text value, returning the sanitized form.
func Text(s string, c TextConstraints) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		if c.AllowEmpty {
			return "", nil
		}
		return "", ErrEmpty
	}
	if c.MaxLength > 0 && utf8.RuneCountInString(s) > c.MaxLength {
		return "", ErrStringTooLong
	}
	if c.EscapeHTML {
		s = html.EscapeString(s)
	}
	return s, nil
}
