package validate

import (
	"errors"
	"strings"
	"testing"
)

func TestText(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		c       TextConstraints
		want    string
		wantErr error
	}{
		{"trims whitespace", "  Central Park Piano  ", TitleConstraints, "Central Park Piano", nil},
		{"rejects blank", "   ", TitleConstraints, "", ErrEmpty},
		{"allows blank when configured", "", DescriptionConstraints, "", nil},
		{"rejects over limit", strings.Repeat("x", 201), TitleConstraints, "", ErrStringTooLong},
		{"escapes markup", "<b>nice</b> piano", CommentConstraints, "&lt;b&gt;nice&lt;/b&gt; piano", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Text(tt.in, tt.c)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"Casey@Example.COM", "casey@example.com", false},
		{"  player@worldpianos.org ", "player@worldpianos.org", false},
		{"no-at-sign", "", true},
		{"@example.com", "", true},
		{"user@", "", true},
		{"", "", true},
		{strings.Repeat("a", 65) + "@example.com", "", true},
	}

	for _, tt := range tests {
		got, err := Email(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Email(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("Email(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
