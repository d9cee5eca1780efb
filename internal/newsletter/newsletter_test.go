package newsletter

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestSubscribeNormalizesAndValidates(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	sub, err := repo.Subscribe(ctx, "  Reader@Example.COM ")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if sub.Email != "reader@example.com" {
		t.Errorf("got email %q, want reader@example.com", sub.Email)
	}

	// The same address in a different casing is the same subscription.
	if _, err := repo.Subscribe(ctx, "READER@example.com"); !errors.Is(err, ErrAlreadySubscribed) {
		t.Errorf("resubscribe: got %v, want ErrAlreadySubscribed", err)
	}

	for _, bad := range []string{
		"",
		"not-an-email",
		"missing-tld@host",
		"@example.com",
		"reader@",
		strings.Repeat("a", 70) + "@example.com",
	} {
		if _, err := repo.Subscribe(ctx, bad); !errors.Is(err, ErrInvalidEmail) {
			t.Errorf("subscribe(%q): got %v, want ErrInvalidEmail", bad, err)
		}
	}
}

func TestUnsubscribe(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	if err := repo.Unsubscribe(ctx, "nobody@example.com"); !errors.Is(err, ErrNotSubscribed) {
		t.Errorf("unsubscribe unknown: got %v, want ErrNotSubscribed", err)
	}

	if _, err := repo.Subscribe(ctx, "reader@example.com"); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if err := repo.Unsubscribe(ctx, " READER@example.com "); err != nil {
		t.Fatalf("unsubscribe: %v", err)
	}

	n, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Errorf("count after unsubscribe = %d, want 0", n)
	}
}
