package mockdata

import (
	"context"
	"testing"
)

func TestStoreSeedsFixtures(t *testing.T) {
	s, err := NewStore()
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	ctx := context.Background()

	pianos, err := s.Pianos.List(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(pianos) != 3 {
		t.Fatalf("seeded %d pianos, want 3", len(pianos))
	}

	var found bool
	for _, p := range pianos {
		if p.Title != "Central Park Piano" {
			continue
		}
		found = true
		if p.Coordinates == nil {
			t.Fatal("Central Park Piano has no coordinates")
		}
		if p.Coordinates.Lat != 40.7829 || p.Coordinates.Lng != -73.9654 {
			t.Errorf("Central Park Piano at (%v, %v), want (40.7829, -73.9654)",
				p.Coordinates.Lat, p.Coordinates.Lng)
		}
	}
	if !found {
		t.Error("Central Park Piano missing from fixtures")
	}

	events, err := s.Events.List(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(events) == 0 {
		t.Error("no seeded events")
	}

	posts, err := s.Posts.List(ctx, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(posts) == 0 {
		t.Error("no seeded published posts")
	}
}

func TestMockWritesPersistForProcessLifetime(t *testing.T) {
	s, err := NewStore()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	p := Pianos()[0]
	p.ID = ""
	p.Title = "Library Atrium Piano"
	if err := s.Pianos.Create(ctx, &p); err != nil {
		t.Fatalf("create: %v", err)
	}

	pianos, err := s.Pianos.List(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(pianos) != 4 {
		t.Errorf("after create: %d pianos, want 4", len(pianos))
	}
}
