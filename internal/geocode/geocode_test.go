package geocode

import (
	"context"
	"io"
	"log/slog"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMockResultsAreDeterministic(t *testing.T) {
	svc := New(testLogger(), "")
	ctx := context.Background()

	a, err := svc.Search(ctx, "Central Park, New York")
	if err != nil {
		t.Fatal(err)
	}
	b, err := svc.Search(ctx, "Central Park, New York")
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != 1 || len(b) != 1 {
		t.Fatalf("got %d and %d results, want 1 each", len(a), len(b))
	}
	if a[0].Point != b[0].Point {
		t.Errorf("same query produced %v then %v", a[0].Point, b[0].Point)
	}
	if !a[0].Point.Valid() {
		t.Errorf("mock point %v out of range", a[0].Point)
	}

	c, err := svc.Search(ctx, "Montmartre, Paris")
	if err != nil {
		t.Fatal(err)
	}
	if c[0].Point == a[0].Point {
		t.Error("different queries produced the same mock point")
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	svc := New(testLogger(), "")
	got, err := svc.Search(context.Background(), "   ")
	if err != nil || got != nil {
		t.Errorf("blank query: %v, %v; want nil, nil", got, err)
	}
}

func TestGetCoordinatesUsesBestHit(t *testing.T) {
	svc := New(testLogger(), "")
	ctx := context.Background()

	pt, err := svc.GetCoordinates(ctx, "St Pancras, London")
	if err != nil {
		t.Fatal(err)
	}
	if pt == nil || !pt.Valid() {
		t.Fatalf("got %v, want a valid point", pt)
	}

	results, _ := svc.Search(ctx, "St Pancras, London")
	if *pt != results[0].Point {
		t.Errorf("GetCoordinates = %v, Search[0] = %v", *pt, results[0].Point)
	}
}
