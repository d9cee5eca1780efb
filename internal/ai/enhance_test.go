package ai

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jessebautista/wpnew-sub000/internal/content"
	"github.com/jessebautista/wpnew-sub000/internal/event"
	"github.com/jessebautista/wpnew-sub000/internal/geo"
	"github.com/jessebautista/wpnew-sub000/internal/piano"
)

func testService() *Service {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)), "", "")
}

func TestEnhanceTemplatePathIsDeterministic(t *testing.T) {
	svc := testService()
	in := Input{
		Type:     content.TypePiano,
		Title:    "Old upright",
		Location: "Lisbon",
	}

	a, err := svc.Enhance(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	b, err := svc.Enhance(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}

	if a.GeneratedBy != "template" {
		t.Errorf("generated_by = %q, want template with no API key", a.GeneratedBy)
	}
	if len(a.Suggestions) != len(b.Suggestions) {
		t.Fatalf("suggestion counts differ: %d vs %d", len(a.Suggestions), len(b.Suggestions))
	}
	for i := range a.Suggestions {
		if a.Suggestions[i] != b.Suggestions[i] {
			t.Errorf("suggestion %d differs: %+v vs %+v", i, a.Suggestions[i], b.Suggestions[i])
		}
	}
}

func TestEnhanceSuggestsMissingFields(t *testing.T) {
	svc := testService()
	res, err := svc.Enhance(context.Background(), Input{Type: content.TypeEvent})
	if err != nil {
		t.Fatal(err)
	}

	fields := map[string]bool{}
	for _, s := range res.Suggestions {
		fields[s.Field] = true
	}
	for _, want := range []string{"title", "meta_description", "keywords"} {
		if !fields[want] {
			t.Errorf("no suggestion for %q", want)
		}
	}
	if res.EstimatedGain <= 0 {
		t.Errorf("estimated gain = %d, want positive for empty content", res.EstimatedGain)
	}
}

func TestEnhanceRejectsUnknownType(t *testing.T) {
	svc := testService()
	if _, err := svc.Enhance(context.Background(), Input{Type: "gallery"}); err == nil {
		t.Error("unknown content type accepted")
	}
}

func TestStructuredDataForPiano(t *testing.T) {
	p := &piano.Piano{
		Title:        "Central Park Piano",
		LocationName: "Central Park, New York",
		Coordinates:  &geo.Point{Lat: 40.7829, Lng: -73.9654},
	}
	data := StructuredDataForPiano(p)
	if data["@type"] != "Place" {
		t.Errorf("@type = %v, want Place", data["@type"])
	}
	geoData, ok := data["geo"].(StructuredData)
	if !ok {
		t.Fatal("geo section missing")
	}
	if geoData["latitude"] != 40.7829 {
		t.Errorf("latitude = %v", geoData["latitude"])
	}
}

func TestStructuredDataForEventOmitsInvalidCoordinates(t *testing.T) {
	ev := &event.Event{
		Title:        "Marathon",
		Date:         time.Now(),
		LocationName: "Somewhere",
		Coordinates:  &geo.Point{Lat: 123, Lng: 456},
	}
	data := StructuredDataForEvent(ev)
	loc, ok := data["location"].(StructuredData)
	if !ok {
		t.Fatal("location section missing")
	}
	if _, hasGeo := loc["geo"]; hasGeo {
		t.Error("out-of-range coordinates rendered into structured data")
	}
}

func TestNewDefaultsModel(t *testing.T) {
	svc := testService()
	if svc.model != "gpt-4o-mini" {
		t.Errorf("default model = %q, want gpt-4o-mini", svc.model)
	}
	if svc.client != nil {
		t.Error("client should be nil without an API key")
	}

	svc = New(slog.New(slog.NewTextHandler(io.Discard, nil)), "", "gpt-4o")
	if svc.model != "gpt-4o" {
		t.Errorf("explicit model = %q, want gpt-4o", svc.model)
	}
}
