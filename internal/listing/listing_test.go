package listing

import (
	"testing"
	"time"
)

type doc struct {
	title string
	tag   string
}

func (d doc) SearchFields() []string { return []string{d.title} }

var docs = []doc{
	{"Central Park Piano", "park"},
	{"St Pancras Station Piano", "station"},
	{"Montmartre Street Piano", "street"},
	{"Library Atrium Piano", "indoor"},
	{"Harbour Boardwalk Piano", "street"},
}

func TestSearchCaseInsensitive(t *testing.T) {
	got := Search(docs, "PIANO")
	if len(got) != len(docs) {
		t.Errorf("Search(PIANO) kept %d, want %d", len(got), len(docs))
	}
	got = Search(docs, "  pancras ")
	if len(got) != 1 || got[0].title != "St Pancras Station Piano" {
		t.Errorf("Search(pancras) = %v", got)
	}
	if got := Search(docs, ""); len(got) != len(docs) {
		t.Errorf("empty query kept %d, want all", len(got))
	}
}

func TestFilterOrderIndependent(t *testing.T) {
	isStreet := func(d doc) bool { return d.tag == "street" }
	hasPiano := func(d doc) bool { return len(d.title) > 0 }

	a := Filter(docs, isStreet, hasPiano)
	b := Filter(docs, hasPiano, isStreet)
	if len(a) != len(b) {
		t.Fatalf("filter order changed result size: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("filter order changed result at %d: %v vs %v", i, a[i], b[i])
		}
	}
	if len(a) != 2 {
		t.Errorf("kept %d street pianos, want 2", len(a))
	}
}

func TestPaginateCoversEveryItem(t *testing.T) {
	p1 := Paginate(docs, 1, 2)
	p2 := Paginate(docs, 2, 2)
	p3 := Paginate(docs, 3, 2)

	var seen []doc
	seen = append(seen, p1.Items...)
	seen = append(seen, p2.Items...)
	seen = append(seen, p3.Items...)
	if len(seen) != len(docs) {
		t.Fatalf("pages cover %d items, want %d", len(seen), len(docs))
	}
	for i := range docs {
		if seen[i] != docs[i] {
			t.Errorf("item %d missing or out of order: %v", i, seen[i])
		}
	}
	if p1.TotalPages != 3 || p1.Total != 5 {
		t.Errorf("page meta = %d pages / %d total, want 3 / 5", p1.TotalPages, p1.Total)
	}
}

func TestPaginateClampsOutOfRange(t *testing.T) {
	p := Paginate(docs, 99, 2)
	if p.Page != 3 {
		t.Errorf("page clamped to %d, want 3", p.Page)
	}
	if len(p.Items) != 1 {
		t.Errorf("last page has %d items, want 1", len(p.Items))
	}

	p = Paginate([]doc{}, 1, 2)
	if p.TotalPages != 1 || len(p.Items) != 0 {
		t.Errorf("empty input: %d pages, %d items", p.TotalPages, len(p.Items))
	}

	p = Paginate(docs, 1, 0)
	if p.PerPage != DefaultPerPage {
		t.Errorf("per_page defaulted to %d, want %d", p.PerPage, DefaultPerPage)
	}
}

func TestMatchTimeframe(t *testing.T) {
	// Wednesday, June 18 2025.
	now := time.Date(2025, time.June, 18, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		tf   Timeframe
		t    time.Time
		want bool
	}{
		{"today same day", TimeframeToday, now.Add(6 * time.Hour), true},
		{"today tomorrow", TimeframeToday, now.AddDate(0, 0, 1), false},
		{"upcoming tomorrow", TimeframeUpcoming, now.AddDate(0, 0, 1), true},
		{"upcoming earlier today", TimeframeUpcoming, now.Add(-6 * time.Hour), true},
		{"upcoming yesterday", TimeframeUpcoming, now.AddDate(0, 0, -1), false},
		{"past yesterday", TimeframePast, now.AddDate(0, 0, -1), true},
		{"past tomorrow", TimeframePast, now.AddDate(0, 0, 1), false},
		{"this week saturday", TimeframeThisWeek, time.Date(2025, time.June, 21, 23, 0, 0, 0, time.UTC), true},
		{"this week next sunday", TimeframeThisWeek, time.Date(2025, time.June, 22, 1, 0, 0, 0, time.UTC), false},
		{"this week last sunday", TimeframeThisWeek, time.Date(2025, time.June, 15, 1, 0, 0, 0, time.UTC), true},
		{"this month end", TimeframeThisMonth, time.Date(2025, time.June, 30, 23, 0, 0, 0, time.UTC), true},
		{"this month july", TimeframeThisMonth, time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC), false},
		{"all past", TimeframeAll, now.AddDate(-1, 0, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchTimeframe(tt.tf, tt.t, now); got != tt.want {
				t.Errorf("MatchTimeframe(%q, %s) = %v, want %v", tt.tf, tt.t, got, tt.want)
			}
		})
	}
}

func TestParseTimeframe(t *testing.T) {
	if tf, err := ParseTimeframe(""); err != nil || tf != TimeframeAll {
		t.Errorf("ParseTimeframe(\"\") = %v, %v", tf, err)
	}
	if _, err := ParseTimeframe("fortnight"); err == nil {
		t.Error("ParseTimeframe(fortnight) succeeded, want error")
	}
}
