package event

import (
	"testing"
	"time"
)

func TestLifecycle(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{"tomorrow", now.AddDate(0, 0, 1), LifecycleUpcoming},
		{"next month", now.AddDate(0, 1, 0), LifecycleUpcoming},
		{"same day earlier hour", time.Date(2025, time.June, 15, 8, 0, 0, 0, time.UTC), LifecycleToday},
		{"same day later hour", time.Date(2025, time.June, 15, 20, 0, 0, 0, time.UTC), LifecycleToday},
		{"yesterday", now.AddDate(0, 0, -1), LifecyclePast},
		{"last year", now.AddDate(-1, 0, 0), LifecyclePast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := Event{Date: tt.date}
			if got := ev.Lifecycle(now); got != tt.want {
				t.Errorf("Lifecycle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCalendarGridShape(t *testing.T) {
	// June 2025 starts on a Sunday; the grid should begin on June 1.
	grid := CalendarGrid(2025, time.June, nil, time.UTC)
	if len(grid) != 42 {
		t.Fatalf("grid has %d cells, want 42", len(grid))
	}
	if got := grid[0].Date; got.Day() != 1 || got.Month() != time.June {
		t.Errorf("grid starts at %s, want June 1", got.Format("2006-01-02"))
	}
	if grid[0].Date.Weekday() != time.Sunday {
		t.Errorf("grid starts on %s, want Sunday", grid[0].Date.Weekday())
	}

	// September 2025 starts on a Monday; the grid should begin on August 31.
	grid = CalendarGrid(2025, time.September, nil, time.UTC)
	if got := grid[0].Date; got.Month() != time.August || got.Day() != 31 {
		t.Errorf("grid starts at %s, want 2025-08-31", got.Format("2006-01-02"))
	}
	if grid[0].InMonth {
		t.Error("leading padding day marked as in-month")
	}
	if !grid[1].InMonth {
		t.Error("September 1 not marked as in-month")
	}
}

func TestCalendarGridBucketsEvents(t *testing.T) {
	events := []Event{
		{ID: "a", Title: "Morning show", Date: time.Date(2025, time.June, 10, 9, 0, 0, 0, time.UTC)},
		{ID: "b", Title: "Evening show", Date: time.Date(2025, time.June, 10, 19, 0, 0, 0, time.UTC)},
		{ID: "c", Title: "Elsewhere", Date: time.Date(2025, time.June, 20, 12, 0, 0, 0, time.UTC)},
	}
	grid := CalendarGrid(2025, time.June, events, time.UTC)

	var june10 *CalendarDay
	for i := range grid {
		if grid[i].Date.Month() == time.June && grid[i].Date.Day() == 10 {
			june10 = &grid[i]
			break
		}
	}
	if june10 == nil {
		t.Fatal("June 10 missing from grid")
	}
	if len(june10.Events) != 2 {
		t.Fatalf("June 10 has %d events, want 2", len(june10.Events))
	}
}
