package event

import "time"

// CalendarDay is one cell of the month grid.
type CalendarDay struct {
	Date    time.Time `json:"date"`
	InMonth bool      `json:"in_month"`
	Events  []Event   `json:"events"`
}

// CalendarGrid lays out the given month as six full weeks: from the Sunday
// on or before the first of the month through the Saturday on or after the
// last day, padded to 42 cells so every month renders at the same height.
// Events are bucketed by calendar day in loc.
func CalendarGrid(year int, month time.Month, events []Event, loc *time.Location) []CalendarDay {
	if loc == nil {
		loc = time.UTC
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	start := first.AddDate(0, 0, -int(first.Weekday()))

	byDay := make(map[string][]Event)
	for _, ev := range events {
		key := ev.Date.In(loc).Format("2006-01-02")
		byDay[key] = append(byDay[key], ev)
	}

	grid := make([]CalendarDay, 0, 42)
	for i := 0; i < 42; i++ {
		day := start.AddDate(0, 0, i)
		grid = append(grid, CalendarDay{
			Date:    day,
			InMonth: day.Month() == month,
			Events:  byDay[day.Format("2006-01-02")],
		})
	}
	return grid
}
