// Package stats holds the pure aggregations behind the dashboard.
package stats

import (
	"time"

	"github.com/2beens/gymlog/internal/gymstats/document"
)

// Range is an inclusive span of calendar dates in YYYY-MM-DD form. Zero
// padded dates compare correctly as strings.
type Range struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func (r Range) Contains(date string) bool {
	return date >= r.Start && date <= r.End
}

// Day truncates t to its calendar date, expressed in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WeekStart returns the Monday of the week containing ref.
func WeekStart(ref time.Time) time.Time {
	day := Day(ref)
	offset := 1 - int(day.Weekday())
	if day.Weekday() == time.Sunday {
		offset = -6
	}
	return day.AddDate(0, 0, offset)
}

// WeekRange is Monday to Sunday around ref.
func WeekRange(ref time.Time) Range {
	start := WeekStart(ref)
	return newRange(start, start.AddDate(0, 0, 6))
}

func MonthRange(ref time.Time) Range {
	day := Day(ref)
	start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	return newRange(start, start.AddDate(0, 1, -1))
}

func YearRange(ref time.Time) Range {
	day := Day(ref)
	return newRange(
		time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(day.Year(), time.December, 31, 0, 0, 0, 0, time.UTC),
	)
}

// Dates lists every date of the range, in order.
func (r Range) Dates() []string {
	start, err := time.Parse(document.DateLayout, r.Start)
	if err != nil {
		return nil
	}
	end, err := time.Parse(document.DateLayout, r.End)
	if err != nil {
		return nil
	}

	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(document.DateLayout))
	}
	return dates
}

func newRange(start, end time.Time) Range {
	return Range{
		Start: start.Format(document.DateLayout),
		End:   end.Format(document.DateLayout),
	}
}
