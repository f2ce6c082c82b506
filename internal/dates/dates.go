package dates

import (
	"fmt"
	"time"
)

// Layout is the wire format for calendar dates, e.g. "15/01/2024".
const Layout = "02/01/2006"

// MaxRangeDays bounds the length of a date range a job may cover.
const MaxRangeDays = 365

// Parse parses a DD/MM/YYYY date. The result carries no time component.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// Format renders a date back into the DD/MM/YYYY wire format.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Expand returns every date from start to end inclusive, stepping one day.
// Callers are expected to have validated start <= end; for start == end the
// result is a single-element slice.
func Expand(start, end time.Time) []time.Time {
	var out []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

// ValidateRange checks the ordering, span and future-date rules for a job's
// date range. For single-date jobs pass the same date twice.
func ValidateRange(start, end time.Time, now time.Time) error {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if end.Before(start) {
		return fmt.Errorf("start date must be before end date")
	}
	if start.After(today) {
		return fmt.Errorf("start date cannot be in the future")
	}
	if end.After(today) {
		return fmt.Errorf("end date cannot be in the future")
	}
	if int(end.Sub(start).Hours()/24) > MaxRangeDays {
		return fmt.Errorf("date range cannot exceed %d days", MaxRangeDays)
	}
	return nil
}
