// Package dateutil maps the four-week planning horizon onto calendar dates.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/meetgrid/internal/calendar"
)

// Validation errors.
var (
	ErrInvalidDateFormat = errors.New("date must be in YYYY-MM-DD format")
	ErrNotMonday         = errors.New("horizon must start on a Monday")
)

// Layout is the date format used in config files and flags.
const Layout = "2006-01-02"

// ParseDate parses a date string in YYYY-MM-DD format.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(Layout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}
	return t, nil
}

// ParseMonday parses a YYYY-MM-DD date that must fall on a Monday.
func ParseMonday(s string) (time.Time, error) {
	t, err := ParseDate(s)
	if err != nil {
		return time.Time{}, err
	}
	if t.Weekday() != time.Monday {
		return time.Time{}, fmt.Errorf("%w: %s is a %s", ErrNotMonday, s, t.Weekday())
	}
	return t, nil
}

// ParseStart resolves the first Monday of a horizon. It accepts:
//   - "" or "this-week": Monday of the week containing now
//   - "next-week": the Monday after that
//   - an absolute YYYY-MM-DD Monday
//
// Keywords are case-insensitive.
func ParseStart(s string, now time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "this-week":
		return MondayOf(now), nil
	case "next-week":
		return MondayOf(now).AddDate(0, 0, 7), nil
	}
	return ParseMonday(s)
}

// MondayOf returns midnight on the Monday of the ISO week containing t.
func MondayOf(t time.Time) time.Time {
	t = TruncateToDay(t)
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday becomes day 7 in ISO week
	}
	return t.AddDate(0, 0, -(weekday - 1))
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// OccurrenceDate returns the calendar date of day d in week w of the horizon
// starting on base.
func OccurrenceDate(base time.Time, w calendar.Week, d calendar.Day) time.Time {
	return base.AddDate(0, 0, int(w)*7+int(d))
}

// SlotTime returns the wall-clock start of slot s on the given date.
func SlotTime(date time.Time, s calendar.Slot) time.Time {
	m := s.Minutes()
	return time.Date(date.Year(), date.Month(), date.Day(), m/60, m%60, 0, 0, date.Location())
}

// HorizonEnd returns the last working day of the horizon starting on base.
func HorizonEnd(base time.Time) time.Time {
	return OccurrenceDate(base, calendar.NumWeeks-1, calendar.NumDays-1)
}
