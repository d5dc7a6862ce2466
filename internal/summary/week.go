// Package summary provides per-week statistics for a placed schedule.
package summary

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/javiermolinar/meetgrid/internal/calendar"
	"github.com/javiermolinar/meetgrid/internal/dateutil"
	"github.com/javiermolinar/meetgrid/internal/scheduler"
)

// WeekSummary holds aggregated data for one week of the horizon.
type WeekSummary struct {
	Week  calendar.Week
	Start time.Time // zero unless a base date was given
	End   time.Time

	Meetings        int
	MeetingMinutes  int
	ReservedMinutes int
	DayMinutes      [calendar.NumDays]int // meetings plus reservations
	TypeMinutes     map[string]int
}

// TypeShare is the booked time of one meeting type.
type TypeShare struct {
	Type    string
	Minutes int
}

// SummarizeWeek aggregates week w of snap. A non-zero base (Monday of
// week 1) fills in the calendar dates of the week.
func SummarizeWeek(snap scheduler.Snapshot, w calendar.Week, base time.Time) *WeekSummary {
	s := &WeekSummary{
		Week:        w,
		TypeMinutes: make(map[string]int),
	}
	if !base.IsZero() {
		s.Start = dateutil.OccurrenceDate(base, w, calendar.Monday)
		s.End = dateutil.OccurrenceDate(base, w, calendar.Thursday)
	}

	for _, e := range snap.Entries {
		if e.Week != w {
			continue
		}
		s.Meetings++
		s.MeetingMinutes += e.Minutes()
		s.DayMinutes[e.Day] += e.Minutes()
		s.TypeMinutes[e.Type] += e.Minutes()
	}
	for _, r := range snap.Reservations {
		s.ReservedMinutes += r.Minutes()
		s.DayMinutes[r.Day] += r.Minutes()
	}
	return s
}

// SummarizeAll aggregates every week of the horizon.
func SummarizeAll(snap scheduler.Snapshot, base time.Time) []*WeekSummary {
	out := make([]*WeekSummary, 0, calendar.NumWeeks)
	for _, w := range calendar.Weeks() {
		out = append(out, SummarizeWeek(snap, w, base))
	}
	return out
}

// TotalMinutes returns meeting plus reserved minutes.
func (s *WeekSummary) TotalMinutes() int {
	return s.MeetingMinutes + s.ReservedMinutes
}

// BusiestDay returns the day with the most booked minutes. Ties go to the
// earlier day. ok is false for an empty week.
func (s *WeekSummary) BusiestDay() (day calendar.Day, minutes int, ok bool) {
	for _, d := range calendar.Days() {
		if s.DayMinutes[d] > minutes {
			day, minutes, ok = d, s.DayMinutes[d], true
		}
	}
	return day, minutes, ok
}

// Types returns meeting types by booked time, largest first.
func (s *WeekSummary) Types() []TypeShare {
	shares := make([]TypeShare, 0, len(s.TypeMinutes))
	for t, m := range s.TypeMinutes {
		shares = append(shares, TypeShare{Type: t, Minutes: m})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Minutes != shares[j].Minutes {
			return shares[i].Minutes > shares[j].Minutes
		}
		return shares[i].Type < shares[j].Type
	})
	return shares
}

// Line renders the summary as one line, e.g.
// "3 meetings, 2h 30m; 1h reserved; busiest Monday (2h)".
func (s *WeekSummary) Line() string {
	if s.Meetings == 0 && s.ReservedMinutes == 0 {
		return "nothing booked"
	}

	noun := "meetings"
	if s.Meetings == 1 {
		noun = "meeting"
	}
	parts := []string{fmt.Sprintf("%d %s, %s", s.Meetings, noun, FormatMinutes(s.MeetingMinutes))}
	if s.ReservedMinutes > 0 {
		parts = append(parts, FormatMinutes(s.ReservedMinutes)+" reserved")
	}
	if d, m, ok := s.BusiestDay(); ok {
		parts = append(parts, fmt.Sprintf("busiest %s (%s)", d, FormatMinutes(m)))
	}
	return strings.Join(parts, "; ")
}

// DateRange renders the week's dates, e.g. "Apr 14 - Apr 17". It is empty
// when the summary has no dates.
func (s *WeekSummary) DateRange() string {
	if s.Start.IsZero() {
		return ""
	}
	return s.Start.Format("Jan 2") + " - " + s.End.Format("Jan 2")
}

// FormatMinutes formats a duration as "1h 30m", "2h" or "30m".
func FormatMinutes(m int) string {
	h, rem := m/60, m%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", rem)
	case rem == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, rem)
	}
}
