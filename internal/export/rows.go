// Package export renders a schedule snapshot as table rows, an HTML page
// and an iCalendar file.
package export

import (
	"github.com/javiermolinar/meetgrid/internal/calendar"
	"github.com/javiermolinar/meetgrid/internal/meeting"
	"github.com/javiermolinar/meetgrid/internal/scheduler"
)

// Labels used for reservation rows.
const (
	ReservedName      = "Reserved (External)"
	ReservedType      = "Reserved"
	ReservedFrequency = "Weekly"
)

// Row is one line of a weekly schedule table.
type Row struct {
	Day       calendar.Day
	Start     string
	End       string
	Name      string
	Type      string
	Minutes   int
	Frequency string
	Reserved  bool
}

// Shade returns the background colour for the row. Days alternate so the
// table reads as blocks.
func (r Row) Shade() string {
	if r.Day%2 == 0 {
		return "#ffffff"
	}
	return "#f2f2f2"
}

// WeekRows holds the rows for one week.
type WeekRows struct {
	Week calendar.Week
	Rows []Row
}

// Title returns "Week n" with n counted from 1.
func (w WeekRows) Title() string {
	return w.Week.String()
}

// Rows lays out the snapshot week by week. Within a week, days run Monday
// to Thursday; each day lists its meetings in commit order, then the
// reservations on that day.
func Rows(snap scheduler.Snapshot) []WeekRows {
	weeks := make([]WeekRows, 0, calendar.NumWeeks)
	for _, w := range calendar.Weeks() {
		wr := WeekRows{Week: w}
		for _, d := range calendar.Days() {
			for _, e := range snap.Entries {
				if e.Week == w && e.Day == d {
					wr.Rows = append(wr.Rows, entryRow(e))
				}
			}
			for _, r := range snap.Reservations {
				if r.Day == d {
					wr.Rows = append(wr.Rows, reservationRow(r))
				}
			}
		}
		weeks = append(weeks, wr)
	}
	return weeks
}

func entryRow(e meeting.Entry) Row {
	return Row{
		Day:       e.Day,
		Start:     e.Start.String(),
		End:       e.End(),
		Name:      e.Name,
		Type:      e.Type,
		Minutes:   e.Minutes(),
		Frequency: string(e.Frequency),
	}
}

func reservationRow(r meeting.Reservation) Row {
	return Row{
		Day:       r.Day,
		Start:     r.Start.String(),
		End:       r.End(),
		Name:      ReservedName,
		Type:      ReservedType,
		Minutes:   r.Minutes(),
		Frequency: ReservedFrequency,
		Reserved:  true,
	}
}
