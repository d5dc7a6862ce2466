package tui

import (
	"fmt"
	"strings"

	"github.com/javiermolinar/meetgrid/internal/calendar"
	"github.com/javiermolinar/meetgrid/internal/export"
	"github.com/javiermolinar/meetgrid/internal/scheduler"
)

const reservedLabel = "reserved"

type cellKind int

const (
	cellFree cellKind = iota
	cellMeeting
	cellReserved
)

// cell is one day/slot position of the week view. Only the first slot of a
// run carries the label.
type cell struct {
	kind  cellKind
	label string
	first bool
}

type weekGrid [calendar.NumDays][calendar.NumSlots]cell

// weekCells lays out week w of snap. Reservations repeat every week.
func weekCells(snap scheduler.Snapshot, w calendar.Week) weekGrid {
	var g weekGrid
	for _, r := range snap.Reservations {
		g.fill(r.Day, r.Start, r.Duration, cellReserved, reservedLabel)
	}
	for _, e := range snap.Entries {
		if e.Week == w {
			g.fill(e.Day, e.Start, e.Duration, cellMeeting, e.Name)
		}
	}
	return g
}

func (g *weekGrid) fill(d calendar.Day, start calendar.Slot, n int, kind cellKind, label string) {
	if !d.Valid() {
		return
	}
	for i := range n {
		s := int(start) + i
		if s < 0 || s >= calendar.NumSlots {
			return
		}
		g[d][s] = cell{kind: kind, label: label, first: i == 0}
	}
}

// weekText renders week w as plain text for the clipboard.
func weekText(snap scheduler.Snapshot, w calendar.Week) string {
	rows := export.Rows(snap)[w]

	var b strings.Builder
	b.WriteString(rows.Title())
	b.WriteString("\n")
	if len(rows.Rows) == 0 {
		b.WriteString("No meetings scheduled.\n")
		return b.String()
	}
	for _, r := range rows.Rows {
		fmt.Fprintf(&b, "%-9s %s-%s  %s (%s, %s)\n", r.Day, r.Start, r.End, r.Name, r.Type, r.Frequency)
	}
	return b.String()
}
