package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/javiermolinar/meetgrid/internal/batch"
	"github.com/javiermolinar/meetgrid/internal/calendar"
	"github.com/javiermolinar/meetgrid/internal/db"
	"github.com/javiermolinar/meetgrid/internal/export"
	"github.com/javiermolinar/meetgrid/internal/meeting"
	"github.com/javiermolinar/meetgrid/internal/scheduler"
	"github.com/javiermolinar/meetgrid/internal/summary"
)

const (
	minNameWidth = 12
	maxNameWidth = 40
	// Everything on a schedule row except the name column.
	rowOverhead = 62
)

// printOutcomes prints one line per batch item.
func printOutcomes(w io.Writer, outcomes []batch.Outcome) {
	for _, o := range outcomes {
		if !o.OK() {
			fmt.Fprintf(w, "%s %-11s %s: %v\n", formatFail("✗"), o.Kind, o.Label, o.Err)
			continue
		}
		fmt.Fprintf(w, "%s %-11s %s%s\n", formatOK("✓"), o.Kind, o.Label, placement(o.Entries))
	}
}

// placement summarizes where a meeting landed, e.g.
// " → Monday 10:00-11:00, weeks 1, 3".
func placement(entries []meeting.Entry) string {
	if len(entries) == 0 {
		return ""
	}
	first := entries[0]
	label := "week"
	if len(entries) > 1 {
		label = "weeks"
	}
	return fmt.Sprintf(" → %s %s-%s, %s %s", first.Day, first.Start, first.End(), label, formatWeeks(entries))
}

// formatWeeks lists the 1-based weeks of entries.
func formatWeeks(entries []meeting.Entry) string {
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = strconv.Itoa(int(e.Week) + 1)
	}
	return strings.Join(parts, ", ")
}

// printSummary prints how many items were applied.
func printSummary(w io.Writer, outcomes []batch.Outcome) {
	failed := batch.Failed(outcomes)
	line := fmt.Sprintf("Applied %d of %d items.", len(outcomes)-failed, len(outcomes))
	if failed > 0 {
		line = formatFail(line)
	}
	fmt.Fprintln(w, line)
}

// printSchedule prints the weekly tables of snap, each headed by its
// summary. A zero base leaves out the dates.
func printSchedule(w io.Writer, snap scheduler.Snapshot, base time.Time) {
	nameW := nameWidth(termWidth())
	summaries := summary.SummarizeAll(snap, base)

	for i, wr := range export.Rows(snap) {
		sum := summaries[i]
		fmt.Fprintf(w, "\n=== %s ===", formatHeader(wr.Title()))
		if dates := sum.DateRange(); dates != "" {
			fmt.Fprintf(w, " %s", dates)
		}
		fmt.Fprintf(w, "\n%s\n", formatMuted("  "+sum.Line()))
		if len(wr.Rows) == 0 {
			fmt.Fprintln(w, formatMuted("  No meetings scheduled."))
			continue
		}
		for _, r := range wr.Rows {
			printRow(w, r, nameW)
		}
	}
}

func printRow(w io.Writer, r export.Row, nameW int) {
	name := fmt.Sprintf("%-*s", nameW, truncate(r.Name, nameW))
	if r.Reserved {
		name = formatReserved(name)
	} else {
		name = formatMeeting(name)
	}
	fmt.Fprintf(w, "  %-9s  %s-%s  %s  %-11s  %2d min  %s\n",
		r.Day, r.Start, r.End, name, r.Type, r.Minutes, formatMuted(r.Frequency))
}

// printLoad prints per-day booked hours. Days at the meeting cap are
// highlighted.
func printLoad(w io.Writer, load scheduler.Load, meetingCap float64) {
	fmt.Fprintf(w, "\n%s\n", formatHeader("Load"))
	for _, d := range calendar.Days() {
		weekly := load.WeeklyMeetingHours(d)
		meetings := fmt.Sprintf("%.2fh/wk", weekly)
		if weekly >= meetingCap {
			meetings = formatFail(meetings)
		}
		fmt.Fprintf(w, "  %-9s  total %5.1fh  meetings %s\n", d, load.TotalHours(d), meetings)
	}
}

// printRuns prints one line per archived run.
func printRuns(w io.Writer, runs []*db.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No archived runs.")
		return
	}
	for _, r := range runs {
		label := r.Label
		if label == "" {
			label = formatMuted("(no label)")
		}
		fmt.Fprintf(w, "%s  %s  %s  %s\n",
			r.ID,
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			label,
			formatMuted(fmt.Sprintf("%d meetings, %d reservations, seed %d", r.EntryCount, r.ReservationCount, r.Seed)),
		)
	}
}

// printRun prints an archived run with its schedule.
func printRun(w io.Writer, r *db.Run) {
	fmt.Fprintf(w, "Run %s\n", formatHeader(r.ID))
	if r.Label != "" {
		fmt.Fprintf(w, "Label:   %s\n", r.Label)
	}
	fmt.Fprintf(w, "Created: %s\n", r.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Seed:    %d\n", r.Seed)
	printSchedule(w, runSnapshot(r), time.Time{})
}

func runSnapshot(r *db.Run) scheduler.Snapshot {
	return scheduler.Snapshot{
		Entries:      r.Entries,
		Reservations: r.Reservations,
	}
}

func nameWidth(termW int) int {
	return max(minNameWidth, min(maxNameWidth, termW-rowOverhead))
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}
