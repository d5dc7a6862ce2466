package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/meetgrid/internal/calendar"
	"github.com/javiermolinar/meetgrid/internal/summary"
)

const (
	timeColWidth    = 8
	defaultColWidth = 18
	minColWidth     = 10
	maxColWidth     = 28
)

// View renders the current week.
func (m Model) View() string {
	colW := m.colWidth()
	cells := weekCells(m.snap, m.week)

	var b strings.Builder
	b.WriteString(m.renderTitle())
	b.WriteString("\n\n")

	b.WriteString(m.renderDayHeader(colW))
	b.WriteString("\n")
	for _, s := range calendar.Slots() {
		if s > 0 && s.Minutes()-(s-1).Minutes() > 30 {
			b.WriteString(m.renderBreakRow(colW))
			b.WriteString("\n")
		}
		b.WriteString(m.renderSlotRow(cells, s, colW))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderLoadRows(colW))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.styles.Status.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderTitle() string {
	sum := summary.SummarizeWeek(m.snap, m.week, m.base)
	title := fmt.Sprintf("meetgrid · %s of %d", m.week, calendar.NumWeeks)
	if dates := sum.DateRange(); dates != "" {
		title += " · " + dates
	}
	return m.styles.Title.Render(title) + "  " + m.styles.Status.Render(sum.Line())
}

// colWidth spreads the terminal width over the day columns.
func (m Model) colWidth() int {
	if m.width <= 0 {
		return defaultColWidth
	}
	w := (m.width - timeColWidth) / calendar.NumDays
	return max(minColWidth, min(maxColWidth, w))
}

func (m Model) renderDayHeader(colW int) string {
	var b strings.Builder
	b.WriteString(m.styles.TimeColumn.Width(timeColWidth).Render(""))
	for _, d := range calendar.Days() {
		b.WriteString(m.styles.DayHeader.Width(colW).Render(d.String()))
	}
	return b.String()
}

func (m Model) renderBreakRow(colW int) string {
	var b strings.Builder
	b.WriteString(m.styles.TimeColumn.Width(timeColWidth).Render(calendar.BreakLabels()[0]))
	for range calendar.Days() {
		b.WriteString(m.styles.Break.Width(colW).Render("break"))
	}
	return b.String()
}

func (m Model) renderSlotRow(cells weekGrid, s calendar.Slot, colW int) string {
	var b strings.Builder
	b.WriteString(m.styles.TimeColumn.Width(timeColWidth).Render(s.String()))
	for _, d := range calendar.Days() {
		b.WriteString(m.renderCell(cells[d][s], colW))
	}
	return b.String()
}

func (m Model) renderCell(c cell, colW int) string {
	text := ""
	if c.first {
		// Leave room for the left padding and a one-column gap.
		text = ansi.Truncate(c.label, colW-2, "…")
	}

	switch c.kind {
	case cellMeeting:
		return m.styles.Meeting.Width(colW).Render(text)
	case cellReserved:
		return m.styles.Reserved.Width(colW).Render(text)
	default:
		return m.styles.Empty.Width(colW).Render("·")
	}
}

// renderLoadRows shows total hours over the horizon and the average weekly
// meeting hours for each day. Days at the meeting cap are highlighted.
func (m Model) renderLoadRows(colW int) string {
	load := m.snap.Load

	total := []string{m.styles.TimeColumn.Width(timeColWidth).Render("total")}
	meetings := []string{m.styles.TimeColumn.Width(timeColWidth).Render("mtg/wk")}
	for _, d := range calendar.Days() {
		total = append(total, m.styles.Load.Width(colW).Render(fmt.Sprintf("%.1fh", load.TotalHours(d))))

		style := m.styles.Load
		if load.WeeklyMeetingHours(d) >= m.meetingCap {
			style = m.styles.LoadOver
		}
		meetings = append(meetings, style.Width(colW).Render(fmt.Sprintf("%.2fh", load.WeeklyMeetingHours(d))))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, total...) + "\n" +
		lipgloss.JoinHorizontal(lipgloss.Top, meetings...)
}
