package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/javiermolinar/meetgrid/internal/calendar"
	"github.com/javiermolinar/meetgrid/internal/meeting"
	"github.com/javiermolinar/meetgrid/internal/scheduler"
)

func setColorProfile(t *testing.T, p termenv.Profile) {
	t.Helper()
	prev := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(p)
	t.Cleanup(func() {
		lipgloss.SetColorProfile(prev)
	})
}

func testSnapshot(t *testing.T) scheduler.Snapshot {
	t.Helper()
	s := scheduler.New(scheduler.WithSeed(1))
	if err := s.ReserveSlot("Tuesday", "14:00", 60); err != nil {
		t.Fatalf("ReserveSlot: %v", err)
	}

	req, err := meeting.NewRequest(meeting.RequestInput{
		Name:      "Standup",
		Type:      "Management",
		Minutes:   30,
		Day:       "Monday",
		Time:      "10:00",
		Frequency: "weekly",
	})
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	if _, err := s.Place(req); err != nil {
		t.Fatalf("Place: %v", err)
	}
	return s.Snapshot()
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	model, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", updated)
	}
	return model, cmd
}

func TestWeekCells(t *testing.T) {
	snap := testSnapshot(t)

	for _, w := range calendar.Weeks() {
		cells := weekCells(snap, w)

		// 14:00 and 14:30 on Tuesday
		res := cells[calendar.Tuesday][8]
		if res.kind != cellReserved || !res.first || res.label != reservedLabel {
			t.Errorf("%s: Tuesday 14:00 = %+v, want reserved start", w, res)
		}
		if cont := cells[calendar.Tuesday][9]; cont.kind != cellReserved || cont.first {
			t.Errorf("%s: Tuesday 14:30 = %+v, want reserved continuation", w, cont)
		}

		mtg := cells[calendar.Monday][2]
		if mtg.kind != cellMeeting || mtg.label != "Standup" || !mtg.first {
			t.Errorf("%s: Monday 10:00 = %+v, want Standup", w, mtg)
		}
		if free := cells[calendar.Monday][3]; free.kind != cellFree {
			t.Errorf("%s: Monday 10:30 = %+v, want free", w, free)
		}
	}
}

func TestWeekCells_EntryOnlyInItsWeek(t *testing.T) {
	snap := scheduler.Snapshot{
		Entries: []meeting.Entry{
			{Week: 2, Day: calendar.Thursday, Start: 6, Duration: 3, Name: "Review", Type: "Design", Frequency: meeting.Monthly},
		},
	}

	for _, w := range calendar.Weeks() {
		cells := weekCells(snap, w)
		got := cells[calendar.Thursday][6].kind
		want := cellFree
		if w == 2 {
			want = cellMeeting
		}
		if got != want {
			t.Errorf("%s: Thursday 13:00 kind = %d, want %d", w, got, want)
		}
	}

	cells := weekCells(snap, 2)
	for s := 6; s < 9; s++ {
		if cells[calendar.Thursday][s].kind != cellMeeting {
			t.Errorf("slot %d not covered by the 90 minute meeting", s)
		}
	}
	if cells[calendar.Thursday][9].kind != cellFree {
		t.Error("meeting spilled past its duration")
	}
}

func TestWeekNavigation(t *testing.T) {
	m := New(testSnapshot(t), nil)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.Week() != 0 {
		t.Fatalf("left on the first week moved to %s", m.Week())
	}

	for range calendar.NumWeeks + 2 {
		m, _ = press(t, m, keyRunes("l"))
	}
	if m.Week() != calendar.NumWeeks-1 {
		t.Fatalf("week = %d, want %d", m.Week(), calendar.NumWeeks-1)
	}

	m, _ = press(t, m, keyRunes("h"))
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.Week() != 2 {
		t.Errorf("week = %d, want 2", m.Week())
	}
}

func TestHelpToggle(t *testing.T) {
	m := New(testSnapshot(t), nil)
	if m.help.ShowAll {
		t.Fatal("full help shown by default")
	}

	m, _ = press(t, m, keyRunes("?"))
	if !m.help.ShowAll {
		t.Fatal("? did not expand help")
	}
	if !strings.Contains(m.View(), "copy week") {
		t.Error("full help should list the copy binding")
	}

	m, _ = press(t, m, keyRunes("?"))
	if m.help.ShowAll {
		t.Error("? did not collapse help")
	}
}

func TestQuit(t *testing.T) {
	for _, msg := range []tea.KeyMsg{keyRunes("q"), {Type: tea.KeyCtrlC}} {
		t.Run(msg.String(), func(t *testing.T) {
			_, cmd := press(t, New(testSnapshot(t), nil), msg)
			if cmd == nil {
				t.Fatal("expected a command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Error("expected tea.QuitMsg")
			}
		})
	}
}

func TestWindowSize(t *testing.T) {
	m := New(testSnapshot(t), nil)
	if got := m.colWidth(); got != defaultColWidth {
		t.Errorf("colWidth before resize = %d, want %d", got, defaultColWidth)
	}

	tests := []struct {
		width int
		want  int
	}{
		{width: 88, want: 20},
		{width: 20, want: minColWidth},
		{width: 400, want: maxColWidth},
	}
	for _, tt := range tests {
		updated, _ := m.Update(tea.WindowSizeMsg{Width: tt.width, Height: 40})
		if got := updated.(Model).colWidth(); got != tt.want {
			t.Errorf("width %d: colWidth = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestView_Content(t *testing.T) {
	setColorProfile(t, termenv.Ascii)

	m := New(testSnapshot(t), nil)
	out := m.View()

	for _, want := range []string{
		"Week 1 of 4",
		"Monday", "Thursday",
		"09:00", "16:30",
		"12:00", "break",
		"Standup", reservedLabel,
		"4.0h",  // Tuesday: one hour reserved in each of four weeks
		"0.50h", // Monday: half an hour of meetings per week
	} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(out, "12:30") {
		t.Error("break should be a single row")
	}
	if n := strings.Count(out, "Standup"); n != 1 {
		t.Errorf("Standup rendered %d times, want 1", n)
	}

	m, _ = press(t, m, keyRunes("l"))
	if !strings.Contains(m.View(), "Week 2 of 4") {
		t.Error("title did not follow navigation")
	}
}

func TestView_TitleSummary(t *testing.T) {
	setColorProfile(t, termenv.Ascii)

	base := time.Date(2025, 4, 14, 0, 0, 0, 0, time.UTC)
	m := New(testSnapshot(t), nil, WithBase(base))

	title := strings.SplitN(m.View(), "\n", 2)[0]
	for _, want := range []string{"Week 1 of 4 · Apr 14 - Apr 17", "1 meeting, 30m; 1h reserved; busiest Tuesday (1h)"} {
		if !strings.Contains(title, want) {
			t.Errorf("title %q missing %q", title, want)
		}
	}

	m, _ = press(t, m, keyRunes("l"))
	if !strings.Contains(m.View(), "Apr 21 - Apr 24") {
		t.Error("dates did not follow navigation")
	}
}

func TestView_BreakRowPosition(t *testing.T) {
	setColorProfile(t, termenv.Ascii)

	lines := strings.Split(New(scheduler.Snapshot{}, nil).View(), "\n")
	idx := func(prefix string) int {
		for i, l := range lines {
			if strings.HasPrefix(l, prefix) {
				return i
			}
		}
		return -1
	}

	before, brk, after := idx("11:30"), idx("12:00"), idx("13:00")
	if before < 0 || brk != before+1 || after != brk+1 {
		t.Errorf("break row out of place: 11:30=%d 12:00=%d 13:00=%d", before, brk, after)
	}
}

func TestRenderCell_Truncates(t *testing.T) {
	setColorProfile(t, termenv.Ascii)

	m := New(scheduler.Snapshot{}, nil)
	out := m.renderCell(cell{kind: cellMeeting, label: "Architecture deep dive", first: true}, 12)

	if !strings.Contains(out, "…") {
		t.Errorf("expected ellipsis in %q", out)
	}
	if w := ansi.StringWidth(out); w != 12 {
		t.Errorf("cell width = %d, want 12", w)
	}
}

func TestView_ThemeColors(t *testing.T) {
	setColorProfile(t, termenv.TrueColor)

	out := New(testSnapshot(t), nil).View()

	// mocha meeting #89b4fa and reserved #fab387 backgrounds
	for _, seq := range []string{"48;2;137;180;250", "48;2;250;179;135"} {
		if !strings.Contains(out, seq) {
			t.Errorf("expected color sequence %q in view", seq)
		}
	}
}

func TestView_MeetingCapHighlight(t *testing.T) {
	setColorProfile(t, termenv.TrueColor)

	// mocha warning #f38ba8
	const warnSeq = "38;2;243;139;168"

	if strings.Contains(New(testSnapshot(t), nil).View(), warnSeq) {
		t.Error("no day is at the default cap")
	}
	if !strings.Contains(New(testSnapshot(t), nil, WithMeetingCap(0.5)).View(), warnSeq) {
		t.Error("Monday at the cap should be highlighted")
	}
}

func TestCopyWeek(t *testing.T) {
	var copied string
	m := New(testSnapshot(t), nil, WithClipboard(func(s string) error {
		copied = s
		return nil
	}))

	m, _ = press(t, m, keyRunes("y"))

	for _, want := range []string{"Week 1", "Monday    10:00-10:30  Standup (Management, weekly)", "Reserved (External)"} {
		if !strings.Contains(copied, want) {
			t.Errorf("clipboard text missing %q:\n%s", want, copied)
		}
	}
	if m.status != "Copied Week 1 to clipboard" {
		t.Errorf("status = %q", m.status)
	}

	m, _ = press(t, m, keyRunes("l"))
	if m.status != "" {
		t.Errorf("status not cleared on navigation: %q", m.status)
	}
}

func TestCopyWeek_Error(t *testing.T) {
	m := New(scheduler.Snapshot{}, nil, WithClipboard(func(string) error {
		return errors.New("no clipboard")
	}))

	m, _ = press(t, m, keyRunes("y"))
	if m.status != "Copy failed: no clipboard" {
		t.Errorf("status = %q", m.status)
	}
}

func TestWeekText_Empty(t *testing.T) {
	got := weekText(scheduler.Snapshot{}, 3)
	if got != "Week 4\nNo meetings scheduled.\n" {
		t.Errorf("weekText = %q", got)
	}
}
