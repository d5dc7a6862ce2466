// Package tui provides a terminal viewer for a placed schedule.
package tui

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/meetgrid/internal/calendar"
	"github.com/javiermolinar/meetgrid/internal/scheduler"
	"github.com/javiermolinar/meetgrid/internal/tui/theme"
)

const defaultMeetingCap = 2.5

// Model is the bubbletea model of the schedule viewer. It never mutates
// the snapshot it was built from.
type Model struct {
	snap   scheduler.Snapshot
	week   calendar.Week
	width  int
	height int

	styles *Styles
	keys   keyMap
	help   help.Model

	meetingCap float64
	base       time.Time // Monday of week 1; zero hides dates
	status     string
	copyFn     func(string) error
}

// ModelOption configures optional Model behavior.
type ModelOption func(*Model)

// WithMeetingCap sets the weekly meeting hours at which a day is flagged in
// the footer.
func WithMeetingCap(hours float64) ModelOption {
	return func(m *Model) {
		if hours > 0 {
			m.meetingCap = hours
		}
	}
}

// WithBase sets the Monday of week 1 so the title can show dates.
func WithBase(base time.Time) ModelOption {
	return func(m *Model) {
		m.base = base
	}
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(fn func(string) error) ModelOption {
	return func(m *Model) {
		m.copyFn = fn
	}
}

// New creates a viewer for snap. A nil theme means the default theme.
func New(snap scheduler.Snapshot, t *theme.Theme, opts ...ModelOption) Model {
	if t == nil {
		t, _ = theme.Load("")
	}
	styles := NewStyles(t)

	h := help.New()
	h.Styles.ShortKey = styles.HelpKey
	h.Styles.ShortDesc = styles.HelpDesc
	h.Styles.FullKey = styles.HelpKey
	h.Styles.FullDesc = styles.HelpDesc

	m := Model{
		snap:       snap,
		styles:     styles,
		keys:       defaultKeys,
		help:       h,
		meetingCap: defaultMeetingCap,
		copyFn:     clipboard.WriteAll,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Week returns the week currently on screen.
func (m Model) Week() calendar.Week {
	return m.week
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}
	return m, nil
}

// Run starts the viewer in the alternate screen and blocks until it quits.
func Run(snap scheduler.Snapshot, t *theme.Theme, opts ...ModelOption) error {
	p := tea.NewProgram(New(snap, t, opts...), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
