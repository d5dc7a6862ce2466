package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/meetgrid/internal/calendar"
)

type keyMap struct {
	PrevWeek key.Binding
	NextWeek key.Binding
	Copy     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevWeek, k.NextWeek, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevWeek, k.NextWeek},
		{k.Copy, k.Help, k.Quit},
	}
}

var defaultKeys = keyMap{
	PrevWeek: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "prev week"),
	),
	NextWeek: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "next week"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy week"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.PrevWeek):
		if m.week > 0 {
			m.week--
			m.status = ""
		}

	case key.Matches(msg, m.keys.NextWeek):
		if m.week < calendar.NumWeeks-1 {
			m.week++
			m.status = ""
		}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Copy):
		if err := m.copyFn(weekText(m.snap, m.week)); err != nil {
			m.status = fmt.Sprintf("Copy failed: %v", err)
		} else {
			m.status = fmt.Sprintf("Copied %s to clipboard", m.week)
		}
	}
	return m, nil
}
