package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/meetgrid/internal/tui/theme"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	Title      lipgloss.Style
	DayHeader  lipgloss.Style
	TimeColumn lipgloss.Style

	// Cells
	Empty    lipgloss.Style
	Meeting  lipgloss.Style
	Reserved lipgloss.Style
	Break    lipgloss.Style

	// Footer
	Load     lipgloss.Style
	LoadOver lipgloss.Style
	Status   lipgloss.Style
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	bg := theme.Color(t.Bg)
	fg := theme.Color(t.Fg)
	muted := theme.Color(t.FgMuted)
	accent := theme.Color(t.Accent)

	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),
		DayHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg).
			Background(theme.Color(t.BgHighlight)).
			PaddingLeft(1),
		TimeColumn: lipgloss.NewStyle().
			Foreground(muted),

		Empty: lipgloss.NewStyle().
			Foreground(muted).
			PaddingLeft(1),
		Meeting: lipgloss.NewStyle().
			Foreground(bg).
			Background(theme.Color(t.Meeting)).
			PaddingLeft(1),
		Reserved: lipgloss.NewStyle().
			Foreground(bg).
			Background(theme.Color(t.Reserved)).
			PaddingLeft(1),
		Break: lipgloss.NewStyle().
			Foreground(muted).
			Italic(true).
			PaddingLeft(1),

		Load: lipgloss.NewStyle().
			Foreground(fg).
			PaddingLeft(1),
		LoadOver: lipgloss.NewStyle().
			Foreground(theme.Color(t.Warning)).
			Bold(true).
			PaddingLeft(1),
		Status: lipgloss.NewStyle().
			Foreground(accent),
		HelpKey: lipgloss.NewStyle().
			Foreground(accent),
		HelpDesc: lipgloss.NewStyle().
			Foreground(muted),
	}
}
