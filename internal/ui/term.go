package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Meetings: bold cyan
	colorMeeting = color.New(color.FgCyan, color.Bold)

	// Reservations: yellow, they are not ours to move
	colorReserved = color.New(color.FgYellow)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Placed items
	colorOK = color.New(color.FgGreen)

	// Failed items and days at the meeting cap
	colorFail = color.New(color.FgRed)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

func formatMeeting(s string) string {
	return colorMeeting.Sprint(s)
}

func formatReserved(s string) string {
	return colorReserved.Sprint(s)
}

func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

func formatOK(s string) string {
	return colorOK.Sprint(s)
}

func formatFail(s string) string {
	return colorFail.Sprint(s)
}

func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
