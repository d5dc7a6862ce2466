// Package ui implements the meetgrid command line.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/meetgrid/internal/config"
	"github.com/javiermolinar/meetgrid/internal/db"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config  *config.Config
	log     zerolog.Logger
	archive *db.SQLite // opened on first use
	root    *cobra.Command
	out     io.Writer
	noColor bool

	copyFn func(string) error
}

// NewApp creates a new CLI application with the given config and logger.
func NewApp(cfg *config.Config, log zerolog.Logger) *App {
	a := &App{
		config: cfg,
		log:    log,
		out:    os.Stdout,
		copyFn: clipboard.WriteAll,
	}

	a.root = &cobra.Command{
		Use:   "meetgrid",
		Short: "Place recurring meetings on a four-week grid",
		Long: `meetgrid places recurring meetings on a four-week, Monday to Thursday
grid of half-hour slots from 09:00 to 17:00, with a midday break.

Meetings go to the least loaded day that has room, keeping each day under
a weekly meeting cap. External commitments can be reserved up front and
block the same slots every week.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if a.noColor {
				DisableColor()
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable color output")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.planCmd())
	a.root.AddCommand(a.viewCmd())
	a.root.AddCommand(a.serveCmd())
	a.root.AddCommand(a.historyCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(a.out, "meetgrid %s (commit: %s)\n", Version, Commit)
		},
	}
}

// ensureArchive opens the run archive if it is not open yet.
func (a *App) ensureArchive() error {
	if a.archive != nil {
		return nil
	}
	archive, err := db.New(a.config.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	a.archive = archive
	return nil
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the archive if it was opened.
func (a *App) Close() error {
	if a.archive == nil {
		return nil
	}
	err := a.archive.Close()
	a.archive = nil
	return err
}
