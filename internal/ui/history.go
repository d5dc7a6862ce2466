package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/meetgrid/internal/db"
)

func (a *App) historyCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List archived runs",
		Long: `List runs saved with 'meetgrid plan --archive', newest first.

Examples:
  meetgrid history
  meetgrid history show 6f1c...`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureArchive(); err != nil {
				return err
			}
			runs, err := a.archive.ListRuns(context.Background(), limit)
			if err != nil {
				return fmt.Errorf("listing runs: %w", err)
			}
			printRuns(a.out, runs)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to list (0 = all)")
	cmd.AddCommand(a.historyShowCmd())
	cmd.AddCommand(a.historyRmCmd())
	return cmd
}

func (a *App) historyShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Print an archived run",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureArchive(); err != nil {
				return err
			}
			run, err := a.archive.GetRun(context.Background(), args[0])
			if err != nil {
				return runError(args[0], err)
			}
			printRun(a.out, run)
			return nil
		},
	}
}

func (a *App) historyRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm ID",
		Short: "Delete an archived run",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureArchive(); err != nil {
				return err
			}
			if err := a.archive.DeleteRun(context.Background(), args[0]); err != nil {
				return runError(args[0], err)
			}
			fmt.Fprintf(a.out, "Deleted run %s\n", args[0])
			return nil
		},
	}
}

func runError(id string, err error) error {
	if errors.Is(err, db.ErrRunNotFound) {
		return fmt.Errorf("no archived run with ID %q", id)
	}
	return fmt.Errorf("run %s: %w", id, err)
}
