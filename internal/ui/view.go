package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/meetgrid/internal/batch"
	"github.com/javiermolinar/meetgrid/internal/tui"
	"github.com/javiermolinar/meetgrid/internal/tui/theme"
)

func (a *App) viewCmd() *cobra.Command {
	var seed uint64
	var start string

	cmd := &cobra.Command{
		Use:   "view FILE",
		Short: "Place a request file and browse the result",
		Long: `Place the meetings of a request file like 'meetgrid plan', then open
the week-by-week grid in the terminal.

Keys: ←/→ or h/l change week, y copies the week, ? toggles help, q quits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			base, err := a.horizonStart(start)
			if err != nil {
				return fmt.Errorf("horizon start: %w", err)
			}
			res, err := a.place(args[0], seed)
			if err != nil {
				return err
			}
			if failed := batch.Failed(res.outcomes); failed > 0 {
				a.log.Warn().Int("failed", failed).Msg("some items could not be applied")
			}

			t, err := theme.Load(a.config.UI.Theme)
			if err != nil {
				return fmt.Errorf("loading theme: %w", err)
			}
			return tui.Run(res.sched.Snapshot(), t,
				tui.WithMeetingCap(a.config.Schedule.MeetingCapHours),
				tui.WithBase(base),
				tui.WithClipboard(a.copyFn),
			)
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed for reproducible placement (0 = config or clock)")
	cmd.Flags().StringVar(&start, "start", "", "Horizon start for dates: this-week, next-week or a YYYY-MM-DD Monday")
	return cmd
}
