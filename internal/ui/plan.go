package ui

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/meetgrid/internal/batch"
	"github.com/javiermolinar/meetgrid/internal/dateutil"
	"github.com/javiermolinar/meetgrid/internal/db"
	"github.com/javiermolinar/meetgrid/internal/export"
	"github.com/javiermolinar/meetgrid/internal/logging"
	"github.com/javiermolinar/meetgrid/internal/scheduler"
)

// planResult is a request file applied to a fresh scheduler.
type planResult struct {
	sched    *scheduler.Scheduler
	outcomes []batch.Outcome
	seed     uint64
}

// place loads path and applies it to a new scheduler. A zero seed falls
// back to the configured seed, then to the clock.
func (a *App) place(path string, seed uint64) (*planResult, error) {
	f, err := batch.Load(path)
	if err != nil {
		return nil, err
	}

	if seed == 0 {
		seed = a.config.Schedule.Seed
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	sched := scheduler.New(
		scheduler.WithSeed(seed),
		scheduler.WithMeetingCap(a.config.Schedule.MeetingCapHours),
		scheduler.WithLogger(logging.Component(a.log, "scheduler")),
	)

	outcomes := batch.Apply(sched, f)
	a.log.Debug().
		Str("file", path).
		Uint64("seed", seed).
		Int("items", len(outcomes)).
		Int("failed", batch.Failed(outcomes)).
		Msg("request file applied")

	return &planResult{sched: sched, outcomes: outcomes, seed: seed}, nil
}

// horizonStart resolves --start, falling back to the configured base date.
func (a *App) horizonStart(start string) (time.Time, error) {
	if start == "" {
		return a.config.Export.Base()
	}
	return dateutil.ParseStart(start, time.Now())
}

type planOpts struct {
	seed    uint64
	start   string
	icsPath string
	html    string
	copyICS bool
	archive bool
	label   string
}

func (a *App) planCmd() *cobra.Command {
	var opts planOpts

	cmd := &cobra.Command{
		Use:   "plan FILE",
		Short: "Place the meetings of a request file",
		Long: `Load a TOML request file into a fresh schedule and print the result.

Reservations are applied first, then meetings in file order. A meeting
that cannot be placed is reported and the rest of the file still runs.

Example file:

  [[reservation]]
  day = "Tuesday"
  start = "14:00"
  duration = 60

  [[meeting]]
  name = "Design review"
  type = "Design"
  duration = 90
  preferred = ["10:00", "14:30"]
  frequency = "fortnightly"

Examples:
  meetgrid plan team.toml
  meetgrid plan team.toml --seed 42 --ics team.ics
  meetgrid plan team.toml --archive --label "Q3 draft"`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.runPlan(args[0], opts)
		},
	}

	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "Random seed for reproducible placement (0 = config or clock)")
	cmd.Flags().StringVar(&opts.start, "start", "", "Horizon start for exports: this-week, next-week or a YYYY-MM-DD Monday")
	cmd.Flags().StringVar(&opts.icsPath, "ics", "", "Write the schedule as an iCalendar file")
	cmd.Flags().StringVar(&opts.html, "html", "", "Write the schedule as an HTML page")
	cmd.Flags().BoolVar(&opts.copyICS, "copy-ics", false, "Copy the iCalendar export to the clipboard")
	cmd.Flags().BoolVar(&opts.archive, "archive", false, "Save the run to the archive")
	cmd.Flags().StringVar(&opts.label, "label", "", "Label for the archived run")
	return cmd
}

func (a *App) runPlan(path string, opts planOpts) error {
	base, err := a.horizonStart(opts.start)
	if err != nil {
		return fmt.Errorf("horizon start: %w", err)
	}
	res, err := a.place(path, opts.seed)
	if err != nil {
		return err
	}
	snap := res.sched.Snapshot()

	printOutcomes(a.out, res.outcomes)
	printSummary(a.out, res.outcomes)
	printSchedule(a.out, snap, base)
	printLoad(a.out, snap.Load, a.config.Schedule.MeetingCapHours)
	fmt.Fprintln(a.out, formatMuted(fmt.Sprintf("\nSeed: %d", res.seed)))

	if opts.icsPath != "" || opts.copyICS {
		if err := a.exportICS(snap, base, opts); err != nil {
			return err
		}
	}
	if opts.html != "" {
		if err := writeHTMLFile(opts.html, snap); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Wrote %s\n", opts.html)
	}
	if opts.archive {
		if err := a.archiveRun(snap, res.seed, opts.label); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) exportICS(snap scheduler.Snapshot, base time.Time, opts planOpts) error {
	data, err := export.ICS(snap, export.ICSOptions{Base: base, ProdID: a.config.Export.ProdID})
	if err != nil {
		return fmt.Errorf("exporting calendar: %w", err)
	}

	if opts.icsPath != "" {
		if err := os.WriteFile(opts.icsPath, data, 0o644); err != nil {
			return fmt.Errorf("writing calendar: %w", err)
		}
		fmt.Fprintf(a.out, "Wrote %s\n", opts.icsPath)
	}
	if opts.copyICS {
		if err := a.copyFn(string(data)); err != nil {
			return fmt.Errorf("copying calendar: %w", err)
		}
		fmt.Fprintln(a.out, "Copied calendar to clipboard")
	}
	return nil
}

func writeHTMLFile(path string, snap scheduler.Snapshot) error {
	var buf bytes.Buffer
	if err := export.WriteHTML(&buf, snap, export.HTMLOptions{}); err != nil {
		return fmt.Errorf("rendering schedule: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing schedule: %w", err)
	}
	return nil
}

func (a *App) archiveRun(snap scheduler.Snapshot, seed uint64, label string) error {
	if err := a.ensureArchive(); err != nil {
		return err
	}

	run := &db.Run{
		Label:        label,
		Seed:         seed,
		Entries:      snap.Entries,
		Reservations: snap.Reservations,
	}
	if err := a.archive.SaveRun(context.Background(), run); err != nil {
		return fmt.Errorf("archiving run: %w", err)
	}
	fmt.Fprintf(a.out, "Archived run %s\n", run.ID)
	return nil
}
