package ui

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/meetgrid/internal/logging"
	"github.com/javiermolinar/meetgrid/internal/scheduler"
	"github.com/javiermolinar/meetgrid/internal/server"
)

func (a *App) serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web front end",
		Long: `Serve the HTML forms and the JSON API over one shared schedule until
interrupted. The schedule lives in memory and starts empty.

Example:
  meetgrid serve --addr 0.0.0.0:8888`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.config.Server.Addr
			}
			base, err := a.config.Export.Base()
			if err != nil {
				return fmt.Errorf("base date: %w", err)
			}

			opts := []scheduler.Option{
				scheduler.WithMeetingCap(a.config.Schedule.MeetingCapHours),
				scheduler.WithLogger(logging.Component(a.log, "scheduler")),
			}
			if a.config.Schedule.Seed != 0 {
				opts = append(opts, scheduler.WithSeed(a.config.Schedule.Seed))
			}

			srv := server.New(scheduler.New(opts...), server.Options{
				Addr:      addr,
				RateLimit: a.config.Server.RateLimit,
				Burst:     a.config.Server.Burst,
				Base:      base,
				ProdID:    a.config.Export.ProdID,
			}, logging.Component(a.log, "server"))

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(a.out, "Serving on http://%s\n", addr)
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	return cmd
}
