// Package server exposes a scheduler over HTTP: the HTML form front end and
// a small JSON API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/javiermolinar/meetgrid/internal/export"
	"github.com/javiermolinar/meetgrid/internal/scheduler"
)

const shutdownTimeout = 5 * time.Second

// Options configures a Server.
type Options struct {
	Addr      string
	RateLimit float64 // requests per second per client, 0 disables
	Burst     int
	Base      time.Time // Monday of week 1 for ICS export
	ProdID    string
}

// Server owns one scheduler session shared by every client.
type Server struct {
	echo  *echo.Echo
	sched *scheduler.Scheduler
	opts  Options
	log   zerolog.Logger
}

// New builds a Server around sched and registers every route.
func New(sched *scheduler.Scheduler, opts Options, log zerolog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:  e,
		sched: sched,
		opts:  opts,
		log:   log,
	}

	e.Use(accessLog(log))
	if opts.RateLimit > 0 {
		e.Use(rateLimit(newClientLimiter(opts.RateLimit, opts.Burst)))
	}

	s.registerPages()
	s.registerAPI()
	return s
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.opts.Addr).Msg("server listening")
		errCh <- s.echo.Start(s.opts.Addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	s.log.Info().Msg("server stopped")
	return nil
}

func (s *Server) icsOptions() export.ICSOptions {
	return export.ICSOptions{
		Base:   s.opts.Base,
		ProdID: s.opts.ProdID,
	}
}
