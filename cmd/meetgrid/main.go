package main

import (
	"fmt"
	"os"

	"github.com/javiermolinar/meetgrid/internal/config"
	"github.com/javiermolinar/meetgrid/internal/logging"
	"github.com/javiermolinar/meetgrid/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logging.New(cfg.Log, os.Stderr)

	app := ui.NewApp(cfg, log)
	defer func() { _ = app.Close() }()
	return app.Execute()
}
