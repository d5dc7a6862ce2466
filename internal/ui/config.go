package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/meetgrid/internal/config"
	"github.com/javiermolinar/meetgrid/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  meetgrid config`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInteractive(config.DefaultConfigPath(), os.Stdin, a.out)
		},
	}
}

func runConfigInteractive(configPath string, in io.Reader, out io.Writer) error {
	fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, fileErr := os.Stat(configPath)
	if os.IsNotExist(fileErr) {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	printConfig(out, cfg)

	reader := bufio.NewReader(in)
	if !promptYesNo(reader, out, "\nWould you like to edit the configuration?") {
		return nil
	}

	cfg.Schedule.MeetingCapHours = promptFloat(reader, out, "Meeting cap (hours per day per week)", cfg.Schedule.MeetingCapHours)
	cfg.Schedule.Seed = promptUint(reader, out, "Seed (0 = clock)", cfg.Schedule.Seed)
	cfg.Server.Addr = promptValue(reader, out, "Server address", cfg.Server.Addr)
	cfg.Export.BaseDate = promptValue(reader, out, "Export base date (Monday, YYYY-MM-DD)", cfg.Export.BaseDate)
	cfg.Storage.DBPath = promptValue(reader, out, "Archive path", cfg.Storage.DBPath)
	cfg.Log.Level = promptValue(reader, out, "Log level", cfg.Log.Level)
	cfg.UI.Theme = promptTheme(reader, out, cfg.UI.Theme)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out, "──────────────────────")
	fmt.Fprintln(out, "[schedule]")
	fmt.Fprintf(out, "  meeting_cap_hours = %g\n", cfg.Schedule.MeetingCapHours)
	fmt.Fprintf(out, "  seed              = %d\n", cfg.Schedule.Seed)
	fmt.Fprintln(out, "\n[server]")
	fmt.Fprintf(out, "  addr              = %s\n", cfg.Server.Addr)
	fmt.Fprintf(out, "  rate_limit        = %g\n", cfg.Server.RateLimit)
	fmt.Fprintf(out, "  burst             = %d\n", cfg.Server.Burst)
	fmt.Fprintln(out, "\n[export]")
	fmt.Fprintf(out, "  base_date         = %s\n", cfg.Export.BaseDate)
	fmt.Fprintf(out, "  prod_id           = %s\n", cfg.Export.ProdID)
	fmt.Fprintln(out, "\n[storage]")
	fmt.Fprintf(out, "  db_path           = %s\n", cfg.Storage.DBPath)
	fmt.Fprintln(out, "\n[log]")
	fmt.Fprintf(out, "  level             = %s\n", cfg.Log.Level)
	fmt.Fprintf(out, "  format            = %s\n", cfg.Log.Format)
	fmt.Fprintln(out, "\n[ui]")
	fmt.Fprintf(out, "  theme             = %s\n", cfg.UI.Theme)
}

func promptYesNo(reader *bufio.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, out io.Writer, label, current string) string {
	if current == "" {
		fmt.Fprintf(out, "  %s: ", label)
	} else {
		fmt.Fprintf(out, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptFloat(reader *bufio.Reader, out io.Writer, label string, current float64) float64 {
	for {
		value := promptValue(reader, out, label, strconv.FormatFloat(current, 'g', -1, 64))
		f, err := strconv.ParseFloat(value, 64)
		if err == nil && f > 0 {
			return f
		}
		fmt.Fprintf(out, "  Invalid number %q\n", value)
	}
}

func promptUint(reader *bufio.Reader, out io.Writer, label string, current uint64) uint64 {
	for {
		value := promptValue(reader, out, label, strconv.FormatUint(current, 10))
		n, err := strconv.ParseUint(value, 10, 64)
		if err == nil {
			return n
		}
		fmt.Fprintf(out, "  Invalid number %q\n", value)
	}
}

func promptTheme(reader *bufio.Reader, out io.Writer, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, out, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Fprintf(out, "  Invalid theme %q. Available: %s\n", value, options)
	}
}
