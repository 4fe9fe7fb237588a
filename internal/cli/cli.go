package cli

import (
	"fmt"
	"os"

	"github.com/pfrederiksen/stadium-alerts/internal/config"
	"github.com/pfrederiksen/stadium-alerts/internal/logger"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig   string
	flagLogLevel string
	flagDryRun   bool
	flagFormat   string
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stadium-alerts",
		Short: "Traffic disruption alerts for the South Philadelphia stadium district",
		Long: `A CLI tool that reads the monthly event calendars of the South Philadelphia
sports complex and warns about early, large and combined events that disrupt traffic.
Alerts go to Discord, Telegram or stdout.`,
		SilenceUsage: true,
	}

	// Define flags
	flags := cmd.PersistentFlags()
	flags.StringVar(&flagConfig, "config", "", "Config file (default ~/.stadium-alerts.yaml)")
	flags.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn or error (overrides config)")
	flags.BoolVar(&flagDryRun, "dry-run", false, "Print messages to stdout instead of sending them")
	flags.StringVar(&flagFormat, "format", "text", "Output format: text or json")

	cmd.AddCommand(
		newTodayCmd(),
		newWeekCmd(),
		newParseCmd(),
		newLinksCmd(),
		newExportICSCmd(),
		newServeCmd(),
		newSyncCmd(),
		newConfigCmd(),
	)

	return cmd
}

// setupLogger installs the default logger at the flag level, falling back to
// fallback when the flag is unset.
func setupLogger(cmd *cobra.Command, fallback string) error {
	level := flagLogLevel
	if level == "" {
		level = fallback
	}
	lvl, err := logger.ParseLevel(level)
	if err != nil {
		return err
	}
	logger.SetDefault(logger.New(lvl, cmd.ErrOrStderr()))
	return nil
}

// setup loads the configuration and builds the App for a command.
func setup(cmd *cobra.Command) (*App, OutputFormat, error) {
	format, err := parseFormat(flagFormat)
	if err != nil {
		return nil, "", err
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, "", err
	}
	if err := setupLogger(cmd, cfg.LogLevel); err != nil {
		return nil, "", err
	}

	app, err := NewApp(cfg, Options{
		DryRun: flagDryRun,
		Out:    cmd.OutOrStdout(),
	})
	if err != nil {
		return nil, "", err
	}
	return app, format, nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
