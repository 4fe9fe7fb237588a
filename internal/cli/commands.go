package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pfrederiksen/stadium-alerts/internal/config"
	"github.com/pfrederiksen/stadium-alerts/internal/filter"
	"github.com/pfrederiksen/stadium-alerts/internal/parser"
	"github.com/pfrederiksen/stadium-alerts/internal/report"
	"github.com/spf13/cobra"
)

func newTodayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Send today's disruption alert",
		Long: `Sync the calendar mirror, then alert on today's early or large events.
When nothing is disruptive a notice goes to the debug channel instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, format, err := setup(cmd)
			if err != nil {
				return err
			}
			rep, err := app.Daily(cmd.Context())
			if err != nil {
				return err
			}
			return WriteReport(cmd.OutOrStdout(), rep, format)
		},
	}
}

func newWeekCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "Send the summary of the next five days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, format, err := setup(cmd)
			if err != nil {
				return err
			}
			rep, err := app.Weekly(cmd.Context())
			if err != nil {
				return err
			}
			return WriteReport(cmd.OutOrStdout(), rep, format)
		},
	}
}

func newParseCmd() *cobra.Command {
	var flagSort string

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse the text of a calendar and print its entries",
		Long: `Parse a free-text calendar dump (the OCR text of a monthly calendar) into
date, time, event and attendance columns. Entries that only the fallback
grammar could read are marked degraded.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseFormat(flagFormat)
			if err != nil {
				return err
			}
			order, err := parseSortOrder(flagSort)
			if err != nil {
				return err
			}
			if err := setupLogger(cmd, ""); err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading calendar text: %w", err)
			}

			results := parser.New().ParseText(string(data))
			sortResults(results, order)
			return WriteParseResults(cmd.OutOrStdout(), results, format)
		},
	}

	cmd.Flags().StringVar(&flagSort, "sort", string(SortBySource), "Sort order: source, date or attendance")
	return cmd
}

func newLinksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "links",
		Short: "Check the district page for new calendar versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, format, err := setup(cmd)
			if err != nil {
				return err
			}
			fresh, err := app.CheckLinks(cmd.Context())
			if err != nil {
				return err
			}
			return WriteLinks(cmd.OutOrStdout(), &LinksResult{
				CheckedAt: time.Now().UTC(),
				NewLinks:  fresh,
				Count:     len(fresh),
			}, format)
		},
	}
}

func newExportICSCmd() *cobra.Command {
	var (
		flagDays   int
		flagRange  string
		flagOutput string
	)
	f := filter.NewFilter()

	cmd := &cobra.Command{
		Use:   "export-ics",
		Short: "Export upcoming events as an iCalendar file",
		Long: `Export upcoming events as an iCalendar file. The window is --days days from
today, or --range ("Jun 1-15", "June 28 - July 3", "September"). Events can be
narrowed by venue, name, weekday, attendance and disruption.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, _, err := setup(cmd)
			if err != nil {
				return err
			}

			rng := app.ExportRange(flagDays)
			if flagRange != "" {
				from, to, err := filter.ParseDateRange(flagRange, app.today())
				if err != nil {
					return err
				}
				rng = report.Range{Start: from, End: to}
			}

			ics, err := app.ExportICS(rng, f)
			if err != nil {
				return err
			}
			if flagOutput == "" || flagOutput == "-" {
				_, err = fmt.Fprint(cmd.OutOrStdout(), ics)
				return err
			}
			if err := os.WriteFile(flagOutput, []byte(ics), 0644); err != nil {
				return fmt.Errorf("writing calendar: %w", err)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&flagDays, "days", DefaultExportDays, "Number of days to export, starting today")
	flags.StringVar(&flagRange, "range", "", "Date range to export instead of --days")
	flags.StringVarP(&flagOutput, "output", "o", "", "Output file (default stdout)")
	flags.StringSliceVar(&f.Venues, "venue", nil, "Only events at venues containing this text (repeatable)")
	flags.StringSliceVar(&f.Names, "name", nil, "Only events whose name contains this text (repeatable)")
	flags.BoolVar(&f.WeekendsOnly, "weekends", false, "Only Saturday and Sunday events")
	flags.IntVar(&f.MinAttendance, "min-attendance", 0, "Only events with at least this attendance")
	flags.BoolVar(&f.DisruptiveOnly, "disruptive-only", false, "Only events that carry a disruption tag")
	return cmd
}

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Update the local mirror of the calendar tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, _, err := setup(cmd)
			if err != nil {
				return err
			}
			return app.Sync(cmd.Context())
		},
	}
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var flagForce bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := homedir.Expand(flagConfig)
			if err != nil {
				return err
			}
			if path == "" {
				if path, err = config.DefaultPath(); err != nil {
					return err
				}
			}
			if _, err := os.Stat(path); err == nil && !flagForce {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.Save(path, config.Default()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote default configuration to %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&flagForce, "force", false, "Overwrite an existing file")

	cmd.AddCommand(initCmd)
	return cmd
}
