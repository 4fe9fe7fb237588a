package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pfrederiksen/stadium-alerts/internal/logger"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

// cronLogger forwards the scheduler's own logging to the logger package.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Debug("cron: "+msg, kvFields(keysAndValues))
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Error("cron: "+msg, kvFields(keysAndValues), err)
}

func kvFields(kv []interface{}) logger.Fields {
	fields := make(logger.Fields, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		fields[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return fields
}

type job struct {
	name string
	spec string
	run  func(ctx context.Context) error
}

func (a *App) jobs() []job {
	return []job{
		{name: "daily", spec: a.cfg.Schedule.Daily, run: func(ctx context.Context) error {
			_, err := a.Daily(ctx)
			return err
		}},
		{name: "weekly", spec: a.cfg.Schedule.Weekly, run: func(ctx context.Context) error {
			_, err := a.Weekly(ctx)
			return err
		}},
		{name: "links", spec: a.cfg.Schedule.Links, run: func(ctx context.Context) error {
			_, err := a.CheckLinks(ctx)
			return err
		}},
	}
}

// newScheduler registers every job with a non-empty spec on a scheduler running in
// the configured time zone. Jobs run with ctx.
func (a *App) newScheduler(ctx context.Context) (*cron.Cron, error) {
	log := cronLogger{}
	c := cron.New(
		cron.WithLocation(a.loc),
		cron.WithLogger(log),
		cron.WithChain(cron.Recover(log), cron.SkipIfStillRunning(log)),
	)

	for _, j := range a.jobs() {
		if j.spec == "" {
			logger.Info("job not scheduled", logger.Fields{"job": j.name})
			continue
		}
		j := j
		_, err := c.AddFunc(j.spec, func() {
			if err := j.run(ctx); err != nil {
				logger.IncrCounter("jobs.failed")
				logger.Error("scheduled job failed", logger.Fields{"job": j.name}, err)
				return
			}
			logger.IncrCounter("jobs.succeeded")
		})
		if err != nil {
			return nil, fmt.Errorf("scheduling %s job: %w", j.name, err)
		}
		logger.Info("job scheduled", logger.Fields{"job": j.name, "spec": j.spec})
	}
	return c, nil
}

// Serve runs the scheduled jobs until ctx is canceled, then waits for running jobs.
func (a *App) Serve(ctx context.Context) error {
	c, err := a.newScheduler(ctx)
	if err != nil {
		return err
	}

	c.Start()
	logger.Info("scheduler started", logger.Fields{"timezone": a.loc.String()})

	<-ctx.Done()
	logger.Info("shutting down", nil)
	<-c.Stop().Done()

	logger.Info("scheduler stopped", logger.DefaultMetrics().Snapshot().Fields())
	return nil
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the daily alert, weekly summary and link check on their schedules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, _, err := setup(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.Serve(ctx)
		},
	}
}
