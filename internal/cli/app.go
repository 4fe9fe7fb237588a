package cli

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pfrederiksen/stadium-alerts/internal/alert"
	"github.com/pfrederiksen/stadium-alerts/internal/calendar"
	"github.com/pfrederiksen/stadium-alerts/internal/config"
	"github.com/pfrederiksen/stadium-alerts/internal/event"
	"github.com/pfrederiksen/stadium-alerts/internal/filter"
	"github.com/pfrederiksen/stadium-alerts/internal/httpclient"
	"github.com/pfrederiksen/stadium-alerts/internal/logger"
	"github.com/pfrederiksen/stadium-alerts/internal/notifier"
	"github.com/pfrederiksen/stadium-alerts/internal/report"
	"github.com/pfrederiksen/stadium-alerts/internal/scraper"
	"github.com/pfrederiksen/stadium-alerts/internal/storage"
)

// NoEventsNotice goes to the debug channel when the daily run finds nothing disruptive,
// so a quiet day can be told apart from a broken job.
const NoEventsNotice = "daily alert script ran, no events today"

// DefaultExportDays is the length of the export-ics window.
const DefaultExportDays = 30

// Options tune how an App is wired.
type Options struct {
	DryRun     bool
	Out        io.Writer
	Now        func() time.Time
	Runner     storage.Runner
	HTTPClient *retryablehttp.Client
}

// App wires configuration, storage, the alert pipeline and the delivery channels.
type App struct {
	cfg      *config.Config
	loc      *time.Location
	store    *storage.Storage
	pipeline *alert.Pipeline
	mirror   *storage.Mirror
	scraper  *scraper.Scraper
	alerts   notifier.Notifier
	debug    notifier.Notifier
	out      io.Writer
	now      func() time.Time
}

// NewApp builds an App from cfg. A nil channel notifier means the channel is disabled.
func NewApp(cfg *config.Config, opts Options) (*App, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	store, err := storage.New(cfg.SourceDir, cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	client := opts.HTTPClient
	if client == nil {
		client = httpclient.New(httpclient.Options{})
	}

	app := &App{
		cfg:   cfg,
		loc:   loc,
		store: store,
		pipeline: alert.New(alert.Config{
			Normalize:  cfg.Normalize,
			Thresholds: cfg.Thresholds,
		}, nil),
		scraper: scraper.New(cfg.CalendarPageURL, client),
		out:     out,
		now:     now,
	}

	if cfg.Mirror.Enabled {
		app.mirror = &storage.Mirror{
			RepoURL: cfg.Mirror.RepoURL,
			Dir:     cfg.SourceDir,
			Branch:  cfg.Mirror.Branch,
			Runner:  opts.Runner,
		}
	}

	if opts.DryRun {
		app.alerts = notifier.NewDryRunNotifier(out)
		app.debug = notifier.NewDryRunNotifier(out)
		return app, nil
	}

	if app.alerts, err = newNotifier(cfg.Channels.Alerts, client, out); err != nil {
		return nil, fmt.Errorf("alerts channel: %w", err)
	}
	if app.debug, err = newNotifier(cfg.Channels.Debug, client, out); err != nil {
		return nil, fmt.Errorf("debug channel: %w", err)
	}
	return app, nil
}

func newNotifier(ch config.ChannelConfig, client *retryablehttp.Client, out io.Writer) (notifier.Notifier, error) {
	switch ch.Kind {
	case config.KindDiscord:
		return notifier.NewDiscordNotifier(ch.WebhookURL, client, notifier.DiscordInterval)
	case config.KindTelegram:
		return notifier.NewTelegramNotifier(ch.BotToken, ch.ChatID, notifier.TelegramInterval)
	case config.KindStdout:
		return notifier.NewDryRunNotifier(out), nil
	case "", config.KindNone:
		return nil, nil
	}
	return nil, fmt.Errorf("unknown channel kind %q", ch.Kind)
}

// today is the current date in the configured time zone.
func (a *App) today() event.Date {
	return event.DateOf(a.now().In(a.loc))
}

// Sync updates the local mirror of the calendar tables.
func (a *App) Sync(ctx context.Context) error {
	if a.mirror == nil {
		logger.Info("mirror disabled, nothing to sync", nil)
		return nil
	}
	start := time.Now()
	if err := a.mirror.Sync(ctx); err != nil {
		logger.IncrCounter("mirror.failed")
		return fmt.Errorf("syncing mirror: %w", err)
	}
	logger.RecordTiming("mirror.sync", time.Since(start))
	logger.Info("mirror synced", logger.Fields{"dir": a.store.SourceDir()})
	return nil
}

// refresh syncs the mirror before a run. A failed sync leaves the previous copy in
// place, so the run goes on with it.
func (a *App) refresh(ctx context.Context) {
	if err := a.Sync(ctx); err != nil {
		logger.Warn("using local calendar copy", logger.Fields{
			"dir":   a.store.SourceDir(),
			"error": err.Error(),
		})
	}
}

func (a *App) render(rng report.Range, mode report.Mode) (*report.Report, error) {
	months, missing, err := a.store.LoadRange(rng)
	if err != nil {
		return nil, fmt.Errorf("loading calendar data: %w", err)
	}
	return a.pipeline.Run(alert.Request{
		Range:   rng,
		Mode:    mode,
		Months:  months,
		Missing: missing,
	}), nil
}

func (a *App) deliver(ctx context.Context, n notifier.Notifier, lines []string) error {
	if n == nil {
		logger.Debug("channel disabled, skipping delivery", logger.Fields{"lines": len(lines)})
		return nil
	}
	return notifier.Deliver(ctx, n, lines, a.cfg.ChunkBudget)
}

// Daily renders today's alert and sends it to the alerts channel. A quiet day sends
// NoEventsNotice to the debug channel instead.
func (a *App) Daily(ctx context.Context) (*report.Report, error) {
	a.refresh(ctx)

	rep, err := a.render(alert.DailyRange(a.today()), report.ModeAlert)
	if err != nil {
		return nil, err
	}

	if !rep.Disruptive {
		return rep, a.deliver(ctx, a.debug, []string{NoEventsNotice})
	}
	return rep, a.deliver(ctx, a.alerts, rep.Lines)
}

// Weekly renders the summary of the next five days and sends it to the alerts channel.
func (a *App) Weekly(ctx context.Context) (*report.Report, error) {
	a.refresh(ctx)

	rep, err := a.render(alert.WeeklyRange(a.today()), report.ModeSummary)
	if err != nil {
		return nil, err
	}
	return rep, a.deliver(ctx, a.alerts, rep.Lines)
}

// CheckLinks scrapes the calendar page, announces calendars not seen before on the
// debug channel and records them in the link snapshot.
func (a *App) CheckLinks(ctx context.Context) ([]scraper.Link, error) {
	links, err := a.scraper.FetchLinks(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching calendar links: %w", err)
	}
	current := scraper.FilterCurrent(links, a.now().In(a.loc))

	snapshot, err := a.store.LoadLinkSnapshot()
	if err != nil {
		return nil, err
	}
	fresh := scraper.Diff(snapshot, current)

	logger.Info("calendar links checked", logger.Fields{
		"found":   len(links),
		"current": len(current),
		"new":     len(fresh),
	})

	if len(fresh) > 0 {
		lines := make([]string, 0, len(fresh))
		for _, l := range fresh {
			lines = append(lines, fmt.Sprintf("A new calendar version %s was found: %s", versionName(l.URL), l.URL))
		}
		if err := a.deliver(ctx, a.debug, lines); err != nil {
			return fresh, err
		}
	}

	snapshot.Merge(current)
	if err := a.store.SaveLinkSnapshot(snapshot); err != nil {
		return fresh, fmt.Errorf("saving link snapshot: %w", err)
	}
	return fresh, nil
}

// versionName is the file name of a calendar link without its extension
// ("July2025_v2").
func versionName(rawURL string) string {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		p = u.Path
	}
	base := path.Base(p)
	return strings.TrimSuffix(base, path.Ext(base))
}

// ExportRange is the default export-ics window: days days starting today.
func (a *App) ExportRange(days int) report.Range {
	return report.Window(a.today(), days)
}

// ExportICS renders the events of rng accepted by f as an iCalendar document.
// A nil or empty filter exports every event.
func (a *App) ExportICS(rng report.Range, f *filter.Filter) (string, error) {
	months, missing, err := a.store.LoadRange(rng)
	if err != nil {
		return "", fmt.Errorf("loading calendar data: %w", err)
	}
	for _, m := range missing {
		logger.Warn("no source data for month", logger.Fields{"month": m.String()})
	}

	buckets, cls := a.pipeline.Collect(rng, months)
	logger.Info("calendar exported", logger.Fields{
		"range":  rng.String(),
		"events": buckets.Len(),
		"filter": f.String(),
	})

	var m calendar.Matcher
	if !f.IsEmpty() {
		m = f
	}
	return calendar.GenerateICS(buckets, cls, a.loc, a.now(), m), nil
}
