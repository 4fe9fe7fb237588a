package alert

import (
	"time"

	"github.com/pfrederiksen/stadium-alerts/internal/disruption"
	"github.com/pfrederiksen/stadium-alerts/internal/event"
	"github.com/pfrederiksen/stadium-alerts/internal/logger"
	"github.com/pfrederiksen/stadium-alerts/internal/normalize"
	"github.com/pfrederiksen/stadium-alerts/internal/report"
)

// SummaryDays is the length of the summary window.
const SummaryDays = 5

// DailyRange is the range of the "today" alert.
func DailyRange(today event.Date) report.Range {
	return report.Day(today)
}

// WeeklyRange is the range of the summary: tomorrow through five days from today.
func WeeklyRange(today event.Date) report.Range {
	return report.Window(today.AddDays(1), SummaryDays)
}

// Config holds the tables and thresholds a Pipeline is built from.
type Config struct {
	Normalize  normalize.Config
	Thresholds disruption.Thresholds
}

// DefaultConfig returns the stadium district defaults.
func DefaultConfig() Config {
	return Config{
		Normalize:  normalize.DefaultConfig(),
		Thresholds: disruption.DefaultThresholds(),
	}
}

// Request describes one run.
type Request struct {
	Range   report.Range
	Mode    report.Mode
	Months  []MonthData
	Missing []event.Month
}

// Pipeline turns month data into reports. It keeps no state between runs and is safe
// for concurrent use.
type Pipeline struct {
	builder    *Builder
	classifier *disruption.Classifier
	renderer   *report.Renderer
	metrics    *logger.Metrics
}

// New creates a Pipeline. A nil metrics uses the process-wide metrics.
func New(cfg Config, metrics *logger.Metrics) *Pipeline {
	if metrics == nil {
		metrics = logger.DefaultMetrics()
	}
	return &Pipeline{
		builder:    NewBuilder(normalize.New(cfg.Normalize), metrics),
		classifier: disruption.New(cfg.Thresholds),
		renderer:   report.NewRenderer(),
		metrics:    metrics,
	}
}

// Collect builds the day buckets of rng from months and classifies them.
func (p *Pipeline) Collect(rng report.Range, months []MonthData) (*event.Buckets, *disruption.Classification) {
	buckets := event.NewBuckets()
	for _, m := range months {
		for _, evt := range p.builder.Events(m) {
			if rng.Contains(evt.Date) {
				buckets.Add(evt)
			}
		}
	}
	return buckets, p.classifier.Classify(buckets)
}

// Run renders the report for req.
func (p *Pipeline) Run(req Request) *report.Report {
	start := time.Now()

	buckets, cls := p.Collect(req.Range, req.Months)
	gaps := report.GapsFor(req.Range, req.Missing)
	rep := p.renderer.Render(req.Range, req.Mode, buckets, cls, gaps)

	p.metrics.RecordTiming("pipeline.run", time.Since(start))
	p.metrics.SetGauge("pipeline.events", float64(buckets.Len()))

	for _, g := range gaps {
		logger.Warn("no source data for part of the range", logger.Fields{
			"month": g.Month.String(),
			"from":  g.From.String(),
			"to":    g.To.String(),
		})
	}
	logger.Info("report rendered", logger.Fields{
		"range":      req.Range.String(),
		"mode":       req.Mode.String(),
		"events":     buckets.Len(),
		"disruptive": rep.Disruptive,
		"lines":      len(rep.Lines),
	})

	return rep
}
