package reporter

import (
	"github.com/go-logr/logr"

	"github.com/deadlypliers/consoleprogress/progress"
)

// BarReporter drives a terminal progress.Bar from progress events.
//
// The bar owns the redraw cadence and the terminal line; this reporter only
// translates events into state updates, so Report never blocks on terminal
// I/O. On non-interactive output the bar is inert and the reporter is
// effectively a no-op, making it safe to install unconditionally.
//
// Stage handling:
//   - StageInit, StagePrepare: the message becomes the bar annotation
//   - StageRunning: fraction from the event percentage, message as annotation
//   - StageComplete: the bar is driven to 100%
//
// Example:
//
//	bar := progress.NewBar()
//	defer bar.Close()
//	hub, _ := progress.NewHub(
//	    progress.WithReporters(reporter.NewBarReporter(bar)),
//	    progress.WithCollectors(col),
//	)
type BarReporter struct {
	bar *progress.Bar
	log logr.Logger
}

// BarReporterOption configures a BarReporter.
type BarReporterOption func(*BarReporter)

// WithBarReporterLogger sets a logger for events the bar rejects.
func WithBarReporterLogger(log logr.Logger) BarReporterOption {
	return func(r *BarReporter) {
		r.log = log
	}
}

// NewBarReporter creates a reporter that feeds the given bar. The caller
// retains ownership of the bar and is responsible for closing it.
func NewBarReporter(bar *progress.Bar, opts ...BarReporterOption) *BarReporter {
	r := &BarReporter{
		bar: bar,
		log: logr.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Report translates one event into a bar state update.
//
// The fraction is taken from the normalized event percentage rather than the
// raw counts, so the bar does not need to share a total with the event
// source. Events the bar rejects (a percentage above 100) are dropped and
// logged at V(1); a malformed event must not take down the display.
func (r *BarReporter) Report(event progress.Event) {
	normalize(&event)

	fraction := event.Percent / 100.0
	if event.Stage == progress.StageComplete {
		fraction = 1.0
	}

	if err := r.bar.ReportText(fraction, event.Message); err != nil {
		r.log.V(1).Info("progress event rejected by bar",
			"stage", event.Stage,
			"percent", event.Percent,
			"error", err,
		)
	}
}
