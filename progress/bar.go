package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"golang.org/x/term"
)

// defaultInterval is the redraw cadence: eight frames per second.
const defaultInterval = 125 * time.Millisecond

// Bar is a single-line, self-updating terminal progress bar.
//
// A bar owns one line of an interactive terminal. A background goroutine,
// started at construction, redraws the line on a fixed cadence; producers
// feed it through the Report methods from any number of goroutines without
// additional locking. Redraws rewrite only the changed suffix of the line
// (see Renderer), so steady progress costs a handful of bytes per tick.
//
// When the output is not an interactive terminal (redirected or piped), the
// bar stays inert: no goroutine is started and nothing is ever written, so
// captured output is never polluted with control characters.
//
// The bar assumes exclusive ownership of the terminal's current line.
// Writing to the same stream while a bar is active breaks the in-place
// rewrite; log through a different stream or close the bar first.
//
// Example:
//
//	bar := progress.NewBar(progress.WithTotal(len(files)))
//	defer bar.Close()
//
//	for i, f := range files {
//	    process(f)
//	    bar.ReportCountText(i+1, f.Name())
//	}
type Bar struct {
	w        io.Writer
	total    int
	interval time.Duration
	percent  PercentFormatter
	log      logr.Logger

	st state
	sp spinner

	// renderLock serializes ticks against Close so a redraw and the final
	// erase never interleave. Report methods never take it.
	renderLock sync.Mutex
	closed     bool
	renderer   *Renderer

	// active is true when the output is interactive and the tick goroutine
	// is running. Fixed at construction.
	active      bool
	forceActive *bool
	stop        chan struct{}
	done        chan struct{}
	closeOnce   sync.Once
}

// Option configures a Bar during construction.
type Option func(*Bar)

// WithTotal sets the number of work items the bar represents, enabling the
// count-based Report methods. A zero total leaves count-based reporting
// disabled.
func WithTotal(total int) Option {
	return func(b *Bar) {
		b.total = total
	}
}

// WithWriter sets the output stream. Default: os.Stdout.
//
// Interactivity is probed once at construction: if w is an *os.File on a
// terminal the bar renders, otherwise it stays inert. Use WithInteractive to
// override the probe for writers that are not files.
func WithWriter(w io.Writer) Option {
	return func(b *Bar) {
		b.w = w
	}
}

// WithInteractive overrides the terminal probe. Primarily for tests and for
// writers whose interactivity the bar cannot detect.
func WithInteractive(interactive bool) Option {
	return func(b *Bar) {
		b.forceActive = &interactive
	}
}

// WithInterval sets the redraw cadence. Default: 125ms.
//
// The timer is re-armed after each redraw completes, so the interval is the
// gap between redraws, not a fixed rate; slow terminals stretch the cadence
// rather than queueing frames.
func WithInterval(d time.Duration) Option {
	return func(b *Bar) {
		if d > 0 {
			b.interval = d
		}
	}
}

// WithGlyphs replaces the spinner glyph table. Default: - \ | /
func WithGlyphs(glyphs string) Option {
	return func(b *Bar) {
		if glyphs != "" {
			b.sp.glyphs = []rune(glyphs)
		}
	}
}

// WithPercentFormatter replaces the percentage formatter. The formatter must
// be pure; it runs on the tick goroutine under the render lock.
func WithPercentFormatter(f PercentFormatter) Option {
	return func(b *Bar) {
		if f != nil {
			b.percent = f
		}
	}
}

// WithBarLogger sets a logger for lifecycle debug events.
func WithBarLogger(log logr.Logger) Option {
	return func(b *Bar) {
		b.log = log
	}
}

// NewBar creates a bar and, when the output is an interactive terminal,
// starts its redraw goroutine. Close must be called to stop the goroutine
// and erase the line.
func NewBar(opts ...Option) *Bar {
	b := &Bar{
		w:        os.Stdout,
		interval: defaultInterval,
		percent:  defaultPercent,
		log:      logr.Discard(),
		sp:       spinner{glyphs: defaultGlyphs},
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(b)
	}

	// an explicit WithInteractive wins over the terminal probe
	if b.forceActive != nil {
		b.active = *b.forceActive
	} else {
		b.active = isTerminal(b.w)
	}

	if b.active {
		b.renderer = NewRenderer(b.w)
		go b.run()
		b.log.V(1).Info("progress bar started", "interval", b.interval)
	} else {
		close(b.done)
		b.log.V(1).Info("output not interactive, progress bar disabled")
	}

	return b
}

// isTerminal reports whether w is an interactive terminal. Queried once at
// construction.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Report replaces the stored fraction. 1.0 denotes completion; values above
// it are rejected with ErrOutOfRange and leave the state unchanged. No lower
// bound is enforced: a negative fraction renders an empty bar.
//
// Safe for concurrent use from any goroutine; never blocks on the renderer.
func (b *Bar) Report(fraction float64) error {
	if fraction > 1.0 {
		return fmt.Errorf("fraction %v exceeds 1.0: %w", fraction, ErrOutOfRange)
	}
	b.st.setFraction(fraction)
	return nil
}

// ReportText replaces both the stored fraction and the annotation shown after
// the percentage. The two fields are replaced individually, not as a pair: a
// concurrent tick may observe one without the other.
func (b *Bar) ReportText(fraction float64, text string) error {
	if fraction > 1.0 {
		return fmt.Errorf("fraction %v exceeds 1.0: %w", fraction, ErrOutOfRange)
	}
	b.st.setAnnotation(text)
	b.st.setFraction(fraction)
	return nil
}

// ReportCount reports progress as count items out of the total configured
// with WithTotal. It fails with ErrNoTotal if no total was configured, and
// with ErrOutOfRange if count exceeds the total; count equal to the total
// reports completion.
func (b *Bar) ReportCount(count int) error {
	if b.total == 0 {
		return fmt.Errorf("bar has no total: %w", ErrNoTotal)
	}
	if count > b.total {
		return fmt.Errorf("count %d exceeds total %d: %w", count, b.total, ErrOutOfRange)
	}
	return b.Report(float64(count) / float64(b.total))
}

// ReportCountText is ReportCount with an annotation, subject to the same
// validation and the same per-field visibility caveat as ReportText.
func (b *Bar) ReportCountText(count int, text string) error {
	if b.total == 0 {
		return fmt.Errorf("bar has no total: %w", ErrNoTotal)
	}
	if count > b.total {
		return fmt.Errorf("count %d exceeds total %d: %w", count, b.total, ErrOutOfRange)
	}
	return b.ReportText(float64(count)/float64(b.total), text)
}

// run is the tick loop. A single-shot timer is re-armed after each redraw,
// so rendering latency stretches the cadence instead of stacking frames.
func (b *Bar) run() {
	defer close(b.done)

	timer := time.NewTimer(b.interval)
	defer timer.Stop()

	for {
		select {
		case <-b.stop:
			return
		case <-timer.C:
			b.tick()
			timer.Reset(b.interval)
		}
	}
}

// tick advances the spinner, formats the line from the current state, and
// hands it to the renderer. A tick that finds the bar closed does nothing;
// the check happens under the render lock so it cannot race Close.
func (b *Bar) tick() {
	b.renderLock.Lock()
	defer b.renderLock.Unlock()

	if b.closed {
		return
	}

	line := formatLine(b.st.fraction(), b.st.annotationText(), b.percent, b.sp.advance())
	if err := b.renderer.Render(line); err != nil {
		b.log.V(1).Info("render failed", "error", err)
	}
}

// Close stops the redraw goroutine, waits for it to exit, and erases the
// bar's line, leaving the cursor at the start of it. Close is idempotent;
// calls after the first are no-ops. On a non-interactive bar Close only
// marks the bar closed.
func (b *Bar) Close() error {
	var err error
	b.closeOnce.Do(func() {
		if b.active {
			close(b.stop)
			<-b.done
		}

		b.renderLock.Lock()
		defer b.renderLock.Unlock()

		b.closed = true
		if b.active {
			err = b.renderer.Render("")
		}
		b.log.V(1).Info("progress bar closed")
	})
	return err
}
