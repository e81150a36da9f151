package reporter

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-logr/logr"

	"github.com/deadlypliers/consoleprogress/progress"
)

// ChannelReporter sends progress events to a Go channel for programmatic
// consumption.
//
// This reporter suits custom UIs and dashboards that consume events in-
// process. Events are delivered to a buffered channel with non-blocking
// sends: a slow consumer causes events to be dropped, never causes the
// producing job to stall.
//
// The reporter closes automatically when the context passed to
// NewChannelReporter is cancelled; Close may also be called directly and is
// safe to call more than once.
//
// Example:
//
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//	rep := reporter.NewChannelReporter(ctx)
//
//	go func() {
//	    for event := range rep.Events() {
//	        fmt.Printf("progress: %d%%\n", int(event.Percent))
//	    }
//	}()
type ChannelReporter struct {
	events        chan progress.Event
	mu            sync.RWMutex
	closed        bool
	droppedEvents atomic.Uint64
	log           logr.Logger
}

// ChannelReporterOption configures a ChannelReporter.
type ChannelReporterOption func(*ChannelReporter)

// WithLogger sets a logger used to record dropped events.
func WithLogger(log logr.Logger) ChannelReporterOption {
	return func(r *ChannelReporter) {
		r.log = log
	}
}

// NewChannelReporter creates a channel-based progress reporter.
//
// The events channel is buffered (capacity 100). When the buffer is full,
// Report drops the event rather than block. The channel closes when ctx is
// cancelled or Close is called.
func NewChannelReporter(ctx context.Context, opts ...ChannelReporterOption) *ChannelReporter {
	r := &ChannelReporter{
		events: make(chan progress.Event, 100),
		log:    logr.Discard(),
	}

	for _, opt := range opts {
		opt(r)
	}

	go func() {
		<-ctx.Done()
		r.Close()
	}()

	return r
}

// Report sends an event to the channel with a non-blocking send. If the
// reporter has been closed the event is discarded; if the buffer is full the
// event is dropped and counted.
//
// If the event's Timestamp is zero it is set to the current time.
func (c *ChannelReporter) Report(event progress.Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	// Hold the read lock for the whole send so Close cannot close the
	// channel mid-send.
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return
	}

	select {
	case c.events <- event:
	default:
		dropped := c.droppedEvents.Add(1)
		c.log.V(1).Info("progress event dropped due to slow consumer",
			"stage", event.Stage,
			"message", event.Message,
			"total_dropped", dropped,
		)
	}
}

// Events returns the read-only channel of progress events. The channel is
// closed by Close or by cancellation of the constructor context.
func (c *ChannelReporter) Events() <-chan progress.Event {
	return c.events
}

// DroppedEvents returns how many events were dropped because the channel
// buffer was full. A growing number means the consumer is not keeping up.
func (c *ChannelReporter) DroppedEvents() uint64 {
	return c.droppedEvents.Load()
}

// Close closes the events channel, signaling consumers that no more events
// will arrive. Safe to call multiple times.
func (c *ChannelReporter) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.events)
	}
}
