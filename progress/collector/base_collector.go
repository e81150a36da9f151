package collector

import (
	"math/rand"

	"github.com/deadlypliers/consoleprogress/progress"
)

// collector is a simple pass-through collector that forwards all events.
//
// It accepts events via Report and makes them available through a buffered
// channel for the hub to subscribe to, with no throttling or filtering. Use
// it when the event source already controls its own rate.
type collector struct {
	id int
	ch chan progress.Event
}

// New creates a new pass-through collector.
//
// The collector buffers up to 100 events so the source never blocks; events
// beyond that are dropped.
func New() progress.Collector {
	return &collector{
		id: rand.Int(),
		ch: make(chan progress.Event, 100),
	}
}

// ID returns the unique identifier for this collector.
func (c *collector) ID() int {
	return c.id
}

// CollectChannel returns the channel that the hub reads events from.
func (c *collector) CollectChannel() chan progress.Event {
	return c.ch
}

// Report accepts an event and forwards it to the collection channel with a
// non-blocking send, dropping the event when the channel is full. A panic
// recovery handler covers a send racing channel closure during shutdown.
func (c *collector) Report(event progress.Event) {
	defer func() {
		if r := recover(); r != nil {
			// channel closed during shutdown, drop the event
		}
	}()
	select {
	case c.ch <- event:
	default:
		// channel full, drop the event
	}
}
