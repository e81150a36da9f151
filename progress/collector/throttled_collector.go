package collector

import (
	"math/rand"
	"sync"
	"time"

	"github.com/deadlypliers/consoleprogress/progress"
)

// ThrottledCollector is a collector with throttling for high-frequency
// event sources.
//
// It keeps fast producers (a per-item report inside a tight loop) from
// flooding the pipeline by:
//   - Throttling forwarded events to a configured interval (default 500ms)
//   - Always forwarding the first and last event regardless of timing
//   - Dropping intermediate events that arrive too frequently
//
// The collector is safe for concurrent use and can be reused across jobs.
//
// Example:
//
//	throttled := collector.NewThrottledCollector(progress.StageRunning)
//	hub, _ := progress.NewHub(
//	    progress.WithCollectors(throttled),
//	    progress.WithReporters(reporter.NewTextReporter(os.Stderr)),
//	)
//
//	for i := 1; i <= len(items); i++ {
//	    throttled.Report(progress.Event{Current: i, Total: len(items)})
//	}
type ThrottledCollector struct {
	// stageName is the default stage stamped on events that carry none
	stageName progress.Stage

	throttleInterval time.Duration
	lastReportTime   time.Time
	lastReported     int // Current value of the last forwarded event
	reportMutex      sync.Mutex

	streamChan chan progress.Event
	id         int
}

// NewThrottledCollector creates a throttled collector with the default 500ms
// interval. The first event (or Current == 1) and the last event
// (Current == Total) are always forwarded.
func NewThrottledCollector(stageName progress.Stage) *ThrottledCollector {
	return &ThrottledCollector{
		stageName:        stageName,
		throttleInterval: 500 * time.Millisecond,
		id:               rand.Int(),
		streamChan:       make(chan progress.Event, 100),
	}
}

// NewThrottledCollectorWithInterval creates a throttled collector with a
// custom throttle interval.
func NewThrottledCollectorWithInterval(stageName progress.Stage, interval time.Duration) *ThrottledCollector {
	return &ThrottledCollector{
		stageName:        stageName,
		throttleInterval: interval,
		id:               rand.Int(),
		streamChan:       make(chan progress.Event, 100),
	}
}

// ID returns the unique identifier for this collector.
func (t *ThrottledCollector) ID() int {
	return t.id
}

// Report accepts an event and forwards it when throttling rules allow:
// first event, last event, or throttleInterval elapsed since the last
// forward. Everything else is dropped.
//
// Events with no Stage are stamped with the collector's default. Forwarding
// uses a non-blocking send; a full buffer drops the event. Safe for
// concurrent use.
func (t *ThrottledCollector) Report(event progress.Event) {
	defer func() {
		if r := recover(); r != nil {
			// channel closed during shutdown, drop the event
		}
	}()

	if event.Stage == "" {
		event.Stage = t.stageName
	}

	t.reportMutex.Lock()
	now := time.Now()
	timeSinceLastReport := now.Sub(t.lastReportTime)
	current := event.Current
	total := event.Total

	isFirstEvent := current == 1 || t.lastReported == 0
	isLastEvent := current == total && total > 0
	intervalElapsed := timeSinceLastReport >= t.throttleInterval

	if isFirstEvent || isLastEvent || intervalElapsed {
		t.lastReportTime = now
		t.lastReported = current
		t.reportMutex.Unlock()
		select {
		case t.streamChan <- event:
		default:
			// channel full, drop the event
		}
	} else {
		t.reportMutex.Unlock()
	}
}

// CollectChannel returns the channel that the hub reads throttled events
// from.
func (t *ThrottledCollector) CollectChannel() chan progress.Event {
	return t.streamChan
}

// Reset clears the throttling state so the collector can be reused for a new
// job.
func (t *ThrottledCollector) Reset() {
	t.reportMutex.Lock()
	t.lastReportTime = time.Time{}
	t.lastReported = 0
	t.reportMutex.Unlock()
}
