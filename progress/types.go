package progress

import (
	"time"
)

// Reporter is the interface for outputting progress events.
//
// Reporters receive events from a Hub and format or forward them:
//   - reporter.BarReporter: drives a Bar on an interactive terminal
//   - reporter.TextReporter: human-readable text with timestamps
//   - reporter.JSONReporter: newline-delimited JSON for machine consumers
//   - reporter.ChannelReporter: exposes events on a Go channel
//   - NoopReporter: discards events (default when none is configured)
//
// Implementations must be safe for concurrent use and must not block: Report
// is called from the hub's reporter worker goroutines, and a slow reporter
// only stalls its own worker thanks to per-reporter buffering.
type Reporter interface {
	// Report outputs a progress event. Events arrive normalized, with
	// timestamps set and percentages calculated.
	Report(event Event)
}

// Collector is the interface for gathering progress events from producers.
//
// Collectors accept events via Report and expose them on a channel that the
// Hub subscribes to, decoupling event generation from event reporting.
// Implementations must be safe for concurrent use and typically buffer
// and/or throttle to keep fast producers from overwhelming the pipeline.
type Collector interface {
	// Reporter embeds the ability to receive events. Concrete collectors
	// implement Report to accept events and forward them to their channel.
	Reporter

	// ID returns a unique identifier for this collector, used by the Hub
	// to manage subscriptions. Auto-generated at collector creation.
	ID() int

	// CollectChannel returns the channel the Hub reads events from.
	CollectChannel() chan Event
}

// Event represents a progress update at a specific point in time.
//
// Not all fields are populated for all events: stage-transition events may
// carry only Stage and Message, while work updates include Current, Total,
// and Percent.
type Event struct {
	// Timestamp is when the event occurred. If not set by the caller,
	// reporters populate it automatically.
	Timestamp time.Time `json:"timestamp"`

	// Stage indicates which phase of the job this event relates to.
	Stage Stage `json:"stage"`

	// Message provides human-readable context (e.g., the item being
	// processed).
	Message string `json:"message,omitempty"`

	// Current is the number of items completed so far.
	Current int `json:"current,omitempty"`

	// Total is the total number of items to process.
	Total int `json:"total,omitempty"`

	// Percent is the completion percentage (0-100), calculated from
	// Current and Total when not set.
	Percent float64 `json:"percent,omitempty"`

	// Metadata carries additional stage-specific information.
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// Stage represents a phase of a long-running job.
//
// Stages occur in a typical sequence:
//  1. StageInit - job starting
//  2. StagePrepare - setup work before the main loop
//  3. StageRunning - items being processed
//  4. StageComplete - job finished
type Stage string

const (
	// StageInit indicates job initialization.
	StageInit Stage = "init"

	// StagePrepare indicates setup work before item processing begins.
	StagePrepare Stage = "prepare"

	// StageRunning indicates item processing. Events include current/total
	// counts and percentage completion.
	StageRunning Stage = "running"

	// StageComplete indicates job completion.
	StageComplete Stage = "complete"
)
