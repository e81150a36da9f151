package progress

// NoopReporter discards all events.
//
// It is the default reporter when a Hub is created without any reporters,
// ensuring zero overhead when progress reporting is disabled.
type NoopReporter struct{}

// NewNoopReporter creates a new no-op progress reporter.
func NewNoopReporter() *NoopReporter {
	return &NoopReporter{}
}

// Report discards the event without any action.
func (n *NoopReporter) Report(event Event) {
	// Intentionally empty - no-op implementation
}
