package reporter

import (
	"encoding/json"
	"io"
	"sync"

	"github.com/deadlypliers/consoleprogress/progress"
)

// JSONReporter writes progress events as newline-delimited JSON (NDJSON).
//
// Each event becomes one self-contained JSON line, a stream that log
// aggregators, CI pipelines, and other machine consumers can parse without
// buffering the whole run.
//
// Example output:
//
//	{"timestamp":"2024-06-01T17:06:22Z","stage":"running","current":1,"total":10,"percent":10}
//	{"timestamp":"2024-06-01T17:06:23Z","stage":"running","current":2,"total":10,"percent":20}
//
// JSONReporter is safe for concurrent use.
type JSONReporter struct {
	encoder *json.Encoder
	mu      sync.Mutex
}

// NewJSONReporter creates a JSON progress reporter that writes to w.
func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{
		encoder: json.NewEncoder(w),
	}
}

// Report writes one event as a JSON line. Events that fail to encode are
// dropped; progress reporting never interrupts the job it describes.
func (j *JSONReporter) Report(event progress.Event) {
	j.mu.Lock()
	defer j.mu.Unlock()

	normalize(&event)

	// Encode appends the trailing newline that makes this NDJSON.
	_ = j.encoder.Encode(event)
}
