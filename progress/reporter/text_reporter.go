package reporter

import (
	"fmt"
	"io"
	"sync"

	"github.com/deadlypliers/consoleprogress/progress"
)

// TextReporter writes progress events as human-readable text with timestamps.
//
// Each stage has its own line format, producing output suitable for log
// files, CI logs, and any place the interactive bar would be noise.
//
// Example output:
//
//	[17:06:14] Starting...
//	[17:06:17] Preparing: scanning input
//	[17:06:22] Progress: 1/10 (10.0%)
//	[17:06:22] Item: photos/2024-06-01.raw
//	[17:06:26] Done!
//
// TextReporter is safe for concurrent use; a mutex keeps concurrent reports
// from interleaving mid-line.
type TextReporter struct {
	writer io.Writer
	mu     sync.Mutex
}

// NewTextReporter creates a text progress reporter that writes to w,
// typically os.Stderr.
func NewTextReporter(w io.Writer) *TextReporter {
	return &TextReporter{
		writer: w,
	}
}

// Report writes one event as a timestamped text line.
//
// The output format varies by stage:
//   - StageInit: "[HH:MM:SS] Starting..."
//   - StagePrepare: "[HH:MM:SS] Preparing: <message>"
//   - StageRunning: "[HH:MM:SS] Progress: X/Y (Z%)" and/or "[HH:MM:SS] Item: <message>"
//   - StageComplete: "[HH:MM:SS] Done!"
//
// If the event's Timestamp is zero it is set to the current time. Safe for
// concurrent use.
func (t *TextReporter) Report(event progress.Event) {
	t.mu.Lock()
	defer t.mu.Unlock()

	normalize(&event)

	ts := event.Timestamp.Format("15:04:05")

	var output string
	switch event.Stage {
	case progress.StageInit:
		output = fmt.Sprintf("[%s] Starting...\n", ts)
	case progress.StagePrepare:
		if event.Message != "" {
			output = fmt.Sprintf("[%s] Preparing: %s\n", ts, event.Message)
		}
	case progress.StageRunning:
		if event.Total > 0 {
			output += fmt.Sprintf("[%s] Progress: %d/%d (%.1f%%)\n",
				ts, event.Current, event.Total, event.Percent)
		}
		if event.Message != "" {
			output += fmt.Sprintf("[%s] Item: %s\n", ts, event.Message)
		}
	case progress.StageComplete:
		output = fmt.Sprintf("[%s] Done!\n", ts)
	default:
		if event.Message != "" {
			output = fmt.Sprintf("[%s] %s\n", ts, event.Message)
		}
	}

	if output != "" {
		t.writer.Write([]byte(output))
	}
}
