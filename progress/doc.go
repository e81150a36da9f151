// Package progress renders a live, self-updating progress bar on a terminal
// and provides an event pipeline for feeding it from concurrent producers.
//
// The Bar is the core: a single terminal line redrawn on a fixed cadence by
// a background goroutine. Redraws rewrite only the changed suffix of the
// previous line using backspace characters, so the common tick (a percentage
// digit or the spinner glyph changing) costs a few bytes instead of a full
// line clear. Producers report progress from any goroutine:
//
//	bar := progress.NewBar(progress.WithTotal(len(items)))
//	defer bar.Close()
//
//	for i, item := range items {
//	    process(item)
//	    bar.ReportCountText(i+1, item.Name())
//	}
//
// When output is redirected the bar stays inert and writes nothing, so piped
// output is never polluted with control characters.
//
// For larger programs the package also carries an event pipeline: producers
// report Events into Collectors, a Hub fans them out, and Reporters consume
// them (the terminal bar among them, alongside text, JSON, and channel
// reporters in the reporter subpackage).
package progress
