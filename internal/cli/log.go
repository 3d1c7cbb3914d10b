// Package cli implements the kallax command-line interface.
//
// # Commands
//
//   - pack: fetch (or read) a collection, pack it and write the outputs
//   - fetch: save a normalized BGG collection as an items file
//   - render: render a saved packing result
//   - clusters: show how expansions and series are grouped
//   - serve: run the HTTP API
//   - profile: write or check a packing profile
//   - cache: manage the local cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// logs every BGG request and cache lookup.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, e.g. "Fetched 212 games (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
