package main

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// levelFor maps the verbosity flags to a log level. An explicit flag wins
// over the configured level; --quiet wins over --verbose.
func levelFor(verbose, quiet bool, configured string) log.Level {
	switch {
	case quiet:
		return log.ErrorLevel
	case verbose:
		return log.DebugLevel
	}
	if configured != "" {
		if level, err := log.ParseLevel(configured); err == nil {
			return level
		}
	}
	return log.InfoLevel
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	now    func() time.Time
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger, now func() time.Time) *progress {
	return &progress{logger: l, now: now, start: now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Wrote report.tex (12ms)"
func (p *progress) done(msg string, keyvals ...interface{}) {
	p.logger.Info(msg+" ("+p.now().Sub(p.start).Round(time.Millisecond).String()+")", keyvals...)
}
