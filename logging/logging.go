// Package logging wraps charmbracelet/log for the pipeline's optional
// per-stage debug channel: timing and node/edge counts that are useful
// to observe but never required for correctness.
// Grounded on matzehuels-stacktower's internal/cli/log.go, whose
// progress type tracks elapsed time the same way; generalized here to
// tolerate a nil *log.Logger so the pipeline never needs a nil check at
// every call site.
package logging

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// New builds a logger writing to w at the given level, with millisecond
// timestamps.
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.000",
		Level:           level,
	})
}

// Stage tracks one pipeline stage's elapsed time and logs it on Done,
// including node/edge counts. A nil logger makes every method a no-op,
// so pipeline code can unconditionally call logging.Begin(l, ...)
// whether or not the caller configured a logger.
type Stage struct {
	logger *log.Logger
	name   string
	start  time.Time
}

// Begin starts timing a stage named name.
func Begin(l *log.Logger, name string) *Stage {
	return &Stage{logger: l, name: name, start: time.Now()}
}

// Done logs the stage's elapsed time and the working graph's current
// node/edge counts.
func (s *Stage) Done(nodes, edges int) {
	if s == nil || s.logger == nil {
		return
	}
	s.logger.Debug(s.name,
		"elapsed", time.Since(s.start).Round(time.Microsecond),
		"nodes", nodes,
		"edges", edges,
	)
}

// Fail logs that a stage returned an error instead of completing.
func (s *Stage) Fail(err error) {
	if s == nil || s.logger == nil {
		return
	}
	s.logger.Debug(s.name, "elapsed", time.Since(s.start).Round(time.Microsecond), "error", err)
}
