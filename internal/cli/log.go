// Package cli implements the lookbook command-line interface.
//
// The CLI loads a deck file, lays out its exportable slides and exports them
// as PNG files through the export orchestrator. It is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - export: Export one slide, a picked slide, or every exportable slide
//   - slides: List the slides of a deck and whether they can be exported
//   - render: Write the SVG document or PNG bitmap of one slide to a file
//   - cache: Manage the downloaded asset cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// includes one line per rasterization attempt, delivery attempt and cache
// lookup.
package cli

import (
	"context"
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

// done logs msg along with the elapsed time since progress was created.
// Example output: "Loaded deck.toml: 6 slides, 4 exportable (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// logHooks writes observability events to the debug log.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnJobStart(_ context.Context, slideID string) {
	h.logger.Debug("Job started", "slide", slideID)
}

func (h *logHooks) OnJobComplete(_ context.Context, slideID, outcome string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("Job finished", "slide", slideID, "outcome", outcome, "took", d.Round(time.Millisecond), "error", err)
		return
	}
	h.logger.Debug("Job finished", "slide", slideID, "outcome", outcome, "took", d.Round(time.Millisecond))
}

func (h *logHooks) OnRasterize(_ context.Context, strategy string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("Strategy failed", "strategy", strategy, "took", d.Round(time.Millisecond), "error", err)
		return
	}
	h.logger.Debug("Strategy succeeded", "strategy", strategy, "took", d.Round(time.Millisecond))
}

func (h *logHooks) OnDeliver(_ context.Context, method string, err error) {
	h.logger.Debug("Delivery attempt", "method", method, "ok", err == nil)
}

func (h *logHooks) OnCacheHit(_ context.Context, backend string) {
	h.logger.Debug("Asset cache hit", "backend", backend)
}

func (h *logHooks) OnCacheMiss(_ context.Context, backend string) {
	h.logger.Debug("Asset cache miss", "backend", backend)
}

func (h *logHooks) OnCacheSet(_ context.Context, backend string, size int) {
	h.logger.Debug("Asset cached", "backend", backend, "bytes", size)
}
