// Package export drives slide exports: resolve → rasterize → encode → deliver.
//
// # Overview
//
// The [Orchestrator] is the only stateful piece of the pipeline. It owns the
// "export in progress" flag and the progress label shown to the user, and it
// turns every job into exactly one outcome: success, manual or failure.
//
//   - [Orchestrator.ExportSlide] exports one slide and reports each stage
//     ("Rendering…", "Encoding…", "Delivering…") through the [Reporter].
//   - [Orchestrator.ExportAll] exports a list of slides strictly in order,
//     pausing between jobs, and ends with an aggregate alert.
//
// A failing or panicking job never aborts a batch and never leaves the
// orchestrator busy. After any run the idle label comes back once the
// display interval has passed.
//
// # Usage
//
//	orch := export.New(registry, rasterizer, encode.New(), agent, reporter, export.Options{})
//	job, err := orch.ExportSlide(ctx, slideID)
//	summary, err := orch.ExportAll(ctx, registry.IDs())
package export

import (
	"context"
	"image"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lookbook/pkg/deliver"
	"github.com/matzehuels/lookbook/pkg/encode"
	"github.com/matzehuels/lookbook/pkg/errors"
	"github.com/matzehuels/lookbook/pkg/render"
	"github.com/matzehuels/lookbook/pkg/surface"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultDelay is the pause between two jobs of a batch.
	DefaultDelay = time.Second

	// DefaultDisplay is how long a result label stays before the idle label returns.
	DefaultDisplay = 1500 * time.Millisecond

	// DefaultIdleLabel is the label of an idle export control.
	DefaultIdleLabel = "Export"

	// DefaultBatchScale is the output scale of batch jobs. Single exports use
	// the scale of Options.Render.
	DefaultBatchScale = 1.0
)

// Labels shown while a single export runs and when it ends.
const (
	LabelRendering  = "Rendering…"
	LabelEncoding   = "Encoding…"
	LabelDelivering = "Delivering…"
	LabelDownloaded = "Downloaded"
	LabelManual     = "Opened for manual save"
	LabelFailed     = "Export failed"
	LabelBatchDone  = "Export complete"
)

// Alert texts.
const (
	AlertNoContent = "This slide has no content to export yet. Add a description or inspiration images first."
	AlertNoSlides  = "There are no slides with content to export."
)

// =============================================================================
// Collaborators
// =============================================================================

// Reporter is the user feedback channel.
type Reporter interface {
	// Label sets the progress or result text of the export control.
	Label(text string)
	// Busy enables or disables the export control.
	Busy(busy bool)
	// Alert shows a message the user must acknowledge.
	Alert(message string)
}

// JobReporter is implemented by reporters that want every finished job as
// soon as it is known, while its result label is still showing.
type JobReporter interface {
	Finished(job Job)
}

// Resolver finds the rendering surface of a slide.
type Resolver interface {
	Resolve(id string) (*surface.Surface, bool)
}

// Rasterizer turns a surface into a bitmap.
type Rasterizer interface {
	Rasterize(ctx context.Context, s *surface.Surface, cfg render.Config) (image.Image, error)
}

// Encoder turns a bitmap into PNG bytes.
type Encoder interface {
	Blob(img image.Image) (encode.Blob, error)
}

// Deliverer places a file in the user's hands.
type Deliverer interface {
	Deliver(ctx context.Context, blob encode.Blob, filename string) (deliver.Receipt, error)
}

// NopReporter discards all feedback.
type NopReporter struct{}

func (NopReporter) Label(string) {}
func (NopReporter) Busy(bool)    {}
func (NopReporter) Alert(string) {}

// =============================================================================
// Options
// =============================================================================

// Options configures an [Orchestrator]. Zero values take the defaults.
type Options struct {
	// Prefix is the product prefix of file names.
	Prefix string
	// Delay is the pause between batch jobs.
	Delay time.Duration
	// Display is how long result labels stay visible.
	Display time.Duration
	// IdleLabel is restored after every run.
	IdleLabel string
	// Render is the rasterization configuration.
	Render render.Config
	// BatchScale replaces Render.Scale for the jobs of ExportAll.
	BatchScale float64

	// Now returns the current time; used for file name tokens.
	Now func() time.Time
	// Sleep waits for d or until ctx is done.
	Sleep func(ctx context.Context, d time.Duration)

	Logger *log.Logger
}

// ValidateAndSetDefaults fills zero fields with defaults and rejects
// negative durations.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Delay < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "export delay cannot be negative: %s", o.Delay)
	}
	if o.Display < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "display interval cannot be negative: %s", o.Display)
	}
	if o.BatchScale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "batch scale cannot be negative: %g", o.BatchScale)
	}
	if o.Prefix == "" {
		o.Prefix = DefaultPrefix
	}
	if o.Delay == 0 {
		o.Delay = DefaultDelay
	}
	if o.Display == 0 {
		o.Display = DefaultDisplay
	}
	if o.BatchScale == 0 {
		o.BatchScale = DefaultBatchScale
	}
	if o.IdleLabel == "" {
		o.IdleLabel = DefaultIdleLabel
	}
	if o.Render.Background == nil && o.Render.Scale == 0 && o.Render.CrossOrigin == 0 {
		o.Render = render.DefaultConfig()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Sleep == nil {
		o.Sleep = sleep
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
