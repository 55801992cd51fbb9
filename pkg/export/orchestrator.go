package export

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lookbook/pkg/deliver"
	"github.com/matzehuels/lookbook/pkg/errors"
	"github.com/matzehuels/lookbook/pkg/observability"
	"github.com/matzehuels/lookbook/pkg/render"
	"github.com/matzehuels/lookbook/pkg/surface"
)

// State is the caller-visible state of the export control.
type State struct {
	Busy  bool
	Label string
}

// Orchestrator runs single and batch exports one at a time.
type Orchestrator struct {
	resolver   Resolver
	rasterizer Rasterizer
	encoder    Encoder
	deliverer  Deliverer
	reporter   Reporter
	namer      Namer
	opts       Options
	logger     *log.Logger

	mu    sync.Mutex
	state State
}

// New creates an Orchestrator. Negative durations fall back to the defaults;
// call [Options.ValidateAndSetDefaults] first to surface them as errors.
func New(resolver Resolver, rasterizer Rasterizer, encoder Encoder, deliverer Deliverer, reporter Reporter, opts Options) *Orchestrator {
	opts.Delay = max(opts.Delay, 0)
	opts.Display = max(opts.Display, 0)
	opts.BatchScale = max(opts.BatchScale, 0)
	_ = opts.ValidateAndSetDefaults()
	if reporter == nil {
		reporter = NopReporter{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	o := &Orchestrator{
		resolver:   resolver,
		rasterizer: rasterizer,
		encoder:    encoder,
		deliverer:  deliverer,
		reporter:   reporter,
		namer:      Namer{Prefix: opts.Prefix},
		opts:       opts,
		logger:     logger,
		state:      State{Label: opts.IdleLabel},
	}
	reporter.Label(opts.IdleLabel)
	return o
}

// State returns a copy of the current state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) acquire() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state.Busy {
		return false
	}
	o.state.Busy = true
	o.reporter.Busy(true)
	return true
}

func (o *Orchestrator) label(text string) {
	o.mu.Lock()
	o.state.Label = text
	o.mu.Unlock()
	o.reporter.Label(text)
}

// restore waits for the display interval, then brings back the idle state.
func (o *Orchestrator) restore(ctx context.Context) {
	o.opts.Sleep(ctx, o.opts.Display)
	o.release()
}

func (o *Orchestrator) finished(job Job) {
	if jr, ok := o.reporter.(JobReporter); ok {
		jr.Finished(job)
	}
}

func (o *Orchestrator) release() {
	o.mu.Lock()
	o.state = State{Label: o.opts.IdleLabel}
	o.mu.Unlock()
	o.reporter.Label(o.opts.IdleLabel)
	o.reporter.Busy(false)
}

// ExportSlide exports one slide. A slide without a surface fails with
// NO_CONTENT before anything is rendered. Otherwise the returned job carries
// exactly one outcome; the error is non-nil only for a failure. The call
// returns after the display interval; a [JobReporter] sees the job before it.
func (o *Orchestrator) ExportSlide(ctx context.Context, id string) (Job, error) {
	if !o.acquire() {
		return Job{SlideID: id}, errors.New(errors.ErrCodeBusy, "an export is already running")
	}

	surf, ok := o.resolver.Resolve(id)
	if !ok {
		o.release()
		o.reporter.Alert(AlertNoContent)
		err := errors.New(errors.ErrCodeNoContent, "slide %q has no content to export", id)
		return Job{SlideID: id, Outcome: deliver.OutcomeFailure, Err: err}, err
	}
	defer o.restore(ctx)

	job := o.run(ctx, surf, o.opts.Render, o.opts.Now().UnixMilli(), o.label)
	o.label(resultLabel(job.Outcome))
	o.finished(job)
	if job.Err != nil {
		o.reporter.Alert(fmt.Sprintf("Could not export %q: %s", job.Title, errors.UserMessage(job.Err)))
	}
	return job, job.Err
}

// ExportAll exports the given slides strictly in order, pausing between
// jobs. Every job is attempted; failures are counted, not returned. The
// error is non-nil only when the run could not start (empty list, busy).
func (o *Orchestrator) ExportAll(ctx context.Context, ids []string) (Summary, error) {
	if len(ids) == 0 {
		o.reporter.Alert(AlertNoSlides)
		return Summary{}, errors.New(errors.ErrCodeNoContent, "no slides to export")
	}
	if !o.acquire() {
		return Summary{}, errors.New(errors.ErrCodeBusy, "an export is already running")
	}
	defer o.restore(ctx)

	cfg := o.opts.Render
	cfg.Scale = o.opts.BatchScale
	base := o.opts.Now().UnixMilli()
	summary := Summary{Total: len(ids)}
	for i, id := range ids {
		if i > 0 {
			o.opts.Sleep(ctx, o.opts.Delay)
		}
		o.label(fmt.Sprintf("Exporting %d/%d…", i+1, len(ids)))

		var job Job
		if surf, ok := o.resolver.Resolve(id); ok {
			job = o.run(ctx, surf, cfg, base+int64(i), nil)
		} else {
			job = Job{SlideID: id, Outcome: deliver.OutcomeFailure,
				Err: errors.New(errors.ErrCodeNoContent, "slide %q has no content to export", id)}
		}
		if job.Err != nil {
			o.logger.Error("Export job failed", "slide", id, "index", i+1, "error", job.Err)
		}
		summary.add(job)
		o.finished(job)
	}

	o.label(LabelBatchDone)
	o.logger.Info("Batch export finished", "total", summary.Total,
		"success", summary.Success, "manual", summary.Manual, "failure", summary.Failure)
	o.reporter.Alert(summary.Message())
	return summary, nil
}

// run executes resolve → rasterize → encode → deliver for one surface and
// converts every error or panic into a failure outcome. stage, when set,
// receives the stage labels.
func (o *Orchestrator) run(ctx context.Context, surf *surface.Surface, cfg render.Config, token int64, stage func(string)) (job Job) {
	if stage == nil {
		stage = func(string) {}
	}
	job = Job{
		SlideID:  surf.SlideID,
		Title:    surf.Title,
		Filename: o.namer.Filename(surf.Title, token),
		Outcome:  deliver.OutcomeFailure,
	}
	start := time.Now()
	observability.Export().OnJobStart(ctx, job.SlideID)
	defer func() {
		if v := recover(); v != nil {
			job.Outcome, job.Path, job.Method = deliver.OutcomeFailure, "", ""
			job.Err = errors.Recovered(v)
			o.logger.Error("Export job panicked", "slide", job.SlideID, "panic", v)
		}
		job.Duration = time.Since(start)
		observability.Export().OnJobComplete(ctx, job.SlideID, job.Outcome.String(), job.Duration, job.Err)
	}()

	stage(LabelRendering)
	img, err := o.rasterizer.Rasterize(ctx, surf, cfg)
	if err != nil {
		job.Err = err
		return job
	}

	stage(LabelEncoding)
	blob, err := o.encoder.Blob(img)
	if err != nil {
		job.Err = err
		return job
	}

	stage(LabelDelivering)
	receipt, err := o.deliverer.Deliver(ctx, blob, job.Filename)
	job.Outcome, job.Path, job.Method = receipt.Outcome, receipt.Path, receipt.Method
	if err != nil {
		job.Outcome = deliver.OutcomeFailure
		job.Err = err
		return job
	}

	o.logger.Info("Exported slide", "slide", job.SlideID, "outcome", job.Outcome, "path", job.Path)
	return job
}
