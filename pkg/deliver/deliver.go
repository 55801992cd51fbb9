// Package deliver places encoded slides in the user's hands.
//
// An [Agent] runs a small state machine for every file:
//
//	Start → Direct download ──ok──→ Delivered          (success)
//	              │ fails
//	              ↓
//	        Manual fallback ──ok──→ View opened        (manual)
//	              │ fails
//	              ↓
//	            Failed                                 (failure, DELIVERY_FAILURE)
//
// Direct download copies the file into the download directory through a
// short-lived staging [Lease]. The manual fallback writes a self-contained
// HTML view that shows the image with a save instruction and a save link, and
// asks the desktop to open it. The agent cannot observe whether the user then
// saves the file, so a manual outcome is unverified and never reported as a
// success.
package deliver

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lookbook/pkg/encode"
	"github.com/matzehuels/lookbook/pkg/errors"
	"github.com/matzehuels/lookbook/pkg/observability"
)

// Outcome is the terminal result of a delivery.
type Outcome int

const (
	OutcomeFailure Outcome = iota
	OutcomeSuccess
	OutcomeManual
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeManual:
		return "manual"
	default:
		return "failure"
	}
}

// Receipt describes where a file ended up.
type Receipt struct {
	Outcome Outcome
	// Path is the downloaded file (success) or the fallback view (manual).
	Path string
	// Method names the delivery method that produced the receipt.
	Method string
}

// Method is one way of delivering a file. It returns the resulting path.
type Method interface {
	Name() string
	Deliver(ctx context.Context, blob encode.Blob, filename string) (string, error)
}

type step struct {
	method  Method
	outcome Outcome
}

// Agent tries its delivery methods in order.
type Agent struct {
	steps  []step
	logger *log.Logger
}

// Option configures an [Agent].
type Option func(*Agent)

// WithMethod appends a method whose success yields outcome.
func WithMethod(m Method, outcome Outcome) Option {
	return func(a *Agent) {
		a.steps = append(a.steps, step{method: m, outcome: outcome})
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(a *Agent) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewAgent creates an Agent from explicit methods.
func NewAgent(opts ...Option) *Agent {
	a := &Agent{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// New creates the standard agent: direct download (unless disabled) then
// the manual fallback.
func New(cfg Config, logger *log.Logger) *Agent {
	cfg = cfg.withDefaults()
	var opts []Option
	if cfg.Direct {
		opts = append(opts, WithMethod(NewDownload(cfg.Dir, cfg.Grace, logger), OutcomeSuccess))
	}
	opts = append(opts,
		WithMethod(NewManual(cfg.ViewDir, cfg.Open, logger), OutcomeManual),
		WithLogger(logger))
	return NewAgent(opts...)
}

// Deliver delivers blob under filename. The error is non-nil only when every
// method failed; it then has the DELIVERY_FAILURE code.
func (a *Agent) Deliver(ctx context.Context, blob encode.Blob, filename string) (Receipt, error) {
	if err := errors.ValidateFilename(filename); err != nil {
		return Receipt{Outcome: OutcomeFailure}, errors.Wrap(errors.ErrCodeDeliveryFailure, err, "bad filename")
	}

	var failures []error
	for _, st := range a.steps {
		name := st.method.Name()
		path, err := deliverSafely(ctx, st.method, blob, filename)
		observability.Export().OnDeliver(ctx, name, err)
		if err != nil {
			a.logger.Warn("Delivery method failed", "method", name, "file", filename, "error", err)
			failures = append(failures, fmt.Errorf("%s: %w", name, err))
			continue
		}
		a.logger.Debug("Delivered", "method", name, "path", path, "outcome", st.outcome)
		return Receipt{Outcome: st.outcome, Path: path, Method: name}, nil
	}

	return Receipt{Outcome: OutcomeFailure}, errors.Wrap(errors.ErrCodeDeliveryFailure,
		stderrors.Join(failures...), "could not deliver %s", filename)
}

func deliverSafely(ctx context.Context, m Method, blob encode.Blob, filename string) (path string, err error) {
	defer func() {
		if v := recover(); v != nil {
			path, err = "", errors.Recovered(v)
		}
	}()
	return m.Deliver(ctx, blob, filename)
}
