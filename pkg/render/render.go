package render

import (
	"context"
	stderrors "errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lookbook/pkg/errors"
	"github.com/matzehuels/lookbook/pkg/observability"
	"github.com/matzehuels/lookbook/pkg/surface"
)

// DefaultScale is the output scale factor for a single export.
const DefaultScale = 2.0

// DefaultStrategies is the default strategy order.
var DefaultStrategies = []string{"vector", "svg", "basic"}

// CrossOriginMode controls what happens with images that failed to load.
// The zero value means "inherit" in overrides and strict in a final config.
type CrossOriginMode int

const (
	CrossOriginStrict CrossOriginMode = iota + 1
	CrossOriginLenient
)

func (m CrossOriginMode) String() string {
	switch m {
	case CrossOriginLenient:
		return "lenient"
	default:
		return "strict"
	}
}

// ParseCrossOrigin parses "strict" or "lenient".
func ParseCrossOrigin(s string) (CrossOriginMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return CrossOriginStrict, nil
	case "lenient":
		return CrossOriginLenient, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown cross-origin mode %q (want strict or lenient)", s)
}

// Config is the rasterization configuration.
type Config struct {
	Background  color.Color
	Scale       float64
	CrossOrigin CrossOriginMode
}

// DefaultConfig returns the configuration for a single export.
func DefaultConfig() Config {
	return Config{Background: surface.Cream, Scale: DefaultScale, CrossOrigin: CrossOriginStrict}
}

// Merge returns c with the non-zero fields of o applied on top.
func (c Config) Merge(o Config) Config {
	if o.Background != nil {
		c.Background = o.Background
	}
	if o.Scale > 0 {
		c.Scale = o.Scale
	}
	if o.CrossOrigin != 0 {
		c.CrossOrigin = o.CrossOrigin
	}
	return c
}

func (c Config) withDefaults() Config {
	if c.Background == nil {
		c.Background = surface.Cream
	}
	if c.Scale <= 0 {
		c.Scale = DefaultScale
	}
	if c.CrossOrigin == 0 {
		c.CrossOrigin = CrossOriginStrict
	}
	return c
}

// Strategy turns a surface into a bitmap.
type Strategy interface {
	Name() string
	Rasterize(ctx context.Context, s *surface.Surface, cfg Config) (image.Image, error)
}

type step struct {
	strategy Strategy
	override Config
}

// Rasterizer tries its strategies in order until one yields a bitmap.
type Rasterizer struct {
	steps  []step
	logger *log.Logger
}

// Option configures a [Rasterizer].
type Option func(*Rasterizer)

// WithStrategy appends a strategy. Non-zero fields of override replace the
// caller's configuration for this strategy only.
func WithStrategy(s Strategy, override Config) Option {
	return func(r *Rasterizer) {
		r.steps = append(r.steps, step{strategy: s, override: override})
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(r *Rasterizer) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRasterizer creates a Rasterizer. Without strategies every call fails
// with RENDERING_EXHAUSTED.
func NewRasterizer(opts ...Option) *Rasterizer {
	r := &Rasterizer{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Builtin returns a built-in strategy and its configuration override.
// vector and svg follow the caller's configuration; basic always renders
// at scale 1 with placeholders for unavailable images.
func Builtin(name string) (Strategy, Config, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "vector":
		return NewVector(), Config{}, nil
	case "svg":
		return NewSVG(), Config{}, nil
	case "basic":
		return NewBasic(), Config{Scale: 1, CrossOrigin: CrossOriginLenient}, nil
	}
	return nil, Config{}, errors.New(errors.ErrCodeInvalidInput, "unknown render strategy %q (want vector, svg or basic)", name)
}

// FromNames builds a Rasterizer from built-in strategy names, in order.
// Extra options are applied after the strategies.
func FromNames(names []string, opts ...Option) (*Rasterizer, error) {
	if len(names) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no render strategies configured")
	}
	var all []Option
	for _, n := range names {
		s, o, err := Builtin(n)
		if err != nil {
			return nil, err
		}
		all = append(all, WithStrategy(s, o))
	}
	return NewRasterizer(append(all, opts...)...), nil
}

// Strategies returns the strategy names in order.
func (r *Rasterizer) Strategies() []string {
	names := make([]string, len(r.steps))
	for i, st := range r.steps {
		names[i] = st.strategy.Name()
	}
	return names
}

// Rasterize renders s with the first strategy that succeeds.
func (r *Rasterizer) Rasterize(ctx context.Context, s *surface.Surface, cfg Config) (image.Image, error) {
	if s == nil {
		return nil, errors.New(errors.ErrCodeNoContent, "no surface to rasterize")
	}

	var failures []error
	for _, st := range r.steps {
		name := st.strategy.Name()
		c := cfg.withDefaults().Merge(st.override)

		start := time.Now()
		img, err := attempt(ctx, st.strategy, s, c)
		elapsed := time.Since(start)
		observability.Export().OnRasterize(ctx, name, elapsed, err)

		if err != nil {
			r.logger.Warn("Render strategy failed", "slide", s.SlideID, "strategy", name, "error", err)
			failures = append(failures, fmt.Errorf("%s: %w", name, err))
			continue
		}
		b := img.Bounds()
		r.logger.Debug("Rendered slide", "slide", s.SlideID, "strategy", name,
			"size", fmt.Sprintf("%dx%d", b.Dx(), b.Dy()), "elapsed", elapsed.Round(time.Millisecond))
		return img, nil
	}

	return nil, errors.Wrap(errors.ErrCodeRenderingExhausted, stderrors.Join(failures...),
		"all %d rendering strategies failed for slide %q", len(r.steps), s.SlideID)
}

func attempt(ctx context.Context, st Strategy, s *surface.Surface, cfg Config) (img image.Image, err error) {
	defer func() {
		if v := recover(); v != nil {
			img, err = nil, errors.Recovered(v)
		}
	}()
	img, err = st.Rasterize(ctx, s, cfg)
	if err != nil {
		return nil, err
	}
	if img == nil || img.Bounds().Empty() {
		return nil, errors.New(errors.ErrCodeInternal, "strategy produced no usable bitmap")
	}
	return img, nil
}

// checkImages enforces the cross-origin mode.
func checkImages(s *surface.Surface, cfg Config) error {
	if cfg.CrossOrigin == CrossOriginLenient {
		return nil
	}
	if n := s.MissingImages(); n > 0 {
		return errors.New(errors.ErrCodeNetwork, "%d image(s) unavailable; strict cross-origin mode refuses to render", n)
	}
	return nil
}

// pixels converts a logical length to device pixels.
func pixels(v, scale float64) int {
	return int(math.Round(v * scale))
}

// toNRGBA converts any color to non-premultiplied RGBA.
func toNRGBA(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

// Placeholder colors for unavailable images.
var (
	placeholderFill = color.NRGBA{R: 0xF5, G: 0xF5, B: 0xF4, A: 0xFF}
	placeholderInk  = color.NRGBA{R: 0xA8, G: 0xA2, B: 0x9E, A: 0xFF}
)

const placeholderLabel = "Image unavailable"
