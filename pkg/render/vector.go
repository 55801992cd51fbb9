package render

import (
	"context"
	"image"
	"image/color"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"github.com/matzehuels/lookbook/pkg/errors"
	"github.com/matzehuels/lookbook/pkg/fonts"
	"github.com/matzehuels/lookbook/pkg/surface"
)

// Vector renders surfaces with github.com/gogpu/gg.
type Vector struct {
	once    sync.Once
	sources [2]*text.FontSource
	err     error
}

// NewVector creates the vector strategy.
func NewVector() *Vector { return &Vector{} }

func (v *Vector) Name() string { return "vector" }

func (v *Vector) loadFonts() error {
	v.once.Do(func() {
		for _, w := range []fonts.Weight{fonts.Regular, fonts.Bold} {
			src, err := text.NewFontSource(fonts.TTF(w))
			if err != nil {
				v.err = errors.Wrap(errors.ErrCodeInternal, err, "load font")
				return
			}
			v.sources[w] = src
		}
	})
	return v.err
}

// Rasterize draws every element at device resolution. Coordinates are scaled
// by hand because gg draws text in device space.
func (v *Vector) Rasterize(ctx context.Context, s *surface.Surface, cfg Config) (image.Image, error) {
	if err := checkImages(s, cfg); err != nil {
		return nil, err
	}
	if err := v.loadFonts(); err != nil {
		return nil, err
	}

	k := cfg.Scale
	dc := gg.NewContext(pixels(s.Width, k), pixels(s.Height, k))
	defer dc.Close()
	dc.ClearWithColor(ggColor(cfg.Background))

	for _, e := range s.Elements {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var err error
		switch el := e.(type) {
		case surface.Rect:
			err = v.rect(dc, el, k)
		case surface.Text:
			v.text(dc, el, k)
		case surface.Picture:
			err = v.picture(dc, el, k)
		}
		if err != nil {
			return nil, err
		}
	}
	return dc.Image(), nil
}

func (v *Vector) rect(dc *gg.Context, r surface.Rect, k float64) error {
	x, y, w, h := r.X*k, r.Y*k, r.W*k, r.H*k
	shape := func() {
		if r.Radius > 0 {
			dc.DrawRoundedRectangle(x, y, w, h, r.Radius*k)
		} else {
			dc.DrawRectangle(x, y, w, h)
		}
	}

	shape()
	if r.Gradient != nil {
		dc.SetFillBrush(gg.NewLinearGradientBrush(x, y, x+w, y).
			AddColorStop(0, ggColor(r.Gradient.From)).
			AddColorStop(1, ggColor(r.Gradient.To)))
	} else {
		dc.SetFillBrush(gg.Solid(ggColor(r.Fill)))
	}
	if err := dc.Fill(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "fill rect")
	}

	if r.StrokeWidth > 0 {
		shape()
		dc.SetFillBrush(gg.Solid(ggColor(r.Stroke)))
		dc.SetLineWidth(r.StrokeWidth * k)
		if err := dc.Stroke(); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "stroke rect")
		}
	}
	return nil
}

func (v *Vector) text(dc *gg.Context, t surface.Text, k float64) {
	dc.SetFont(v.sources[t.Weight].Face(t.Size * k))
	dc.SetFillBrush(gg.Solid(ggColor(t.Color)))
	for i, line := range t.Lines {
		if line == "" {
			continue
		}
		w, _ := dc.MeasureString(line)
		dc.DrawString(line, t.LineX(w/k)*k, t.Baseline(i)*k)
	}
}

func (v *Vector) picture(dc *gg.Context, p surface.Picture, k float64) error {
	if !p.Image.Loaded() {
		return v.placeholder(dc, p, k)
	}
	dc.DrawImageEx(gg.ImageBufFromImage(p.Image.Pixels), gg.DrawImageOptions{
		X:             p.X * k,
		Y:             p.Y * k,
		DstWidth:      p.W * k,
		DstHeight:     p.H * k,
		Interpolation: gg.InterpBicubic,
		Opacity:       1,
		BlendMode:     gg.BlendNormal,
	})
	return nil
}

func (v *Vector) placeholder(dc *gg.Context, p surface.Picture, k float64) error {
	if err := v.rect(dc, surface.Rect{X: p.X, Y: p.Y, W: p.W, H: p.H, Radius: 8, Fill: placeholderFill}, k); err != nil {
		return err
	}
	v.text(dc, surface.Text{
		X: p.X, Y: p.Y + p.H/2 - 10, Width: p.W,
		Lines:  []string{placeholderLabel},
		Weight: fonts.Regular, Size: 16, LineHeight: 20, Ascent: 15,
		Color: placeholderInk, Align: surface.AlignCenter,
	}, k)
	return nil
}

func ggColor(c color.Color) gg.RGBA {
	n := toNRGBA(c)
	return gg.RGBA{R: float64(n.R) / 255, G: float64(n.G) / 255, B: float64(n.B) / 255, A: float64(n.A) / 255}
}
