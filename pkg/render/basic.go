package render

import (
	"context"
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/lookbook/pkg/surface"
)

// Basic is the degraded strategy: flat shapes, square corners and the
// 7×13 bitmap font, composited with image/draw. It has no external
// dependencies and is the last resort of the default chain.
type Basic struct{}

// NewBasic creates the basic strategy.
func NewBasic() *Basic { return &Basic{} }

func (Basic) Name() string { return "basic" }

func (b Basic) Rasterize(ctx context.Context, s *surface.Surface, cfg Config) (image.Image, error) {
	if err := checkImages(s, cfg); err != nil {
		return nil, err
	}
	k := cfg.Scale
	dst := image.NewNRGBA(image.Rect(0, 0, pixels(s.Width, k), pixels(s.Height, k)))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(toNRGBA(cfg.Background)), image.Point{}, draw.Src)

	for _, e := range s.Elements {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		switch el := e.(type) {
		case surface.Rect:
			b.rect(dst, el, k)
		case surface.Text:
			b.text(dst, el, k)
		case surface.Picture:
			b.picture(dst, el, k)
		}
	}
	return dst, nil
}

func (Basic) rect(dst draw.Image, r surface.Rect, k float64) {
	box := image.Rect(pixels(r.X, k), pixels(r.Y, k), pixels(r.X+r.W, k), pixels(r.Y+r.H, k))
	if r.Gradient != nil {
		w := box.Dx()
		for x := box.Min.X; x < box.Max.X; x++ {
			t := 0.0
			if w > 1 {
				t = float64(x-box.Min.X) / float64(w-1)
			}
			col := image.Rect(x, box.Min.Y, x+1, box.Max.Y)
			draw.Draw(dst, col, image.NewUniform(lerp(r.Gradient.From, r.Gradient.To, t)), image.Point{}, draw.Over)
		}
	} else {
		draw.Draw(dst, box, image.NewUniform(r.Fill), image.Point{}, draw.Over)
	}

	if r.StrokeWidth > 0 {
		sw := max(1, pixels(r.StrokeWidth, k))
		src := image.NewUniform(r.Stroke)
		for _, edge := range []image.Rectangle{
			image.Rect(box.Min.X, box.Min.Y, box.Max.X, box.Min.Y+sw),
			image.Rect(box.Min.X, box.Max.Y-sw, box.Max.X, box.Max.Y),
			image.Rect(box.Min.X, box.Min.Y, box.Min.X+sw, box.Max.Y),
			image.Rect(box.Max.X-sw, box.Min.Y, box.Max.X, box.Max.Y),
		} {
			draw.Draw(dst, edge, src, image.Point{}, draw.Over)
		}
	}
}

func (Basic) text(dst draw.Image, t surface.Text, k float64) {
	d := font.Drawer{Dst: dst, Src: image.NewUniform(t.Color), Face: basicfont.Face7x13}
	for i, line := range t.Lines {
		if line == "" {
			continue
		}
		w := float64(d.MeasureString(line)) / 64 / k
		x := pixels(t.LineX(w), k)
		d.Dot = fixed.P(x, pixels(t.Baseline(i), k))
		d.DrawString(line)
	}
}

func (b Basic) picture(dst draw.Image, p surface.Picture, k float64) {
	box := image.Rect(pixels(p.X, k), pixels(p.Y, k), pixels(p.X+p.W, k), pixels(p.Y+p.H, k))
	if !p.Image.Loaded() {
		draw.Draw(dst, box, image.NewUniform(placeholderFill), image.Point{}, draw.Over)
		b.text(dst, surface.Text{
			X: p.X, Y: p.Y + p.H/2 - 10, Width: p.W,
			Lines: []string{placeholderLabel}, LineHeight: 20, Ascent: 15,
			Color: placeholderInk, Align: surface.AlignCenter,
		}, k)
		return
	}
	src := p.Image.Pixels
	xdraw.ApproxBiLinear.Scale(dst, box, src, src.Bounds(), xdraw.Over, nil)
}

func lerp(a, b color.NRGBA, t float64) color.NRGBA {
	mix := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5) }
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
