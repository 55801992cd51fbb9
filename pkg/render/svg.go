package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	svg "github.com/ajstarks/svgo/float"

	"github.com/matzehuels/lookbook/pkg/encode"
	"github.com/matzehuels/lookbook/pkg/errors"
	"github.com/matzehuels/lookbook/pkg/fonts"
	"github.com/matzehuels/lookbook/pkg/surface"
)

// SVG serializes surfaces to SVG and rasterizes them with rsvg-convert.
type SVG struct {
	enc *encode.Encoder
}

// NewSVG creates the svg strategy.
func NewSVG() *SVG { return &SVG{enc: encode.New()} }

func (r *SVG) Name() string { return "svg" }

func (r *SVG) Rasterize(ctx context.Context, s *surface.Surface, cfg Config) (image.Image, error) {
	if err := checkImages(s, cfg); err != nil {
		return nil, err
	}
	doc, err := r.Document(s, cfg)
	if err != nil {
		return nil, err
	}
	data, err := svgToPNG(ctx, doc, cfg.Scale)
	if err != nil {
		return nil, err
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode rsvg-convert output")
	}
	return img, nil
}

// Document returns the self-contained SVG document for s. Fonts and images
// are embedded as data URIs so the file renders without any other input.
func (r *SVG) Document(s *surface.Surface, cfg Config) ([]byte, error) {
	cfg = cfg.withDefaults()
	var buf bytes.Buffer
	doc := svg.New(&buf)
	doc.Start(s.Width, s.Height)

	doc.Style("text/css", fmt.Sprintf(
		"@font-face{font-family:'%[1]s';font-weight:400;src:url(data:font/ttf;base64,%[2]s)}"+
			"@font-face{font-family:'%[1]s';font-weight:700;src:url(data:font/ttf;base64,%[3]s)}",
		fonts.FontFamily, fonts.Base64(fonts.Regular), fonts.Base64(fonts.Bold)))

	doc.Rect(0, 0, s.Width, s.Height, fill(cfg.Background))

	grads := 0
	for _, e := range s.Elements {
		switch el := e.(type) {
		case surface.Rect:
			style := fill(el.Fill)
			if el.Gradient != nil {
				grads++
				id := fmt.Sprintf("grad%d", grads)
				doc.Def()
				doc.LinearGradient(id, 0, 0, 100, 0, []svg.Offcolor{
					{Offset: 0, Color: hex(el.Gradient.From), Opacity: opacity(el.Gradient.From)},
					{Offset: 100, Color: hex(el.Gradient.To), Opacity: opacity(el.Gradient.To)},
				})
				doc.DefEnd()
				style = fmt.Sprintf("fill:url(#%s)", id)
			}
			if el.StrokeWidth > 0 {
				style += fmt.Sprintf(";stroke:%s;stroke-opacity:%.3f;stroke-width:%.2f",
					hex(el.Stroke), opacity(el.Stroke), el.StrokeWidth)
			}
			if el.Radius > 0 {
				doc.Roundrect(el.X, el.Y, el.W, el.H, el.Radius, el.Radius, style)
			} else {
				doc.Rect(el.X, el.Y, el.W, el.H, style)
			}
		case surface.Text:
			writeText(doc, el)
		case surface.Picture:
			if !el.Image.Loaded() {
				doc.Roundrect(el.X, el.Y, el.W, el.H, 8, 8, fill(placeholderFill))
				writeText(doc, surface.Text{
					X: el.X, Y: el.Y + el.H/2 - 10, Width: el.W,
					Lines:  []string{placeholderLabel},
					Weight: fonts.Regular, Size: 16, LineHeight: 20, Ascent: 15,
					Color: placeholderInk, Align: surface.AlignCenter,
				})
				continue
			}
			uri, err := r.enc.DataURI(el.Image.Pixels)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "embed image %s", el.Image.ID)
			}
			doc.Image(el.X, el.Y, int(math.Round(el.W)), int(math.Round(el.H)), uri, `preserveAspectRatio="none"`)
		}
	}

	doc.End()
	return buf.Bytes(), nil
}

func writeText(doc *svg.SVG, t surface.Text) {
	weight := 400
	if t.Weight == fonts.Bold {
		weight = 700
	}
	style := fmt.Sprintf("font-family:%s;font-size:%.1fpx;font-weight:%d;%s",
		fonts.FallbackFontFamily, t.Size, weight, fill(t.Color))
	x := t.X
	if t.Align == surface.AlignCenter {
		x = t.X + t.Width/2
		style += ";text-anchor:middle"
	}
	for i, line := range t.Lines {
		if line == "" {
			continue
		}
		doc.Text(x, t.Baseline(i), line, style)
	}
}

func fill(c color.Color) string {
	return fmt.Sprintf("fill:%s;fill-opacity:%.3f", hex(c), opacity(c))
}

func hex(c color.Color) string {
	n := toNRGBA(c)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

func opacity(c color.Color) float64 {
	return float64(toNRGBA(c).A) / 255
}
