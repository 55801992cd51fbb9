// Package surface lays slides out into fixed-size rendering surfaces.
//
// A [Surface] is the off-screen, fully laid-out picture of exactly one slide:
// an ordered list of positioned elements in a fixed 800×1200 coordinate
// space. Text is wrapped during layout with the embedded font metrics, so
// every rasterization strategy draws the same lines at the same positions.
//
// Surfaces are read-only once built. The [Registry] keeps one surface per
// exportable slide and answers lookups by slide ID.
package surface

import (
	"image/color"

	"github.com/matzehuels/lookbook/pkg/deck"
	"github.com/matzehuels/lookbook/pkg/fonts"
)

// Logical dimensions of every surface.
const (
	Width  = 800.0
	Height = 1200.0
)

// Palette used by the lookbook layout.
var (
	Gold       = color.NRGBA{R: 0xD4, G: 0xAF, B: 0x37, A: 0xFF}
	GoldDeep   = color.NRGBA{R: 0xB4, G: 0x83, B: 0x0B, A: 0xFF}
	Ink        = color.NRGBA{R: 0x78, G: 0x35, B: 0x0F, A: 0xFF}
	Body       = color.NRGBA{R: 0x44, G: 0x40, B: 0x3C, A: 0xFF}
	Card       = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	CardBorder = color.NRGBA{R: 0xFD, G: 0xE6, B: 0x8A, A: 0xFF}
	Cream      = color.NRGBA{R: 0xFF, G: 0xFB, B: 0xEB, A: 0xFF}
	Watermark  = color.NRGBA{R: 0x92, G: 0x40, B: 0x0E, A: 0x99}
)

// Element is one drawable item of a surface: [Rect], [Text] or [Picture].
type Element interface {
	element()
}

// Gradient is a horizontal two-stop linear gradient.
type Gradient struct {
	From, To color.NRGBA
}

// Rect is a filled, optionally rounded and stroked rectangle.
// When Gradient is set it replaces Fill.
type Rect struct {
	X, Y, W, H  float64
	Radius      float64
	Fill        color.NRGBA
	Gradient    *Gradient
	Stroke      color.NRGBA
	StrokeWidth float64
}

// Align is the horizontal alignment of text lines inside their box.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
)

// Text is a block of pre-wrapped lines.
//
// The block's box starts at (X, Y) and is Width wide. Line i sits on the
// baseline returned by [Text.Baseline]; Widths holds the measured advance of
// each line for the embedded face.
type Text struct {
	X, Y       float64
	Width      float64
	Lines      []string
	Widths     []float64
	Weight     fonts.Weight
	Size       float64
	LineHeight float64
	Ascent     float64
	Color      color.NRGBA
	Align      Align
}

// Baseline returns the y coordinate of line i's baseline.
func (t Text) Baseline(i int) float64 {
	return t.Y + t.Ascent + float64(i)*t.LineHeight
}

// LineX returns the x coordinate where line i starts, given its width w
// as measured by the renderer's own face.
func (t Text) LineX(w float64) float64 {
	if t.Align == AlignCenter {
		return t.X + (t.Width-w)/2
	}
	return t.X
}

// Height returns the total height of the block.
func (t Text) Height() float64 {
	return float64(len(t.Lines)) * t.LineHeight
}

// Picture is an image scaled into its box. Image.Pixels may be nil when the
// image failed to load; renderers decide how to treat that.
type Picture struct {
	X, Y, W, H float64
	Image      *deck.Image
}

func (Rect) element()    {}
func (Text) element()    {}
func (Picture) element() {}

// Surface is the laid-out representation of one slide.
type Surface struct {
	SlideID  string
	Title    string
	Width    float64
	Height   float64
	Elements []Element
}

// Pictures returns every picture element in paint order.
func (s *Surface) Pictures() []Picture {
	var out []Picture
	for _, e := range s.Elements {
		if p, ok := e.(Picture); ok {
			out = append(out, p)
		}
	}
	return out
}

// MissingImages counts pictures whose pixels are unavailable.
func (s *Surface) MissingImages() int {
	n := 0
	for _, p := range s.Pictures() {
		if !p.Image.Loaded() {
			n++
		}
	}
	return n
}
