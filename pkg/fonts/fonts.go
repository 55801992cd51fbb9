// Package fonts provides the embedded typefaces used to lay out and draw slides.
//
// The Go font family (golang.org/x/image/font/gofont) is compiled into the
// binary, so text metrics are identical on every machine: the surface layout
// wraps lines with these metrics and every rasterization strategy draws with
// the same faces.
package fonts

import (
	"encoding/base64"
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// Weight selects one of the embedded faces.
type Weight int

const (
	Regular Weight = iota
	Bold
)

// FontFamily is the CSS font-family name used when fonts are embedded in SVG.
const FontFamily = "Go"

// FallbackFontFamily lists fallbacks for SVG renderers that ignore @font-face.
const FallbackFontFamily = `'Go', 'Helvetica Neue', Arial, sans-serif`

// TTF returns the raw TrueType data for weight w.
func TTF(w Weight) []byte {
	if w == Bold {
		return gobold.TTF
	}
	return goregular.TTF
}

var (
	parseOnce sync.Once
	parsed    [2]*sfnt.Font
	parseErr  error

	b64Once sync.Once
	b64     [2]string
)

func load() error {
	parseOnce.Do(func() {
		for _, w := range []Weight{Regular, Bold} {
			f, err := opentype.Parse(TTF(w))
			if err != nil {
				parseErr = fmt.Errorf("parse embedded font: %w", err)
				return
			}
			parsed[w] = f
		}
	})
	return parseErr
}

// Base64 returns the TrueType data for w as base64, computed once.
func Base64(w Weight) string {
	b64Once.Do(func() {
		b64[Regular] = base64.StdEncoding.EncodeToString(goregular.TTF)
		b64[Bold] = base64.StdEncoding.EncodeToString(gobold.TTF)
	})
	return b64[w]
}

// Face returns a font.Face for w at size points (72 DPI, so points equal pixels).
// Callers own the face and should Close it.
func Face(w Weight, size float64) (font.Face, error) {
	if err := load(); err != nil {
		return nil, err
	}
	return opentype.NewFace(parsed[w], &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}
