// Package encode turns rendered bitmaps into PNG files.
//
// Output is lossless and deterministic: the bitmap is converted to
// non-premultiplied RGBA without quantization and written with a fixed
// compression level, so the same bitmap always yields the same bytes.
package encode

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/draw"
	"image/png"

	"github.com/matzehuels/lookbook/pkg/errors"
)

// MIMEType of every blob produced by this package.
const MIMEType = "image/png"

// Blob is an encoded image.
type Blob struct {
	Bytes []byte
	MIME  string
}

// Size returns the blob length in bytes.
func (b Blob) Size() int { return len(b.Bytes) }

// DataURI returns the blob as a base64 data URI.
func (b Blob) DataURI() string {
	return "data:" + b.MIME + ";base64," + base64.StdEncoding.EncodeToString(b.Bytes)
}

// Encoder writes PNGs.
type Encoder struct {
	png png.Encoder
}

// New returns an Encoder with the default compression level.
func New() *Encoder {
	return &Encoder{png: png.Encoder{CompressionLevel: png.DefaultCompression}}
}

// Blob encodes img as PNG bytes.
func (e *Encoder) Blob(img image.Image) (Blob, error) {
	if img == nil || img.Bounds().Empty() {
		return Blob{}, errors.New(errors.ErrCodeInvalidInput, "cannot encode an empty bitmap")
	}
	var buf bytes.Buffer
	if err := e.png.Encode(&buf, nrgba(img)); err != nil {
		return Blob{}, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return Blob{Bytes: buf.Bytes(), MIME: MIMEType}, nil
}

// DataURI encodes img as a data:image/png;base64 URI.
func (e *Encoder) DataURI(img image.Image) (string, error) {
	b, err := e.Blob(img)
	if err != nil {
		return "", err
	}
	return b.DataURI(), nil
}

func nrgba(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
