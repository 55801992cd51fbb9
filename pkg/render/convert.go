package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/matzehuels/lookbook/pkg/errors"
)

// rsvgBinary is the librsvg command line tool.
var rsvgBinary = "rsvg-convert"

// svgToPNG rasterizes SVG bytes with rsvg-convert at the given zoom factor.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func svgToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	if _, err := exec.LookPath(rsvgBinary); err != nil {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"svg rendering requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin")
	}

	cmd := exec.CommandContext(ctx, rsvgBinary, "-f", "png", "-z", fmt.Sprintf("%.2f", scale))
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "rsvg-convert: %s", bytes.TrimSpace(errBuf.Bytes()))
	}
	return out.Bytes(), nil
}
