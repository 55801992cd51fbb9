package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lookbook/pkg/encode"
	"github.com/matzehuels/lookbook/pkg/errors"
	"github.com/matzehuels/lookbook/pkg/render"
	"github.com/matzehuels/lookbook/pkg/surface"
)

const (
	formatSVG = "svg"
	formatPNG = "png"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output string // output file path
	format string // "svg" or "png"; derived from output when empty
}

// renderCommand creates the render command, which writes one slide to a
// file without going through delivery.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <look>",
		Short: "Write the SVG document or PNG bitmap of one look",
		Long: `Render one look to a file for previewing its layout.

The svg format writes the self-contained SVG document (fonts and images
embedded). The png format runs the configured rendering strategies and writes
the bitmap that export would deliver.`,
		ValidArgsFunction: c.completeLooks,
		Args:              cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := resolveFormat(opts.format, opts.output)
			if err != nil {
				return err
			}
			opts.format = format
			if err := c.bindFlags(cmd, map[string]string{"strategy": "render.strategies"}); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <look>.<format>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: png (default), svg")
	cmd.Flags().StringSlice("strategy", nil, "rendering strategies for png output")

	return cmd
}

// resolveFormat picks the format from the flag, then the output extension.
func resolveFormat(format, output string) (string, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
		if format == "" {
			format = formatPNG
		}
	}
	switch format {
	case formatSVG, formatPNG:
		return format, nil
	}
	return "", fmt.Errorf("invalid format: %s (must be 'png' or 'svg')", format)
}

func (c *CLI) runRender(ctx context.Context, ref string, opts *renderOpts) error {
	s, err := c.openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	slide, err := findSlide(s.deck, ref)
	if err != nil {
		return err
	}
	surf, ok := s.registry.Resolve(slide.ID)
	if !ok {
		return errors.New(errors.ErrCodeNoContent, "look %q has no content to render", slide.Title)
	}

	var data []byte
	switch opts.format {
	case formatSVG:
		data, err = render.NewSVG().Document(surf, s.cfg.Render.Config)
	default:
		data, err = c.renderPNG(ctx, s, surf)
	}
	if err != nil {
		return err
	}

	out := opts.output
	if out == "" {
		out = slide.ID + "." + opts.format
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	printSuccess("Rendered %s", slide.Title)
	printFile(out)
	return nil
}

func (c *CLI) renderPNG(ctx context.Context, s *session, surf *surface.Surface) ([]byte, error) {
	r, err := render.FromNames(s.cfg.Render.Strategies, render.WithLogger(c.Logger))
	if err != nil {
		return nil, err
	}
	img, err := r.Rasterize(ctx, surf, s.cfg.Render.Config)
	if err != nil {
		return nil, err
	}
	blob, err := encode.New().Blob(img)
	if err != nil {
		return nil, err
	}
	return blob.Bytes, nil
}
