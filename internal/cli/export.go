package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lookbook/pkg/deliver"
	"github.com/matzehuels/lookbook/pkg/encode"
	"github.com/matzehuels/lookbook/pkg/errors"
	"github.com/matzehuels/lookbook/pkg/export"
	"github.com/matzehuels/lookbook/pkg/render"
)

// exportOpts holds the flags of the export command that are not config keys.
type exportOpts struct {
	all bool // export every exportable look
	yes bool // do not wait for alerts to be acknowledged
}

// exportFlags maps export flags onto config keys.
var exportFlags = map[string]string{
	"out":          "deliver.dir",
	"prefix":       "export.prefix",
	"strategy":     "render.strategies",
	"scale":        "render.scale",
	"batch-scale":  "export.batch_scale",
	"cross-origin": "render.cross_origin",
}

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export [look...]",
		Short: "Export looks as PNG slides",
		Long: `Export one or more looks as branded PNG slides.

A look is named by its ID, its position in the deck (1, 2, ...) or a unique
ID prefix. Without arguments an interactive picker is shown; --all exports
every look that has content, one after another.

Files are saved to the download directory. When that fails, a page holding
the image is written and opened so the slide can be saved by hand.`,
		ValidArgsFunction: c.completeLooks,
		Example: `  lookbook export 1
  lookbook export --all --out ./slides
  lookbook export summer-linen --strategy basic`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.all && len(args) > 0 {
				return fmt.Errorf("--all cannot be combined with look arguments")
			}
			if err := c.bindFlags(cmd, exportFlags); err != nil {
				return err
			}
			c.applyExportFlags(cmd)
			return c.runExport(cmd.Context(), args, &opts)
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&opts.all, "all", "a", false, "export every look with content, in deck order")
	f.BoolVarP(&opts.yes, "yes", "y", false, "do not wait for alerts to be acknowledged")
	f.StringP("out", "o", "", "download directory (default ~/Downloads)")
	f.String("prefix", "", "file name prefix (default peridot)")
	f.StringSlice("strategy", nil, "rendering strategies in fallback order (default vector,svg,basic)")
	f.Float64("scale", 0, "pixel scale of a single exported look (default 2)")
	f.Float64("batch-scale", 0, "pixel scale of looks exported with --all or several looks (default 1)")
	f.String("cross-origin", "", "strict or lenient handling of unavailable images (default strict)")
	f.Bool("no-direct", false, "skip the direct download and write the manual save page")
	f.Bool("no-open", false, "write the manual save page without opening it")

	return cmd
}

// bindFlags binds cmd's flags to config keys. Binding happens when the
// command runs because several commands share keys.
func (c *CLI) bindFlags(cmd *cobra.Command, flags map[string]string) error {
	for flag, key := range flags {
		if err := c.v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("bind --%s: %w", flag, err)
		}
	}
	return nil
}

// applyExportFlags sets config keys for the negated boolean flags.
func (c *CLI) applyExportFlags(cmd *cobra.Command) {
	if on, _ := cmd.Flags().GetBool("no-direct"); on {
		c.v.Set("deliver.direct", false)
	}
	if on, _ := cmd.Flags().GetBool("no-open"); on {
		c.v.Set("deliver.open", false)
	}
}

func (c *CLI) runExport(ctx context.Context, args []string, opts *exportOpts) error {
	s, err := c.openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	ids, err := c.exportTargets(ctx, s, args, opts.all)
	if err != nil || ids == nil {
		return err
	}

	rasterizer, err := render.FromNames(s.cfg.Render.Strategies, render.WithLogger(c.Logger))
	if err != nil {
		return err
	}
	c.Logger.Debug("Rendering strategies", "chain", rasterizer.Strategies(), "scale", s.cfg.Render.Config.Scale,
		"cross_origin", s.cfg.Render.Config.CrossOrigin)

	reporter := newTermReporter(ctx, c.Logger,
		isTerminal(os.Stderr),
		!opts.yes && isTerminal(os.Stdin) && isTerminal(os.Stdout))

	orch := export.New(s.registry, rasterizer, encode.New(),
		deliver.New(s.cfg.Deliver.Agent(), c.Logger), reporter,
		export.Options{
			Prefix:  s.cfg.Export.Prefix,
			Delay:   s.cfg.Export.Delay,
			Display: s.cfg.Export.Display,
			Render:  s.cfg.Render.Config,
			Logger:  c.Logger,

			BatchScale: s.cfg.Export.BatchScale,
		})

	if !opts.all && len(ids) == 1 {
		_, err := orch.ExportSlide(ctx, ids[0])
		return err
	}

	summary, err := orch.ExportAll(ctx, ids)
	if err != nil {
		return err
	}
	if summary.Failure > 0 {
		return fmt.Errorf("%d of %d exports failed", summary.Failure, summary.Total)
	}
	return nil
}

// exportTargets returns the slide IDs to export. A nil result with a nil
// error means the user left the picker without choosing.
func (c *CLI) exportTargets(ctx context.Context, s *session, args []string, all bool) ([]string, error) {
	if all {
		return s.registry.IDs(), nil
	}
	if len(args) == 0 {
		if !isTerminal(os.Stdin) || !isTerminal(os.Stderr) {
			return nil, fmt.Errorf("name a look to export or pass --all")
		}
		id, err := pickSlide(ctx, s.deck.Slides)
		if err != nil {
			return nil, err
		}
		if id == "" {
			printInfo("Nothing exported")
			return nil, nil
		}
		return []string{id}, nil
	}

	ids := make([]string, 0, len(args))
	for _, ref := range args {
		sl, err := findSlide(s.deck, ref)
		if err != nil {
			return nil, err
		}
		ids = append(ids, sl.ID)
	}
	return ids, nil
}

// printJob prints the outcome of one export.
func printJob(job export.Job) {
	title := job.Title
	if title == "" {
		title = job.SlideID
	}
	switch job.Outcome {
	case deliver.OutcomeSuccess:
		printSuccess("%s", title)
		printFile(job.Path)
	case deliver.OutcomeManual:
		printWarning("%s: opened for manual save", title)
		printFile(job.Path)
		printDetail("Save the image from the opened page")
	default:
		msg := "unknown error"
		if job.Err != nil {
			msg = errors.UserMessage(job.Err)
		}
		printError("%s: %s", title, msg)
	}
}
