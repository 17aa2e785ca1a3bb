package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"surveymap/internal/scene"
	"surveymap/internal/session"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output string   // output SVG path
	min    float64  // low depth bound, when set
	max    float64  // high depth bound, when set
	types  []string // shown marker types; all when empty
	ticks  int      // approximate axis tick count
}

func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{ticks: 10}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render filtered markers to an SVG map",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.output == "" {
				base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
				opts.output = base + ".svg"
			}
			return c.runRender(cmd, args[0], opts)
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with .svg)")
	cmd.Flags().Float64Var(&opts.min, "min", 0, "low depth bound")
	cmd.Flags().Float64Var(&opts.max, "max", 0, "high depth bound")
	cmd.Flags().StringSliceVarP(&opts.types, "type", "t", nil, "marker types to show (repeatable)")
	cmd.Flags().IntVar(&opts.ticks, "ticks", opts.ticks, "approximate number of axis ticks")
	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, path string, opts renderOpts) error {
	markers, err := c.loadMarkers(path)
	if err != nil {
		return err
	}
	p := newProgress(c.Logger)
	sess, err := session.New(markers, c.cfg, c.Logger)
	if err != nil {
		return err
	}

	lo, hi := sess.Depth.Value()
	if cmd.Flags().Changed("min") {
		lo = opts.min
	}
	if cmd.Flags().Changed("max") {
		hi = opts.max
	}
	if err := sess.SetDepth(lo, hi); err != nil {
		return fmt.Errorf("depth range: %w", err)
	}
	if len(opts.types) > 0 {
		sess.ShowOnly(opts.types...)
	}

	svg := scene.RenderSVG(sess.Scene, sess.Mapper,
		scene.WithTicks(opts.ticks),
		scene.WithoutHidden(),
		scene.WithCaption("depth "+sess.RangeLabel()),
	)
	if err := os.WriteFile(opts.output, svg, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	p.done(fmt.Sprintf("Rendered %d markers to %s", len(sess.Visible()), opts.output))
	return nil
}
