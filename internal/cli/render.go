package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/quiverview/pkg/codec"
	"github.com/matzehuels/quiverview/pkg/config"
	"github.com/matzehuels/quiverview/pkg/layout"
	"github.com/matzehuels/quiverview/pkg/quiver"
	"github.com/matzehuels/quiverview/pkg/render"
	"github.com/matzehuels/quiverview/pkg/render/svg"
	"github.com/matzehuels/quiverview/pkg/route"
)

const (
	defaultWidth  = 600 // default SVG viewport width
	defaultHeight = 600 // default SVG viewport height
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string  // output file path; derived from the input when empty
	width      float64 // viewport width in pixels
	height     float64 // viewport height in pixels
	noLabels   bool    // omit node and arrow labels
	background string  // background colour, transparent when empty
}

// renderCommand creates the render command, which lays a quiver out and
// writes it as SVG.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{width: defaultWidth, height: defaultHeight}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a quiver to SVG",
		Long: `Render lays out a quiver file and writes it as an SVG document.

Use "-" to read the quiver text from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.width <= 0 || opts.height <= 0 {
				return fmt.Errorf("invalid size %vx%v: width and height must be positive", opts.width, opts.height)
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], cfg, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with .svg)")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "frame width")
	cmd.Flags().Float64Var(&opts.height, "height", opts.height, "frame height")
	cmd.Flags().BoolVar(&opts.noLabels, "no-labels", false, "omit node and arrow labels")
	cmd.Flags().StringVar(&opts.background, "background", "", "background colour (default transparent)")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, cfg config.Config, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	q, err := readQuiver(input, cfg.View)
	if err != nil {
		return err
	}
	logger.Debug("read quiver", "nodes", q.NodeCount(), "edges", q.EdgeCount())

	if err := c.layoutQuiver(ctx, q, cfg); err != nil {
		return err
	}

	scene := route.New(cfg.View).Route(q)
	for _, w := range scene.Warnings {
		printWarning("%v", w)
	}

	var svgOpts []svg.Option
	if opts.noLabels {
		svgOpts = append(svgOpts, svg.WithoutLabels())
	}
	if opts.background != "" {
		svgOpts = append(svgOpts, svg.WithBackground(opts.background))
	}
	data := svg.Render(scene, render.NewViewport(cfg.View, opts.width, opts.height), svgOpts...)

	out := opts.output
	if out == "" {
		out = outputPath(input)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	printSuccess("Rendered quiver")
	printStats(q.NodeCount(), q.EdgeCount(), countLoops(q))
	printDetail("%gx%g, %s layout", opts.width, opts.height, cfg.Layout.Engine)
	printFile(out)
	return nil
}

// layoutQuiver runs the configured layout provider on q, with a spinner for
// the Graphviz engines.
func (c *CLI) layoutQuiver(ctx context.Context, q *quiver.Quiver, cfg config.Config) error {
	provider, err := newProvider(cfg)
	if err != nil {
		return err
	}
	prog := newProgress(loggerFromContext(ctx))

	if provider.Name() != config.EngineSpring {
		spin := newSpinner(ctx, fmt.Sprintf("Laying out with %s...", provider.Name()))
		spin.Start()
		err = layout.Apply(ctx, provider, q)
		if err != nil {
			spin.StopWithError("Layout failed")
			return err
		}
		spin.Stop()
	} else if err := layout.Apply(ctx, provider, q); err != nil {
		return err
	}

	prog.done(fmt.Sprintf("Laid out %s with %s", plural(q.NodeCount(), "node"), provider.Name()))
	return nil
}

// readQuiver reads a quiver file, or stdin when path is "-".
func readQuiver(path string, cfg config.View) (*quiver.Quiver, error) {
	opt := quiver.WithLoopAngle(cfg.LoopAngle)
	if path == "-" {
		return codec.Read(os.Stdin, opt)
	}
	return codec.ReadFile(path, opt)
}

// outputPath derives the SVG path from the input path.
func outputPath(input string) string {
	if input == "-" {
		return "quiver.svg"
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + ".svg"
}

func countLoops(q *quiver.Quiver) int {
	var n int
	for _, e := range q.Edges() {
		if e.IsLoop() {
			n++
		}
	}
	return n
}
