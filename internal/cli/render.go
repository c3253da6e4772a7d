package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/touchstone/internal/config"
	terrors "github.com/matzehuels/touchstone/pkg/errors"
	"github.com/matzehuels/touchstone/pkg/graph"
	"github.com/matzehuels/touchstone/pkg/highlight"
	"github.com/matzehuels/touchstone/pkg/render"
	"github.com/matzehuels/touchstone/pkg/render/nodelink"
	"github.com/matzehuels/touchstone/pkg/view"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string    // output file; "-" writes to stdout
	format  string    // svg, dot, png or pdf
	engine  string    // overrides render.engine
	selects string    // author to click before drawing
	hover   string    // author to hover after the click
	zoom    float64   // viewport scale around the origin
	pan     []float64 // viewport translation dx,dy
	scale   float64   // PNG scale factor
	noCache bool
}

// renderCommand creates the render command, which draws one frame of the
// interactive view to a file.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{format: render.FormatSVG, zoom: 1, scale: 1}

	cmd := &cobra.Command{
		Use:   "render [graph.json]",
		Short: "Render the graph, optionally with an author highlighted",
		Long: `Render lays out the graph with Graphviz and writes it as SVG, DOT, PNG or PDF.

--select and --hover replay a click and a hover before drawing, so the output
shows exactly what the interactive view would: the active author's neighborhood
at full opacity and everything else dimmed.`,
		Example: `  touchstone render authors.json --select Borges -o borges.svg
  touchstone render --format dot -o -
  touchstone render --select Borges --hover Calvino --format png --scale 2`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := render.ValidateFormat(opts.format); err != nil {
				return err
			}
			if len(opts.pan) != 0 && len(opts.pan) != 2 {
				return terrors.New(terrors.ErrCodeInvalidInput, "--pan takes two values: dx,dy")
			}
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return c.runRender(cmd, path, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <graph>.<format>, - for stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: "+strings.Join(render.Formats, ", "))
	cmd.Flags().StringVarP(&opts.engine, "engine", "e", "", "layout engine: "+engineList())
	cmd.Flags().StringVar(&opts.selects, "select", "", "author to select (click) before drawing")
	cmd.Flags().StringVar(&opts.hover, "hover", "", "author to hover before drawing")
	cmd.Flags().Float64Var(&opts.zoom, "zoom", opts.zoom, fmt.Sprintf("zoom factor, clamped to [%g, %g]", view.MinZoom, view.MaxZoom))
	cmd.Flags().Float64SliceVar(&opts.pan, "pan", nil, "pan offset as dx,dy")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the artifact cache")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, path string, opts *renderOpts) error {
	ctx := cmd.Context()
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if path == "" {
		path = cfg.Graph.Path
	}
	engine, err := nodelink.ParseEngine(firstNonEmpty(opts.engine, cfg.Render.Engine))
	if err != nil {
		return err
	}

	g, err := c.loadGraph(cfg, path)
	if err != nil {
		return err
	}
	eff := replay(g, cfg, opts.selects, opts.hover)

	ch, err := c.newCache(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer ch.Close()
	installHooks(ctx)

	req := nodelink.Request{
		Graph:    g,
		Effects:  eff,
		Options:  renderOptions(cfg, g),
		Engine:   engine,
		Format:   opts.format,
		Viewport: viewportFromFlags(opts.zoom, opts.pan),
		Scale:    opts.scale,
	}

	out := outputPath(path, opts.output, opts.format)
	toStdout := out == "-"

	prog := newProgress(c.Logger)
	var spin *Spinner
	if !toStdout {
		spin = newSpinnerWithContext(ctx, fmt.Sprintf("Laying out %d authors with %s...", len(g.Nodes), engine))
		spin.Start()
	}
	data, cached, err := nodelink.NewRenderer(ch, cfg.Cache.TTL.Duration, c.Logger).Render(ctx, req)
	if err != nil {
		if spin != nil {
			spin.StopWithError("Render failed")
		}
		return err
	}
	if spin != nil {
		spin.Stop()
	}

	if toStdout {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	prog.debug("Rendered %s", out)
	ui := consoleFor(cmd)
	ui.success("Rendered %s", opts.format)
	ui.file(out)
	ui.renderSummary(len(g.Nodes), len(g.Links), cached)
	if eff.Active == "" {
		ui.nextStep("Explore interactively", "touchstone explore "+path)
	}
	return nil
}

// replay applies a click on selected and then a hover on hovered, returning
// the resulting effects. Empty IDs are skipped.
func replay(g graph.Graph, cfg *config.Config, selected, hovered string) highlight.Effects {
	ctrl := highlight.New(g, nil, cfg.HighlightOptions()...)
	if selected != "" {
		ctrl.Click(selected)
	}
	if hovered != "" {
		ctrl.Hover(hovered)
	}
	return ctrl.Effects()
}

// viewportFromFlags returns nil when the flags leave the view untransformed.
func viewportFromFlags(zoom float64, pan []float64) *view.Viewport {
	if (zoom == 1 || zoom <= 0) && len(pan) == 0 {
		return nil
	}
	vp := view.Identity().Zoom(zoom, 0, 0)
	if len(pan) == 2 {
		vp = vp.Pan(pan[0], pan[1])
	}
	return &vp
}

// outputPath derives the output file from the input graph path when no
// explicit output is given: authors.json -> authors.svg.
func outputPath(input, output, format string) string {
	if output != "" {
		return output
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	if base == "" || base == "." {
		base = appName
	}
	return base + "." + format
}

func engineList() string {
	names := make([]string, len(nodelink.Engines))
	for i, e := range nodelink.Engines {
		names[i] = string(e)
	}
	return strings.Join(names, ", ")
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
