package nodelink

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	terrors "github.com/matzehuels/touchstone/pkg/errors"
	"github.com/matzehuels/touchstone/pkg/graph"
	"github.com/matzehuels/touchstone/pkg/highlight"
)

// Engine names a Graphviz layout engine.
type Engine string

// Supported force-directed and radial engines.
const (
	EngineNeato Engine = "neato"
	EngineFDP   Engine = "fdp"
	EngineSFDP  Engine = "sfdp"
	EngineCirco Engine = "circo"
)

// Engines lists the supported engines.
var Engines = []Engine{EngineNeato, EngineFDP, EngineSFDP, EngineCirco}

// ParseEngine validates an engine name. Empty selects [EngineNeato].
func ParseEngine(s string) (Engine, error) {
	if s == "" {
		return EngineNeato, nil
	}
	if e := Engine(s); slices.Contains(Engines, e) {
		return e, nil
	}
	return "", terrors.New(terrors.ErrCodeInvalidEngine, "unknown layout engine %q", s)
}

// Drawing defaults, in points.
const (
	DefaultLinkDistance = 70
	DefaultNodeRadius   = 10
)

const (
	linkColor  = "#999999"
	labelColor = "#333333"

	alphaNormal = "ff"
	alphaDimmed = "26" // ~15% opacity
	alphaLink   = "99" // links sit at 60% opacity
)

// Options configures diagram generation.
type Options struct {
	// LinkDistance is the preferred link length in points.
	LinkDistance float64
	// NodeRadius is the node circle radius in points.
	NodeRadius float64
	// Palette colours nodes by group. Nil uses Category10 seeded from the graph.
	Palette *graph.Palette
	// Pins fixes dragged nodes at a position, in points.
	Pins map[string]graph.Point
	// HideLabels drops the author name beside each node.
	HideLabels bool
}

func (o Options) withDefaults(g graph.Graph) Options {
	if o.LinkDistance <= 0 {
		o.LinkDistance = DefaultLinkDistance
	}
	if o.NodeRadius <= 0 {
		o.NodeRadius = DefaultNodeRadius
	}
	if o.Palette == nil {
		o.Palette = graph.PaletteFor(g, nil)
	}
	return o
}

// ToDOT converts g to an undirected Graphviz graph styled by eff.
// A zero eff draws the graph with nothing dimmed or selected.
func ToDOT(g graph.Graph, eff highlight.Effects, opts Options) string {
	opts = opts.withDefaults(g)
	dimNodes, dimLinks := eff.DimSets()

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  outputorder=edgesfirst;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  node [shape=circle, style=filled, fixedsize=true, color=\"#ffffff\", penwidth=1.5, fontsize=10, fontname=\"sans-serif\"];\n")
	buf.WriteString("  edge [fontsize=8];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		attrs := nodeAttrs(n, opts, dimNodes[n.ID], eff.Selected == n.ID)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for i, l := range g.Links {
		attrs := linkAttrs(i, l, opts, dimLinks[i])
		fmt.Fprintf(&buf, "  %q -- %q [%s];\n", l.Source, l.Target, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n graph.Node, opts Options, dimmed, selected bool) []string {
	alpha := alphaNormal
	if dimmed {
		alpha = alphaDimmed
	}
	size := 2 * opts.NodeRadius / 72

	attrs := []string{
		fmt.Sprintf("id=%q", "node-"+n.ID),
		fmt.Sprintf("class=%q", classes("node", dimmed, selected)),
		fmt.Sprintf("width=%.3f", size),
		fmt.Sprintf("height=%.3f", size),
		`label=""`,
		fmt.Sprintf("fillcolor=%q", opts.Palette.Color(n.Group)+alpha),
	}
	if !opts.HideLabels {
		attrs = append(attrs,
			fmt.Sprintf("xlabel=%q", n.ID),
			fmt.Sprintf("fontcolor=%q", labelColor+alpha))
	}
	if n.Touchstone != "" {
		attrs = append(attrs, fmt.Sprintf("tooltip=%q", n.Touchstone))
	}
	if selected {
		attrs = append(attrs, `color="#000000"`, "penwidth=3")
	}
	if p, ok := opts.Pins[n.ID]; ok {
		attrs = append(attrs, fmt.Sprintf("pos=\"%g,%g!\"", p.X, -p.Y), "pin=true")
	} else if n.Pos != nil {
		attrs = append(attrs, fmt.Sprintf("pos=\"%g,%g\"", n.Pos.X, -n.Pos.Y))
	}
	return attrs
}

func linkAttrs(i int, l graph.Link, opts Options, dimmed bool) []string {
	alpha := alphaLink
	if dimmed {
		alpha = alphaDimmed
	}
	return []string{
		fmt.Sprintf("id=\"link-%d\"", i),
		fmt.Sprintf("class=%q", classes("link", dimmed, false)),
		fmt.Sprintf("penwidth=%.3f", l.StrokeWidth()),
		fmt.Sprintf("color=%q", linkColor+alpha),
		fmt.Sprintf("len=%.3f", opts.LinkDistance/72),
	}
}

func classes(base string, dimmed, selected bool) string {
	c := base
	if dimmed {
		c += " dimmed"
	}
	if selected {
		c += " selected"
	}
	return c
}
