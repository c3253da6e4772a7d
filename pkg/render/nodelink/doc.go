// Package nodelink draws a touchstone graph as a force-directed node-link
// diagram.
//
// # Overview
//
// Layout physics is delegated to Graphviz's force-directed engines
// (neato by default; fdp, sfdp and circo are also available). This package
// only translates the graph and the current highlight [highlight.Effects]
// into DOT attributes:
//
//   - nodes are circles filled by group colour, labelled beside the node,
//     with the touchstone quote as tooltip
//   - links are drawn with stroke width sqrt(value) and a preferred length
//   - dimmed nodes and links are faded, the selected node is outlined
//   - dragged nodes are pinned at their position
//
// Every element carries SVG classes ("node", "link", "dimmed", "selected")
// so a browser front-end can restyle the output.
//
// # Usage
//
//	dot := nodelink.ToDOT(g, effects, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot, nodelink.EngineNeato)
//	svg = nodelink.ApplyViewport(svg, viewport)
//
// [Renderer] wraps these steps with an artifact cache.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process layout and
// SVG rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
