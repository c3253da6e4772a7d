// Package render converts rendered SVG into other output formats.
//
// Graph drawing itself lives in the [nodelink] subpackage, which hands
// layout to Graphviz and styles the result from highlight effects. This
// package only post-processes its SVG:
//
//	svg, err := nodelink.RenderSVG(ctx, dot, nodelink.EngineNeato)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [ToPDF] and [ToPNG] shell out to [RasterTool] (rsvg-convert from
// librsvg); cancelling ctx kills the child process.
//
// [nodelink]: github.com/matzehuels/touchstone/pkg/render/nodelink
package render
