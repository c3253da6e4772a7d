// Package pkg provides the core libraries for Touchstone, an interactive
// explorer for author networks.
//
// # Overview
//
// A graph document lists authors (each with a group and an optional
// touchstone passage) and the links between them. Hovering or clicking an
// author highlights its neighborhood and dims everything else; the info panel
// shows the active author's touchstone. The pkg directory is organized as:
//
//  1. [graph] - Document types, JSON IO, validation and group palette
//  2. [neighbor] - Precomputed undirected adjacency for constant-time lookups
//  3. [highlight] - The pure hover/click state machine and its effects
//  4. [view] - Per-client sessions: highlight state, viewport and drag pins
//  5. [render] - Format handling plus the Graphviz node-link renderer
//  6. [cache] - Content-addressed artifact cache (file, Redis, none)
//
// # Architecture
//
// Every host drives the same controller:
//
//	graph.json
//	     ↓
//	[graph] ReadFile + Validate
//	     ↓
//	[neighbor] New (built once, shared read-only)
//	     ↓
//	[highlight] Controller / [view] Registry
//	     ↓
//	terminal explorer, HTTP server, or [render/nodelink] SVG/PNG/PDF/DOT
//
// # Quick Start
//
//	g, _ := graph.ReadFile("authors.json")
//	ctrl := highlight.New(g, nil)
//
//	ctrl.Click("Borges")
//	eff := ctrl.Hover("Calvino")
//	fmt.Println(eff.Active, eff.DimmedNodes, eff.Panel)
//
//	eff = ctrl.Unhover() // back to Borges under the default policy
//
// Render the current highlight:
//
//	r := nodelink.NewRenderer(cache.NewNullCache(), 0, nil)
//	svg, _ := r.Render(ctx, nodelink.Request{Graph: g, Effects: eff, Format: "svg"})
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/touchstone/pkg/graph
// [neighbor]: https://pkg.go.dev/github.com/matzehuels/touchstone/pkg/neighbor
// [highlight]: https://pkg.go.dev/github.com/matzehuels/touchstone/pkg/highlight
// [view]: https://pkg.go.dev/github.com/matzehuels/touchstone/pkg/view
// [render]: https://pkg.go.dev/github.com/matzehuels/touchstone/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/touchstone/pkg/render/nodelink
// [cache]: https://pkg.go.dev/github.com/matzehuels/touchstone/pkg/cache
package pkg
