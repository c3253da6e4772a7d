package nodelink

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/touchstone/pkg/cache"
	"github.com/matzehuels/touchstone/pkg/graph"
	"github.com/matzehuels/touchstone/pkg/highlight"
	"github.com/matzehuels/touchstone/pkg/observability"
	"github.com/matzehuels/touchstone/pkg/render"
	"github.com/matzehuels/touchstone/pkg/view"
)

// Request describes one artifact to render.
type Request struct {
	Graph    graph.Graph
	Effects  highlight.Effects
	Options  Options
	Engine   Engine
	Format   string         // One of render.Formats; empty means SVG
	Viewport *view.Viewport // Nil leaves the drawing untransformed
	Scale    float64        // PNG scale factor; zero means 1
}

// Renderer renders requests, reusing cached artifacts when the inputs match.
type Renderer struct {
	cache  cache.Cache
	ttl    time.Duration
	logger *log.Logger
}

// NewRenderer creates a renderer. Nil cache disables caching; nil logger
// uses log.Default().
func NewRenderer(c cache.Cache, ttl time.Duration, logger *log.Logger) *Renderer {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Renderer{cache: c, ttl: ttl, logger: logger}
}

// Render produces the requested artifact and reports whether it came from
// the cache. DOT output bypasses Graphviz entirely.
func (r *Renderer) Render(ctx context.Context, req Request) ([]byte, bool, error) {
	format := req.Format
	if format == "" {
		format = render.FormatSVG
	}
	if err := render.ValidateFormat(format); err != nil {
		return nil, false, err
	}
	engine, err := ParseEngine(string(req.Engine))
	if err != nil {
		return nil, false, err
	}

	dot := ToDOT(req.Graph, req.Effects, req.Options)
	if format == render.FormatDOT {
		return []byte(dot), false, nil
	}

	keyOpts := cache.ArtifactKeyOpts{Engine: string(engine), Format: format, Scale: req.Scale}
	if req.Viewport != nil {
		keyOpts.Viewport = req.Viewport.Transform()
	}
	key := cache.ArtifactKey(dot, keyOpts)

	if data, hit, err := r.cache.Get(ctx, key); err != nil {
		r.logger.Warn("cache read failed", "err", err)
	} else if hit {
		r.logger.Debug("artifact cache hit", "format", format, "engine", engine)
		observability.Cache().OnCacheHit(ctx, "artifact")
		return data, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	hooks := observability.Render()
	hooks.OnRenderStart(ctx, string(engine), format, len(req.Graph.Nodes))
	start := time.Now()
	out, err := r.draw(ctx, dot, engine, format, req)
	hooks.OnRenderComplete(ctx, string(engine), format, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}
	r.logger.Debug("rendered artifact", "format", format, "engine", engine,
		"nodes", len(req.Graph.Nodes), "elapsed", time.Since(start).Round(time.Millisecond))

	if err := r.cache.Set(ctx, key, out, r.ttl); err != nil {
		r.logger.Warn("cache write failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "artifact", len(out))
	}
	return out, false, nil
}

func (r *Renderer) draw(ctx context.Context, dot string, engine Engine, format string, req Request) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot, engine)
	if err != nil {
		return nil, err
	}
	if req.Viewport != nil {
		svg = ApplyViewport(svg, *req.Viewport)
	}

	switch format {
	case render.FormatPDF:
		return render.ToPDF(ctx, svg)
	case render.FormatPNG:
		return render.ToPNG(ctx, svg, req.Scale)
	}
	return svg, nil
}
