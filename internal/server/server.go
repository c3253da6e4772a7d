// Package server exposes touchstone views over HTTP.
//
// A browser (or any client) creates a view, forwards pointer events to it,
// and fetches the restyled drawing after each one. Views live in a
// [view.Registry] and expire when left idle.
//
// # Routes
//
//	GET    /health
//	GET    /api/graph
//	GET    /api/graph/neighbors/{nodeID}
//	GET    /api/views
//	POST   /api/views
//	GET    /api/views/{viewID}
//	DELETE /api/views/{viewID}
//	POST   /api/views/{viewID}/events
//	GET    /api/views/{viewID}/stream   (websocket; one snapshot per event)
//	GET    /api/views/{viewID}/render?format=svg
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/matzehuels/touchstone/pkg/observability"
	"github.com/matzehuels/touchstone/pkg/render/nodelink"
	"github.com/matzehuels/touchstone/pkg/view"
)

// Options configures a [Server].
type Options struct {
	// CORSOrigins lists allowed browser origins. Wildcards follow go-chi/cors.
	CORSOrigins []string
	// Engine is the default layout engine for render requests.
	Engine nodelink.Engine
	// Render holds drawing options shared by every view.
	Render nodelink.Options
	// CleanupInterval is how often idle views are swept. Zero uses one minute.
	CleanupInterval time.Duration
	// ReloadDelay coalesces file events before [Server.Watch] reloads.
	// Zero uses 250ms.
	ReloadDelay time.Duration
}

// Server serves the view API for one graph.
type Server struct {
	views    *view.Registry
	renderer *nodelink.Renderer
	opts     Options
	logger   *log.Logger
}

// New creates a server over reg. A nil logger uses log.Default().
func New(reg *view.Registry, renderer *nodelink.Renderer, opts Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if renderer == nil {
		renderer = nodelink.NewRenderer(nil, 0, logger)
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = time.Minute
	}
	if opts.ReloadDelay <= 0 {
		opts.ReloadDelay = 250 * time.Millisecond
	}
	return &Server{views: reg, renderer: renderer, opts: opts, logger: logger}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(s.logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "X-Cache"},
		MaxAge:         300,
	}))

	r.Get("/health", s.health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/graph", func(r chi.Router) {
			r.Get("/", s.getGraph)
			r.Get("/neighbors/{nodeID}", s.getNeighbors)
		})
		r.Route("/views", func(r chi.Router) {
			r.Get("/", s.listViews)
			r.Post("/", s.createView)
			r.Get("/{viewID}", s.getView)
			r.Delete("/{viewID}", s.deleteView)
			r.Post("/{viewID}/events", s.postEvent)
			r.Get("/{viewID}/render", s.renderView)
			r.Get("/{viewID}/stream", s.streamView)
		})
	})

	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
// Idle views are swept in the background while the server runs.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.sweep(ctx)

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr, "nodes", len(s.views.Graph().Nodes))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) sweep(ctx context.Context) {
	ticker := time.NewTicker(s.opts.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			expired := s.views.Cleanup(now)
			for _, id := range expired {
				observability.View().OnViewClosed(ctx, id, true)
			}
			if len(expired) > 0 {
				s.logger.Debug("expired idle views", "count", len(expired), "remaining", s.views.Len())
			}
		}
	}
}
