package server

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/touchstone/pkg/graph"
	"github.com/matzehuels/touchstone/pkg/observability"
)

// GraphLoader reads the graph document at path.
type GraphLoader func(path string) (graph.Graph, error)

// Watch reloads the graph whenever the file at path changes, until ctx is
// cancelled. Bursts of writes are coalesced into a single reload. A document
// that fails to load leaves the current graph and its views untouched.
//
// The parent directory is watched rather than the file itself so that
// editors which save by renaming a temp file over the original are noticed.
func (s *Server) Watch(ctx context.Context, path string, load GraphLoader) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return fmt.Errorf("watch %s: %w", path, err)
	}
	s.logger.Debug("watching graph", "path", abs)
	go s.watchLoop(ctx, w, abs, load)
	return nil
}

func (s *Server) watchLoop(ctx context.Context, w *fsnotify.Watcher, path string, load GraphLoader) {
	defer w.Close()

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				fire = time.After(s.opts.ReloadDelay)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			s.logger.Warn("graph watcher error", "err", err)
		case <-fire:
			fire = nil
			s.reload(ctx, path, load)
		}
	}
}

func (s *Server) reload(ctx context.Context, path string, load GraphLoader) {
	g, err := load(path)
	if err != nil {
		s.logger.Warn("graph reload failed; keeping current graph", "path", path, "err", err)
		return
	}
	dropped := s.views.Reload(g)
	for _, id := range dropped {
		observability.View().OnViewClosed(ctx, id, false)
	}
	s.logger.Info("graph reloaded", "nodes", len(g.Nodes), "links", len(g.Links), "views_dropped", len(dropped))
}
