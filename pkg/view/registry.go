package view

import (
	"slices"
	"sync"
	"time"

	terrors "github.com/matzehuels/touchstone/pkg/errors"
	"github.com/matzehuels/touchstone/pkg/graph"
	"github.com/matzehuels/touchstone/pkg/highlight"
	"github.com/matzehuels/touchstone/pkg/neighbor"
)

// DefaultIdleTTL is how long an untouched view survives [Registry.Cleanup].
const DefaultIdleTTL = 30 * time.Minute

// Registry holds the views of one graph. All views share the graph's
// neighbor index.
type Registry struct {
	opts []highlight.Option
	ttl  time.Duration

	mu    sync.RWMutex
	graph graph.Graph
	index *neighbor.Index
	views map[string]*View
}

// NewRegistry creates an empty registry. A non-positive ttl disables expiry.
func NewRegistry(g graph.Graph, ttl time.Duration, opts ...highlight.Option) *Registry {
	return &Registry{
		graph: g,
		index: neighbor.New(g),
		opts:  opts,
		ttl:   ttl,
		views: make(map[string]*View),
	}
}

// Graph returns the registry's graph.
func (r *Registry) Graph() graph.Graph {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.graph
}

// Index returns the shared neighbor index.
func (r *Registry) Index() *neighbor.Index {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.index
}

// Create adds a new idle view.
func (r *Registry) Create() *View {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := New(r.graph, r.index, r.opts...)
	r.views[v.ID] = v
	return v
}

// Reload replaces the graph and rebuilds the index. Existing views were built
// over the old graph, so they are dropped; their IDs are returned.
func (r *Registry) Reload(g graph.Graph) []string {
	idx := neighbor.New(g)
	r.mu.Lock()
	defer r.mu.Unlock()
	dropped := make([]string, 0, len(r.views))
	for id := range r.views {
		dropped = append(dropped, id)
	}
	slices.Sort(dropped)
	r.graph = g
	r.index = idx
	r.views = make(map[string]*View)
	return dropped
}

// Get returns the view with the given ID.
func (r *Registry) Get(id string) (*View, error) {
	r.mu.RLock()
	v, ok := r.views[id]
	r.mu.RUnlock()
	if !ok {
		return nil, terrors.New(terrors.ErrCodeViewNotFound, "view %q not found", id)
	}
	return v, nil
}

// Delete removes a view. Deleting an unknown ID is not an error.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	delete(r.views, id)
	r.mu.Unlock()
}

// IDs returns the registered view IDs, sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	ids := make([]string, 0, len(r.views))
	for id := range r.views {
		ids = append(ids, id)
	}
	r.mu.RUnlock()
	slices.Sort(ids)
	return ids
}

// Len returns the number of registered views.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.views)
}

// Cleanup removes views idle for longer than the TTL as of now and returns
// their IDs, sorted.
func (r *Registry) Cleanup(now time.Time) []string {
	if r.ttl <= 0 {
		return nil
	}
	r.mu.Lock()
	var removed []string
	for id, v := range r.views {
		if now.Sub(v.idleSince()) > r.ttl {
			delete(r.views, id)
			removed = append(removed, id)
		}
	}
	r.mu.Unlock()
	slices.Sort(removed)
	return removed
}
