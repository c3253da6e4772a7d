// Package view ties a graph, its neighbor index and a highlight controller
// into an interactive view with pan/zoom and dragged (pinned) nodes.
//
// Each [View] owns its own selection state, so several views over the same
// graph stay independent. A [Registry] keeps views addressable by ID for
// hosts that outlive a single interaction, such as the HTTP server.
package view

import (
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"

	terrors "github.com/matzehuels/touchstone/pkg/errors"
	"github.com/matzehuels/touchstone/pkg/graph"
	"github.com/matzehuels/touchstone/pkg/highlight"
	"github.com/matzehuels/touchstone/pkg/neighbor"
)

// View is one interactive presentation of a graph.
// Methods are safe for concurrent use; events are applied one at a time.
type View struct {
	ID        string
	CreatedAt time.Time

	graph graph.Graph

	mu       sync.Mutex
	ctrl     *highlight.Controller
	viewport Viewport
	pins     map[string]graph.Point
	lastUsed time.Time
}

// Snapshot is a consistent copy of a view's state.
type Snapshot struct {
	ID       string                 `json:"id"`
	State    highlight.State        `json:"state"`
	Effects  highlight.Effects      `json:"effects"`
	Viewport Viewport               `json:"viewport"`
	Pins     map[string]graph.Point `json:"pins,omitempty"`
}

// New creates an idle view over g with a fresh random ID.
// idx may be shared between views; nil builds one from g.
func New(g graph.Graph, idx *neighbor.Index, opts ...highlight.Option) *View {
	now := time.Now()
	return &View{
		ID:        uuid.NewString(),
		CreatedAt: now,
		graph:     g,
		ctrl:      highlight.New(g, idx, opts...),
		viewport:  Identity(),
		pins:      make(map[string]graph.Point),
		lastUsed:  now,
	}
}

// Graph returns the graph the view presents.
func (v *View) Graph() graph.Graph { return v.graph }

// Apply dispatches a pointer event to the view's controller.
func (v *View) Apply(ev highlight.Event) highlight.Effects {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lastUsed = time.Now()
	return v.ctrl.Dispatch(ev)
}

// Drag pins node id at p. The layout engine keeps pinned nodes fixed.
func (v *View) Drag(id string, p graph.Point) error {
	if !v.ctrl.Index().Contains(id) {
		return terrors.New(terrors.ErrCodeNodeNotFound, "node %q is not in the graph", id)
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lastUsed = time.Now()
	v.pins[id] = p
	return nil
}

// Release unpins node id, returning it to the simulation.
func (v *View) Release(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lastUsed = time.Now()
	delete(v.pins, id)
}

// Pan shifts the viewport.
func (v *View) Pan(dx, dy float64) Viewport {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lastUsed = time.Now()
	v.viewport = v.viewport.Pan(dx, dy)
	return v.viewport
}

// Zoom scales the viewport around (cx, cy).
func (v *View) Zoom(factor, cx, cy float64) Viewport {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lastUsed = time.Now()
	v.viewport = v.viewport.Zoom(factor, cx, cy)
	return v.viewport
}

// ResetViewport restores the identity transform.
func (v *View) ResetViewport() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lastUsed = time.Now()
	v.viewport = Identity()
}

// Snapshot returns a copy of the view's current state.
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Snapshot{
		ID:       v.ID,
		State:    v.ctrl.State(),
		Effects:  v.ctrl.Effects(),
		Viewport: v.viewport,
		Pins:     maps.Clone(v.pins),
	}
}

// idleSince reports when the view was last touched.
func (v *View) idleSince() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastUsed
}
