package highlight

import (
	"github.com/matzehuels/touchstone/pkg/graph"
	"github.com/matzehuels/touchstone/pkg/neighbor"
)

// State is the controller's mutable slot. The zero value is Idle.
type State struct {
	Selected string `json:"selected,omitempty"` // Empty when idle
	Hovered  string `json:"hovered,omitempty"`  // Transient overlay, never selects
}

// Idle reports whether nothing is selected.
func (s State) Idle() bool { return s.Selected == "" }

// Option configures a Controller.
type Option func(*Controller)

// WithPolicy sets the hover-revert policy.
func WithPolicy(p RevertPolicy) Option {
	return func(c *Controller) { c.policy = p }
}

// WithPlaceholder overrides the idle panel text.
func WithPlaceholder(text string) Option {
	return func(c *Controller) { c.placeholder = text }
}

// Controller reduces pointer events into selection state and render effects.
type Controller struct {
	graph       graph.Graph
	nodes       map[string]graph.Node
	index       *neighbor.Index
	policy      RevertPolicy
	placeholder string

	state   State
	effects Effects
}

// New creates an idle controller over g. If idx is nil it is built from g.
func New(g graph.Graph, idx *neighbor.Index, opts ...Option) *Controller {
	if idx == nil {
		idx = neighbor.New(g)
	}
	c := &Controller{
		graph:       g,
		nodes:       g.NodeMap(),
		index:       idx,
		policy:      RevertToSelection,
		placeholder: DefaultPlaceholder,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.effects = c.EffectsFor("", "")
	return c
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Effects returns the effects of the last dispatched event.
func (c *Controller) Effects() Effects { return c.effects }

// Policy returns the hover-revert policy in use.
func (c *Controller) Policy() RevertPolicy { return c.policy }

// Index returns the neighbor index the controller dims by.
func (c *Controller) Index() *neighbor.Index { return c.index }

// Dispatch applies ev to the current state and returns the new effects.
func (c *Controller) Dispatch(ev Event) Effects {
	c.state, c.effects = c.Reduce(c.state, ev)
	return c.effects
}

// Hover dispatches [Hover].
func (c *Controller) Hover(id string) Effects { return c.Dispatch(Hover(id)) }

// Unhover dispatches [Unhover].
func (c *Controller) Unhover() Effects { return c.Dispatch(Unhover()) }

// Click dispatches [Click].
func (c *Controller) Click(id string) Effects { return c.Dispatch(Click(id)) }

// ClickBackground dispatches [ClickBackground].
func (c *Controller) ClickBackground() Effects { return c.Dispatch(ClickBackground()) }

// Reset returns the controller to Idle with nothing hovered.
func (c *Controller) Reset() Effects {
	c.state = State{}
	c.effects = c.EffectsFor("", "")
	return c.effects
}

// Reduce computes the state and effects that follow s on ev. It reads only
// the immutable graph and index, never the controller's own state.
//
// Hovering or clicking an empty ID behaves like Unhover and ClickBackground
// respectively.
func (c *Controller) Reduce(s State, ev Event) (State, Effects) {
	var active string
	switch ev.Kind {
	case EventHover:
		if ev.NodeID == "" {
			return c.Reduce(s, Unhover())
		}
		s.Hovered = ev.NodeID
		active = ev.NodeID

	case EventUnhover:
		s.Hovered = ""
		if c.policy == RevertToSelection {
			active = s.Selected
		}

	case EventClick:
		if ev.NodeID == "" {
			return c.Reduce(s, ClickBackground())
		}
		if s.Selected == ev.NodeID {
			s.Selected = ""
		} else {
			s.Selected = ev.NodeID
			active = ev.NodeID
		}

	case EventClickBackground:
		s = State{}

	default:
		// Unknown events leave the state alone and re-derive its effects.
		active = s.Hovered
		if active == "" {
			active = s.Selected
		}
	}
	return s, c.EffectsFor(active, s.Selected)
}

// EffectsFor derives the effects of highlighting active while selected
// carries the selected marker. Either may be empty.
func (c *Controller) EffectsFor(active, selected string) Effects {
	eff := Effects{
		Active:      active,
		Selected:    selected,
		DimmedNodes: []string{},
		DimmedLinks: []int{},
		Panel:       c.panel(active),
	}
	if active == "" {
		return eff
	}
	for _, n := range c.graph.Nodes {
		if !c.index.AreNeighbors(active, n.ID) {
			eff.DimmedNodes = append(eff.DimmedNodes, n.ID)
		}
	}
	for i, l := range c.graph.Links {
		if !l.Touches(active) {
			eff.DimmedLinks = append(eff.DimmedLinks, i)
		}
	}
	return eff
}

func (c *Controller) panel(active string) Panel {
	if active == "" {
		return Panel{Placeholder: true, Body: c.placeholder}
	}
	n := c.nodes[active]
	return Panel{
		Title:     active,
		Group:     string(n.Group),
		Body:      n.Touchstone,
		Neighbors: c.index.Neighbors(active),
	}
}
