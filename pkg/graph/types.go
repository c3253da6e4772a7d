package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Graph is the node-link document the view is built from.
//
// The layout engine owns node positions; everything else is read once at
// load time and treated as immutable afterwards.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// Node is an author in the graph.
type Node struct {
	ID         string `json:"id"`
	Group      Group  `json:"group"`
	Touchstone string `json:"touchstone,omitempty"`
	Pos        *Point `json:"pos,omitempty"` // Initial position hint, in points
}

// Point is a 2D position in layout coordinates (points, y grows downward).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Link is an undirected relationship between two authors.
type Link struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Value  *float64 `json:"value,omitempty"`
}

// Weight returns the link value, defaulting to 1 when absent.
func (l Link) Weight() float64 {
	if l.Value == nil {
		return 1
	}
	return *l.Value
}

// StrokeWidth returns sqrt(weight), the drawn thickness of the link.
// Non-positive weights collapse to a hairline.
func (l Link) StrokeWidth() float64 {
	w := l.Weight()
	if w <= 0 {
		return 0.5
	}
	return math.Sqrt(w)
}

// Touches reports whether id is one of the link's endpoints.
func (l Link) Touches(id string) bool {
	return l.Source == id || l.Target == id
}

// Group is a category label. Source documents use either strings or
// integers for it, so both decode into the same textual form.
type Group string

// UnmarshalJSON accepts a JSON string, number, or null.
func (g *Group) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*g = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*g = Group(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("group must be a string or number: %w", err)
	}
	if i, err := n.Int64(); err == nil {
		*g = Group(strconv.FormatInt(i, 10))
		return nil
	}
	*g = Group(n.String())
	return nil
}

// NodeMap returns nodes keyed by ID. Later duplicates win.
func (g Graph) NodeMap() map[string]Node {
	m := make(map[string]Node, len(g.Nodes))
	for _, n := range g.Nodes {
		m[n.ID] = n
	}
	return m
}

// Groups returns the distinct groups in first-seen order.
func (g Graph) Groups() []Group {
	seen := make(map[Group]bool)
	var out []Group
	for _, n := range g.Nodes {
		if !seen[n.Group] {
			seen[n.Group] = true
			out = append(out, n.Group)
		}
	}
	return out
}
