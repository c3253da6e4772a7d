package neighbor

import (
	"slices"
	"testing"

	"github.com/matzehuels/touchstone/pkg/graph"
)

func abc() graph.Graph {
	return graph.Graph{
		Nodes: []graph.Node{{ID: "A"}, {ID: "B"}, {ID: "C"}},
		Links: []graph.Link{{Source: "A", Target: "B"}},
	}
}

func TestAreNeighbors(t *testing.T) {
	idx := New(abc())

	tests := []struct {
		a, b string
		want bool
	}{
		{"A", "B", true},
		{"B", "A", true},
		{"A", "C", false},
		{"C", "B", false},
		{"A", "A", true},
		{"C", "C", true},
		{"A", "Z", false},
		{"Z", "Z", false},
	}
	for _, tt := range tests {
		if got := idx.AreNeighbors(tt.a, tt.b); got != tt.want {
			t.Errorf("AreNeighbors(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSymmetryAndReflexivity(t *testing.T) {
	g := graph.Graph{
		Nodes: []graph.Node{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}, {ID: "e"}},
		Links: []graph.Link{
			{Source: "a", Target: "b"},
			{Source: "c", Target: "b"},
			{Source: "d", Target: "a"},
			{Source: "b", Target: "a"}, // reverse duplicate
			{Source: "e", Target: "e"}, // self loop
		},
	}
	idx := New(g)

	for _, x := range g.Nodes {
		if !idx.AreNeighbors(x.ID, x.ID) {
			t.Errorf("AreNeighbors(%q, %q) = false, want true", x.ID, x.ID)
		}
		for _, y := range g.Nodes {
			if idx.AreNeighbors(x.ID, y.ID) != idx.AreNeighbors(y.ID, x.ID) {
				t.Errorf("asymmetric pair (%q, %q)", x.ID, y.ID)
			}
		}
	}

	if got := idx.Neighbors("a"); !slices.Equal(got, []string{"b", "d"}) {
		t.Errorf("Neighbors(a) = %v, want [b d]", got)
	}
	if got := idx.Neighbors("e"); len(got) != 0 {
		t.Errorf("self loop should not be listed as neighbor, got %v", got)
	}
	if got := idx.Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}
	if got := idx.Degree("b"); got != 2 {
		t.Errorf("Degree(b) = %d, want 2", got)
	}
}

func TestNeighborsReturnsCopy(t *testing.T) {
	idx := New(abc())
	ns := idx.Neighbors("A")
	ns[0] = "mutated"
	if idx.Neighbors("A")[0] != "B" {
		t.Error("Neighbors should not expose internal storage")
	}
	if idx.Neighbors("missing") != nil {
		t.Error("unknown node should have no neighbors")
	}
}

func TestContains(t *testing.T) {
	g := abc()
	g.Links = append(g.Links, graph.Link{Source: "C", Target: "ghost"})
	idx := New(g)

	if !idx.Contains("ghost") {
		t.Error("link endpoint should be a known identity")
	}
	if !idx.AreNeighbors("ghost", "C") {
		t.Error("link to undeclared endpoint should still be indexed")
	}
	if idx.Contains("nobody") {
		t.Error("Contains(nobody) = true")
	}
}

func TestNewPair(t *testing.T) {
	if NewPair("x", "y") != NewPair("y", "x") {
		t.Error("pairs should be unordered")
	}
	lo, hi := NewPair("y", "x").IDs()
	if lo != "x" || hi != "y" {
		t.Errorf("IDs() = %s, %s", lo, hi)
	}
}

func TestEmptyGraph(t *testing.T) {
	idx := New(graph.Graph{})
	if idx.AreNeighbors("", "") {
		t.Error("empty index should know nothing")
	}
	if idx.Len() != 0 {
		t.Errorf("Len() = %d, want 0", idx.Len())
	}
}
