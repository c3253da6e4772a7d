// Package neighbor answers "are these two authors adjacent?" in constant time.
//
// An [Index] is built once from a [graph.Graph] and never changes. Pairs are
// unordered: a link stored as (a, b) answers queries for (b, a) as well.
// Every known node is its own neighbor, so a highlighted node never dims
// itself.
package neighbor

import (
	"slices"

	"github.com/matzehuels/touchstone/pkg/graph"
)

// Pair is an unordered pair of node IDs. Use [NewPair] to construct one;
// it stores the IDs in sorted order so (a, b) and (b, a) compare equal.
type Pair struct {
	lo, hi string
}

// NewPair returns the canonical pair for a and b.
func NewPair(a, b string) Pair {
	if b < a {
		a, b = b, a
	}
	return Pair{lo: a, hi: b}
}

// IDs returns the pair's members in sorted order.
func (p Pair) IDs() (string, string) { return p.lo, p.hi }

// Index is an immutable adjacency lookup.
// It is safe for concurrent reads.
type Index struct {
	adjacent  map[Pair]struct{}
	neighbors map[string][]string // nodeID -> sorted neighbor IDs, self excluded
	known     map[string]struct{}
}

// New builds the index from g's nodes and links in O(N + L).
//
// Link endpoints that are not listed as nodes are still indexed as known
// identities, matching how the rendering side resolves links by id.
func New(g graph.Graph) *Index {
	idx := &Index{
		adjacent:  make(map[Pair]struct{}, len(g.Links)+len(g.Nodes)),
		neighbors: make(map[string][]string),
		known:     make(map[string]struct{}, len(g.Nodes)),
	}
	for _, n := range g.Nodes {
		idx.known[n.ID] = struct{}{}
	}
	for _, l := range g.Links {
		idx.known[l.Source] = struct{}{}
		idx.known[l.Target] = struct{}{}
		if l.Source == l.Target {
			continue
		}
		p := NewPair(l.Source, l.Target)
		if _, dup := idx.adjacent[p]; dup {
			continue
		}
		idx.adjacent[p] = struct{}{}
		idx.neighbors[l.Source] = append(idx.neighbors[l.Source], l.Target)
		idx.neighbors[l.Target] = append(idx.neighbors[l.Target], l.Source)
	}
	for id := range idx.known {
		idx.adjacent[NewPair(id, id)] = struct{}{}
	}
	for _, ns := range idx.neighbors {
		slices.Sort(ns)
	}
	return idx
}

// AreNeighbors reports whether a and b share a link, or are the same known
// node. Unknown identities are never adjacent to anything.
func (idx *Index) AreNeighbors(a, b string) bool {
	_, ok := idx.adjacent[NewPair(a, b)]
	return ok
}

// Contains reports whether id appeared in the graph.
func (idx *Index) Contains(id string) bool {
	_, ok := idx.known[id]
	return ok
}

// Neighbors returns the sorted IDs adjacent to id, excluding id itself.
// The returned slice is a copy.
func (idx *Index) Neighbors(id string) []string {
	return slices.Clone(idx.neighbors[id])
}

// Degree returns the number of distinct neighbors of id.
func (idx *Index) Degree(id string) int {
	return len(idx.neighbors[id])
}

// Len returns the number of distinct adjacent pairs, self pairs excluded.
func (idx *Index) Len() int {
	return len(idx.adjacent) - len(idx.known)
}
