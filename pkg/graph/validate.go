package graph

import (
	"errors"

	terrors "github.com/matzehuels/touchstone/pkg/errors"
)

// Validate reports referential problems in g: empty or duplicate node IDs
// and links whose endpoints are not nodes. All problems are joined into one
// error; nil means the graph is consistent.
//
// The highlight controller never calls this. It assumes referential
// integrity and degrades to "not adjacent" for unknown IDs.
func Validate(g Graph) error {
	var errs []error
	seen := make(map[string]bool, len(g.Nodes))
	for i, n := range g.Nodes {
		switch {
		case n.ID == "":
			errs = append(errs, terrors.New(terrors.ErrCodeInvalidGraph, "node %d: empty id", i))
		case seen[n.ID]:
			errs = append(errs, terrors.New(terrors.ErrCodeInvalidGraph, "node %d: duplicate id %q", i, n.ID))
		}
		seen[n.ID] = true
	}
	for i, l := range g.Links {
		if !seen[l.Source] {
			errs = append(errs, terrors.New(terrors.ErrCodeInvalidGraph, "link %d: unknown source %q", i, l.Source))
		}
		if !seen[l.Target] {
			errs = append(errs, terrors.New(terrors.ErrCodeInvalidGraph, "link %d: unknown target %q", i, l.Target))
		}
	}
	return errors.Join(errs...)
}
