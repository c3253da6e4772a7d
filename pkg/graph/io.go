package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	terrors "github.com/matzehuels/touchstone/pkg/errors"
)

// ReadJSON decodes a graph document from r.
//
// The input must be a JSON object with "nodes" and "links" arrays:
//
//	{
//	  "nodes": [{"id": "Borges", "group": 1, "touchstone": "..."}],
//	  "links": [{"source": "Borges", "target": "Calvino", "value": 3}]
//	}
//
// No referential checks are made here; use [Validate] for that. ReadJSON
// does not close r.
func ReadJSON(r io.Reader) (Graph, error) {
	var g Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return Graph{}, terrors.Wrap(terrors.ErrCodeInvalidGraph, err, "decode graph")
	}
	return g, nil
}

// ReadFile reads a graph document from path.
func ReadFile(path string) (Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Graph{}, terrors.Wrap(terrors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return Graph{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// WriteJSON encodes g to w with two-space indentation.
func WriteJSON(w io.Writer, g Graph) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(g)
}
