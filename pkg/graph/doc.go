// Package graph provides the node-link document behind a touchstone view.
//
// A document lists authors ([Node]) and the relationships between them
// ([Link]). It is loaded once at startup and never mutated afterwards; the
// neighbor index and the highlight controller are both derived from it.
//
// # Format
//
//	{
//	  "nodes": [
//	    {"id": "Borges", "group": 1, "touchstone": "I have always imagined..."},
//	    {"id": "Calvino", "group": "italian"}
//	  ],
//	  "links": [{"source": "Borges", "target": "Calvino", "value": 4}]
//	}
//
// Groups may be strings or integers. A link without a value has weight 1.
//
// # Loading
//
//	g, err := graph.ReadFile("authors.json")
//	if err := graph.Validate(g); err != nil {
//	    // unknown endpoints, duplicate ids, ...
//	}
//
// # Colours
//
// [Palette] is an ordinal colour scale keyed by group, defaulting to the
// ten-colour [Category10] set.
package graph
