package highlight

import (
	"html"
	"strings"
)

// DefaultPlaceholder is the panel text shown when no node is active.
const DefaultPlaceholder = "Hover over or click an author to see their touchstone."

// Effects describes what the renderer should show after an event.
type Effects struct {
	Active      string   `json:"active,omitempty"`   // Node whose neighborhood is highlighted
	Selected    string   `json:"selected,omitempty"` // Node carrying the selected marker
	DimmedNodes []string `json:"dimmed_nodes"`       // In graph order
	DimmedLinks []int    `json:"dimmed_links"`       // Indices into Graph.Links
	Panel       Panel    `json:"panel"`
}

// NodeDimmed reports whether id is in the dimmed set.
func (e Effects) NodeDimmed(id string) bool {
	for _, d := range e.DimmedNodes {
		if d == id {
			return true
		}
	}
	return false
}

// DimSets returns the dimmed nodes and links as lookup sets.
func (e Effects) DimSets() (nodes map[string]bool, links map[int]bool) {
	nodes = make(map[string]bool, len(e.DimmedNodes))
	for _, id := range e.DimmedNodes {
		nodes[id] = true
	}
	links = make(map[int]bool, len(e.DimmedLinks))
	for _, i := range e.DimmedLinks {
		links[i] = true
	}
	return nodes, links
}

// Panel is the content of the info panel.
type Panel struct {
	Placeholder bool     `json:"placeholder"`
	Title       string   `json:"title,omitempty"`
	Group       string   `json:"group,omitempty"`
	Body        string   `json:"body"`
	Neighbors   []string `json:"neighbors,omitempty"`
}

// String renders the panel as plain text.
func (p Panel) String() string {
	if p.Placeholder {
		return p.Body
	}
	var b strings.Builder
	b.WriteString(p.Title)
	if p.Body != "" {
		b.WriteString("\n")
		b.WriteString(p.Body)
	}
	return b.String()
}

// HTML renders the panel as an escaped markup fragment.
func (p Panel) HTML() string {
	if p.Placeholder {
		return "<p class=\"placeholder\">" + html.EscapeString(p.Body) + "</p>"
	}
	var b strings.Builder
	b.WriteString("<h3>")
	b.WriteString(html.EscapeString(p.Title))
	b.WriteString("</h3>")
	if p.Body != "" {
		b.WriteString("<p class=\"touchstone\">")
		b.WriteString(html.EscapeString(p.Body))
		b.WriteString("</p>")
	}
	return b.String()
}
