package graph

import "sync"

// Category10 is the ten-colour categorical palette used for groups.
var Category10 = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// Palette assigns colours to groups in first-seen order, cycling through
// the colour list once it is exhausted. It is safe for concurrent use.
type Palette struct {
	colors []string

	mu       sync.Mutex
	assigned map[Group]string
}

// NewPalette creates an ordinal palette. An empty colour list falls back
// to [Category10].
func NewPalette(colors []string) *Palette {
	if len(colors) == 0 {
		colors = Category10
	}
	return &Palette{colors: colors, assigned: make(map[Group]string)}
}

// PaletteFor returns a palette pre-seeded with g's groups so colours are
// stable regardless of query order.
func PaletteFor(g Graph, colors []string) *Palette {
	p := NewPalette(colors)
	for _, grp := range g.Groups() {
		p.Color(grp)
	}
	return p
}

// Color returns the colour for grp, assigning the next one if unseen.
func (p *Palette) Color(grp Group) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if c, ok := p.assigned[grp]; ok {
		return c
	}
	c := p.colors[len(p.assigned)%len(p.colors)]
	p.assigned[grp] = c
	return c
}
