package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/touchstone/pkg/graph"
	"github.com/matzehuels/touchstone/pkg/highlight"
)

// List styles
var (
	listActiveStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1).
			Width(44)
)

// ExploreModel is the bubbletea model for the explore command. Moving the
// cursor hovers an author, enter clicks it, and esc clicks the background.
type ExploreModel struct {
	Graph   graph.Graph
	Ctrl    *highlight.Controller
	Cursor  int
	Height  int
	Offset  int
	Pointed bool // the cursor currently hovers its row

	palette *graph.Palette
	degrees map[string]int
	rows    map[string]int // author ID to row
}

// NewExploreModel creates an explore model over g.
func NewExploreModel(g graph.Graph, opts ...highlight.Option) ExploreModel {
	ctrl := highlight.New(g, nil, opts...)
	m := ExploreModel{
		Graph:   g,
		Ctrl:    ctrl,
		Height:  15,
		palette: graph.PaletteFor(g, nil),
		degrees: make(map[string]int, len(g.Nodes)),
		rows:    make(map[string]int, len(g.Nodes)),
	}
	for i, n := range g.Nodes {
		m.degrees[n.ID] = ctrl.Index().Degree(n.ID)
		m.rows[n.ID] = i
	}
	return m
}

// WithPalette returns m with group swatches drawn from p.
func (m ExploreModel) WithPalette(p *graph.Palette) ExploreModel {
	if p != nil {
		m.palette = p
	}
	return m
}

func (m ExploreModel) Init() tea.Cmd { return nil }

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
		m.scrollTo(m.Cursor)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			m.move(m.Cursor - 1)
		case "down", "j":
			m.move(m.Cursor + 1)
		case "pgup":
			m.move(m.Cursor - m.Height)
		case "pgdown":
			m.move(m.Cursor + m.Height)
		case "home", "g":
			m.move(0)
		case "end", "G":
			m.move(len(m.Graph.Nodes) - 1)
		case "n":
			if row, ok := m.nextLinked(); ok {
				m.move(row)
			}
		case "enter", " ":
			if id := m.current(); id != "" {
				m.Ctrl.Click(id)
			}
		case "u":
			if m.Pointed {
				m.Ctrl.Unhover()
				m.Pointed = false
			}
		case "esc":
			m.Ctrl.ClickBackground()
			m.Pointed = false
		case "r":
			m.Ctrl.Reset()
			m.Pointed = false
		}
	}
	return m, nil
}

// move puts the cursor on row (clamped to the list) and hovers that author.
func (m *ExploreModel) move(row int) {
	if len(m.Graph.Nodes) == 0 {
		return
	}
	m.Cursor = min(max(row, 0), len(m.Graph.Nodes)-1)
	m.scrollTo(m.Cursor)
	m.Ctrl.Hover(m.current())
	m.Pointed = true
}

// scrollTo adjusts Offset so row is visible.
func (m *ExploreModel) scrollTo(row int) {
	switch {
	case row < m.Offset:
		m.Offset = row
	case row >= m.Offset+m.Height:
		m.Offset = row - m.Height + 1
	}
}

// nextLinked returns the row of the first author linked to the highlighted
// one that sits below the cursor, wrapping around to the top.
func (m ExploreModel) nextLinked() (int, bool) {
	linked := m.Ctrl.Effects().Panel.Neighbors
	if len(linked) == 0 {
		return 0, false
	}
	best, wrap := -1, -1
	for _, id := range linked {
		row, ok := m.rows[id]
		if !ok {
			continue
		}
		if row > m.Cursor && (best < 0 || row < best) {
			best = row
		}
		if wrap < 0 || row < wrap {
			wrap = row
		}
	}
	if best >= 0 {
		return best, true
	}
	return wrap, wrap >= 0
}

func (m ExploreModel) current() string {
	if m.Cursor < 0 || m.Cursor >= len(m.Graph.Nodes) {
		return ""
	}
	return m.Graph.Nodes[m.Cursor].ID
}

func (m ExploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Touchstone"))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  policy: %s", m.Ctrl.Policy())))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ hover  n next linked  ⏎ click  u unhover  esc clear  q quit"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.listView(), "  ", m.panelView()))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Graph.Nodes))))

	return b.String()
}

func (m ExploreModel) listView() string {
	eff := m.Ctrl.Effects()
	dimmed, _ := eff.DimSets()

	end := min(m.Offset+m.Height, len(m.Graph.Nodes))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		n := m.Graph.Nodes[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		mark := " "
		if n.ID == eff.Selected {
			mark = "★"
		}
		rows = append(rows, []string{cursor, swatch(m.palette.Color(n.Group)) + " " + n.ID, mark, fmt.Sprint(m.degrees[n.ID])})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Author", "", "Links").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Graph.Nodes) {
				return lipgloss.NewStyle()
			}
			id := m.Graph.Nodes[idx].ID
			switch {
			case dimmed[id]:
				return listDimStyle
			case id == eff.Active:
				return listActiveStyle
			case id == eff.Selected:
				return listSelectedStyle
			default:
				return listNormalStyle
			}
		})

	return t.Render()
}

func (m ExploreModel) panelView() string {
	p := m.Ctrl.Effects().Panel
	if p.Placeholder {
		return panelStyle.Render(StyleDim.Render(p.Body))
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render(p.Title))
	if p.Group != "" {
		b.WriteString(StyleDim.Render("  group " + p.Group))
	}
	b.WriteString("\n\n")
	if p.Body != "" {
		b.WriteString(StyleValue.Render(p.Body))
	} else {
		b.WriteString(StyleDim.Render("(no touchstone)"))
	}
	if len(p.Neighbors) > 0 {
		b.WriteString("\n\n")
		b.WriteString(StyleDim.Render("Linked: "))
		b.WriteString(StyleHighlight.Render(strings.Join(p.Neighbors, ", ")))
	}
	return panelStyle.Render(b.String())
}
