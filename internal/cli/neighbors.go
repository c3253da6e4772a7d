package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	terrors "github.com/matzehuels/touchstone/pkg/errors"
	"github.com/matzehuels/touchstone/pkg/graph"
	"github.com/matzehuels/touchstone/pkg/neighbor"
)

// neighborsCommand prints the authors adjacent to one author.
func (c *CLI) neighborsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "neighbors <author> [graph.json]",
		Short: "List the authors linked to an author",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			var path string
			if len(args) == 2 {
				path = args[1]
			}
			g, err := c.loadGraph(cfg, path)
			if err != nil {
				return err
			}

			idx := neighbor.New(g)
			id := args[0]
			if !idx.Contains(id) {
				return terrors.New(terrors.ErrCodeNodeNotFound, "author %q is not in the graph", id)
			}

			if asJSON {
				return writeNeighborsJSON(cmd.OutOrStdout(), idx, id)
			}
			fmt.Fprintln(cmd.OutOrStdout(), neighborsTable(g, idx, id, groupPalette(cfg, g)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func writeNeighborsJSON(w io.Writer, idx *neighbor.Index, id string) error {
	ns := idx.Neighbors(id)
	if ns == nil {
		ns = []string{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		ID        string   `json:"id"`
		Degree    int      `json:"degree"`
		Neighbors []string `json:"neighbors"`
	}{id, idx.Degree(id), ns})
}

// neighborsTable renders id's neighbors with their palette colour and link
// weight to id.
func neighborsTable(g graph.Graph, idx *neighbor.Index, id string, palette *graph.Palette) string {
	nodes := g.NodeMap()
	weights := make(map[string]float64)
	for _, l := range g.Links {
		switch {
		case l.Source == id && l.Target != id:
			weights[l.Target] += l.Weight()
		case l.Target == id && l.Source != id:
			weights[l.Source] += l.Weight()
		}
	}

	ns := idx.Neighbors(id)
	rows := make([][]string, 0, len(ns))
	for _, n := range ns {
		grp := nodes[n].Group
		rows = append(rows, []string{
			swatch(palette.Color(grp)) + " " + n,
			string(grp),
			fmt.Sprintf("%g", weights[n]),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Author", "Group", "Weight").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 2 {
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle()
		})

	title := StyleTitle.Render(id) + StyleDim.Render(fmt.Sprintf("  %d neighbors", len(ns)))
	if len(ns) == 0 {
		return title + "\n" + StyleDim.Render("  (no links)")
	}
	return title + "\n" + t.Render()
}
