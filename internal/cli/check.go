package cli

import (
	"github.com/spf13/cobra"

	terrors "github.com/matzehuels/touchstone/pkg/errors"
	"github.com/matzehuels/touchstone/pkg/graph"
	"github.com/matzehuels/touchstone/pkg/neighbor"
)

// graphSummary holds the counts printed by the check command.
type graphSummary struct {
	Authors  int
	Links    int
	Groups   int
	Pairs    int // distinct linked pairs
	Isolated []string
}

func summarize(g graph.Graph) graphSummary {
	idx := neighbor.New(g)
	s := graphSummary{
		Authors: len(g.Nodes),
		Links:   len(g.Links),
		Groups:  len(g.Groups()),
		Pairs:   idx.Len(),
	}
	for _, n := range g.Nodes {
		if idx.Degree(n.ID) == 0 {
			s.Isolated = append(s.Isolated, n.ID)
		}
	}
	return s
}

// checkCommand validates a graph document and prints a short summary.
func (c *CLI) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [graph.json]",
		Short: "Validate a graph document",
		Long: `Check reads a graph document and reports duplicate or empty author IDs and
links whose endpoints are not authors. It exits non-zero if any are found.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			path := cfg.Graph.Path
			if len(args) == 1 {
				path = args[0]
			}

			g, err := graph.ReadFile(path)
			if err != nil {
				return err
			}

			ui := consoleFor(cmd)
			s := summarize(g)
			ui.keyValue("Authors", s.Authors)
			ui.keyValue("Links", s.Links)
			ui.keyValue("Groups", s.Groups)
			ui.keyValue("Pairs", s.Pairs)
			if len(s.Isolated) > 0 {
				ui.warn("%d authors have no links", len(s.Isolated))
				for _, id := range s.Isolated {
					ui.detail("%s", id)
				}
			}

			problems := graphProblems(graph.Validate(g))
			if len(problems) == 0 {
				ui.success("%s is consistent", path)
				return nil
			}
			for _, p := range problems {
				ui.failure("%s", terrors.UserMessage(p))
			}
			return terrors.New(terrors.ErrCodeInvalidGraph, "%s: %d problems", path, len(problems))
		},
	}
}

// graphProblems splits a joined validation error into its parts.
func graphProblems(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}
