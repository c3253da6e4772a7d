package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/touchstone/pkg/highlight"
)

// exploreCommand opens the interactive terminal view.
func (c *CLI) exploreCommand() *cobra.Command {
	var policy string

	cmd := &cobra.Command{
		Use:   "explore [graph.json]",
		Short: "Explore the graph interactively in the terminal",
		Long: `Explore lists the authors and highlights neighborhoods as you move through them.

Moving the cursor hovers an author: its neighbors stay lit and everyone else is
dimmed. Enter clicks (selects) the author, and clicking it again deselects it.
With the default "selection" policy, moving away from a hovered author returns
the highlight to the selected one; with "cleared", nothing stays highlighted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if policy != "" {
				cfg.Highlight.Revert = policy
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			g, err := c.loadGraph(cfg, path)
			if err != nil {
				return err
			}
			ui := consoleFor(cmd)
			if len(g.Nodes) == 0 {
				ui.warn("Graph has no authors")
				return nil
			}

			model := NewExploreModel(g, cfg.HighlightOptions()...).WithPalette(groupPalette(cfg, g))
			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("explore: %w", err)
			}
			if m, ok := final.(ExploreModel); ok {
				if sel := m.Ctrl.State().Selected; sel != "" {
					ui.info("Selected %s", StyleHighlight.Render(sel))
					ui.nextStep("Render this view", fmt.Sprintf("touchstone render --select %q", sel))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&policy, "revert", "", fmt.Sprintf("hover-revert policy: %s (default), %s", highlight.RevertToSelection, highlight.RevertToCleared))
	return cmd
}
