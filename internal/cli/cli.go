// Package cli implements the touchstone command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/touchstone/internal/config"
	"github.com/matzehuels/touchstone/pkg/buildinfo"
	"github.com/matzehuels/touchstone/pkg/cache"
	"github.com/matzehuels/touchstone/pkg/graph"
	"github.com/matzehuels/touchstone/pkg/render/nodelink"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "touchstone"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Touchstone explores who-influenced-whom graphs of authors",
		Long: `Touchstone lays out a graph of authors and the links between them, and lets you
explore it by hovering and clicking: the active author's neighborhood stays lit,
everything else fades, and an info panel shows the author's touchstone quote.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default "+config.DefaultPath()+")")

	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.neighborsCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Shared Loading
// =============================================================================

func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("config loaded", "path", c.configPath, "engine", cfg.Render.Engine, "revert", cfg.Highlight.Revert)
	return cfg, nil
}

// loadGraph reads the graph at path, falling back to the configured one.
// Referential problems are logged rather than returned: the highlight
// controller tolerates them and the check command reports them in full.
func (c *CLI) loadGraph(cfg *config.Config, path string) (graph.Graph, error) {
	if path == "" {
		path = cfg.Graph.Path
	}
	prog := newProgress(c.Logger)
	g, err := graph.ReadFile(path)
	if err != nil {
		return graph.Graph{}, err
	}
	if err := graph.Validate(g); err != nil {
		c.Logger.Warn("graph has referential problems; run `touchstone check` for details", "path", path)
	}
	prog.debug("Loaded %d authors, %d links from %s", len(g.Nodes), len(g.Links), path)
	return g, nil
}

// =============================================================================
// Factories
// =============================================================================

// newCache opens the configured artifact cache.
func (c *CLI) newCache(ctx context.Context, cfg *config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		return cache.NewRedisCache(ctx, cfg.Cache.RedisURL, cache.DefaultRedisPrefix)
	default:
		dir := cacheLocation(cfg)
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			c.Logger.Warn("file cache unavailable, rendering without cache", "dir", dir, "err", err)
			return cache.NewNullCache(), nil
		}
		return fc, nil
	}
}

// groupPalette colours g's groups with the configured palette, so terminal
// swatches match rendered drawings.
func groupPalette(cfg *config.Config, g graph.Graph) *graph.Palette {
	return graph.PaletteFor(g, cfg.Render.Palette)
}

// renderOptions builds drawing options for g from the render section.
func renderOptions(cfg *config.Config, g graph.Graph) nodelink.Options {
	return nodelink.Options{
		LinkDistance: cfg.Render.LinkDistance,
		NodeRadius:   cfg.Render.NodeRadius,
		Palette:      groupPalette(cfg, g),
		HideLabels:   cfg.Render.HideLabels,
	}
}
