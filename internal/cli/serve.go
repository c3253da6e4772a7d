package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/touchstone/internal/server"
	"github.com/matzehuels/touchstone/pkg/graph"
	"github.com/matzehuels/touchstone/pkg/render/nodelink"
	"github.com/matzehuels/touchstone/pkg/view"
)

// serveCommand starts the HTTP API for browser-driven views.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		engine  string
		noCache bool
		watch   bool
	)

	cmd := &cobra.Command{
		Use:   "serve [graph.json]",
		Short: "Serve interactive views over HTTP",
		Long: `Serve loads the graph once and exposes it over a JSON API. Each client creates
its own view, posts hover/click/drag/pan/zoom events to it, and fetches the
restyled drawing. Idle views expire after server.view_ttl.

With --watch the graph document is reloaded whenever it changes on disk;
open views are dropped and clients create new ones.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			eng, err := nodelink.ParseEngine(firstNonEmpty(engine, cfg.Render.Engine))
			if err != nil {
				return err
			}
			g, err := c.loadGraph(cfg, path)
			if err != nil {
				return err
			}

			ch, err := c.newCache(cmd.Context(), cfg, noCache)
			if err != nil {
				return err
			}
			defer ch.Close()

			installHooks(cmd.Context())

			reg := view.NewRegistry(g, cfg.Server.ViewTTL.Duration, cfg.HighlightOptions()...)
			srv := server.New(reg,
				nodelink.NewRenderer(ch, cfg.Cache.TTL.Duration, c.Logger),
				server.Options{
					CORSOrigins: cfg.Server.CORSOrigins,
					Engine:      eng,
					Render:      renderOptions(cfg, g),
				},
				c.Logger)

			if watch {
				load := func(p string) (graph.Graph, error) { return c.loadGraph(cfg, p) }
				if err := srv.Watch(cmd.Context(), firstNonEmpty(path, cfg.Graph.Path), load); err != nil {
					return err
				}
			}

			listen := firstNonEmpty(addr, cfg.Server.Addr)
			consoleFor(cmd).info("Serving %d authors on %s", len(g.Nodes), StyleLink.Render("http://"+listen))
			return srv.Run(cmd.Context(), listen)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default from config, 127.0.0.1:8080)")
	cmd.Flags().StringVarP(&engine, "engine", "e", "", "default layout engine: "+engineList())
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the artifact cache")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload the graph when the file changes")

	return cmd
}
