package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/touchstone/internal/config"
	"github.com/matzehuels/touchstone/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePruneCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			ui := consoleFor(cmd)
			if cfg.Cache.Backend == config.CacheNone {
				ui.info("Caching is disabled")
				return nil
			}

			ch, err := c.newCache(cmd.Context(), cfg, false)
			if err != nil {
				return err
			}
			defer ch.Close()

			if err := ch.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			ui.success("Cleared %s cache", cfg.Cache.Backend)
			if cfg.Cache.Backend == config.CacheRedis {
				ui.detail("Prefix: %s", cache.DefaultRedisPrefix)
			} else {
				ui.detail("Directory: %s", cacheLocation(cfg))
			}
			return nil
		},
	}
}

// cachePruneCommand creates the "cache prune" subcommand. Redis expires
// keys on its own, so only the file backend has anything to prune.
func (c *CLI) cachePruneCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove expired artifacts from the file cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			ui := consoleFor(cmd)
			if b := cfg.Cache.Backend; b == config.CacheNone || b == config.CacheRedis {
				ui.info("Nothing to prune for the %s backend", cfg.Cache.Backend)
				return nil
			}

			fc, err := cache.NewFileCache(cacheLocation(cfg))
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			n, err := fc.Prune(cmd.Context())
			if err != nil {
				return fmt.Errorf("prune cache: %w", err)
			}
			ui.success("Pruned %d expired entries", n)
			ui.detail("Directory: %s", fc.Dir())
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cacheLocation(cfg))
			return nil
		},
	}
}

// cacheLocation returns the file cache directory cfg points at.
func cacheLocation(cfg *config.Config) string {
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir
	}
	return config.CacheDir()
}
