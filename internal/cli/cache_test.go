package cli

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/touchstone/internal/config"
	"github.com/matzehuels/touchstone/pkg/cache"
)

func TestCacheLocation(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	cfg := config.Default()
	if got := cacheLocation(cfg); got != filepath.Join("/tmp/xdg-cache", appName) {
		t.Errorf("cacheLocation(default) = %q", got)
	}

	cfg.Cache.Dir = "/srv/touchstone"
	if got := cacheLocation(cfg); got != "/srv/touchstone" {
		t.Errorf("cacheLocation(explicit) = %q", got)
	}
}

func TestNewCacheBackends(t *testing.T) {
	c := New(io.Discard, LogInfo)
	ctx := context.Background()

	tests := []struct {
		name    string
		backend string
		noCache bool
		want    string
	}{
		{"none", config.CacheNone, false, "null"},
		{"file", config.CacheFile, false, "file"},
		{"no-cache flag wins", config.CacheFile, true, "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Cache.Backend = tt.backend
			cfg.Cache.Dir = t.TempDir()

			ch, err := c.newCache(ctx, cfg, tt.noCache)
			if err != nil {
				t.Fatalf("newCache: %v", err)
			}
			defer ch.Close()

			var got string
			switch ch.(type) {
			case *cache.NullCache:
				got = "null"
			case *cache.FileCache:
				got = "file"
			}
			if got != tt.want {
				t.Errorf("backend = %T, want %s", ch, tt.want)
			}
		})
	}
}

func TestCacheCommands(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	cfg := config.Default()
	cfg.Cache.Dir = dir
	if err := config.Save(cfg, cfgPath); err != nil {
		t.Fatal(err)
	}

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := fc.Set(context.Background(), "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}

	out, err := runCommand(t, "--config", cfgPath, "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if out != dir+"\n" {
		t.Errorf("cache path = %q, want %q", out, dir)
	}

	out, err = runCommand(t, "--config", cfgPath, "cache", "prune")
	if err != nil {
		t.Fatalf("cache prune: %v", err)
	}
	if !strings.Contains(out, "Pruned 0 expired entries") {
		t.Errorf("cache prune output = %q", out)
	}
	if _, hit, _ := fc.Get(context.Background(), "k"); !hit {
		t.Error("prune should keep entries without a TTL")
	}

	if _, err := runCommand(t, "--config", cfgPath, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if _, hit, _ := fc.Get(context.Background(), "k"); hit {
		t.Error("entry should be gone after cache clear")
	}
}
