// Package config loads touchstone settings from a TOML file.
//
// Settings are layered: [Default], then the config file, then command-line
// flags (applied by the CLI).
package config

import (
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"time"

	"github.com/BurntSushi/toml"

	terrors "github.com/matzehuels/touchstone/pkg/errors"
	"github.com/matzehuels/touchstone/pkg/highlight"
	"github.com/matzehuels/touchstone/pkg/render/nodelink"
)

const appName = "touchstone"

// Cache backends.
const (
	CacheNone  = "none"
	CacheFile  = "file"
	CacheRedis = "redis"
)

// Config holds touchstone configuration.
type Config struct {
	Graph     GraphConfig     `toml:"graph"`
	Highlight HighlightConfig `toml:"highlight"`
	Render    RenderConfig    `toml:"render"`
	Server    ServerConfig    `toml:"server"`
	Cache     CacheConfig     `toml:"cache"`
}

// GraphConfig locates the input document.
type GraphConfig struct {
	Path string `toml:"path"`
}

// HighlightConfig controls the selection model.
type HighlightConfig struct {
	Revert      string `toml:"revert"` // "selection" or "cleared"
	Placeholder string `toml:"placeholder"`
}

// RenderConfig controls layout and drawing.
type RenderConfig struct {
	Engine       string   `toml:"engine"`
	LinkDistance float64  `toml:"link_distance"`
	NodeRadius   float64  `toml:"node_radius"`
	Palette      []string `toml:"palette"`
	HideLabels   bool     `toml:"hide_labels"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr        string   `toml:"addr"`
	CORSOrigins []string `toml:"cors_origins"`
	ViewTTL     Duration `toml:"view_ttl"`
}

// CacheConfig selects the artifact cache.
type CacheConfig struct {
	Backend  string   `toml:"backend"` // "none", "file", "redis"
	Dir      string   `toml:"dir"`
	RedisURL string   `toml:"redis_url"`
	TTL      Duration `toml:"ttl"`
}

// Duration is a time.Duration written as a string ("30m") in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration as a Go duration string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Graph:     GraphConfig{Path: "authors.json"},
		Highlight: HighlightConfig{Revert: string(highlight.RevertToSelection), Placeholder: highlight.DefaultPlaceholder},
		Render: RenderConfig{
			Engine:       string(nodelink.EngineNeato),
			LinkDistance: nodelink.DefaultLinkDistance,
			NodeRadius:   nodelink.DefaultNodeRadius,
		},
		Server: ServerConfig{
			Addr:        "127.0.0.1:8080",
			CORSOrigins: []string{"http://localhost:*"},
			ViewTTL:     Duration{30 * time.Minute},
		},
		Cache: CacheConfig{
			Backend: CacheFile,
			TTL:     Duration{24 * time.Hour},
		},
	}
}

// Dir returns the touchstone config directory, honoring XDG_CONFIG_HOME.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, appName)
}

// CacheDir returns the default file cache directory, honoring XDG_CACHE_HOME.
func CacheDir() string {
	dir := os.Getenv("XDG_CACHE_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".cache")
	}
	return filepath.Join(dir, appName)
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads path over the defaults. An empty path reads [DefaultPath],
// where a missing file is not an error; an explicitly named file must exist.
func Load(path string) (*Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return cfg, nil
	}
	if err != nil {
		if os.IsNotExist(err) {
			return nil, terrors.Wrap(terrors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, terrors.Wrap(terrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg as TOML to path, creating parent directories.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

// hexColor matches the colours the renderer can fade: node fills get an
// alpha byte appended.
var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Validate rejects unknown enum values and palette colours that are not
// #rrggbb.
func (c *Config) Validate() error {
	if _, err := highlight.ParsePolicy(c.Highlight.Revert); err != nil {
		return err
	}
	if _, err := nodelink.ParseEngine(c.Render.Engine); err != nil {
		return terrors.Wrap(terrors.ErrCodeInvalidConfig, err, "render.engine")
	}
	if !slices.Contains([]string{"", CacheNone, CacheFile, CacheRedis}, c.Cache.Backend) {
		return terrors.New(terrors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.Backend == CacheRedis && c.Cache.RedisURL == "" {
		return terrors.New(terrors.ErrCodeInvalidConfig, "cache.redis_url is required for the redis backend")
	}
	for i, col := range c.Render.Palette {
		if !hexColor.MatchString(col) {
			return terrors.New(terrors.ErrCodeInvalidConfig, "render.palette[%d] = %q: want a #rrggbb colour", i, col)
		}
	}
	return nil
}

// HighlightOptions converts the highlight section into controller options.
func (c *Config) HighlightOptions() []highlight.Option {
	policy, _ := highlight.ParsePolicy(c.Highlight.Revert)
	opts := []highlight.Option{highlight.WithPolicy(policy)}
	if c.Highlight.Placeholder != "" {
		opts = append(opts, highlight.WithPlaceholder(c.Highlight.Placeholder))
	}
	return opts
}
