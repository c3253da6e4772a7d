// Package cache stores rendered artifacts keyed by content hash.
//
// Rendering a large graph through Graphviz is the slowest thing touchstone
// does, and identical (graph, highlight, viewport, format) inputs always
// produce identical bytes. Backends:
//   - [NullCache]: caching disabled
//   - [FileCache]: one file per entry under a directory (CLI default)
//   - [RedisCache]: shared cache for several server instances
//
// View state is never cached; only artifacts are.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is the artifact lifetime used when none is configured.
const DefaultTTL = 24 * time.Hour

// Cache is a byte-oriented key-value store with expiry.
type Cache interface {
	// Get returns the value for key and whether it was present.
	// Expired or corrupt entries count as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A non-positive ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes every entry owned by the cache.
	Clear(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

// ArtifactKeyOpts are the render inputs beyond the DOT source that change
// the output bytes.
type ArtifactKeyOpts struct {
	Engine   string  `json:"engine"`
	Format   string  `json:"format"`
	Scale    float64 `json:"scale,omitempty"`
	Viewport string  `json:"viewport,omitempty"`
}

// ArtifactKey derives the cache key for a rendered artifact.
func ArtifactKey(dot string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", Hash([]byte(dot)), opts)
}
