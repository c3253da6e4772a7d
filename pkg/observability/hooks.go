// Package observability provides hooks for metrics, tracing, and logging.
//
// Libraries emit events through the registered hooks; main (or a test)
// decides what receives them. Nothing here depends on a metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	observability.SetViewHooks(myViewHooks{})
//	observability.SetRenderHooks(myRenderHooks{})
//
// Libraries call hooks to emit events:
//
//	observability.View().OnEvent(ctx, viewID, ev.Kind.String(), ev.NodeID, elapsed)
//	observability.Cache().OnCacheMiss(ctx, "artifact")
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// =============================================================================
// View Hooks
// =============================================================================

// ViewHooks receives interaction events from views.
type ViewHooks interface {
	OnViewCreated(ctx context.Context, viewID string)
	OnViewClosed(ctx context.Context, viewID string, expired bool)

	// OnEvent records one pointer event applied to a view.
	OnEvent(ctx context.Context, viewID, kind, nodeID string, duration time.Duration)
}

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from the node-link renderer.
type RenderHooks interface {
	OnRenderStart(ctx context.Context, engine, format string, nodeCount int)
	OnRenderComplete(ctx context.Context, engine, format string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopViewHooks is a no-op implementation of ViewHooks.
type NoopViewHooks struct{}

func (NoopViewHooks) OnViewCreated(context.Context, string)                          {}
func (NoopViewHooks) OnViewClosed(context.Context, string, bool)                     {}
func (NoopViewHooks) OnEvent(context.Context, string, string, string, time.Duration) {}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, string, string, int) {}
func (NoopRenderHooks) OnRenderComplete(context.Context, string, string, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Registry
// =============================================================================

// slot holds the current implementation of one hook interface.
type slot[T any] struct {
	p    atomic.Pointer[T]
	noop T
}

func newSlot[T any](noop T) *slot[T] {
	s := &slot[T]{noop: noop}
	s.reset()
	return s
}

func (s *slot[T]) get() T { return *s.p.Load() }

func (s *slot[T]) set(h T) { s.p.Store(&h) }

func (s *slot[T]) reset() { s.set(s.noop) }

var (
	viewHooks   = newSlot[ViewHooks](NoopViewHooks{})
	renderHooks = newSlot[RenderHooks](NoopRenderHooks{})
	cacheHooks  = newSlot[CacheHooks](NoopCacheHooks{})
)

// SetViewHooks replaces the view hooks. Nil is ignored.
func SetViewHooks(h ViewHooks) {
	if h != nil {
		viewHooks.set(h)
	}
}

// SetRenderHooks replaces the render hooks. Nil is ignored.
func SetRenderHooks(h RenderHooks) {
	if h != nil {
		renderHooks.set(h)
	}
}

// SetCacheHooks replaces the cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheHooks.set(h)
	}
}

// View returns the current view hooks.
func View() ViewHooks { return viewHooks.get() }

// Render returns the current render hooks.
func Render() RenderHooks { return renderHooks.get() }

// Cache returns the current cache hooks.
func Cache() CacheHooks { return cacheHooks.get() }

// Reset restores the no-op hooks.
func Reset() {
	viewHooks.reset()
	renderHooks.reset()
	cacheHooks.reset()
}
