// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about quiver parsing, layout and edge routing.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, which avoids import cycles
// and keeps the core packages free of observability frameworks.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetViewerHooks(&myViewerHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	start := time.Now()
//	q, err := codec.Deserialize(text)
//	observability.Viewer().OnParse(ctx, len(text), nodes, edges, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Viewer Hooks
// =============================================================================

// ViewerHooks receives events from the interactive viewer and the renderers.
type ViewerHooks interface {
	// OnParse records a deserialization attempt of size bytes. On failure
	// nodes and edges are zero.
	OnParse(ctx context.Context, size, nodes, edges int, duration time.Duration, err error)

	// OnLayout records a layout run with the named engine.
	OnLayout(ctx context.Context, engine string, nodes int, duration time.Duration, err error)

	// OnRoute records an edge routing pass.
	OnRoute(ctx context.Context, primitives, warnings int, duration time.Duration)
}

// =============================================================================
// Edit Hooks
// =============================================================================

// EditHooks receives model mutations made by the pick controller.
type EditHooks interface {
	// OnNodeAdded records a node created by a double click.
	OnNodeAdded(ctx context.Context, id string)

	// OnModelReplaced records a successful paste.
	OnModelReplaced(ctx context.Context, nodes, edges int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopViewerHooks is a no-op implementation of ViewerHooks.
type NoopViewerHooks struct{}

func (NoopViewerHooks) OnParse(context.Context, int, int, int, time.Duration, error) {}
func (NoopViewerHooks) OnLayout(context.Context, string, int, time.Duration, error)  {}
func (NoopViewerHooks) OnRoute(context.Context, int, int, time.Duration)             {}

// NoopEditHooks is a no-op implementation of EditHooks.
type NoopEditHooks struct{}

func (NoopEditHooks) OnNodeAdded(context.Context, string)       {}
func (NoopEditHooks) OnModelReplaced(context.Context, int, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	viewerHooks ViewerHooks = NoopViewerHooks{}
	editHooks   EditHooks   = NoopEditHooks{}
	hooksMu     sync.RWMutex
)

// SetViewerHooks registers custom viewer hooks.
// This should be called once at application startup before any quiver is loaded.
func SetViewerHooks(h ViewerHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		viewerHooks = h
	}
}

// SetEditHooks registers custom edit hooks.
func SetEditHooks(h EditHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		editHooks = h
	}
}

// Viewer returns the registered viewer hooks.
func Viewer() ViewerHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return viewerHooks
}

// Edit returns the registered edit hooks.
func Edit() EditHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return editHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	viewerHooks = NoopViewerHooks{}
	editHooks = NoopEditHooks{}
}
