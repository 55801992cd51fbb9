// Package observability lets callers watch the export pipeline and the asset
// cache without those packages knowing who is listening.
//
// Hooks are process-wide. The CLI installs logging hooks before running a
// command; library code only ever calls through [Export] and [Cache]:
//
//	observability.Export().OnJobStart(ctx, slideID)
//	// rasterize, encode, deliver
//	observability.Export().OnJobComplete(ctx, slideID, "success", took, nil)
//
// Until something is installed, every call lands on a no-op.
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// ExportHooks observes export jobs.
type ExportHooks interface {
	// OnJobStart fires once per slide before rendering begins.
	OnJobStart(ctx context.Context, slideID string)
	// OnJobComplete fires once per slide. outcome is "success", "manual" or "failure".
	OnJobComplete(ctx context.Context, slideID, outcome string, took time.Duration, err error)
	// OnRasterize fires after each strategy attempt, successful or not.
	OnRasterize(ctx context.Context, strategy string, took time.Duration, err error)
	// OnDeliver fires after each delivery method attempt.
	OnDeliver(ctx context.Context, method string, err error)
}

// CacheHooks observes asset cache traffic. backend is "file" or "redis".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, backend string)
	OnCacheMiss(ctx context.Context, backend string)
	OnCacheSet(ctx context.Context, backend string, size int)
}

// NoopExportHooks ignores every event. Embed it to implement a subset.
type NoopExportHooks struct{}

func (NoopExportHooks) OnJobStart(context.Context, string)                                  {}
func (NoopExportHooks) OnJobComplete(context.Context, string, string, time.Duration, error) {}
func (NoopExportHooks) OnRasterize(context.Context, string, time.Duration, error)           {}
func (NoopExportHooks) OnDeliver(context.Context, string, error)                            {}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// The registries hold boxed interfaces so atomic.Pointer can swap them.
type (
	exportBox struct{ ExportHooks }
	cacheBox  struct{ CacheHooks }
)

var (
	exportHooks atomic.Pointer[exportBox]
	cacheHooks  atomic.Pointer[cacheBox]
)

func init() { Reset() }

// SetExportHooks installs h for all subsequent export events. nil is ignored.
func SetExportHooks(h ExportHooks) {
	if h != nil {
		exportHooks.Store(&exportBox{h})
	}
}

// SetCacheHooks installs h for all subsequent cache events. nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheHooks.Store(&cacheBox{h})
	}
}

// Export returns the installed export hooks.
func Export() ExportHooks { return exportHooks.Load().ExportHooks }

// Cache returns the installed cache hooks.
func Cache() CacheHooks { return cacheHooks.Load().CacheHooks }

// Reset reinstalls the no-op hooks.
func Reset() {
	exportHooks.Store(&exportBox{NoopExportHooks{}})
	cacheHooks.Store(&cacheBox{NoopCacheHooks{}})
}
