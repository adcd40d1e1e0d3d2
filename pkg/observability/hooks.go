// Package observability provides hooks for metrics and logging.
//
// Libraries emit events through the registered hooks without depending on a
// particular backend. The defaults are no-ops; main (or a server) installs
// real implementations at startup, for example the Prometheus recorder in
// pkg/metrics.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    rec := metrics.New(prometheus.NewRegistry())
//	    observability.SetDisclosureHooks(rec)
//	    observability.SetLayoutHooks(rec)
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Disclosure().OnReveal(ctx, address, step, added)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Disclosure Hooks
// =============================================================================

// DisclosureHooks receives events from the disclosure controller.
type DisclosureHooks interface {
	// OnReveal records a click that merged the subgraph of step.
	OnReveal(ctx context.Context, address string, step, addedNodes, addedLinks int)

	// OnClickIgnored records a click that changed nothing.
	OnClickIgnored(ctx context.Context, address, reason string)

	// OnProviderError records a failed subgraph lookup.
	OnProviderError(ctx context.Context, step int, err error)
}

// =============================================================================
// Layout Hooks
// =============================================================================

// LayoutHooks receives events from the force simulation. Tick events fire at
// frame rate, so implementations must be cheap.
type LayoutHooks interface {
	// OnTick records one simulation step at the given alpha.
	OnTick(alpha float64)

	// OnSettled records the simulation cooling below its minimum alpha.
	OnSettled(ticks int, elapsed time.Duration)

	// OnReheat records alpha being raised by a reveal or a drag.
	OnReheat(alpha float64)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from outgoing HTTP requests.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopDisclosureHooks is a no-op implementation of DisclosureHooks.
type NoopDisclosureHooks struct{}

func (NoopDisclosureHooks) OnReveal(context.Context, string, int, int, int) {}
func (NoopDisclosureHooks) OnClickIgnored(context.Context, string, string)  {}
func (NoopDisclosureHooks) OnProviderError(context.Context, int, error)     {}

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnTick(float64)               {}
func (NoopLayoutHooks) OnSettled(int, time.Duration) {}
func (NoopLayoutHooks) OnReheat(float64)             {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	disclosureHooks DisclosureHooks = NoopDisclosureHooks{}
	layoutHooks     LayoutHooks     = NoopLayoutHooks{}
	cacheHooks      CacheHooks      = NoopCacheHooks{}
	httpHooks       HTTPHooks       = NoopHTTPHooks{}
	hooksMu         sync.RWMutex
)

// SetDisclosureHooks registers custom disclosure hooks. Nil is ignored.
func SetDisclosureHooks(h DisclosureHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		disclosureHooks = h
	}
}

// SetLayoutHooks registers custom layout hooks. Nil is ignored.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// SetCacheHooks registers custom cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks. Nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Disclosure returns the registered disclosure hooks.
func Disclosure() DisclosureHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return disclosureHooks
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	disclosureHooks = NoopDisclosureHooks{}
	layoutHooks = NoopLayoutHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
