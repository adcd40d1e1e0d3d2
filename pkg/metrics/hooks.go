package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/matzehuels/addrscope/pkg/observability"
)

// OnReveal implements observability.DisclosureHooks.
func (r *Registry) OnReveal(_ context.Context, _ string, step, addedNodes, addedLinks int) {
	r.RevealsTotal.WithLabelValues(strconv.Itoa(step)).Inc()
	r.RevealedNodes.Add(float64(addedNodes))
	r.RevealedLinks.Add(float64(addedLinks))
}

// OnClickIgnored implements observability.DisclosureHooks.
func (r *Registry) OnClickIgnored(_ context.Context, _ string, reason string) {
	r.ClicksIgnored.WithLabelValues(reason).Inc()
}

// OnProviderError implements observability.DisclosureHooks.
func (r *Registry) OnProviderError(_ context.Context, step int, _ error) {
	r.ProviderErrors.WithLabelValues(strconv.Itoa(step)).Inc()
}

// OnTick implements observability.LayoutHooks.
func (r *Registry) OnTick(alpha float64) {
	r.LayoutTicksTotal.Inc()
	r.LayoutAlpha.Set(alpha)
}

// OnSettled implements observability.LayoutHooks.
func (r *Registry) OnSettled(_ int, elapsed time.Duration) {
	r.LayoutSettles.Inc()
	r.LayoutSettleTime.Observe(elapsed.Seconds())
}

// OnReheat implements observability.LayoutHooks.
func (r *Registry) OnReheat(float64) {
	r.LayoutReheats.Inc()
}

// OnCacheHit implements observability.CacheHooks.
func (r *Registry) OnCacheHit(_ context.Context, keyType string) {
	r.CacheRequests.WithLabelValues(keyType, "hit").Inc()
}

// OnCacheMiss implements observability.CacheHooks.
func (r *Registry) OnCacheMiss(_ context.Context, keyType string) {
	r.CacheRequests.WithLabelValues(keyType, "miss").Inc()
}

// OnCacheSet implements observability.CacheHooks.
func (r *Registry) OnCacheSet(_ context.Context, keyType string, size int) {
	r.CacheWriteBytes.WithLabelValues(keyType).Observe(float64(size))
}

// OnRequest implements observability.HTTPHooks.
func (r *Registry) OnRequest(context.Context, string, string, string) {}

// OnResponse implements observability.HTTPHooks.
func (r *Registry) OnResponse(_ context.Context, _, host, _ string, statusCode int, duration time.Duration) {
	r.UpstreamRequests.WithLabelValues(host, strconv.Itoa(statusCode)).Inc()
	r.UpstreamDuration.WithLabelValues(host).Observe(duration.Seconds())
}

// OnError implements observability.HTTPHooks.
func (r *Registry) OnError(_ context.Context, _, host, _ string, _ error) {
	r.UpstreamErrors.WithLabelValues(host).Inc()
}

// RecordHTTPRequest records a served request.
func (r *Registry) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

var (
	_ observability.DisclosureHooks = (*Registry)(nil)
	_ observability.LayoutHooks     = (*Registry)(nil)
	_ observability.CacheHooks      = (*Registry)(nil)
	_ observability.HTTPHooks       = (*Registry)(nil)
)
