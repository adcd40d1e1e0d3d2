// Package metrics exports Prometheus metrics for addrscope.
//
// A [Registry] implements every hook interface of pkg/observability, so the
// server installs it once at startup:
//
//	reg := metrics.NewRegistry()
//	reg.Install()
//	router.Handle("/metrics", reg.Handler())
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/addrscope/pkg/observability"
)

// Registry holds all metrics for the application
type Registry struct {
	// Disclosure Metrics
	RevealsTotal   *prometheus.CounterVec
	RevealedNodes  prometheus.Counter
	RevealedLinks  prometheus.Counter
	ClicksIgnored  *prometheus.CounterVec
	ProviderErrors *prometheus.CounterVec

	// Layout Metrics
	LayoutTicksTotal prometheus.Counter
	LayoutAlpha      prometheus.Gauge
	LayoutSettles    prometheus.Counter
	LayoutSettleTime prometheus.Histogram
	LayoutReheats    prometheus.Counter

	// Cache Metrics
	CacheRequests   *prometheus.CounterVec
	CacheWriteBytes *prometheus.HistogramVec

	// Upstream HTTP Metrics
	UpstreamRequests *prometheus.CounterVec
	UpstreamDuration *prometheus.HistogramVec
	UpstreamErrors   *prometheus.CounterVec

	// Server Metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	ViewsActive         prometheus.Gauge
	ViewsClosed         *prometheus.CounterVec

	registry *prometheus.Registry
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the process-wide registry.
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a registry with all metrics initialized.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}

	r.initDisclosureMetrics()
	r.initLayoutMetrics()
	r.initCacheMetrics()
	r.initUpstreamMetrics()
	r.initServerMetrics()

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry.
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Install registers r as the disclosure, layout, cache and HTTP hooks.
func (r *Registry) Install() {
	observability.SetDisclosureHooks(r)
	observability.SetLayoutHooks(r)
	observability.SetCacheHooks(r)
	observability.SetHTTPHooks(r)
}
