package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initDisclosureMetrics() {
	r.RevealsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "addrscope_reveals_total",
			Help: "Total number of reveal steps merged",
		},
		[]string{"step"},
	)

	r.RevealedNodes = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "addrscope_revealed_nodes_total",
			Help: "Total number of nodes added by reveals",
		},
	)

	r.RevealedLinks = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "addrscope_revealed_links_total",
			Help: "Total number of links added by reveals",
		},
	)

	r.ClicksIgnored = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "addrscope_clicks_ignored_total",
			Help: "Total number of node clicks that changed nothing",
		},
		[]string{"reason"},
	)

	r.ProviderErrors = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "addrscope_reveal_provider_errors_total",
			Help: "Total number of failed step subgraph lookups",
		},
		[]string{"step"},
	)
}

func (r *Registry) initLayoutMetrics() {
	r.LayoutTicksTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "addrscope_layout_ticks_total",
			Help: "Total number of force simulation ticks",
		},
	)

	r.LayoutAlpha = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "addrscope_layout_alpha",
			Help: "Alpha of the most recently ticked simulation",
		},
	)

	r.LayoutSettles = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "addrscope_layout_settles_total",
			Help: "Total number of times a simulation cooled below alpha min",
		},
	)

	r.LayoutSettleTime = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "addrscope_layout_settle_duration_seconds",
			Help:    "Wall time from reheat to settle",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
	)

	r.LayoutReheats = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "addrscope_layout_reheats_total",
			Help: "Total number of simulation reheats",
		},
	)
}

func (r *Registry) initCacheMetrics() {
	r.CacheRequests = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "addrscope_cache_requests_total",
			Help: "Total number of cache lookups",
		},
		[]string{"key_type", "result"}, // hit, miss
	)

	r.CacheWriteBytes = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "addrscope_cache_write_bytes",
			Help:    "Size of cache writes in bytes",
			Buckets: prometheus.ExponentialBuckets(256, 4, 8),
		},
		[]string{"key_type"},
	)
}

func (r *Registry) initUpstreamMetrics() {
	r.UpstreamRequests = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "addrscope_upstream_requests_total",
			Help: "Total number of upstream HTTP responses",
		},
		[]string{"host", "status"},
	)

	r.UpstreamDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "addrscope_upstream_request_duration_seconds",
			Help:    "Upstream HTTP request duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"host"},
	)

	r.UpstreamErrors = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "addrscope_upstream_errors_total",
			Help: "Total number of upstream HTTP failures without a response",
		},
		[]string{"host"},
	)
}

func (r *Registry) initServerMetrics() {
	r.HTTPRequestsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "addrscope_http_requests_total",
			Help: "Total number of HTTP requests served",
		},
		[]string{"method", "route", "status"},
	)

	r.HTTPRequestDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "addrscope_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	r.ViewsActive = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "addrscope_views_active",
			Help: "Number of live explorer views",
		},
	)

	r.ViewsClosed = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "addrscope_views_closed_total",
			Help: "Total number of views closed, by reason (evicted, deleted, shutdown)",
		},
		[]string{"reason"},
	)
}
