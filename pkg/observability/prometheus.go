package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "fretboard"

var durationBuckets = []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5}

// PrometheusHooks records render and cache events as Prometheus metrics.
// It implements both [RenderHooks] and [CacheHooks].
type PrometheusHooks struct {
	renders      *prometheus.CounterVec
	renderErrors *prometheus.CounterVec
	renderTime   *prometheus.HistogramVec
	artifactSize *prometheus.HistogramVec
	interactions *prometheus.CounterVec
	cacheLookups *prometheus.CounterVec
	cacheWrites  *prometheus.CounterVec
}

// NewPrometheusHooks creates the metrics and registers them with reg.
func NewPrometheusHooks(reg prometheus.Registerer) *PrometheusHooks {
	h := &PrometheusHooks{
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Diagrams rendered, by output format.",
		}, []string{"format"}),
		renderErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "render_errors_total",
			Help:      "Renders that failed, by output format.",
		}, []string{"format"}),
		renderTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Time taken to render one artifact.",
			Buckets:   durationBuckets,
		}, []string{"format"}),
		artifactSize: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "artifact_size_bytes",
			Help:      "Size of rendered artifacts.",
			Buckets:   prometheus.ExponentialBuckets(512, 2, 10),
		}, []string{"format"}),
		interactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "interactions_total",
			Help:      "Pointer events resolved to a fret position, by kind.",
		}, []string{"kind"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Artifact cache lookups, by format and result.",
		}, []string{"format", "result"}),
		cacheWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_writes_total",
			Help:      "Artifacts written to the cache, by format.",
		}, []string{"format"}),
	}
	reg.MustRegister(
		h.renders, h.renderErrors, h.renderTime, h.artifactSize,
		h.interactions, h.cacheLookups, h.cacheWrites,
	)
	return h
}

func (h *PrometheusHooks) OnRenderStart(context.Context, string) {}

func (h *PrometheusHooks) OnRenderComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.renderErrors.WithLabelValues(format).Inc()
		return
	}
	h.renders.WithLabelValues(format).Inc()
	h.renderTime.WithLabelValues(format).Observe(d.Seconds())
	h.artifactSize.WithLabelValues(format).Observe(float64(size))
}

func (h *PrometheusHooks) OnInteraction(_ context.Context, kind string) {
	h.interactions.WithLabelValues(kind).Inc()
}

func (h *PrometheusHooks) OnCacheHit(_ context.Context, format string) {
	h.cacheLookups.WithLabelValues(format, "hit").Inc()
}

func (h *PrometheusHooks) OnCacheMiss(_ context.Context, format string) {
	h.cacheLookups.WithLabelValues(format, "miss").Inc()
}

func (h *PrometheusHooks) OnCacheSet(_ context.Context, format string, _ int) {
	h.cacheWrites.WithLabelValues(format).Inc()
}

var (
	_ RenderHooks = (*PrometheusHooks)(nil)
	_ CacheHooks  = (*PrometheusHooks)(nil)
)
