package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder tracks upstream and cache activity via Prometheus.
type Recorder struct {
	upstreamRequests *prometheus.CounterVec
	cacheHits        *prometheus.CounterVec
	cacheMisses      *prometheus.CounterVec
	pipelineLatency  *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		upstreamRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finboard_upstream_requests_total",
				Help: "Upstream provider requests by endpoint and outcome",
			},
			[]string{"endpoint", "outcome"},
		),
		cacheHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finboard_cache_hits_total",
				Help: "Cache hits by key prefix",
			},
			[]string{"prefix"},
		),
		cacheMisses: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finboard_cache_misses_total",
				Help: "Cache misses by key prefix",
			},
			[]string{"prefix"},
		),
		pipelineLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finboard_pipeline_duration_seconds",
				Help:    "Duration of aggregation pipelines in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"pipeline"},
		),
	}
}

// RecordUpstreamRequest records one provider call outcome.
func (r *Recorder) RecordUpstreamRequest(endpoint, outcome string) {
	r.upstreamRequests.WithLabelValues(endpoint, outcome).Inc()
}

// RecordCacheHit records a cache hit for a key prefix.
func (r *Recorder) RecordCacheHit(prefix string) {
	r.cacheHits.WithLabelValues(prefix).Inc()
}

// RecordCacheMiss records a cache miss for a key prefix.
func (r *Recorder) RecordCacheMiss(prefix string) {
	r.cacheMisses.WithLabelValues(prefix).Inc()
}

// RecordPipelineLatency records aggregation latency in seconds.
func (r *Recorder) RecordPipelineLatency(pipeline string, seconds float64) {
	r.pipelineLatency.WithLabelValues(pipeline).Observe(seconds)
}
