package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Total number of calls made to upstream APIs",
		},
		[]string{"service", "outcome"},
	)

	UpstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Duration of upstream API calls",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service"},
	)

	EnrichmentFallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "event_enrichment_fallbacks_total",
			Help: "Total number of enrichment lookups that failed and left a field empty",
		},
		[]string{"lookup"},
	)

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests served",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests served",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	ActivityPublishedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activity_published_total",
			Help: "Total number of activity records handed to the broker",
		},
		[]string{"kind", "outcome"},
	)
)

var registerOnce sync.Once

// Register registers all collectors with the default registry. Safe to call
// more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(UpstreamRequestsTotal)
		prometheus.MustRegister(UpstreamRequestDuration)
		prometheus.MustRegister(EnrichmentFallbacksTotal)
		prometheus.MustRegister(HTTPRequestsTotal)
		prometheus.MustRegister(HTTPRequestDuration)
		prometheus.MustRegister(ActivityPublishedTotal)
	})
}
