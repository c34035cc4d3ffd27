// Package metrics provides custom Prometheus metrics for application components.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// AggregatorMetrics contains all Prometheus metrics related to image
// and metadata resolution.
type AggregatorMetrics struct {
	CacheHits          prometheus.Counter
	CacheMisses        prometheus.Counter
	ProviderCalls      *prometheus.CounterVec
	ProviderErrors     *prometheus.CounterVec
	ProviderRateLimits *prometheus.CounterVec
	FallbackUses       prometheus.Counter
	FetchDuration      prometheus.Histogram
	registry           *prometheus.Registry
}

// NewAggregatorMetrics creates a new instance of AggregatorMetrics and
// registers it with the given registry.
func NewAggregatorMetrics(registry *prometheus.Registry) (*AggregatorMetrics, error) {
	m := &AggregatorMetrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, fmt.Errorf("failed to register aggregator metrics: %w", err)
	}
	return m, nil
}

// initMetrics initializes all metrics for AggregatorMetrics.
func (m *AggregatorMetrics) initMetrics() {
	m.CacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "aggregator_cache_hits_total",
		Help: "Total number of resolution cache hits.",
	})

	m.CacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "aggregator_cache_misses_total",
		Help: "Total number of resolution cache misses.",
	})

	m.ProviderCalls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "aggregator_provider_calls_total",
		Help: "Total number of outbound provider calls.",
	}, []string{"provider"})

	m.ProviderErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "aggregator_provider_errors_total",
		Help: "Total number of failed provider calls.",
	}, []string{"provider"})

	m.ProviderRateLimits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "aggregator_provider_rate_limits_total",
		Help: "Total number of rate-limit responses per provider.",
	}, []string{"provider"})

	m.FallbackUses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "aggregator_fallback_uses_total",
		Help: "Total number of responses served from the static fallback list.",
	})

	m.FetchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "aggregator_fetch_duration_seconds",
		Help:    "Duration of provider fetches in seconds.",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
	})
}

// IncrementCacheHits increases the cache hit counter by one.
func (m *AggregatorMetrics) IncrementCacheHits() {
	m.CacheHits.Inc()
}

// IncrementCacheMisses increases the cache miss counter by one.
func (m *AggregatorMetrics) IncrementCacheMisses() {
	m.CacheMisses.Inc()
}

// IncrementProviderCalls increases the call counter for a provider.
func (m *AggregatorMetrics) IncrementProviderCalls(provider string) {
	m.ProviderCalls.WithLabelValues(provider).Inc()
}

// IncrementProviderErrors increases the error counter for a provider.
func (m *AggregatorMetrics) IncrementProviderErrors(provider string) {
	m.ProviderErrors.WithLabelValues(provider).Inc()
}

// IncrementProviderRateLimits increases the rate-limit counter for a provider.
func (m *AggregatorMetrics) IncrementProviderRateLimits(provider string) {
	m.ProviderRateLimits.WithLabelValues(provider).Inc()
}

// IncrementFallbackUses increases the fallback counter by one.
func (m *AggregatorMetrics) IncrementFallbackUses() {
	m.FallbackUses.Inc()
}

// ObserveFetchDuration records the duration of a provider fetch.
func (m *AggregatorMetrics) ObserveFetchDuration(seconds float64) {
	m.FetchDuration.Observe(seconds)
}

// Describe implements the prometheus.Collector interface.
func (m *AggregatorMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.CacheHits.Describe(ch)
	m.CacheMisses.Describe(ch)
	m.ProviderCalls.Describe(ch)
	m.ProviderErrors.Describe(ch)
	m.ProviderRateLimits.Describe(ch)
	m.FallbackUses.Describe(ch)
	m.FetchDuration.Describe(ch)
}

// Collect implements the prometheus.Collector interface.
func (m *AggregatorMetrics) Collect(ch chan<- prometheus.Metric) {
	m.CacheHits.Collect(ch)
	m.CacheMisses.Collect(ch)
	m.ProviderCalls.Collect(ch)
	m.ProviderErrors.Collect(ch)
	m.ProviderRateLimits.Collect(ch)
	m.FallbackUses.Collect(ch)
	m.FetchDuration.Collect(ch)
}
