// Package observability wires the Prometheus registry and component metrics.
package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/roamly/roamly/internal/observability/metrics"
)

// Metrics holds the shared registry and all component metric sets.
type Metrics struct {
	Registry   *prometheus.Registry
	Aggregator *metrics.AggregatorMetrics
}

// NewMetrics creates a registry with the standard process/go collectors
// plus the application metric sets.
func NewMetrics() (*Metrics, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	aggregatorMetrics, err := metrics.NewAggregatorMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to create aggregator metrics: %w", err)
	}

	return &Metrics{
		Registry:   registry,
		Aggregator: aggregatorMetrics,
	}, nil
}
