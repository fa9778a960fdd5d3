package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the spyglass-specific Prometheus metrics
type Metrics struct {
	ReportQueries   *prometheus.CounterVec
	QueryDuration   *prometheus.HistogramVec
	DatasetLoads    *prometheus.CounterVec
	PreviewFetches  *prometheus.CounterVec
	CacheOperations *prometheus.CounterVec
}
