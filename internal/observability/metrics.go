package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "board_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "board_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// DomainOperations counts service operations by entity, operation and outcome.
	DomainOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "board_domain_operations_total",
		Help: "Total number of board operations by entity, operation and outcome",
	}, []string{"entity", "operation", "outcome"})

	// EventsPublished counts domain event publications by type and outcome.
	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "board_events_published_total",
		Help: "Total number of domain events published",
	}, []string{"type", "outcome"})
)

// ObserveQuery records the latency of a database query.
func ObserveQuery(operation, table string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		ObserveQuery(operation, table, start)
	}
}

// RecordOperation counts one service operation. err decides the outcome label.
func RecordOperation(entity, operation string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	DomainOperations.WithLabelValues(entity, operation, outcome).Inc()
}
