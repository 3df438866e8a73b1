// Package observability provides metrics and tracing instrumentation.
package observability

import (
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chirp_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "chirp_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// LikeMutations counts like ledger writes by target and action.
	LikeMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chirp_like_mutations_total",
		Help: "Total number of like/unlike operations by target type and action",
	}, []string{"target", "action"})

	// FollowMutations counts follow graph writes by action.
	FollowMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chirp_follow_mutations_total",
		Help: "Total number of follow/unfollow operations",
	}, []string{"action"})
)

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// ObserveQuery records one database query latency sample.
func ObserveQuery(operation, table string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}
