// Package metrics holds the Prometheus collectors shared by handlers and services.
package metrics

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// Collectors are created eagerly so code paths can record before (or without)
// registration, e.g. in tests.
var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fimi_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "fimi_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	)

	CacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fimi_cache_hits_total",
			Help: "Total operation detail cache hits.",
		},
	)

	CacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fimi_cache_misses_total",
			Help: "Total operation detail cache misses.",
		},
	)

	ClassificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fimi_classifications_total",
			Help: "Channel classifications computed, by resulting label.",
		},
		[]string{"classification"},
	)

	ClassifyDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fimi_classify_operation_duration_seconds",
			Help:    "Duration of operation-wide classification runs, including indicator loading.",
			Buckets: prometheus.DefBuckets,
		},
	)

	IndicatorsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fimi_indicators_created_total",
			Help: "Indicators recorded, by taxonomy group.",
		},
		[]string{"group"},
	)
)

// Register adds all collectors to reg. Pool gauges are added when pool is
// non-nil. Call once at startup.
func Register(reg prometheus.Registerer, pool *pgxpool.Pool) {
	if pool != nil {
		reg.MustRegister(
			prometheus.NewGaugeFunc(
				prometheus.GaugeOpts{
					Name: "fimi_db_connection_pool_active",
					Help: "Number of active database connections.",
				},
				func() float64 {
					return float64(pool.Stat().AcquiredConns())
				},
			),
			prometheus.NewGaugeFunc(
				prometheus.GaugeOpts{
					Name: "fimi_db_connection_pool_idle",
					Help: "Number of idle database connections.",
				},
				func() float64 {
					return float64(pool.Stat().IdleConns())
				},
			),
		)
	}

	reg.MustRegister(
		RequestDuration,
		RequestsInFlight,
		CacheHits,
		CacheMisses,
		ClassificationsTotal,
		ClassifyDuration,
		IndicatorsCreated,
	)
}
