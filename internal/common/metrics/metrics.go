// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "worker_job_duration_seconds",
			Help:    "Duration of job processing in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)
)

var (
	MatchingVendorsEvaluated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_vendors_evaluated_total",
			Help: "Vendors run through the hard filters",
		},
		[]string{"category"},
	)

	MatchingVendorsExcluded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_vendors_excluded_total",
			Help: "Vendors rejected by a hard filter",
		},
		[]string{"category", "filter"},
	)

	MatchingCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_cache_lookups_total",
			Help: "Recommendation cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	MatchingCacheWriteFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_cache_write_failures_total",
			Help: "Recommendation cache replacements that failed",
		},
		[]string{"category"},
	)

	MatchingCategoryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_category_failures_total",
			Help: "Categories that returned empty because their pipeline failed",
		},
		[]string{"category"},
	)

	UpstreamBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "upstream_breaker_state",
			Help: "Circuit breaker state per upstream (0 closed, 1 half-open, 2 open)",
		},
		[]string{"upstream"},
	)
)
