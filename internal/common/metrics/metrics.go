package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of tool jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of tool jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of tool job processing in seconds",
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

	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_api_requests_total",
			Help: "Booking API requests by operation and outcome",
		},
		[]string{"operation", "status"},
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "booking_api_request_duration_seconds",
			Help:    "Booking API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	UpstreamCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_api_cache_lookups_total",
			Help: "Booking API response cache lookups by result",
		},
		[]string{"result"},
	)

	SearchCandidatesScanned = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "location_search_candidates_scanned",
			Help:    "Locations scanned per search",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
		[]string{"search"},
	)

	AvailabilityChecks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "location_availability_checks_total",
			Help: "Availability checks performed during search by outcome",
		},
		[]string{"outcome"},
	)
)
