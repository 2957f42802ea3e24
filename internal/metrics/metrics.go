package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	// HTTPRequestsTotal counts requests by method, matched route and status code
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration tracks request latency in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"method", "route"},
	)

	RateLimitRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limit_rejections_total",
			Help: "Requests rejected by the rate limiter by route",
		},
		[]string{"route"},
	)
)

// Domain Metrics
var (
	// ApplicationOperations counts create/update/delete/list calls by result
	// (success, invalid, not_found, error)
	ApplicationOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "application_operations_total",
			Help: "Application operations by operation and result",
		},
		[]string{"operation", "result"},
	)

	// AuthAttempts counts register/login attempts by result
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Authentication attempts by operation and result",
		},
		[]string{"operation", "result"},
	)

	PostingExtractions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "posting_extractions_total",
			Help: "LLM job posting extractions by result",
		},
		[]string{"result"},
	)
)
