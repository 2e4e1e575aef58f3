package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loan_calculations_total",
			Help: "Total number of loan calculations performed, by tool",
		},
		[]string{"tool"},
	)

	CalculationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loan_calculation_errors_total",
			Help: "Total number of rejected (invalid input) calculation requests, by tool",
		},
		[]string{"tool"},
	)

	CalculationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "loan_calculation_duration_seconds",
			Help:    "Duration of loan calculation handling in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"tool"},
	)

	RateLimitRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ratelimit_rejections_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)
)
