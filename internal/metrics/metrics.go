// Package metrics holds the Prometheus collectors exported by the API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Requests counts API requests by endpoint and response status.
	Requests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rental_analysis_requests_total",
			Help: "API requests by endpoint and status code",
		},
		[]string{"endpoint", "status"},
	)

	// Analyses counts completed property analyses by caller.
	Analyses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rental_analysis_analyses_total",
			Help: "Completed property analyses",
		},
		[]string{"source"},
	)

	// AnalysisDuration observes how long a full projection takes.
	AnalysisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rental_analysis_duration_seconds",
			Help:    "Time spent computing a full projection",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
		},
	)

	// RateLookups counts interest rate lookups by series and where the
	// answer came from (cache, proxy, fallback).
	RateLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rental_analysis_rate_lookups_total",
			Help: "Interest rate lookups by series and source",
		},
		[]string{"series", "source"},
	)

	// RateLimited counts requests rejected by the per-client limiter.
	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rental_analysis_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
	)
)
