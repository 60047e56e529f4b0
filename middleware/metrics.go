// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quickly_survey_http_requests_total",
		Help: "HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quickly_survey_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	analysisDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quickly_survey_analysis_duration_seconds",
		Help:    "Time spent in path analysis by operation",
		Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1},
	}, []string{"operation"})

	responsesSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quickly_survey_responses_submitted_total",
		Help: "Survey responses accepted",
	})
)

// ObserveAnalysis records how long an analysis operation took since start.
func ObserveAnalysis(operation string, start time.Time) {
	analysisDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// ResponseSubmitted counts one accepted survey response.
func ResponseSubmitted() {
	responsesSubmitted.Inc()
}
