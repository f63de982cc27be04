// TasteMatch - Restaurant Discovery and Hybrid Recommendations
// Copyright 2026 TasteMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastematch/tastematch

// Package metrics registers the Prometheus instrumentation for the API and
// the recommendation engine. All collectors are process-global and
// auto-registered via promauto.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API endpoint metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	// Training metrics
	TrainingRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_training_runs_total",
			Help: "Total number of model training runs",
		},
		[]string{"outcome"}, // "success", "error"
	)

	TrainingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_training_duration_seconds",
			Help:    "Model training duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	RatingEvents = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_rating_events",
			Help: "Number of rating events in the last trained matrix",
		},
	)

	// Recommendation serving metrics
	RecommendationsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_recommendations_served_total",
			Help: "Total number of recommendations returned, by source tag",
		},
		[]string{"tag"}, // "cf", "cb", "hybrid"
	)

	// Preference events
	PreferenceEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prefs_events_total",
			Help: "Total number of preference history events",
		},
		[]string{"action"}, // "viewed", "liked", "updated"
	)
)

// RecordAPIRequest records one completed API request.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordTraining records a model training run.
func RecordTraining(err error, duration time.Duration, events int) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	TrainingRunsTotal.WithLabelValues(outcome).Inc()
	TrainingDuration.Observe(duration.Seconds())
	if err == nil {
		RatingEvents.Set(float64(events))
	}
}
