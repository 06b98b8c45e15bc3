// Reelgraph - Social Network for Movies and TV Tracking
// Copyright 2026 Reelgraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

// Package metrics provides Prometheus instrumentation for the HTTP API, the
// follow-request lifecycle, and the expiry sweeper.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
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
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	// Follow lifecycle metrics
	FollowRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "follow_requests_total",
			Help: "Follow request creation attempts by result",
		},
		[]string{"result"}, // "created", "denied"
	)

	FollowResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "follow_resolutions_total",
			Help: "Follow request resolutions by outcome",
		},
		[]string{"outcome"}, // "accepted", "rejected"
	)

	// Sweeper metrics
	SweepRunsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sweep_runs_total",
			Help: "Total number of expiry sweeper runs",
		},
	)

	SweepDeletionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sweep_deletions_total",
			Help: "Total number of stale rejected requests deleted by the sweeper",
		},
	)

	// Media metadata client metrics
	MediaLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_lookups_total",
			Help: "Media metadata provider lookups by result",
		},
		[]string{"result"}, // "ok", "error", "breaker_open"
	)
)

// RecordAPIRequest records an API request with its duration.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(start bool) {
	if start {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordFollowRequest counts a follow request attempt ("created" or "denied").
func RecordFollowRequest(result string) {
	FollowRequestsTotal.WithLabelValues(result).Inc()
}

// RecordFollowResolution counts a request resolution ("accepted" or "rejected").
func RecordFollowResolution(outcome string) {
	FollowResolutionsTotal.WithLabelValues(outcome).Inc()
}

// RecordSweep records one sweeper run and its deletion count.
func RecordSweep(deleted int) {
	SweepRunsTotal.Inc()
	SweepDeletionsTotal.Add(float64(deleted))
}

// RecordMediaLookup counts a metadata provider lookup by result.
func RecordMediaLookup(result string) {
	MediaLookupsTotal.WithLabelValues(result).Inc()
}
