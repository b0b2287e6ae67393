package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "labo_http_requests_total",
			Help: "Total HTTP requests by method, path and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "labo_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	EventsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "labo_events_created_total",
			Help: "Events created, by discipline",
		},
		[]string{"discipline"},
	)

	StateTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "labo_event_state_transitions_total",
			Help: "Event state transitions, by target state",
		},
		[]string{"to_state"},
	)

	PendingProposals = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "labo_pending_slot_proposals",
			Help: "Reschedule proposals currently awaiting approval",
		},
	)

	DocumentUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "labo_document_uploads_total",
			Help: "Document uploads, by outcome",
		},
		[]string{"outcome"},
	)
)
