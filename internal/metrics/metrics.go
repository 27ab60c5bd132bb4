package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "freshlaundry"

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Current number of HTTP requests being processed",
		},
	)
)

// Business metrics
var (
	QuotesCalculated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quotes_calculated_total",
			Help:      "Total number of instant estimates computed",
		},
		[]string{"flow"}, // "quote" or "pickup"
	)

	PickupsScheduled = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pickups_scheduled_total",
			Help:      "Total number of pickups scheduled through the modal",
		},
	)

	ContactMessages = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contact_messages_total",
			Help:      "Total number of contact form submissions accepted",
		},
	)

	FormValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "form_validation_failures_total",
			Help:      "Field validation failures observed on form input",
		},
		[]string{"field"},
	)

	ModalOpens = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "modal_opens_total",
			Help:      "Times a modal workflow was opened",
		},
		[]string{"flow"},
	)
)
