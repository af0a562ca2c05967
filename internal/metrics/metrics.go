package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the BetterUS server
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Chat Metrics
	WSConnectionsActive prometheus.Gauge
	ChatMessagesTotal   prometheus.Counter
	ChatEventsTotal     prometheus.CounterVec

	// Business Metrics
	RegistrationsTotal     prometheus.CounterVec
	HelpRequestTransitions prometheus.CounterVec
	NotificationsQueued    prometheus.Counter
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "betterus_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "betterus_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "betterus_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		WSConnectionsActive: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "betterus_ws_connections_active",
				Help: "Currently connected chat websocket clients",
			},
		),
		ChatMessagesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "betterus_chat_messages_total",
				Help: "Total chat messages persisted",
			},
		),
		ChatEventsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "betterus_chat_events_total",
				Help: "Total websocket events processed by event name",
			},
			[]string{"event"},
		),

		RegistrationsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "betterus_registrations_total",
				Help: "Account registrations by role",
			},
			[]string{"role"},
		),
		HelpRequestTransitions: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "betterus_help_request_transitions_total",
				Help: "Help request status transitions by target status",
			},
			[]string{"to_status"},
		),
		NotificationsQueued: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "betterus_notifications_queued_total",
				Help: "Notifications enqueued to the Redis stream",
			},
		),
	}
}
