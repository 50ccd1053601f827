package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments the services record into. Built
// against an injected Registerer so tests can use a throwaway registry.
type Metrics struct {
	BookingsCreated      prometheus.Counter
	AllocationShortfalls prometheus.Counter
	StatusTransitions    *prometheus.CounterVec
	WebhookDeliveries    *prometheus.CounterVec
	RequestDuration      *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		BookingsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "nichehotel_bookings_created_total",
			Help: "Bookings successfully created.",
		}),
		AllocationShortfalls: factory.NewCounter(prometheus.CounterOpts{
			Name: "nichehotel_allocation_shortfalls_total",
			Help: "Bookings created with fewer rooms than requested.",
		}),
		StatusTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nichehotel_status_transitions_total",
			Help: "Booking status transitions by target status.",
		}, []string{"status"}),
		WebhookDeliveries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nichehotel_webhook_deliveries_total",
			Help: "Webhook delivery attempts by event and outcome.",
		}, []string{"event", "outcome"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "nichehotel_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}
