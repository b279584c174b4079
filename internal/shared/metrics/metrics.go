// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	StoreRequestDuration *prometheus.HistogramVec
	TicketsCreated       *prometheus.CounterVec
	PartialFailures      *prometheus.CounterVec
	AuditDelivered       *prometheus.CounterVec
	AuditDeadLettered    *prometheus.CounterVec
	HTTPRequests         *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
// Tests pass prometheus.NewRegistry() to avoid clashing with the default registry.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		StoreRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "frontdesk_store_request_duration_seconds",
			Help:    "Duration of record store calls by operation and response status",
			Buckets: prometheus.DefBuckets,
		}, []string{"op", "status"}),
		TicketsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "frontdesk_tickets_created_total",
			Help: "Total number of primary tickets created, by effective type",
		}, []string{"type"}),
		PartialFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "frontdesk_ticket_partial_failures_total",
			Help: "Secondary work that failed after the primary ticket was created, by step",
		}, []string{"step"}),
		AuditDelivered: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "frontdesk_audit_delivered_total",
			Help: "Audit events delivered, by sink",
		}, []string{"sink"}),
		AuditDeadLettered: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "frontdesk_audit_dead_lettered_total",
			Help: "Audit events dropped after exhausting retries, by sink",
		}, []string{"sink"}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "frontdesk_http_requests_total",
			Help: "HTTP requests served, by method, route and status",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "frontdesk_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// ObserveStoreRequest records one store call. status 0 means a transport error.
func (m *Metrics) ObserveStoreRequest(op string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.StoreRequestDuration.WithLabelValues(op, statusLabel(status)).Observe(elapsed.Seconds())
}

func (m *Metrics) IncTicketsCreated(ticketType string) {
	if m == nil {
		return
	}
	m.TicketsCreated.WithLabelValues(ticketType).Inc()
}

func (m *Metrics) IncPartialFailure(step string) {
	if m == nil {
		return
	}
	m.PartialFailures.WithLabelValues(step).Inc()
}

func (m *Metrics) IncAuditDelivered(sink string) {
	if m == nil {
		return
	}
	m.AuditDelivered.WithLabelValues(sink).Inc()
}

func (m *Metrics) IncAuditDeadLettered(sink string) {
	if m == nil {
		return
	}
	m.AuditDeadLettered.WithLabelValues(sink).Inc()
}

// ObserveHTTPRequest records a served request against its route template.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func statusLabel(status int) string {
	if status == 0 {
		return "error"
	}
	return strconv.Itoa(status)
}
