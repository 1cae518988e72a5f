// Package metrics defines the service's Prometheus collectors.
package metrics

import (
	"errors"

	"parceldelivery/internal/core/application/usecases/commands"

	"github.com/prometheus/client_golang/prometheus"
)

// Reconciliation outcomes used as the "outcome" label.
const (
	OutcomeRecorded  = "recorded"
	OutcomeDuplicate = "duplicate"
	OutcomeNotPaid   = "not_paid"
	OutcomeNotFound  = "parcel_not_found"
	OutcomeFailed    = "failed"
)

type Metrics struct {
	Reconciliations *prometheus.CounterVec
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Reconciliations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_reconciliations_total",
				Help: "Payment reconciliation attempts by source and outcome",
			},
			[]string{"source", "outcome"},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
	}
	reg.MustRegister(m.Reconciliations, m.HTTPRequests, m.HTTPDuration)
	return m
}

// ObserveReconciliation counts one reconciliation attempt.
func (m *Metrics) ObserveReconciliation(source string, result commands.ReconcilePaymentResult, err error) {
	m.Reconciliations.WithLabelValues(source, ReconciliationOutcome(result, err)).Inc()
}

func ReconciliationOutcome(result commands.ReconcilePaymentResult, err error) string {
	switch {
	case err == nil && result.Duplicate:
		return OutcomeDuplicate
	case err == nil:
		return OutcomeRecorded
	case errors.Is(err, commands.ErrPaymentNotCompleted):
		return OutcomeNotPaid
	case errors.Is(err, commands.ErrParcelNotFound):
		return OutcomeNotFound
	default:
		return OutcomeFailed
	}
}
