package pushover

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics stores Prometheus collectors for delivery outcomes. Pass it in
// Config to instrument a Client; a nil Metrics disables instrumentation.
type Metrics struct {
	sentTotal    *prometheus.CounterVec
	failedTotal  *prometheus.CounterVec
	sendDuration *prometheus.HistogramVec
}

// NewMetrics builds the collectors and registers them on the given
// registerer, so callers can attach them to their own registry.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		sentTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pushover",
				Name:      "messages_sent_total",
				Help:      "Total number of messages accepted by the API, by priority.",
			},
			[]string{"priority"},
		),
		failedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pushover",
				Name:      "messages_failed_total",
				Help:      "Total number of failed deliveries, by priority and failure reason.",
			},
			[]string{"priority", "reason"},
		),
		sendDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "pushover",
				Name:      "send_duration_seconds",
				Help:      "Duration of individual message API calls, by priority.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"priority"},
		),
	}

	if registerer != nil {
		registerer.MustRegister(m.sentTotal, m.failedTotal, m.sendDuration)
	}

	return m
}

func (m *Metrics) incSent(priority Priority) {
	if m == nil {
		return
	}
	m.sentTotal.WithLabelValues(priority.String()).Inc()
}

func (m *Metrics) incFailed(priority Priority, reason string) {
	if m == nil {
		return
	}
	m.failedTotal.WithLabelValues(priority.String(), reason).Inc()
}

func (m *Metrics) observeSendDuration(priority Priority, d time.Duration) {
	if m == nil {
		return
	}
	m.sendDuration.WithLabelValues(priority.String()).Observe(d.Seconds())
}

func failureReason(err error) string {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return "service"
	}

	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return "decode"
	}

	return "transport"
}
