// Package metrics holds the prometheus instrumentation shared by the HTTP
// adapter.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the collectors the webhook server records into.
type Metrics struct {
	Requests  *prometheus.CounterVec
	Durations *prometheus.HistogramVec
	SMSAlerts prometheus.Counter
}

// New registers the collectors on a registry and returns them. Pass a fresh
// registry in tests to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dialplan_requests_total",
			Help: "Webhook requests handled, by route and status code.",
		}, []string{"route", "code"}),

		Durations: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dialplan_request_duration_seconds",
			Help:    "Webhook handling latency, by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),

		SMSAlerts: factory.NewCounter(prometheus.CounterOpts{
			Name: "dialplan_voicemail_alerts_total",
			Help: "Voicemail alert SMS messages dispatched.",
		}),
	}
}
