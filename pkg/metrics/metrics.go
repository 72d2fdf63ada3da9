// Package metrics registers the Prometheus collectors exposed on /metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	STKPushTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kivrims",
			Name:      "stk_push_total",
			Help:      "STK push initiations by outcome",
		},
		[]string{"outcome"},
	)

	CallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "kivrims",
			Name:      "mpesa_callbacks_total",
			Help:      "M-Pesa callbacks received",
		},
	)

	ContactMessagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kivrims",
			Name:      "contact_messages_total",
			Help:      "Contact form submissions by outcome",
		},
		[]string{"outcome"},
	)
)

// Outcome label values shared by the counters above.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

func init() {
	prometheus.MustRegister(STKPushTotal, CallbacksTotal, ContactMessagesTotal)
}
