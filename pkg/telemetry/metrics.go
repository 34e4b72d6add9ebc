package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Business and store metrics. The core exposes no HTTP listener; embedding
// applications may mount promhttp against the default registry themselves.
var (
	LoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rchat_logins_total",
			Help: "Total authentication attempts",
		},
		[]string{"result"}, // "ok", "invalid", "rate_limited"
	)

	AccountsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rchat_accounts_created_total",
			Help: "Total accounts created",
		},
	)

	MessagesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rchat_messages_sent_total",
			Help: "Total messages appended to conversations",
		},
		[]string{"sender"}, // "user" or "ai"
	)

	ReactionsToggled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rchat_reactions_toggled_total",
			Help: "Total reaction toggles applied",
		},
	)

	AIFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rchat_ai_fallbacks_total",
			Help: "Total AI responder failures absorbed into the fallback reply",
		},
	)

	AIRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rchat_ai_request_duration_seconds",
			Help:    "AI responder round-trip duration",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
		},
	)

	StoreWrites = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rchat_store_writes_total",
			Help: "Total synced writes to the key-value store",
		},
	)
)
