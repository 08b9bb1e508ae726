package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventpasal_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "code", "method"},
	)

	DBTxDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "eventpasal_db_tx_seconds",
			Help:    "Duration of DB transactions",
			Buckets: prometheus.DefBuckets,
		},
	)

	PaymentCompletionLag = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "eventpasal_payment_completion_seconds",
			Help:    "Time from payment initiation to completion",
			Buckets: prometheus.DefBuckets,
		},
	)

	RegistrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventpasal_registrations_total",
			Help: "Total event registrations by kind",
		},
		[]string{"kind"},
	)

	RabbitPublishRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "eventpasal_rabbit_publish_retries_total",
			Help: "Total rabbit publish retries",
		},
	)

	RateLimitExceeded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "eventpasal_rate_limit_exceeded_total",
			Help: "Total rate limited requests",
		},
	)

	FallbackReads = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "eventpasal_fallback_reads_total",
			Help: "Read requests served from the bundled fallback dataset",
		},
	)
)
