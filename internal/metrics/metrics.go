package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Event pipeline metrics
	EventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contactsync_events_total",
			Help: "Total number of webhook events received",
		},
		[]string{"status"},
	)

	DuplicateEvents = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "contactsync_duplicate_events_total",
			Help: "Total number of events suppressed as redeliveries",
		},
	)

	// Reconciliation metrics
	AttributesReconciled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contactsync_attributes_reconciled_total",
			Help: "Total number of attribute values included in upsert payloads",
		},
		[]string{"attribute"},
	)

	PhoneConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "contactsync_phone_conflicts_total",
			Help: "Total number of phone numbers dropped because another contact owns them",
		},
	)

	// Contact store metrics
	StoreRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "contactsync_store_request_duration_seconds",
			Help:    "Duration of contact store API calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	StoreFetchErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "contactsync_store_fetch_errors_total",
			Help: "Total number of contact fetch failures degraded to empty state",
		},
	)

	StoreUpsertErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "contactsync_store_upsert_errors_total",
			Help: "Total number of failed contact upserts",
		},
	)

	// Dead letter queue metrics
	DLQWrites = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "contactsync_dlq_writes_total",
			Help: "Total number of failed events captured in the dead letter queue",
		},
	)
)
