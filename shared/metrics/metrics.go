// Package metrics holds the Prometheus collectors of the service. They are
// registered on the default registry at import time and exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "venus"

// StorageOperationsTotal counts bucket reads and writes.
// Labels: driver, operation (get/put/delete), result (ok/error).
var StorageOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "storage_operations_total",
		Help:      "Total number of bucket operations against the storage driver.",
	},
	[]string{"driver", "operation", "result"},
)

var StorageOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "storage_operation_duration_seconds",
		Help:      "Duration of bucket operations against the storage driver.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"driver", "operation"},
)

// LoginAttemptsTotal counts logins by result (success/invalid_credentials/error).
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

var ActiveSessions = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_sessions",
		Help:      "Sessions alive after the last session write.",
	},
)

// ReservationTransitionsTotal counts applied and rejected status changes.
var ReservationTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reservation_transitions_total",
		Help:      "Total number of reservation status changes, by source, target and result.",
	},
	[]string{"from", "to", "result"},
)

var ReservationsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reservations_created_total",
		Help:      "Total number of reservations created through the booking flow.",
	},
)

var EventsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_published_total",
		Help:      "Total number of domain events published, by kind and sink result.",
	},
	[]string{"kind", "result"},
)

var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests, by route pattern, method and status code.",
	},
	[]string{"route", "method", "code"},
)

var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests, by route pattern and method.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"route", "method"},
)
