// Package metrics defines and registers all custom Prometheus metrics for
// the catalog API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default registry at package init; the router
// exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "catalog"

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials", "inactive", "no_roles", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts completed registrations.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of successfully registered users.",
	},
)

// AccessDecisionsTotal counts authorization decisions by outcome and route.
var AccessDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_decisions_total",
		Help:      "Total number of access decisions, labelled by decision and route.",
	},
	[]string{"decision", "route"},
)

// AuditDroppedTotal counts audit events dropped because the dispatcher
// channel was full.
var AuditDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_dropped_total",
		Help:      "Total number of audit events dropped under backpressure.",
	},
)

// ProductUpdatesTotal counts product updates by outcome.
// Label:
//   - result: "success", "not_found", "conflict", "error"
var ProductUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "product_updates_total",
		Help:      "Total number of product update attempts, labelled by result.",
	},
	[]string{"result"},
)

// ProductUpdateDuration measures the end-to-end duration of the
// transactional product update, including the image replacement.
var ProductUpdateDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "product_update_duration_seconds",
		Help:      "Duration of the transactional product update.",
		Buckets:   prometheus.DefBuckets,
	},
)
