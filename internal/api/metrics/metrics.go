// Package metrics defines the custom Prometheus metrics for the inventory
// API. It is the single source of truth for metric names, labels, and help
// strings. Metrics register with the default registry at import time via
// promauto; the echoprometheus handler exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "inventory"

// ── Authentication metrics ────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok", "invalid_credentials", "inactive", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "ok", "duplicate", "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, labelled by result.",
	},
	[]string{"result"},
)

// TokenValidationsTotal counts token validations performed by the identity
// middleware.
// Label:
//   - result: "ok" or "invalid" (all failure modes are collapsed)
var TokenValidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_validations_total",
		Help:      "Total number of identity token validations, labelled by result.",
	},
	[]string{"result"},
)

// ── Last-access pipeline metrics ──────────────────────────────────────────────

// LastAccessQueueDepth tracks the number of pending last-access writes per
// recorder worker.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var LastAccessQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_access_queue_depth",
		Help:      "Current number of last-access updates pending per recorder worker.",
	},
	[]string{"worker_id"},
)

// LastAccessDroppedTotal counts last-access updates dropped because a worker
// channel was full.
var LastAccessDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "last_access_dropped_total",
		Help:      "Total number of last-access updates dropped under backpressure.",
	},
)

// ── Stock metrics ─────────────────────────────────────────────────────────────

// MovementsTotal counts applied stock movements.
// Label:
//   - type: "in" or "out"
var MovementsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "movements_total",
		Help:      "Total number of stock movements applied, by movement type.",
	},
	[]string{"type"},
)
