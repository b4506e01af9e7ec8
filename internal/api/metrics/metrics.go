// Package metrics defines and registers all custom Prometheus metrics for
// the e-commerce API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ecommerce"

// AuthEventsTotal counts authentication outcomes.
// Label:
//   - kind: "registered", "login_succeeded", "login_failed",
//     "login_deactivated", or "login_throttled"
var AuthEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_events_total",
		Help:      "Total number of authentication events, by kind.",
	},
	[]string{"kind"},
)

// GuardRejectionsTotal counts requests rejected by the access guard.
// Label:
//   - code: machine-readable rejection code (e.g. "NO_TOKEN", "INVALID_TOKEN",
//     "USER_NOT_FOUND", "ACCOUNT_DEACTIVATED", "INSUFFICIENT_PERMISSIONS")
var GuardRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_rejections_total",
		Help:      "Total number of requests rejected by the access guard, by code.",
	},
	[]string{"code"},
)

// AuditQueueDepth tracks the number of audit events waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
