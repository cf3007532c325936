// Package metrics defines and registers all custom Prometheus metrics for the
// marketplace API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry through promauto
// when the package is first imported.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// ── Session metrics ───────────────────────────────────────────────────────────

// AuthRejectionsTotal counts requests refused by the session verifier or the
// role guard.
// Label:
//   - reason: the rejection reason (e.g. "no_token", "stale_session", "role_not_permitted")
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by authentication or authorization.",
	},
	[]string{"reason"},
)

// ── Job metrics ───────────────────────────────────────────────────────────────

// JobsCreatedTotal counts newly posted jobs.
// Label:
//   - category: the job category as submitted
var JobsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "jobs_created_total",
		Help:      "Total number of jobs created, by category.",
	},
	[]string{"category"},
)

// ── Proposal metrics ──────────────────────────────────────────────────────────

// ProposalsCreatedTotal counts proposals accepted into the pending state.
var ProposalsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "proposals_created_total",
		Help:      "Total number of proposals submitted.",
	},
)

// ProposalStatusTransitionsTotal counts applied status changes.
// Labels:
//   - from: the previous status
//   - to: the new status
var ProposalStatusTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "proposal_status_transitions_total",
		Help:      "Total number of proposal status transitions, by from/to status.",
	},
	[]string{"from", "to"},
)

// ── Audit pipeline metrics ────────────────────────────────────────────────────

// AuditQueueDepth tracks the number of audit events waiting in each worker channel.
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

// AuditEventsTotal counts audit events by outcome.
// Label:
//   - result: "written", "failed" or "dropped"
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of proposal audit events, labelled by outcome.",
	},
	[]string{"result"},
)

// AuditWriteDuration measures how long a single audit write takes.
var AuditWriteDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "audit_write_duration_seconds",
		Help:      "Duration of a proposal audit write from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
)
