// Package metrics defines and registers all custom Prometheus metrics for the
// ModernDash dashboard service. It is the single source of truth for metric
// names, labels, and help strings.
//
// All collectors are registered with the default Prometheus registry on import.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "moderndash"

// ── Authentication metrics ───────────────────────────────────────────────────

// AuthAttemptsTotal counts authentication attempts.
// Label:
//   - result: "success", "invalid", "in_progress", "timeout" or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts, by result.",
	},
	[]string{"result"},
)

// AuthDuration measures how long an authentication attempt takes end-to-end,
// including the simulated directory delay.
var AuthDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "auth_duration_seconds",
		Help:      "Duration of authentication attempts.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

// ── Session metrics ──────────────────────────────────────────────────────────

// SessionRehydrationsTotal counts snapshot loads.
// Label:
//   - result: "restored", "absent", "discarded" (malformed snapshot) or "error"
var SessionRehydrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_rehydrations_total",
		Help:      "Total number of session snapshot rehydrations, by result.",
	},
	[]string{"result"},
)

// GuardDecisionsTotal counts route guard outcomes.
// Label:
//   - state: "pending", "authenticated" or "unauthenticated"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard decisions, by guard state.",
	},
	[]string{"state"},
)

// ── Login event metrics ──────────────────────────────────────────────────────

// LoginQueueDepth tracks the number of login events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index
var LoginQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "login_queue_depth",
		Help:      "Current number of login events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Database collaborator metrics ────────────────────────────────────────────

// DatabaseErrorsTotal counts failed calls to the external database.
// Label:
//   - operation: e.g. "list_users", "create_project"
var DatabaseErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "database_errors_total",
		Help:      "Total number of database collaborator failures, by operation.",
	},
	[]string{"operation"},
)

// ── Recorder ─────────────────────────────────────────────────────────────────

// Recorder feeds the collectors above. It satisfies ports.Metrics.
type Recorder struct{}

func NewRecorder() Recorder { return Recorder{} }

func (Recorder) AuthAttempt(result string, elapsed time.Duration) {
	AuthAttemptsTotal.WithLabelValues(result).Inc()
	AuthDuration.WithLabelValues(result).Observe(elapsed.Seconds())
}

func (Recorder) SessionRehydration(result string) {
	SessionRehydrationsTotal.WithLabelValues(result).Inc()
}

func (Recorder) DatabaseError(operation string) {
	DatabaseErrorsTotal.WithLabelValues(operation).Inc()
}

// GuardDecision counts one route guard outcome.
func GuardDecision(state string) {
	GuardDecisionsTotal.WithLabelValues(state).Inc()
}
