// Package metrics defines and registers all custom Prometheus metrics for the
// learning platform API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "learning"

// ── Identity & auth ───────────────────────────────────────────────────────────

// UsersRegisteredTotal counts created accounts.
// Label:
//   - role: ADMIN, TEACHER or STUDENT
var UsersRegisteredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of user accounts registered, by role.",
	},
	[]string{"role"},
)

// AuthAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "inactive", "not_found" or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// PasscodesTotal counts recovery passcode operations.
// Labels:
//   - op: "issued" or "redeemed"
//   - result: "success" or "rejected"
var PasscodesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "passcodes_total",
		Help:      "Total number of recovery passcodes issued and redeemed.",
	},
	[]string{"op", "result"},
)

// ── Catalog, scheduling, ledger ───────────────────────────────────────────────

// CoursesCreatedTotal counts new catalog entries.
// Label:
//   - category: the course category (e.g. "MATH")
var CoursesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "courses_created_total",
		Help:      "Total number of courses created, by category.",
	},
	[]string{"category"},
)

// ClassesScheduledTotal counts scheduled sessions.
var ClassesScheduledTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "classes_scheduled_total",
		Help:      "Total number of class sessions scheduled.",
	},
)

// EnrollmentsTotal counts enrollment attempts.
// Label:
//   - result: "created", "duplicate", "rejected" or "error"
var EnrollmentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "enrollments_total",
		Help:      "Total number of enrollment attempts, by result.",
	},
	[]string{"result"},
)

// ── Notifications ─────────────────────────────────────────────────────────────

// NotificationsTotal counts delivery outcomes.
// Labels:
//   - channel: delivery medium, currently "email"
//   - result: "sent", "failed" or "dropped"
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of outbound notifications, by channel and result.",
	},
	[]string{"channel", "result"},
)

// NotificationQueueDepth tracks messages waiting in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// NotificationDeliveryDuration measures how long a sender takes per message.
var NotificationDeliveryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_delivery_duration_seconds",
		Help:      "Duration of a single notification delivery attempt.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"channel"},
)
