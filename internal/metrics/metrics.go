package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymplify_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gymplify_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	SessionsBookedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymplify_sessions_booked_total",
			Help: "Total number of gym sessions booked",
		},
		[]string{"time_slot", "workout_type"},
	)

	SessionRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymplify_session_rejections_total",
			Help: "Total number of rejected session bookings",
		},
		[]string{"reason"},
	)

	SessionsCompletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymplify_sessions_completed_total",
			Help: "Total number of sessions marked completed",
		},
	)

	SubscriptionsExpiredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymplify_subscriptions_expired_total",
			Help: "Total number of subscriptions flipped to expired by reconciliation",
		},
	)

	AttendanceScansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymplify_attendance_scans_total",
			Help: "Total number of QR attendance scans",
		},
		[]string{"action"},
	)

	NotificationsQueuedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymplify_notifications_queued_total",
			Help: "Total number of notifications queued",
		},
		[]string{"type", "status"},
	)

	NotificationQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gymplify_notification_queue_length",
			Help: "Current length of the notification queue",
		},
	)

	SubscriptionRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymplify_subscription_requests_total",
			Help: "Total number of subscription requests by decision",
		},
		[]string{"decision"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordSessionBooked(timeSlot, workoutType string) {
	SessionsBookedTotal.WithLabelValues(timeSlot, workoutType).Inc()
}

func RecordSessionRejection(reason string) {
	SessionRejectionsTotal.WithLabelValues(reason).Inc()
}

func RecordSessionCompleted() {
	SessionsCompletedTotal.Inc()
}

func RecordSubscriptionExpired() {
	SubscriptionsExpiredTotal.Inc()
}

func RecordAttendanceScan(action string) {
	AttendanceScansTotal.WithLabelValues(action).Inc()
}

func RecordNotification(notificationType, status string) {
	NotificationsQueuedTotal.WithLabelValues(notificationType, status).Inc()
}

func RecordSubscriptionRequest(decision string) {
	SubscriptionRequestsTotal.WithLabelValues(decision).Inc()
}
