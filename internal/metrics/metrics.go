package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "afroboost_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "afroboost_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ReservationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "afroboost_reservations_total",
			Help: "Total number of persisted reservations",
		},
		[]string{"path"},
	)

	BookingFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "afroboost_booking_failures_total",
			Help: "Total number of booking attempts rejected before persistence",
		},
		[]string{"reason"},
	)

	DiscountValidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "afroboost_discount_validations_total",
			Help: "Total number of discount code validation calls",
		},
		[]string{"result"},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "afroboost_notifications_total",
			Help: "Total number of outbound notification attempts",
		},
		[]string{"target", "status"},
	)

	NotificationQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "afroboost_notification_queue_length",
			Help: "Current length of the notification queue",
		},
	)

	PaymentRedirectsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "afroboost_payment_redirects_total",
			Help: "Total number of payment link redirects opened",
		},
		[]string{"channel"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordReservation(path string) {
	ReservationsTotal.WithLabelValues(path).Inc()
}

func RecordBookingFailure(reason string) {
	BookingFailuresTotal.WithLabelValues(reason).Inc()
}

func RecordDiscountValidation(result string) {
	DiscountValidationsTotal.WithLabelValues(result).Inc()
}

func RecordNotification(target, status string) {
	NotificationsTotal.WithLabelValues(target, status).Inc()
}

func RecordPaymentRedirect(channel string) {
	PaymentRedirectsTotal.WithLabelValues(channel).Inc()
}
