package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics prometheus-коллекторы сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	BookingConflicts    prometheus.Counter
	SweepPromotions     prometheus.Counter
}

// New регистрирует и возвращает коллекторы
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		BookingConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "booking_conflicts_total",
			Help:        "Bookings rejected because the slot was already taken",
			ConstLabels: constLabels,
		}),

		SweepPromotions: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "autocomplete_sweep_promotions_total",
			Help:        "Appointments promoted to concluido by the background sweep",
			ConstLabels: constLabels,
		}),
	}
}
