// Package metrics содержит Prometheus метрики сервиса
package metrics

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор метрик сервиса.
// Все методы безопасны для nil-получателя: при выключенных метриках передается nil.
type Metrics struct {
	registerer prometheus.Registerer

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	BookingsCreated     prometheus.Counter
	BookingConflicts    prometheus.Counter
	StatusTransitions   *prometheus.CounterVec
	CacheInvalidations  *prometheus.CounterVec
}

// New регистрирует метрики в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry регистрирует метрики в переданном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		registerer: reg,
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		BookingsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "test_drive_bookings_created_total",
			Help:      "Total number of created test-drive bookings",
		}),
		BookingConflicts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "test_drive_booking_conflicts_total",
			Help:      "Total number of rejected reservations because the slot was taken",
		}),
		StatusTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "test_drive_status_transitions_total",
			Help:      "Booking status transitions",
		}, []string{"from", "to"}),
		CacheInvalidations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "cache_invalidations_total",
			Help:      "Cache invalidation signals sent after booking mutations",
		}, []string{"result"}),
	}
}

// RegisterDB добавляет коллектор статистики пула соединений
func (m *Metrics) RegisterDB(db *sql.DB, dbName string) {
	if m == nil {
		return
	}
	m.registerer.MustRegister(collectors.NewDBStatsCollector(db, dbName))
}

// ObserveHTTP фиксирует один HTTP запрос
func (m *Metrics) ObserveHTTP(method, path, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(seconds)
}

// IncBookingsCreated увеличивает счетчик созданных бронирований
func (m *Metrics) IncBookingsCreated() {
	if m == nil {
		return
	}
	m.BookingsCreated.Inc()
}

// IncBookingConflicts увеличивает счетчик конфликтов слотов
func (m *Metrics) IncBookingConflicts() {
	if m == nil {
		return
	}
	m.BookingConflicts.Inc()
}

// IncStatusTransition фиксирует переход статуса
func (m *Metrics) IncStatusTransition(from, to string) {
	if m == nil {
		return
	}
	m.StatusTransitions.WithLabelValues(from, to).Inc()
}

// IncCacheInvalidation фиксирует результат инвалидации (ok / error)
func (m *Metrics) IncCacheInvalidation(result string) {
	if m == nil {
		return
	}
	m.CacheInvalidations.WithLabelValues(result).Inc()
}
