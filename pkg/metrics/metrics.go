package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор Prometheus метрик сервиса
// Все методы безопасны для nil-получателя: при выключенных метриках ничего не делают
type Metrics struct {
	registry    *prometheus.Registry
	serviceName string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBQueryErrors      *prometheus.CounterVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec

	ReservationsConfirmed *prometheus.CounterVec
	PenaltiesApplied      *prometheus.CounterVec
	PromotionRedemptions  *prometheus.CounterVec
}

// New создает и регистрирует метрики в собственном реестре
func New(serviceName string) *Metrics {
	m := &Metrics{
		registry:    prometheus.NewRegistry(),
		serviceName: serviceName,

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),

		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of failed database queries",
		}, []string{"service", "operation"}),

		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established database connections",
		}, []string{"service"}),

		DBInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of database connections currently in use",
		}, []string{"service"}),

		DBIdleConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle database connections",
		}, []string{"service"}),

		ReservationsConfirmed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reservations_confirmed_total",
			Help: "Total number of priced and confirmed reservations",
		}, []string{"service", "promotion_applied"}),

		PenaltiesApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "penalties_applied_total",
			Help: "Total number of penalties charged to reservations",
		}, []string{"service", "event_type"}),

		PromotionRedemptions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "promotion_redemptions_total",
			Help: "Total number of promotion usages claimed",
		}, []string{"service"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.ReservationsConfirmed,
		m.PenaltiesApplied,
		m.PromotionRedemptions,
	)

	return m
}

// Handler возвращает HTTP handler для эндпоинта /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry возвращает реестр метрик
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveReservationConfirmed учитывает подтвержденное бронирование
func (m *Metrics) ObserveReservationConfirmed(promotionApplied bool) {
	if m == nil {
		return
	}
	applied := "false"
	if promotionApplied {
		applied = "true"
		m.PromotionRedemptions.WithLabelValues(m.serviceName).Inc()
	}
	m.ReservationsConfirmed.WithLabelValues(m.serviceName, applied).Inc()
}

// ObservePenaltyApplied учитывает начисленный штраф
func (m *Metrics) ObservePenaltyApplied(eventType string) {
	if m == nil {
		return
	}
	m.PenaltiesApplied.WithLabelValues(m.serviceName, eventType).Inc()
}
