package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "landing_booking"

// Metrics набор prometheus-метрик сервиса
// Все методы безопасны для nil-получателя: при выключенных метриках передаем nil
type Metrics struct {
	service string

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbQueryErrors   *prometheus.CounterVec
	dbConnections   *prometheus.GaugeVec

	visitsStarted       *prometheus.CounterVec
	appointmentsCreated *prometheus.CounterVec
	slotConflicts       *prometheus.CounterVec
	identityLookups     *prometheus.CounterVec
	ipDiscovery         *prometheus.CounterVec
	eventsPublished     *prometheus.CounterVec
}

// New регистрирует метрики в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry регистрирует метрики в переданном реестре (для тестов)
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		service: serviceName,
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests by route and status",
		}, []string{"service", "method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"service", "method", "route"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "db",
			Name:      "query_duration_seconds",
			Help:      "Database query latency",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"service", "operation"}),
		dbQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "db",
			Name:      "query_errors_total",
			Help:      "Failed database queries",
		}, []string{"service", "operation"}),
		dbConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "db",
			Name:      "connections",
			Help:      "Connection pool state",
		}, []string{"service", "state"}),
		visitsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "visits_started_total",
			Help:      "Visits started, by whether identity was resolved",
		}, []string{"service", "identity"}),
		appointmentsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "appointments_created_total",
			Help:      "Appointments inserted",
		}, []string{"service"}),
		slotConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "slot_conflicts_total",
			Help:      "Submissions rejected because the slot or day was already taken",
		}, []string{"service", "stage"}),
		identityLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "identity",
			Name:      "lookups_total",
			Help:      "Identity lookups by source and result",
		}, []string{"service", "source", "result"}),
		ipDiscovery: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "identity",
			Name:      "ip_discovery_total",
			Help:      "IP discovery attempts by provider and result",
		}, []string{"service", "provider", "result"}),
		eventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "published_total",
			Help:      "Events published to the broker",
		}, []string{"service", "event_type", "result"}),
	}

	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueryDuration,
		m.dbQueryErrors,
		m.dbConnections,
		m.visitsStarted,
		m.appointmentsCreated,
		m.slotConflicts,
		m.identityLookups,
		m.ipDiscovery,
		m.eventsPublished,
	)
	return m
}

func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(m.service, method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(m.service, method, route).Observe(duration.Seconds())
}

func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(m.service, operation).Observe(duration.Seconds())
	if err != nil {
		m.dbQueryErrors.WithLabelValues(m.service, operation).Inc()
	}
}

func (m *Metrics) SetDBConnections(open, inUse, idle int) {
	if m == nil {
		return
	}
	m.dbConnections.WithLabelValues(m.service, "open").Set(float64(open))
	m.dbConnections.WithLabelValues(m.service, "in_use").Set(float64(inUse))
	m.dbConnections.WithLabelValues(m.service, "idle").Set(float64(idle))
}

func (m *Metrics) IncVisitStarted(identityFound bool) {
	if m == nil {
		return
	}
	m.visitsStarted.WithLabelValues(m.service, strconv.FormatBool(identityFound)).Inc()
}

func (m *Metrics) IncAppointmentCreated() {
	if m == nil {
		return
	}
	m.appointmentsCreated.WithLabelValues(m.service).Inc()
}

// IncSlotConflict stage: "snapshot" или "storage"
func (m *Metrics) IncSlotConflict(stage string) {
	if m == nil {
		return
	}
	m.slotConflicts.WithLabelValues(m.service, stage).Inc()
}

// ObserveIdentityLookup result: "match", "miss" или "error"
func (m *Metrics) ObserveIdentityLookup(source, result string) {
	if m == nil {
		return
	}
	m.identityLookups.WithLabelValues(m.service, source, result).Inc()
}

func (m *Metrics) ObserveIPDiscovery(provider, result string) {
	if m == nil {
		return
	}
	m.ipDiscovery.WithLabelValues(m.service, provider, result).Inc()
}

func (m *Metrics) ObserveEventPublished(eventType string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.eventsPublished.WithLabelValues(m.service, eventType, result).Inc()
}
