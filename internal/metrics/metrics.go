// Package metrics expone las métricas Prometheus de storegate: tráfico HTTP,
// decisiones de cada gate, lookups de tenant y el pool de Postgres.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcomes de un gate.
const (
	OutcomeAllow    = "allow"
	OutcomeReadOnly = "read_only"
	OutcomeDeny     = "deny"
	OutcomeError    = "error"
)

// Metrics agrupa los collectors sobre un registry propio.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpInflight        prometheus.Gauge
	gateDecisionsTotal  *prometheus.CounterVec
	tenantLookupsTotal  *prometheus.CounterVec
}

// New crea y registra las métricas. Incluye los collectors de proceso y Go runtime.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Requests procesadas por método, ruta y status",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Latencia de los requests HTTP",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		httpInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "Requests en vuelo",
		}),
		gateDecisionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storegate_gate_decisions_total",
			Help: "Decisiones por gate (resolver, claim, subscription, permission), resultado y motivo",
		}, []string{"gate", "outcome", "reason"}),
		tenantLookupsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storegate_tenant_lookups_total",
			Help: "Lookups de tenant por slug según resultado (found, not_found, error)",
		}, []string{"result"}),
	}
	m.registry.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.httpInflight,
		m.gateDecisionsTotal,
		m.tenantLookupsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry retorna el registry (tests y collectors extra).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler sirve /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Gate registra una decisión. Nil-safe para poder cablear gates sin métricas.
func (m *Metrics) Gate(gate, outcome, reason string) {
	if m == nil {
		return
	}
	m.gateDecisionsTotal.WithLabelValues(gate, outcome, reason).Inc()
}

// TenantLookup registra el resultado de un lookup por slug.
func (m *Metrics) TenantLookup(result string) {
	if m == nil {
		return
	}
	m.tenantLookupsTotal.WithLabelValues(result).Inc()
}

// RegisterPool agrega gauges del pgxpool.
func (m *Metrics) RegisterPool(pool func() *pgxpool.Pool) error {
	return m.registry.Register(newPoolCollector(pool))
}

// Middleware instrumenta requests. El label route es el patrón chi
// ("/brands/{id}") para no explotar cardinalidad con ids.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method := strings.ToUpper(r.Method)
		m.httpInflight.Inc()
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}

		defer func() {
			m.httpInflight.Dec()
			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					route = p
				}
			}
			status := rec.status
			if status == 0 {
				status = http.StatusOK
			}
			m.httpRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		}()

		next.ServeHTTP(rec, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

// poolCollector expone gauges del pool global.
type poolCollector struct {
	pool         func() *pgxpool.Pool
	acquiredDesc *prometheus.Desc
	idleDesc     *prometheus.Desc
	totalDesc    *prometheus.Desc
}

func newPoolCollector(pool func() *pgxpool.Pool) *poolCollector {
	return &poolCollector{
		pool:         pool,
		acquiredDesc: prometheus.NewDesc("pg_pool_acquired", "Conexiones adquiridas", nil, nil),
		idleDesc:     prometheus.NewDesc("pg_pool_idle", "Conexiones inactivas", nil, nil),
		totalDesc:    prometheus.NewDesc("pg_pool_total", "Conexiones totales", nil, nil),
	}
}

func (c *poolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.acquiredDesc
	ch <- c.idleDesc
	ch <- c.totalDesc
}

func (c *poolCollector) Collect(ch chan<- prometheus.Metric) {
	if c.pool == nil {
		return
	}
	p := c.pool()
	if p == nil {
		return
	}
	stat := p.Stat()
	ch <- prometheus.MustNewConstMetric(c.acquiredDesc, prometheus.GaugeValue, float64(stat.AcquiredConns()))
	ch <- prometheus.MustNewConstMetric(c.idleDesc, prometheus.GaugeValue, float64(stat.IdleConns()))
	ch <- prometheus.MustNewConstMetric(c.totalDesc, prometheus.GaugeValue, float64(stat.TotalConns()))
}
