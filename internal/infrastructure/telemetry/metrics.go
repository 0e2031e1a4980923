package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcomes of a create_transaction call
const (
	OutcomeCreated           = "created"
	OutcomeReplayed          = "replayed"
	OutcomeConflictRecovered = "conflict_recovered"
	OutcomeFailed            = "failed"
)

// NewRegistry returns a registry with the Go runtime and process collectors attached.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Handler exposes reg in the Prometheus text format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// LedgerMetrics records transaction creation outcomes and latencies.
// A nil *LedgerMetrics is valid and records nothing.
type LedgerMetrics struct {
	TransactionsTotal *prometheus.CounterVec
	CreateDuration    prometheus.Histogram
	LockWaitDuration  prometheus.Histogram
	BooksPerTx        prometheus.Histogram
}

// NewLedgerMetrics registers the ledger metrics on reg.
func NewLedgerMetrics(reg prometheus.Registerer) *LedgerMetrics {
	factory := promauto.With(reg)
	return &LedgerMetrics{
		TransactionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bookstore_ledger_transactions_total",
			Help: "create_transaction calls by outcome",
		}, []string{"outcome"}),
		CreateDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "bookstore_ledger_create_duration_seconds",
			Help:    "Duration of create_transaction including lock wait",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		LockWaitDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "bookstore_ledger_lock_wait_seconds",
			Help:    "Time spent waiting for the per-hash lock",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
		BooksPerTx: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "bookstore_ledger_books_per_transaction",
			Help:    "Number of book entries in created transactions",
			Buckets: prometheus.ExponentialBuckets(1, 2, 8),
		}),
	}
}

// ObserveCreate records a create_transaction outcome and its duration.
func (m *LedgerMetrics) ObserveCreate(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.TransactionsTotal.WithLabelValues(outcome).Inc()
	m.CreateDuration.Observe(d.Seconds())
}

// ObserveLockWait records how long a caller waited for the hash lock.
func (m *LedgerMetrics) ObserveLockWait(d time.Duration) {
	if m != nil {
		m.LockWaitDuration.Observe(d.Seconds())
	}
}

// ObserveBooks records the size of a newly created transaction.
func (m *LedgerMetrics) ObserveBooks(n int) {
	if m != nil {
		m.BooksPerTx.Observe(float64(n))
	}
}

// HTTPMetrics records request counts and latencies per route.
type HTTPMetrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// NewHTTPMetrics registers the HTTP metrics on reg.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	factory := promauto.With(reg)
	return &HTTPMetrics{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bookstore_http_requests_total",
			Help: "HTTP requests by method, route and status code",
		}, []string{"method", "route", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bookstore_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// ObserveRequest records one finished request.
func (m *HTTPMetrics) ObserveRequest(method, route, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, route, status).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
