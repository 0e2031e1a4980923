package telemetry

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewLedgerMetrics(reg)

	m.ObserveCreate(OutcomeCreated, 10*time.Millisecond)
	m.ObserveCreate(OutcomeReplayed, time.Millisecond)
	m.ObserveCreate(OutcomeReplayed, time.Millisecond)
	m.ObserveLockWait(time.Millisecond)
	m.ObserveBooks(3)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.TransactionsTotal.WithLabelValues(OutcomeCreated)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.TransactionsTotal.WithLabelValues(OutcomeReplayed)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.TransactionsTotal.WithLabelValues(OutcomeConflictRecovered)))
	assert.Equal(t, 3, testutil.CollectAndCount(m.CreateDuration)+testutil.CollectAndCount(m.LockWaitDuration)+testutil.CollectAndCount(m.BooksPerTx))
}

func TestLedgerMetrics_NilIsNoop(t *testing.T) {
	var m *LedgerMetrics
	assert.NotPanics(t, func() {
		m.ObserveCreate(OutcomeFailed, time.Second)
		m.ObserveLockWait(time.Second)
		m.ObserveBooks(1)
	})

	var h *HTTPMetrics
	assert.NotPanics(t, func() {
		h.ObserveRequest("GET", "/health", "200", time.Second)
	})
}

func TestHandler_ExposesRegisteredMetrics(t *testing.T) {
	reg := NewRegistry()
	h := NewHTTPMetrics(reg)
	h.ObserveRequest("POST", "/api/v1/ledger/transactions", "201", 5*time.Millisecond)

	w := httptest.NewRecorder()
	Handler(reg).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `bookstore_http_requests_total{method="POST",route="/api/v1/ledger/transactions",status="201"} 1`)
	assert.Contains(t, body, "go_goroutines")
}
