package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetrics(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	m := NewHTTPMetrics(reg)

	m.Observe("/api/listings", http.MethodGet, 200, 5*time.Millisecond)
	m.Observe("/api/listings", http.MethodGet, 200, 7*time.Millisecond)
	m.Observe("/api/blogs", http.MethodPost, 400, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Requests.WithLabelValues("/api/listings", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("/api/blogs", "POST", "400")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.Duration))

	m.SetStoreUp(true)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreUp))
	m.SetStoreUp(false)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.StoreUp))
}

func TestHandler(t *testing.T) {
	reg := NewRegistry()
	m := NewHTTPMetrics(reg)
	m.Observe("/healthz", http.MethodGet, 200, time.Millisecond)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `realestate_http_requests_total{code="200",method="GET",route="/healthz"} 1`))
	assert.Contains(t, body, "go_goroutines")
}
