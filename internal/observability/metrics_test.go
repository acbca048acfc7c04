package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsHandlerExposesPrometheusMetrics(t *testing.T) {
	metrics := NewMetrics()
	metrics.ObserveQuery("select", time.Millisecond, nil)

	rr := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "consignly_db_queries_total")
	assert.Contains(t, rr.Body.String(), "go_goroutines")
}

func TestMetricsMiddlewareRecordsRequest(t *testing.T) {
	metrics := NewMetrics()

	handler := metrics.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	routeCtx := chi.NewRouteContext()
	routeCtx.RoutePatterns = append(routeCtx.RoutePatterns, "/test")

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusTeapot, rr.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.requestsTotal.WithLabelValues("/test", "418")))

	metricsRR := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(metricsRR, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.True(t, strings.Contains(metricsRR.Body.String(), `consignly_http_request_duration_seconds_bucket{route="/test"`))
}

func TestObserveQuerySplitsOutcome(t *testing.T) {
	metrics := NewMetrics()

	metrics.ObserveQuery("insert products", 2*time.Millisecond, nil)
	metrics.ObserveQuery("insert products", 3*time.Millisecond, errors.New("boom"))
	metrics.ObserveQuery("insert products", time.Millisecond, nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.queriesTotal.WithLabelValues("insert products", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.queriesTotal.WithLabelValues("insert products", "error")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var metrics *Metrics

	metrics.ObserveQuery("select", time.Millisecond, nil)

	rr := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestTrackPoolReadsAtScrape(t *testing.T) {
	metrics := NewMetrics()
	acquired := int32(1)
	metrics.TrackPool(func() (int32, int32, int32) { return 4, 4 - acquired, acquired })

	acquired = 3
	rr := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rr.Body.String()
	assert.Contains(t, body, `consignly_db_pool_connections{state="acquired"} 3`)
	assert.Contains(t, body, `consignly_db_pool_connections{state="idle"} 1`)
	assert.Contains(t, body, `consignly_db_pool_connections{state="total"} 4`)

	var nilMetrics *Metrics
	nilMetrics.TrackPool(func() (int32, int32, int32) { return 0, 0, 0 })
}
