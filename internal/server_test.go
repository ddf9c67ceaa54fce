package internal

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/vik-ma/local-lift-log-sub002/internal/calculator"
	"github.com/vik-ma/local-lift-log-sub002/internal/config"
	"github.com/vik-ma/local-lift-log-sub002/internal/presets"
	"github.com/vik-ma/local-lift-log-sub002/internal/sumcalc/units"
	"github.com/vik-ma/local-lift-log-sub002/internal/telemetry/metrics"

	"github.com/go-redis/redis_rate/v9"
	"github.com/go-redis/redismock/v8"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRateLimiter struct {
	allowed int
	calls   int
}

func (l *testRateLimiter) Allow(_ context.Context, _ string, _ redis_rate.Limit) (*redis_rate.Result, error) {
	l.calls++
	return &redis_rate.Result{Allowed: l.allowed, RetryAfter: time.Second}, nil
}

func newTestServer(t *testing.T, limiter *testRateLimiter) *Server {
	t.Helper()

	cfg := &config.Config{
		DefaultWeightUnit:              "kg",
		DefaultDistanceUnit:            "km",
		MultiplierIncrement:            1,
		EvaluateRateLimitAllowedPerMin: 10,
	}

	store, err := presets.NewSQLiteRepo(context.Background(), filepath.Join(t.TempDir(), "presets.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})
	_, err = presets.Seed(context.Background(), store, units.Weight, true)
	require.NoError(t, err)

	rdb, _ := redismock.NewClientMock()
	metricsManager := metrics.NewTestManager()

	return &Server{
		config:       cfg,
		redisClient:  rdb,
		rateLimiter:  limiter,
		presetsStore: store,
		calculatorService: calculator.NewService(
			calculator.NewRepo(nil),
			calculator.NewDraftStore(rdb, time.Minute),
			store,
			metricsManager,
		),
		metricsManager: metricsManager,
		versionInfo:    "test-version",
	}
}

func TestServer_routerSetup(t *testing.T) {
	limiter := &testRateLimiter{allowed: 1}
	server := newTestServer(t, limiter)

	router, err := server.routerSetup()
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/version", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "test-version", rr.Body.String())
	assert.Equal(t, "text/plain; charset=utf-8", rr.Header().Get("Content-Type"))

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("POST", "/calculator/evaluate", bytes.NewReader([]byte(`{"expression":"6*7"}`))))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"isValid":true,"result":42}`, rr.Body.String())
	assert.Equal(t, 1, limiter.calls)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/presets/weight", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"name":"Barbell"`)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/nothing-here", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	req := httptest.NewRequest("OPTIONS", "/calculator/aggregate", nil)
	req.Header.Set("Origin", "http://localhost:1420")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "http://localhost:1420", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_evaluateIsRateLimited(t *testing.T) {
	limiter := &testRateLimiter{allowed: 0}
	server := newTestServer(t, limiter)

	router, err := server.routerSetup()
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("POST", "/calculator/evaluate", bytes.NewReader([]byte(`{"expression":"1+1"}`))))
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(server.metricsManager.CounterRateLimitedRequests))

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("POST", "/calculator/aggregate", bytes.NewReader([]byte(`{"items":[],"group":"weight"}`))))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestServer_connStateMetrics(t *testing.T) {
	server := &Server{
		metricsManager: metrics.NewTestManager(),
	}

	server.connStateMetrics(nil, http.StateNew)
	server.connStateMetrics(nil, http.StateNew)
	server.connStateMetrics(nil, http.StateActive)
	server.connStateMetrics(nil, http.StateClosed)

	assert.Equal(t, 1.0, testutil.ToFloat64(server.metricsManager.GaugeRequests))
}
