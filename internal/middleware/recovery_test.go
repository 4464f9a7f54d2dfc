package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habitflow/backend/internal/telemetry/metrics"
	"github.com/habitflow/backend/pkg"
)

func Test_panicRecoveryMiddleware_nonPanic(t *testing.T) {
	metricsManager := metrics.NewTestManager()

	next := &panicRecTestHandler{}
	handler := PanicRecovery(metricsManager)(next)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/habits", nil))

	assert.True(t, next.called)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, float64(0), testutil.ToFloat64(metricsManager.CounterHandleRequestPanic))
}

func Test_panicRecoveryMiddleware_panic(t *testing.T) {
	metricsManager := metrics.NewTestManager()

	next := &panicRecTestHandler{panicWith: "nil completions map"}
	handler := PanicRecovery(metricsManager)(next)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPatch, "/api/habits/1/toggle", nil))

	assert.True(t, next.called)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	var resp pkg.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "internal error", resp.Message)
	assert.Equal(t, float64(1), testutil.ToFloat64(metricsManager.CounterHandleRequestPanic))
}

func Test_panicRecoveryMiddleware_abortHandler(t *testing.T) {
	metricsManager := metrics.NewTestManager()

	next := &panicRecTestHandler{panicWith: http.ErrAbortHandler}
	handler := PanicRecovery(metricsManager)(next)

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/habits", nil))
	})
	assert.Equal(t, float64(0), testutil.ToFloat64(metricsManager.CounterHandleRequestPanic))
}

func Test_panicRecoveryMiddleware_nilManager(t *testing.T) {
	handler := PanicRecovery(nil)(&panicRecTestHandler{panicWith: "boom"})

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

type panicRecTestHandler struct {
	panicWith any
	called    bool
}

func (p *panicRecTestHandler) ServeHTTP(http.ResponseWriter, *http.Request) {
	p.called = true
	if p.panicWith != nil {
		panic(p.panicWith)
	}
}
