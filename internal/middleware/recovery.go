package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/habitflow/backend/internal/telemetry/metrics"
	"github.com/habitflow/backend/pkg"
)

// PanicRecovery turns a handler panic into a 500 JSON error, counts it and marks the request span as failed.
// http.ErrAbortHandler is re-raised so net/http can abort the response.
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				if err, ok := recovered.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(recovered)
				}

				routeName := "unknown"
				if route := mux.CurrentRoute(req); route != nil && route.GetName() != "" {
					routeName = route.GetName()
				}
				log.WithFields(log.Fields{
					"method": req.Method,
					"path":   req.URL.Path,
					"route":  routeName,
				}).Errorf("panic serving request: %v\n%s", recovered, debug.Stack())

				span := trace.SpanFromContext(req.Context())
				span.RecordError(fmt.Errorf("panic: %v", recovered))
				span.SetStatus(codes.Error, "panic")

				if metricsManager != nil {
					metricsManager.CounterHandleRequestPanic.Inc()
				}
				pkg.WriteError(w, "internal error", http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, req)
		})
	}
}
