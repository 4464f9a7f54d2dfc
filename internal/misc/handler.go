package misc

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/habitflow/backend/internal/datekey"
	"github.com/habitflow/backend/internal/telemetry/tracing"
	"github.com/habitflow/backend/pkg"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck is a named dependency probe, e.g. a database ping.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Message   string            `json:"message"`
	Checks    map[string]string `json:"checks,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

type Handler struct {
	quotesManager *QuotesManager
	clock         datekey.Clock
	versionInfo   string
	healthChecks  []HealthCheck
	now           func() time.Time
}

func NewHandler(
	quotesManager *QuotesManager,
	clock datekey.Clock,
	versionInfo string,
	healthChecks ...HealthCheck,
) *Handler {
	return &Handler{
		quotesManager: quotesManager,
		clock:         clock,
		versionInfo:   versionInfo,
		healthChecks:  healthChecks,
		now:           time.Now,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/api/quote/daily", handler.handleGetDailyQuote).Methods("GET", "OPTIONS").Name("quote-daily")
	mainRouter.HandleFunc("/api/quote/random", handler.handleGetRandomQuote).Methods("GET", "OPTIONS").Name("quote-random")
	mainRouter.HandleFunc("/api/health", handler.handleHealth).Methods("GET", "OPTIONS").Name("health")
	mainRouter.HandleFunc("/version", handler.handleGetVersionInfo).Methods("GET").Name("version")
}

func (handler *Handler) handleGetDailyQuote(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.quote.daily")
	defer span.End()

	pkg.WriteJSON(w, handler.quotesManager.DailyQuote(handler.clock.Today()), http.StatusOK)
}

func (handler *Handler) handleGetRandomQuote(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.quote.random")
	defer span.End()

	pkg.WriteJSON(w, handler.quotesManager.RandomQuote(), http.StatusOK)
}

func (handler *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.health")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	resp := HealthResponse{
		Status:    "OK",
		Message:   "HabitFlow Server is running!",
		Timestamp: handler.now().UTC(),
	}
	status := http.StatusOK
	if len(handler.healthChecks) > 0 {
		resp.Checks = make(map[string]string, len(handler.healthChecks))
	}
	for _, hc := range handler.healthChecks {
		if err := hc.Check(ctx); err != nil {
			log.Warnf("health check [%s] failed: %s", hc.Name, err)
			resp.Checks[hc.Name] = "unavailable"
			resp.Status = "DEGRADED"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[hc.Name] = "connected"
	}

	pkg.WriteJSON(w, resp, status)
}

func (handler *Handler) handleGetVersionInfo(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, handler.versionInfo)
}
