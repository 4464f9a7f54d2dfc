package internal

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/habitflow/backend/internal/ai"
	"github.com/habitflow/backend/internal/auth"
	"github.com/habitflow/backend/internal/config"
	"github.com/habitflow/backend/internal/datekey"
	"github.com/habitflow/backend/internal/db"
	"github.com/habitflow/backend/internal/habits"
	"github.com/habitflow/backend/internal/middleware"
	"github.com/habitflow/backend/internal/misc"
	"github.com/habitflow/backend/internal/telemetry/metrics"
	"github.com/habitflow/backend/internal/telemetry/tracing"
	"github.com/habitflow/backend/pkg"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config        *config.Config
	dbPool        *pgxpool.Pool
	quotesManager *misc.QuotesManager
	clock         datekey.Clock

	redisClient  *redis.Client
	loginChecker *auth.LoginChecker
	authService  *auth.Service

	habitsService *habits.Service
	aiService     *ai.Service

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()

	cancelBackground context.CancelFunc
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	JWTSecret               string
	PostgresPassword        string
	RedisPassword           string
	GeminiAPIKey            string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	if params.JWTSecret == "" {
		return nil, errors.New("jwt secret not set")
	}

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		DBUser:         params.Config.PostgresUser,
		DBPassword:     params.PostgresPassword,
		MaxConns:       params.Config.PostgresMaxConns,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	if params.Config.MigrateOnStart {
		if err := db.Migrate(ctx, dbPool); err != nil {
			dbPool.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": params.Config.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("habitflow", "backend", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "habitflow-backend", rdb)
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(params.Config.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone: %w", err)
	}
	clock := datekey.NewSystemClock(loc)

	authService := auth.NewAuthService(
		auth.NewUserRepo(dbPool),
		params.Config.SessionTTL,
		params.JWTSecret,
		rdb,
		metricsManager,
	)

	habitsService := habits.NewService(
		habits.NewRepo(dbPool),
		habits.NewOwnerCache(params.Config.HabitsCacheSizeMB<<20, params.Config.HabitsCacheTTL),
		clock,
		metricsManager,
	)

	// without a key every AI endpoint answers 503
	aiService := ai.NewService(nil, metricsManager)
	if params.GeminiAPIKey == "" {
		log.Warnln("gemini api key not set, ai endpoints disabled")
	} else {
		geminiClient, err := ai.NewGeminiClient(ctx, ai.GeminiClientParams{
			APIKey:   params.GeminiAPIKey,
			Model:    params.Config.GeminiModel,
			Endpoint: params.Config.GeminiEndpoint,
		})
		if err != nil {
			return nil, fmt.Errorf("new gemini client: %w", err)
		}
		aiService = ai.NewService(geminiClient, metricsManager)
	}

	s := &Server{
		config:      params.Config,
		dbPool:      dbPool,
		clock:       clock,
		versionInfo: params.VersionInfo,

		redisClient:  rdb,
		authService:  authService,
		loginChecker: auth.NewLoginChecker(params.Config.SessionTTL, params.JWTSecret, rdb),

		habitsService: habitsService,
		aiService:     aiService,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}

	quotesCsvFile, err := os.Open(params.Config.QuotesCsvPath)
	if err != nil {
		return nil, fmt.Errorf("open quotes file: %w", err)
	}
	defer func() {
		if err := quotesCsvFile.Close(); err != nil {
			log.Warnf("close quotes csv file: %s", err)
		}
	}()

	s.quotesManager, err = misc.NewQuoteManager(csv.NewReader(quotesCsvFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create quote manager: %s", err)
	}

	return s, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)

	authHandler := auth.NewHandler(s.authService)
	authHandler.SetupRoutes(r, reqRateLimiter, s.config.LoginRateLimitAllowedPerMin, s.metricsManager)

	habitsHandler := habits.NewHandler(s.habitsService)
	habitsHandler.SetupRoutes(r)

	aiHandler := ai.NewHandler(s.aiService, s.habitsService, s.clock)
	aiHandler.SetupRoutes(r, reqRateLimiter, s.config.AIRateLimitAllowedPerMin, s.metricsManager)

	miscHandler := misc.NewHandler(
		s.quotesManager,
		s.clock,
		s.versionInfo,
		misc.HealthCheck{Name: "database", Check: s.dbPool.Ping},
		misc.HealthCheck{Name: "redis", Check: func(ctx context.Context) error {
			return s.redisClient.Ping(ctx).Err()
		}},
	)
	miscHandler.SetupRoutes(r)

	// all the rest - unhandled paths
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		pkg.WriteError(w, "not found", http.StatusNotFound)
	})

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.loginChecker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.CorsAllowedOrigins...))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.InstrumentMetricHandler(
		s.promRegistry,
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:              metricsAddr,
		Handler:           metricsRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	if s.config.SessionsCleanupInterval > 0 {
		bgCtx, cancel := context.WithCancel(ctx)
		s.cancelBackground = cancel
		go s.cleanSessionsLoop(bgCtx, s.config.SessionsCleanupInterval)
	}

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) cleanSessionsLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := s.authService.ScanAndClean(ctx)
			log.Debugf("sessions cleanup removed %d sessions", removed)
		}
	}
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	if s.cancelBackground != nil {
		s.cancelBackground()
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	// stop taking requests before closing what they use
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
