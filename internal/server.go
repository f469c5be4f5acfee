package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
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

	"github.com/2beens/gymlog/internal/auth"
	"github.com/2beens/gymlog/internal/config"
	"github.com/2beens/gymlog/internal/db"
	"github.com/2beens/gymlog/internal/docstore"
	"github.com/2beens/gymlog/internal/gymstats/admin"
	"github.com/2beens/gymlog/internal/gymstats/dashboard"
	"github.com/2beens/gymlog/internal/gymstats/draft"
	"github.com/2beens/gymlog/internal/gymstats/endofday"
	"github.com/2beens/gymlog/internal/gymstats/wizard"
	"github.com/2beens/gymlog/internal/middleware"
	"github.com/2beens/gymlog/internal/telemetry/metrics"
	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/pkg"
)

const sessionsCleanupInterval = 8 * time.Hour

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string
	adminSecretHash   string // bcrypt hash guarding the whole-document replace

	config      *config.Config
	dbPool      *pgxpool.Pool
	store       docstore.Store
	redisClient *redis.Client

	loginChecker *auth.LoginChecker
	authService  *auth.Service

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	AdminSecretHash         string
	RedisPassword           string
	PostgresPassword        string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	var (
		dbPool     *pgxpool.Pool
		collectors []prometheus.Collector
	)
	if cfg.StoreBackend == config.StorePostgres {
		var err error
		dbPool, err = db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:         cfg.PostgresHost,
			DBPort:         cfg.PostgresPort,
			DBName:         cfg.PostgresDBName,
			User:           cfg.PostgresUser,
			Password:       params.PostgresPassword,
			MaxConns:       cfg.PostgresMaxConns,
			TracingEnabled: params.HoneycombTracingEnabled,
		})
		if err != nil {
			return nil, fmt.Errorf("new db pool: %w", err)
		}
		if err := dbPool.Ping(ctx); err != nil {
			log.Warnf("failed to ping db: %s", err)
		}
		collectors = append(collectors, pgxpoolprometheus.NewCollector(
			dbPool,
			map[string]string{"db_name": cfg.PostgresDBName},
		))
	}

	promRegistry := metrics.SetupPrometheus(collectors...)
	metricsManager := metrics.NewManager("backend", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0) // will be set to 1 when all is set and ran

	store, err := NewDocumentStore(ctx, cfg, rdb, dbPool)
	if err != nil {
		return nil, fmt.Errorf("new document store: %w", err)
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "gymlog-backend", rdb)
	if err != nil {
		return nil, err
	}

	if params.AdminSecretHash == "" {
		log.Warnln("admin secret hash not set, whole-document replace is disabled")
	}

	instrumentedStore := docstore.NewInstrumentedStore(store, metricsManager)
	authService := auth.NewAuthService(auth.DefaultTTL, rdb, instrumentedStore)
	go authService.RunCleaner(ctx, sessionsCleanupInterval)

	return &Server{
		config:          cfg,
		versionInfo:     params.VersionInfo,
		adminSecretHash: params.AdminSecretHash,
		dbPool:          dbPool,
		store:           instrumentedStore,
		redisClient:     rdb,
		authService:     authService,
		loginChecker:    auth.NewLoginChecker(auth.DefaultTTL, rdb),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

// NewDocumentStore builds the store selected by the config. dbPool is only
// used by the postgres backend.
func NewDocumentStore(
	ctx context.Context,
	cfg *config.Config,
	rdb *redis.Client,
	dbPool *pgxpool.Pool,
) (docstore.Store, error) {
	switch cfg.StoreBackend {
	case config.StoreRedis:
		log.Debugf("document store: redis, key [%s]", cfg.DocumentKey)
		return docstore.NewRedisStore(rdb, cfg.DocumentKey), nil
	case config.StorePostgres:
		log.Debugf("document store: postgres, id [%s]", cfg.DocumentKey)
		pgStore := docstore.NewPostgresStore(dbPool, cfg.DocumentKey)
		if err := pgStore.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return pgStore, nil
	case config.StoreMemory:
		log.Warnln("document store: memory, nothing will survive a restart")
		return docstore.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.StoreBackend)
	}
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	r.HandleFunc("/", s.handleRoot).Methods("GET", "OPTIONS").Name("root")

	authHandler := auth.NewHandler(s.authService)
	authRouter := r.PathPrefix("/a").Subrouter()
	authRouter.HandleFunc("/login", authHandler.HandleLogin).Methods("POST", "OPTIONS").Name("login")
	authRouter.HandleFunc("/logout", authHandler.HandleLogout).Methods("GET", "OPTIONS").Name("logout")
	authRouter.Use(middleware.RateLimit(
		redis_rate.NewLimiter(s.redisClient),
		"auth",
		s.config.LoginRateLimitAllowedPerMin,
		s.metricsManager,
	))

	adminHandler := admin.NewHandler(s.store, s.adminSecretHash)
	r.HandleFunc("/db", adminHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-document")
	r.HandleFunc("/db", adminHandler.HandleReplace).Methods("PUT", "OPTIONS").Name("replace-document")

	endOfDayHandler := endofday.NewHandler(endofday.NewService(s.store), s.metricsManager)
	r.HandleFunc("/end-of-day", endOfDayHandler.HandleSubmit).Methods("POST", "OPTIONS").Name("end-of-day")

	draftHandler := draft.NewHandler(draft.NewService(s.store), s.metricsManager)
	r.HandleFunc("/gym-live", draftHandler.HandleLoad).Methods("GET", "OPTIONS").Name("load-draft")
	r.HandleFunc("/gym-live", draftHandler.HandleSave).Methods("PUT", "OPTIONS").Name("save-draft")
	r.HandleFunc("/gym-live", draftHandler.HandleClear).Methods("DELETE", "OPTIONS").Name("clear-draft")

	wizardHandler := wizard.NewHandler(s.store)
	r.HandleFunc("/wizard/toggle", wizardHandler.HandleToggle).Methods("POST", "OPTIONS").Name("wizard-toggle")
	r.HandleFunc("/wizard/validate", wizardHandler.HandleValidate).Methods("POST", "OPTIONS").Name("wizard-validate")
	r.HandleFunc("/wizard/advance", wizardHandler.HandleAdvance).Methods("POST", "OPTIONS").Name("wizard-advance")
	r.HandleFunc("/wizard/retreat", wizardHandler.HandleRetreat).Methods("POST", "OPTIONS").Name("wizard-retreat")
	r.HandleFunc("/wizard/draft", wizardHandler.HandleApplyDraft).Methods("POST", "OPTIONS").Name("wizard-draft")

	dashboardHandler := dashboard.NewHandler(s.store, s.config.DashboardCacheSizeBytes)
	r.HandleFunc("/dashboard", dashboardHandler.HandleDashboard).Methods("GET", "OPTIONS").Name("dashboard")
	r.HandleFunc("/dashboard/recent", dashboardHandler.HandleRecent).Methods("GET", "OPTIONS").Name("dashboard-recent")
	r.HandleFunc("/gym-sessions/{id}", dashboardHandler.HandleGymSession).Methods("GET", "OPTIONS").Name("gym-session")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.loginChecker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.CorsOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.LimitAndDrainRequest(middleware.MaxRequestBodyBytes))

	return r, nil
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	msg := "gymlog is up"
	if s.versionInfo != "" {
		msg += ", version: " + s.versionInfo
	}
	pkg.WriteTextResponseOK(w, msg)
}

func (s *Server) Serve(host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

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
		Addr:    metricsAddr,
		Handler: metricsRouter,
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

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	// stop taking requests before closing the stores they use
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
