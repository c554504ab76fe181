package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/preston-bernstein/pl-spend-service/internal/app/analysis"
	"github.com/preston-bernstein/pl-spend-service/internal/config"
	"github.com/preston-bernstein/pl-spend-service/internal/database"
	httpserver "github.com/preston-bernstein/pl-spend-service/internal/http"
	"github.com/preston-bernstein/pl-spend-service/internal/http/handlers"
	"github.com/preston-bernstein/pl-spend-service/internal/http/middleware"
	"github.com/preston-bernstein/pl-spend-service/internal/logging"
	"github.com/preston-bernstein/pl-spend-service/internal/metrics"
	"github.com/preston-bernstein/pl-spend-service/internal/poller"
	"github.com/preston-bernstein/pl-spend-service/internal/store"
)

const (
	storeMemory = "memory"
	storeSQL    = "sql"
)

var metricsSetup = metrics.Setup

// Server serves the read-only API over the analysis-ready dataset and keeps
// it fresh by reloading the CSV when it changes.
type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	analysis      *analysis.Service
	httpServer    httpServer
	metricsServer httpServer
	reloader      Reloader
	metricsStop   func(context.Context) error
	closeStore    func() error
}

// New constructs a server with the configured store, reloader and telemetry.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	return newServerWithMetrics(ctx, cfg, logger, nil)
}

func newServerWithMetrics(ctx context.Context, cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*Server, error) {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	st, closeStore, err := buildStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	svc := analysis.NewService(st, logger)
	plr := poller.New(svc, cfg.Paths.AnalysisReady, logger, recorder, cfg.ReloadInterval)
	httpSrv := buildHTTPServer(cfg, svc, logger, recorder, plr)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		analysis:      svc,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		reloader:      plr,
		metricsStop:   metricsShutdown,
		closeStore:    closeStore,
	}, nil
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, svc *analysis.Service, httpSrv httpServer, r Reloader) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		analysis:   svc,
		httpServer: httpSrv,
		reloader:   r,
	}
}

// buildStore returns the club-season store named by cfg.Store. The SQL store
// is migrated before use; its close func releases the connection pool.
func buildStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (store.ClubSeasonStore, func() error, error) {
	switch cfg.Store {
	case "", storeMemory:
		return store.NewMemoryStore(), nil, nil
	case storeSQL:
		db, dialect, err := database.Open(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		if err := database.Migrate(ctx, db, dialect); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		logging.Info(logger, "using sql club-season store", "dialect", string(dialect))
		return store.NewSQLStore(db, dialect), db.Close, nil
	default:
		return nil, nil, errors.New("unknown store " + cfg.Store + " (expected memory or sql)")
	}
}

func buildHTTPServer(cfg config.Config, svc *analysis.Service, logger *slog.Logger, recorder *metrics.Recorder, r Reloader) httpServer {
	var statusFn func() poller.Status
	if r != nil {
		statusFn = r.Status
	}

	handler := handlers.NewHandler(svc, logger, statusFn)
	router := httpserver.NewRouter(handler)
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	return newNetHTTPServer(cfg.Port, otelhttp.NewHandler(wrapped, "pl-spend-api"))
}

// Run starts the reloader and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.reloader.Start(ctx)

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) shutdownTimeout() time.Duration {
	if s.cfg.ShutdownTimeout > 0 {
		return s.cfg.ShutdownTimeout
	}
	return shutdownTimeout
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout())
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	if err := s.reloader.Stop(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("failed to stop reloader", "error", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	if s.closeStore != nil {
		if err := s.closeStore(); err != nil && s.logger != nil {
			s.logger.Warn("store close failed", "error", err)
		}
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "err", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", handler)
		metricsSrv = newNetHTTPServer(recCfg.Port, mux)
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if logger != nil {
			logger.Info("starting "+name+" server", slog.String("addr", srv.Addr()))
		}
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
