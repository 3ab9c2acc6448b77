// Package server exposes evaluated entitlements over HTTP for local tools
// and dashboards.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/bnema/walletwise-cli/internal/application"
	"github.com/bnema/walletwise-cli/internal/logger"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 10 * time.Second

// Service is the read side of the application service the sidecar needs.
type Service interface {
	GetOverview(ctx context.Context, q application.OverviewQuery) (application.Overview, error)
	GetSummary(ctx context.Context, q application.SummaryQuery) (application.SummaryReport, error)
	GetAnalytics(ctx context.Context, q application.OverviewQuery) (application.AnalyticsReport, error)
}

type Config struct {
	Addr      string
	RateLimit float64
	Burst     int
}

type Server struct {
	cfg     Config
	service Service
	log     *slog.Logger
	metrics *Metrics
	limiter *rateLimiter
	handler http.Handler
}

func New(service Service, cfg Config, log *slog.Logger) *Server {
	if log == nil {
		log = logger.Discard()
	}

	metrics := NewMetrics()
	s := &Server{
		cfg:     cfg,
		service: service,
		log:     log,
		metrics: metrics,
		limiter: newRateLimiter(cfg.RateLimit, cfg.Burst, metrics.rateLimited),
	}
	s.handler = s.routes()

	return s
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	r := mux.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(s.metrics.monitor)

	r.HandleFunc("/health", s.health).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.Use(s.limiter.middleware)
	v1.HandleFunc("/profiles/{id}/entitlements", s.entitlements).Methods(http.MethodGet)
	v1.HandleFunc("/profiles/{id}/wallets", s.wallets).Methods(http.MethodGet)
	v1.HandleFunc("/profiles/{id}/summary", s.summary).Methods(http.MethodGet)
	v1.HandleFunc("/profiles/{id}/analytics", s.analytics).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "route not found")
	})

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", requestIDHeader}),
		handlers.ExposedHeaders([]string{requestIDHeader}),
	)

	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(slog.NewLogLogger(s.log.Handler(), slog.LevelError)),
		handlers.PrintRecoveryStack(false),
	)

	logged := handlers.CustomLoggingHandler(io.Discard, r, func(_ io.Writer, p handlers.LogFormatterParams) {
		s.log.Info("http request",
			"method", p.Request.Method,
			"uri", p.URL.RequestURI(),
			"status", p.StatusCode,
			"size", p.Size,
			"request_id", p.Request.Header.Get(requestIDHeader),
		)
	})

	return recovery(cors(logged))
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	}

	return s.Serve(ctx, listener)
}

func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	cleanupCtx, stopCleanup := context.WithCancel(ctx)
	defer stopCleanup()
	go s.limiter.cleanup(cleanupCtx)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("sidecar listening", "addr", listener.Addr().String())
		errCh <- srv.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.log.Info("sidecar stopped")

	return nil
}
