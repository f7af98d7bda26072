package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/strdex/internal/config"
	"github.com/kailas-cloud/strdex/internal/domain/analysis"
	"github.com/kailas-cloud/strdex/internal/domain/nlquery"
	logpkg "github.com/kailas-cloud/strdex/internal/logger"
	"github.com/kailas-cloud/strdex/internal/metrics"
	recordrepo "github.com/kailas-cloud/strdex/internal/repository/record"
	chiTransport "github.com/kailas-cloud/strdex/internal/transport/chi"
	healthuc "github.com/kailas-cloud/strdex/internal/usecase/health"
	recorduc "github.com/kailas-cloud/strdex/internal/usecase/record"
	"github.com/kailas-cloud/strdex/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting strdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Int("max_value_bytes", cfg.Store.MaxValueBytes),
		zap.Float64("rate_limit_rps", cfg.RateLimit.RPS),
		zap.Bool("auth_enabled", len(cfg.Auth.APIKeys) > 0),
	)

	// Domain metrics are registered explicitly; HTTP metrics register in init().
	metrics.RegisterStringMetrics()

	repo := recordrepo.New()

	recordSvc := recorduc.New(repo, analysis.New(analysis.SHA256), nlquery.NewParser()).
		WithMaxValueBytes(cfg.Store.MaxValueBytes).
		WithRejectUnrecognized(cfg.Query.RejectUnrecognized)
	healthSvc := healthuc.New(repo)

	server := chiTransport.NewServer(recordSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(chiTransport.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadTimeout:       time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
