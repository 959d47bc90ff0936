// Command stride-server runs the Stride backend: the Connect services over a SQL
// store, plus health and metrics endpoints.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/stride/internal/auth"
	"github.com/mmynk/stride/internal/config"
	"github.com/mmynk/stride/internal/middleware"
	"github.com/mmynk/stride/internal/service"
	"github.com/mmynk/stride/internal/storage/sqlstore"
	"github.com/mmynk/stride/pkg/logging"
)

func main() {
	configPath := flag.String("config", os.Getenv("STRIDE_CONFIG"), "path to a YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger := logging.Setup(cfg.Logging.Level, os.Stderr)
	if err := cfg.ValidateServer(); err != nil {
		return err
	}
	ttl, err := cfg.TokenDuration()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := sqlstore.Open(ctx, cfg.Database.Driver, cfg.DSN())
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	logger.Info("Storage initialized", "driver", cfg.Database.Driver)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	handler := newRouter(service.Deps{
		Store:         store,
		Authenticator: auth.NewPasswords(store, 0),
		Tokens:        auth.NewTokens(cfg.Auth.JWTSecret, ttl),
		Logger:        logger,
		Metrics:       middleware.NewMetrics(registry),
	}, registry)

	srv := &http.Server{
		Addr: cfg.Server.Addr,
		// h2c serves HTTP/2 without TLS, which Connect streaming and gRPC clients need.
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Connect server starting", "address", cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
