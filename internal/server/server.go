// Package server boots every dependency and runs the HTTP and gRPC servers
// until SIGINT or SIGTERM, then shuts them down gracefully.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/bilemo/api/app/events"
	"github.com/bilemo/api/app/routes"
	"github.com/bilemo/api/config"
	"github.com/bilemo/api/internal/kernel"
	"github.com/bilemo/api/pkg/cache"
	"github.com/bilemo/api/pkg/database"
	"github.com/bilemo/api/pkg/event"
	"github.com/bilemo/api/pkg/grpc"
	"github.com/bilemo/api/pkg/logger"
	"github.com/bilemo/api/pkg/storage"
	"github.com/bilemo/api/pkg/workerpool"
)

const (
	shutdownTimeout = 10 * time.Second
	listenerWorkers = 8
)

// Start runs the servers and blocks until they have stopped.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}
	if err := logger.Setup(); err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := database.Connect(); err != nil {
		return err
	}
	defer database.Close() //nolint:errcheck

	if err := cache.Connect(); err != nil {
		logger.Warn("cache disabled", zap.Error(err))
	}
	defer cache.Close() //nolint:errcheck

	disk, err := storage.Default(ctx)
	if err != nil {
		return err
	}

	pool := workerpool.New(listenerWorkers)
	defer pool.Shutdown()
	event.UsePool(pool)
	events.Register()

	app, err := routes.New(database.DB, disk)
	if err != nil {
		return err
	}
	k, err := kernel.NewHTTPKernel(app, kernel.Options{Disk: disk})
	if err != nil {
		return err
	}
	defer k.Close()

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           k.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	grpcSrv, err := grpc.Start(config.GRPCPort(), database.Ping)
	if err != nil {
		return err
	}
	defer grpc.Stop(grpcSrv)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting",
			zap.String("addr", srv.Addr),
			zap.String("env", config.AppEnv()),
			zap.String("storage", config.StorageDefault()),
			zap.Bool("cache", cache.Enabled()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http: shutdown: %w", err)
	}
	logger.Info("HTTP server stopped")
	return nil
}
