package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"todoapi/internal/adapter/database/postgres"
	"todoapi/internal/adapter/database/sqlite"
	"todoapi/internal/adapter/http/routes"
	"todoapi/internal/adapter/telemetry"
	"todoapi/pkg/config"
)

// StartServerWithConfig serves the API until ctx is cancelled, then drains
// in-flight requests.
func StartServerWithConfig(ctx context.Context, cfg *config.AppConfig, logger *config.AppLogger) error {
	tel, err := telemetry.NewContainer(telemetry.ConfigFrom(cfg), logger)
	if err != nil {
		return err
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := tel.Shutdown(shutdownCtx); err != nil {
			logger.Logger.Warn("Telemetry shutdown failed", zap.Error(err))
		}
	}()

	probe := tel.NewTelemetryProbe()

	stores, err := OpenStores(ctx, cfg, logger, probe)
	if err != nil {
		return err
	}

	defer stores.Close()

	container := NewContainer(stores, cfg, logger, probe)

	router := routes.SetupRouterWithConfig(routes.HandlersConfig{
		TodoHandler:       container.TodoHandler,
		TodoStatusHandler: container.TodoStatusHandler,
		HealthHandler:     container.HealthHandler,
	}, tel.AppMetrics, logger, cfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	serveErr := make(chan error, 1)

	go func() {
		logger.Logger.Info("Server starting",
			zap.String("port", cfg.Port),
			zap.String("environment", cfg.Environment),
			zap.String("driver", cfg.DBDriver),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}

		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logger.Logger.Info("Server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// Migrate applies the embedded migrations of the configured driver.
func Migrate(ctx context.Context, cfg *config.AppConfig) error {
	if cfg.DBDriver == config.DriverPostgres {
		return postgres.RunMigrations(cfg.DatabaseURL)
	}

	db, err := sqlite.NewDB(sqlite.Options{Path: cfg.DatabasePath, SQLLogLevel: cfg.SQLLogLevel})
	if err != nil {
		return err
	}

	return db.Close()
}
