package http

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"todoapi/internal/adapter/database/memory"
	"todoapi/internal/adapter/database/postgres"
	pgrepository "todoapi/internal/adapter/database/postgres/repository"
	"todoapi/internal/adapter/database/redis"
	"todoapi/internal/adapter/database/sqlite"
	sqliterepository "todoapi/internal/adapter/database/sqlite/repository"
	"todoapi/internal/adapter/http/handler"
	"todoapi/internal/core/port"
	"todoapi/internal/core/service"
	"todoapi/pkg/config"
)

type Stores struct {
	TodoRepo       port.TodoRepository
	TodoStatusRepo port.TodoStatusRepository
	Cache          port.CacheRepository
	Health         map[string]port.HealthChecker
	closers        []func() error
}

type Container struct {
	Stores

	TodoUseCase       *service.TodoService
	TodoStatusUseCase *service.TodoStatusService

	TodoHandler       *handler.TodoHandler
	TodoStatusHandler *handler.TodoStatusHandler
	HealthHandler     *handler.HealthHandler
}

// OpenStores connects the repositories selected by DB_DRIVER and the slug
// cache selected by REDIS_URL.
func OpenStores(ctx context.Context, cfg *config.AppConfig, logger *config.AppLogger, probe port.Telemetry) (Stores, error) {
	stores := Stores{Health: map[string]port.HealthChecker{}}

	switch cfg.DBDriver {
	case config.DriverPostgres:
		db, err := postgres.NewDB(ctx, postgres.Options{URL: cfg.DatabaseURL, MaxOpenConns: cfg.DBMaxOpenConns})
		if err != nil {
			return stores, fmt.Errorf("postgres: %w", err)
		}

		stores.TodoRepo = pgrepository.NewTodoRepository(db, probe)
		stores.TodoStatusRepo = pgrepository.NewTodoStatusRepository(db, probe)
		stores.Health["database"] = db
		stores.closers = append(stores.closers, func() error { db.Close(); return nil })
	case config.DriverSQLite:
		db, err := sqlite.NewDB(sqlite.Options{
			Path:         cfg.DatabasePath,
			SQLLogLevel:  cfg.SQLLogLevel,
			MaxOpenConns: cfg.DBMaxOpenConns,
		})
		if err != nil {
			return stores, fmt.Errorf("sqlite: %w", err)
		}

		stores.TodoRepo = sqliterepository.NewTodoRepository(db, probe)
		stores.TodoStatusRepo = sqliterepository.NewTodoStatusRepository(db, probe)
		stores.Health["database"] = db
		stores.closers = append(stores.closers, db.Close)
	default:
		return stores, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	if cfg.RedisURL != "" {
		cache, err := redis.NewRedisRepository(ctx, cfg.RedisURL)
		if err != nil {
			stores.Close()
			return stores, err
		}

		stores.Cache = cache
	} else {
		stores.Cache = memory.NewMemoryRepository()
	}

	if checker, ok := stores.Cache.(port.HealthChecker); ok {
		stores.Health["cache"] = checker
	}

	stores.closers = append(stores.closers, stores.Cache.Close)

	logger.Logger.Info("Stores opened",
		zap.String("driver", cfg.DBDriver),
		zap.Bool("redis_cache", cfg.RedisURL != ""),
	)

	return stores, nil
}

func (s Stores) Close() error {
	var errs []error

	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i]())
	}

	return errors.Join(errs...)
}

func NewContainer(stores Stores, cfg *config.AppConfig, logger *config.AppLogger, probe port.Telemetry) *Container {
	statusSvc := service.NewTodoStatusService(stores.TodoStatusRepo, stores.Cache, cfg.StatusCacheTTL, probe)
	todoSvc := service.NewTodoService(stores.TodoRepo, statusSvc, probe)

	return &Container{
		Stores: stores,

		TodoUseCase:       todoSvc,
		TodoStatusUseCase: statusSvc,

		TodoHandler:       handler.NewTodoHandler(todoSvc, logger),
		TodoStatusHandler: handler.NewTodoStatusHandler(statusSvc, logger),
		HealthHandler:     handler.NewHealthHandler(stores.Health),
	}
}
