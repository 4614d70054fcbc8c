package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"
	tel "todoapi/internal/core/telemetry"
	"todoapi/pkg/tracing"
)

// StatusesCacheKey holds the JSON encoded status listing.
const StatusesCacheKey = "todo_status:all"

type TodoStatusService struct {
	repo      port.TodoStatusRepository
	cache     port.CacheRepository
	cacheTTL  time.Duration
	telemetry port.Telemetry

	// generation moves on every committed write. A listing read that
	// overlapped a write is not cached.
	mu         sync.Mutex
	generation uint64
}

// NewTodoStatusService builds the status registry. The cache only serves the
// status listing; it is skipped when nil or when cacheTTL is not positive.
func NewTodoStatusService(repo port.TodoStatusRepository, cache port.CacheRepository, cacheTTL time.Duration, telemetry port.Telemetry) *TodoStatusService {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	if cacheTTL <= 0 {
		cache = nil
	}

	return &TodoStatusService{
		repo:      repo,
		cache:     cache,
		cacheTTL:  cacheTTL,
		telemetry: telemetry,
	}
}

func (ss *TodoStatusService) GetAll(ctx context.Context) ([]domain.TodoStatus, error) {
	if ss.cache == nil {
		return ss.repo.GetAll(ctx)
	}

	if statuses, ok := ss.cachedStatuses(ctx); ok {
		return statuses, nil
	}

	generation := ss.currentGeneration()

	statuses, err := ss.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	ss.storeStatuses(ctx, generation, statuses)

	return statuses, nil
}

func (ss *TodoStatusService) GetByID(ctx context.Context, id int64) (domain.TodoStatus, error) {
	return ss.repo.GetByID(ctx, id)
}

func (ss *TodoStatusService) Create(ctx context.Context, status domain.TodoStatus) (created domain.TodoStatus, err error) {
	err = tracing.ServiceSpanWrapper(ctx, "todo_status", "create", func(ctx context.Context) error {
		if err := ss.ensureSlugFree(ctx, status.Slug, 0); err != nil {
			return err
		}

		created, err = ss.repo.Create(ctx, domain.TodoStatus{Slug: status.Slug})
		if err != nil {
			otelzap.Ctx(ctx).Error("Repository create failed", zap.Error(err), zap.String("slug", status.Slug))
			return err
		}

		ss.invalidateStatuses(ctx)
		ss.telemetry.RecordBusinessEvent(ctx, "create", "todo_status", created.ID)

		return nil
	})

	return created, err
}

func (ss *TodoStatusService) Update(ctx context.Context, id int64, patch domain.TodoStatusPatch) (updated domain.TodoStatus, err error) {
	err = tracing.ServiceSpanWrapper(ctx, "todo_status", "update", func(ctx context.Context) error {
		current, err := ss.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if patch.Slug == nil || *patch.Slug == current.Slug {
			updated = current
			return nil
		}

		if err := ss.ensureSlugFree(ctx, *patch.Slug, id); err != nil {
			return err
		}

		current.Slug = *patch.Slug

		updated, err = ss.repo.Update(ctx, current)
		if err != nil {
			return err
		}

		ss.invalidateStatuses(ctx)
		ss.telemetry.RecordBusinessEvent(ctx, "update", "todo_status", id)

		return nil
	})

	return updated, err
}

func (ss *TodoStatusService) Delete(ctx context.Context, id int64) error {
	if err := ss.repo.Delete(ctx, id); err != nil {
		return err
	}

	ss.invalidateStatuses(ctx)
	ss.telemetry.RecordBusinessEvent(ctx, "delete", "todo_status", id)

	return nil
}

// Exists reports whether slug is a registered status. It always asks the
// repository so a write on any instance is seen immediately.
func (ss *TodoStatusService) Exists(ctx context.Context, slug string) (bool, error) {
	_, err := ss.repo.GetBySlug(ctx, slug)

	switch {
	case errors.Is(err, domain.ErrTodoStatusNotFound):
		return false, nil
	case err != nil:
		return false, err
	}

	return true, nil
}

func (ss *TodoStatusService) ensureSlugFree(ctx context.Context, slug string, ownerID int64) error {
	existing, err := ss.repo.GetBySlug(ctx, slug)

	switch {
	case errors.Is(err, domain.ErrTodoStatusNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != ownerID:
		return &domain.DuplicateSlugError{Slug: slug}
	}

	return nil
}

func (ss *TodoStatusService) cachedStatuses(ctx context.Context) ([]domain.TodoStatus, bool) {
	cached, err := ss.cache.Get(ctx, StatusesCacheKey)

	switch {
	case err == nil:
		var statuses []domain.TodoStatus

		if err := json.Unmarshal(cached, &statuses); err == nil {
			ss.telemetry.RecordCacheLookup(ctx, StatusesCacheKey, true)
			return statuses, true
		}

		otelzap.Ctx(ctx).Warn("Discarding undecodable status cache entry")
	case !errors.Is(err, port.ErrCacheMiss):
		otelzap.Ctx(ctx).Warn("Status cache unavailable, reading repository", zap.Error(err))
	}

	ss.telemetry.RecordCacheLookup(ctx, StatusesCacheKey, false)

	return nil, false
}

func (ss *TodoStatusService) currentGeneration() uint64 {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	return ss.generation
}

// storeStatuses caches a listing read at generation, unless a write has been
// committed since.
func (ss *TodoStatusService) storeStatuses(ctx context.Context, generation uint64, statuses []domain.TodoStatus) {
	payload, err := json.Marshal(statuses)
	if err != nil {
		return
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()

	if ss.generation != generation {
		return
	}

	if err := ss.cache.Set(ctx, StatusesCacheKey, payload, ss.cacheTTL); err != nil {
		otelzap.Ctx(ctx).Warn("Failed to cache statuses", zap.Error(err))
	}
}

func (ss *TodoStatusService) invalidateStatuses(ctx context.Context) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	ss.generation++

	if ss.cache == nil {
		return
	}

	if err := ss.cache.Delete(ctx, StatusesCacheKey); err != nil {
		otelzap.Ctx(ctx).Warn("Failed to invalidate status cache", zap.Error(err))
	}
}
