package service

import (
	"context"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"
	tel "todoapi/internal/core/telemetry"
	"todoapi/pkg/tracing"
)

type TodoService struct {
	repo      port.TodoRepository
	statuses  port.StatusRegistry
	telemetry port.Telemetry
}

func NewTodoService(repo port.TodoRepository, statuses port.StatusRegistry, telemetry port.Telemetry) *TodoService {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &TodoService{
		repo:      repo,
		statuses:  statuses,
		telemetry: telemetry,
	}
}

func (ts *TodoService) GetAll(ctx context.Context) ([]domain.Todo, error) {
	return ts.repo.GetAll(ctx)
}

func (ts *TodoService) GetByID(ctx context.Context, id int64) (domain.Todo, error) {
	return ts.repo.GetByID(ctx, id)
}

func (ts *TodoService) Create(ctx context.Context, todo domain.Todo) (created domain.Todo, err error) {
	err = tracing.ServiceSpanWrapper(ctx, "todo", "create", func(ctx context.Context) error {
		if err := ts.checkStatus(ctx, todo.Status); err != nil {
			return err
		}

		created, err = ts.repo.Create(ctx, domain.Todo{
			Title:  todo.Title,
			Body:   todo.Body,
			Status: todo.Status,
			Start:  todo.Start,
			End:    todo.End,
		})

		if err != nil {
			otelzap.Ctx(ctx).Error("Repository create failed", zap.Error(err), zap.String("title", todo.Title))
			return err
		}

		ts.telemetry.RecordBusinessEvent(ctx, "create", "todo", created.ID)

		return nil
	})

	return created, err
}

// Update applies only the fields present in patch. A status outside the
// vocabulary leaves the stored todo untouched.
func (ts *TodoService) Update(ctx context.Context, id int64, patch domain.TodoPatch) (updated domain.Todo, err error) {
	err = tracing.ServiceSpanWrapper(ctx, "todo", "update", func(ctx context.Context) error {
		current, err := ts.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if patch.Status != nil {
			if err := ts.checkStatus(ctx, *patch.Status); err != nil {
				return err
			}
		}

		changed := current.Apply(patch)
		if len(changed) == 0 {
			updated = current
			return nil
		}

		updated, err = ts.repo.Update(ctx, current)
		if err != nil {
			otelzap.Ctx(ctx).Error("Repository update failed", zap.Error(err), zap.Int64("id", id), zap.Strings("fields", changed))
			return err
		}

		ts.telemetry.RecordBusinessEvent(ctx, "update", "todo", id)

		return nil
	})

	return updated, err
}

func (ts *TodoService) Delete(ctx context.Context, id int64) error {
	if err := ts.repo.Delete(ctx, id); err != nil {
		return err
	}

	ts.telemetry.RecordBusinessEvent(ctx, "delete", "todo", id)

	return nil
}

func (ts *TodoService) checkStatus(ctx context.Context, slug string) error {
	ok, err := ts.statuses.Exists(ctx, slug)
	if err != nil {
		return err
	}

	if !ok {
		otelzap.Ctx(ctx).Info("Rejected unknown todo status", zap.String("status", slug))
		return &domain.InvalidStatusError{Slug: slug}
	}

	return nil
}
