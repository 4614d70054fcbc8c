package port

import (
	"context"

	"todoapi/internal/core/domain"
)

type TodoStatusRepository interface {
	GetAll(ctx context.Context) ([]domain.TodoStatus, error)
	GetByID(ctx context.Context, id int64) (domain.TodoStatus, error)
	GetBySlug(ctx context.Context, slug string) (domain.TodoStatus, error)
	Create(ctx context.Context, status domain.TodoStatus) (domain.TodoStatus, error)
	Update(ctx context.Context, status domain.TodoStatus) (domain.TodoStatus, error)
	Delete(ctx context.Context, id int64) error
}

type TodoStatusService interface {
	GetAll(ctx context.Context) ([]domain.TodoStatus, error)
	GetByID(ctx context.Context, id int64) (domain.TodoStatus, error)
	Create(ctx context.Context, status domain.TodoStatus) (domain.TodoStatus, error)
	Update(ctx context.Context, id int64, patch domain.TodoStatusPatch) (domain.TodoStatus, error)
	Delete(ctx context.Context, id int64) error
}

// StatusRegistry answers whether a slug belongs to the current todo status
// vocabulary. The todo service depends on it instead of the status
// repository.
type StatusRegistry interface {
	Exists(ctx context.Context, slug string) (bool, error)
}
