package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"

	"todoapi/internal/adapter/database/postgres"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"
)

const todoStatusesTable = "todo_statuses"

var todoStatusColumns = []string{"id", "slug", "created_at", "updated_at"}

const returningTodoStatus = "RETURNING id, slug, created_at, updated_at"

type todoStatusRow struct {
	ID        int64     `db:"id"`
	Slug      string    `db:"slug"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r todoStatusRow) toDomain() domain.TodoStatus {
	return domain.TodoStatus{
		ID:        r.ID,
		Slug:      r.Slug,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type TodoStatusRepository struct {
	db        *postgres.DB
	telemetry port.Telemetry
}

func NewTodoStatusRepository(db *postgres.DB, telemetry port.Telemetry) port.TodoStatusRepository {
	return &TodoStatusRepository{db: db, telemetry: telemetryOrNoop(telemetry)}
}

func (sr *TodoStatusRepository) GetAll(ctx context.Context) (statuses []domain.TodoStatus, err error) {
	ctx, op := begin(ctx, sr.telemetry, "GetAll", "todo_status")
	defer func() { op.end(err) }()

	query, args, err := sr.db.QueryBuilder.Select(todoStatusColumns...).
		From(todoStatusesTable).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, persistenceError("build select todo statuses", err)
	}

	rows, err := sr.db.Query(ctx, query, args...)
	if err != nil {
		return nil, persistenceError("select todo statuses", err)
	}

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[todoStatusRow])
	if err != nil {
		return nil, persistenceError("scan todo statuses", err)
	}

	statuses = make([]domain.TodoStatus, 0, len(records))
	for _, record := range records {
		statuses = append(statuses, record.toDomain())
	}

	return statuses, nil
}

func (sr *TodoStatusRepository) GetByID(ctx context.Context, id int64) (domain.TodoStatus, error) {
	return sr.getOne(ctx, "GetByID", sq.Eq{"id": id})
}

func (sr *TodoStatusRepository) GetBySlug(ctx context.Context, slug string) (domain.TodoStatus, error) {
	return sr.getOne(ctx, "GetBySlug", sq.Eq{"slug": slug})
}

func (sr *TodoStatusRepository) getOne(ctx context.Context, name string, where sq.Eq) (status domain.TodoStatus, err error) {
	ctx, op := begin(ctx, sr.telemetry, name, "todo_status")
	defer func() { op.end(err) }()

	query, args, err := sr.db.QueryBuilder.Select(todoStatusColumns...).
		From(todoStatusesTable).
		Where(where).
		ToSql()

	if err != nil {
		return domain.TodoStatus{}, persistenceError("build select todo status", err)
	}

	return sr.one(ctx, "select todo status", "", query, args)
}

func (sr *TodoStatusRepository) Create(ctx context.Context, status domain.TodoStatus) (saved domain.TodoStatus, err error) {
	ctx, op := begin(ctx, sr.telemetry, "Create", "todo_status", attribute.String("todo_status.slug", status.Slug))
	defer func() { op.end(err) }()

	query, args, err := sr.db.QueryBuilder.Insert(todoStatusesTable).
		Columns("slug").
		Values(status.Slug).
		Suffix(returningTodoStatus).
		ToSql()

	if err != nil {
		return domain.TodoStatus{}, persistenceError("build insert todo status", err)
	}

	return sr.one(ctx, "insert todo status", status.Slug, query, args)
}

func (sr *TodoStatusRepository) Update(ctx context.Context, status domain.TodoStatus) (updated domain.TodoStatus, err error) {
	ctx, op := begin(ctx, sr.telemetry, "Update", "todo_status", attribute.Int64("todo_status.id", status.ID))
	defer func() { op.end(err) }()

	query, args, err := sr.db.QueryBuilder.Update(todoStatusesTable).
		Set("slug", status.Slug).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": status.ID}).
		Suffix(returningTodoStatus).
		ToSql()

	if err != nil {
		return domain.TodoStatus{}, persistenceError("build update todo status", err)
	}

	return sr.one(ctx, "update todo status", status.Slug, query, args)
}

func (sr *TodoStatusRepository) Delete(ctx context.Context, id int64) (err error) {
	ctx, op := begin(ctx, sr.telemetry, "Delete", "todo_status", attribute.Int64("todo_status.id", id))
	defer func() { op.end(err) }()

	query, args, err := sr.db.QueryBuilder.Delete(todoStatusesTable).
		Where(sq.Eq{"id": id}).
		ToSql()

	if err != nil {
		return persistenceError("build delete todo status", err)
	}

	tag, err := sr.db.Exec(ctx, query, args...)
	if err != nil {
		return persistenceError("delete todo status", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTodoStatusNotFound
	}

	return nil
}

// one runs a statement expected to yield a single status row. A non-empty
// slug marks a write, where a unique violation means the slug is taken.
func (sr *TodoStatusRepository) one(ctx context.Context, action, slug, query string, args []any) (domain.TodoStatus, error) {
	rows, err := sr.db.Query(ctx, query, args...)
	if err == nil {
		var record todoStatusRow

		record, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[todoStatusRow])
		if err == nil {
			return record.toDomain(), nil
		}
	}

	if slug != "" && isUniqueViolation(err) {
		return domain.TodoStatus{}, &domain.DuplicateSlugError{Slug: slug}
	}

	return domain.TodoStatus{}, notFoundOr(err, domain.ErrTodoStatusNotFound, action)
}
