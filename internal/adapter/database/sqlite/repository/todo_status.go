package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"go.opentelemetry.io/otel/attribute"

	"todoapi/internal/adapter/database/sqlite"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"
)

const todoStatusesTable = "todo_statuses"

var todoStatusColumns = []string{"id", "slug", "created_at", "updated_at"}

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
	db        *sqlite.DB
	scanner   *sqlite.Scanner
	telemetry port.Telemetry
}

func NewTodoStatusRepository(db *sqlite.DB, telemetry port.Telemetry) port.TodoStatusRepository {
	return &TodoStatusRepository{
		db:        db,
		scanner:   sqlite.NewScanner(),
		telemetry: telemetryOrNoop(telemetry),
	}
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

	rows, err := sr.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, persistenceError("select todo statuses", err)
	}

	defer rows.Close()

	var records []todoStatusRow
	if err = sr.scanner.ScanRowsToSlice(rows, &records); err != nil {
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
		Limit(1).
		ToSql()

	if err != nil {
		return domain.TodoStatus{}, persistenceError("build select todo status", err)
	}

	rows, err := sr.db.QueryContext(ctx, query, args...)
	if err != nil {
		return domain.TodoStatus{}, persistenceError("select todo status", err)
	}

	defer rows.Close()

	var record todoStatusRow
	if err = sr.scanner.ScanRowToStruct(rows, &record); err != nil {
		return domain.TodoStatus{}, notFoundOr(err, domain.ErrTodoStatusNotFound, "scan todo status")
	}

	return record.toDomain(), nil
}

func (sr *TodoStatusRepository) Create(ctx context.Context, status domain.TodoStatus) (saved domain.TodoStatus, err error) {
	ctx, op := begin(ctx, sr.telemetry, "Create", "todo_status", attribute.String("todo_status.slug", status.Slug))
	defer func() { op.end(err) }()

	now := time.Now().UTC()

	query, args, err := sr.db.QueryBuilder.Insert(todoStatusesTable).
		Columns("slug", "created_at", "updated_at").
		Values(status.Slug, now, now).
		ToSql()

	if err != nil {
		return domain.TodoStatus{}, persistenceError("build insert todo status", err)
	}

	result, err := sr.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.TodoStatus{}, &domain.DuplicateSlugError{Slug: status.Slug}
		}

		return domain.TodoStatus{}, persistenceError("insert todo status", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return domain.TodoStatus{}, persistenceError("read todo status id", err)
	}

	return sr.GetByID(ctx, id)
}

func (sr *TodoStatusRepository) Update(ctx context.Context, status domain.TodoStatus) (updated domain.TodoStatus, err error) {
	ctx, op := begin(ctx, sr.telemetry, "Update", "todo_status", attribute.Int64("todo_status.id", status.ID))
	defer func() { op.end(err) }()

	query, args, err := sr.db.QueryBuilder.Update(todoStatusesTable).
		Set("slug", status.Slug).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": status.ID}).
		ToSql()

	if err != nil {
		return domain.TodoStatus{}, persistenceError("build update todo status", err)
	}

	result, err := sr.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.TodoStatus{}, &domain.DuplicateSlugError{Slug: status.Slug}
		}

		return domain.TodoStatus{}, persistenceError("update todo status", err)
	}

	if err = rowsAffected(result, domain.ErrTodoStatusNotFound, "update todo status"); err != nil {
		return domain.TodoStatus{}, err
	}

	return sr.GetByID(ctx, status.ID)
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

	result, err := sr.db.ExecContext(ctx, query, args...)
	if err != nil {
		return persistenceError("delete todo status", err)
	}

	return rowsAffected(result, domain.ErrTodoStatusNotFound, "delete todo status")
}
