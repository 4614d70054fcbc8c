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

const todosTable = "todos"

var todoColumns = []string{"id", "title", "body", "status", "start_date", "end_date", "created_at", "updated_at"}

type todoRow struct {
	ID        int64     `db:"id"`
	Title     string    `db:"title"`
	Body      string    `db:"body"`
	Status    string    `db:"status"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r todoRow) toDomain() domain.Todo {
	return domain.Todo{
		ID:        r.ID,
		Title:     r.Title,
		Body:      r.Body,
		Status:    r.Status,
		Start:     r.StartDate,
		End:       r.EndDate,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type TodoRepository struct {
	db        *sqlite.DB
	scanner   *sqlite.Scanner
	telemetry port.Telemetry
}

func NewTodoRepository(db *sqlite.DB, telemetry port.Telemetry) port.TodoRepository {
	return &TodoRepository{
		db:        db,
		scanner:   sqlite.NewScanner(),
		telemetry: telemetryOrNoop(telemetry),
	}
}

func (tr *TodoRepository) GetAll(ctx context.Context) (todos []domain.Todo, err error) {
	ctx, op := begin(ctx, tr.telemetry, "GetAll", "todo")
	defer func() { op.end(err) }()

	query, args, err := tr.db.QueryBuilder.Select(todoColumns...).
		From(todosTable).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, persistenceError("build select todos", err)
	}

	rows, err := tr.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, persistenceError("select todos", err)
	}

	defer rows.Close()

	var records []todoRow
	if err = tr.scanner.ScanRowsToSlice(rows, &records); err != nil {
		return nil, persistenceError("scan todos", err)
	}

	todos = make([]domain.Todo, 0, len(records))
	for _, record := range records {
		todos = append(todos, record.toDomain())
	}

	op.span.SetAttributes(attribute.Int("db.rows_returned", len(todos)))

	return todos, nil
}

func (tr *TodoRepository) GetByID(ctx context.Context, id int64) (todo domain.Todo, err error) {
	ctx, op := begin(ctx, tr.telemetry, "GetByID", "todo", attribute.Int64("todo.id", id))
	defer func() { op.end(err) }()

	query, args, err := tr.db.QueryBuilder.Select(todoColumns...).
		From(todosTable).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		return domain.Todo{}, persistenceError("build select todo", err)
	}

	rows, err := tr.db.QueryContext(ctx, query, args...)
	if err != nil {
		return domain.Todo{}, persistenceError("select todo", err)
	}

	defer rows.Close()

	var record todoRow
	if err = tr.scanner.ScanRowToStruct(rows, &record); err != nil {
		return domain.Todo{}, notFoundOr(err, domain.ErrTodoNotFound, "scan todo")
	}

	return record.toDomain(), nil
}

func (tr *TodoRepository) Create(ctx context.Context, todo domain.Todo) (saved domain.Todo, err error) {
	ctx, op := begin(ctx, tr.telemetry, "Create", "todo", attribute.String("todo.status", todo.Status))
	defer func() { op.end(err) }()

	now := time.Now().UTC()

	query, args, err := tr.db.QueryBuilder.Insert(todosTable).
		Columns("title", "body", "status", "start_date", "end_date", "created_at", "updated_at").
		Values(todo.Title, todo.Body, todo.Status, todo.Start.Format(dateLayout), todo.End.Format(dateLayout), now, now).
		ToSql()

	if err != nil {
		return domain.Todo{}, persistenceError("build insert todo", err)
	}

	result, err := tr.db.ExecContext(ctx, query, args...)
	if err != nil {
		return domain.Todo{}, persistenceError("insert todo", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return domain.Todo{}, persistenceError("read todo id", err)
	}

	op.span.SetAttributes(attribute.Int64("todo.id", id))

	return tr.GetByID(ctx, id)
}

func (tr *TodoRepository) Update(ctx context.Context, todo domain.Todo) (updated domain.Todo, err error) {
	ctx, op := begin(ctx, tr.telemetry, "Update", "todo", attribute.Int64("todo.id", todo.ID))
	defer func() { op.end(err) }()

	query, args, err := tr.db.QueryBuilder.Update(todosTable).
		SetMap(map[string]interface{}{
			"title":      todo.Title,
			"body":       todo.Body,
			"status":     todo.Status,
			"start_date": todo.Start.Format(dateLayout),
			"end_date":   todo.End.Format(dateLayout),
			"updated_at": time.Now().UTC(),
		}).
		Where(sq.Eq{"id": todo.ID}).
		ToSql()

	if err != nil {
		return domain.Todo{}, persistenceError("build update todo", err)
	}

	result, err := tr.db.ExecContext(ctx, query, args...)
	if err != nil {
		return domain.Todo{}, persistenceError("update todo", err)
	}

	if err = rowsAffected(result, domain.ErrTodoNotFound, "update todo"); err != nil {
		return domain.Todo{}, err
	}

	return tr.GetByID(ctx, todo.ID)
}

func (tr *TodoRepository) Delete(ctx context.Context, id int64) (err error) {
	ctx, op := begin(ctx, tr.telemetry, "Delete", "todo", attribute.Int64("todo.id", id))
	defer func() { op.end(err) }()

	query, args, err := tr.db.QueryBuilder.Delete(todosTable).
		Where(sq.Eq{"id": id}).
		ToSql()

	if err != nil {
		return persistenceError("build delete todo", err)
	}

	result, err := tr.db.ExecContext(ctx, query, args...)
	if err != nil {
		return persistenceError("delete todo", err)
	}

	return rowsAffected(result, domain.ErrTodoNotFound, "delete todo")
}
