package repository

import (
	"context"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"

	"todoapi/internal/adapter/database/postgres"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"
)

const todosTable = "todos"

var todoColumns = []string{"id", "title", "body", "status", "start_date", "end_date", "created_at", "updated_at"}

var returningTodo = "RETURNING " + strings.Join(todoColumns, ", ")

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
	db        *postgres.DB
	telemetry port.Telemetry
}

func NewTodoRepository(db *postgres.DB, telemetry port.Telemetry) port.TodoRepository {
	return &TodoRepository{db: db, telemetry: telemetryOrNoop(telemetry)}
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

	rows, err := tr.db.Query(ctx, query, args...)
	if err != nil {
		return nil, persistenceError("select todos", err)
	}

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[todoRow])
	if err != nil {
		return nil, persistenceError("scan todos", err)
	}

	todos = make([]domain.Todo, 0, len(records))
	for _, record := range records {
		todos = append(todos, record.toDomain())
	}

	return todos, nil
}

func (tr *TodoRepository) GetByID(ctx context.Context, id int64) (todo domain.Todo, err error) {
	ctx, op := begin(ctx, tr.telemetry, "GetByID", "todo", attribute.Int64("todo.id", id))
	defer func() { op.end(err) }()

	query, args, err := tr.db.QueryBuilder.Select(todoColumns...).
		From(todosTable).
		Where(sq.Eq{"id": id}).
		ToSql()

	if err != nil {
		return domain.Todo{}, persistenceError("build select todo", err)
	}

	return tr.one(ctx, "select todo", query, args)
}

func (tr *TodoRepository) Create(ctx context.Context, todo domain.Todo) (saved domain.Todo, err error) {
	ctx, op := begin(ctx, tr.telemetry, "Create", "todo", attribute.String("todo.status", todo.Status))
	defer func() { op.end(err) }()

	query, args, err := tr.db.QueryBuilder.Insert(todosTable).
		Columns("title", "body", "status", "start_date", "end_date").
		Values(todo.Title, todo.Body, todo.Status, todo.Start, todo.End).
		Suffix(returningTodo).
		ToSql()

	if err != nil {
		return domain.Todo{}, persistenceError("build insert todo", err)
	}

	return tr.one(ctx, "insert todo", query, args)
}

func (tr *TodoRepository) Update(ctx context.Context, todo domain.Todo) (updated domain.Todo, err error) {
	ctx, op := begin(ctx, tr.telemetry, "Update", "todo", attribute.Int64("todo.id", todo.ID))
	defer func() { op.end(err) }()

	query, args, err := tr.db.QueryBuilder.Update(todosTable).
		SetMap(map[string]any{
			"title":      todo.Title,
			"body":       todo.Body,
			"status":     todo.Status,
			"start_date": todo.Start,
			"end_date":   todo.End,
			"updated_at": sq.Expr("NOW()"),
		}).
		Where(sq.Eq{"id": todo.ID}).
		Suffix(returningTodo).
		ToSql()

	if err != nil {
		return domain.Todo{}, persistenceError("build update todo", err)
	}

	return tr.one(ctx, "update todo", query, args)
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

	tag, err := tr.db.Exec(ctx, query, args...)
	if err != nil {
		return persistenceError("delete todo", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTodoNotFound
	}

	return nil
}

// one runs a statement expected to yield a single todo row.
func (tr *TodoRepository) one(ctx context.Context, action, query string, args []any) (domain.Todo, error) {
	rows, err := tr.db.Query(ctx, query, args...)
	if err != nil {
		return domain.Todo{}, persistenceError(action, err)
	}

	record, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[todoRow])
	if err != nil {
		return domain.Todo{}, notFoundOr(err, domain.ErrTodoNotFound, action)
	}

	return record.toDomain(), nil
}
