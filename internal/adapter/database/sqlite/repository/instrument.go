package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"
	tel "todoapi/internal/core/telemetry"
	"todoapi/pkg/tracing"
)

// dateLayout is how start/end dates are stored in DATE columns.
const dateLayout = "2006-01-02"

type operation struct {
	ctx       context.Context
	span      trace.Span
	name      string
	entity    string
	startTime time.Time
	telemetry port.Telemetry
}

func telemetryOrNoop(telemetry port.Telemetry) port.Telemetry {
	if telemetry == nil {
		return tel.NewNoOpProbe()
	}

	return telemetry
}

func begin(ctx context.Context, telemetry port.Telemetry, name, entity string, attrs ...attribute.KeyValue) (context.Context, *operation) {
	attrs = append(attrs,
		attribute.String("db.system", "sqlite"),
		attribute.String("db.operation", name),
	)

	ctx, span := telemetry.StartRepositorySpan(ctx, name, entity, attrs...)

	return ctx, &operation{
		ctx:       ctx,
		span:      span,
		name:      name,
		entity:    entity,
		startTime: time.Now(),
		telemetry: telemetry,
	}
}

// end closes the span and records the outcome. Missing rows are not errors
// from the storage point of view.
func (o *operation) end(err error) {
	defer o.span.End()

	if err != nil && !domain.IsNotFound(err) {
		tracing.AddSpanError(o.span, err)
		o.telemetry.RecordRepositoryOperation(o.ctx, o.name, o.entity, time.Since(o.startTime), err)
		return
	}

	o.span.SetStatus(codes.Ok, "")
	o.telemetry.RecordRepositoryOperation(o.ctx, o.name, o.entity, time.Since(o.startTime), nil)
}

func persistenceError(action string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrPersistence, action, err)
}

func notFoundOr(err error, notFound error, action string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}

	return persistenceError(action, err)
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error

	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

func rowsAffected(result sql.Result, notFound error, action string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return persistenceError(action, err)
	}

	if affected == 0 {
		return notFound
	}

	return nil
}
