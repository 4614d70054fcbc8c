package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"
	tel "todoapi/internal/core/telemetry"
	"todoapi/pkg/tracing"
)

const uniqueViolation = "23505"

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
		attribute.String("db.system", "postgresql"),
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
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound
	}

	return persistenceError(action, err)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
