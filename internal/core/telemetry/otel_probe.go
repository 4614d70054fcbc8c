package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"todoapi/internal/core/port"
)

const tracerName = "todoapi"

// OTELProbe implements port.Telemetry on top of OpenTelemetry spans and the
// Prometheus AppMetrics.
type OTELProbe struct {
	metrics *AppMetrics
}

func NewOTELProbe(metrics *AppMetrics) port.Telemetry {
	return &OTELProbe{metrics: metrics}
}

func (p *OTELProbe) StartRepositorySpan(ctx context.Context, operation string, entity string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	spanName := fmt.Sprintf("repository.%s.%s", entity, operation)

	standardAttrs := []attribute.KeyValue{
		attribute.String("repository.entity", entity),
		attribute.String("repository.operation", operation),
		attribute.String("component", "repository"),
	}

	standardAttrs = append(standardAttrs, attrs...)

	return otel.Tracer(tracerName).Start(ctx, spanName, trace.WithAttributes(standardAttrs...))
}

func (p *OTELProbe) RecordRepositoryOperation(ctx context.Context, operation string, entity string, duration time.Duration, err error) {
	status := "ok"

	if err != nil {
		status = "error"

		otelzap.Ctx(ctx).Debug("repository operation failed",
			zap.String("entity", entity),
			zap.String("operation", operation),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
	}

	p.metrics.RecordDatabaseOperation(ctx, operation, entity, status, duration)
}

func (p *OTELProbe) RecordBusinessEvent(ctx context.Context, event string, entity string, entityID int64) {
	trace.SpanFromContext(ctx).AddEvent(entity+"."+event, trace.WithAttributes(
		attribute.Int64(entity+".id", entityID),
	))

	p.metrics.RecordTodoOperation(ctx, entity, event)
}

func (p *OTELProbe) RecordCacheLookup(ctx context.Context, key string, hit bool) {
	if hit {
		p.metrics.RecordCacheHit(ctx, key)
		return
	}

	p.metrics.RecordCacheMiss(ctx, key)
}
