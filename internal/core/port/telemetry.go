package port

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Telemetry lets repositories and services emit spans and metrics without
// knowing the exporter behind them.
type Telemetry interface {
	StartRepositorySpan(ctx context.Context, operation string, entity string, attrs ...attribute.KeyValue) (context.Context, trace.Span)
	RecordRepositoryOperation(ctx context.Context, operation string, entity string, duration time.Duration, err error)

	// Business events
	RecordBusinessEvent(ctx context.Context, event string, entity string, entityID int64)

	RecordCacheLookup(ctx context.Context, key string, hit bool)
}
