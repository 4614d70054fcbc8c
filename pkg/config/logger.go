package config

import (
	"context"
	"fmt"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// AppLogger is a zap logger wrapped by otelzap so that entries written with
// Logger.Ctx(ctx) carry the trace and span ids of the request.
type AppLogger struct {
	Logger      *otelzap.Logger
	ServiceName string
}

func NewAppLogger(serviceName, level string) (*AppLogger, error) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.TimeKey = "timestamp"

	if level != "" {
		atomicLevel, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}

		config.Level = atomicLevel
	}

	zapLogger, err := config.Build(zap.Fields(zap.String("service", serviceName)))
	if err != nil {
		return nil, fmt.Errorf("failed to create zap logger: %w", err)
	}

	otelLogger := otelzap.New(zapLogger)
	otelzap.ReplaceGlobals(otelLogger)

	return &AppLogger{
		Logger:      otelLogger,
		ServiceName: serviceName,
	}, nil
}

// NewNopLogger discards every entry. Used by tests.
func NewNopLogger() *AppLogger {
	return &AppLogger{
		Logger:      otelzap.New(zap.NewNop()),
		ServiceName: "todoapi-test",
	}
}

func (l *AppLogger) Sync() error {
	return l.Logger.Sync()
}

func (l *AppLogger) InfoWithTrace(ctx context.Context, msg string, fields ...zap.Field) {
	l.Logger.Ctx(ctx).Info(msg, fields...)
}

func (l *AppLogger) ErrorWithTrace(ctx context.Context, msg string, err error, fields ...zap.Field) {
	l.Logger.Ctx(ctx).Error(msg, append(fields, zap.Error(err))...)
}
