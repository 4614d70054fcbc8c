package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	. "todoapi/internal/adapter/http/helper"
	"todoapi/internal/adapter/http/validation"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/model/request"
	"todoapi/internal/core/model/response"
	"todoapi/pkg/config"
	. "todoapi/pkg/tracing"
)

// failure holds the messages an action answers with when the service fails.
type failure struct {
	action   response.Action
	notFound string
	problem  string
	summary  string
}

func respondError(ctx context.Context, c *gin.Context, logger *config.AppLogger, span trace.Span, f failure, err error) {
	var invalidStatus *domain.InvalidStatusError
	var duplicate *domain.DuplicateSlugError

	switch {
	case domain.IsNotFound(err):
		SendNotFoundError(c, f.action, f.notFound)
	case errors.As(err, &invalidStatus):
		SendInvalidStatusError(c, f.action, invalidStatus.Slug)
	case errors.As(err, &duplicate):
		SendValidationError(c, f.action, f.summary, validation.SlugTaken())
	default:
		AddSpanError(span, err)
		logger.ErrorWithTrace(ctx, f.problem, err, zap.String("action", string(f.action)))
		SendInternalError(c, f.action, f.problem)
	}

	AddHTTPAttributes(span, c.Request.Method, c.FullPath(), c.Writer.Status())
}

// dateFieldErrors reports a date conversion failure under the field it came
// from.
func dateFieldErrors(err error) validation.FieldErrors {
	var dateErr *request.DateFieldError
	if errors.As(err, &dateErr) {
		return validation.FieldErrors{dateErr.Field: {dateErr.Error()}}
	}

	return validation.FieldErrors{"body": {err.Error()}}
}
