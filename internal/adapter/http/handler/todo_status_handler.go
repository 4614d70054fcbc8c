package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	. "todoapi/internal/adapter/http/helper"
	"todoapi/internal/adapter/http/validation"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/model/request"
	"todoapi/internal/core/model/response"
	"todoapi/internal/core/port"
	"todoapi/internal/core/util"
	"todoapi/pkg/config"
	. "todoapi/pkg/tracing"
)

const (
	statusCreateSummary = "Invalid or empty input parameter, see affected field below"
	statusUpdateSummary = "Invalid input parameter, see affected field below"
	statusNotFound      = "Todo status not found"
)

type TodoStatusHandler struct {
	svc    port.TodoStatusService
	Logger *config.AppLogger
}

func NewTodoStatusHandler(svc port.TodoStatusService, logger *config.AppLogger) *TodoStatusHandler {
	if logger == nil {
		logger = config.NewNopLogger()
	}

	return &TodoStatusHandler{
		svc:    svc,
		Logger: logger,
	}
}

func (h *TodoStatusHandler) Index(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.todo_status.Index", nil)
	defer span.End()

	statuses, err := h.svc.GetAll(ctx)
	if err != nil {
		respondError(ctx, c, h.Logger, span, failure{action: response.ActionFetch, problem: "Problem fetching todo statuses"}, err)
		return
	}

	message := "All todo statuses returned successfully"
	if len(statuses) == 0 {
		message = "No todo status added yet"
	}

	SendSuccess(c, http.StatusOK, response.ActionFetch, message, gin.H{"todo_statuses": response.NewTodoStatusResponses(statuses)})
}

func (h *TodoStatusHandler) Store(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.todo_status.Store", nil)
	defer span.End()

	params, err := util.ParamsToMap(c)
	if err != nil {
		SendValidationError(c, response.ActionCreate, statusCreateSummary, validation.MalformedBody())
		return
	}

	var req request.TodoStatusCreateRequest
	if fieldErrors := validation.Bind(params, &req); fieldErrors != nil {
		SendValidationError(c, response.ActionCreate, statusCreateSummary, fieldErrors)
		return
	}

	AddSpanAttributes(span, attribute.String("todo_status.slug", *req.Slug))

	created, err := h.svc.Create(ctx, domain.TodoStatus{Slug: *req.Slug})
	if err != nil {
		respondError(ctx, c, h.Logger, span, failure{
			action:  response.ActionCreate,
			problem: "Problem adding todo status",
			summary: statusCreateSummary,
		}, err)
		return
	}

	SendSuccess(c, http.StatusCreated, response.ActionCreate, "Todo status created successfully", gin.H{"todo_status": response.NewTodoStatusResponse(created)})
}

func (h *TodoStatusHandler) Show(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.todo_status.Show", []attribute.KeyValue{
		attribute.String("todo_status.id", c.Param("id")),
	})
	defer span.End()

	id, ok := util.ParseID(c)
	if !ok {
		SendNotFoundError(c, response.ActionFetch, statusNotFound)
		return
	}

	status, err := h.svc.GetByID(ctx, id)
	if err != nil {
		respondError(ctx, c, h.Logger, span, failure{
			action:   response.ActionFetch,
			notFound: statusNotFound,
			problem:  "Problem fetching todo status",
		}, err)
		return
	}

	SendSuccess(c, http.StatusOK, response.ActionFetch, "Todo status fetched successfully", gin.H{"todo_status": response.NewTodoStatusResponse(status)})
}

func (h *TodoStatusHandler) Update(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.todo_status.Update", []attribute.KeyValue{
		attribute.String("todo_status.id", c.Param("id")),
	})
	defer span.End()

	params, err := util.ParamsToMap(c)
	if err != nil {
		SendValidationError(c, response.ActionEdit, statusUpdateSummary, validation.MalformedBody())
		return
	}

	var req request.TodoStatusUpdateRequest
	if fieldErrors := validation.Bind(params, &req); fieldErrors != nil {
		SendValidationError(c, response.ActionEdit, statusUpdateSummary, fieldErrors)
		return
	}

	id, ok := util.ParseID(c)
	if !ok {
		SendNotFoundError(c, response.ActionEdit, statusNotFound)
		return
	}

	updated, err := h.svc.Update(ctx, id, req.ToPatch())
	if err != nil {
		respondError(ctx, c, h.Logger, span, failure{
			action:   response.ActionEdit,
			notFound: statusNotFound,
			problem:  "There was a problem updating the todo status",
			summary:  statusUpdateSummary,
		}, err)
		return
	}

	SendSuccess(c, http.StatusOK, response.ActionEdit, "Todo status updated successfully", gin.H{"todo_status": response.NewTodoStatusResponse(updated)})
}

func (h *TodoStatusHandler) Destroy(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.todo_status.Destroy", []attribute.KeyValue{
		attribute.String("todo_status.id", c.Param("id")),
	})
	defer span.End()

	id, ok := util.ParseID(c)
	if !ok {
		SendNotFoundError(c, response.ActionRemove, statusNotFound)
		return
	}

	if err := h.svc.Delete(ctx, id); err != nil {
		respondError(ctx, c, h.Logger, span, failure{
			action:   response.ActionRemove,
			notFound: statusNotFound,
			problem:  "Problem deleting todo status",
		}, err)
		return
	}

	SendSuccess(c, http.StatusOK, response.ActionRemove, "Todo status deleted successfully", nil)
}
