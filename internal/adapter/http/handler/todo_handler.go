package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	. "todoapi/internal/adapter/http/helper"
	"todoapi/internal/adapter/http/validation"
	"todoapi/internal/core/model/request"
	"todoapi/internal/core/model/response"
	"todoapi/internal/core/port"
	"todoapi/internal/core/util"
	"todoapi/pkg/config"
	. "todoapi/pkg/tracing"
)

const (
	todoCreateSummary = "Invalid or empty input parameters, see affected field(s) below"
	todoUpdateSummary = "Invalid input parameters, see affected field(s) below"
	todoNotFound      = "Todo not found"
)

type TodoHandler struct {
	svc    port.TodoService
	Logger *config.AppLogger
}

func NewTodoHandler(svc port.TodoService, logger *config.AppLogger) *TodoHandler {
	if logger == nil {
		logger = config.NewNopLogger()
	}

	return &TodoHandler{
		svc:    svc,
		Logger: logger,
	}
}

func (t *TodoHandler) Index(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.todo.Index", []attribute.KeyValue{
		attribute.String("handler.operation", "Index"),
		attribute.String("handler.path", c.FullPath()),
	})

	defer span.End()

	todos, err := t.svc.GetAll(ctx)
	if err != nil {
		respondError(ctx, c, t.Logger, span, failure{action: response.ActionFetch, problem: "Problem fetching todos"}, err)
		return
	}

	message := "All todos returned successfully"
	if len(todos) == 0 {
		message = "No todos yet"
	}

	AddSpanAttributes(span, attribute.Int("todo.count", len(todos)))

	SendSuccess(c, http.StatusOK, response.ActionFetch, message, gin.H{"todos": response.NewTodoResponses(todos)})
}

func (t *TodoHandler) Store(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.todo.Store", []attribute.KeyValue{
		attribute.String("handler.operation", "Store"),
	})

	defer span.End()

	params, err := util.ParamsToMap(c)
	if err != nil {
		SendValidationError(c, response.ActionCreate, todoCreateSummary, validation.MalformedBody())
		return
	}

	var req request.TodoCreateRequest
	if fieldErrors := validation.Bind(params, &req); fieldErrors != nil {
		SendValidationError(c, response.ActionCreate, todoCreateSummary, fieldErrors)
		return
	}

	todo, err := req.ToDomain()
	if err != nil {
		SendValidationError(c, response.ActionCreate, todoCreateSummary, dateFieldErrors(err))
		return
	}

	created, err := t.svc.Create(ctx, todo)
	if err != nil {
		respondError(ctx, c, t.Logger, span, failure{
			action:  response.ActionCreate,
			problem: "Problem adding todo",
			summary: todoCreateSummary,
		}, err)
		return
	}

	t.Logger.InfoWithTrace(ctx, "Todo created")

	SendSuccess(c, http.StatusCreated, response.ActionCreate, "Todo created successfully", gin.H{"todo": response.NewTodoResponse(created)})
}

func (t *TodoHandler) Show(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.todo.Show", []attribute.KeyValue{
		attribute.String("handler.operation", "Show"),
		attribute.String("todo.id", c.Param("id")),
	})

	defer span.End()

	id, ok := util.ParseID(c)
	if !ok {
		SendNotFoundError(c, response.ActionFetch, todoNotFound)
		return
	}

	todo, err := t.svc.GetByID(ctx, id)
	if err != nil {
		respondError(ctx, c, t.Logger, span, failure{
			action:   response.ActionFetch,
			notFound: todoNotFound,
			problem:  "Problem fetching todo",
		}, err)
		return
	}

	SendSuccess(c, http.StatusOK, response.ActionFetch, "Todo fetched successfully", gin.H{"todo": response.NewTodoResponse(todo)})
}

func (t *TodoHandler) Update(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.todo.Update", []attribute.KeyValue{
		attribute.String("handler.operation", "Update"),
		attribute.String("todo.id", c.Param("id")),
	})

	defer span.End()

	params, err := util.ParamsToMap(c)
	if err != nil {
		SendValidationError(c, response.ActionEdit, todoUpdateSummary, validation.MalformedBody())
		return
	}

	var req request.TodoUpdateRequest
	if fieldErrors := validation.Bind(params, &req); fieldErrors != nil {
		SendValidationError(c, response.ActionEdit, todoUpdateSummary, fieldErrors)
		return
	}

	id, ok := util.ParseID(c)
	if !ok {
		SendNotFoundError(c, response.ActionEdit, todoNotFound)
		return
	}

	patch, err := req.ToPatch()
	if err != nil {
		SendValidationError(c, response.ActionEdit, todoUpdateSummary, dateFieldErrors(err))
		return
	}

	updated, err := t.svc.Update(ctx, id, patch)
	if err != nil {
		respondError(ctx, c, t.Logger, span, failure{
			action:   response.ActionEdit,
			notFound: todoNotFound,
			problem:  "There was a problem updating the todo",
			summary:  todoUpdateSummary,
		}, err)
		return
	}

	SendSuccess(c, http.StatusOK, response.ActionEdit, "Todo updated successfully", gin.H{"todo": response.NewTodoResponse(updated)})
}

func (t *TodoHandler) Destroy(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.todo.Destroy", []attribute.KeyValue{
		attribute.String("handler.operation", "Destroy"),
		attribute.String("todo.id", c.Param("id")),
	})

	defer span.End()

	id, ok := util.ParseID(c)
	if !ok {
		SendNotFoundError(c, response.ActionRemove, todoNotFound)
		return
	}

	if err := t.svc.Delete(ctx, id); err != nil {
		respondError(ctx, c, t.Logger, span, failure{
			action:   response.ActionRemove,
			notFound: todoNotFound,
			problem:  "Problem deleting todo",
		}, err)
		return
	}

	SendSuccess(c, http.StatusOK, response.ActionRemove, "Todo deleted successfully", nil)
}
