package response

import (
	"time"

	"todoapi/internal/core/domain"
)

type Action string

const (
	ActionFetch  Action = "fetch"
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
	ActionRemove Action = "remove"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope wraps every API response. Message is a string, or for validation
// failures a [summary, {field: [messages]}] pair.
type Envelope struct {
	Code    string `json:"code"`
	Action  Action `json:"action"`
	Status  string `json:"status"`
	Message any    `json:"message"`
	Data    any    `json:"data,omitempty"`
	Issue   string `json:"issue,omitempty"`
}

type TodoResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Status    string    `json:"status"`
	Start     string    `json:"start"`
	End       string    `json:"end"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewTodoResponse(todo domain.Todo) TodoResponse {
	return TodoResponse{
		ID:        todo.ID,
		Title:     todo.Title,
		Body:      todo.Body,
		Status:    todo.Status,
		Start:     todo.StartString(),
		End:       todo.EndString(),
		CreatedAt: todo.CreatedAt,
		UpdatedAt: todo.UpdatedAt,
	}
}

func NewTodoResponses(todos []domain.Todo) []TodoResponse {
	items := make([]TodoResponse, 0, len(todos))

	for _, todo := range todos {
		items = append(items, NewTodoResponse(todo))
	}

	return items
}

type TodoStatusResponse struct {
	ID        int64     `json:"id"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewTodoStatusResponse(status domain.TodoStatus) TodoStatusResponse {
	return TodoStatusResponse{
		ID:        status.ID,
		Slug:      status.Slug,
		CreatedAt: status.CreatedAt,
		UpdatedAt: status.UpdatedAt,
	}
}

func NewTodoStatusResponses(statuses []domain.TodoStatus) []TodoStatusResponse {
	items := make([]TodoStatusResponse, 0, len(statuses))

	for _, status := range statuses {
		items = append(items, NewTodoStatusResponse(status))
	}

	return items
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks"`
	Timestamp time.Time         `json:"timestamp"`
}
