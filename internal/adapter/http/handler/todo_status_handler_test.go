package handler

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"

	"todoapi/internal/adapter/database/memory"
	"todoapi/internal/adapter/database/sqlite/repository"
	"todoapi/internal/core/service"
	. "todoapi/pkg/test"
)

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func newStatusRouter(t *testing.T) *gin.Engine {
	db := InitTestDB(t)
	svc := service.NewTodoStatusService(repository.NewTodoStatusRepository(db, nil), memory.NewMemoryRepository(), 0, nil)

	return setupTestRouter(nil, NewTodoStatusHandler(svc, nil))
}

func TestTodoStatusHandler_Lifecycle(t *testing.T) {
	RegisterTestingT(t)
	router := newStatusRouter(t)

	w, env := doRequest(router, http.MethodGet, "/todostatus", nil)
	Expect(w.Code).To(Equal(http.StatusOK))
	Expect(env.text()).To(Equal("No todo status added yet"))
	Expect(env.Data["todo_statuses"]).To(BeEmpty())

	w, env = doRequest(router, http.MethodPost, "/todostatus", map[string]any{"slug": "pending"})
	Expect(w.Code).To(Equal(http.StatusCreated))
	Expect(env.text()).To(Equal("Todo status created successfully"))

	status := env.Data["todo_status"].(map[string]any)
	Expect(status["slug"]).To(Equal("pending"))
	id := int64(status["id"].(float64))

	w, env = doRequest(router, http.MethodGet, "/todostatus", nil)
	Expect(env.text()).To(Equal("All todo statuses returned successfully"))
	Expect(env.Data["todo_statuses"]).To(HaveLen(1))

	w, env = doRequest(router, http.MethodGet, "/todostatus/"+itoa(id), nil)
	Expect(w.Code).To(Equal(http.StatusOK))
	Expect(env.text()).To(Equal("Todo status fetched successfully"))

	w, env = doRequest(router, http.MethodPut, "/todostatus/"+itoa(id), map[string]any{"slug": "waiting"})
	Expect(w.Code).To(Equal(http.StatusOK))
	Expect(env.text()).To(Equal("Todo status updated successfully"))
	Expect(env.Data["todo_status"].(map[string]any)["slug"]).To(Equal("waiting"))

	w, env = doRequest(router, http.MethodDelete, "/todostatus/"+itoa(id), nil)
	Expect(w.Code).To(Equal(http.StatusOK))
	Expect(env.text()).To(Equal("Todo status deleted successfully"))

	w, env = doRequest(router, http.MethodGet, "/todostatus/"+itoa(id), nil)
	Expect(w.Code).To(Equal(http.StatusBadRequest))
	Expect(env.text()).To(Equal("Todo status not found"))
}

func TestTodoStatusHandler_Validation(t *testing.T) {
	router := newStatusRouter(t)

	w, env := doRequest(router, http.MethodPost, "/todostatus", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	summary, fields := env.fields()
	assert.Equal(t, statusCreateSummary, summary)
	assert.Equal(t, []string{"The slug field is required."}, fields["slug"])

	w, env = doRequest(router, http.MethodPost, "/todostatus", map[string]any{"slug": []string{"a"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	_, fields = env.fields()
	assert.Equal(t, []string{"The slug must be a string."}, fields["slug"])

	w, _ = doRequest(router, http.MethodPost, "/todostatus", map[string]any{"slug": "pending"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w, env = doRequest(router, http.MethodPost, "/todostatus", map[string]any{"slug": "pending"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	_, fields = env.fields()
	assert.Equal(t, []string{"The slug has already been taken."}, fields["slug"])

	w, env = doRequest(router, http.MethodPut, "/todostatus/77", map[string]any{"slug": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	summary, _ = env.fields()
	assert.Equal(t, statusUpdateSummary, summary)

	w, env = doRequest(router, http.MethodDelete, "/todostatus/77", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Todo status not found", env.text())
}
