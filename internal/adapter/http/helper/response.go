package helper

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"todoapi/internal/adapter/http/validation"
	"todoapi/internal/core/model/response"
)

const InvalidStatusMessage = "Invalid todo status supplied"

func SendSuccess(c *gin.Context, statusCode int, action response.Action, message string, data any) {
	c.JSON(statusCode, response.Envelope{
		Code:    strconv.Itoa(statusCode),
		Action:  action,
		Status:  response.StatusSuccess,
		Message: message,
		Data:    data,
	})
}

func SendError(c *gin.Context, statusCode int, action response.Action, message any, issue ...string) {
	envelope := response.Envelope{
		Code:    strconv.Itoa(statusCode),
		Action:  action,
		Status:  response.StatusError,
		Message: message,
	}

	if len(issue) > 0 {
		envelope.Issue = issue[0]
	}

	c.AbortWithStatusJSON(statusCode, envelope)
}

// SendValidationError answers 400 with the [summary, fields] message pair.
func SendValidationError(c *gin.Context, action response.Action, summary string, fields validation.FieldErrors) {
	SendError(c, http.StatusBadRequest, action, []any{summary, fields})
}

func SendNotFoundError(c *gin.Context, action response.Action, message string) {
	SendError(c, http.StatusBadRequest, action, message)
}

func SendInvalidStatusError(c *gin.Context, action response.Action, slug string) {
	SendError(c, http.StatusBadRequest, action, InvalidStatusMessage, slug)
}

// SendInternalError hides the storage detail behind a generic message.
func SendInternalError(c *gin.Context, action response.Action, message string) {
	SendError(c, http.StatusInternalServerError, action, message)
}
