package request

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(value string) *string {
	return &value
}

func TestTodoCreateRequest_ToDomain(t *testing.T) {
	req := TodoCreateRequest{
		Title:  strPtr("A"),
		Body:   strPtr("B"),
		Status: strPtr("done"),
		Start:  strPtr("01/01/2024"),
		End:    strPtr("02/01/2024"),
	}

	t.Run("should convert dates", func(t *testing.T) {
		todo, err := req.ToDomain()

		require.NoError(t, err)
		assert.Equal(t, "01/01/2024", todo.StartString())
		assert.Equal(t, "02/01/2024", todo.EndString())
	})

	t.Run("should name the failing field", func(t *testing.T) {
		bad := req
		bad.End = strPtr("2024-01-02")

		_, err := bad.ToDomain()

		var dateErr *DateFieldError
		require.True(t, errors.As(err, &dateErr))
		assert.Equal(t, "end", dateErr.Field)
		assert.Equal(t, "The end does not match the format d/m/Y.", dateErr.Error())
	})
}

func TestTodoUpdateRequest_ToPatch(t *testing.T) {
	_, err := TodoUpdateRequest{Start: strPtr("31/02/2024")}.ToPatch()

	var dateErr *DateFieldError
	require.True(t, errors.As(err, &dateErr))
	assert.Equal(t, "start", dateErr.Field)

	_, err = TodoUpdateRequest{End: strPtr("13/13/2024")}.ToPatch()
	require.True(t, errors.As(err, &dateErr))
	assert.Equal(t, "end", dateErr.Field)
}
