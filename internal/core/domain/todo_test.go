package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodo_Apply(t *testing.T) {
	start := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	t.Run("should only touch supplied fields", func(t *testing.T) {
		todo := Todo{Title: "Old", Body: "Body", Status: "pending", Start: start, End: start}
		title := "New"

		changed := todo.Apply(TodoPatch{Title: &title})

		assert.Equal(t, []string{"title"}, changed)
		assert.Equal(t, "New", todo.Title)
		assert.Equal(t, "Body", todo.Body)
		assert.Equal(t, "pending", todo.Status)
		assert.True(t, todo.Start.Equal(start))
	})

	t.Run("should report nothing when values are equal", func(t *testing.T) {
		todo := Todo{Title: "Same", Status: "done", Start: start}
		title := "Same"
		status := "done"

		changed := todo.Apply(TodoPatch{Title: &title, Status: &status, Start: &start})

		assert.Empty(t, changed)
	})

	t.Run("should update dates", func(t *testing.T) {
		todo := Todo{Start: start, End: start}
		end := start.AddDate(0, 0, 5)

		changed := todo.Apply(TodoPatch{End: &end})

		assert.Equal(t, []string{"end"}, changed)
		assert.Equal(t, "15/01/2024", todo.EndString())
	})
}

func TestParseDate(t *testing.T) {
	t.Run("should parse d/m/Y", func(t *testing.T) {
		date, err := ParseDate("25/12/2024")

		require.NoError(t, err)
		assert.Equal(t, 25, date.Day())
		assert.Equal(t, time.December, date.Month())
		assert.Equal(t, 2024, date.Year())
	})

	t.Run("should reject other layouts", func(t *testing.T) {
		for _, value := range []string{"2024-12-25", "12/25/2024", "31/02/2024", "5/1/2024", ""} {
			_, err := ParseDate(value)
			assert.Error(t, err, value)
		}
	})

	t.Run("should format zero time as empty", func(t *testing.T) {
		assert.Equal(t, "", FormatDate(time.Time{}))
	})
}

func TestErrors(t *testing.T) {
	wrapped := fmt.Errorf("repository: %w", ErrTodoNotFound)

	assert.True(t, IsNotFound(wrapped))
	assert.True(t, IsNotFound(ErrTodoStatusNotFound))
	assert.False(t, IsNotFound(ErrPersistence))

	var invalid *InvalidStatusError
	err := fmt.Errorf("service: %w", &InvalidStatusError{Slug: "archived"})

	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "archived", invalid.Slug)
	assert.Contains(t, invalid.Error(), "archived")
}
