package context

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrent(t *testing.T) {
	t.Run("should store and read values", func(t *testing.T) {
		current := NewCurrent()
		current.Set("request_id", "abc")
		current.Set("attempt", 2)

		id, ok := current.GetString("request_id")
		assert.True(t, ok)
		assert.Equal(t, "abc", id)

		_, ok = current.GetString("attempt")
		assert.False(t, ok)
		assert.Equal(t, 2, current.Get("attempt"))

		_, ok = current.GetString("missing")
		assert.False(t, ok)
	})

	t.Run("should travel through the context", func(t *testing.T) {
		current := NewCurrent()
		current.Set("request_id", "req-1")

		ctx := WithCurrent(context.Background(), current)

		found, ok := FromContext(ctx)
		assert.True(t, ok)
		assert.Same(t, current, found)
		assert.Equal(t, "req-1", RequestID(ctx))
	})

	t.Run("should fall back to an empty current", func(t *testing.T) {
		ctx := context.Background()

		assert.NotNil(t, GetCurrent(ctx))
		assert.Equal(t, "", RequestID(ctx))
	})
}
