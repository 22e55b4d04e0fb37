package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry(t *testing.T) {
	t.Run("register and count", func(t *testing.T) {
		r := NewRegistry()
		r.Register("a")
		r.Register("b")

		assert.Equal(t, 2, r.Count())
		assert.True(t, r.Contains("a"))
		assert.False(t, r.Contains("c"))
	})

	t.Run("register is idempotent", func(t *testing.T) {
		r := NewRegistry()
		r.Register("a")
		r.Register("a")

		assert.Equal(t, 1, r.Count())
	})

	t.Run("unregister unknown id is a no-op", func(t *testing.T) {
		r := NewRegistry()
		r.Register("a")
		r.Unregister("never-registered")

		assert.Equal(t, 1, r.Count())
	})

	t.Run("unregister removes", func(t *testing.T) {
		r := NewRegistry()
		r.Register("a")
		r.Unregister("a")

		assert.Equal(t, 0, r.Count())
		assert.False(t, r.Contains("a"))
	})
}
