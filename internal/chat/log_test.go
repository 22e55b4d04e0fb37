package chat

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageLog(t *testing.T) {
	t.Run("append preserves order", func(t *testing.T) {
		l := NewMessageLog(0)
		for i := 0; i < 5; i++ {
			l.Append(ChatMessage{ID: fmt.Sprintf("%d", i)})
		}

		snap := l.Snapshot()
		require.Len(t, snap, 5)
		for i, msg := range snap {
			assert.Equal(t, fmt.Sprintf("%d", i), msg.ID)
		}
	})

	t.Run("snapshot is isolated from later appends", func(t *testing.T) {
		l := NewMessageLog(0)
		l.Append(ChatMessage{ID: "1"})

		snap := l.Snapshot()
		l.Append(ChatMessage{ID: "2"})

		require.Len(t, snap, 1)
		assert.Equal(t, "1", snap[0].ID)
		assert.Equal(t, 2, l.Len())
	})

	t.Run("zero limit is unbounded", func(t *testing.T) {
		l := NewMessageLog(0)
		for i := 0; i < 1000; i++ {
			l.Append(ChatMessage{})
		}
		assert.Equal(t, 1000, l.Len())
	})

	t.Run("positive limit drops oldest", func(t *testing.T) {
		l := NewMessageLog(3)
		for i := 0; i < 5; i++ {
			l.Append(ChatMessage{ID: fmt.Sprintf("%d", i)})
		}

		snap := l.Snapshot()
		require.Len(t, snap, 3)
		assert.Equal(t, "2", snap[0].ID)
		assert.Equal(t, "4", snap[2].ID)
	})
}
