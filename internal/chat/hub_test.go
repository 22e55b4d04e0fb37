package chat

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio_server/pkg/logger"
)

// startChatServer runs a hub behind an httptest server, wiring each
// websocket request into a Client the same way the HTTP handler does.
func startChatServer(t *testing.T, maxMessageLen, historyLimit int) (*Hub, string) {
	t.Helper()

	hub := NewHub(maxMessageLen, historyLimit, logger.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	upgrader := websocket.Upgrader{
		CheckOrigin: func(*http.Request) bool { return true },
	}

	var nextID atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}

		client := NewClient(fmt.Sprintf("conn-%d", nextID.Add(1)), hub, conn, logger.NewNop())
		reg := Registration{Client: client, Done: make(chan struct{})}
		hub.Register <- reg
		<-reg.Done

		go client.WritePump()
		client.ReadPump()
	}))

	t.Cleanup(func() {
		srv.Close()
		cancel()
	})

	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

// eventually polls cond until it holds or the deadline passes.
func eventually(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

func TestBroadcastReachesEveryoneIncludingSender(t *testing.T) {
	_, url := startChatServer(t, 1000, 0)

	s1, err := Connect(url)
	require.NoError(t, err)
	defer s1.Close()

	s2, err := Connect(url)
	require.NoError(t, err)
	defer s2.Close()

	require.NoError(t, s1.SendMessage("hello everyone", "alice"))

	for _, s := range []*Session{s1, s2} {
		sess := s
		require.True(t, eventually(t, 2*time.Second, func() bool {
			return len(sess.Messages()) == 1
		}), "message did not reach all sessions")
	}

	msg := s1.Messages()[0]
	assert.Equal(t, "hello everyone", msg.Text)
	assert.Equal(t, "alice", msg.Username)
	assert.NotEmpty(t, msg.ID)
	assert.NotEmpty(t, msg.Timestamp)
}

func TestHistoryReplayOnConnect(t *testing.T) {
	_, url := startChatServer(t, 1000, 0)

	s1, err := Connect(url)
	require.NoError(t, err)
	defer s1.Close()

	require.NoError(t, s1.SendMessage("first", "alice"))
	require.NoError(t, s1.SendMessage("second", "alice"))

	require.True(t, eventually(t, 2*time.Second, func() bool {
		return len(s1.Messages()) == 2
	}))

	// A late joiner gets the full history before any live traffic.
	s2, err := Connect(url)
	require.NoError(t, err)
	defer s2.Close()

	require.True(t, eventually(t, 2*time.Second, func() bool {
		return len(s2.Messages()) == 2
	}))

	msgs := s2.Messages()
	assert.Equal(t, "first", msgs[0].Text)
	assert.Equal(t, "second", msgs[1].Text)
	assert.Less(t, msgs[0].ID, msgs[1].ID, "ids should be assigned in arrival order")
}

func TestEmptyAndWhitespaceMessagesAreDropped(t *testing.T) {
	_, url := startChatServer(t, 1000, 0)

	s1, err := Connect(url)
	require.NoError(t, err)
	defer s1.Close()

	// SendMessage rejects blank text locally; go under it to check the
	// server-side drop too.
	require.NoError(t, s1.writeEvent(EventMessage, MessageSubmission{Text: "   ", Username: "alice"}))
	require.NoError(t, s1.writeEvent(EventMessage, MessageSubmission{Text: "", Username: "alice"}))
	require.NoError(t, s1.SendMessage("real one", "alice"))

	require.True(t, eventually(t, 2*time.Second, func() bool {
		return len(s1.Messages()) == 1
	}))

	// Only the non-blank message survived.
	time.Sleep(100 * time.Millisecond)
	msgs := s1.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "real one", msgs[0].Text)
}

func TestMarkupIsStrippedFromMessages(t *testing.T) {
	_, url := startChatServer(t, 1000, 0)

	s1, err := Connect(url)
	require.NoError(t, err)
	defer s1.Close()

	require.NoError(t, s1.SendMessage("<b>bold</b> move", "alice"))
	// Markup-only text sanitizes to nothing and is dropped.
	require.NoError(t, s1.SendMessage("<script>alert(1)</script>", "alice"))
	require.NoError(t, s1.SendMessage("done", "alice"))

	require.True(t, eventually(t, 2*time.Second, func() bool {
		msgs := s1.Messages()
		return len(msgs) == 2 && msgs[1].Text == "done"
	}))

	assert.Equal(t, "bold move", s1.Messages()[0].Text)
}

func TestAnonymousFallbackUsername(t *testing.T) {
	_, url := startChatServer(t, 1000, 0)

	s1, err := Connect(url)
	require.NoError(t, err)
	defer s1.Close()

	require.NoError(t, s1.SendMessage("who am i", "   "))

	require.True(t, eventually(t, 2*time.Second, func() bool {
		return len(s1.Messages()) == 1
	}))
	assert.Equal(t, "Anonymous", s1.Messages()[0].Username)
}

func TestUserCountTracksConnections(t *testing.T) {
	_, url := startChatServer(t, 1000, 0)

	s1, err := Connect(url)
	require.NoError(t, err)
	defer s1.Close()

	require.True(t, eventually(t, 2*time.Second, func() bool {
		return s1.UserCount() == 1
	}))

	s2, err := Connect(url)
	require.NoError(t, err)

	require.True(t, eventually(t, 2*time.Second, func() bool {
		return s1.UserCount() == 2 && s2.UserCount() == 2
	}))

	require.NoError(t, s2.Close())

	require.True(t, eventually(t, 2*time.Second, func() bool {
		return s1.UserCount() == 1
	}))
}

func TestTypingBroadcastSkipsSender(t *testing.T) {
	_, url := startChatServer(t, 1000, 0)

	s1, err := Connect(url)
	require.NoError(t, err)
	defer s1.Close()

	s2, err := Connect(url)
	require.NoError(t, err)
	defer s2.Close()

	require.NoError(t, s1.SendTyping("alice", true))

	require.True(t, eventually(t, 2*time.Second, func() bool {
		users := s2.TypingUsers()
		return len(users) == 1 && users[0] == "alice"
	}), "observer never saw the typing indicator")

	// The sender never receives its own indicator.
	assert.Empty(t, s1.TypingUsers())

	require.NoError(t, s1.SendTyping("alice", false))
	require.True(t, eventually(t, 2*time.Second, func() bool {
		return len(s2.TypingUsers()) == 0
	}))
}

func TestTypingIsNeverLogged(t *testing.T) {
	hub, url := startChatServer(t, 1000, 0)

	s1, err := Connect(url)
	require.NoError(t, err)
	defer s1.Close()

	require.NoError(t, s1.SendTyping("alice", true))
	require.NoError(t, s1.SendMessage("actual message", "alice"))

	require.True(t, eventually(t, 2*time.Second, func() bool {
		return len(s1.Messages()) == 1
	}))

	assert.Equal(t, 1, hub.log.Len())
}

func TestMessageIDsAreStrictlyIncreasing(t *testing.T) {
	_, url := startChatServer(t, 1000, 0)

	s1, err := Connect(url)
	require.NoError(t, err)
	defer s1.Close()

	const n = 5
	for i := 0; i < n; i++ {
		require.NoError(t, s1.SendMessage(fmt.Sprintf("msg %d", i), "alice"))
	}

	require.True(t, eventually(t, 2*time.Second, func() bool {
		return len(s1.Messages()) == n
	}))

	msgs := s1.Messages()
	for i := 1; i < n; i++ {
		assert.Less(t, msgs[i-1].ID, msgs[i].ID)
	}
}

func TestLongMessagesAreTruncated(t *testing.T) {
	_, url := startChatServer(t, 10, 0)

	s1, err := Connect(url)
	require.NoError(t, err)
	defer s1.Close()

	require.NoError(t, s1.SendMessage(strings.Repeat("x", 50), "alice"))

	require.True(t, eventually(t, 2*time.Second, func() bool {
		return len(s1.Messages()) == 1
	}))
	assert.Equal(t, strings.Repeat("x", 10), s1.Messages()[0].Text)
}
