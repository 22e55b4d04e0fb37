package chat

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ErrDisconnected is returned by outbound sends while the transport is
// down. The caller should wait for a reconnect before retrying.
var ErrDisconnected = errors.New("chat: not connected")

// TypingTimeout is how long a typing indicator survives without being
// refreshed. The decay is purely client-local; the server never sends a
// clearing event on its own.
const TypingTimeout = 3 * time.Second

// Session is the browser-side adapter expressed in Go: it layers the
// presentation state (message list, connected flag, user count, typing
// set) on top of a single websocket connection. It is what the chat
// widget consumes, and what the integration tests drive.
type Session struct {
	conn    *websocket.Conn
	writeMu sync.Mutex

	mu          sync.Mutex
	messages    []ChatMessage
	connected   bool
	userCount   int
	typingUsers map[string]*time.Timer
	closed      bool

	typingStopMu sync.Mutex
	typingStop   *time.Timer

	done chan struct{}
}

// Connect dials the chat endpoint and starts the receive loop.
// Reconnection is the caller's concern; a redial produces a brand-new
// session with a brand-new server-side connection identity.
func Connect(url string) (*Session, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}

	s := &Session{
		conn:        conn,
		connected:   true,
		typingUsers: make(map[string]*time.Timer),
		done:        make(chan struct{}),
	}
	go s.readLoop()
	return s, nil
}

func (s *Session) readLoop() {
	defer func() {
		s.mu.Lock()
		s.connected = false
		s.mu.Unlock()
		close(s.done)
	}()

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			return
		}

		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			continue
		}

		switch env.Event {
		case EventMessages:
			var history []ChatMessage
			if err := json.Unmarshal(env.Data, &history); err != nil {
				continue
			}
			s.mu.Lock()
			s.messages = history
			s.mu.Unlock()

		case EventMessage:
			var msg ChatMessage
			if err := json.Unmarshal(env.Data, &msg); err != nil {
				continue
			}
			s.mu.Lock()
			s.messages = append(s.messages, msg)
			s.mu.Unlock()

		case EventUserCount:
			var uc UserCountEvent
			if err := json.Unmarshal(env.Data, &uc); err != nil {
				continue
			}
			s.mu.Lock()
			s.userCount = uc.Count
			s.mu.Unlock()

		case EventTyping:
			var t TypingEvent
			if err := json.Unmarshal(env.Data, &t); err != nil {
				continue
			}
			s.applyTyping(t)
		}
	}
}

func (s *Session) applyTyping(t TypingEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if timer, ok := s.typingUsers[t.Username]; ok {
		timer.Stop()
		delete(s.typingUsers, t.Username)
	}
	if !t.IsTyping || s.closed {
		return
	}

	username := t.Username
	s.typingUsers[username] = time.AfterFunc(TypingTimeout, func() {
		s.mu.Lock()
		delete(s.typingUsers, username)
		s.mu.Unlock()
	})
}

// SendMessage submits a chat message. Text that is empty after trimming
// is rejected locally with no network call, mirroring the widget.
func (s *Session) SendMessage(text, username string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	if !s.Connected() {
		return ErrDisconnected
	}
	return s.writeEvent(EventMessage, MessageSubmission{Text: trimmed, Username: username})
}

// SendTyping forwards a typing signal. A true signal arms a timer that
// sends the matching false signal after TypingTimeout unless refreshed.
func (s *Session) SendTyping(username string, isTyping bool) error {
	if !s.Connected() {
		return ErrDisconnected
	}
	if err := s.writeEvent(EventTyping, TypingEvent{Username: username, IsTyping: isTyping}); err != nil {
		return err
	}

	s.typingStopMu.Lock()
	defer s.typingStopMu.Unlock()
	if s.typingStop != nil {
		s.typingStop.Stop()
		s.typingStop = nil
	}
	if isTyping {
		s.typingStop = time.AfterFunc(TypingTimeout, func() {
			if s.Connected() {
				_ = s.writeEvent(EventTyping, TypingEvent{Username: username, IsTyping: false})
			}
		})
	}
	return nil
}

func (s *Session) writeEvent(name string, data any) error {
	raw, err := encodeEvent(name, data)
	if err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteMessage(websocket.TextMessage, raw)
}

// Messages returns a copy of the local message list: the replayed
// snapshot plus everything broadcast since.
func (s *Session) Messages() []ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// Connected reports whether the transport is alive. The widget disables
// the send control while this is false.
func (s *Session) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

func (s *Session) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userCount
}

func (s *Session) TypingUsers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.typingUsers))
	for u := range s.typingUsers {
		out = append(out, u)
	}
	sort.Strings(out)
	return out
}

// Done is closed when the receive loop exits.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

func (s *Session) Close() error {
	s.typingStopMu.Lock()
	if s.typingStop != nil {
		s.typingStop.Stop()
		s.typingStop = nil
	}
	s.typingStopMu.Unlock()

	s.mu.Lock()
	s.closed = true
	for u, timer := range s.typingUsers {
		timer.Stop()
		delete(s.typingUsers, u)
	}
	s.mu.Unlock()

	return s.conn.Close()
}
