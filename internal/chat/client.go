package chat

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"portfolio_server/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxFrameSize   = 4096
	sendBufferSize = 64
)

// Client is the server-side half of one websocket connection. Its read
// pump validates wire payloads and forwards typed events to the hub; its
// write pump drains the send channel the hub broadcasts into.
type Client struct {
	ID   string
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	messageLim *rate.Limiter
	typingLim  *rate.Limiter

	log logger.Logger
}

func NewClient(id string, hub *Hub, conn *websocket.Conn, log logger.Logger) *Client {
	return &Client{
		ID:   id,
		hub:  hub,
		conn: conn,
		send: make(chan []byte, sendBufferSize),

		// 30 messages and 60 typing signals per minute, with small bursts.
		messageLim: rate.NewLimiter(rate.Every(2*time.Second), 5),
		typingLim:  rate.NewLimiter(rate.Every(time.Second), 10),

		log: log,
	}
}

// ReadPump reads inbound frames until the connection dies, then hands
// the client back to the hub for unregistration.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxFrameSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log.Error("failed to set read deadline", "connection_id", c.ID, "error", err)
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.log.Debug("chat read error", "connection_id", c.ID, "error", err)
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			c.log.Debug("malformed chat frame", "connection_id", c.ID, "error", err)
			continue
		}

		switch env.Event {
		case EventMessage:
			var sub MessageSubmission
			if err := json.Unmarshal(env.Data, &sub); err != nil {
				continue
			}
			if !c.messageLim.Allow() {
				continue
			}
			c.hub.events <- event{kind: eventMessage, client: c, text: sub.Text, username: sub.Username}

		case EventTyping:
			var t TypingEvent
			if err := json.Unmarshal(env.Data, &t); err != nil {
				continue
			}
			if !c.typingLim.Allow() {
				continue
			}
			c.hub.events <- event{kind: eventTyping, client: c, username: t.Username, isTyping: t.IsTyping}
		}
	}
}

// WritePump drains the send channel onto the wire and keeps the
// connection alive with periodic pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case raw, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel.
				_ = c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, raw); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// OriginChecker builds a websocket handshake origin check from an
// allow-list. Entries may hold a single "*" wildcard, e.g.
// "https://*.example.com". An empty list allows any origin, as does a
// request without an Origin header.
func OriginChecker(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}

	patterns := make([]*regexp.Regexp, 0, len(allowed))
	exact := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		if strings.Contains(a, "*") {
			quoted := regexp.QuoteMeta(a)
			quoted = strings.ReplaceAll(quoted, `\*`, ".*")
			if re, err := regexp.Compile("^" + quoted + "$"); err == nil {
				patterns = append(patterns, re)
			}
			continue
		}
		exact[a] = struct{}{}
	}

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if _, ok := exact[origin]; ok {
			return true
		}
		for _, re := range patterns {
			if re.MatchString(origin) {
				return true
			}
		}
		return false
	}
}
