package chat

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"portfolio_server/pkg/logger"
)

type sanitizer interface {
	Sanitize(s string) string
}

// Registration pairs a client with an ack channel so the caller can
// wait until the hub has taken ownership of the connection.
type Registration struct {
	Client *Client
	Done   chan struct{}
}

// Hub is the broadcast channel. It exclusively owns the Registry and the
// MessageLog; every open/message/typing/close event is processed to
// completion on the single Run goroutine, so neither needs locking.
type Hub struct {
	registry *Registry
	log      *MessageLog

	clients    map[string]*Client
	Register   chan Registration
	Unregister chan *Client
	events     chan event

	sanitizer  sanitizer
	maxMsgLen  int
	lastStamp  int64
	logg       logger.Logger
}

func NewHub(maxMessageLen, historyLimit int, logg logger.Logger) *Hub {
	return &Hub{
		registry:   NewRegistry(),
		log:        NewMessageLog(historyLimit),
		clients:    make(map[string]*Client),
		Register:   make(chan Registration),
		Unregister: make(chan *Client),
		events:     make(chan event, 256),
		sanitizer:  bluemonday.StrictPolicy(),
		maxMsgLen:  maxMessageLen,
		logg:       logg,
	}
}

// Run processes hub traffic until ctx is cancelled. It is the only
// goroutine allowed to touch h.registry, h.log and h.clients.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case reg := <-h.Register:
			h.handleOpen(reg.Client)
			close(reg.Done)

		case client := <-h.Unregister:
			h.handleClose(client)

		case ev := <-h.events:
			switch ev.kind {
			case eventMessage:
				h.handleMessage(ev)
			case eventTyping:
				h.handleTyping(ev)
			}

		case <-ctx.Done():
			h.logg.Info("chat hub stopped", "reason", ctx.Err())
			return
		}
	}
}

func (h *Hub) handleOpen(c *Client) {
	h.clients[c.ID] = c
	h.registry.Register(c.ID)

	// Replay goes to the new connection only, then everyone learns the
	// new count.
	h.unicast(c, EventMessages, h.log.Snapshot())
	h.broadcast(EventUserCount, UserCountEvent{Count: h.registry.Count()}, nil)

	h.logg.Debug("chat client connected", "connection_id", c.ID, "count", h.registry.Count())
}

func (h *Hub) handleClose(c *Client) {
	if _, ok := h.clients[c.ID]; !ok {
		return
	}
	delete(h.clients, c.ID)
	h.registry.Unregister(c.ID)
	close(c.send)

	h.broadcast(EventUserCount, UserCountEvent{Count: h.registry.Count()}, nil)

	h.logg.Debug("chat client disconnected", "connection_id", c.ID, "count", h.registry.Count())
}

func (h *Hub) handleMessage(ev event) {
	text := strings.TrimSpace(ev.text)
	if text == "" {
		// Blank submissions are dropped with no feedback to the sender.
		return
	}

	text = h.sanitizer.Sanitize(text)
	if text == "" {
		return
	}
	if h.maxMsgLen > 0 {
		if runes := []rune(text); len(runes) > h.maxMsgLen {
			text = string(runes[:h.maxMsgLen])
		}
	}

	username := strings.TrimSpace(ev.username)
	if username == "" {
		username = "Anonymous"
	}

	msg := ChatMessage{
		ID:           h.nextID(),
		Text:         text,
		Username:     username,
		Timestamp:    time.Now().UTC().Format(time.RFC3339Nano),
		ConnectionID: ev.client.ID,
	}
	h.log.Append(msg)

	// Everyone gets the message, the sender included.
	h.broadcast(EventMessage, msg, nil)
}

func (h *Hub) handleTyping(ev event) {
	if ev.username == "" {
		return
	}
	payload := TypingEvent{Username: ev.username, IsTyping: ev.isTyping}
	h.broadcast(EventTyping, payload, ev.client)
}

// unicast sends one event to a single client.
func (h *Hub) unicast(c *Client, name string, data any) {
	raw, err := encodeEvent(name, data)
	if err != nil {
		h.logg.Error("failed to encode chat event", "event", name, "error", err)
		return
	}
	h.deliver(c, raw)
}

// broadcast fans an event out to every connected client except skip.
// Delivery attempts are independent: a slow or dead peer never aborts
// the rest of the fan-out.
func (h *Hub) broadcast(name string, data any, skip *Client) {
	raw, err := encodeEvent(name, data)
	if err != nil {
		h.logg.Error("failed to encode chat event", "event", name, "error", err)
		return
	}
	for _, c := range h.clients {
		if c == skip {
			continue
		}
		h.deliver(c, raw)
	}
}

func (h *Hub) deliver(c *Client, raw []byte) {
	select {
	case c.send <- raw:
	default:
		h.logg.Warn("dropping chat event, client send buffer full", "connection_id", c.ID)
	}
}

// nextID returns a time-derived id that is strictly increasing even
// when two messages arrive in the same nanosecond tick.
func (h *Hub) nextID() string {
	stamp := time.Now().UnixNano()
	if stamp <= h.lastStamp {
		stamp = h.lastStamp + 1
	}
	h.lastStamp = stamp
	return strconv.FormatInt(stamp, 10)
}
