package chat

import "encoding/json"

// Wire event names. The server emits messages/message/typing/userCount;
// clients submit message/typing.
const (
	EventMessages  = "messages"
	EventMessage   = "message"
	EventTyping    = "typing"
	EventUserCount = "userCount"
)

// Envelope frames every websocket payload in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// ChatMessage is one logged chat entry. Fields are immutable once the
// message has been appended to the log. ConnectionID is attribution
// only, never authorization.
type ChatMessage struct {
	ID           string `json:"id"`
	Text         string `json:"text"`
	Username     string `json:"username"`
	Timestamp    string `json:"timestamp"`
	ConnectionID string `json:"connectionId,omitempty"`
}

// TypingEvent is ephemeral and never logged.
type TypingEvent struct {
	Username string `json:"username"`
	IsTyping bool   `json:"isTyping"`
}

// UserCountEvent carries the live connection count.
type UserCountEvent struct {
	Count int `json:"count"`
}

// MessageSubmission is the client->server message payload.
type MessageSubmission struct {
	Text     string `json:"text"`
	Username string `json:"username"`
}

type eventKind int

const (
	eventMessage eventKind = iota
	eventTyping
)

// event is the validated, tagged form handed to the hub loop. The
// transport boundary (the client read pump) decodes and validates wire
// payloads before constructing one.
type event struct {
	kind     eventKind
	client   *Client
	text     string
	username string
	isTyping bool
}

func encodeEvent(name string, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: name, Data: raw})
}
