package chat

// MessageLog is the append-only, process-lifetime record of chat
// messages, replayed to newly joined connections. Like Registry it is
// owned by the hub loop and needs no locking.
//
// limit == 0 keeps the log unbounded for the life of the process, which
// matches the original behavior. A positive limit turns it into a ring
// that drops the oldest entries.
type MessageLog struct {
	entries []ChatMessage
	limit   int
}

func NewMessageLog(limit int) *MessageLog {
	return &MessageLog{limit: limit}
}

func (l *MessageLog) Append(msg ChatMessage) {
	l.entries = append(l.entries, msg)
	if l.limit > 0 && len(l.entries) > l.limit {
		l.entries = l.entries[len(l.entries)-l.limit:]
	}
}

// Snapshot returns a point-in-time copy in append order. Later appends
// never mutate a returned snapshot.
func (l *MessageLog) Snapshot() []ChatMessage {
	out := make([]ChatMessage, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *MessageLog) Len() int {
	return len(l.entries)
}
