package pipeline

import "time"

// TypeStatus is the event type identifier for StatusEvent.
const TypeStatus uint32 = 1

// Level classifies a status message.
type Level string

// Status levels.
const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// StatusEvent is published on every state transition or error.
type StatusEvent struct {
	RequestID string    `json:"request_id,omitempty"`
	State     State     `json:"state"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	Time      time.Time `json:"time"`
}

// Type returns the event type identifier for StatusEvent.
func (e StatusEvent) Type() uint32 { return TypeStatus }

// Publisher publishes status events.
type Publisher interface {
	Publish(ev StatusEvent)
}
