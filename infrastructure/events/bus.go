package events

import (
	"github.com/kelindar/event"

	"clipfit/domain/pipeline"
)

// Bus wraps kelindar/event dispatcher for status broadcasting
type Bus struct {
	dispatcher *event.Dispatcher
}

// New creates a new event bus
func New() *Bus {
	return &Bus{
		dispatcher: event.NewDispatcher(),
	}
}

// Publish publishes a status event to all subscribers
func (b *Bus) Publish(ev pipeline.StatusEvent) {
	event.Publish(b.dispatcher, ev)
}

// Subscribe registers a handler and returns an unsubscribe function
// Handlers run on the dispatcher's goroutine, in publish order
func (b *Bus) Subscribe(handler func(pipeline.StatusEvent)) func() {
	return event.Subscribe(b.dispatcher, handler)
}

// SubscribeToChannel forwards events to ch, dropping them if ch is full
func (b *Bus) SubscribeToChannel(ch chan<- pipeline.StatusEvent) func() {
	return event.Subscribe(b.dispatcher, func(e pipeline.StatusEvent) {
		select {
		case ch <- e:
		default:
		}
	})
}

// Ensure Bus implements pipeline.Publisher
var _ pipeline.Publisher = (*Bus)(nil)
