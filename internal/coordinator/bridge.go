package coordinator

import "sync"

// EventBridge delivers the found signal from the watcher goroutine to the
// foreground loop. It holds at most one event and never blocks the sender.
type EventBridge struct {
	ch   chan struct{}
	once sync.Once
}

// NewEventBridge returns an empty bridge.
func NewEventBridge() *EventBridge {
	return &EventBridge{ch: make(chan struct{}, 1)}
}

// Send delivers the event. Only the first call has any effect; it reports
// whether this call was the one that delivered.
func (b *EventBridge) Send() bool {
	sent := false
	b.once.Do(func() {
		b.ch <- struct{}{}
		sent = true
	})
	return sent
}

// C exposes the receive side. It yields one value, at most once.
func (b *EventBridge) C() <-chan struct{} {
	return b.ch
}

// TryReceive consumes the event if it has arrived, without blocking.
func (b *EventBridge) TryReceive() bool {
	select {
	case <-b.ch:
		return true
	default:
		return false
	}
}
