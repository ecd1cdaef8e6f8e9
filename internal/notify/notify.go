// Package notify delivers fire-and-forget UI events from the host to any
// attached listeners (the SSE endpoint, tests).
package notify

import (
	"encoding/json"
	"sync"
)

// Event names emitted by the host.
const (
	EventSetQueryParams    = "mcp:set-query-params"
	EventReload            = "mcp:reload"
	EventAnalysisStarted   = "analysis:started"
	EventAnalysisCompleted = "analysis:completed"
)

// Event is a named notification with a JSON payload.
type Event struct {
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload"`
}

// Notifier emits UI events. Delivery is best-effort; failures are never
// reported back to the caller.
type Notifier interface {
	Emit(name string, payload any)
}

// Bus fans events out to subscribers. Emit never blocks; events are dropped
// for subscribers that fall behind.
type Bus struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[chan Event]struct{})}
}

// Subscribe registers a listener. The returned cancel function removes the
// subscription and closes the channel.
func (b *Bus) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)

	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if _, ok := b.subs[ch]; ok {
			delete(b.subs, ch)
			close(ch)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

// Emit implements Notifier. Payloads that fail to marshal are delivered as
// null rather than dropped, so event ordering stays observable.
func (b *Bus) Emit(name string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		data = json.RawMessage("null")
	}
	event := Event{Name: name, Payload: data}

	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- event:
		default:
		}
	}
}
