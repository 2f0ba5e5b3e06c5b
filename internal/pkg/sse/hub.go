package sse

import (
	"sync"
)

// Event is one server-sent message. UserID names the receiving subscriber.
type Event struct {
	UserID string
	Event  string
	Data   any
}

// Hub fans events out to per-user subscriber channels.
type Hub struct {
	mu          sync.RWMutex
	buffer      int
	subscribers map[string]map[chan Event]struct{}
}

func NewHub() *Hub {
	return NewHubWithBuffer(10)
}

// NewHubWithBuffer sets the per-subscriber channel capacity.
func NewHubWithBuffer(buffer int) *Hub {
	if buffer <= 0 {
		buffer = 10
	}
	return &Hub{
		buffer:      buffer,
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a subscriber for userID. The returned cleanup closes
// the channel and must be called exactly once.
func (h *Hub) Subscribe(userID string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, h.buffer)
	if h.subscribers[userID] == nil {
		h.subscribers[userID] = make(map[chan Event]struct{})
	}
	h.subscribers[userID][ch] = struct{}{}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subscribers[userID], ch)
			close(ch)
			if len(h.subscribers[userID]) == 0 {
				delete(h.subscribers, userID)
			}
		})
	}
	return ch, cleanup
}

// Broadcast delivers to every connected subscriber, stamping each copy with
// the receiving user, and returns how many channels accepted the event.
func (h *Hub) Broadcast(event Event) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for userID := range h.subscribers {
		e := event
		e.UserID = userID
		delivered += h.deliver(userID, e)
	}
	return delivered
}

// deliver sends to every channel of userID. Full channels are skipped.
// Callers hold mu.
func (h *Hub) deliver(userID string, event Event) int {
	n := 0
	for ch := range h.subscribers[userID] {
		select {
		case ch <- event:
			n++
		default:
		}
	}
	return n
}

// TotalSubscribers counts open channels across all users.
func (h *Hub) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, subs := range h.subscribers {
		total += len(subs)
	}
	return total
}
