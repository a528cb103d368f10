package live

import (
	"sync"

	"communitypulse-be/models"
)

// EventType says which kind of write produced an event.
type EventType string

const (
	EventInsert EventType = "insert"
	EventUpdate EventType = "update"
	EventDelete EventType = "delete"
)

// Event is a single issue change broadcast to feed subscribers. Events carry
// spam rows too; consumers decide what to show.
type Event struct {
	Type  EventType    `json:"type"`
	Issue models.Issue `json:"issue"`
}

// subscriptionBuffer bounds how far a subscriber may fall behind before it
// starts missing events.
const subscriptionBuffer = 16

// Subscription is one receiver attached to a Hub. Close must be called when
// the receiver goes away, after which Events is closed and drained.
type Subscription struct {
	hub    *Hub
	events chan Event
	once   sync.Once
}

// Events yields this subscriber's copy of the feed in publish order.
func (s *Subscription) Events() <-chan Event {
	return s.events
}

// Close detaches the subscription from its hub. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.unsubscribe(s)
	})
}

// Hub fans issue events out to any number of subscribers. Publishing never
// blocks: a subscriber whose buffer is full misses that event.
type Hub struct {
	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[*Subscription]struct{})}
}

func (h *Hub) Subscribe() *Subscription {
	sub := &Subscription{
		hub:    h,
		events: make(chan Event, subscriptionBuffer),
	}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	return sub
}

func (h *Hub) unsubscribe(sub *Subscription) {
	h.mu.Lock()
	delete(h.subs, sub)
	close(sub.events)
	h.mu.Unlock()
}

func (h *Hub) Publish(evt Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs {
		select {
		case sub.events <- evt:
		default:
			// subscriber is not keeping up, drop rather than stall the writer
		}
	}
}

// Subscribers reports how many subscriptions are currently attached.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
