package game

import (
	"sync"
	"time"
)

// EventType represents a game event type with type safety
type EventType string

const (
	EventHandStart     EventType = "hand_start"
	EventBlindPosted   EventType = "blind_posted"
	EventOptionApplied EventType = "option_applied"
	EventStreetChange  EventType = "street_change"
	EventPotResolved   EventType = "pot_resolved"
	EventHandEnd       EventType = "hand_end"
	EventTableClosed   EventType = "table_closed"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event is published after every state-affecting step of a hand.
type Event struct {
	Type     EventType   `json:"type"`
	Time     time.Time   `json:"time"`
	Snapshot Snapshot    `json:"snapshot"`
	PlayerID string      `json:"player_id,omitempty"`
	Option   *Option     `json:"option,omitempty"`
	Pot      *PotResult  `json:"pot,omitempty"`
	Result   *HandResult `json:"-"`
}

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event Event)
}

// SubscriberFunc adapts a function to EventSubscriber.
type SubscriberFunc func(Event)

// OnEvent calls f.
func (f SubscriberFunc) OnEvent(event Event) {
	f(event)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Publish(event Event)
}

// SimpleEventBus delivers events synchronously to its subscribers in
// subscription order.
type SimpleEventBus struct {
	mu          sync.RWMutex
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event Event) {
	bus.mu.RLock()
	subs := bus.subscribers
	bus.mu.RUnlock()
	for _, s := range subs {
		s.OnEvent(event)
	}
}
