package game

import (
	"sync"
	"time"

	"github.com/lox/holdem-showdown/internal/deck"
	"github.com/lox/holdem-showdown/internal/evaluator"
)

// EventType names a kind of table event
type EventType string

const (
	EventTypeRoundStart   EventType = "round_start"
	EventTypeStreetChange EventType = "street_change"
	EventTypePlayerAction EventType = "player_action"
	EventTypeShowdown     EventType = "showdown"
	EventTypeRoundEnd     EventType = "round_end"
)

func (et EventType) String() string { return string(et) }

// GameEvent represents any event that occurs during a round
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// RoundStartEvent is published once hole cards are dealt
type RoundStartEvent struct {
	RoundID      string
	Round        int
	Players      []PlayerView
	StartingSeat int
	timestamp    time.Time
}

func (e RoundStartEvent) EventType() EventType { return EventTypeRoundStart }
func (e RoundStartEvent) Timestamp() time.Time { return e.timestamp }

// StreetChangeEvent is published when the board is turned for a new street
type StreetChangeEvent struct {
	Street         Street
	CommunityCards []deck.Card
	Pot            int
	timestamp      time.Time
}

func (e StreetChangeEvent) EventType() EventType { return EventTypeStreetChange }
func (e StreetChangeEvent) Timestamp() time.Time { return e.timestamp }

// PlayerActionEvent is published when a player takes an action
type PlayerActionEvent struct {
	Player    PlayerView
	Action    Action
	Amount    int
	Street    Street
	Reasoning string
	PotAfter  int
	timestamp time.Time
}

func (e PlayerActionEvent) EventType() EventType { return EventTypePlayerAction }
func (e PlayerActionEvent) Timestamp() time.Time { return e.timestamp }

// ShowdownEvent is published when more than one player reaches the end
type ShowdownEvent struct {
	Community []deck.Card
	Hands     []ShowdownHand
	Result    evaluator.Showdown
	timestamp time.Time
}

// ShowdownHand is one contender's cards and score
type ShowdownHand struct {
	Seat      int
	Name      string
	HoleCards []deck.Card
	Score     evaluator.HandScore
}

func (e ShowdownEvent) EventType() EventType { return EventTypeShowdown }
func (e ShowdownEvent) Timestamp() time.Time { return e.timestamp }

// RoundEndEvent is published after the pot is awarded
type RoundEndEvent struct {
	RoundID   string
	Round     int
	Winner    PlayerView
	Pot       int
	Tied      []string
	Standings []PlayerView
	timestamp time.Time
}

func (e RoundEndEvent) EventType() EventType { return EventTypeRoundEnd }
func (e RoundEndEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventSubscriberFunc adapts a function into an EventSubscriber
type EventSubscriberFunc func(event GameEvent)

func (f EventSubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus implementation
type SimpleEventBus struct {
	mu          sync.RWMutex
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events. Function
// subscribers cannot be compared and are never removed.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	if _, ok := subscriber.(EventSubscriberFunc); ok {
		return
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	for i, sub := range bus.subscribers {
		if _, ok := sub.(EventSubscriberFunc); ok {
			continue
		}
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers, synchronously and in order
func (bus *SimpleEventBus) Publish(event GameEvent) {
	bus.mu.RLock()
	subs := append([]EventSubscriber(nil), bus.subscribers...)
	bus.mu.RUnlock()

	for _, subscriber := range subs {
		subscriber.OnEvent(event)
	}
}

// EventRecorder keeps every event it sees; handy for tests and summaries
type EventRecorder struct {
	mu     sync.Mutex
	events []GameEvent
}

func (r *EventRecorder) OnEvent(event GameEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns a copy of the recorded events
func (r *EventRecorder) Events() []GameEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]GameEvent(nil), r.events...)
}

// OfType returns the recorded events with the given type
func (r *EventRecorder) OfType(et EventType) []GameEvent {
	var out []GameEvent
	for _, e := range r.Events() {
		if e.EventType() == et {
			out = append(out, e)
		}
	}
	return out
}
