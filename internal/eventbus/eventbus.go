package eventbus

import (
	"io"
	"log/slog"
	"runtime/debug"
	"sync"

	"docsearch/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventKeyPressed      = domain.EventKeyPressed
	EventClicked         = domain.EventClicked
	EventSearchCompleted = domain.EventSearchCompleted
	EventCorpusLoaded    = domain.EventCorpusLoaded
	EventCorpusFailed    = domain.EventCorpusFailed
)

// Re-export domain event types
type KeyPressedEvent = domain.KeyPressedEvent
type ClickedEvent = domain.ClickedEvent
type SearchCompletedEvent = domain.SearchCompletedEvent
type CorpusLoadedEvent = domain.CorpusLoadedEvent
type CorpusFailedEvent = domain.CorpusFailedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus.
// Handlers run synchronously on the publishing goroutine, in subscription order.
type bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]subscription
	nextID   uint64
	logger   *slog.Logger
}

// New creates a new event bus
func New(logger *slog.Logger) EventBus {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &bus{
		handlers: make(map[EventType][]subscription),
		logger:   logger,
	}
}

// Publish delivers an event to every current subscriber
func (b *bus) Publish(event DomainEvent) {
	// Skip logging for high-frequency events
	switch event.Type() {
	case EventKeyPressed, EventClicked:
	default:
		b.logger.Debug("publishing event", "type", event.Type())
	}

	// Copy so handlers may subscribe or unsubscribe while being called
	b.mu.RLock()
	subs := make([]subscription, len(b.handlers[event.Type()]))
	copy(subs, b.handlers[event.Type()])
	b.mu.RUnlock()

	for _, sub := range subs {
		b.call(sub.handler, event)
	}
}

func (b *bus) call(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panic", "type", event.Type(), "panic", r, "stack", string(debug.Stack()))
		}
	}()
	h(event)
}

// Subscribe subscribes to events of a specific type.
// The returned function removes the subscription; calling it more than once is safe.
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()

			subs := b.handlers[eventType]
			for i, s := range subs {
				if s.id == id {
					b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
					break
				}
			}
			if len(b.handlers[eventType]) == 0 {
				delete(b.handlers, eventType)
			}
		})
	}
}

// Count returns the number of live subscriptions for an event type
func Count(b EventBus, eventType EventType) int {
	impl, ok := b.(*bus)
	if !ok {
		return -1
	}
	impl.mu.RLock()
	defer impl.mu.RUnlock()
	return len(impl.handlers[eventType])
}
