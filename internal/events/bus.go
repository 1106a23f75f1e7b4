package events

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// EventListener processes events
type EventListener interface {
	HandleEvent(event Event) error
	Priority() int
	ID() string
}

// ListenerFunc adapts a function to EventListener with the given id and priority
func ListenerFunc(id string, priority int, fn func(Event) error) EventListener {
	return &funcListener{id: id, priority: priority, fn: fn}
}

type funcListener struct {
	id       string
	priority int
	fn       func(Event) error
}

func (l *funcListener) HandleEvent(e Event) error { return l.fn(e) }
func (l *funcListener) Priority() int             { return l.priority }
func (l *funcListener) ID() string                { return l.id }

// Bus manages event distribution
type Bus struct {
	listeners map[EventType][]EventListener
	mu        sync.RWMutex
	logger    *zap.Logger
}

// NewBus creates a new event bus. A nil logger discards output.
func NewBus(logger *zap.Logger) *Bus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bus{
		listeners: make(map[EventType][]EventListener),
		logger:    logger,
	}
}

// Subscribe adds a listener for specific event types
func (b *Bus) Subscribe(listener EventListener, eventTypes ...EventType) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, eventType := range eventTypes {
		b.listeners[eventType] = append(b.listeners[eventType], listener)
		b.sortLocked(eventType)

		b.logger.Debug("subscribed listener",
			zap.String("listener", listener.ID()),
			zap.String("event", string(eventType)),
			zap.Int("priority", listener.Priority()),
		)
	}
}

// Unsubscribe removes a listener from every event type
func (b *Bus) Unsubscribe(listenerID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for eventType, listeners := range b.listeners {
		for i, l := range listeners {
			if l.ID() != listenerID {
				continue
			}
			b.listeners[eventType] = append(listeners[:i:i], listeners[i+1:]...)
			break
		}
	}
	b.logger.Debug("unsubscribed listener", zap.String("listener", listenerID))
}

func (b *Bus) sortLocked(eventType EventType) {
	sort.SliceStable(b.listeners[eventType], func(i, j int) bool {
		return b.listeners[eventType][i].Priority() < b.listeners[eventType][j].Priority()
	})
}

// Emit sends an event to all registered listeners in priority order.
// A failing listener does not stop the others; the first error is returned.
func (b *Bus) Emit(event Event) error {
	b.mu.RLock()
	listeners := make([]EventListener, len(b.listeners[event.GetType()]))
	copy(listeners, b.listeners[event.GetType()])
	b.mu.RUnlock()

	var firstErr error
	for _, listener := range listeners {
		if event.IsCancelled() {
			b.logger.Debug("event cancelled, stopping propagation", zap.String("event", string(event.GetType())))
			break
		}

		if err := listener.HandleEvent(event); err != nil {
			b.logger.Warn("listener failed",
				zap.String("listener", listener.ID()),
				zap.String("event", string(event.GetType())),
				zap.Error(err),
			)
			if firstErr == nil {
				firstErr = fmt.Errorf("listener %s failed: %w", listener.ID(), err)
			}
		}
	}

	return firstErr
}

// Clear removes all listeners
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listeners = make(map[EventType][]EventListener)
}
