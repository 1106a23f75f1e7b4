package events_test

import (
	"errors"
	"testing"
	"time"

	"github.com/KirkDiggler/dnd-battlemap/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_PriorityOrder(t *testing.T) {
	bus := events.NewBus(nil)

	var calls []string
	record := func(id string) func(events.Event) error {
		return func(events.Event) error {
			calls = append(calls, id)
			return nil
		}
	}

	bus.Subscribe(events.ListenerFunc("late", 200, record("late")), events.EventTypeTurnResolved)
	bus.Subscribe(events.ListenerFunc("early", 10, record("early")), events.EventTypeTurnResolved)
	bus.Subscribe(events.ListenerFunc("other", 1, record("other")), events.EventTypeCharacterPlaced)

	err := bus.Emit(&events.TurnResolvedEvent{
		BaseEvent: events.BaseEvent{Type: events.EventTypeTurnResolved, Time: time.Now()},
		Message:   "The goblin flees.",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"early", "late"}, calls)
}

func TestBus_CancelStopsPropagation(t *testing.T) {
	bus := events.NewBus(nil)

	reached := false
	bus.Subscribe(events.ListenerFunc("canceller", 1, func(e events.Event) error {
		e.Cancel()
		return nil
	}), events.EventTypeCharacterPlaced)
	bus.Subscribe(events.ListenerFunc("after", 2, func(events.Event) error {
		reached = true
		return nil
	}), events.EventTypeCharacterPlaced)

	require.NoError(t, bus.Emit(events.NewRosterEvent(events.EventTypeCharacterPlaced, "character-1", "Aria", 7, 20)))
	assert.False(t, reached)
}

func TestBus_ListenerErrorDoesNotStopOthers(t *testing.T) {
	bus := events.NewBus(nil)

	reached := false
	bus.Subscribe(events.ListenerFunc("broken", 1, func(events.Event) error {
		return errors.New("discord down")
	}), events.EventTypeTurnFailed)
	bus.Subscribe(events.ListenerFunc("feed", 2, func(events.Event) error {
		reached = true
		return nil
	}), events.EventTypeTurnFailed)

	err := bus.Emit(&events.TurnFailedEvent{BaseEvent: events.BaseEvent{Type: events.EventTypeTurnFailed}})
	assert.ErrorContains(t, err, "listener broken failed")
	assert.True(t, reached)
}

func TestBus_UnsubscribeAndClear(t *testing.T) {
	bus := events.NewBus(nil)

	count := 0
	listener := events.ListenerFunc("counter", 1, func(events.Event) error {
		count++
		return nil
	})
	bus.Subscribe(listener, events.EventTypeCharacterCreated, events.EventTypeCharacterRemoved)

	require.NoError(t, bus.Emit(events.NewRosterEvent(events.EventTypeCharacterCreated, "c", "c", 0, 0)))
	bus.Unsubscribe("counter")
	require.NoError(t, bus.Emit(events.NewRosterEvent(events.EventTypeCharacterRemoved, "c", "c", 0, 0)))
	assert.Equal(t, 1, count)

	bus.Subscribe(listener, events.EventTypeCharacterCreated)
	bus.Clear()
	require.NoError(t, bus.Emit(events.NewRosterEvent(events.EventTypeCharacterCreated, "c", "c", 0, 0)))
	assert.Equal(t, 1, count)
}
