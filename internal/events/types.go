package events

import (
	"time"
)

// EventType represents the type of session event
type EventType string

const (
	EventTypeCharacterCreated EventType = "character_created"
	EventTypeCharacterPlaced  EventType = "character_placed"
	EventTypeCharacterRemoved EventType = "character_removed"
	EventTypeEntitySpawned    EventType = "entity_spawned"
	EventTypeTurnResolved     EventType = "turn_resolved"
	EventTypeTurnFailed       EventType = "turn_failed"
)

// Event is the base interface for all session events
type Event interface {
	GetType() EventType
	GetTime() time.Time
	IsCancelled() bool
	Cancel()
}

// BaseEvent provides common implementation for all events
type BaseEvent struct {
	Type      EventType `json:"type"`
	Time      time.Time `json:"time"`
	Cancelled bool      `json:"-"`
}

func (e *BaseEvent) GetType() EventType { return e.Type }
func (e *BaseEvent) GetTime() time.Time { return e.Time }
func (e *BaseEvent) IsCancelled() bool  { return e.Cancelled }
func (e *BaseEvent) Cancel()            { e.Cancelled = true }

// RosterEvent reports a character or entity entering, moving onto or
// leaving the map
type RosterEvent struct {
	BaseEvent
	ParticipantID string `json:"participant_id"`
	Name          string `json:"name"`
	X             int    `json:"x"`
	Y             int    `json:"y"`
}

// TurnResolvedEvent carries the resolver's narrative and who acts next
type TurnResolvedEvent struct {
	BaseEvent
	Message string `json:"message"`
	Current string `json:"current,omitempty"`
}

// TurnFailedEvent reports a resolution cycle that left the state untouched
type TurnFailedEvent struct {
	BaseEvent
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

// NewRosterEvent stamps a roster event with the current time
func NewRosterEvent(t EventType, id, name string, x, y int) *RosterEvent {
	return &RosterEvent{
		BaseEvent:     BaseEvent{Type: t, Time: time.Now()},
		ParticipantID: id,
		Name:          name,
		X:             x,
		Y:             y,
	}
}
