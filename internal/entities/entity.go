package entities

import (
	dnderr "github.com/KirkDiggler/dnd-battlemap/internal/errors"
)

// EntityType separates creatures that act from inert map objects
type EntityType string

const (
	EntityTypeEnemy  EntityType = "enemy"
	EntityTypeObject EntityType = "object"
)

// ParseEntityType rejects anything outside the closed set
func ParseEntityType(s string) (EntityType, error) {
	switch EntityType(s) {
	case EntityTypeEnemy, EntityTypeObject:
		return EntityType(s), nil
	default:
		return "", dnderr.Validationf("unknown entity type %q", s)
	}
}

// EntityStats is the stat block of a creature. Objects have none.
type EntityStats struct {
	HP         int `json:"hp"`
	MaxHP      int `json:"max_hp"`
	AC         int `json:"ac"`
	Initiative int `json:"initiative"`
}

// Entity is a non-player occupant of the map (monster or object)
type Entity struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Type     EntityType   `json:"type"`
	Icon     string       `json:"icon"`
	Position Position     `json:"position"`
	Stats    *EntityStats `json:"stats"`
}

// Validate checks the invariants an entity must hold before it enters a roster
func (e *Entity) Validate() error {
	if e.ID == "" {
		return dnderr.Validationf("entity id is required")
	}
	if e.Name == "" {
		return dnderr.Validationf("entity %s: name is required", e.ID)
	}
	if _, err := ParseEntityType(string(e.Type)); err != nil {
		return dnderr.Wrapf(err, "entity %s", e.ID)
	}
	if e.Stats != nil && (e.Stats.HP < 0 || e.Stats.HP > e.Stats.MaxHP) {
		return dnderr.Validationf("entity %s: hp %d outside [0,%d]", e.ID, e.Stats.HP, e.Stats.MaxHP)
	}
	return nil
}

// CanAct reports whether the entity takes part in turn order
func (e *Entity) CanAct() bool {
	return e.Stats != nil
}

// IsAt reports whether the entity stands on (x, y)
func (e *Entity) IsAt(x, y int) bool {
	return e.Position.X == x && e.Position.Y == y
}

// Clone returns a deep copy
func (e *Entity) Clone() *Entity {
	if e == nil {
		return nil
	}
	out := *e
	if e.Stats != nil {
		stats := *e.Stats
		out.Stats = &stats
	}
	return &out
}
