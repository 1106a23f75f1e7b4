package roster

import (
	"github.com/KirkDiggler/dnd-battlemap/internal/entities"
	dnderr "github.com/KirkDiggler/dnd-battlemap/internal/errors"
	"github.com/KirkDiggler/dnd-battlemap/internal/turnorder"
)

// OccupantAt implements battlemap.Occupancy
func (r *Roster) OccupantAt(x, y int) (string, bool) {
	occ, ok := r.At(x, y)
	if !ok {
		return "", false
	}
	return occ.ID(), true
}

// At returns whoever stands on (x, y)
func (r *Roster) At(x, y int) (Occupant, bool) {
	for _, c := range r.characters {
		if c.IsAt(x, y) {
			return Occupant{Character: c.Clone()}, true
		}
	}
	for _, e := range r.entities {
		if e.IsAt(x, y) {
			return Occupant{Entity: e.Clone()}, true
		}
	}
	return Occupant{}, false
}

// All returns every character and entity in insertion order
func (r *Roster) All() []Occupant {
	out := make([]Occupant, 0, len(r.order))
	for _, rf := range r.order {
		switch rf.kind {
		case turnorder.KindCharacter:
			out = append(out, Occupant{Character: r.characters[rf.id].Clone()})
		case turnorder.KindEntity:
			out = append(out, Occupant{Entity: r.entities[rf.id].Clone()})
		}
	}
	return out
}

// Character returns a copy of one character
func (r *Roster) Character(id string) (*entities.Character, error) {
	c, ok := r.characters[id]
	if !ok {
		return nil, dnderr.NotFoundf("character %s not found", id)
	}
	return c.Clone(), nil
}

// Characters returns copies of all characters in insertion order
func (r *Roster) Characters() []*entities.Character {
	out := make([]*entities.Character, 0, len(r.characters))
	for _, rf := range r.order {
		if rf.kind == turnorder.KindCharacter {
			out = append(out, r.characters[rf.id].Clone())
		}
	}
	return out
}

// Entities returns copies of all entities in insertion order
func (r *Roster) Entities() []*entities.Entity {
	out := make([]*entities.Entity, 0, len(r.entities))
	for _, rf := range r.order {
		if rf.kind == turnorder.KindEntity {
			out = append(out, r.entities[rf.id].Clone())
		}
	}
	return out
}

// Participants lists who takes turns, in insertion order: placed
// characters scored by agility and entities with a stat block scored
// by initiative. Objects without stats never act.
func (r *Roster) Participants() []turnorder.Participant {
	var out []turnorder.Participant
	for _, rf := range r.order {
		switch rf.kind {
		case turnorder.KindCharacter:
			c := r.characters[rf.id]
			if !c.IsPlaced() {
				continue
			}
			out = append(out, turnorder.Participant{
				ID: c.ID, Name: c.Name, Kind: turnorder.KindCharacter, Score: c.Abilities.Agility,
			})
		case turnorder.KindEntity:
			e := r.entities[rf.id]
			if !e.CanAct() {
				continue
			}
			out = append(out, turnorder.Participant{
				ID: e.ID, Name: e.Name, Kind: turnorder.KindEntity, Score: e.Stats.Initiative,
			})
		}
	}
	return out
}

// Clone returns an independent copy sharing the id generator. The grid
// is cloned too.
func (r *Roster) Clone() *Roster {
	out := &Roster{
		grid:       r.grid.Clone(),
		ids:        r.ids,
		characters: make(map[string]*entities.Character, len(r.characters)),
		entities:   make(map[string]*entities.Entity, len(r.entities)),
		order:      make([]ref, len(r.order)),
	}
	for id, c := range r.characters {
		out.characters[id] = c.Clone()
	}
	for id, e := range r.entities {
		out.entities[id] = e.Clone()
	}
	copy(out.order, r.order)
	return out
}
