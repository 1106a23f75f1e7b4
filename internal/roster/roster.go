// Package roster owns the characters and entities of a session and
// enforces the placement rules against the map.
package roster

import (
	"github.com/KirkDiggler/dnd-battlemap/internal/battlemap"
	"github.com/KirkDiggler/dnd-battlemap/internal/entities"
	dnderr "github.com/KirkDiggler/dnd-battlemap/internal/errors"
	"github.com/KirkDiggler/dnd-battlemap/internal/turnorder"
	"github.com/KirkDiggler/dnd-battlemap/internal/uuid"
)

// Occupant is anything that stands on a tile. Exactly one of
// Character and Entity is set.
type Occupant struct {
	Character *entities.Character
	Entity    *entities.Entity
}

// ID returns the occupant's id
func (o Occupant) ID() string {
	if o.Character != nil {
		return o.Character.ID
	}
	return o.Entity.ID
}

// Name returns the occupant's display name
func (o Occupant) Name() string {
	if o.Character != nil {
		return o.Character.Name
	}
	return o.Entity.Name
}

type ref struct {
	kind turnorder.Kind
	id   string
}

// Roster is not safe for concurrent use. The session service
// serializes access.
type Roster struct {
	grid       *battlemap.Grid
	ids        uuid.Generator
	characters map[string]*entities.Character
	entities   map[string]*entities.Entity

	// insertion order across both kinds, used for stable tie-breaks
	order []ref
}

// New creates an empty roster on grid
func New(grid *battlemap.Grid, ids uuid.Generator) *Roster {
	if grid == nil {
		panic("grid is required")
	}
	if ids == nil {
		panic("id generator is required")
	}
	return &Roster{
		grid:       grid,
		ids:        ids,
		characters: make(map[string]*entities.Character),
		entities:   make(map[string]*entities.Entity),
	}
}

// Grid returns the map placement is checked against
func (r *Roster) Grid() *battlemap.Grid {
	return r.grid
}

// SetGrid swaps the map. Existing positions are kept as they are.
func (r *Roster) SetGrid(grid *battlemap.Grid) {
	if grid != nil {
		r.grid = grid
	}
}

// CreateCharacter builds an unplaced character with a fresh id
func (r *Roster) CreateCharacter(spec entities.CharacterSpec) (*entities.Character, error) {
	char, err := entities.NewCharacter(r.ids.New(), spec)
	if err != nil {
		return nil, err
	}
	if err := r.AddCharacter(char); err != nil {
		return nil, err
	}
	return char.Clone(), nil
}

// AddCharacter inserts an existing character, placed or not. A placed
// character is not checked against the map.
func (r *Roster) AddCharacter(char *entities.Character) error {
	if char == nil || char.ID == "" {
		return dnderr.InvalidArgument("character with id is required")
	}
	if r.has(char.ID) {
		return dnderr.AlreadyExistsf("participant %s already exists", char.ID)
	}
	r.characters[char.ID] = char.Clone()
	r.order = append(r.order, ref{kind: turnorder.KindCharacter, id: char.ID})
	return nil
}

// PlaceCharacter puts an unplaced character on (x, y). On any error the
// roster is left unchanged.
func (r *Roster) PlaceCharacter(id string, x, y int) (*entities.Character, error) {
	char, ok := r.characters[id]
	if !ok {
		return nil, dnderr.NotFoundf("character %s not found", id)
	}
	if char.IsPlaced() {
		return nil, dnderr.Newf(dnderr.CodeAlreadyPlaced, "character %s is already placed at (%d,%d)",
			id, char.Position.X, char.Position.Y).
			WithMeta("character_id", id)
	}
	if err := r.checkPlacement(x, y); err != nil {
		return nil, err
	}

	char.Position = &entities.Position{X: x, Y: y}
	return char.Clone(), nil
}

// UpdateCharacter replaces a stored character with the same id. The
// position is taken as given, see CheckOccupancy.
func (r *Roster) UpdateCharacter(char *entities.Character) error {
	if char == nil {
		return dnderr.InvalidArgument("character is required")
	}
	if _, ok := r.characters[char.ID]; !ok {
		return dnderr.NotFoundf("character %s not found", char.ID)
	}
	r.characters[char.ID] = char.Clone()
	return nil
}

// CheckOccupancy verifies every occupant is inside the map and no two
// share a tile
func (r *Roster) CheckOccupancy() error {
	taken := make(map[entities.Position]string)
	for _, occ := range r.All() {
		var pos entities.Position
		switch {
		case occ.Character != nil:
			if occ.Character.Position == nil {
				continue
			}
			pos = *occ.Character.Position
		default:
			pos = occ.Entity.Position
		}
		if !r.grid.InBounds(pos.X, pos.Y) {
			return dnderr.OutOfBounds(pos.X, pos.Y, r.grid.Width, r.grid.Height)
		}
		if other, ok := taken[pos]; ok {
			return dnderr.TileOccupied(pos.X, pos.Y, other)
		}
		taken[pos] = occ.ID()
	}
	return nil
}

// RemoveCharacter deletes the character. Returns false if it was absent.
func (r *Roster) RemoveCharacter(id string) bool {
	if _, ok := r.characters[id]; !ok {
		return false
	}
	delete(r.characters, id)
	r.dropRef(id)
	return true
}

// SpawnEntity adds an entity under the same placement rules as characters
func (r *Roster) SpawnEntity(entity *entities.Entity) (*entities.Entity, error) {
	if entity == nil {
		return nil, dnderr.InvalidArgument("entity is required")
	}
	if err := entity.Validate(); err != nil {
		return nil, err
	}
	if r.has(entity.ID) {
		return nil, dnderr.AlreadyExistsf("participant %s already exists", entity.ID)
	}
	if err := r.checkPlacement(entity.Position.X, entity.Position.Y); err != nil {
		return nil, err
	}

	r.entities[entity.ID] = entity.Clone()
	r.order = append(r.order, ref{kind: turnorder.KindEntity, id: entity.ID})
	return entity.Clone(), nil
}

// RemoveEntity deletes the entity. Returns false if it was absent.
func (r *Roster) RemoveEntity(id string) bool {
	if _, ok := r.entities[id]; !ok {
		return false
	}
	delete(r.entities, id)
	r.dropRef(id)
	return true
}

// ReplaceEntities swaps the whole entity list, as a resolver may do.
// Entities must be valid, in bounds, unique and not share a tile with
// each other or a character. Blocking terrain is not checked because
// the resolver owns the new map.
func (r *Roster) ReplaceEntities(list []*entities.Entity) error {
	next := make(map[string]*entities.Entity, len(list))
	taken := make(map[entities.Position]string)
	for _, c := range r.characters {
		if c.Position != nil {
			taken[*c.Position] = c.ID
		}
	}

	var refs []ref
	for _, e := range list {
		if e == nil {
			return dnderr.InvalidArgument("nil entity in replacement list")
		}
		if err := e.Validate(); err != nil {
			return err
		}
		if _, dup := next[e.ID]; dup {
			return dnderr.AlreadyExistsf("entity %s listed twice", e.ID)
		}
		if _, clash := r.characters[e.ID]; clash {
			return dnderr.AlreadyExistsf("entity id %s collides with a character", e.ID)
		}
		if !r.grid.InBounds(e.Position.X, e.Position.Y) {
			return dnderr.OutOfBounds(e.Position.X, e.Position.Y, r.grid.Width, r.grid.Height)
		}
		if other, ok := taken[e.Position]; ok {
			return dnderr.TileOccupied(e.Position.X, e.Position.Y, other)
		}
		taken[e.Position] = e.ID
		next[e.ID] = e.Clone()
		refs = append(refs, ref{kind: turnorder.KindEntity, id: e.ID})
	}

	kept := r.order[:0:0]
	for _, rf := range r.order {
		if rf.kind == turnorder.KindCharacter {
			kept = append(kept, rf)
		}
	}
	r.entities = next
	r.order = append(kept, refs...)
	return nil
}

func (r *Roster) checkPlacement(x, y int) error {
	tile, err := r.grid.TileAt(x, y)
	if err != nil {
		return err
	}
	if tile.Type.IsBlocking() {
		return dnderr.TileBlocked(x, y, tile.Type.String())
	}
	if occupant, ok := r.OccupantAt(x, y); ok {
		return dnderr.TileOccupied(x, y, occupant)
	}
	return nil
}

func (r *Roster) has(id string) bool {
	if _, ok := r.characters[id]; ok {
		return true
	}
	_, ok := r.entities[id]
	return ok
}

func (r *Roster) dropRef(id string) {
	for i, rf := range r.order {
		if rf.id == id {
			r.order = append(r.order[:i:i], r.order[i+1:]...)
			return
		}
	}
}
