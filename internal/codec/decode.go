package codec

import (
	"sort"

	"github.com/KirkDiggler/dnd-battlemap/internal/battlemap"
	"github.com/KirkDiggler/dnd-battlemap/internal/entities"
	dnderr "github.com/KirkDiggler/dnd-battlemap/internal/errors"
)

// Decoded is a validated payload in model form
type Decoded struct {
	Grid       *battlemap.Grid
	Characters []*entities.Character

	// Entities is nil when the payload carried no entities section.
	// A present section replaces the whole entity list.
	Entities []*entities.Entity

	TurnNames []string

	// CurrentIndex points into TurnNames. 0 when the order is empty.
	CurrentIndex int
}

// HasEntities reports whether the payload replaced the entity list
func (d *Decoded) HasEntities() bool {
	return d.Entities != nil
}

// Decode validates a payload and converts it to model types. Catalog
// fields (weapon, spells) are looked up by name and must be known.
func Decode(p Payload) (*Decoded, error) {
	grid, err := decodeMap(p.Map)
	if err != nil {
		return nil, err
	}

	d := &Decoded{Grid: grid}

	seen := make(map[string]bool, len(p.Chars))
	for _, rec := range p.Chars {
		if seen[rec.ID] {
			return nil, dnderr.Validationf("character %s listed twice", rec.ID)
		}
		seen[rec.ID] = true

		c, err := decodeCharacter(rec, grid)
		if err != nil {
			return nil, err
		}
		d.Characters = append(d.Characters, c)
	}

	if p.Entities != nil {
		d.Entities = make([]*entities.Entity, 0, len(p.Entities))
		for _, rec := range p.Entities {
			e, err := decodeEntity(rec)
			if err != nil {
				return nil, err
			}
			d.Entities = append(d.Entities, e)
		}
	}

	d.TurnNames = append([]string{}, p.Turn.Order...)
	d.CurrentIndex, err = resolveCurrent(p.Turn)
	if err != nil {
		return nil, err
	}

	return d, nil
}

func decodeMap(m MapSection) (*battlemap.Grid, error) {
	grid, err := battlemap.NewGrid(m.W, m.H)
	if err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeValidation, "invalid map size")
	}
	grid.Name = m.Desc.Name
	grid.Description = m.Desc.Desc

	labels := make([]string, 0, len(m.Tiles))
	for label := range m.Tiles {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	// A cell has exactly one tile type.
	owner := make(map[Coord]string)
	for _, label := range labels {
		t, err := battlemap.ParseTileType(label)
		if err != nil {
			return nil, err
		}
		for _, c := range m.Tiles[label] {
			if prev, dup := owner[c]; dup && prev != label {
				return nil, dnderr.Validationf("map tile [%d,%d] listed as both %s and %s", c[0], c[1], prev, label).
					WithMeta("x", c[0]).WithMeta("y", c[1])
			}
			owner[c] = label
			if err := grid.Set(c[0], c[1], t); err != nil {
				return nil, dnderr.Wrapf(err, "map tile %s", label)
			}
		}
	}
	return grid, nil
}

func decodeCharacter(rec CharRecord, grid *battlemap.Grid) (*entities.Character, error) {
	if rec.ID == "" {
		return nil, dnderr.Validationf("character without id")
	}
	if !grid.InBounds(rec.Pos[0], rec.Pos[1]) {
		return nil, dnderr.Wrapf(dnderr.OutOfBounds(rec.Pos[0], rec.Pos[1], grid.Width, grid.Height),
			"character %s", rec.ID)
	}
	if rec.Stats.HP < 0 || rec.Stats.HP > rec.Stats.Max {
		return nil, dnderr.Validationf("character %s: hp %d outside [0,%d]", rec.ID, rec.Stats.HP, rec.Stats.Max)
	}

	weapon, err := entities.WeaponByName(rec.Weapon.Name)
	if err != nil {
		return nil, dnderr.Wrapf(err, "character %s", rec.ID)
	}

	spells := make([]entities.Spell, 0, len(rec.Spells))
	for _, sr := range rec.Spells {
		s, err := entities.SpellByName(sr.Name)
		if err != nil {
			return nil, dnderr.Wrapf(err, "character %s", rec.ID)
		}
		spells = append(spells, s)
	}
	if len(spells) > entities.MaxSpells {
		return nil, dnderr.Validationf("character %s: %d spells, at most %d allowed", rec.ID, len(spells), entities.MaxSpells)
	}

	return &entities.Character{
		ID:   rec.ID,
		Name: rec.Name,
		Icon: rec.Icon,
		Abilities: entities.AbilityScores{
			Strength:     rec.Stats.Str,
			Agility:      rec.Stats.Dex,
			Constitution: rec.Stats.Con,
			Intelligence: rec.Stats.Int,
			Wisdom:       rec.Stats.Wis,
			Charisma:     rec.Stats.Cha,
		}.Clamped(),
		Derived: entities.DerivedStats{
			HP:    rec.Stats.HP,
			MaxHP: rec.Stats.Max,
			AC:    rec.Stats.AC,
		},
		Weapon:   weapon,
		Spells:   spells,
		Position: &entities.Position{X: rec.Pos[0], Y: rec.Pos[1]},
	}, nil
}

func decodeEntity(rec EntityRecord) (*entities.Entity, error) {
	t, err := entities.ParseEntityType(rec.Type)
	if err != nil {
		return nil, dnderr.Wrapf(err, "entity %s", rec.ID)
	}
	e := &entities.Entity{
		ID:       rec.ID,
		Name:     rec.Name,
		Type:     t,
		Icon:     rec.Icon,
		Position: entities.Position{X: rec.Pos[0], Y: rec.Pos[1]},
	}
	if rec.Stats != nil {
		e.Stats = &entities.EntityStats{
			HP:         rec.Stats.HP,
			MaxHP:      rec.Stats.Max,
			AC:         rec.Stats.AC,
			Initiative: rec.Stats.Init,
		}
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// resolveCurrent maps the current name to its first index in the order
func resolveCurrent(turn TurnSection) (int, error) {
	if turn.Current == nil {
		return 0, nil
	}
	for i, name := range turn.Order {
		if name == *turn.Current {
			return i, nil
		}
	}
	return 0, dnderr.UnknownParticipantf("current turn %q is not in the returned turn order", *turn.Current).
		WithMeta("participant", *turn.Current)
}
