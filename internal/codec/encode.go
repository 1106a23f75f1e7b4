package codec

import (
	"github.com/KirkDiggler/dnd-battlemap/internal/battlemap"
	"github.com/KirkDiggler/dnd-battlemap/internal/entities"
	"github.com/KirkDiggler/dnd-battlemap/internal/roster"
	"github.com/KirkDiggler/dnd-battlemap/internal/turnorder"
)

// Encode snapshots the session. Only placed characters are included;
// the entities section is left out when there are none.
func Encode(grid *battlemap.Grid, r *roster.Roster, order *turnorder.Order) Payload {
	p := Payload{
		Map:   encodeMap(grid),
		Chars: []CharRecord{},
		Turn:  encodeTurn(order),
	}

	for _, c := range r.Characters() {
		if !c.IsPlaced() {
			continue
		}
		p.Chars = append(p.Chars, encodeCharacter(c))
	}

	for _, e := range r.Entities() {
		p.Entities = append(p.Entities, encodeEntity(e))
	}

	return p
}

func encodeMap(g *battlemap.Grid) MapSection {
	section := MapSection{
		W:     g.Width,
		H:     g.Height,
		Desc:  MapDesc{Name: g.Name, Desc: g.Description},
		Tiles: make(map[string][]Coord),
	}
	for t, positions := range g.NonDefault() {
		coords := make([]Coord, len(positions))
		for i, pos := range positions {
			coords[i] = Coord{pos.X, pos.Y}
		}
		section.Tiles[t.String()] = coords
	}
	return section
}

func encodeCharacter(c *entities.Character) CharRecord {
	rec := CharRecord{
		ID:   c.ID,
		Name: c.Name,
		Pos:  Coord{c.Position.X, c.Position.Y},
		Icon: c.Icon,
		Stats: CharStats{
			HP:  c.Derived.HP,
			Max: c.Derived.MaxHP,
			AC:  c.Derived.AC,
			Str: c.Abilities.Strength,
			Dex: c.Abilities.Agility,
			Con: c.Abilities.Constitution,
			Int: c.Abilities.Intelligence,
			Wis: c.Abilities.Wisdom,
			Cha: c.Abilities.Charisma,
		},
		Weapon: WeaponRecord{Name: c.Weapon.Name, Dmg: c.Weapon.DamageDice},
		Spells: make([]SpellRecord, 0, len(c.Spells)),
	}
	for _, s := range c.Spells {
		rec.Spells = append(rec.Spells, SpellRecord{Name: s.Name, Effect: s.Effect()})
	}
	return rec
}

func encodeEntity(e *entities.Entity) EntityRecord {
	rec := EntityRecord{
		ID:   e.ID,
		Name: e.Name,
		Type: string(e.Type),
		Pos:  Coord{e.Position.X, e.Position.Y},
		Icon: e.Icon,
	}
	if e.Stats != nil {
		rec.Stats = &EntityStatsRecord{
			HP:   e.Stats.HP,
			Max:  e.Stats.MaxHP,
			AC:   e.Stats.AC,
			Init: e.Stats.Initiative,
		}
	}
	return rec
}

func encodeTurn(order *turnorder.Order) TurnSection {
	section := TurnSection{Order: []string{}}
	if order == nil {
		return section
	}
	section.Order = order.Names()
	if cur, ok := order.Current(); ok {
		name := cur.Name
		section.Current = &name
	}
	return section
}
