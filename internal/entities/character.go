package entities

import (
	"strings"

	dnderr "github.com/KirkDiggler/dnd-battlemap/internal/errors"
)

// Position is a grid coordinate
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Character is a player-controlled occupant of the map.
// Position is nil until the character is placed.
type Character struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Icon        string        `json:"icon"`
	Description string        `json:"description"`
	Abilities   AbilityScores `json:"abilities"`
	Derived     DerivedStats  `json:"derived"`
	Weapon      Weapon        `json:"weapon"`
	Spells      []Spell       `json:"spells"`
	Position    *Position     `json:"position"`
}

// CharacterSpec is what a player submits when creating a character
type CharacterSpec struct {
	Name        string        `json:"name"`
	Icon        string        `json:"icon"`
	Description string        `json:"description"`
	Abilities   AbilityScores `json:"abilities"`
	Weapon      WeaponKind    `json:"weapon"`
	Spells      []SpellKey    `json:"spells"`
}

// NewCharacter builds an unplaced character from a spec. Ability
// scores are clamped, catalog choices are validated.
func NewCharacter(id string, spec CharacterSpec) (*Character, error) {
	if id == "" {
		return nil, dnderr.InvalidArgument("character id is required")
	}

	name := strings.TrimSpace(spec.Name)
	if name == "" {
		return nil, dnderr.Validationf("character name is required")
	}

	icon, err := ResolveIcon(spec.Icon)
	if err != nil {
		return nil, err
	}

	weaponKind := spec.Weapon
	if weaponKind == "" {
		weaponKind = DefaultWeapon
	}
	weapon, err := WeaponByKind(weaponKind)
	if err != nil {
		return nil, err
	}

	spells, err := ResolveSpells(spec.Spells)
	if err != nil {
		return nil, err
	}

	abilities := spec.Abilities.Clamped()

	return &Character{
		ID:          id,
		Name:        name,
		Icon:        icon,
		Description: spec.Description,
		Abilities:   abilities,
		Derived:     Derive(abilities),
		Weapon:      weapon,
		Spells:      spells,
	}, nil
}

// IsPlaced reports whether the character has a position on the map
func (c *Character) IsPlaced() bool {
	return c.Position != nil
}

// IsAt reports whether the character stands on (x, y)
func (c *Character) IsAt(x, y int) bool {
	return c.Position != nil && c.Position.X == x && c.Position.Y == y
}

// Clone returns a deep copy
func (c *Character) Clone() *Character {
	if c == nil {
		return nil
	}
	out := *c
	if c.Spells != nil {
		out.Spells = make([]Spell, len(c.Spells))
		copy(out.Spells, c.Spells)
	}
	if c.Position != nil {
		pos := *c.Position
		out.Position = &pos
	}
	return &out
}
