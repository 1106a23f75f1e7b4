package entities

import (
	"sort"

	"github.com/KirkDiggler/dnd-battlemap/internal/dice"
	dnderr "github.com/KirkDiggler/dnd-battlemap/internal/errors"
)

// WeaponKind is the catalog key of a weapon
type WeaponKind string

const (
	WeaponSword  WeaponKind = "sword"
	WeaponBow    WeaponKind = "bow"
	WeaponStaff  WeaponKind = "staff"
	WeaponAxe    WeaponKind = "axe"
	WeaponDagger WeaponKind = "dagger"
)

// Weapon is a catalog entry. Players pick one, they never author them.
type Weapon struct {
	Kind       WeaponKind `json:"kind"`
	Name       string     `json:"name"`
	DamageDice string     `json:"damage_dice"`
	Icon       string     `json:"icon"`
}

// Damage returns the parsed damage notation
func (w Weapon) Damage() dice.Notation {
	return dice.MustParseNotation(w.DamageDice)
}

var weaponCatalog = map[WeaponKind]Weapon{
	WeaponSword:  {Kind: WeaponSword, Name: "Sword", DamageDice: "1d8", Icon: "⚔️"},
	WeaponBow:    {Kind: WeaponBow, Name: "Bow", DamageDice: "1d6", Icon: "🏹"},
	WeaponStaff:  {Kind: WeaponStaff, Name: "Staff", DamageDice: "1d6", Icon: "🪄"},
	WeaponAxe:    {Kind: WeaponAxe, Name: "Axe", DamageDice: "1d10", Icon: "🪓"},
	WeaponDagger: {Kind: WeaponDagger, Name: "Dagger", DamageDice: "1d4", Icon: "🗡️"},
}

// DefaultWeapon is handed to characters created without a choice
const DefaultWeapon = WeaponSword

func init() {
	for kind, w := range weaponCatalog {
		if _, err := dice.ParseNotation(w.DamageDice); err != nil {
			panic("weapon " + string(kind) + ": " + err.Error())
		}
	}
}

// WeaponByKind returns the catalog weapon or a validation error
func WeaponByKind(kind WeaponKind) (Weapon, error) {
	w, ok := weaponCatalog[kind]
	if !ok {
		return Weapon{}, dnderr.Validationf("unknown weapon %q", kind).
			WithMeta("weapon", string(kind))
	}
	return w, nil
}

// WeaponByName looks a weapon up by its display name
func WeaponByName(name string) (Weapon, error) {
	for _, w := range weaponCatalog {
		if w.Name == name {
			return w, nil
		}
	}
	return Weapon{}, dnderr.Validationf("unknown weapon name %q", name).
		WithMeta("weapon", name)
}

// Weapons lists the catalog sorted by kind
func Weapons() []Weapon {
	out := make([]Weapon, 0, len(weaponCatalog))
	for _, w := range weaponCatalog {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out
}
