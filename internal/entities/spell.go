package entities

import (
	"sort"

	"github.com/KirkDiggler/dnd-battlemap/internal/dice"
	dnderr "github.com/KirkDiggler/dnd-battlemap/internal/errors"
)

// MaxSpells is how many spells one character may know
const MaxSpells = 3

// SpellKey is the catalog key of a spell
type SpellKey string

const (
	SpellFireball  SpellKey = "fireball"
	SpellIceBolt   SpellKey = "ice_bolt"
	SpellLightning SpellKey = "lightning"
	SpellCure      SpellKey = "cure"
	SpellShield    SpellKey = "shield"
)

// SpellKind says what the effect field means
type SpellKind string

const (
	SpellKindDamage  SpellKind = "damage"
	SpellKindHealing SpellKind = "healing"
	SpellKindBuff    SpellKind = "buff"
)

// Spell is a catalog entry. Damage and healing spells carry dice,
// buffs carry a label.
type Spell struct {
	Key         SpellKey  `json:"key"`
	Name        string    `json:"name"`
	EffectDice  string    `json:"effect_dice,omitempty"`
	EffectLabel string    `json:"effect_label,omitempty"`
	Kind        SpellKind `json:"kind"`
	Icon        string    `json:"icon"`
}

// Effect collapses dice or label into the single field the resolver sees
func (s Spell) Effect() string {
	if s.EffectDice != "" {
		return s.EffectDice
	}
	return s.EffectLabel
}

var spellCatalog = map[SpellKey]Spell{
	SpellFireball:  {Key: SpellFireball, Name: "Fireball", EffectDice: "8d6", Kind: SpellKindDamage, Icon: "🔥"},
	SpellIceBolt:   {Key: SpellIceBolt, Name: "Ice Bolt", EffectDice: "6d6", Kind: SpellKindDamage, Icon: "❄️"},
	SpellLightning: {Key: SpellLightning, Name: "Lightning", EffectDice: "7d6", Kind: SpellKindDamage, Icon: "⚡"},
	SpellCure:      {Key: SpellCure, Name: "Cure Wounds", EffectDice: "2d8+4", Kind: SpellKindHealing, Icon: "💚"},
	SpellShield:    {Key: SpellShield, Name: "Shield", EffectLabel: "+5 AC", Kind: SpellKindBuff, Icon: "🛡️"},
}

func init() {
	for key, s := range spellCatalog {
		if s.EffectDice == "" {
			continue
		}
		if _, err := dice.ParseNotation(s.EffectDice); err != nil {
			panic("spell " + string(key) + ": " + err.Error())
		}
	}
}

// SpellByKey returns the catalog spell or a validation error
func SpellByKey(key SpellKey) (Spell, error) {
	s, ok := spellCatalog[key]
	if !ok {
		return Spell{}, dnderr.Validationf("unknown spell %q", key).
			WithMeta("spell", string(key))
	}
	return s, nil
}

// SpellByName looks a spell up by its display name
func SpellByName(name string) (Spell, error) {
	for _, s := range spellCatalog {
		if s.Name == name {
			return s, nil
		}
	}
	return Spell{}, dnderr.Validationf("unknown spell name %q", name).
		WithMeta("spell", name)
}

// Spells lists the catalog sorted by key
func Spells() []Spell {
	out := make([]Spell, 0, len(spellCatalog))
	for _, s := range spellCatalog {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// ResolveSpells validates a spell selection: known keys, no duplicates, at most MaxSpells
func ResolveSpells(keys []SpellKey) ([]Spell, error) {
	if len(keys) > MaxSpells {
		return nil, dnderr.Validationf("at most %d spells allowed, got %d", MaxSpells, len(keys))
	}

	seen := make(map[SpellKey]bool, len(keys))
	out := make([]Spell, 0, len(keys))
	for _, key := range keys {
		if seen[key] {
			return nil, dnderr.Validationf("spell %q selected twice", key)
		}
		seen[key] = true

		s, err := SpellByKey(key)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
