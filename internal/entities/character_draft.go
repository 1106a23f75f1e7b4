package entities

import (
	dnderr "github.com/KirkDiggler/dnd-battlemap/internal/errors"
)

// CharacterDraft is a character under construction. Every ability
// change re-derives the stats and restores full HP. Once finalized
// the draft rejects further edits.
type CharacterDraft struct {
	Spec      CharacterSpec `json:"spec"`
	Derived   DerivedStats  `json:"derived"`
	Finalized bool          `json:"finalized"`
}

// NewCharacterDraft starts a draft with default scores
func NewCharacterDraft() *CharacterDraft {
	d := &CharacterDraft{
		Spec: CharacterSpec{
			Abilities: DefaultAbilityScores(),
			Weapon:    DefaultWeapon,
		},
	}
	d.Derived = Derive(d.Spec.Abilities)
	return d
}

func (d *CharacterDraft) checkEditable() error {
	if d.Finalized {
		return dnderr.New(dnderr.CodeValidation, "character draft is finalized")
	}
	return nil
}

// SetAbility clamps the score, stores it and re-derives stats
func (d *CharacterDraft) SetAbility(attr Attribute, score int) error {
	if err := d.checkEditable(); err != nil {
		return err
	}
	abilities, err := d.Spec.Abilities.With(attr, score)
	if err != nil {
		return err
	}
	d.Spec.Abilities = abilities
	d.Derived = Derive(abilities)
	return nil
}

// SetName sets the display name
func (d *CharacterDraft) SetName(name string) error {
	if err := d.checkEditable(); err != nil {
		return err
	}
	d.Spec.Name = name
	return nil
}

// SetIcon selects an icon from the catalog
func (d *CharacterDraft) SetIcon(icon string) error {
	if err := d.checkEditable(); err != nil {
		return err
	}
	resolved, err := ResolveIcon(icon)
	if err != nil {
		return err
	}
	d.Spec.Icon = resolved
	return nil
}

// SetWeapon selects a weapon from the catalog
func (d *CharacterDraft) SetWeapon(kind WeaponKind) error {
	if err := d.checkEditable(); err != nil {
		return err
	}
	if _, err := WeaponByKind(kind); err != nil {
		return err
	}
	d.Spec.Weapon = kind
	return nil
}

// ToggleSpell adds the spell if absent, removes it if present
func (d *CharacterDraft) ToggleSpell(key SpellKey) error {
	if err := d.checkEditable(); err != nil {
		return err
	}
	if _, err := SpellByKey(key); err != nil {
		return err
	}

	for i, existing := range d.Spec.Spells {
		if existing == key {
			d.Spec.Spells = append(d.Spec.Spells[:i:i], d.Spec.Spells[i+1:]...)
			return nil
		}
	}

	if len(d.Spec.Spells) >= MaxSpells {
		return dnderr.Validationf("at most %d spells allowed", MaxSpells)
	}
	d.Spec.Spells = append(d.Spec.Spells, key)
	return nil
}

// Finalize freezes the draft and builds the character
func (d *CharacterDraft) Finalize(id string) (*Character, error) {
	if err := d.checkEditable(); err != nil {
		return nil, err
	}
	char, err := NewCharacter(id, d.Spec)
	if err != nil {
		return nil, err
	}
	d.Finalized = true
	return char, nil
}
