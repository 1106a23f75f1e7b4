package entities

import (
	dnderr "github.com/KirkDiggler/dnd-battlemap/internal/errors"
)

const (
	MinAbilityScore = 1
	MaxAbilityScore = 20

	// DefaultAbilityScore is what a fresh draft starts with
	DefaultAbilityScore = 10
)

// Attribute names one of the six ability scores by its short code
type Attribute string

var Attributes = []Attribute{
	AttributeStrength,
	AttributeAgility,
	AttributeConstitution,
	AttributeIntelligence,
	AttributeWisdom,
	AttributeCharisma,
}

const (
	AttributeStrength     Attribute = "str"
	AttributeAgility      Attribute = "dex"
	AttributeConstitution Attribute = "con"
	AttributeIntelligence Attribute = "int"
	AttributeWisdom       Attribute = "wis"
	AttributeCharisma     Attribute = "cha"
)

// AbilityScores are the six raw attributes of a character
type AbilityScores struct {
	Strength     int `json:"strength"`
	Agility      int `json:"agility"`
	Constitution int `json:"constitution"`
	Intelligence int `json:"intelligence"`
	Wisdom       int `json:"wisdom"`
	Charisma     int `json:"charisma"`
}

// DefaultAbilityScores returns 10 in every attribute
func DefaultAbilityScores() AbilityScores {
	return AbilityScores{
		Strength:     DefaultAbilityScore,
		Agility:      DefaultAbilityScore,
		Constitution: DefaultAbilityScore,
		Intelligence: DefaultAbilityScore,
		Wisdom:       DefaultAbilityScore,
		Charisma:     DefaultAbilityScore,
	}
}

// ClampScore forces a score into [MinAbilityScore, MaxAbilityScore]
func ClampScore(score int) int {
	if score < MinAbilityScore {
		return MinAbilityScore
	}
	if score > MaxAbilityScore {
		return MaxAbilityScore
	}
	return score
}

// Clamped returns a copy with every score clamped
func (a AbilityScores) Clamped() AbilityScores {
	return AbilityScores{
		Strength:     ClampScore(a.Strength),
		Agility:      ClampScore(a.Agility),
		Constitution: ClampScore(a.Constitution),
		Intelligence: ClampScore(a.Intelligence),
		Wisdom:       ClampScore(a.Wisdom),
		Charisma:     ClampScore(a.Charisma),
	}
}

// Get returns the score for an attribute
func (a AbilityScores) Get(attr Attribute) (int, error) {
	switch attr {
	case AttributeStrength:
		return a.Strength, nil
	case AttributeAgility:
		return a.Agility, nil
	case AttributeConstitution:
		return a.Constitution, nil
	case AttributeIntelligence:
		return a.Intelligence, nil
	case AttributeWisdom:
		return a.Wisdom, nil
	case AttributeCharisma:
		return a.Charisma, nil
	default:
		return 0, dnderr.InvalidArgumentf("unknown attribute %q", attr)
	}
}

// With returns a copy with one attribute replaced by the clamped score
func (a AbilityScores) With(attr Attribute, score int) (AbilityScores, error) {
	score = ClampScore(score)
	switch attr {
	case AttributeStrength:
		a.Strength = score
	case AttributeAgility:
		a.Agility = score
	case AttributeConstitution:
		a.Constitution = score
	case AttributeIntelligence:
		a.Intelligence = score
	case AttributeWisdom:
		a.Wisdom = score
	case AttributeCharisma:
		a.Charisma = score
	default:
		return a, dnderr.InvalidArgumentf("unknown attribute %q", attr)
	}
	return a, nil
}
