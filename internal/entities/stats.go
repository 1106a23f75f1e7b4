package entities

const (
	baseHitPoints  = 10
	baseArmorClass = 10
)

// DerivedStats are the combat numbers computed from ability scores
type DerivedStats struct {
	HP    int `json:"hp"`
	MaxHP int `json:"max_hp"`
	AC    int `json:"ac"`
}

// MaxHitPoints is 10 + constitution, constitution clamped first
func MaxHitPoints(constitution int) int {
	return baseHitPoints + ClampScore(constitution)
}

// ArmorClass is 10 + floor((agility - 10) / 2), agility clamped first
func ArmorClass(agility int) int {
	return baseArmorClass + floorDiv(ClampScore(agility)-10, 2)
}

// Derive computes stats for freshly set ability scores. HP starts full.
func Derive(scores AbilityScores) DerivedStats {
	maxHP := MaxHitPoints(scores.Constitution)
	return DerivedStats{
		HP:    maxHP,
		MaxHP: maxHP,
		AC:    ArmorClass(scores.Agility),
	}
}

// SetHP assigns hp, keeping it within [0, MaxHP]
func (d *DerivedStats) SetHP(hp int) {
	switch {
	case hp < 0:
		d.HP = 0
	case hp > d.MaxHP:
		d.HP = d.MaxHP
	default:
		d.HP = hp
	}
}

// IsValid reports whether 0 <= HP <= MaxHP
func (d DerivedStats) IsValid() bool {
	return d.HP >= 0 && d.HP <= d.MaxHP
}

// Go division truncates toward zero
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
