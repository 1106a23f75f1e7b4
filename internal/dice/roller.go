package dice

// Roller provides an interface for rolling dice
// This allows us to inject different implementations for testing
type Roller interface {
	// Roll rolls a number of dice with the given sides and adds a bonus
	Roll(count, sides, bonus int) (*RollResult, error)
}

// RollNotation rolls a parsed notation with the given roller
func RollNotation(r Roller, n Notation) (*RollResult, error) {
	return r.Roll(n.Count, n.Sides, n.Bonus)
}
