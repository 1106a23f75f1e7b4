package dice

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// ErrInvalidNotation is returned for strings that are not NdS, NdS+B or NdS-B
var ErrInvalidNotation = errors.New("invalid dice notation")

// Notation is a parsed dice expression such as "2d8+4"
type Notation struct {
	Count int
	Sides int
	Bonus int
}

// ParseNotation parses NdS[+B|-B]. Count and sides must be positive.
func ParseNotation(s string) (Notation, error) {
	expr := strings.ToLower(strings.TrimSpace(s))
	if expr == "" {
		return Notation{}, fmt.Errorf("%w: empty", ErrInvalidNotation)
	}

	var n Notation
	diceExpr := expr
	if i := strings.IndexAny(expr, "+-"); i >= 0 {
		bonus, err := strconv.Atoi(expr[i:])
		if err != nil {
			return Notation{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
		}
		n.Bonus = bonus
		diceExpr = expr[:i]
	}

	parts := strings.Split(diceExpr, "d")
	if len(parts) != 2 {
		return Notation{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}

	count, err := strconv.Atoi(parts[0])
	if err != nil || count < 1 {
		return Notation{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}
	sides, err := strconv.Atoi(parts[1])
	if err != nil || sides < 1 {
		return Notation{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}

	n.Count = count
	n.Sides = sides
	return n, nil
}

// MustParseNotation is ParseNotation for package-level catalogs
func MustParseNotation(s string) Notation {
	n, err := ParseNotation(s)
	if err != nil {
		panic(err)
	}
	return n
}

// String renders the notation back in its canonical form
func (n Notation) String() string {
	switch {
	case n.Bonus > 0:
		return fmt.Sprintf("%dd%d+%d", n.Count, n.Sides, n.Bonus)
	case n.Bonus < 0:
		return fmt.Sprintf("%dd%d%d", n.Count, n.Sides, n.Bonus)
	default:
		return fmt.Sprintf("%dd%d", n.Count, n.Sides)
	}
}

// Max is the highest total the notation can produce
func (n Notation) Max() int {
	return n.Count*n.Sides + n.Bonus
}

// RollResult contains detailed information about a dice roll
type RollResult struct {
	Total    int   // Sum of all dice plus bonus
	Rolls    []int // Individual die results
	Bonus    int   // Bonus applied
	Count    int   // Number of dice rolled
	Sides    int   // Number of sides on each die
	RawTotal int   // Sum of dice without bonus
	IsCrit   bool  // Natural 20 on a single d20
	IsFumble bool  // Natural 1 on a single d20
}

// String renders the result as "total [r1,r2,...]"
func (r *RollResult) String() string {
	compact := strings.ReplaceAll(fmt.Sprintf("%v", r.Rolls), " ", ",")
	return fmt.Sprintf("%d %s", r.Total, compact)
}

func roll(rng *rand.Rand, count, sides, bonus int) (*RollResult, error) {
	if count < 1 {
		return nil, errors.New("invalid dice count")
	}

	if sides < 1 {
		return nil, errors.New("invalid dice size")
	}

	rolls := make([]int, count)
	raw := 0
	for i := 0; i < count; i++ {
		rolls[i] = rng.Intn(sides) + 1
		raw += rolls[i]
	}

	result := &RollResult{
		Total:    raw + bonus,
		Rolls:    rolls,
		Bonus:    bonus,
		Count:    count,
		Sides:    sides,
		RawTotal: raw,
	}

	if count == 1 && sides == 20 {
		result.IsCrit = rolls[0] == 20
		result.IsFumble = rolls[0] == 1
	}

	return result, nil
}
