package dice

import (
	"math/rand"
	"sync"
)

// randomRoller implements Roller on a seeded source
type randomRoller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomRoller creates a roller whose sequence is fixed by seed
func NewRandomRoller(seed int64) Roller {
	return &randomRoller{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Roll implements Roller.Roll
func (r *randomRoller) Roll(count, sides, bonus int) (*RollResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return roll(r.rng, count, sides, bonus)
}
