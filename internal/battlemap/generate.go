package battlemap

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"

	dnderr "github.com/KirkDiggler/dnd-battlemap/internal/errors"
)

// Painter fills a freshly allocated grid. The rng is the only source
// of randomness a painter may use so a seeded spec is reproducible.
type Painter interface {
	Paint(g *Grid, rng *rand.Rand) error
}

// PainterFunc adapts a function to Painter
type PainterFunc func(g *Grid, rng *rand.Rand) error

// Paint implements Painter
func (f PainterFunc) Paint(g *Grid, rng *rand.Rand) error {
	return f(g, rng)
}

// Spec describes a grid to generate
type Spec struct {
	Width       int
	Height      int
	Name        string
	Description string

	// Seed fixes the layout. When nil a seed is drawn from crypto/rand
	// and recorded on the grid.
	Seed *int64

	Painter Painter
}

// Generate builds a grid from spec. Identical seeded specs produce
// identical grids.
func Generate(spec Spec) (*Grid, error) {
	g, err := NewGrid(spec.Width, spec.Height)
	if err != nil {
		return nil, err
	}
	g.Name = spec.Name
	g.Description = spec.Description

	var seed int64
	if spec.Seed != nil {
		seed = *spec.Seed
	} else {
		seed, err = NewSeed()
		if err != nil {
			return nil, dnderr.Wrap(err, "failed to seed map generation")
		}
	}
	g.Seed = seed

	painter := spec.Painter
	if painter == nil {
		painter = Border()
	}

	if err := painter.Paint(g, rand.New(rand.NewSource(seed))); err != nil {
		return nil, dnderr.Wrap(err, "failed to paint map")
	}

	return g, nil
}

// NewSeed generates a random seed using crypto/rand
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
