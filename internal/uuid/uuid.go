// uuid id generators that allow mocking
package uuid

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Generator is an interface for generating ids
type Generator interface {
	New() string
}

// GoogleUUIDGenerator implements Generator using Google's UUID package.
// A non-empty Prefix is joined to the UUID with a dash.
type GoogleUUIDGenerator struct {
	Prefix string
}

// New generates a new UUID string
func (g *GoogleUUIDGenerator) New() string {
	if g.Prefix == "" {
		return uuid.New().String()
	}
	return g.Prefix + "-" + uuid.New().String()
}

// NewGoogleUUIDGenerator creates a new GoogleUUIDGenerator
func NewGoogleUUIDGenerator(prefix string) *GoogleUUIDGenerator {
	return &GoogleUUIDGenerator{Prefix: prefix}
}

// SequenceGenerator hands out "<prefix>-1", "<prefix>-2", ...
// Useful where ids must be predictable (tests, the local resolver).
type SequenceGenerator struct {
	mu     sync.Mutex
	prefix string
	next   int
}

// NewSequenceGenerator creates a SequenceGenerator starting at 1
func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{prefix: prefix, next: 1}
}

// New returns the next id in the sequence
func (g *SequenceGenerator) New() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := fmt.Sprintf("%s-%d", g.prefix, g.next)
	g.next++
	return id
}
