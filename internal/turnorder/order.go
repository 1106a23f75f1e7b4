// Package turnorder keeps the ordered list of participants and whose
// turn is active.
package turnorder

import (
	"sort"

	dnderr "github.com/KirkDiggler/dnd-battlemap/internal/errors"
)

// Kind says where a participant lives in the roster
type Kind string

const (
	KindCharacter Kind = "character"
	KindEntity    Kind = "entity"
)

// Participant is one slot in the turn order. Score is initiative for
// entities and agility for characters.
type Participant struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Kind  Kind   `json:"kind"`
	Score int    `json:"score"`
}

// Policy decides what happens to the active turn when the roster changes
type Policy string

const (
	// PolicyReset starts again from the first participant
	PolicyReset Policy = "reset"
	// PolicyPreserveActive keeps the active participant if they are still present
	PolicyPreserveActive Policy = "preserve_active"
)

// ComputeOrder sorts by score, highest first. Equal scores keep their
// input order.
func ComputeOrder(participants []Participant) []Participant {
	out := make([]Participant, len(participants))
	copy(out, participants)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// Order is the computed sequence plus the active index. The zero value
// is an empty order using PolicyReset.
type Order struct {
	participants []Participant
	current      int
	policy       Policy
}

// New creates an empty order
func New(policy Policy) *Order {
	return &Order{policy: policy}
}

// Restore builds an order from an already sorted sequence, as returned
// by a resolver
func Restore(policy Policy, participants []Participant, current int) (*Order, error) {
	o := New(policy)
	if len(participants) == 0 {
		if current != 0 {
			return nil, dnderr.InvalidArgumentf("empty turn order cannot have current index %d", current)
		}
		return o, nil
	}
	if current < 0 || current >= len(participants) {
		return nil, dnderr.InvalidArgumentf("current index %d outside [0,%d)", current, len(participants))
	}
	o.participants = make([]Participant, len(participants))
	copy(o.participants, participants)
	o.current = current
	return o, nil
}

// Policy returns the roster change policy
func (o *Order) Policy() Policy {
	if o.policy == "" {
		return PolicyReset
	}
	return o.policy
}

// Recompute re-sorts after the roster changed. Under PolicyReset the
// active index goes back to 0. Under PolicyPreserveActive the active
// participant keeps the turn if still present, otherwise 0.
func (o *Order) Recompute(participants []Participant) {
	var activeID string
	if p, ok := o.Current(); ok {
		activeID = p.ID
	}

	o.participants = ComputeOrder(participants)
	o.current = 0

	if o.Policy() != PolicyPreserveActive || activeID == "" {
		return
	}
	for i, p := range o.participants {
		if p.ID == activeID {
			o.current = i
			return
		}
	}
}

// Advance moves to the next participant, wrapping at the end. No-op when empty.
func (o *Order) Advance() {
	if len(o.participants) == 0 {
		o.current = 0
		return
	}
	o.current = (o.current + 1) % len(o.participants)
}

// Current returns the active participant, false when empty
func (o *Order) Current() (Participant, bool) {
	if len(o.participants) == 0 {
		return Participant{}, false
	}
	return o.participants[o.current], true
}

// CurrentIndex returns the active index, 0 when empty
func (o *Order) CurrentIndex() int {
	return o.current
}

// Len returns the number of participants
func (o *Order) Len() int {
	return len(o.participants)
}

// Participants returns a copy of the sequence
func (o *Order) Participants() []Participant {
	out := make([]Participant, len(o.participants))
	copy(out, o.participants)
	return out
}

// Names returns participant names in turn order
func (o *Order) Names() []string {
	out := make([]string, len(o.participants))
	for i, p := range o.participants {
		out[i] = p.Name
	}
	return out
}

// Clone returns an independent copy
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	return &Order{
		participants: o.Participants(),
		current:      o.current,
		policy:       o.policy,
	}
}
