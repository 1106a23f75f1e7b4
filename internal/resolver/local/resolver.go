// Package local is a deterministic stand-in for the external turn
// resolver: the active participant attacks the first opponent still
// standing, then the turn passes on.
package local

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/KirkDiggler/dnd-battlemap/internal/codec"
	"github.com/KirkDiggler/dnd-battlemap/internal/dice"
	dnderr "github.com/KirkDiggler/dnd-battlemap/internal/errors"
)

// entityDamage is what a monster without a weapon deals
const entityDamage = "1d6"

// Resolver resolves one turn at a time. It satisfies resolver.Client so
// it can also run in-process.
type Resolver struct {
	roller dice.Roller
	logger *zap.Logger
}

// New creates a resolver rolling with roller
func New(roller dice.Roller, logger *zap.Logger) *Resolver {
	if roller == nil {
		panic("dice roller is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{roller: roller, logger: logger}
}

type attack struct {
	attacker string
	target   string
	weapon   string
	dmg      string
	ac       int
	hp       *int
}

// Resolve plays the active participant's turn and returns the new state
func (r *Resolver) Resolve(ctx context.Context, p codec.Payload) (*codec.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := clonePayload(p)
	if len(out.Turn.Order) == 0 {
		return &codec.Response{Message: "The battlefield is quiet.", Data: out}, nil
	}

	idx, err := currentIndex(out.Turn)
	if err != nil {
		return nil, err
	}
	actor := out.Turn.Order[idx]

	message, defeated, err := r.act(&out, actor)
	if err != nil {
		return nil, err
	}

	if defeated != "" {
		for j, name := range out.Turn.Order {
			if name == defeated && j != idx {
				out.Turn.Order = append(out.Turn.Order[:j:j], out.Turn.Order[j+1:]...)
				if j < idx {
					idx--
				}
				break
			}
		}
	}

	next := out.Turn.Order[(idx+1)%len(out.Turn.Order)]
	out.Turn.Current = &next

	r.logger.Debug("turn resolved locally",
		zap.String("actor", actor),
		zap.String("next", next),
		zap.String("message", message),
	)
	return &codec.Response{Message: message, Data: out}, nil
}

// act returns the narration and the name of an entity that was defeated
func (r *Resolver) act(p *codec.Payload, actor string) (string, string, error) {
	a, ok := r.planAttack(p, actor)
	if !ok {
		return fmt.Sprintf("%s waits, watching the shadows.", actor), "", nil
	}

	hit, err := r.roller.Roll(1, 20, 0)
	if err != nil {
		return "", "", dnderr.Wrap(err, "failed to roll attack")
	}
	if hit.Total < a.ac {
		return fmt.Sprintf("%s swings at %s with %s and misses (%d vs AC %d).",
			a.attacker, a.target, a.weapon, hit.Total, a.ac), "", nil
	}

	notation, err := dice.ParseNotation(a.dmg)
	if err != nil {
		return "", "", dnderr.WrapWithCode(err, dnderr.CodeValidation, "bad damage dice")
	}
	dmg, err := dice.RollNotation(r.roller, notation)
	if err != nil {
		return "", "", dnderr.Wrap(err, "failed to roll damage")
	}

	*a.hp -= dmg.Total
	if *a.hp > 0 {
		return fmt.Sprintf("%s hits %s with %s for %d damage.",
			a.attacker, a.target, a.weapon, dmg.Total), "", nil
	}
	*a.hp = 0

	defeated := ""
	if removeEntity(p, a.target) {
		defeated = a.target
	}
	return fmt.Sprintf("%s hits %s with %s for %d damage. %s falls!",
		a.attacker, a.target, a.weapon, dmg.Total, a.target), defeated, nil
}

// planAttack pairs the actor with the first opponent still standing
func (r *Resolver) planAttack(p *codec.Payload, actor string) (attack, bool) {
	for i := range p.Chars {
		c := &p.Chars[i]
		if c.Name != actor {
			continue
		}
		for j := range p.Entities {
			e := &p.Entities[j]
			if e.Stats == nil || e.Stats.HP <= 0 {
				continue
			}
			return attack{
				attacker: actor, target: e.Name, weapon: c.Weapon.Name,
				dmg: c.Weapon.Dmg, ac: e.Stats.AC, hp: &e.Stats.HP,
			}, true
		}
		return attack{}, false
	}

	for j := range p.Entities {
		e := &p.Entities[j]
		if e.Name != actor {
			continue
		}
		for i := range p.Chars {
			c := &p.Chars[i]
			if c.Stats.HP <= 0 {
				continue
			}
			return attack{
				attacker: actor, target: c.Name, weapon: "claws",
				dmg: entityDamage, ac: c.Stats.AC, hp: &c.Stats.HP,
			}, true
		}
		return attack{}, false
	}
	return attack{}, false
}

func removeEntity(p *codec.Payload, name string) bool {
	for j := range p.Entities {
		if p.Entities[j].Name == name {
			p.Entities = append(p.Entities[:j:j], p.Entities[j+1:]...)
			return true
		}
	}
	return false
}

func currentIndex(turn codec.TurnSection) (int, error) {
	if turn.Current == nil {
		return 0, nil
	}
	for i, name := range turn.Order {
		if name == *turn.Current {
			return i, nil
		}
	}
	return 0, dnderr.UnknownParticipantf("current turn %q is not in the turn order", *turn.Current)
}

func clonePayload(p codec.Payload) codec.Payload {
	out := p
	out.Chars = append([]codec.CharRecord{}, p.Chars...)
	out.Turn.Order = append([]string{}, p.Turn.Order...)
	if p.Turn.Current != nil {
		cur := *p.Turn.Current
		out.Turn.Current = &cur
	}
	if p.Entities != nil {
		out.Entities = make([]codec.EntityRecord, len(p.Entities))
		for i, e := range p.Entities {
			out.Entities[i] = e
			if e.Stats != nil {
				stats := *e.Stats
				out.Entities[i].Stats = &stats
			}
		}
	}
	return out
}
