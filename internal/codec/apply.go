package codec

import (
	dnderr "github.com/KirkDiggler/dnd-battlemap/internal/errors"
	"github.com/KirkDiggler/dnd-battlemap/internal/roster"
	"github.com/KirkDiggler/dnd-battlemap/internal/turnorder"
)

// Apply merges a decoded response into a copy of base and returns the
// new roster and turn order. base is never modified, so a failed
// apply leaves the session as it was.
//
// Characters in the response must already exist; those missing from
// it are kept unchanged. Descriptions are not part of the exchange and
// survive the merge.
func Apply(base *roster.Roster, policy turnorder.Policy, d *Decoded) (*roster.Roster, *turnorder.Order, error) {
	next := base.Clone()
	next.SetGrid(d.Grid)

	for _, c := range d.Characters {
		existing, err := next.Character(c.ID)
		if err != nil {
			return nil, nil, dnderr.WrapWithCode(err, dnderr.CodeValidation, "resolver returned an unknown character")
		}
		updated := c.Clone()
		updated.Description = existing.Description
		if err := next.UpdateCharacter(updated); err != nil {
			return nil, nil, err
		}
	}

	if d.HasEntities() {
		if err := next.ReplaceEntities(d.Entities); err != nil {
			return nil, nil, dnderr.Wrap(err, "failed to replace entities")
		}
	}

	if err := next.CheckOccupancy(); err != nil {
		return nil, nil, dnderr.Wrap(err, "resolver returned overlapping occupants")
	}

	participants, err := resolveParticipants(next, d.TurnNames)
	if err != nil {
		return nil, nil, err
	}

	order, err := turnorder.Restore(policy, participants, d.CurrentIndex)
	if err != nil {
		return nil, nil, dnderr.Wrap(err, "failed to restore turn order")
	}

	return next, order, nil
}

// resolveParticipants maps turn names back to roster participants.
// Unplaced characters and objects never act, so they are not
// candidates. Each participant is used at most once so duplicate names
// map to distinct participants in roster order.
func resolveParticipants(r *roster.Roster, names []string) ([]turnorder.Participant, error) {
	candidates := r.Participants()
	used := make([]bool, len(candidates))

	out := make([]turnorder.Participant, 0, len(names))
	for _, name := range names {
		found := false
		for i, p := range candidates {
			if used[i] || p.Name != name {
				continue
			}
			used[i] = true
			found = true
			out = append(out, p)
			break
		}
		if !found {
			return nil, dnderr.UnknownParticipantf("turn order names %q which is not on the map", name).
				WithMeta("participant", name)
		}
	}
	return out, nil
}
