package bestiary

import (
	"github.com/KirkDiggler/dnd-battlemap/internal/clients/dnd5e"
	"github.com/KirkDiggler/dnd-battlemap/internal/dice"
	"github.com/KirkDiggler/dnd-battlemap/internal/entities"
	dnderr "github.com/KirkDiggler/dnd-battlemap/internal/errors"
)

// srdIcon marks monsters imported from the SRD
const srdIcon = "👹"

// SRDImporter turns SRD monsters into templates. Initiative is rolled
// once per import with a d20.
type SRDImporter struct {
	client dnd5e.Client
	roller dice.Roller
}

// NewSRDImporter panics without its dependencies
func NewSRDImporter(client dnd5e.Client, roller dice.Roller) *SRDImporter {
	if client == nil {
		panic("dnd5e client is required")
	}
	if roller == nil {
		panic("dice roller is required")
	}
	return &SRDImporter{client: client, roller: roller}
}

// Import fetches the monster and registers it in b under its SRD key
func (s *SRDImporter) Import(b *Bestiary, key string) (Template, error) {
	monster, err := s.client.GetMonster(key)
	if err != nil {
		return Template{}, dnderr.Wrapf(err, "failed to import %s", key)
	}

	roll, err := s.roller.Roll(1, 20, 0)
	if err != nil {
		return Template{}, dnderr.Wrap(err, "failed to roll initiative")
	}

	t := Template{
		Key:  monster.Key,
		Name: monster.Name,
		Type: string(entities.EntityTypeEnemy),
		Icon: srdIcon,
		Stats: &TemplateStats{
			HP:         monster.HitPoints,
			AC:         monster.ArmorClass,
			Initiative: roll.Total,
		},
	}
	if err := b.Add(t); err != nil {
		return Template{}, err
	}
	return t, nil
}

// Lookup returns the template from b, importing it from the SRD when missing
func (s *SRDImporter) Lookup(b *Bestiary, key string) (Template, error) {
	if t, err := b.Get(key); err == nil {
		return t, nil
	}
	return s.Import(b, key)
}
