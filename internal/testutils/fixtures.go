package testutils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dnd-battlemap/internal/battlemap"
	"github.com/KirkDiggler/dnd-battlemap/internal/entities"
	"github.com/KirkDiggler/dnd-battlemap/internal/roster"
	"github.com/KirkDiggler/dnd-battlemap/internal/uuid"
)

// CreateTestCharacterSpec creates a sword-wielding spec with the given
// constitution and agility; other scores default to 10
func CreateTestCharacterSpec(name string, con, agi int) entities.CharacterSpec {
	scores := entities.DefaultAbilityScores()
	scores.Constitution = con
	scores.Agility = agi
	return entities.CharacterSpec{
		Name:      name,
		Abilities: scores,
		Weapon:    entities.WeaponSword,
		Spells:    []entities.SpellKey{entities.SpellFireball},
	}
}

// CreateTestGrid creates an all-floor grid
func CreateTestGrid(t *testing.T, width, height int) *battlemap.Grid {
	t.Helper()
	g, err := battlemap.NewGrid(width, height)
	require.NoError(t, err)
	return g
}

// CreateTestRoster creates an empty roster over an all-floor grid with
// sequential character ids
func CreateTestRoster(t *testing.T, width, height int) *roster.Roster {
	t.Helper()
	return roster.New(CreateTestGrid(t, width, height), uuid.NewSequenceGenerator("character"))
}

// CreateTestGoblin creates an acting enemy at (x, y)
func CreateTestGoblin(id string, x, y, initiative int) *entities.Entity {
	return &entities.Entity{
		ID:       id,
		Name:     "Goblin Scout",
		Type:     entities.EntityTypeEnemy,
		Icon:     "🧟",
		Position: entities.Position{X: x, Y: y},
		Stats:    &entities.EntityStats{HP: 7, MaxHP: 7, AC: 15, Initiative: initiative},
	}
}
