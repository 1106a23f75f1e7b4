package roster_test

import (
	"testing"

	"github.com/KirkDiggler/dnd-battlemap/internal/battlemap"
	"github.com/KirkDiggler/dnd-battlemap/internal/entities"
	dnderr "github.com/KirkDiggler/dnd-battlemap/internal/errors"
	"github.com/KirkDiggler/dnd-battlemap/internal/roster"
	"github.com/KirkDiggler/dnd-battlemap/internal/turnorder"
	"github.com/KirkDiggler/dnd-battlemap/internal/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RosterTestSuite struct {
	suite.Suite
	grid   *battlemap.Grid
	roster *roster.Roster
}

func (s *RosterTestSuite) SetupTest() {
	seed := int64(1)
	grid, err := battlemap.Generate(battlemap.Spec{Width: 15, Height: 25, Seed: &seed, Painter: battlemap.Border()})
	s.Require().NoError(err)
	s.Require().NoError(grid.Set(4, 4, battlemap.TileCrate))

	s.grid = grid
	s.roster = roster.New(grid, uuid.NewSequenceGenerator("character"))
}

func (s *RosterTestSuite) createCharacter(name string, con, agi int) *entities.Character {
	abilities := entities.DefaultAbilityScores()
	abilities.Constitution = con
	abilities.Agility = agi

	char, err := s.roster.CreateCharacter(entities.CharacterSpec{Name: name, Abilities: abilities})
	s.Require().NoError(err)
	return char
}

func (s *RosterTestSuite) TestScenario_PlaceThenCollide() {
	first := s.createCharacter("Aria", 14, 16)
	s.Equal("character-1", first.ID)
	s.Equal(24, first.Derived.MaxHP)
	s.Equal(24, first.Derived.HP)
	s.Equal(13, first.Derived.AC)
	s.Nil(first.Position)

	placed, err := s.roster.PlaceCharacter(first.ID, 7, 20)
	s.Require().NoError(err)
	s.Equal(&entities.Position{X: 7, Y: 20}, placed.Position)

	second := s.createCharacter("Brom", 10, 10)
	_, err = s.roster.PlaceCharacter(second.ID, 7, 20)
	s.True(dnderr.IsTileOccupied(err), "got %v", err)
	s.Equal("character-1", dnderr.GetMeta(err)["occupant_id"])
}

func (s *RosterTestSuite) TestPlaceCharacter_FailuresDoNotMutate() {
	char := s.createCharacter("Aria", 10, 10)
	other := s.createCharacter("Brom", 10, 10)
	_, err := s.roster.PlaceCharacter(other.ID, 2, 2)
	s.Require().NoError(err)

	before := s.roster.All()

	tests := []struct {
		name  string
		x, y  int
		check func(error) bool
	}{
		{name: "out of bounds", x: 15, y: 3, check: dnderr.IsOutOfBounds},
		{name: "negative", x: -1, y: 3, check: dnderr.IsOutOfBounds},
		{name: "wall", x: 0, y: 3, check: dnderr.IsTileBlocked},
		{name: "crate", x: 4, y: 4, check: dnderr.IsTileBlocked},
		{name: "occupied", x: 2, y: 2, check: dnderr.IsTileOccupied},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.roster.PlaceCharacter(char.ID, tt.x, tt.y)
			s.True(tt.check(err), "got %v", err)
			s.Equal(before, s.roster.All())
		})
	}
}

func (s *RosterTestSuite) TestPlaceCharacter_OnlyOnce() {
	char := s.createCharacter("Aria", 10, 10)
	_, err := s.roster.PlaceCharacter(char.ID, 3, 3)
	s.Require().NoError(err)

	_, err = s.roster.PlaceCharacter(char.ID, 5, 5)
	s.True(dnderr.Is(err, dnderr.CodeAlreadyPlaced))

	_, err = s.roster.PlaceCharacter("character-99", 5, 5)
	s.True(dnderr.IsNotFound(err))
}

func (s *RosterTestSuite) TestRemoveCharacter_Idempotent() {
	char := s.createCharacter("Aria", 10, 10)
	_, err := s.roster.PlaceCharacter(char.ID, 3, 3)
	s.Require().NoError(err)

	s.True(s.roster.RemoveCharacter(char.ID))
	s.False(s.roster.RemoveCharacter(char.ID))

	_, ok := s.roster.At(3, 3)
	s.False(ok)
	s.Empty(s.roster.All())
}

func (s *RosterTestSuite) TestSpawnEntity() {
	goblin := &entities.Entity{
		ID: "goblin-1", Name: "Goblin Scout", Type: entities.EntityTypeEnemy,
		Position: entities.Position{X: 5, Y: 5},
		Stats:    &entities.EntityStats{HP: 7, MaxHP: 7, AC: 15, Initiative: 14},
	}
	_, err := s.roster.SpawnEntity(goblin)
	s.Require().NoError(err)

	_, err = s.roster.SpawnEntity(goblin)
	s.True(dnderr.Is(err, dnderr.CodeAlreadyExists))

	char := s.createCharacter("Aria", 10, 10)
	_, err = s.roster.PlaceCharacter(char.ID, 5, 5)
	s.True(dnderr.IsTileOccupied(err))

	occ, ok := s.roster.At(5, 5)
	s.Require().True(ok)
	s.Equal("Goblin Scout", occ.Name())

	wall := &entities.Entity{ID: "chest-1", Name: "Chest", Type: entities.EntityTypeObject, Position: entities.Position{X: 0, Y: 0}}
	_, err = s.roster.SpawnEntity(wall)
	s.True(dnderr.IsTileBlocked(err))
}

func (s *RosterTestSuite) TestParticipants() {
	slow := s.createCharacter("Slow", 10, 8)
	fast := s.createCharacter("Fast", 10, 18)
	s.createCharacter("Unplaced", 10, 20)

	_, err := s.roster.PlaceCharacter(slow.ID, 1, 1)
	s.Require().NoError(err)
	_, err = s.roster.PlaceCharacter(fast.ID, 1, 2)
	s.Require().NoError(err)

	_, err = s.roster.SpawnEntity(&entities.Entity{
		ID: "goblin-1", Name: "Goblin Scout", Type: entities.EntityTypeEnemy,
		Position: entities.Position{X: 5, Y: 5},
		Stats:    &entities.EntityStats{HP: 7, MaxHP: 7, AC: 15, Initiative: 14},
	})
	s.Require().NoError(err)
	_, err = s.roster.SpawnEntity(&entities.Entity{
		ID: "chest-1", Name: "Treasure Chest", Type: entities.EntityTypeObject,
		Position: entities.Position{X: 7, Y: 15},
	})
	s.Require().NoError(err)

	got := s.roster.Participants()
	s.Equal([]turnorder.Participant{
		{ID: "character-1", Name: "Slow", Kind: turnorder.KindCharacter, Score: 8},
		{ID: "character-2", Name: "Fast", Kind: turnorder.KindCharacter, Score: 18},
		{ID: "goblin-1", Name: "Goblin Scout", Kind: turnorder.KindEntity, Score: 14},
	}, got)
}

func (s *RosterTestSuite) TestReplaceEntities() {
	char := s.createCharacter("Aria", 10, 10)
	_, err := s.roster.PlaceCharacter(char.ID, 3, 3)
	s.Require().NoError(err)

	_, err = s.roster.SpawnEntity(&entities.Entity{
		ID: "goblin-1", Name: "Goblin Scout", Type: entities.EntityTypeEnemy,
		Position: entities.Position{X: 5, Y: 5},
		Stats:    &entities.EntityStats{HP: 7, MaxHP: 7, AC: 15, Initiative: 14},
	})
	s.Require().NoError(err)

	err = s.roster.ReplaceEntities([]*entities.Entity{
		{ID: "skeleton-1", Name: "Skeleton Archer", Type: entities.EntityTypeEnemy,
			Position: entities.Position{X: 10, Y: 8},
			Stats:    &entities.EntityStats{HP: 13, MaxHP: 13, AC: 13, Initiative: 16}},
	})
	s.Require().NoError(err)

	list := s.roster.Entities()
	s.Require().Len(list, 1)
	s.Equal("skeleton-1", list[0].ID)

	err = s.roster.ReplaceEntities([]*entities.Entity{
		{ID: "ghost-1", Name: "Ghost", Type: entities.EntityTypeEnemy, Position: entities.Position{X: 3, Y: 3}},
	})
	s.True(dnderr.IsTileOccupied(err))
	s.Equal("skeleton-1", s.roster.Entities()[0].ID, "failed replacement keeps the old list")
}

func (s *RosterTestSuite) TestClone() {
	char := s.createCharacter("Aria", 10, 10)
	clone := s.roster.Clone()

	_, err := clone.PlaceCharacter(char.ID, 3, 3)
	s.Require().NoError(err)

	original, err := s.roster.Character(char.ID)
	s.Require().NoError(err)
	s.False(original.IsPlaced())
}

func TestRosterSuite(t *testing.T) {
	suite.Run(t, new(RosterTestSuite))
}

func TestNew_PanicsWithoutDeps(t *testing.T) {
	grid, err := battlemap.NewGrid(3, 3)
	require.NoError(t, err)

	assert.Panics(t, func() { roster.New(nil, uuid.NewSequenceGenerator("c")) })
	assert.Panics(t, func() { roster.New(grid, nil) })
}
