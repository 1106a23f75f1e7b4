package local_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dnd-battlemap/internal/codec"
	mockdice "github.com/KirkDiggler/dnd-battlemap/internal/dice/mock"
	dnderr "github.com/KirkDiggler/dnd-battlemap/internal/errors"
	"github.com/KirkDiggler/dnd-battlemap/internal/resolver/local"
)

func ptr(s string) *string { return &s }

func skirmish() codec.Payload {
	return codec.Payload{
		Map: codec.MapSection{W: 5, H: 5, Tiles: map[string][]codec.Coord{}},
		Chars: []codec.CharRecord{{
			ID: "c1", Name: "Aria", Pos: codec.Coord{1, 1},
			Stats:  codec.CharStats{HP: 12, Max: 12, AC: 12},
			Weapon: codec.WeaponRecord{Name: "Sword", Dmg: "1d8"},
			Spells: []codec.SpellRecord{},
		}},
		Turn: codec.TurnSection{Order: []string{"Aria", "Goblin Scout"}, Current: ptr("Aria")},
		Entities: []codec.EntityRecord{{
			ID: "e1", Name: "Goblin Scout", Type: "enemy", Pos: codec.Coord{3, 3},
			Stats: &codec.EntityStatsRecord{HP: 7, Max: 7, AC: 15, Init: 10},
		}},
	}
}

func TestResolve_Hit(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	roller.SetRolls([]int{16, 4})

	resp, err := local.New(roller, nil).Resolve(context.Background(), skirmish())
	require.NoError(t, err)

	assert.Equal(t, "Aria hits Goblin Scout with Sword for 4 damage.", resp.Message)
	require.Len(t, resp.Data.Entities, 1)
	assert.Equal(t, 3, resp.Data.Entities[0].Stats.HP)
	require.NotNil(t, resp.Data.Turn.Current)
	assert.Equal(t, "Goblin Scout", *resp.Data.Turn.Current)
}

func TestResolve_DefeatRemovesEntity(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	roller.SetRolls([]int{20, 8})

	resp, err := local.New(roller, nil).Resolve(context.Background(), skirmish())
	require.NoError(t, err)

	assert.Equal(t, "Aria hits Goblin Scout with Sword for 8 damage. Goblin Scout falls!", resp.Message)
	assert.NotNil(t, resp.Data.Entities)
	assert.Empty(t, resp.Data.Entities)
	assert.Equal(t, []string{"Aria"}, resp.Data.Turn.Order)
	assert.Equal(t, "Aria", *resp.Data.Turn.Current)
}

func TestResolve_Miss(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	roller.SetRolls([]int{9})

	resp, err := local.New(roller, nil).Resolve(context.Background(), skirmish())
	require.NoError(t, err)

	assert.Equal(t, "Aria swings at Goblin Scout with Sword and misses (9 vs AC 15).", resp.Message)
	assert.Equal(t, 7, resp.Data.Entities[0].Stats.HP)
	assert.Equal(t, "Goblin Scout", *resp.Data.Turn.Current)
}

func TestResolve_EntityAttacksCharacter(t *testing.T) {
	p := skirmish()
	p.Turn.Current = ptr("Goblin Scout")

	roller := mockdice.NewManualMockRoller()
	roller.SetRolls([]int{12, 5})

	resp, err := local.New(roller, nil).Resolve(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, "Goblin Scout hits Aria with claws for 5 damage.", resp.Message)
	assert.Equal(t, 7, resp.Data.Chars[0].Stats.HP)
	assert.Equal(t, "Aria", *resp.Data.Turn.Current)
}

func TestResolve_NoOpponentWaits(t *testing.T) {
	p := skirmish()
	p.Entities = nil
	p.Turn.Order = []string{"Aria"}

	resp, err := local.New(mockdice.NewManualMockRoller(), nil).Resolve(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, "Aria waits, watching the shadows.", resp.Message)
	assert.Nil(t, resp.Data.Entities)
}

func TestResolve_EmptyOrder(t *testing.T) {
	p := skirmish()
	p.Turn = codec.TurnSection{Order: []string{}}

	resp, err := local.New(mockdice.NewManualMockRoller(), nil).Resolve(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "The battlefield is quiet.", resp.Message)
}

func TestResolve_UnknownCurrent(t *testing.T) {
	p := skirmish()
	p.Turn.Current = ptr("Nobody")

	_, err := local.New(mockdice.NewManualMockRoller(), nil).Resolve(context.Background(), p)
	require.Error(t, err)
	assert.True(t, dnderr.IsUnknownParticipant(err))
}

func TestResolve_DoesNotMutateInput(t *testing.T) {
	p := skirmish()
	roller := mockdice.NewManualMockRoller()
	roller.SetRolls([]int{20, 8})

	_, err := local.New(roller, nil).Resolve(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, skirmish(), p)
}

func TestResolve_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := local.New(mockdice.NewManualMockRoller(), nil).Resolve(ctx, skirmish())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew_PanicsWithoutRoller(t *testing.T) {
	assert.Panics(t, func() { local.New(nil, nil) })
}
