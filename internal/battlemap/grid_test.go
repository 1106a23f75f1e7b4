package battlemap_test

import (
	"math/rand"
	"testing"

	"github.com/KirkDiggler/dnd-battlemap/internal/battlemap"
	dnderr "github.com/KirkDiggler/dnd-battlemap/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOccupancy map[[2]int]string

func (f fakeOccupancy) OccupantAt(x, y int) (string, bool) {
	id, ok := f[[2]int{x, y}]
	return id, ok
}

func seed(v int64) *int64 { return &v }

func TestGenerate_BorderWalls(t *testing.T) {
	g, err := battlemap.Generate(battlemap.Spec{
		Width: 15, Height: 25, Seed: seed(1), Painter: battlemap.Border(),
	})
	require.NoError(t, err)

	for y := 0; y < 25; y++ {
		for x := 0; x < 15; x++ {
			tile, err := g.TileAt(x, y)
			require.NoError(t, err)
			if x == 0 || y == 0 || x == 14 || y == 24 {
				assert.Equal(t, battlemap.TileWall, tile.Type, "(%d,%d)", x, y)
			} else {
				assert.Equal(t, battlemap.TileWoodFloor, tile.Type, "(%d,%d)", x, y)
			}
		}
	}
	assert.False(t, g.IsBlocked(7, 20))
	assert.True(t, g.IsBlocked(0, 5))
}

func TestGrid_TileAt_OutOfBounds(t *testing.T) {
	g, err := battlemap.NewGrid(15, 25)
	require.NoError(t, err)

	for _, p := range [][2]int{{-1, 0}, {0, -1}, {15, 0}, {0, 25}} {
		_, err := g.TileAt(p[0], p[1])
		assert.True(t, dnderr.IsOutOfBounds(err), "(%d,%d)", p[0], p[1])
		assert.True(t, g.IsBlocked(p[0], p[1]))
	}
}

func TestNewGrid_RejectsEmpty(t *testing.T) {
	_, err := battlemap.NewGrid(0, 10)
	assert.True(t, dnderr.IsInvalidArgument(err))
}

func TestGrid_IsOccupied(t *testing.T) {
	g, err := battlemap.NewGrid(5, 5)
	require.NoError(t, err)

	occ := fakeOccupancy{{2, 3}: "character-1"}
	assert.True(t, g.IsOccupied(2, 3, occ))
	assert.False(t, g.IsOccupied(3, 2, occ))
	assert.False(t, g.IsOccupied(2, 3, nil))
}

func TestShip_SeededIsReproducible(t *testing.T) {
	spec := battlemap.Spec{Width: 15, Height: 25, Seed: seed(99), Painter: battlemap.Ship(0.3)}

	a, err := battlemap.Generate(spec)
	require.NoError(t, err)
	b, err := battlemap.Generate(spec)
	require.NoError(t, err)

	assert.Equal(t, a.Tiles(), b.Tiles())
	assert.Equal(t, int64(99), a.Seed)

	center, err := a.TileAt(7, 12)
	require.NoError(t, err)
	assert.Equal(t, battlemap.TileWater, center.Type)

	for _, p := range a.NonDefault()[battlemap.TileCrate] {
		assert.False(t, a.IsEdge(p.X, p.Y))
	}
}

func TestShip_NoCratesAtZeroChance(t *testing.T) {
	g, err := battlemap.Generate(battlemap.Spec{Width: 9, Height: 9, Seed: seed(5), Painter: battlemap.Ship(0)})
	require.NoError(t, err)

	groups := g.NonDefault()
	assert.Empty(t, groups[battlemap.TileCrate])
	assert.Len(t, groups[battlemap.TileWater], 1)
	assert.Len(t, groups[battlemap.TileWall], 32)
}

func TestShip_RejectsBadChance(t *testing.T) {
	_, err := battlemap.Generate(battlemap.Spec{Width: 9, Height: 9, Seed: seed(5), Painter: battlemap.Ship(1.5)})
	assert.True(t, dnderr.IsInvalidArgument(err))
}

func TestRiver(t *testing.T) {
	g, err := battlemap.Generate(battlemap.Spec{Width: 15, Height: 25, Seed: seed(1), Painter: battlemap.River()})
	require.NoError(t, err)

	water, _ := g.TileAt(5, 10)
	assert.Equal(t, battlemap.TileWater, water.Type)
	bridge, _ := g.TileAt(5, 12)
	assert.Equal(t, battlemap.TileWoodFloor, bridge.Type)
	bank, _ := g.TileAt(6, 21)
	assert.Equal(t, battlemap.TileWoodFloor, bank.Type)
	wall, _ := g.TileAt(10, 10)
	assert.Equal(t, battlemap.TileWall, wall.Type)
}

func TestGenerate_UnseededRecordsSeed(t *testing.T) {
	g, err := battlemap.Generate(battlemap.Spec{Width: 15, Height: 25, Painter: battlemap.Ship(0.5)})
	require.NoError(t, err)

	replay, err := battlemap.Generate(battlemap.Spec{Width: 15, Height: 25, Seed: seed(g.Seed), Painter: battlemap.Ship(0.5)})
	require.NoError(t, err)
	assert.Equal(t, g.Tiles(), replay.Tiles())
}

func TestGenerate_PainterError(t *testing.T) {
	failing := battlemap.PainterFunc(func(g *battlemap.Grid, _ *rand.Rand) error {
		return g.Set(100, 100, battlemap.TileWall)
	})
	_, err := battlemap.Generate(battlemap.Spec{Width: 3, Height: 3, Seed: seed(1), Painter: failing})
	assert.True(t, dnderr.IsOutOfBounds(err))
}

func TestBuiltinPainter(t *testing.T) {
	for _, layout := range []battlemap.Layout{battlemap.LayoutBorder, battlemap.LayoutShip, battlemap.LayoutRiver} {
		p, err := battlemap.BuiltinPainter(layout, battlemap.DefaultCrateChance)
		require.NoError(t, err)
		assert.NotNil(t, p)
	}
	_, err := battlemap.BuiltinPainter(battlemap.LayoutScript, 0)
	assert.Error(t, err)
}

func TestTileType_Text(t *testing.T) {
	for _, tt := range battlemap.TileTypes {
		b, err := tt.MarshalText()
		require.NoError(t, err)

		var back battlemap.TileType
		require.NoError(t, back.UnmarshalText(b))
		assert.Equal(t, tt, back)
	}

	_, err := battlemap.ParseTileType("LAVA")
	assert.True(t, dnderr.IsValidation(err))
	assert.False(t, battlemap.TileWoodFloor.IsBlocking())
}

func TestGrid_CloneIsIndependent(t *testing.T) {
	g, err := battlemap.NewGrid(3, 3)
	require.NoError(t, err)
	clone := g.Clone()
	require.NoError(t, clone.Set(1, 1, battlemap.TileCrate))

	assert.False(t, g.IsBlocked(1, 1))
	assert.True(t, clone.IsBlocked(1, 1))
}
