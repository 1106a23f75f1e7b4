package battlemap

import (
	"math/rand"

	dnderr "github.com/KirkDiggler/dnd-battlemap/internal/errors"
)

// Layout names a built-in painter
type Layout string

const (
	LayoutBorder Layout = "border"
	LayoutShip   Layout = "ship"
	LayoutRiver  Layout = "river"
	LayoutScript Layout = "script"
)

// DefaultCrateChance is the share of inner deck tiles the ship layout
// turns into crates
const DefaultCrateChance = 0.1

// riverBridgeRow is the row where the river can be crossed
const riverBridgeRow = 12

// BuiltinPainter returns the painter for a built-in layout. LayoutScript
// is not built in, see the script package.
func BuiltinPainter(layout Layout, crateChance float64) (Painter, error) {
	switch layout {
	case LayoutBorder, "":
		return Border(), nil
	case LayoutShip:
		return Ship(crateChance), nil
	case LayoutRiver:
		return River(), nil
	default:
		return nil, dnderr.InvalidArgumentf("layout %q is not built in", layout)
	}
}

// Border walls the outer ring and leaves the rest as floor
func Border() Painter {
	return PainterFunc(func(g *Grid, _ *rand.Rand) error {
		paintBorder(g)
		return nil
	})
}

// Ship is a walled deck with a water hatch in the center and crates
// scattered over the inner tiles with the given chance
func Ship(crateChance float64) Painter {
	return PainterFunc(func(g *Grid, rng *rand.Rand) error {
		if crateChance < 0 || crateChance > 1 {
			return dnderr.InvalidArgumentf("crate chance %v outside [0,1]", crateChance)
		}

		paintBorder(g)
		center := g.Center()
		for y := 0; y < g.Height; y++ {
			for x := 0; x < g.Width; x++ {
				if g.IsEdge(x, y) || (x == center.X && y == center.Y) {
					continue
				}
				if rng.Float64() < crateChance {
					g.cells[g.index(x, y)] = TileCrate
				}
			}
		}
		g.cells[g.index(center.X, center.Y)] = TileWater
		return nil
	})
}

// River is a walled field split by a two-column river with a bridge,
// plus a few inner wall segments. Segments that fall outside small
// grids are skipped.
func River() Painter {
	return PainterFunc(func(g *Grid, _ *rand.Rand) error {
		paintBorder(g)
		for y := 0; y < g.Height; y++ {
			for x := 0; x < g.Width; x++ {
				if g.IsEdge(x, y) {
					continue
				}
				switch {
				case isRiver(x, y, g.Height):
					g.cells[g.index(x, y)] = TileWater
				case isInnerWall(x, y):
					g.cells[g.index(x, y)] = TileWall
				}
			}
		}
		return nil
	})
}

func paintBorder(g *Grid) {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.IsEdge(x, y) {
				g.cells[g.index(x, y)] = TileWall
			}
		}
	}
}

func isRiver(x, y, height int) bool {
	return (x == 5 || x == 6) && y > 3 && y < height-4 && y != riverBridgeRow
}

func isInnerWall(x, y int) bool {
	switch {
	case y == 8 && x > 8 && x < 13:
		return true
	case y == 15 && x > 2 && x < 7:
		return true
	case x == 10 && y > 8 && y < 12:
		return true
	case x == 3 && y > 15 && y < 20:
		return true
	case x > 11 && x < 14 && y > 2 && y < 5:
		return true
	case x == 11 && y == 3:
		return true
	default:
		return false
	}
}
