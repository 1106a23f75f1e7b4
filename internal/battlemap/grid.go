package battlemap

import (
	"sort"

	"github.com/KirkDiggler/dnd-battlemap/internal/entities"
	dnderr "github.com/KirkDiggler/dnd-battlemap/internal/errors"
)

// Grid is a fixed width x height array of tiles, stored row-major
type Grid struct {
	Width       int
	Height      int
	Name        string
	Description string

	// Seed is the seed the layout was generated with. Zero for grids
	// that were decoded rather than generated.
	Seed int64

	cells []TileType
}

// Occupancy answers who stands on a cell
type Occupancy interface {
	OccupantAt(x, y int) (id string, ok bool)
}

// NewGrid returns a grid filled with DefaultTile
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, dnderr.InvalidArgumentf("grid size must be positive, got %dx%d", width, height)
	}
	return &Grid{
		Width:  width,
		Height: height,
		cells:  make([]TileType, width*height),
	}, nil
}

func (g *Grid) index(x, y int) int {
	return y*g.Width + x
}

// InBounds reports whether (x, y) lies inside the grid
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// TileAt returns the tile at (x, y)
func (g *Grid) TileAt(x, y int) (Tile, error) {
	if !g.InBounds(x, y) {
		return Tile{}, dnderr.OutOfBounds(x, y, g.Width, g.Height)
	}
	return Tile{X: x, Y: y, Type: g.cells[g.index(x, y)]}, nil
}

// Set changes the tile type at (x, y)
func (g *Grid) Set(x, y int, t TileType) error {
	if !g.InBounds(x, y) {
		return dnderr.OutOfBounds(x, y, g.Width, g.Height)
	}
	if _, ok := tileLabels[t]; !ok {
		return dnderr.Validationf("unknown tile type %d", t)
	}
	g.cells[g.index(x, y)] = t
	return nil
}

// IsBlocked reports whether the tile stops placement. Cells outside
// the grid count as blocked.
func (g *Grid) IsBlocked(x, y int) bool {
	if !g.InBounds(x, y) {
		return true
	}
	return g.cells[g.index(x, y)].IsBlocking()
}

// IsOccupied reports whether any placed character or entity stands on (x, y)
func (g *Grid) IsOccupied(x, y int, occ Occupancy) bool {
	if occ == nil {
		return false
	}
	_, ok := occ.OccupantAt(x, y)
	return ok
}

// IsEdge reports whether (x, y) is on the outer ring
func (g *Grid) IsEdge(x, y int) bool {
	return x == 0 || y == 0 || x == g.Width-1 || y == g.Height-1
}

// Center returns (width/2, height/2)
func (g *Grid) Center() entities.Position {
	return entities.Position{X: g.Width / 2, Y: g.Height / 2}
}

// Tiles returns every tile, row by row
func (g *Grid) Tiles() []Tile {
	out := make([]Tile, 0, len(g.cells))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			out = append(out, Tile{X: x, Y: y, Type: g.cells[g.index(x, y)]})
		}
	}
	return out
}

// NonDefault groups the positions of every non-default tile by type.
// Positions are in row-major order.
func (g *Grid) NonDefault() map[TileType][]entities.Position {
	out := make(map[TileType][]entities.Position)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			t := g.cells[g.index(x, y)]
			if t == DefaultTile {
				continue
			}
			out[t] = append(out[t], entities.Position{X: x, Y: y})
		}
	}
	return out
}

// Blocked lists blocking positions sorted row-major
func (g *Grid) Blocked() []entities.Position {
	var out []entities.Position
	for _, positions := range g.NonDefault() {
		out = append(out, positions...)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// Clone returns a deep copy
func (g *Grid) Clone() *Grid {
	if g == nil {
		return nil
	}
	out := *g
	out.cells = make([]TileType, len(g.cells))
	copy(out.cells, g.cells)
	return &out
}
