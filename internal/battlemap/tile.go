package battlemap

import (
	dnderr "github.com/KirkDiggler/dnd-battlemap/internal/errors"
)

// TileType is the closed set of terrain kinds
type TileType uint8

const (
	TileWoodFloor TileType = iota
	TileWater
	TileWall
	TileCrate
)

// DefaultTile is the passable type every grid starts filled with
const DefaultTile = TileWoodFloor

var tileLabels = map[TileType]string{
	TileWoodFloor: "WOOD_FLOOR",
	TileWater:     "WATER",
	TileWall:      "WALL",
	TileCrate:     "CRATE",
}

// TileTypes lists every type in declaration order
var TileTypes = []TileType{TileWoodFloor, TileWater, TileWall, TileCrate}

// String returns the wire label, e.g. "WALL"
func (t TileType) String() string {
	if label, ok := tileLabels[t]; ok {
		return label
	}
	return "UNKNOWN"
}

// IsBlocking reports whether the terrain stops placement
func (t TileType) IsBlocking() bool {
	switch t {
	case TileWall, TileWater, TileCrate:
		return true
	default:
		return false
	}
}

// ParseTileType maps a wire label back to its type
func ParseTileType(label string) (TileType, error) {
	for t, l := range tileLabels {
		if l == label {
			return t, nil
		}
	}
	return 0, dnderr.Validationf("unknown tile type %q", label).
		WithMeta("tile_type", label)
}

// MarshalText implements encoding.TextMarshaler
func (t TileType) MarshalText() ([]byte, error) {
	if _, ok := tileLabels[t]; !ok {
		return nil, dnderr.Validationf("unknown tile type %d", t)
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *TileType) UnmarshalText(b []byte) error {
	parsed, err := ParseTileType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Tile is one cell of the grid
type Tile struct {
	X    int      `json:"x"`
	Y    int      `json:"y"`
	Type TileType `json:"type"`
}
