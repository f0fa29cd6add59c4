// Package raster writes principal rooms and their corridors onto a tile grid.
package raster

// Tile represents a single grid cell.
type Tile uint8

const (
	// TileEmpty is solid rock.
	TileEmpty Tile = 0
	// TileFloor is carved, walkable space.
	TileFloor Tile = 1
)

// IsPassable returns true if the tile can be walked on.
func (t Tile) IsPassable() bool {
	return t == TileFloor
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	if t == TileFloor {
		return '.'
	}
	return '#'
}
