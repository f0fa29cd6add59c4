package world

import (
	"github.com/samdwyer/dungeongen/internal/geom"
	"github.com/samdwyer/dungeongen/internal/raster"
	"github.com/samdwyer/dungeongen/internal/separate"
	"github.com/samdwyer/dungeongen/internal/spanning"
)

// Map is the result of one generation run.
type Map struct {
	ID     string `json:"id"`
	Seed   int64  `json:"seed"`
	Params Params `json:"params"`

	// Grid holds the tiles and every block written, in order.
	Grid *raster.Grid `json:"grid"`

	// PrincipalRooms are the connected rooms, largest first.
	PrincipalRooms []geom.Rect `json:"principalRooms"`
	// Principal holds the index in Rooms of each principal room.
	Principal []int `json:"principal"`
	// Rooms is every candidate after separation and normalization.
	Rooms []geom.Rect `json:"rooms"`

	// Edges index into PrincipalRooms (child -> parent).
	Edges     []spanning.Edge `json:"edges"`
	Corridors int             `json:"corridors"`
	// Unrouted lists edges left without a corridor (DiagonalSkip only).
	Unrouted []int `json:"unrouted,omitempty"`
	// Absorbed lists non-principal rooms a corridor cut through.
	Absorbed []int `json:"absorbed,omitempty"`
	// Clipped lists principal rooms that fell entirely outside a fixed grid.
	Clipped []int `json:"clipped,omitempty"`

	Separation separate.Stats `json:"separation"`
}

// Blocks returns every block written to the grid, in write order.
func (m *Map) Blocks() []raster.Placed {
	return m.Grid.Blocks
}

// Width returns the grid width in tiles.
func (m *Map) Width() int {
	return m.Grid.Width
}

// Height returns the grid height in tiles.
func (m *Map) Height() int {
	return m.Grid.Height
}

// IsPassable returns true if the given position can be walked on.
func (m *Map) IsPassable(x, y int) bool {
	return m.Grid.At(x, y).IsPassable()
}

// RoomIndexAt returns the principal room whose block contains the position,
// or -1 if none does.
func (m *Map) RoomIndexAt(x, y int) int {
	for _, b := range m.Grid.Blocks {
		if b.Kind != raster.KindRoom || !b.Contains(raster.Cell{X: x, Y: y}) {
			continue
		}
		for i, idx := range m.Principal {
			if idx == b.Room {
				return i
			}
		}
	}
	return -1
}

// String renders the tile grid.
func (m *Map) String() string {
	return m.Grid.String()
}
