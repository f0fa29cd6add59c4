package raster

import "strings"

// Kind labels why a block was written.
type Kind string

const (
	KindRoom     Kind = "room"
	KindCorridor Kind = "corridor"
	KindAbsorbed Kind = "absorbed"
)

// Placed is a block as written to the grid.
type Placed struct {
	Block
	Kind Kind `json:"kind"`
	// Room is the index of the room the block came from, or -1 for corridors.
	Room int `json:"room"`
	// Edge is the spanning edge a corridor serves, or the edge whose corridor
	// absorbed the room; -1 for principal rooms.
	Edge int `json:"edge"`
}

// Grid is the occupancy map: row-major tiles plus every block written, in
// write order.
type Grid struct {
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Tiles  []Tile   `json:"tiles"`
	Blocks []Placed `json:"blocks"`
}

// NewGrid creates an empty grid.
func NewGrid(width, height int) *Grid {
	return &Grid{
		Width:  width,
		Height: height,
		Tiles:  make([]Tile, width*height),
	}
}

// InBounds reports whether (x, y) is a cell of the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// At returns the tile at (x, y). Cells outside the grid read as empty.
func (g *Grid) At(x, y int) Tile {
	if !g.InBounds(x, y) {
		return TileEmpty
	}
	return g.Tiles[x+y*g.Width]
}

// Clamp clips b to the grid. It returns false when nothing remains.
func (g *Grid) Clamp(b Block) (Block, bool) {
	if !b.Valid() || g.Width <= 0 || g.Height <= 0 {
		return b, false
	}
	c := Block{
		TL: Cell{X: max(b.TL.X, 0), Y: max(b.TL.Y, 0)},
		BR: Cell{X: min(b.BR.X, g.Width-1), Y: min(b.BR.Y, g.Height-1)},
	}
	return c, c.Valid()
}

// Add clamps p to the grid, marks its cells occupied and records it.
// Blocks that fall entirely outside the grid are not written.
func (g *Grid) Add(p Placed) (Placed, bool) {
	b, ok := g.Clamp(p.Block)
	if !ok {
		return p, false
	}
	p.Block = b
	for y := b.TL.Y; y <= b.BR.Y; y++ {
		row := y * g.Width
		for x := b.TL.X; x <= b.BR.X; x++ {
			g.Tiles[row+x] = TileFloor
		}
	}
	g.Blocks = append(g.Blocks, p)
	return p, true
}

// Occupied returns the number of floor tiles.
func (g *Grid) Occupied() int {
	n := 0
	for _, t := range g.Tiles {
		if t == TileFloor {
			n++
		}
	}
	return n
}

// Count returns how many recorded blocks have the given kind.
func (g *Grid) Count(kind Kind) int {
	n := 0
	for _, b := range g.Blocks {
		if b.Kind == kind {
			n++
		}
	}
	return n
}

// String renders the grid one row per line.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.Width + 1) * g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			sb.WriteRune(g.At(x, y).Rune())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
