package raster

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zyedidia/generic/mapset"

	"github.com/samdwyer/dungeongen/internal/geom"
	"github.com/samdwyer/dungeongen/internal/spanning"
)

// ErrInvalidBlock is returned when a principal room covers no whole tile.
var ErrInvalidBlock = errors.New("raster: room smaller than a tile")

// ErrGridTooLarge is returned when the grid would exceed MaxCells.
var ErrGridTooLarge = errors.New("raster: grid too large")

// MaxCells caps the area of any grid Rasterize allocates.
const MaxCells = 1 << 22

// DefaultMinOverlap is the shared span, in cells, two rooms need along an
// axis before a straight corridor is run between them.
const DefaultMinOverlap = 3

// DiagonalPolicy decides what happens to a spanning edge whose rooms share
// no straight run.
type DiagonalPolicy int

const (
	// DiagonalLShape carves a horizontal then a vertical one-cell segment
	// between the room centers.
	DiagonalLShape DiagonalPolicy = iota
	// DiagonalSkip leaves the edge without a corridor and reports it.
	DiagonalSkip
)

// String returns the policy name.
func (p DiagonalPolicy) String() string {
	switch p {
	case DiagonalLShape:
		return "lshape"
	case DiagonalSkip:
		return "skip"
	default:
		return "unknown"
	}
}

// ParseDiagonal parses a policy name; the empty string selects the default.
func ParseDiagonal(s string) (DiagonalPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lshape", "l":
		return DiagonalLShape, nil
	case "skip", "none":
		return DiagonalSkip, nil
	default:
		return 0, fmt.Errorf("raster: unknown diagonal policy %q", s)
	}
}

// Options controls rasterization.
type Options struct {
	// TileSize is the side of one grid cell in layout units.
	TileSize float64
	// Width and Height fix the grid size; zero sizes the grid to the layout.
	Width, Height int
	Diagonal      DiagonalPolicy
	// MinOverlap defaults to DefaultMinOverlap.
	MinOverlap int
}

// Result is the rasterized map.
type Result struct {
	Grid *Grid
	// Blocks holds the snapped block of every room, by room index.
	Blocks []Block
	// Corridors counts spanning edges that received a corridor.
	Corridors int
	// Unrouted lists spanning edge indices left without a corridor.
	Unrouted []int
	// Absorbed lists non-principal rooms pulled in by corridors.
	Absorbed []int
	// Clipped lists principal rooms that fell entirely outside a fixed grid
	// and were not written.
	Clipped []int
}

// Rasterize writes the principal rooms, one corridor per spanning edge, and
// any other room a corridor cuts through.
//
// Edge endpoints index into principal; principal indexes into rooms.
func Rasterize(rooms []geom.Rect, principal []int, edges []spanning.Edge, opts Options) (*Result, error) {
	if opts.TileSize <= 0 {
		return nil, fmt.Errorf("raster: tile size must be positive, got %v", opts.TileSize)
	}
	minOverlap := opts.MinOverlap
	if minOverlap <= 0 {
		minOverlap = DefaultMinOverlap
	}

	blocks := make([]Block, len(rooms))
	for i, r := range rooms {
		blocks[i] = ToBlock(r, opts.TileSize)
	}
	for _, idx := range principal {
		if !blocks[idx].Valid() {
			return nil, fmt.Errorf("%w: room %d snaps to %v", ErrInvalidBlock, idx, blocks[idx])
		}
	}

	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		fw, fh, err := extent(blocks)
		if err != nil {
			return nil, err
		}
		if width <= 0 {
			width = fw
		}
		if height <= 0 {
			height = fh
		}
	}
	if width > 0 && height > MaxCells/width {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d cells", ErrGridTooLarge, width, height, MaxCells)
	}

	res := &Result{Grid: NewGrid(width, height), Blocks: blocks}
	added := mapset.New[int]()
	for _, idx := range principal {
		if _, ok := res.Grid.Add(Placed{Block: blocks[idx], Kind: KindRoom, Room: idx, Edge: -1}); !ok {
			res.Clipped = append(res.Clipped, idx)
		}
		added.Put(idx)
	}

	for ei, e := range edges {
		if e.Child < 0 || e.Child >= len(principal) || e.Parent < 0 || e.Parent >= len(principal) {
			return nil, fmt.Errorf("raster: edge %d (%d->%d) outside %d principal rooms", ei, e.Child, e.Parent, len(principal))
		}
		child, parent := blocks[principal[e.Child]], blocks[principal[e.Parent]]

		segments, routed := corridor(child, parent, minOverlap, opts.Diagonal)
		if !routed {
			res.Unrouted = append(res.Unrouted, ei)
			continue
		}
		if len(segments) > 0 {
			res.Corridors++
		}
		for _, seg := range segments {
			placed, ok := res.Grid.Add(Placed{Block: seg, Kind: KindCorridor, Room: -1, Edge: ei})
			if !ok {
				continue
			}
			res.absorb(placed.Block, ei, added)
		}
	}
	return res, nil
}

// absorb writes every room not yet on the grid whose block the corridor
// segment passes through.
func (r *Result) absorb(seg Block, edge int, added mapset.Set[int]) {
	for i, b := range r.Blocks {
		if added.Has(i) || !b.Valid() || !seg.Overlaps(b) {
			continue
		}
		added.Put(i)
		if _, ok := r.Grid.Add(Placed{Block: b, Kind: KindAbsorbed, Room: i, Edge: edge}); ok {
			r.Absorbed = append(r.Absorbed, i)
		}
	}
}

// corridor returns the segments joining a and b. routed is false when the
// rooms share no straight run and the policy is DiagonalSkip. Rooms that
// already touch need no segments.
func corridor(a, b Block, minOverlap int, policy DiagonalPolicy) (segments []Block, routed bool) {
	ox, oy := overlapX(a, b), overlapY(a, b)
	horizontal := oy >= minOverlap
	vertical := ox >= minOverlap

	switch {
	case horizontal && (!vertical || oy >= ox):
		lo, hi := max(a.TL.Y, b.TL.Y)+1, min(a.BR.Y, b.BR.Y)-1
		from, to, ok := gap(a.TL.X, a.BR.X, b.TL.X, b.BR.X)
		if !ok {
			return nil, true
		}
		return []Block{{TL: Cell{X: from, Y: lo}, BR: Cell{X: to, Y: hi}}}, true

	case vertical:
		lo, hi := max(a.TL.X, b.TL.X)+1, min(a.BR.X, b.BR.X)-1
		from, to, ok := gap(a.TL.Y, a.BR.Y, b.TL.Y, b.BR.Y)
		if !ok {
			return nil, true
		}
		return []Block{{TL: Cell{X: lo, Y: from}, BR: Cell{X: hi, Y: to}}}, true
	}

	if policy == DiagonalSkip {
		return nil, false
	}
	return lShape(a.Center(), b.Center()), true
}

// gap returns the cells strictly between two spans on one axis.
func gap(aLo, aHi, bLo, bHi int) (from, to int, ok bool) {
	switch {
	case aHi < bLo:
		from, to = aHi+1, bLo-1
	case bHi < aLo:
		from, to = bHi+1, aLo-1
	default:
		return 0, 0, false
	}
	return from, to, from <= to
}

// lShape runs along c1's row to c2's column, then along that column to c2.
func lShape(c1, c2 Cell) []Block {
	return []Block{
		{TL: Cell{X: min(c1.X, c2.X), Y: c1.Y}, BR: Cell{X: max(c1.X, c2.X), Y: c1.Y}},
		{TL: Cell{X: c2.X, Y: min(c1.Y, c2.Y)}, BR: Cell{X: c2.X, Y: max(c1.Y, c2.Y)}},
	}
}

// extent returns a grid size holding every valid block. Blocks reaching
// past MaxCells on either axis cannot fit any allowed grid.
func extent(blocks []Block) (width, height int, err error) {
	for _, b := range blocks {
		if !b.Valid() {
			continue
		}
		if b.TL.X < 0 || b.TL.Y < 0 || b.BR.X >= MaxCells || b.BR.Y >= MaxCells {
			return 0, 0, fmt.Errorf("%w: block %v out of range", ErrGridTooLarge, b)
		}
		width = max(width, b.BR.X+1)
		height = max(height, b.BR.Y+1)
	}
	return width, height, nil
}

// MarshalText encodes the policy by name.
func (p DiagonalPolicy) MarshalText() ([]byte, error) {
	if p != DiagonalLShape && p != DiagonalSkip {
		return nil, fmt.Errorf("raster: unknown diagonal policy %d", int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText decodes a policy name.
func (p *DiagonalPolicy) UnmarshalText(text []byte) error {
	v, err := ParseDiagonal(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
