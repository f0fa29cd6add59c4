package world

import (
	"fmt"

	"github.com/samdwyer/dungeongen/internal/raster"
)

const (
	DefaultCandidates = 40
	DefaultRadius     = 80
	DefaultIncrement  = 10
	DefaultTileSize   = 30
	DefaultGridWidth  = 150
	DefaultGridHeight = 150
)

// Params are the inputs of one generation run.
type Params struct {
	Candidates int        `json:"candidates"` // Rooms scattered before separation
	Radius     float64    `json:"radius"`     // Disk radius candidates are scattered in
	Rooms      RoomConfig `json:"rooms"`
	Increment  float64    `json:"increment"` // Displacement per separation step
	Seed       int64      `json:"seed"`

	TileSize   float64               `json:"tileSize"`   // Layout units per grid cell
	GridWidth  int                   `json:"gridWidth"`  // 0 sizes the grid to the layout
	GridHeight int                   `json:"gridHeight"` // 0 sizes the grid to the layout
	MaxSteps   int                   `json:"maxSteps"`   // Per-room separation budget, 0 for the default
	Diagonal   raster.DiagonalPolicy `json:"diagonal"`
}

// DefaultParams returns the settings the reference map server used.
func DefaultParams() Params {
	return Params{
		Candidates: DefaultCandidates,
		Radius:     DefaultRadius,
		Rooms:      DefaultRoomConfig(),
		Increment:  DefaultIncrement,
		TileSize:   DefaultTileSize,
		GridWidth:  DefaultGridWidth,
		GridHeight: DefaultGridHeight,
	}
}

// Validate checks p before any generation work. A candidate pool smaller
// than the principal count is reported first, as ErrInsufficientCandidates.
func (p Params) Validate() error {
	if p.Candidates < p.Rooms.Count {
		return fmt.Errorf("%w: %d candidates for %d principal rooms", ErrInsufficientCandidates, p.Candidates, p.Rooms.Count)
	}
	if err := p.Rooms.Validate(); err != nil {
		return err
	}
	switch {
	case p.Radius <= 0:
		return fmt.Errorf("%w: radius must be positive, got %v", ErrInvalidParams, p.Radius)
	case p.Increment <= 0:
		return fmt.Errorf("%w: increment must be positive, got %v", ErrInvalidParams, p.Increment)
	case p.TileSize <= 0:
		return fmt.Errorf("%w: tile size must be positive, got %v", ErrInvalidParams, p.TileSize)
	case p.Rooms.smallestSide() < p.TileSize:
		return fmt.Errorf("%w: rooms as small as %v cannot cover a %v tile", ErrInvalidParams, p.Rooms.smallestSide(), p.TileSize)
	case p.GridWidth < 0 || p.GridHeight < 0:
		return fmt.Errorf("%w: negative grid size %dx%d", ErrInvalidParams, p.GridWidth, p.GridHeight)
	case p.GridWidth > 0 && p.GridHeight > raster.MaxCells/p.GridWidth:
		return fmt.Errorf("%w: grid %dx%d exceeds %d cells", ErrInvalidParams, p.GridWidth, p.GridHeight, raster.MaxCells)
	case p.Diagonal != raster.DiagonalLShape && p.Diagonal != raster.DiagonalSkip:
		return fmt.Errorf("%w: unknown diagonal policy %d", ErrInvalidParams, int(p.Diagonal))
	case p.MaxSteps < 0:
		return fmt.Errorf("%w: negative step budget %d", ErrInvalidParams, p.MaxSteps)
	}
	return nil
}
