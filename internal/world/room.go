package world

import "fmt"

// RoomConfig controls the size of candidate rooms and how many are kept.
type RoomConfig struct {
	MinWidth  float64 `json:"minWidth"`  // Floor width in layout units
	MinHeight float64 `json:"minHeight"` // Floor height in layout units
	Variation float64 `json:"variation"` // Random extra span added to width and height
	Expansion float64 `json:"expansion"` // Constant padding added to width and height
	Count     int     `json:"count"`     // Principal rooms to keep
}

// DefaultRoomConfig returns the room settings of the reference map server.
func DefaultRoomConfig() RoomConfig {
	return RoomConfig{
		MinWidth:  50,
		MinHeight: 50,
		Variation: 50,
		Expansion: 0,
		Count:     10,
	}
}

// Validate checks the config on its own; see Params.Validate for the checks
// that involve other parameters.
func (c RoomConfig) Validate() error {
	switch {
	case c.MinWidth <= 0 || c.MinHeight <= 0:
		return fmt.Errorf("%w: room floor must be positive, got %vx%v", ErrInvalidParams, c.MinWidth, c.MinHeight)
	case c.Variation < 0:
		return fmt.Errorf("%w: negative variation %v", ErrInvalidParams, c.Variation)
	case c.Expansion < 0:
		return fmt.Errorf("%w: negative expansion %v", ErrInvalidParams, c.Expansion)
	case c.Count < 3:
		return fmt.Errorf("%w: need at least 3 principal rooms to triangulate, got %d", ErrDegenerateTriangulationInput, c.Count)
	}
	return nil
}

// smallestSide returns the smallest width or height a candidate can have.
func (c RoomConfig) smallestSide() float64 {
	return min(c.MinWidth, c.MinHeight) + c.Expansion
}
