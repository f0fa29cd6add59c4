package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dungeongen/internal/presets"
	"github.com/samdwyer/dungeongen/internal/raster"
)

// Palette holds the styles used to draw each kind of cell.
type Palette struct {
	Room     tcell.Style
	Corridor tcell.Style
	Absorbed tcell.Style
	Wall     tcell.Style
	Status   tcell.Style
}

// DefaultPalette matches the grays of a plain terminal.
func DefaultPalette() Palette {
	return Palette{
		Room:     tcell.StyleDefault.Foreground(tcell.ColorGray),
		Corridor: tcell.StyleDefault.Foreground(tcell.ColorSilver),
		Absorbed: tcell.StyleDefault.Foreground(tcell.ColorGray),
		Wall:     tcell.StyleDefault.Foreground(tcell.ColorDarkGray),
		Status:   tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true),
	}
}

// PaletteFrom builds styles from a preset's hex colors. Missing colors keep
// the default style.
func PaletteFrom(p presets.Palette) (Palette, error) {
	pal := DefaultPalette()
	for _, c := range []struct {
		hex string
		dst *tcell.Style
	}{
		{p.Floor, &pal.Room},
		{p.Floor, &pal.Absorbed},
		{p.Corridor, &pal.Corridor},
		{p.Wall, &pal.Wall},
	} {
		if c.hex == "" {
			continue
		}
		color, err := ParseHexColor(c.hex)
		if err != nil {
			return pal, err
		}
		*c.dst = tcell.StyleDefault.Foreground(color)
	}
	return pal, nil
}

// Style returns the style for a cell of the given kind. An empty kind means
// no block covers the cell.
func (p Palette) Style(kind raster.Kind) tcell.Style {
	switch kind {
	case raster.KindRoom:
		return p.Room
	case raster.KindCorridor:
		return p.Corridor
	case raster.KindAbsorbed:
		return p.Absorbed
	default:
		return p.Wall
	}
}

// ParseHexColor converts a hex color string (e.g., "#FF0000" or "FF0000") to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(hex, "#")

	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %s", hex)
	}

	rgb, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %s: %w", hex, err)
	}

	return tcell.NewHexColor(int32(rgb)), nil
}
