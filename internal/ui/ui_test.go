package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/dungeongen/internal/presets"
	"github.com/samdwyer/dungeongen/internal/raster"
	"github.com/samdwyer/dungeongen/internal/world"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    tcell.Color
		wantErr bool
	}{
		{"#FF0000", tcell.NewRGBColor(255, 0, 0), false},
		{"00ff7f", tcell.NewRGBColor(0, 255, 127), false},
		{"#B0B0B0", tcell.NewRGBColor(176, 176, 176), false},
		{"#FFF", tcell.ColorDefault, true},
		{"#GG0000", tcell.ColorDefault, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHexColor(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPaletteFromPresets(t *testing.T) {
	for _, p := range presets.MustLoadRegistry().All() {
		pal, err := PaletteFrom(p.Palette)
		require.NoError(t, err, p.Name)

		floor, err := ParseHexColor(p.Palette.Floor)
		require.NoError(t, err)
		assert.Equal(t, tcell.StyleDefault.Foreground(floor), pal.Style(raster.KindRoom), p.Name)
	}
}

func TestPaletteFromInvalid(t *testing.T) {
	_, err := PaletteFrom(presets.Palette{Wall: "nope"})
	assert.Error(t, err)
}

func TestPaletteStyle(t *testing.T) {
	pal := DefaultPalette()
	assert.Equal(t, pal.Wall, pal.Style(""))
	assert.Equal(t, pal.Corridor, pal.Style(raster.KindCorridor))
	assert.Equal(t, pal.Absorbed, pal.Style(raster.KindAbsorbed))
}

func TestViewportPan(t *testing.T) {
	v := Viewport{Width: 80, Height: 24}

	v = v.Pan(10, 5, 150, 150)
	assert.Equal(t, Viewport{X: 10, Y: 5, Width: 80, Height: 24}, v)

	v = v.Pan(-100, -100, 150, 150)
	assert.Equal(t, 0, v.X)
	assert.Equal(t, 0, v.Y)

	v = v.Pan(1000, 1000, 150, 150)
	assert.Equal(t, 70, v.X)
	assert.Equal(t, 126, v.Y)
}

func TestViewportSmallMap(t *testing.T) {
	v := Viewport{Width: 80, Height: 24}.Pan(5, 5, 20, 10)
	assert.Equal(t, 0, v.X)
	assert.Equal(t, 0, v.Y)
}

func TestViewportResize(t *testing.T) {
	v := Viewport{X: 70, Y: 126, Width: 80, Height: 24}
	v = v.Resize(120, 40, 150, 150)
	assert.Equal(t, Viewport{X: 30, Y: 110, Width: 120, Height: 40}, v)
}

func TestKindLayer(t *testing.T) {
	g := raster.NewGrid(10, 10)
	g.Add(raster.Placed{Block: raster.Block{TL: raster.Cell{X: 0, Y: 0}, BR: raster.Cell{X: 4, Y: 4}}, Kind: raster.KindRoom, Room: 0, Edge: -1})
	g.Add(raster.Placed{Block: raster.Block{TL: raster.Cell{X: 4, Y: 2}, BR: raster.Cell{X: 8, Y: 2}}, Kind: raster.KindCorridor, Room: -1, Edge: 0})

	layer := kindLayer(g)
	assert.Equal(t, raster.KindRoom, layer[1+1*10])
	assert.Equal(t, raster.KindCorridor, layer[4+2*10])
	assert.Equal(t, raster.KindCorridor, layer[8+2*10])
	assert.Equal(t, raster.Kind(""), layer[9+9*10])
}

func TestStatusLine(t *testing.T) {
	m := &world.Map{
		Seed:      12,
		Grid:      raster.NewGrid(30, 20),
		Principal: []int{0, 1, 2},
		Corridors: 2,
	}
	line := statusLine(m, Viewport{X: 3, Y: 4})
	assert.Contains(t, line, "seed 12")
	assert.Contains(t, line, "30x20")
	assert.Contains(t, line, "rooms 3")
	assert.Contains(t, line, "view 3,4")
}
