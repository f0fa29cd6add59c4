package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/dungeongen/internal/geom"
)

func TestNormalize(t *testing.T) {
	rooms := []geom.Rect{
		geom.NewRect(geom.Point{X: -30.5, Y: 12}, 10, 10),
		geom.NewRect(geom.Point{X: 4, Y: -7.25}, 10, 10),
		geom.NewRect(geom.Point{X: 100, Y: 100}, 10, 10),
	}

	offset := Normalize(rooms)
	assert.Equal(t, geom.Point{X: 30.5, Y: 7.25}, offset)
	assert.Equal(t, geom.Point{X: 0, Y: 19.25}, rooms[0].Anchor)
	assert.Equal(t, geom.Point{X: 34.5, Y: 0}, rooms[1].Anchor)
}

func TestNormalizePositiveLayoutShiftsToOrigin(t *testing.T) {
	rooms := []geom.Rect{
		geom.NewRect(geom.Point{X: 40, Y: 60}, 10, 10),
		geom.NewRect(geom.Point{X: 90, Y: 55}, 10, 10),
	}
	Normalize(rooms)

	assert.Equal(t, 0.0, rooms[0].Anchor.X)
	assert.Equal(t, 0.0, rooms[1].Anchor.Y)
}

func TestNormalizeIdempotent(t *testing.T) {
	rooms := []geom.Rect{
		geom.NewRect(geom.Point{X: -3, Y: 8}, 1, 1),
		geom.NewRect(geom.Point{X: 17, Y: -2}, 1, 1),
	}
	Normalize(rooms)
	snapshot := append([]geom.Rect(nil), rooms...)

	assert.Equal(t, geom.Point{}, Normalize(rooms))
	assert.Equal(t, snapshot, rooms)
}

func TestNormalizeEmpty(t *testing.T) {
	assert.Equal(t, geom.Point{}, Normalize(nil))
}

func TestPrincipal(t *testing.T) {
	rooms := []geom.Rect{
		geom.NewRect(geom.Point{}, 10, 10), // 100
		geom.NewRect(geom.Point{}, 20, 20), // 400
		geom.NewRect(geom.Point{}, 5, 5),   // 25
		geom.NewRect(geom.Point{}, 40, 10), // 400
		geom.NewRect(geom.Point{}, 30, 10), // 300
	}

	got, err := Principal(rooms, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 4}, got)

	all, err := Principal(rooms, 5)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 4, 0, 2}, all)
}

func TestPrincipalErrors(t *testing.T) {
	rooms := make([]geom.Rect, 5)

	_, err := Principal(rooms, 10)
	assert.ErrorIs(t, err, ErrInsufficientRooms)

	_, err = Principal(rooms, 0)
	assert.Error(t, err)
}

func TestCenters(t *testing.T) {
	rooms := []geom.Rect{
		geom.NewRect(geom.Point{}, 10, 10),
		geom.NewRect(geom.Point{X: 20}, 10, 20),
	}
	assert.Equal(t, []geom.Point{{X: 25, Y: 10}, {X: 5, Y: 5}}, Centers(rooms, []int{1, 0}))
}
