package vdp

import (
	"errors"
	"testing"

	"github.com/bodgit/tilevid/tile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// uniform builds a screen showing one pattern everywhere, with optional
// per-cell overrides.
func uniform(t *testing.T, x, y int, fill tile.Tile, overrides map[Cell]tile.Tile) *Screen {
	t.Helper()

	positions := make(map[tile.Tile][]Cell)
	for _, c := range Visible(x, y) {
		tl := fill
		if o, ok := overrides[c]; ok {
			tl = o
		}
		positions[tl] = append(positions[tl], c)
	}

	s, err := NewScreen(x, y, positions)
	require.NoError(t, err)
	return s
}

func TestNewScreen(t *testing.T) {
	s := uniform(t, 0, 0, tile.Blank, map[Cell]tile.Tile{{0, 0}: tile.Full})

	assert.Equal(t, 0, s.X())
	assert.Equal(t, 0, s.Y())
	assert.Equal(t, []tile.Tile{tile.Blank, tile.Full}, s.Tiles())
	assert.Len(t, s.Positions(tile.Blank), 1249)
	assert.Equal(t, []Cell{{0, 0}}, s.PositionsSorted(tile.Full))

	tl, ok := s.TileAt(Cell{0, 0})
	assert.True(t, ok)
	assert.Equal(t, tile.Full, tl)

	tl, ok = s.TileAt(Cell{0, 1})
	assert.True(t, ok)
	assert.Equal(t, tile.Blank, tl)

	_, ok = s.TileAt(Cell{30, 0})
	assert.False(t, ok)
}

func TestNewScreenNormalizesOffsets(t *testing.T) {
	s := uniform(t, 800, 1200, tile.Blank, nil)
	assert.Equal(t, 0, s.X())
	assert.Equal(t, 0, s.Y())
}

func TestNewScreenCoverage(t *testing.T) {
	// missing cell
	positions := map[tile.Tile][]Cell{}
	cells := Visible(0, 0)
	positions[tile.Blank] = cells[:len(cells)-1]
	_, err := NewScreen(0, 0, positions)
	assert.True(t, errors.Is(err, ErrScreenCoverage))

	// cell outside the viewport
	positions[tile.Blank] = append(cells[:len(cells)-1:len(cells)-1], Cell{Row: 30, Col: 0})
	_, err = NewScreen(0, 0, positions)
	assert.True(t, errors.Is(err, ErrScreenCoverage))

	// cell mapped by two patterns
	positions = map[tile.Tile][]Cell{
		tile.Blank: cells,
		tile.Full:  {cells[0]},
	}
	_, err = NewScreen(0, 0, positions)
	assert.True(t, errors.Is(err, ErrScreenCoverage))
}

func TestScreenEqual(t *testing.T) {
	a := uniform(t, 0, 0, tile.Blank, map[Cell]tile.Tile{{0, 0}: tile.Full})
	b := uniform(t, 0, 0, tile.Blank, map[Cell]tile.Tile{{0, 0}: tile.Full})
	c := uniform(t, 0, 0, tile.Blank, map[Cell]tile.Tile{{0, 1}: tile.Full})
	d := uniform(t, 8, 0, tile.Blank, nil)
	e := uniform(t, 0, 0, tile.Blank, nil)

	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(e))
	assert.False(t, e.Equal(d))
}
