package vdp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCell(t *testing.T) {
	c, err := NewCell(49, 99)
	require.NoError(t, err)
	assert.Equal(t, Cell{Row: 49, Col: 99}, c)

	for _, rc := range [][2]int{{50, 0}, {0, 100}, {-1, 0}, {0, -1}} {
		_, err := NewCell(rc[0], rc[1])
		assert.True(t, errors.Is(err, ErrInvalidCell))
	}
}

func TestCellOrdering(t *testing.T) {
	cells := []Cell{{1, 0}, {0, 5}, {0, 0}, {1, 3}}
	SortCells(cells)
	assert.Equal(t, []Cell{{0, 0}, {0, 5}, {1, 0}, {1, 3}}, cells)
}

func TestNormalizeOffsets(t *testing.T) {
	x, y := NormalizeOffsets(800, 600)
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)

	x, y = NormalizeOffsets(-1, -1)
	assert.Equal(t, 799, x)
	assert.Equal(t, 599, y)

	x, y = NormalizeOffsets(801, 1201)
	assert.Equal(t, 1, x)
	assert.Equal(t, 1, y)
}

func TestVisibleCounts(t *testing.T) {
	tests := []struct {
		x, y, count int
	}{
		{0, 0, 1250},
		{1, 0, 1275},
		{0, 1, 1300},
		{1, 1, 1326},
		{8, 12, 1250},
		{799, 599, 1326},
	}

	for _, tt := range tests {
		assert.Len(t, Visible(tt.x, tt.y), tt.count, "offsets (%d, %d)", tt.x, tt.y)
	}
}

func TestVisibleWrap(t *testing.T) {
	cells := VisibleSet(792, 588)

	// 792/8 = 99 and 588/12 = 49 so the viewport covers the last column
	// and row plus a wrapped region from the origin
	for _, c := range []Cell{{49, 99}, {0, 0}, {23, 48}, {49, 0}, {0, 99}} {
		_, ok := cells[c]
		assert.True(t, ok, "%v", c)
	}
	for _, c := range []Cell{{24, 0}, {0, 49}, {25, 25}} {
		_, ok := cells[c]
		assert.False(t, ok, "%v", c)
	}
}

func TestVisibleSorted(t *testing.T) {
	cells := Visible(795, 595)
	for i := 1; i < len(cells); i++ {
		assert.True(t, cells[i-1].Less(cells[i]))
	}
}
