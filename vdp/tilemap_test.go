package vdp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkTileMap verifies the forward grid and reverse index agree over
// every cell and slot.
func checkTileMap(t *testing.T, m *TileMap) {
	t.Helper()

	total := 0
	for slot := 0; slot < NumSlots; slot++ {
		total += m.UseCount(uint8(slot))
		for c := range m.Positions(uint8(slot)) {
			assert.Equal(t, uint8(slot), m.Slot(c))
		}
	}
	assert.Equal(t, NumCells, total)

	for r := 0; r < MapRows; r++ {
		for col := 0; col < MapColumns; col++ {
			c := Cell{Row: uint8(r), Col: uint8(col)}
			_, ok := m.Positions(m.Slot(c))[c]
			assert.True(t, ok)
		}
	}
}

func TestTileMapReset(t *testing.T) {
	m := NewTileMap()

	assert.Equal(t, NumCells, m.UseCount(0))
	for slot := 1; slot < NumSlots; slot++ {
		assert.Zero(t, m.UseCount(uint8(slot)))
	}
	assert.Equal(t, uint8(0), m.Slot(Cell{Row: 49, Col: 99}))

	checkTileMap(t, m)
}

func TestTileMapSet(t *testing.T) {
	m := NewTileMap()

	c, err := NewCell(10, 20)
	require.NoError(t, err)

	m.Set(c, 5)
	assert.Equal(t, uint8(5), m.Slot(c))
	assert.Equal(t, 1, m.UseCount(5))
	assert.Equal(t, NumCells-1, m.UseCount(0))

	_, ok := m.Positions(5)[c]
	assert.True(t, ok)
	_, ok = m.Positions(0)[c]
	assert.False(t, ok)

	// writing the same slot again changes nothing
	m.Set(c, 5)
	assert.Equal(t, 1, m.UseCount(5))

	m.Set(c, 0)
	assert.Equal(t, NumCells, m.UseCount(0))

	checkTileMap(t, m)
}

func TestTileMapPositionsSorted(t *testing.T) {
	m := NewTileMap()
	for _, c := range []Cell{{3, 4}, {1, 2}, {3, 1}} {
		m.Set(c, 9)
	}
	assert.Equal(t, []Cell{{1, 2}, {3, 1}, {3, 4}}, m.PositionsSorted(9))
}
