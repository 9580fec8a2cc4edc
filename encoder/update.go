package encoder

import (
	"sort"

	"github.com/bodgit/tilevid/tile"
	"github.com/bodgit/tilevid/vdp"
)

// ScreenUpdate is the set of writes advancing the controller from one
// committed frame to the next: the viewport offsets plus the library and
// tilemap writes to apply. A nil *ScreenUpdate marks a frame identical to
// its predecessor.
type ScreenUpdate struct {
	X, Y int

	// LibWrites loads patterns into library slots
	LibWrites map[int]tile.Tile
	// MapWrites points tilemap cells at library slots
	MapWrites map[vdp.Cell]uint8
}

// LibSlots returns the written library slots in ascending order.
func (u *ScreenUpdate) LibSlots() []int {
	slots := make([]int, 0, len(u.LibWrites))
	for i := range u.LibWrites {
		slots = append(slots, i)
	}
	sort.Ints(slots)
	return slots
}

// MapCells returns the written cells sorted by (row, col).
func (u *ScreenUpdate) MapCells() []vdp.Cell {
	cells := make([]vdp.Cell, 0, len(u.MapWrites))
	for c := range u.MapWrites {
		cells = append(cells, c)
	}
	vdp.SortCells(cells)
	return cells
}
