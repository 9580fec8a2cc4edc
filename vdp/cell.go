package vdp

import (
	"errors"
	"fmt"
	"sort"

	"github.com/bodgit/tilevid/tile"
)

// ErrInvalidCell is returned for a cell outside the 50 by 100 tilemap.
var ErrInvalidCell = errors.New("vdp: cell outside tilemap")

// Cell addresses one tilemap position.
type Cell struct {
	Row, Col uint8
}

// NewCell builds a cell, rejecting out-of-range coordinates.
func NewCell(row, col int) (Cell, error) {
	if row < 0 || row >= MapRows || col < 0 || col >= MapColumns {
		return Cell{}, fmt.Errorf("%w: (%d, %d)", ErrInvalidCell, row, col)
	}
	return Cell{Row: uint8(row), Col: uint8(col)}, nil
}

// Less orders cells by (row, col).
func (c Cell) Less(d Cell) bool {
	if c.Row != d.Row {
		return c.Row < d.Row
	}
	return c.Col < d.Col
}

func (c Cell) index() int {
	return int(c.Row)*MapColumns + int(c.Col)
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d, %d)", c.Row, c.Col)
}

// SortCells orders a slice of cells by (row, col) in place.
func SortCells(cells []Cell) {
	sort.Slice(cells, func(i, j int) bool { return cells[i].Less(cells[j]) })
}

// NormalizeOffsets reduces viewport pixel offsets modulo the virtual
// space, mapping negative values into range.
func NormalizeOffsets(x, y int) (int, int) {
	x %= VirtualWidth
	if x < 0 {
		x += VirtualWidth
	}
	y %= VirtualHeight
	if y < 0 {
		y += VirtualHeight
	}
	return x, y
}

// Visible returns the cells covered by the viewport at pixel offsets
// (x, y), sorted by (row, col). A viewport that does not start on a cell
// boundary covers one extra row and/or column; rows and columns wrap
// around the tilemap edges.
func Visible(x, y int) []Cell {
	x, y = NormalizeOffsets(x, y)

	rows := ViewHeight / tile.Height
	if y%tile.Height != 0 {
		rows++
	}
	cols := ViewWidth / tile.Width
	if x%tile.Width != 0 {
		cols++
	}

	cells := make([]Cell, 0, rows*cols)
	for r := 0; r < rows; r++ {
		row := (y/tile.Height + r) % MapRows
		for c := 0; c < cols; c++ {
			col := (x/tile.Width + c) % MapColumns
			cells = append(cells, Cell{Row: uint8(row), Col: uint8(col)})
		}
	}
	SortCells(cells)
	return cells
}

// VisibleSet returns the viewport cells at (x, y) as a set.
func VisibleSet(x, y int) map[Cell]struct{} {
	cells := Visible(x, y)
	set := make(map[Cell]struct{}, len(cells))
	for _, c := range cells {
		set[c] = struct{}{}
	}
	return set
}
