package vdp

import (
	"errors"
	"fmt"

	"github.com/bodgit/tilevid/tile"
)

var (
	// ErrScreenCoverage is returned when a screen's cells do not cover
	// the viewport exactly.
	ErrScreenCoverage = errors.New("vdp: cells do not cover viewport")
)

// Screen is an immutable target frame: viewport pixel offsets plus the
// mapping from each visible pattern to the set of cells showing it.
// Screens are built once by a frame source and shared by reference
// afterwards.
type Screen struct {
	x, y      int
	positions map[tile.Tile]map[Cell]struct{}
	cellTiles map[Cell]tile.Tile
	tiles     []tile.Tile
	visible   map[Cell]struct{}
}

// NewScreen builds a screen from viewport offsets and the pattern to
// cell-set mapping. Offsets are normalized into the virtual space. The
// union of all cell sets must be exactly the viewport cell set.
func NewScreen(x, y int, positions map[tile.Tile][]Cell) (*Screen, error) {
	x, y = NormalizeOffsets(x, y)

	s := &Screen{
		x:         x,
		y:         y,
		positions: make(map[tile.Tile]map[Cell]struct{}, len(positions)),
		cellTiles: make(map[Cell]tile.Tile),
		tiles:     make([]tile.Tile, 0, len(positions)),
		visible:   VisibleSet(x, y),
	}

	for t, cells := range positions {
		set := make(map[Cell]struct{}, len(cells))
		for _, c := range cells {
			if int(c.Row) >= MapRows || int(c.Col) >= MapColumns {
				return nil, fmt.Errorf("%w: %v", ErrInvalidCell, c)
			}
			if _, ok := s.visible[c]; !ok {
				return nil, fmt.Errorf("%w: %v not visible at (%d, %d)", ErrScreenCoverage, c, x, y)
			}
			if _, ok := s.cellTiles[c]; ok {
				return nil, fmt.Errorf("%w: %v mapped twice", ErrScreenCoverage, c)
			}
			set[c] = struct{}{}
			s.cellTiles[c] = t
		}
		if len(set) == 0 {
			continue
		}
		s.positions[t] = set
		s.tiles = append(s.tiles, t)
	}

	if len(s.cellTiles) != len(s.visible) {
		return nil, fmt.Errorf("%w: %d of %d cells mapped", ErrScreenCoverage, len(s.cellTiles), len(s.visible))
	}

	tile.Sort(s.tiles)
	return s, nil
}

// X returns the viewport x offset in pixels.
func (s *Screen) X() int {
	return s.x
}

// Y returns the viewport y offset in pixels.
func (s *Screen) Y() int {
	return s.y
}

// Tiles returns the distinct patterns on the screen in lexicographic
// order. The returned slice must not be modified.
func (s *Screen) Tiles() []tile.Tile {
	return s.tiles
}

// Positions returns the set of cells showing the given pattern, or nil.
// The returned map must not be modified.
func (s *Screen) Positions(t tile.Tile) map[Cell]struct{} {
	return s.positions[t]
}

// PositionsSorted returns the cells showing the given pattern, sorted by
// (row, col).
func (s *Screen) PositionsSorted(t tile.Tile) []Cell {
	cells := make([]Cell, 0, len(s.positions[t]))
	for c := range s.positions[t] {
		cells = append(cells, c)
	}
	SortCells(cells)
	return cells
}

// TileAt returns the pattern the screen wants at cell c and whether c is
// visible.
func (s *Screen) TileAt(c Cell) (tile.Tile, bool) {
	t, ok := s.cellTiles[c]
	return t, ok
}

// VisibleCells returns the viewport cell set. The returned map must not
// be modified.
func (s *Screen) VisibleCells() map[Cell]struct{} {
	return s.visible
}

// Equal reports whether two screens have the same offsets and the same
// pattern at every cell.
func (s *Screen) Equal(o *Screen) bool {
	if s.x != o.x || s.y != o.y || len(s.cellTiles) != len(o.cellTiles) {
		return false
	}
	for c, t := range s.cellTiles {
		if u, ok := o.cellTiles[c]; !ok || u != t {
			return false
		}
	}
	return true
}
