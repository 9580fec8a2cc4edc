package encoder

import (
	"errors"

	"github.com/bodgit/tilevid/tile"
	"github.com/bodgit/tilevid/vdp"
)

var errNoEvictableSlot = errors.New("encoder: no evictable library slot")

// plan is a proposed set of writes for one target pattern. Plans are
// computed against the current state without mutating it; the session
// applies whichever plan wins.
type plan struct {
	libWrites map[int]tile.Tile
	mapWrites map[vdp.Cell]uint8
}

func newPlan() plan {
	return plan{
		libWrites: make(map[int]tile.Tile),
		mapWrites: make(map[vdp.Cell]uint8),
	}
}

func (p plan) writes() int {
	return len(p.libWrites) + len(p.mapWrites)
}

// pointCells adds map writes directing cells at slot, dropping writes
// that would leave a cell unchanged.
func (p plan) pointCells(tm *vdp.TileMap, cells []vdp.Cell, slot uint8) {
	for _, c := range cells {
		if tm.Slot(c) != slot {
			p.mapWrites[c] = slot
		}
	}
}

// onScreenUses counts how many cells holding the slot are visible on the
// screen's viewport.
func onScreenUses(tm *vdp.TileMap, scr *vdp.Screen, slot uint8) int {
	visible := scr.VisibleCells()
	n := 0
	for c := range tm.Positions(slot) {
		if _, ok := visible[c]; ok {
			n++
		}
	}
	return n
}

// computeWrites proposes the writes placing pattern t at the given cells.
// Strategies are tried in strict priority order: reuse a slot already
// holding t, overwrite a slot whose pattern has been released, displace
// one copy of a duplicated pattern, and finally evict a pattern absent
// from the screen.
func computeWrites(lib *vdp.TileLibrary, tm *vdp.TileMap, scr *vdp.Screen,
	pool map[tile.Tile]struct{}, t tile.Tile, cells []vdp.Cell) (plan, error) {

	p := newPlan()

	// Pattern already loaded: reuse the slot with the fewest on-screen
	// cells, then fewest total cells, then lowest index, so future frames
	// have the least to repair.
	if slots := lib.SlotsSorted(t); len(slots) > 0 {
		best, bestScreen, bestTotal := -1, 0, 0
		for _, i := range slots {
			screen, total := onScreenUses(tm, scr, uint8(i)), tm.UseCount(uint8(i))
			if best < 0 || screen < bestScreen || (screen == bestScreen && total < bestTotal) {
				best, bestScreen, bestTotal = i, screen, total
			}
		}
		p.pointCells(tm, cells, uint8(best))
		return p, nil
	}

	// A released pattern's slot can be overwritten freely.
	if len(pool) > 0 {
		for i := 0; i < vdp.NumSlots; i++ {
			old := lib.Tile(i)
			if _, ok := pool[old]; !ok {
				continue
			}
			p.libWrites[i] = t
			p.pointCells(tm, cells, uint8(i))
			return p, nil
		}
	}

	// Displace one copy of a duplicated pattern. Cells that still need
	// the displaced pattern this frame are redirected to a surviving
	// duplicate first.
	if lib.HasDuplicates() {
		w, wScreen, wTotal := -1, 0, 0
		for i := 0; i < vdp.NumSlots; i++ {
			if len(lib.Slots(lib.Tile(i))) < 2 {
				continue
			}
			screen, total := onScreenUses(tm, scr, uint8(i)), tm.UseCount(uint8(i))
			if w < 0 || screen < wScreen || (screen == wScreen && total < wTotal) {
				w, wScreen, wTotal = i, screen, total
			}
		}

		old := lib.Tile(w)
		m, mTotal := -1, -1
		for _, i := range lib.SlotsSorted(old) {
			if i == w {
				continue
			}
			if total := tm.UseCount(uint8(i)); total > mTotal {
				m, mTotal = i, total
			}
		}

		target := make(map[vdp.Cell]struct{}, len(cells))
		for _, c := range cells {
			target[c] = struct{}{}
		}
		for _, c := range tm.PositionsSorted(uint8(w)) {
			if _, ok := target[c]; ok {
				continue
			}
			if want, ok := scr.TileAt(c); ok && want == old {
				p.mapWrites[c] = uint8(m)
			}
		}

		p.libWrites[w] = t
		p.pointCells(tm, cells, uint8(w))
		return p, nil
	}

	// Last resort: evict a pattern the screen does not show at all. A
	// valid screen has at most 256 distinct patterns so a victim exists.
	for i := 0; i < vdp.NumSlots; i++ {
		if scr.Positions(lib.Tile(i)) != nil {
			continue
		}
		p.libWrites[i] = t
		p.pointCells(tm, cells, uint8(i))
		return p, nil
	}

	return plan{}, errNoEvictableSlot
}
