/*
Package encoder turns a sequence of target screens into per-frame write
sets for the video controller.

Encoding is a greedy per-frame optimization: for each pattern a frame
needs, the session weighs pointing cells at a (possibly newly loaded)
library slot against swapping the pattern into the slot those cells
already hold and repairing the displaced pattern elsewhere, and commits
whichever costs fewer writes. Slots whose patterns will never appear
again are recycled through a release pool.

A session is sequential by construction: each frame's writes are computed
against the state left by the previous frame. Distinct sessions are
independent and may run concurrently.
*/
package encoder

import (
	"errors"
	"fmt"
	"sort"

	"github.com/bodgit/tilevid/tile"
	"github.com/bodgit/tilevid/vdp"
)

var (
	// ErrEmptyInput is returned when encoding zero frames.
	ErrEmptyInput = errors.New("encoder: no frames")
	// ErrTooManyTiles is returned for a frame needing more distinct
	// patterns than the library has slots.
	ErrTooManyTiles = errors.New("encoder: screen needs more than 256 distinct patterns")
)

type session struct {
	lib *vdp.TileLibrary
	tm  *vdp.TileMap

	x, y    int
	started bool

	pool        map[tile.Tile]struct{}
	appearances map[tile.Tile][]int
}

func newSession(frames []*vdp.Screen) *session {
	return &session{
		lib:         vdp.NewTileLibrary(),
		tm:          vdp.NewTileMap(),
		pool:        make(map[tile.Tile]struct{}),
		appearances: appearanceIndex(frames),
	}
}

// EncodeFrames drives a fresh controller through each screen in order and
// returns one update per frame. A nil update marks a frame identical to
// its predecessor.
func EncodeFrames(frames []*vdp.Screen) ([]*ScreenUpdate, error) {
	if len(frames) == 0 {
		return nil, ErrEmptyInput
	}

	e := newSession(frames)
	updates := make([]*ScreenUpdate, 0, len(frames))
	for i, f := range frames {
		u, err := e.encodeFrame(i, f)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		updates = append(updates, u)
	}
	return updates, nil
}

func (e *session) encodeFrame(idx int, scr *vdp.Screen) (*ScreenUpdate, error) {
	if len(scr.Tiles()) > vdp.NumSlots {
		return nil, ErrTooManyTiles
	}

	// A pattern on this screen is by definition not past its final
	// appearance.
	for _, t := range scr.Tiles() {
		delete(e.pool, t)
	}

	libW := make(map[int]tile.Tile)
	mapW := make(map[vdp.Cell]uint8)

	var scheduled []tile.Tile
	for _, t := range scr.Tiles() {
		if err := e.encodeTile(scr, t, libW, mapW); err != nil {
			return nil, err
		}

		l := e.appearances[t]
		if len(l) > 0 {
			if l[len(l)-1] == idx {
				scheduled = append(scheduled, t)
			} else {
				e.appearances[t] = l[1:]
			}
		}
	}

	// Releases take effect only once the whole frame has committed, so a
	// pattern last used here is reusable from the next frame on.
	for _, t := range scheduled {
		e.pool[t] = struct{}{}
	}

	x, y := scr.X(), scr.Y()
	if e.started && x == e.x && y == e.y && len(libW) == 0 && len(mapW) == 0 {
		return nil, nil
	}
	e.x, e.y = x, y
	e.started = true

	return &ScreenUpdate{X: x, Y: y, LibWrites: libW, MapWrites: mapW}, nil
}

// encodeTile places pattern t everywhere the screen wants it, committing
// writes bucket by bucket so later decisions observe earlier ones.
func (e *session) encodeTile(scr *vdp.Screen, t tile.Tile, libW map[int]tile.Tile, mapW map[vdp.Cell]uint8) error {
	cells := scr.PositionsSorted(t)

	// Bucket the wanted cells by the slot they currently hold.
	buckets := make(map[uint8][]vdp.Cell)
	order := make([]int, 0, 4)
	for _, c := range cells {
		s := e.tm.Slot(c)
		if _, ok := buckets[s]; !ok {
			order = append(order, int(s))
		}
		buckets[s] = append(buckets[s], c)
	}
	sort.Ints(order)

	for _, si := range order {
		s := uint8(si)
		if e.lib.Tile(si) == t {
			continue
		}
		inside := buckets[s]
		old := e.lib.Tile(si)

		// Cells that keep showing the displaced pattern if we swap t
		// into this slot.
		var outside []vdp.Cell
		wanted := scr.Positions(t)
		for _, c := range e.tm.PositionsSorted(s) {
			if _, ok := wanted[c]; ok {
				continue
			}
			if want, ok := scr.TileAt(c); ok && want == old {
				outside = append(outside, c)
			}
		}

		std, err := computeWrites(e.lib, e.tm, scr, e.pool, t, inside)
		if err != nil {
			return err
		}

		swap, err := e.swapPlan(scr, t, s, old, inside, outside)
		if err != nil {
			return err
		}

		// Swap pays one library write up front; ties go to standard.
		chosen := std
		if swap.writes() < std.writes() {
			chosen = swap
		}
		e.apply(chosen, libW, mapW)
	}
	return nil
}

// swapPlan proposes writing t straight into slot s and repairing the
// displaced pattern at the cells that still want it, evaluated against a
// hypothetical library so nothing is mutated before the plans are
// compared.
func (e *session) swapPlan(scr *vdp.Screen, t tile.Tile, s uint8, old tile.Tile,
	inside, outside []vdp.Cell) (plan, error) {

	hyp := e.lib.Clone()
	hyp.Set(int(s), t)

	pool := e.pool
	if !hyp.Contains(old) {
		if _, ok := pool[old]; ok {
			pool = make(map[tile.Tile]struct{}, len(e.pool))
			for p := range e.pool {
				if p != old {
					pool[p] = struct{}{}
				}
			}
		}
	}

	p := newPlan()
	p.libWrites[int(s)] = t
	p.pointCells(e.tm, inside, s)

	if len(outside) > 0 {
		repair, err := computeWrites(hyp, e.tm, scr, pool, old, outside)
		if err != nil {
			return plan{}, err
		}
		for i, rt := range repair.libWrites {
			p.libWrites[i] = rt
		}
		for c, rs := range repair.mapWrites {
			p.mapWrites[c] = rs
		}
	}
	return p, nil
}

// apply commits a plan to the session state and merges it into the frame
// diff, last write winning.
func (e *session) apply(p plan, libW map[int]tile.Tile, mapW map[vdp.Cell]uint8) {
	slots := make([]int, 0, len(p.libWrites))
	for i := range p.libWrites {
		slots = append(slots, i)
	}
	sort.Ints(slots)
	for _, i := range slots {
		displaced := e.lib.Tile(i)
		t := p.libWrites[i]
		e.lib.Set(i, t)
		libW[i] = t

		// A released pattern leaves the pool when its last slot goes.
		if displaced != t {
			if _, ok := e.pool[displaced]; ok && !e.lib.Contains(displaced) {
				delete(e.pool, displaced)
			}
		}
	}

	cells := make([]vdp.Cell, 0, len(p.mapWrites))
	for c := range p.mapWrites {
		cells = append(cells, c)
	}
	vdp.SortCells(cells)
	for _, c := range cells {
		s := p.mapWrites[c]
		e.tm.Set(c, s)
		mapW[c] = s
	}
}
