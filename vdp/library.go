package vdp

import (
	"sort"

	"github.com/bodgit/tilevid/tile"
)

// TileLibrary mirrors the tile pattern memory region: 256 slots each
// holding one pattern, with the reverse index from pattern to the set of
// slots holding it. At reset every slot holds the blank tile.
type TileLibrary struct {
	slots   [NumSlots]tile.Tile
	reverse map[tile.Tile]map[int]struct{}
}

// NewTileLibrary returns a library in the reset state.
func NewTileLibrary() *TileLibrary {
	l := &TileLibrary{
		reverse: make(map[tile.Tile]map[int]struct{}),
	}
	all := make(map[int]struct{}, NumSlots)
	for i := 0; i < NumSlots; i++ {
		all[i] = struct{}{}
	}
	l.reverse[tile.Blank] = all
	return l
}

// Tile returns the pattern held by the given slot.
func (l *TileLibrary) Tile(slot int) tile.Tile {
	return l.slots[slot]
}

// Set loads a pattern into the given slot, keeping the reverse index in
// step.
func (l *TileLibrary) Set(slot int, t tile.Tile) {
	old := l.slots[slot]
	if old == t {
		return
	}
	delete(l.reverse[old], slot)
	if len(l.reverse[old]) == 0 {
		delete(l.reverse, old)
	}
	if l.reverse[t] == nil {
		l.reverse[t] = make(map[int]struct{})
	}
	l.reverse[t][slot] = struct{}{}
	l.slots[slot] = t
}

// Slots returns the set of slots currently holding the given pattern, or
// nil if it is not loaded. The returned map is the live reverse entry;
// callers must not mutate it and must not hold it across a Set.
func (l *TileLibrary) Slots(t tile.Tile) map[int]struct{} {
	return l.reverse[t]
}

// SlotsSorted returns the slots holding the given pattern in ascending
// order.
func (l *TileLibrary) SlotsSorted(t tile.Tile) []int {
	slots := make([]int, 0, len(l.reverse[t]))
	for i := range l.reverse[t] {
		slots = append(slots, i)
	}
	sort.Ints(slots)
	return slots
}

// Contains reports whether the pattern is loaded in any slot.
func (l *TileLibrary) Contains(t tile.Tile) bool {
	return len(l.reverse[t]) > 0
}

// HasDuplicates reports whether any pattern occupies more than one slot.
func (l *TileLibrary) HasDuplicates() bool {
	for _, slots := range l.reverse {
		if len(slots) > 1 {
			return true
		}
	}
	return false
}

// Clone returns an independent copy of the library. Used to evaluate a
// hypothetical write without mutating the real state.
func (l *TileLibrary) Clone() *TileLibrary {
	dup := &TileLibrary{
		slots:   l.slots,
		reverse: make(map[tile.Tile]map[int]struct{}, len(l.reverse)),
	}
	for t, slots := range l.reverse {
		s := make(map[int]struct{}, len(slots))
		for i := range slots {
			s[i] = struct{}{}
		}
		dup.reverse[t] = s
	}
	return dup
}
