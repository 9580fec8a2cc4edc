/*
Package vdp models the state of the tile-based video controller.

The controller addresses an 800 by 600 virtual pixel space as a 50 row by
100 column tilemap of 8 by 12 pixel tiles. Each tilemap cell holds an
index into a 256 entry tile pattern library. A 400 by 300 pixel viewport
is positioned anywhere in the virtual space by a pixel offset and wraps
toroidally at the edges.

TileMap and TileLibrary mirror the two writable memory regions and keep a
reverse index alongside the forward array; every mutation goes through a
method that updates both sides so the two can never disagree.
*/
package vdp

import "github.com/bodgit/tilevid/tile"

const (
	// MapRows and MapColumns are the tilemap dimensions in cells
	MapRows    = 50
	MapColumns = 100
	// NumCells is the total number of tilemap cells
	NumCells = MapRows * MapColumns
	// NumSlots is the number of entries in the tile pattern library
	NumSlots = 256
	// VirtualWidth and VirtualHeight are the addressable pixel space
	VirtualWidth  = MapColumns * tile.Width
	VirtualHeight = MapRows * tile.Height
	// ViewWidth and ViewHeight are the visible viewport in pixels
	ViewWidth  = 400
	ViewHeight = 300
)
