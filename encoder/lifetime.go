package encoder

import (
	"github.com/bodgit/tilevid/tile"
	"github.com/bodgit/tilevid/vdp"
)

// appearanceIndex maps each distinct pattern to the ascending list of
// frame indices in which it appears. The session consumes the lists as
// frames commit; a pattern whose final appearance has passed joins the
// release pool.
func appearanceIndex(frames []*vdp.Screen) map[tile.Tile][]int {
	index := make(map[tile.Tile][]int)
	for i, f := range frames {
		for _, t := range f.Tiles() {
			index[t] = append(index[t], i)
		}
	}
	return index
}
