package bitmap

import (
	"image"
	"image/color"
	"testing"

	"github.com/bodgit/tilevid/tile"
	"github.com/bodgit/tilevid/vdp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToScreenBounds(t *testing.T) {
	_, err := ToScreen(image.NewGray(image.Rect(0, 0, 100, 100)))
	assert.Equal(t, ErrInvalidBounds, err)
}

func TestToScreenGray(t *testing.T) {
	m := image.NewGray(image.Rect(0, 0, vdp.ViewWidth, vdp.ViewHeight))

	// light up the first cell only
	for y := 0; y < tile.Height; y++ {
		for x := 0; x < tile.Width; x++ {
			m.SetGray(x, y, color.Gray{Y: 0xff})
		}
	}

	s, err := ToScreen(m)
	require.NoError(t, err)

	assert.Equal(t, 0, s.X())
	assert.Equal(t, 0, s.Y())
	assert.Equal(t, []tile.Tile{tile.Blank, tile.Full}, s.Tiles())
	assert.Equal(t, []vdp.Cell{{Row: 0, Col: 0}}, s.PositionsSorted(tile.Full))
}

func TestToScreenPaletted(t *testing.T) {
	palette := color.Palette{color.White, color.Black}
	m := image.NewPaletted(image.Rect(0, 0, vdp.ViewWidth, vdp.ViewHeight), palette)

	// index 1 is black, so the image starts fully lit
	s, err := ToScreen(m)
	require.NoError(t, err)
	assert.Equal(t, []tile.Tile{tile.Full}, s.Tiles())
	assert.Len(t, s.Positions(tile.Full), 1250)
}

func TestToScreenDark(t *testing.T) {
	m := image.NewPaletted(image.Rect(0, 0, vdp.ViewWidth, vdp.ViewHeight), color.Palette{color.Black})

	s, err := ToScreen(m)
	require.NoError(t, err)
	assert.Equal(t, []tile.Tile{tile.Blank}, s.Tiles())
}

func TestToScreenOffsetBounds(t *testing.T) {
	m := image.NewGray(image.Rect(10, 20, 10+vdp.ViewWidth, 20+vdp.ViewHeight))
	m.SetGray(10, 20, color.Gray{Y: 0xff})

	s, err := ToScreen(m)
	require.NoError(t, err)

	tl, ok := s.TileAt(vdp.Cell{Row: 0, Col: 0})
	require.True(t, ok)
	assert.True(t, tl.Pixel(0, 0))
}
