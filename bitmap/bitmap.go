/*
Package bitmap converts images into target screens.

An input image must be exactly one viewport, 400 by 300 pixels. It is
reduced to two colors, with median-cut quantization when it has more,
and the darker color becomes an unset pixel. The result is cut into
8 by 12 cell patterns at viewport offsets (0, 0).
*/
package bitmap

import (
	"errors"
	"image"
	"image/color"
	"image/draw"

	"github.com/bodgit/tilevid/tile"
	"github.com/bodgit/tilevid/vdp"
	"github.com/ericpauley/go-quantize/quantize"
)

// ErrInvalidBounds is returned for an image that is not exactly one
// viewport.
var ErrInvalidBounds = errors.New("bitmap: image must be 400x300")

func luminance(c color.Color) uint32 {
	r, g, b, _ := c.RGBA()
	return (299*r + 587*g + 114*b) / 1000
}

func monochrome(m image.Image) *image.Paletted {
	b := m.Bounds()

	pm, _ := m.(*image.Paletted)
	if pm == nil {
		if cp, ok := m.ColorModel().(color.Palette); ok && len(cp) <= 2 {
			pm = image.NewPaletted(b, cp)
			draw.Draw(pm, b, m, b.Min, draw.Src)
		}
	}
	if pm == nil || len(pm.Palette) > 2 {
		q := quantize.MedianCutQuantizer{}
		pm = image.NewPaletted(b, q.Quantize(make(color.Palette, 0, 2), m))
		draw.Draw(pm, b, m, b.Min, draw.Src)
	}

	// Adjust image so that top-left corner is at (0, 0)
	if pm.Rect.Min != (image.Point{}) {
		dup := *pm
		dup.Rect = dup.Rect.Sub(dup.Rect.Min)
		pm = &dup
	}

	return pm
}

// lit returns the palette index shown as a set pixel: the lighter of the
// two colors, or no index at all for a single dark color.
func lit(p color.Palette) (uint8, bool) {
	switch len(p) {
	case 0:
		return 0, false
	case 1:
		return 0, luminance(p[0]) >= 0x8000
	default:
		if luminance(p[0]) >= luminance(p[1]) {
			return 0, true
		}
		return 1, true
	}
}

// ToScreen converts a 400 by 300 image into a screen at viewport offsets
// (0, 0).
func ToScreen(m image.Image) (*vdp.Screen, error) {
	b := m.Bounds()
	if b.Dx() != vdp.ViewWidth || b.Dy() != vdp.ViewHeight {
		return nil, ErrInvalidBounds
	}

	pm := monochrome(m)
	on, ok := lit(pm.Palette)

	positions := make(map[tile.Tile][]vdp.Cell)
	for row := 0; row < vdp.ViewHeight/tile.Height; row++ {
		for col := 0; col < vdp.ViewWidth/tile.Width; col++ {
			var t tile.Tile
			if ok {
				for y := 0; y < tile.Height; y++ {
					for x := 0; x < tile.Width; x++ {
						if pm.ColorIndexAt(col*tile.Width+x, row*tile.Height+y) == on {
							t[y] |= 0x80 >> uint(x)
						}
					}
				}
			}
			c, err := vdp.NewCell(row, col)
			if err != nil {
				return nil, err
			}
			positions[t] = append(positions[t], c)
		}
	}

	return vdp.NewScreen(0, 0, positions)
}
