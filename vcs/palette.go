package vcs

import (
	"image/color"
	"math"
)

// vcsPalette maps a TIA color's (hue<<3 | luminance) index to RGB.
// The 2600's actual NTSC chroma/luma encoding varies slightly per
// console revision and was not available in the reference material
// this engine is grounded on, so this table is a synthesized
// approximation: hue 0 is the grayscale column (matching every real
// revision), and hues 1-15 sweep evenly around the color wheel at each
// of the 8 luminance steps. Good enough to distinguish objects on
// screen; not a byte-exact match to any specific TIA revision.
var vcsPalette = buildPalette()

func buildPalette() [128]color.RGBA {
	var pal [128]color.RGBA
	for hue := 0; hue < 16; hue++ {
		for luma := 0; luma < 8; luma++ {
			idx := hue*8 + luma
			v := float64(luma) / 7
			if hue == 0 {
				g := uint8(v * 255)
				pal[idx] = color.RGBA{g, g, g, 255}
				continue
			}
			h := float64(hue-1) / 15 * 360
			r, g, b := hsvToRGB(h, 0.7, v)
			pal[idx] = color.RGBA{r, g, b, 255}
		}
	}
	return pal
}

func hsvToRGB(h, s, v float64) (uint8, uint8, uint8) {
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c
	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return uint8((r + m) * 255), uint8((g + m) * 255), uint8((b + m) * 255)
}
