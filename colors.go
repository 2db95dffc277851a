package plotview

import (
	"image/color"
)

// RGB returns a color given by red, green, and blue ∈ [0,255].
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 0xff}
}

// RGBA returns a color given by red, green, and blue ∈ [0,255] (non alpha premultiplied) and alpha ∈ [0,1].
func RGBA(r, g, b uint8, a float64) color.RGBA {
	return color.RGBA{
		uint8(a * float64(r)),
		uint8(a * float64(g)),
		uint8(a * float64(b)),
		uint8(a * 255.0),
	}
}

// Hex parses a CSS hexadecimal color such as e.g. #ff0000 or F00.
func Hex(s string) color.RGBA {
	if 0 < len(s) && s[0] == '#' {
		s = s[1:]
	}
	h := make([]uint8, len(s))
	for i, c := range s {
		if '0' <= c && c <= '9' {
			h[i] = uint8(c - '0')
		} else if 'a' <= c && c <= 'f' {
			h[i] = 10 + uint8(c-'a')
		} else if 'A' <= c && c <= 'F' {
			h[i] = 10 + uint8(c-'A')
		}
	}
	if len(s) == 3 {
		return color.RGBA{h[0]*16 + h[0], h[1]*16 + h[1], h[2]*16 + h[2], 0xff}
	} else if len(s) == 6 {
		return color.RGBA{h[0]*16 + h[1], h[2]*16 + h[3], h[4]*16 + h[5], 0xff}
	} else if len(s) == 8 {
		a := float64(h[6]*16+h[7]) / 255.0
		return color.RGBA{
			uint8(a * float64(h[0]*16+h[1])),
			uint8(a * float64(h[2]*16+h[3])),
			uint8(a * float64(h[4]*16+h[5])),
			h[6]*16 + h[7],
		}
	}
	return Black
}

// colorOrBlack returns c, or black if c is nil.
func colorOrBlack(c color.Color) color.Color {
	if c == nil {
		return Black
	}
	return c
}

var Transparent = color.RGBA{0x00, 0x00, 0x00, 0x00} // rgba(0, 0, 0, 0)

var (
	Black     = color.RGBA{0x00, 0x00, 0x00, 0xff} // rgb(0, 0, 0)
	White     = color.RGBA{0xff, 0xff, 0xff, 0xff} // rgb(255, 255, 255)
	Gray      = color.RGBA{0x80, 0x80, 0x80, 0xff} // rgb(128, 128, 128)
	LightGray = color.RGBA{0xd3, 0xd3, 0xd3, 0xff} // rgb(211, 211, 211)
	Red       = color.RGBA{0xff, 0x00, 0x00, 0xff} // rgb(255, 0, 0)
	Green     = color.RGBA{0x00, 0x80, 0x00, 0xff} // rgb(0, 128, 0)
	Blue      = color.RGBA{0x00, 0x00, 0xff, 0xff} // rgb(0, 0, 255)
	Orange    = color.RGBA{0xff, 0xa5, 0x00, 0xff} // rgb(255, 165, 0)
)

// Palette is the categorical color cycle assigned to series that have no pen color, the Tableau 10 colors.
var Palette = []color.RGBA{
	Hex("#4e79a7"),
	Hex("#f28e2b"),
	Hex("#e15759"),
	Hex("#76b7b2"),
	Hex("#59a14f"),
	Hex("#edc948"),
	Hex("#b07aa1"),
	Hex("#ff9da7"),
	Hex("#9c755f"),
	Hex("#bab0ac"),
}

// PaletteColor returns the i-th color of the palette, cycling.
func PaletteColor(i int) color.RGBA {
	if i < 0 {
		i = -i
	}
	return Palette[i%len(Palette)]
}
