package svg

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/tdewolff/minify/v2"
)

// Precision is the number of significant digits written for coordinates.
var Precision = 8

////////////////////////////////////////////////////////////////

type num float64

func (f num) String() string {
	s := fmt.Sprintf("%.*g", Precision, f)
	if num(math.MaxInt32) < f || f < num(math.MinInt32) {
		if i := strings.IndexAny(s, ".eE"); i == -1 {
			s += ".0"
		}
	}
	return string(minify.Number([]byte(s), Precision))
}

type dec float64

func (f dec) String() string {
	s := fmt.Sprintf("%.*f", Precision, f)
	s = string(minify.Decimal([]byte(s), Precision))
	if dec(math.MaxInt32) < f || f < dec(math.MinInt32) {
		if i := strings.IndexByte(s, '.'); i == -1 {
			s += ".0"
		}
	}
	return s
}

// colorAttr returns the shortest hex notation of the color and its opacity, nil is black.
func colorAttr(c color.Color) (string, float64) {
	if c == nil {
		return "#000", 1.0
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	opacity := float64(n.A) / 255.0
	if n.R>>4 == n.R&0x0f && n.G>>4 == n.G&0x0f && n.B>>4 == n.B&0x0f {
		return fmt.Sprintf("#%x%x%x", n.R&0x0f, n.G&0x0f, n.B&0x0f), opacity
	}
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B), opacity
}
