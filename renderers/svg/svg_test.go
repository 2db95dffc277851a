package svg

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/tdewolff/plotview"
	"github.com/tdewolff/test"
)

func TestSVG(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, 20, 10, nil)
	r.SetPen(plotview.Pen{Color: plotview.Red, Width: 1})
	r.DrawPoint(3, 4)
	r.DrawLines([]image.Point{{1, 2}, {3, 4}})
	r.SetPen(plotview.Pen{Color: plotview.Black, Width: 2, Style: plotview.DashedLine})
	r.DrawLine(1, 1, 5, 1)
	r.SetClippingRegion(image.Rect(0, 0, 10, 10))
	r.SetFont(plotview.DefaultFont)
	r.DrawText("a<b", 2, 2)
	test.Error(t, r.Close())

	s := buf.String()
	test.That(t, strings.HasPrefix(s, `<svg version="1.1" width="20" height="10" viewBox="0 0 20 10"`), s)
	test.That(t, strings.HasSuffix(s, "</g></svg>"), s)
	test.That(t, strings.Contains(s, `<rect x="3" y="4" width="1" height="1" fill="#f00"/>`), s)
	test.That(t, strings.Contains(s, `<polyline points="1.5,2.5 3.5,4.5" fill="none" stroke="#f00" stroke-linecap="square"/>`), s)
	test.That(t, strings.Contains(s, `stroke-width="2" stroke-dasharray="8 6"`), s)
	test.That(t, strings.Contains(s, `<clipPath id="clip1"><rect x="0" y="0" width="10" height="10"/></clipPath><g clip-path="url(#clip1)">`), s)
	test.That(t, strings.Contains(s, `>a&lt;b</text>`), s)
}

func TestSVGImage(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, 20, 10, nil)
	r.DrawImage(image.NewGray(image.Rect(0, 0, 2, 2)), image.Rect(1, 1, 5, 5))
	test.Error(t, r.Close())
	test.That(t, strings.Contains(buf.String(), `<image x="1" y="1" width="4" height="4" preserveAspectRatio="none" xlink:href="data:image/png;base64,`))

	buf.Reset()
	r = New(&buf, 20, 10, &Options{})
	r.DrawImage(image.NewGray(image.Rect(0, 0, 2, 2)), image.Rect(1, 1, 5, 5))
	test.Error(t, r.Close())
	test.That(t, !strings.Contains(buf.String(), "<image"), "outline only")
}

func TestColorAttr(t *testing.T) {
	var tests = []struct {
		c       color.Color
		hex     string
		opacity float64
	}{
		{nil, "#000", 1.0},
		{plotview.Red, "#f00", 1.0},
		{color.RGBA{0x12, 0x34, 0x56, 0xff}, "#123456", 1.0},
		{color.NRGBA{0xff, 0xff, 0xff, 0x00}, "#fff", 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			hex, opacity := colorAttr(tt.c)
			test.String(t, hex, tt.hex)
			test.Float(t, opacity, tt.opacity)
		})
	}
}
