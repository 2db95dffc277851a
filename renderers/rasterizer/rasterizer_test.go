package rasterizer

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/tdewolff/plotview"
	"github.com/tdewolff/test"
	"golang.org/x/image/draw"
)

func newImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return img
}

func isRed(c color.RGBA) bool {
	return 200 < c.R && c.G < 50 && c.B < 50
}

func TestRasterizerPoint(t *testing.T) {
	img := newImage(10, 10)
	r := New(img, nil)
	r.SetPen(plotview.Pen{Color: plotview.Red, Width: 1})
	r.DrawPoint(3, 4)
	test.T(t, img.RGBAAt(3, 4), plotview.Red)
	test.T(t, img.RGBAAt(4, 4), plotview.White)

	r.SetClippingRegion(image.Rect(0, 0, 2, 2))
	r.DrawPoint(5, 5)
	test.T(t, img.RGBAAt(5, 5), plotview.White)
	r.ClearClippingRegion()
	r.DrawPoint(5, 5)
	test.T(t, img.RGBAAt(5, 5), plotview.Red)
}

func TestRasterizerLine(t *testing.T) {
	img := newImage(10, 10)
	r := New(img, nil)
	r.SetPen(plotview.Pen{Color: plotview.Red, Width: 1})
	r.DrawLine(1, 5, 8, 5)
	for x := 1; x <= 8; x++ {
		test.That(t, isRed(img.RGBAAt(x, 5)), "pixel on line:", x, img.RGBAAt(x, 5))
	}
	test.T(t, img.RGBAAt(4, 2), plotview.White)

	r.DrawLines([]image.Point{{2, 0}, {2, 9}})
	test.That(t, isRed(img.RGBAAt(2, 7)))

	r.SetClippingRegion(image.Rect(0, 0, 10, 5))
	r.DrawLine(7, 0, 7, 9)
	test.That(t, isRed(img.RGBAAt(7, 2)))
	test.T(t, img.RGBAAt(7, 8), plotview.White)
}

func TestRasterizerRectangle(t *testing.T) {
	img := newImage(10, 10)
	r := New(img, nil)
	r.SetPen(plotview.Pen{})
	r.SetBrush(plotview.Brush{Color: plotview.Blue, Style: plotview.SolidFill})
	r.DrawRectangle(2, 2, 4, 4)
	test.T(t, img.RGBAAt(3, 3), plotview.Blue)
	test.T(t, img.RGBAAt(6, 6), plotview.White)
}

func TestRasterizerText(t *testing.T) {
	img := newImage(100, 30)
	r := New(img, nil)
	w, h := r.TextExtent("plot")
	test.That(t, 0 < w && 0 < h, "text extent:", w, h)
	w2, _ := r.TextExtent("plotplot")
	test.That(t, w < w2)

	r.DrawText("plot", 2, 2)
	dark := false
	for y := 2; y < 2+h; y++ {
		for x := 2; x < 2+w; x++ {
			if img.RGBAAt(x, y).R < 128 {
				dark = true
			}
		}
	}
	test.That(t, dark, "text is drawn")
}

func TestDraw(t *testing.T) {
	c := plotview.NewComposer(50, 40, nil)
	s, err := plotview.NewXYSeries("s", []float64{0.0, 1.0}, []float64{0.0, 1.0}, nil, nil)
	test.Error(t, err)
	s.ShowName = false
	s.Continuous = true
	test.Error(t, c.AddLayer(s))
	test.Error(t, c.FitAll())

	img, err := Draw(context.Background(), c, nil)
	test.Error(t, err)
	test.T(t, img.Bounds(), image.Rect(0, 0, 50, 40))
	test.T(t, img.RGBAAt(49, 39), plotview.White)
	test.That(t, img.RGBAAt(25, 20) != plotview.White, "diagonal is drawn")

	var buf bytes.Buffer
	test.Error(t, PNGWriter(nil)(context.Background(), &buf, c))
	test.That(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")), "PNG signature")
}
