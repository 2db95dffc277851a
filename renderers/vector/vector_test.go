package vector

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/plotview"
	"github.com/tdewolff/test"
)

func newComposer(t *testing.T) *plotview.Composer {
	c := plotview.NewComposer(96, 48, nil)
	s, err := plotview.NewXYSeries("s", []float64{0.0, 1.0, 2.0}, []float64{0.0, 2.0, 1.0}, nil, nil)
	test.Error(t, err)
	s.Continuous = true
	test.Error(t, c.AddLayer(s))
	test.Error(t, c.FitAll())
	return c
}

func TestDraw(t *testing.T) {
	cv, err := Draw(context.Background(), newComposer(t))
	test.Error(t, err)
	test.Float(t, cv.W, 25.4)
	test.Float(t, cv.H, 12.7)
	test.That(t, !cv.Empty(), "drawn")
}

func TestTextExtent(t *testing.T) {
	cv := canvas.New(100.0, 100.0)
	r, err := New(canvas.NewContext(cv), 100, 100)
	test.Error(t, err)
	w0, h := r.TextExtent("a")
	w1, _ := r.TextExtent("aaaa")
	test.That(t, 0 < w0 && w0 < w1, "width grows with text:", w0, w1)
	test.That(t, 0 < h, "height")
}

func TestWrite(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "plot.svg")
	test.Error(t, Write(context.Background(), filename, newComposer(t)))
	b, err := os.ReadFile(filename)
	test.Error(t, err)
	test.That(t, strings.Contains(string(b), "<svg"), "SVG output")
}
