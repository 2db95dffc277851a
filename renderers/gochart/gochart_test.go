package gochart

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/tdewolff/plotview"
	"github.com/tdewolff/test"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

func TestToColor(t *testing.T) {
	test.T(t, toColor(nil), drawing.ColorBlack)
	test.T(t, toColor(plotview.Red), drawing.Color{R: 0xff, A: 0xff})
}

func TestWrite(t *testing.T) {
	c := plotview.NewComposer(40, 30, nil)
	s, err := plotview.NewXYSeries("s", []float64{0.0, 1.0}, []float64{0.0, 1.0}, nil, nil)
	test.Error(t, err)
	s.ShowName = false
	s.Continuous = true
	test.Error(t, c.AddLayer(s))
	test.Error(t, c.FitAll())

	var buf bytes.Buffer
	test.Error(t, Write(context.Background(), &buf, c, chart.SVG))
	test.That(t, strings.Contains(buf.String(), "<svg"), buf.String())

	buf.Reset()
	test.Error(t, Write(context.Background(), &buf, c, chart.PNG))
	test.That(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")), "PNG signature")
}
