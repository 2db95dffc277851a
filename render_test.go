package plotview

import (
	"context"
	"errors"
	"image"
	"math"
	"testing"

	"github.com/tdewolff/test"
)

func denseSeries(t *testing.T, n int) *Series {
	xs, ys := make([]float64, n), make([]float64, n)
	for i := range xs {
		xs[i] = float64(i) * 0.002
		ys[i] = float64(i % 4)
	}
	s, err := NewXYSeries("dense", xs, ys, nil, nil)
	test.Error(t, err)
	s.ShowName = false
	return s
}

func denseViewport(t *testing.T) *Viewport {
	v := NewViewport(200, 100, nil)
	test.Error(t, v.Fit(0.0, 200.0, -1.0, 3.0))
	return v
}

func TestRenderPointsBound(t *testing.T) {
	v := denseViewport(t)
	s := denseSeries(t, 100000)

	rec := NewRecorder()
	test.Error(t, s.Draw(context.Background(), rec, v))
	stats := s.Stats()
	test.T(t, stats.Points, 100000)
	test.T(t, stats.Primitives, rec.Primitives())
	test.That(t, rec.Primitives() <= 4*200, "bounded by 4 primitives per column:", rec.Primitives())
	test.T(t, rec.Count(PointOp), rec.Primitives())
	test.T(t, stats.Bounds, image.Rect(0, 0, 200, 76))
}

func TestRenderPointsDistinct(t *testing.T) {
	v := NewViewport(10, 10, nil)
	test.Error(t, v.Fit(0.0, 10.0, 0.0, 10.0))
	s, err := NewXYSeries("s", []float64{1.1, 1.2, 1.3, 1.4, 2.5}, []float64{5.1, 5.2, 3.5, 5.9, 5.5}, nil, nil)
	test.Error(t, err)
	s.ShowName = false

	rec := NewRecorder()
	test.Error(t, s.Draw(context.Background(), rec, v))
	var points []image.Point
	for _, op := range rec.Ops {
		if op.Type == PointOp {
			points = append(points, op.Points[0])
		}
	}
	test.T(t, points, []image.Point{{1, 4}, {1, 6}, {2, 4}})
}

func TestRenderPointsWide(t *testing.T) {
	v := NewViewport(10, 10, nil)
	test.Error(t, v.Fit(0.0, 10.0, 0.0, 10.0))
	s, err := NewXYSeries("s", []float64{1.5, 2.5}, []float64{5.5, 5.5}, nil, nil)
	test.Error(t, err)
	s.ShowName = false
	s.Pen.Width = 3

	rec := NewRecorder()
	test.Error(t, s.Draw(context.Background(), rec, v))
	test.T(t, rec.Count(PointOp), 0)
	test.T(t, rec.Count(LineOp), 2)
}

func TestRenderLinesBound(t *testing.T) {
	v := denseViewport(t)
	s := denseSeries(t, 100000)
	s.Continuous = true

	rec := NewRecorder()
	test.Error(t, s.Draw(context.Background(), rec, v))
	test.That(t, rec.Primitives() <= 4*200, "bounded by 4 primitives per column:", rec.Primitives())
	test.T(t, rec.Count(LinesOp), 1)
	test.T(t, rec.Count(LineOp), 200)
	for _, op := range rec.Ops {
		if op.Type == LineOp {
			test.T(t, op.Points[0].X, op.Points[1].X, "vertical segment")
			test.T(t, op.Points[0].Y, 0)
			test.T(t, op.Points[1].Y, 75)
		}
	}
}

func TestRenderLinesShape(t *testing.T) {
	v := NewViewport(100, 100, nil)
	test.Error(t, v.Fit(0.0, 100.0, 0.0, 100.0))
	s, err := NewXYSeries("s", []float64{10.2, 10.5, 10.7, 20.5, 30.5, 40.5}, []float64{50.5, 70.5, 60.5, 60.5, 60.5, 80.5}, nil, nil)
	test.Error(t, err)
	s.ShowName = false
	s.Continuous = true

	rec := NewRecorder()
	test.Error(t, s.Draw(context.Background(), rec, v))
	test.T(t, rec.Count(LineOp), 1)
	test.T(t, rec.Count(LinesOp), 1)
	for _, op := range rec.Ops {
		switch op.Type {
		case LineOp:
			test.T(t, op.Points, []image.Point{{10, 29}, {10, 49}})
		case LinesOp:
			// first and last pixel of the column, horizontal run compressed
			test.T(t, op.Points, []image.Point{{10, 49}, {10, 39}, {30, 39}, {40, 19}})
		}
	}
}

func TestRenderLinesGap(t *testing.T) {
	v := NewViewport(100, 100, nil)
	test.Error(t, v.Fit(0.0, 4.0, 0.0, 4.0))
	s, err := NewXYSeries("s", []float64{0.0, 1.0, 2.0, 3.0, 4.0}, []float64{0.0, 1.0, math.NaN(), 3.0, 4.0}, nil, nil)
	test.Error(t, err)
	s.ShowName = false
	s.Continuous = true

	box, ok := s.DataBounds()
	test.That(t, ok)
	test.T(t, box, Box{0.0, 4.0, 0.0, 4.0})

	rec := NewRecorder()
	test.Error(t, s.Draw(context.Background(), rec, v))
	var lines [][]image.Point
	for _, op := range rec.Ops {
		if op.Type == LinesOp {
			lines = append(lines, op.Points)
		}
	}
	test.T(t, lines, [][]image.Point{{{0, 100}, {25, 75}}, {{75, 25}, {100, 0}}})
}

func TestRenderSinglePoint(t *testing.T) {
	v := NewViewport(100, 100, nil)
	test.Error(t, v.Fit(0.0, 4.0, 0.0, 4.0))
	s, err := NewXYSeries("s", []float64{1.0, 2.0, 3.0}, []float64{1.0, math.Inf(1), 3.0}, nil, nil)
	test.Error(t, err)
	s.ShowName = false
	s.Continuous = true

	rec := NewRecorder()
	test.Error(t, s.Draw(context.Background(), rec, v))
	test.T(t, rec.Count(PointOp), 2)
	test.T(t, rec.Count(LinesOp), 0)
}

func TestRenderCancel(t *testing.T) {
	v := denseViewport(t)
	s := denseSeries(t, 100000)
	s.Continuous = true

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rec := NewRecorder()
	err := s.Draw(ctx, rec, v)
	test.That(t, errors.Is(err, context.Canceled), "error:", err)
	test.T(t, rec.Primitives(), 0)
}

// cancelAfter is series data that cancels its context after n points.
type cancelAfter struct {
	SeriesData
	n      int
	cancel context.CancelFunc
}

func (d *cancelAfter) Next() (float64, float64, bool) {
	if d.n--; d.n == 0 {
		d.cancel()
	}
	return d.SeriesData.Next()
}

func TestRenderCancelMidway(t *testing.T) {
	v := denseViewport(t)
	s := denseSeries(t, 100000)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	data := &cancelAfter{SeriesData: s.Data(), cancel: cancel}
	s.SetSeriesData(data)
	data.n = 5000

	rec := NewRecorder()
	err := s.Draw(ctx, rec, v)
	test.That(t, errors.Is(err, context.Canceled), "error:", err)
	test.That(t, s.Stats().Points < 100000, "stopped early")
	test.That(t, 0 < rec.Primitives(), "drawn so far")
}

func TestRenderSimplify(t *testing.T) {
	v := NewViewport(500, 200, nil)
	test.Error(t, v.Fit(0.0, 2.0*math.Pi, -1.0, 1.0))

	n := 2000
	xs, ys := make([]float64, n), make([]float64, n)
	for i := range xs {
		xs[i] = 2.0 * math.Pi * float64(i) / float64(n-1)
		ys[i] = math.Sin(xs[i])
	}
	s, err := NewXYSeries("sin", xs, ys, nil, nil)
	test.Error(t, err)
	s.ShowName = false
	s.Continuous = true

	count := func() int {
		rec := NewRecorder()
		test.Error(t, s.Draw(context.Background(), rec, v))
		for _, op := range rec.Ops {
			if op.Type == LinesOp {
				return len(op.Points)
			}
		}
		return 0
	}
	n0 := count()
	s.SetSimplify(4.0)
	n1 := count()
	test.That(t, 0 < n1 && n1 < n0, "simplified:", n0, n1)
}

func TestRenderLabel(t *testing.T) {
	v := NewViewport(100, 100, nil)
	test.Error(t, v.Fit(0.0, 10.0, 0.0, 10.0))
	s, err := NewXYSeries("abc", []float64{2.0, 8.0}, []float64{2.0, 8.0}, nil, nil)
	test.Error(t, err)
	s.Continuous = true

	rec := NewRecorder()
	test.Error(t, s.Draw(context.Background(), rec, v))
	test.T(t, rec.Count(TextOp), 1)
	label := s.Stats().Label
	test.T(t, label.Dx(), 21)
	test.That(t, label.In(v.PlotRect()), "label within plot area")

	s.NameAlign = AlignSW
	rec.Reset()
	test.Error(t, s.Draw(context.Background(), rec, v))
	test.T(t, s.Stats().Label.Min.X, 22)
}
