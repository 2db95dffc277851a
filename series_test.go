package plotview

import (
	"context"
	"image"
	"testing"

	"github.com/tdewolff/test"
)

func TestXYs(t *testing.T) {
	d, err := NewXYs([]float64{1.0, 2.0, 3.0}, []float64{4.0, -5.0, 6.0})
	test.Error(t, err)
	test.T(t, d.Len(), 3)
	box, ok := d.Bounds()
	test.That(t, ok)
	test.T(t, box, Box{1.0, 3.0, -5.0, 6.0})

	x, y, ok := d.Next()
	test.That(t, ok)
	test.T(t, x, 1.0)
	test.T(t, y, 4.0)
	d.Next()
	d.Next()
	_, _, ok = d.Next()
	test.That(t, !ok, "exhausted")
	d.Rewind()
	x, _, ok = d.Next()
	test.That(t, ok)
	test.T(t, x, 1.0)

	_, err = NewXYs([]float64{1.0}, nil)
	test.T(t, err, ErrMismatchedLength)

	empty, err := NewXYs(nil, nil)
	test.Error(t, err)
	_, ok = empty.Bounds()
	test.That(t, !ok, "empty data has no bounds")
}

func TestSeriesSetDataMismatch(t *testing.T) {
	s, err := NewXYSeries("s", []float64{0.0, 1.0}, []float64{0.0, 1.0}, nil, nil)
	test.Error(t, err)
	test.T(t, s.Kind(), ParametricXYLayer)

	test.T(t, s.SetData([]float64{0.0, 1.0, 2.0}, []float64{5.0}), ErrMismatchedLength)
	box, ok := s.DataBounds()
	test.That(t, ok)
	test.T(t, box, Box{0.0, 1.0, 0.0, 1.0})
	test.T(t, s.Data().(*XYs).Len(), 2)

	test.Error(t, s.SetData([]float64{-1.0, 3.0}, []float64{2.0, 7.0}))
	box, _ = s.DataBounds()
	test.T(t, box, Box{-1.0, 3.0, 2.0, 7.0})
}

// cursor is series data that does not know its bounds.
type cursor struct {
	xs, ys []float64
	i      int
}

func (c *cursor) Rewind() {
	c.i = 0
}

func (c *cursor) Next() (float64, float64, bool) {
	if len(c.xs) <= c.i {
		return 0.0, 0.0, false
	}
	c.i++
	return c.xs[c.i-1], c.ys[c.i-1], true
}

func TestSeriesCursor(t *testing.T) {
	data := &cursor{xs: []float64{3.0, 1.0, 2.0}, ys: []float64{0.5, 1.5, -0.5}}
	s := NewSeries("s", data, nil, nil)
	box, ok := s.DataBounds()
	test.That(t, ok)
	test.T(t, box, Box{1.0, 3.0, -0.5, 1.5})
	test.T(t, data.i, 0)

	s.SetSeriesData(nil)
	_, ok = s.DataBounds()
	test.That(t, !ok)
	test.Error(t, s.Draw(context.Background(), NewRecorder(), NewViewport(10, 10, nil)))
}

func TestProfileSteps(t *testing.T) {
	data, err := NewXYs([]float64{0.0, 1.0, 2.0}, []float64{0.0, 1.0, 0.0})
	test.Error(t, err)

	st := &steps{data: data}
	st.Rewind()
	var points []Point
	for {
		x, y, ok := st.Next()
		if !ok {
			break
		}
		points = append(points, Point{x, y})
	}
	test.T(t, points, []Point{{0.0, 0.0}, {1.0, 0.0}, {1.0, 1.0}, {2.0, 1.0}, {2.0, 0.0}})
}

func TestProfileDraw(t *testing.T) {
	data, err := NewXYs([]float64{0.0, 1.0, 2.0}, []float64{0.0, 1.0, 0.0})
	test.Error(t, err)
	p := NewProfile("p", data, nil, nil)
	p.ShowName = false
	test.T(t, p.Kind(), ProfileLayer)
	test.That(t, p.Continuous)

	v := NewViewport(100, 100, nil)
	test.Error(t, v.Fit(0.0, 2.0, 0.0, 1.0))
	rec := NewRecorder()
	test.Error(t, p.Draw(context.Background(), rec, v))
	for _, op := range rec.Ops {
		if op.Type == LinesOp {
			test.T(t, op.Points, []image.Point{{0, 100}, {50, 100}, {50, 0}, {100, 0}, {100, 100}})
		}
	}
	test.T(t, rec.Count(LinesOp), 1)
	test.T(t, rec.Count(LineOp), 2)
}

func TestFunctionOfX(t *testing.T) {
	v := NewViewport(100, 100, nil)
	test.Error(t, v.Fit(0.0, 100.0, 0.0, 200.0))
	fn := NewFunctionOfX("f", func(x float64) float64 { return 2.0 * x }, nil, nil)
	fn.ShowName = false
	test.T(t, fn.Kind(), FunctionOfXLayer)

	rec := NewRecorder()
	test.Error(t, fn.Draw(context.Background(), rec, v))
	test.T(t, fn.Stats().Points, 100)
	test.T(t, rec.Count(LinesOp), 1)
	for _, op := range rec.Ops {
		if op.Type == LinesOp {
			test.T(t, len(op.Points), 100)
			test.T(t, op.Points[0], image.Point{0, 99})
			test.T(t, op.Points[99], image.Point{99, 0})
		}
	}
}

func TestFunctionOfY(t *testing.T) {
	v := NewViewport(100, 100, nil)
	test.Error(t, v.Fit(0.0, 100.0, 0.0, 200.0))
	fn := NewFunctionOfY("g", func(float64) float64 { return 50.0 }, nil, nil)
	fn.ShowName = false
	test.T(t, fn.Kind(), FunctionOfYLayer)

	rec := NewRecorder()
	test.Error(t, fn.Draw(context.Background(), rec, v))
	test.T(t, fn.Stats().Points, 100)
	for _, op := range rec.Ops {
		switch op.Type {
		case LineOp:
			test.T(t, op.Points, []image.Point{{50, 0}, {50, 99}})
		case LinesOp:
			test.T(t, op.Points, []image.Point{{50, 0}, {50, 99}})
		}
	}
}

func TestFunctionMargins(t *testing.T) {
	v := NewViewport(100, 100, nil)
	v.SetMargins(Margins{Left: 10})
	test.Error(t, v.Fit(0.0, 1.0, 0.0, 1.0))
	fn := NewFunctionOfX("f", func(x float64) float64 { return x }, nil, nil)

	rec := NewRecorder()
	test.Error(t, fn.Draw(context.Background(), rec, v))
	test.T(t, fn.Stats().Points, 90)
	test.T(t, rec.Count(ClipOp), 1)

	fn.DrawOutsideMargins = true
	rec.Reset()
	test.Error(t, fn.Draw(context.Background(), rec, v))
	test.T(t, fn.Stats().Points, 100)
	test.T(t, rec.Count(ClipOp), 0)
}
