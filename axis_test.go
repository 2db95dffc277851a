package plotview

import (
	"context"
	"errors"
	"image"
	"math"
	"testing"

	"github.com/tdewolff/test"
)

func TestAxisLinear(t *testing.T) {
	a := NewAxis("x", XAxis)
	test.Float(t, a.TransformToPlot(3.0), 3.0)

	a.SetScale(2.0, 0.5)
	test.Float(t, a.TransformToPlot(4.0), 3.0)
	test.Float(t, a.TransformFromPlot(3.0), 4.0)
	for _, v := range []float64{-1e6, -3.7, 0.0, 1.0, 12345.678} {
		test.Float(t, a.TransformFromPlot(a.TransformToPlot(v)), v)
	}

	a.SetScale(1.0, 0.0)
	test.Float(t, a.Scale(), 1.0)
	test.Float(t, a.Offset(), 1.0)
}

func TestAxisAutoScale(t *testing.T) {
	a := NewAxis("y", YAxis)
	a.AutoScale = true
	a.ExtendDataRange(30.0, 10.0)
	a.ExtendDataRange(15.0, math.Inf(1))
	test.Error(t, a.UpdateScale())
	test.Float(t, a.Offset(), -10.0)
	test.Float(t, a.Scale(), 1.0/20.0)
	test.Float(t, a.TransformToPlot(10.0), 0.0)
	test.Float(t, a.TransformToPlot(30.0), 1.0)

	a.ResetDataRange()
	a.ExtendDataRange(5.0, 5.0)
	test.T(t, a.UpdateScale(), ErrDegenerateRange)
	test.Float(t, a.Scale(), 1.0)
}

func TestAxisLog(t *testing.T) {
	a := NewLogAxis("y", YAxis)
	test.That(t, math.IsNaN(a.TransformToPlot(10.0)), "no data range")

	a.ExtendDataRange(1.0, 1000.0)
	test.Float(t, a.TransformToPlot(1.0), 0.0)
	test.Float(t, a.TransformToPlot(10.0), 1.0/3.0)
	test.Float(t, a.TransformToPlot(1000.0), 1.0)
	for _, v := range []float64{1.0, 3.7, 42.0, 1000.0, 1e5} {
		w := a.TransformFromPlot(a.TransformToPlot(v))
		test.That(t, math.Abs(w-v) <= 1e-9*v, "round trip", v, w)
	}
	test.That(t, math.IsNaN(a.TransformToPlot(0.0)))
	test.That(t, math.IsNaN(a.TransformToPlot(-1.0)))
}

func TestAxisSetMaster(t *testing.T) {
	c := NewComposer(100, 100, nil)
	y := NewAxis("y", YAxis)
	h, err := c.AddAxis(y)
	test.Error(t, err)
	test.That(t, h != NoAxis)

	l := NewLogAxis("log", YAxis)
	test.That(t, errors.Is(l.SetMaster(h), ErrLogSlave))
	test.Error(t, l.SetMaster(NoAxis))

	test.T(t, y.SetMaster(h), ErrInvalidHandle)
}

func newSlaveComposer(t *testing.T) (*Composer, *Axis, *Axis) {
	c := NewComposer(100, 100, nil)
	x := NewAxis("x", XAxis)
	y := NewAxis("y", YAxis)
	y2 := NewAxis("y2", YAxis)
	y2.Align = AlignBorderRight
	for _, a := range []*Axis{x, y, y2} {
		_, err := c.AddAxis(a)
		test.Error(t, err)
	}
	test.Error(t, y2.SetMaster(y.Handle()))

	s1, err := NewXYSeries("a", []float64{0.0, 10.0}, []float64{0.0, 10.0}, x, y)
	test.Error(t, err)
	s2, err := NewXYSeries("b", []float64{0.0, 10.0}, []float64{0.0, 100.0}, x, y2)
	test.Error(t, err)
	test.Error(t, c.AddLayer(s1))
	test.Error(t, c.AddLayer(s2))
	test.Error(t, c.FitAll())
	return c, y, y2
}

func TestAxisSlave(t *testing.T) {
	c, y, y2 := newSlaveComposer(t)
	test.T(t, c.BoundingBox(), Box{0.0, 10.0, 0.0, 10.0})

	test.Error(t, c.Redraw(context.Background(), NewRecorder()))
	mt, st := y.Ticks(), y2.Ticks()
	test.T(t, len(mt), 10)
	test.T(t, len(st), len(mt))
	test.Float(t, y2.Step(), 20.0)
	for i := range mt {
		test.Float(t, y2.TransformToPlot(st[i]), y.TransformToPlot(mt[i]))
	}
	test.Float(t, st[0], 0.0)
	test.That(t, 100.0 <= st[len(st)-1], "slave ticks cover the slave data")
	test.T(t, y2.Labels()[1], "20")

	// follows the master when panning
	c.Viewport().Pan(0.0, 0.5)
	test.Error(t, c.Redraw(context.Background(), NewRecorder()))
	mt, st = y.Ticks(), y2.Ticks()
	for i := range mt {
		test.Float(t, y2.TransformToPlot(st[i]), y.TransformToPlot(mt[i]))
	}
}

func TestAxisSlaveMasterRemoved(t *testing.T) {
	c, y, y2 := newSlaveComposer(t)
	test.Error(t, c.DelLayer(y, false))
	test.T(t, y.Handle(), NoAxis)

	err := c.Redraw(context.Background(), NewRecorder())
	test.That(t, errors.Is(err, ErrInvalidHandle), "redraw error:", err)
	test.T(t, len(y2.Ticks()), 0)
}

func TestAxisSlaveInvalidHandle(t *testing.T) {
	c, _, y2 := newSlaveComposer(t)
	test.Error(t, y2.SetMaster(AxisHandle(42)))
	err := c.Redraw(context.Background(), NewRecorder())
	test.That(t, errors.Is(err, ErrInvalidHandle), "redraw error:", err)
	test.T(t, len(y2.Ticks()), 0)
}

func TestAxisSlaveCycle(t *testing.T) {
	c, y, y2 := newSlaveComposer(t)
	test.Error(t, y.SetMaster(y2.Handle()))
	err := c.Redraw(context.Background(), NewRecorder())
	test.That(t, err != nil, "master cycle")
}

func TestAxisLogTicks(t *testing.T) {
	c := NewComposer(100, 100, nil)
	x := NewAxis("x", XAxis)
	y := NewLogAxis("y", YAxis)
	_, err := c.AddAxis(x)
	test.Error(t, err)
	_, err = c.AddAxis(y)
	test.Error(t, err)

	s, err := NewXYSeries("s", []float64{0.0, 1.0, 2.0, 3.0}, []float64{1.0, 10.0, 100.0, 1000.0}, x, y)
	test.Error(t, err)
	test.Error(t, c.AddLayer(s))
	test.Error(t, c.FitAll())
	test.T(t, c.BoundingBox(), Box{0.0, 3.0, 0.0, 1.0})

	test.Error(t, c.Redraw(context.Background(), NewRecorder()))
	test.T(t, y.Ticks(), []float64{1.0, 10.0, 100.0, 1000.0})
	test.T(t, y.Labels(), []string{"1", "10", "100", "1000"})
}

func TestAxisLogNonPositive(t *testing.T) {
	c := NewComposer(100, 100, nil)
	x := NewAxis("x", XAxis)
	y := NewLogAxis("y", YAxis)
	_, err := c.AddAxis(x)
	test.Error(t, err)
	_, err = c.AddAxis(y)
	test.Error(t, err)

	s, err := NewXYSeries("s", []float64{0.0, 1.0}, []float64{0.0, 10.0}, x, y)
	test.Error(t, err)
	test.Error(t, c.AddLayer(s))

	rec := NewRecorder()
	err = c.Redraw(context.Background(), rec)
	test.That(t, errors.Is(err, ErrNonPositiveLog), "redraw error:", err)
	test.T(t, len(y.Ticks()), 0)
	test.T(t, s.Stats().Primitives, 0)
}

func TestAxisDraw(t *testing.T) {
	v := NewViewport(100, 100, nil)
	test.Error(t, v.Fit(0.0, 10.0, 0.0, 10.0))
	a := NewAxis("", XAxis)
	a.Grid = true

	rec := NewRecorder()
	test.Error(t, a.Draw(context.Background(), rec, v))
	test.T(t, a.Labels(), []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"})
	test.T(t, rec.Count(TextOp), 10)
	test.T(t, rec.Count(LineOp), 1+10+10) // axis, gridlines, ticks

	// ticks follow the window when drawn without a composer
	v.ZoomIn(image.Point{50, 50}, 2.0)
	rec.Reset()
	test.Error(t, a.Draw(context.Background(), rec, v))
	test.Float(t, a.Step(), 0.5)
	test.T(t, a.Labels()[0], "2.5")
	v.ZoomOut(image.Point{50, 50}, 2.0)

	a.LabelFormat = "%.1f"
	a.Grid = false
	rec.Reset()
	test.Error(t, a.UpdateTicks(v))
	test.T(t, a.Labels()[2], "2.0")
	test.Error(t, a.Draw(context.Background(), rec, v))
	test.T(t, rec.Count(LineOp), 1+10)
}
