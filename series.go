package plotview

import (
	"context"
	"image"
	"math"
)

// SeriesData is a restartable cursor over an ordered sequence of (x,y) pairs. The data need not be in memory.
type SeriesData interface {
	Rewind()
	Next() (x, y float64, ok bool)
}

// XYs is series data backed by two parallel slices.
type XYs struct {
	xs, ys []float64
	i      int
	bounds Box
}

// NewXYs returns series data for the parallel slices, which must have equal lengths.
func NewXYs(xs, ys []float64) (*XYs, error) {
	d := &XYs{bounds: EmptyBox()}
	if err := d.SetData(xs, ys); err != nil {
		return nil, err
	}
	return d, nil
}

// SetData replaces the data. Slices of different lengths are rejected with ErrMismatchedLength and the previous data is kept.
func (d *XYs) SetData(xs, ys []float64) error {
	if len(xs) != len(ys) {
		return ErrMismatchedLength
	}
	bb := newBoundsBuilder()
	for i := range xs {
		bb.Add(xs[i], ys[i])
	}
	d.xs, d.ys = xs, ys
	d.bounds = bb.Box()
	d.i = 0
	return nil
}

// Len returns the number of points.
func (d *XYs) Len() int {
	return len(d.xs)
}

// Bounds returns the bounding box of the finite points, false if there are none.
func (d *XYs) Bounds() (Box, bool) {
	return d.bounds, !d.bounds.Empty()
}

func (d *XYs) Rewind() {
	d.i = 0
}

func (d *XYs) Next() (float64, float64, bool) {
	if len(d.xs) <= d.i {
		return 0.0, 0.0, false
	}
	i := d.i
	d.i++
	return d.xs[i], d.ys[i], true
}

// boundser is implemented by series data that knows its bounding box.
type boundser interface {
	Bounds() (Box, bool)
}

// dataBounds returns the bounding box of the data, walking the cursor when the data does not know it.
func dataBounds(data SeriesData) Box {
	if b, ok := data.(boundser); ok {
		box, _ := b.Bounds()
		return box
	}
	bb := newBoundsBuilder()
	data.Rewind()
	for {
		x, y, ok := data.Next()
		if !ok {
			break
		}
		bb.Add(x, y)
	}
	data.Rewind()
	return bb.Box()
}

////////////////////////////////////////////////////////////////

// Series is a layer drawing series data through an X and Y axis, either as points or as a connected line.
type Series struct {
	LayerBase
	xAxis, yAxis *Axis
	data         SeriesData
	bounds       Box
	renderer     *SeriesRenderer
	stats        RenderStats
	step         bool
}

// NewSeries returns a parametric XY series layer. The axes are not owned by the series.
func NewSeries(name string, data SeriesData, x, y *Axis) *Series {
	s := &Series{
		LayerBase: newLayerBase(name, ParametricXYLayer),
		xAxis:     orIdentity(x, XAxis),
		yAxis:     orIdentity(y, YAxis),
	}
	s.renderer = NewSeriesRenderer(&s.LayerBase, s.xAxis, s.yAxis)
	s.SetSeriesData(data)
	return s
}

// NewXYSeries returns a series layer over the parallel slices, which must have equal lengths.
func NewXYSeries(name string, xs, ys []float64, x, y *Axis) (*Series, error) {
	data, err := NewXYs(xs, ys)
	if err != nil {
		return nil, err
	}
	return NewSeries(name, data, x, y), nil
}

// SetSeriesData replaces the data cursor and recomputes the bounding box.
func (s *Series) SetSeriesData(data SeriesData) {
	s.data = data
	s.bounds = EmptyBox()
	if data != nil {
		s.bounds = dataBounds(data)
	}
}

// SetData replaces the data by the parallel slices. On ErrMismatchedLength the previous data and bounding box are left unchanged.
func (s *Series) SetData(xs, ys []float64) error {
	if len(xs) != len(ys) {
		return ErrMismatchedLength
	}
	if d, ok := s.data.(*XYs); ok {
		if err := d.SetData(xs, ys); err != nil {
			return err
		}
		s.bounds = d.bounds
		return nil
	}
	d, err := NewXYs(xs, ys)
	if err != nil {
		return err
	}
	s.SetSeriesData(d)
	return nil
}

// Data returns the data cursor.
func (s *Series) Data() SeriesData {
	return s.data
}

// SetSimplify enables an additional Visvalingam-Whyatt simplification of continuous lines with the given area tolerance in square pixels.
func (s *Series) SetSimplify(tolerance float64) {
	s.renderer.Simplify = tolerance
}

// DataBounds returns the bounding box of the data.
func (s *Series) DataBounds() (Box, bool) {
	return s.bounds, !s.bounds.Empty()
}

// Axes returns the X and Y axis.
func (s *Series) Axes() (*Axis, *Axis) {
	return s.xAxis, s.yAxis
}

// Stats returns the statistics of the last draw.
func (s *Series) Stats() RenderStats {
	return s.stats
}

func (s *Series) pendingLabel() (string, image.Rectangle) {
	return s.Name(), s.stats.Label
}

// Draw renders the data.
func (s *Series) Draw(ctx context.Context, c Canvas, v *Viewport) error {
	if s.data == nil {
		return nil
	}
	data := s.data
	if s.step {
		data = &steps{data: data}
	}
	var err error
	s.stats, err = s.renderer.Render(ctx, c, v, data)
	return err
}

////////////////////////////////////////////////////////////////

// steps turns a series into a staircase by holding each Y value until the next X.
type steps struct {
	data    SeriesData
	pending bool
	px, py  float64
	nx, ny  float64
}

func (s *steps) Rewind() {
	s.data.Rewind()
	s.pending = false
	s.px, s.py = math.NaN(), math.NaN()
}

func (s *steps) Next() (float64, float64, bool) {
	if s.pending {
		s.pending = false
		s.px, s.py = s.nx, s.ny
		return s.nx, s.ny, true
	}
	x, y, ok := s.data.Next()
	if !ok {
		return 0.0, 0.0, false
	}
	if math.IsNaN(s.px) {
		s.px, s.py = x, y
		return x, y, true
	}
	s.nx, s.ny = x, y
	s.pending = true
	return x, s.py, true
}

// NewProfile returns a step series layer, each value is held horizontally until the next sample. Profiles are always drawn as a connected line.
func NewProfile(name string, data SeriesData, x, y *Axis) *Series {
	s := NewSeries(name, data, x, y)
	s.kind = ProfileLayer
	s.Continuous = true
	s.step = true
	return s
}

////////////////////////////////////////////////////////////////

// columnSampler produces one sample per pixel of a range, calling f with the pixel index.
type columnSampler struct {
	n, i int
	f    func(i int) (float64, float64)
}

func (s *columnSampler) Rewind() {
	s.i = 0
}

func (s *columnSampler) Next() (float64, float64, bool) {
	if s.n <= s.i {
		return 0.0, 0.0, false
	}
	x, y := s.f(s.i)
	s.i++
	return x, y, true
}

// Function is a layer drawing y = f(x) (FunctionOfX) or x = f(y) (FunctionOfY), sampled once per pixel of the visible window.
type Function struct {
	LayerBase
	F            func(float64) float64
	xAxis, yAxis *Axis
	renderer     *SeriesRenderer
	stats        RenderStats
}

// NewFunctionOfX returns a layer drawing y = f(x).
func NewFunctionOfX(name string, f func(float64) float64, x, y *Axis) *Function {
	return newFunction(name, FunctionOfXLayer, f, x, y)
}

// NewFunctionOfY returns a layer drawing x = f(y).
func NewFunctionOfY(name string, f func(float64) float64, x, y *Axis) *Function {
	return newFunction(name, FunctionOfYLayer, f, x, y)
}

func newFunction(name string, kind LayerKind, f func(float64) float64, x, y *Axis) *Function {
	fn := &Function{
		LayerBase: newLayerBase(name, kind),
		F:         f,
		xAxis:     orIdentity(x, XAxis),
		yAxis:     orIdentity(y, YAxis),
	}
	fn.Continuous = true
	fn.renderer = NewSeriesRenderer(&fn.LayerBase, fn.xAxis, fn.yAxis)
	return fn
}

// Stats returns the statistics of the last draw.
func (fn *Function) Stats() RenderStats {
	return fn.stats
}

func (fn *Function) pendingLabel() (string, image.Rectangle) {
	return fn.Name(), fn.stats.Label
}

// Draw samples the function at every pixel of the plot area, or of the whole screen when drawing outside the margins.
func (fn *Function) Draw(ctx context.Context, c Canvas, v *Viewport) error {
	if fn.F == nil {
		return nil
	}
	r := v.PlotRect()
	if fn.DrawOutsideMargins {
		w, h := v.ScreenSize()
		r = image.Rect(0, 0, w, h)
	}

	sampler := &columnSampler{}
	if fn.kind == FunctionOfXLayer {
		sampler.n = r.Dx()
		sampler.f = func(i int) (float64, float64) {
			x := fn.xAxis.TransformFromPlot(v.ScreenToPlotX(float64(r.Min.X+i) + 0.5))
			return x, fn.F(x)
		}
	} else {
		sampler.n = r.Dy()
		sampler.f = func(i int) (float64, float64) {
			y := fn.yAxis.TransformFromPlot(v.ScreenToPlotY(float64(r.Min.Y+i) + 0.5))
			return fn.F(y), y
		}
	}

	var err error
	fn.stats, err = fn.renderer.Render(ctx, c, v, sampler)
	return err
}
