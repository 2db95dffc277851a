package plotview

import (
	"context"
	"fmt"
	"log/slog"
	"math"
)

// AxisDir is the dimension an axis scales.
type AxisDir int

// see AxisDir
const (
	XAxis AxisDir = iota
	YAxis
)

// ScaleType is the transform used by an axis.
type ScaleType int

// see ScaleType
const (
	LinearScale ScaleType = iota
	LogScale
)

// AxisHandle refers to an axis registered with a Composer. The zero handle refers to no axis.
type AxisHandle int

// NoAxis is the zero handle.
const NoAxis AxisHandle = 0

// axisRegistry owns the handle space of the axes of a Composer. Removed axes leave a hole so that stale handles stay invalid.
type axisRegistry struct {
	axes []*Axis
}

func (r *axisRegistry) add(a *Axis) AxisHandle {
	r.axes = append(r.axes, a)
	return AxisHandle(len(r.axes))
}

func (r *axisRegistry) remove(h AxisHandle) {
	if 0 < h && int(h) <= len(r.axes) {
		r.axes[h-1] = nil
	}
}

func (r *axisRegistry) lookup(h AxisHandle) (*Axis, error) {
	if r == nil || h <= 0 || len(r.axes) < int(h) || r.axes[h-1] == nil {
		return nil, ErrInvalidHandle
	}
	return r.axes[h-1], nil
}

// Axis transforms data coordinates of one dimension to plot coordinates and draws itself with ticks and labels. A linear axis maps
//
//	plot = (data + offset) * scale
//
// and a logarithmic axis maps the aggregated data range [minV,maxV] onto [0,1] in log10 space.
type Axis struct {
	LayerBase
	Dir  AxisDir
	Type ScaleType

	// AutoScale normalizes the aggregated data range to [0,1] on every redraw. Otherwise the offset and scale are left as set.
	AutoScale bool

	Align        Alignment
	TicksVisible bool
	Grid         bool
	GridPen      Pen
	TickLength   int

	// LabelFormat is a printf format for the tick labels, an empty format picks the number of decimals from the tick step.
	LabelFormat string

	offset, scale float64
	minV, maxV    float64
	hasData       bool

	ticks  []float64
	labels []string
	step   float64
	err    error

	cycle    uint64
	window   Box // visible window the ticks were computed for
	computed bool
	busy     bool

	master   AxisHandle
	registry *axisRegistry
	handle   AxisHandle
}

// NewAxis returns a linear axis with the identity transform.
func NewAxis(name string, dir AxisDir) *Axis {
	a := &Axis{
		LayerBase:    newLayerBase(name, AxisLayer),
		Dir:          dir,
		Type:         LinearScale,
		TicksVisible: true,
		GridPen:      GridPen,
		TickLength:   4,
		scale:        1.0,
	}
	if dir == XAxis {
		a.Align = AlignBorderBottom
	} else {
		a.Align = AlignBorderLeft
	}
	return a
}

// orIdentity returns a, or an unregistered identity axis if a is nil.
func orIdentity(a *Axis, dir AxisDir) *Axis {
	if a == nil {
		return NewAxis("", dir)
	}
	return a
}

// NewLogAxis returns a logarithmic axis.
func NewLogAxis(name string, dir AxisDir) *Axis {
	a := NewAxis(name, dir)
	a.Type = LogScale
	return a
}

// Handle returns the handle of the axis in its Composer, or NoAxis when it is not registered.
func (a *Axis) Handle() AxisHandle {
	return a.handle
}

// Offset returns the offset of the linear transform.
func (a *Axis) Offset() float64 {
	return a.offset
}

// Scale returns the scale of the linear transform.
func (a *Axis) Scale() float64 {
	return a.scale
}

// SetScale sets the linear transform. A zero or non-finite scale is stored as 1.
func (a *Axis) SetScale(offset, scale float64) {
	if scale == 0.0 || !finite(scale) {
		scale = 1.0
	}
	a.offset = offset
	a.scale = scale
}

// TransformToPlot converts a data value to a plot value.
func (a *Axis) TransformToPlot(v float64) float64 {
	if a.Type == LogScale {
		if !a.hasData || a.minV <= 0.0 || v <= 0.0 {
			return math.NaN()
		}
		lmin, lspan := a.logSpan()
		return (math.Log10(v) - lmin) / lspan
	}
	return (v + a.offset) * a.scale
}

// TransformFromPlot converts a plot value back to a data value.
func (a *Axis) TransformFromPlot(p float64) float64 {
	if a.Type == LogScale {
		if !a.hasData || a.minV <= 0.0 {
			return math.NaN()
		}
		lmin, lspan := a.logSpan()
		return math.Pow(10.0, p*lspan+lmin)
	}
	return p/a.scale - a.offset
}

func (a *Axis) logSpan() (float64, float64) {
	lmin := math.Log10(a.minV)
	lspan := math.Log10(a.maxV) - lmin
	if lspan == 0.0 {
		lspan = 1.0
	}
	return lmin, lspan
}

// DataRange returns the aggregated data range and whether any range was added.
func (a *Axis) DataRange() (float64, float64, bool) {
	return a.minV, a.maxV, a.hasData
}

// ResetDataRange clears the aggregated data range.
func (a *Axis) ResetDataRange() {
	a.minV, a.maxV = 0.0, 0.0
	a.hasData = false
}

// ExtendDataRange unions the range of a series into the aggregated data range. Non-finite bounds are ignored.
func (a *Axis) ExtendDataRange(min, max float64) {
	if !finite(min) || !finite(max) {
		return
	}
	if max < min {
		min, max = max, min
	}
	if !a.hasData {
		a.minV, a.maxV = min, max
		a.hasData = true
		return
	}
	a.minV = math.Min(a.minV, min)
	a.maxV = math.Max(a.maxV, max)
}

// UpdateScale derives the linear transform from the aggregated data range when AutoScale is set, mapping it onto [0,1]. A zero span yields a scale of 1 and ErrDegenerateRange.
func (a *Axis) UpdateScale() error {
	if !a.AutoScale || a.Type != LinearScale || a.master != NoAxis {
		return nil
	}
	span := a.maxV - a.minV
	if !a.hasData || span == 0.0 {
		a.SetScale(-a.minV, 1.0)
		return ErrDegenerateRange
	}
	a.SetScale(-a.minV, 1.0/span)
	return nil
}

// Master returns the handle of the master axis.
func (a *Axis) Master() AxisHandle {
	return a.master
}

// SetMaster makes this axis a slave of the axis with the given handle, its ticks are then always derived from the master's ticks so that the gridlines align. Pass NoAxis to unlink. Only linear axes can be slaves.
func (a *Axis) SetMaster(h AxisHandle) error {
	if h != NoAxis && a.Type != LinearScale {
		return fmt.Errorf("axis %q: %w", a.Name(), ErrLogSlave)
	} else if h != NoAxis && h == a.handle {
		return ErrInvalidHandle
	}
	a.master = h
	a.computed = false
	return nil
}

// Ticks returns the tick values computed by the last update.
func (a *Axis) Ticks() []float64 {
	return a.ticks
}

// Labels returns the tick labels, parallel to Ticks.
func (a *Axis) Labels() []string {
	return a.labels
}

// Step returns the distance between linear ticks.
func (a *Axis) Step() float64 {
	return a.step
}

// ensureTicks computes the ticks once per redraw cycle of the viewport, and again whenever the visible window has moved since.
func (a *Axis) ensureTicks(v *Viewport) error {
	if a.computed && a.cycle == v.cycle && a.window == v.VisibleBounds() {
		return a.err
	}
	return a.UpdateTicks(v)
}

// UpdateTicks recomputes the ticks for the window currently visible in the viewport. On failure the tick list is cleared and the error is returned: ErrDegenerateRange, ErrNonPositiveLog or ErrInvalidHandle.
func (a *Axis) UpdateTicks(v *Viewport) error {
	if a.busy {
		return ErrInvalidHandle // master cycle
	}
	a.busy = true
	defer func() { a.busy = false }()

	a.cycle = v.cycle
	a.window = v.VisibleBounds()
	a.computed = true
	a.ticks, a.labels, a.step = a.ticks[:0], a.labels[:0], 0.0
	if a.master != NoAxis {
		a.err = a.deriveFromMaster(v)
	} else {
		a.err = a.computeTicks(v)
	}
	if a.err != nil {
		a.ticks, a.labels = a.ticks[:0], a.labels[:0]
		Logger().Warn("axis ticks cleared", slog.String("axis", a.Name()), slog.Any("err", a.err))
		return a.err
	}

	for _, t := range a.ticks {
		a.labels = append(a.labels, a.formatLabel(t))
	}
	Logger().Debug("axis ticks", slog.String("axis", a.Name()), slog.Int("n", len(a.ticks)), slog.Float64("step", a.step))
	return nil
}

// visibleRange returns the data range visible in the viewport along this axis.
func (a *Axis) visibleRange(v *Viewport) (float64, float64) {
	b := v.VisibleBounds()
	lo, hi := b.MinX, b.MaxX
	if a.Dir == YAxis {
		lo, hi = b.MinY, b.MaxY
	}
	lo, hi = a.TransformFromPlot(lo), a.TransformFromPlot(hi)
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo, hi
}

func (a *Axis) computeTicks(v *Viewport) error {
	if a.Type == LogScale {
		if !a.hasData || a.minV <= 0.0 {
			return ErrNonPositiveLog
		}
		lo, hi := a.visibleRange(v)
		ticks, err := LogTicks(lo, hi)
		if err != nil {
			return err
		}
		a.ticks = append(a.ticks, ticks...)
		return nil
	}

	lo, hi := a.visibleRange(v)
	ticks, step, err := LinearTicks(lo, hi)
	if err != nil {
		return err
	}
	a.ticks = append(a.ticks, ticks...)
	a.step = step
	return nil
}

// deriveFromMaster sets the transform of this axis such that a nice step of the slave data spans exactly the distance between two master gridlines, and the slave covers its data range within the master ticks. Slave ticks are the master ticks mapped through the master transform and back through the slave transform.
func (a *Axis) deriveFromMaster(v *Viewport) error {
	m, err := a.registry.lookup(a.master)
	if err != nil {
		return err
	} else if err := m.ensureTicks(v); err != nil {
		return err
	}

	mt := m.Ticks()
	if len(mt) < 2 {
		return ErrDegenerateRange
	}
	p0, p1 := m.TransformToPlot(mt[0]), m.TransformToPlot(mt[1])
	dp := p1 - p0
	if !finite(dp) || dp == 0.0 {
		return ErrDegenerateRange
	}

	lo, hi := 0.0, 1.0
	if a.hasData {
		lo, hi = a.minV, a.maxV
	}
	n := len(mt)
	step := 1.0
	if lo < hi {
		step = niceCeil((hi - lo) / float64(max(n-2, 1)))
	}
	v0 := math.Floor(lo/step) * step
	for i := 0; i < 64 && v0+step*float64(n-1) < hi; i++ {
		step = niceNext(step)
		v0 = math.Floor(lo/step) * step
	}

	a.SetScale(0.0, dp/step)
	a.offset = p0/a.scale - v0
	a.step = step
	for _, t := range mt {
		a.ticks = append(a.ticks, a.TransformFromPlot(m.TransformToPlot(t)))
	}
	return nil
}

var niceMantissas = []float64{1.0, 2.0, 2.5, 5.0, 10.0}

// niceCeil returns the smallest number of the form {1,2,2.5,5}·10^k that is at least x.
func niceCeil(x float64) float64 {
	if x <= 0.0 || !finite(x) {
		return 1.0
	}
	base := math.Pow(10.0, math.Floor(math.Log10(x)))
	f := x / base
	for _, m := range niceMantissas {
		if f <= m*(1.0+1e-9) {
			return m * base
		}
	}
	return 10.0 * base
}

// niceNext returns the nice number following x.
func niceNext(x float64) float64 {
	base := math.Pow(10.0, math.Floor(math.Log10(x)))
	f := x / base
	for _, m := range niceMantissas {
		if f*(1.0+1e-9) < m {
			return m * base
		}
	}
	return 10.0 * base
}

func (a *Axis) formatLabel(t float64) string {
	if a.LabelFormat != "" {
		return fmt.Sprintf(a.LabelFormat, t)
	} else if a.Type == LogScale {
		return FormatTick(t, 0.0)
	}
	return FormatTick(t, a.step)
}

// tickPixel returns the pixel position of a tick along the axis direction.
func (a *Axis) tickPixel(v *Viewport, t float64) int {
	p := a.TransformToPlot(t)
	if a.Dir == XAxis {
		return pixel(v.PlotToScreenX(p))
	}
	return pixel(v.PlotToScreenY(p))
}

// Draw recomputes the ticks if needed and draws the axis line, gridlines, ticks, labels and name. Tick errors are returned after drawing the bare axis.
func (a *Axis) Draw(ctx context.Context, c Canvas, v *Viewport) error {
	err := a.ensureTicks(v)
	r := v.PlotRect()
	if r.Empty() {
		return err
	}

	if a.Grid && 0 < len(a.ticks) {
		c.SetPen(a.GridPen)
		for _, t := range a.ticks {
			p := a.tickPixel(v, t)
			if a.Dir == XAxis && r.Min.X <= p && p < r.Max.X {
				c.DrawLine(p, r.Min.Y, p, r.Max.Y-1)
			} else if a.Dir == YAxis && r.Min.Y <= p && p < r.Max.Y {
				c.DrawLine(r.Min.X, p, r.Max.X-1, p)
			}
		}
	}

	c.SetPen(a.Pen)
	c.SetFont(a.Font)
	if a.Dir == XAxis {
		a.drawX(c, v)
	} else {
		a.drawY(c, v)
	}
	return err
}

func (a *Axis) drawX(c Canvas, v *Viewport) {
	r := v.PlotRect()
	y := r.Max.Y - 1
	dir := 1 // labels below the line
	switch a.Align {
	case AlignBorderTop:
		y, dir = r.Min.Y, -1
	case AlignCenter:
		y = min(max(pixel(v.PlotToScreenY(0.0)), r.Min.Y), r.Max.Y-1)
	}
	c.DrawLine(r.Min.X, y, r.Max.X-1, y)

	for i, t := range a.ticks {
		x := a.tickPixel(v, t)
		if x < r.Min.X || r.Max.X <= x {
			continue
		}
		c.DrawLine(x, y-a.TickLength, x, y+a.TickLength)
		if a.TicksVisible {
			w, h := c.TextExtent(a.labels[i])
			ty := y + a.TickLength + 1
			if dir < 0 {
				ty = y - a.TickLength - 1 - h
			}
			c.DrawText(a.labels[i], x-w/2, ty)
		}
	}
	if a.ShowName && a.Name() != "" {
		w, h := c.TextExtent(a.Name())
		ty := y - a.TickLength - 2 - h
		if dir < 0 {
			ty = y + a.TickLength + 2
		}
		c.DrawText(a.Name(), r.Max.X-w-2, ty)
	}
}

func (a *Axis) drawY(c Canvas, v *Viewport) {
	r := v.PlotRect()
	x := r.Min.X
	dir := -1 // labels left of the line
	switch a.Align {
	case AlignBorderRight:
		x, dir = r.Max.X-1, 1
	case AlignCenter:
		x = min(max(pixel(v.PlotToScreenX(0.0)), r.Min.X), r.Max.X-1)
	}
	c.DrawLine(x, r.Min.Y, x, r.Max.Y-1)

	for i, t := range a.ticks {
		y := a.tickPixel(v, t)
		if y < r.Min.Y || r.Max.Y <= y {
			continue
		}
		c.DrawLine(x-a.TickLength, y, x+a.TickLength, y)
		if a.TicksVisible {
			w, h := c.TextExtent(a.labels[i])
			tx := x - a.TickLength - 2 - w
			if 0 < dir {
				tx = x + a.TickLength + 2
			}
			c.DrawText(a.labels[i], tx, y-h/2)
		}
	}
	if a.ShowName && a.Name() != "" {
		w, _ := c.TextExtent(a.Name())
		tx := x + a.TickLength + 2
		if 0 < dir {
			tx = x - a.TickLength - 2 - w
		}
		c.DrawText(a.Name(), tx, r.Min.Y+2)
	}
}
