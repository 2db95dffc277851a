package plotview

import (
	"context"
	"errors"
	"image"
	"io"
	"log/slog"
	"math"

	"github.com/tdewolff/plotview/layout"
)

// labeler is implemented by layers that place a name label while drawing.
type labeler interface {
	pendingLabel() (string, image.Rectangle)
}

// Composer owns an ordered list of layers and a viewport, and draws the layers in the order they were added. It also owns the registry of axis handles used by slave axes.
//
// A Composer is not safe for concurrent use and is not reentrant: calling Redraw from within a layer's Draw returns ErrReentrant.
type Composer struct {
	// AvoidLabelOverlap moves the name labels of the series after all layers are drawn so that they do not overlap.
	AvoidLabelOverlap bool

	vp      *Viewport
	layers  []Layer
	axes    axisRegistry
	series  int
	drawing bool
}

// NewComposer returns an empty composer with a viewport of the given screen size. A nil config uses DefaultViewportConfig.
func NewComposer(width, height int, cfg *ViewportConfig) *Composer {
	return &Composer{
		vp: NewViewport(width, height, cfg),
	}
}

// Viewport returns the viewport.
func (c *Composer) Viewport() *Viewport {
	return c.vp
}

// AddLayer appends a layer on top of the others. Axes are registered and receive a handle. Series whose pen is the default pen get the next palette color.
func (c *Composer) AddLayer(l Layer) error {
	if l == nil {
		return ErrUnknownLayer
	} else if c.index(l) != -1 {
		return ErrLayerExists
	}

	if a, ok := l.(*Axis); ok {
		if a.registry != nil {
			return ErrLayerExists // owned by another composer
		}
		a.handle = c.axes.add(a)
		a.registry = &c.axes
	} else if b, ok := l.(baser); ok {
		switch lb := b.base(); lb.kind {
		case FunctionOfXLayer, FunctionOfYLayer, ParametricXYLayer, ProfileLayer:
			if lb.Pen == DefaultPen {
				lb.Pen.Color = PaletteColor(c.series)
			}
			c.series++
		}
	}
	c.layers = append(c.layers, l)
	Logger().Debug("layer added", slog.String("layer", l.Name()), slog.String("kind", l.Kind().String()))
	return nil
}

// AddAxis adds the axis as a layer and returns its handle.
func (c *Composer) AddAxis(a *Axis) (AxisHandle, error) {
	if err := c.AddLayer(a); err != nil {
		return NoAxis, err
	}
	return a.handle, nil
}

// Axis returns the axis for a handle, or ErrInvalidHandle if it was never issued or its axis was removed.
func (c *Composer) Axis(h AxisHandle) (*Axis, error) {
	return c.axes.lookup(h)
}

// DelLayer removes the layer. If release is set and the layer implements io.Closer, it is closed. The handle of a removed axis becomes invalid, so that its slaves lose their ticks.
func (c *Composer) DelLayer(l Layer, release bool) error {
	i := c.index(l)
	if i == -1 {
		return ErrUnknownLayer
	}
	c.layers = append(c.layers[:i], c.layers[i+1:]...)
	if a, ok := l.(*Axis); ok {
		c.axes.remove(a.handle)
		a.handle, a.registry = NoAxis, nil
	}
	Logger().Debug("layer removed", slog.String("layer", l.Name()))
	if closer, ok := l.(io.Closer); ok && release {
		return closer.Close()
	}
	return nil
}

// Close removes all layers and closes those implementing io.Closer.
func (c *Composer) Close() error {
	var errs []error
	for len(c.layers) != 0 {
		if err := c.DelLayer(c.layers[len(c.layers)-1], true); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (c *Composer) index(l Layer) int {
	for i, m := range c.layers {
		if m == l {
			return i
		}
	}
	return -1
}

// LayerCount returns the number of layers.
func (c *Composer) LayerCount() int {
	return len(c.layers)
}

// LayerByIndex returns the i-th layer in drawing order, or nil if out of range.
func (c *Composer) LayerByIndex(i int) Layer {
	if i < 0 || len(c.layers) <= i {
		return nil
	}
	return c.layers[i]
}

// LayerByName returns the first layer with the given name, or nil.
func (c *Composer) LayerByName(name string) Layer {
	for _, l := range c.layers {
		if l.Name() == name {
			return l
		}
	}
	return nil
}

// updateRanges aggregates the data ranges of all visible bounded layers into their axes and updates the axis transforms.
func (c *Composer) updateRanges() {
	for _, a := range c.axes.axes {
		if a != nil {
			a.ResetDataRange()
		}
	}
	for _, l := range c.layers {
		b, ok := l.(Bounded)
		if !ok || !l.Visible() {
			continue
		}
		box, ok := b.DataBounds()
		if !ok {
			continue
		}
		x, y := b.Axes()
		x.ExtendDataRange(box.MinX, box.MaxX)
		y.ExtendDataRange(box.MinY, box.MaxY)
	}
	for _, a := range c.axes.axes {
		if a == nil {
			continue
		}
		if err := a.UpdateScale(); err != nil {
			Logger().Warn("axis scale", slog.String("axis", a.Name()), slog.Any("err", err))
		}
	}
}

// BoundingBox returns the union of the bounding boxes of all visible data layers in plot coordinates, which equal data coordinates for axes with the identity transform. Layers on a slave Y axis only contribute their X extent, since the slave's transform is derived from the current view.
func (c *Composer) BoundingBox() Box {
	c.updateRanges()
	bb := EmptyBox()
	for _, l := range c.layers {
		b, ok := l.(Bounded)
		if !ok || !l.Visible() {
			continue
		}
		box, ok := b.DataBounds()
		if !ok {
			continue
		}
		x, y := b.Axes()
		x0, x1 := x.TransformToPlot(box.MinX), x.TransformToPlot(box.MaxX)
		if finite(x0) && finite(x1) {
			bb.MinX = math.Min(bb.MinX, math.Min(x0, x1))
			bb.MaxX = math.Max(bb.MaxX, math.Max(x0, x1))
		}
		if y.Master() != NoAxis {
			continue
		}
		y0, y1 := y.TransformToPlot(box.MinY), y.TransformToPlot(box.MaxY)
		if finite(y0) && finite(y1) {
			bb.MinY = math.Min(bb.MinY, math.Min(y0, y1))
			bb.MaxY = math.Max(bb.MaxY, math.Max(y0, y1))
		}
	}
	return bb
}

// FitAll fits the viewport to the bounding box of all visible data layers. A zero span on an axis returns ErrDegenerateRange, an empty plot leaves the viewport unchanged.
func (c *Composer) FitAll() error {
	box := c.BoundingBox()
	if box.Empty() {
		return ErrDegenerateRange
	}
	c.vp.SetDataBounds(box)
	return c.vp.FitBox(box)
}

// primaryAxes returns the first registered X axis and the first registered Y axis that is not a slave.
func (c *Composer) primaryAxes() (*Axis, *Axis) {
	var x, y *Axis
	for _, a := range c.axes.axes {
		if a == nil {
			continue
		} else if x == nil && a.Dir == XAxis {
			x = a
		} else if y == nil && a.Dir == YAxis && a.Master() == NoAxis {
			y = a
		}
	}
	return x, y
}

// ScreenToData converts a pixel to data coordinates through the viewport and the primary axes.
func (c *Composer) ScreenToData(p image.Point) (float64, float64) {
	x, y := c.vp.ScreenToPlot(float64(p.X), float64(p.Y))
	if ax, ay := c.primaryAxes(); ax != nil && ay != nil {
		x, y = ax.TransformFromPlot(x), ay.TransformFromPlot(y)
	}
	return x, y
}

// DataToScreen converts data coordinates to a pixel through the primary axes and the viewport.
func (c *Composer) DataToScreen(x, y float64) image.Point {
	if ax, ay := c.primaryAxes(); ax != nil && ay != nil {
		x, y = ax.TransformToPlot(x), ay.TransformToPlot(y)
	}
	px, py := c.vp.PlotToScreen(x, y)
	return image.Point{pixel(px), pixel(py)}
}

// Redraw draws all visible layers in order onto the canvas. Data ranges are aggregated first, and every axis computes its ticks once for this cycle. Errors of individual layers are logged and joined into the returned error without stopping the others, except for context errors which abort the redraw.
func (c *Composer) Redraw(ctx context.Context, canvas Canvas) error {
	if c.drawing {
		return ErrReentrant
	}
	c.drawing = true
	defer func() { c.drawing = false }()

	c.vp.cycle++
	if box := c.BoundingBox(); !box.Empty() {
		c.vp.SetDataBounds(box)
	}

	var errs []error
	for _, l := range c.layers {
		if !l.Visible() {
			continue
		}
		if b, ok := l.(baser); ok {
			b.base().deferLabel = c.AvoidLabelOverlap
		}
		if err := l.Draw(ctx, canvas, c.vp); err != nil {
			if ctx.Err() != nil {
				return err
			}
			Logger().Warn("layer draw", slog.String("layer", l.Name()), slog.Any("err", err))
			errs = append(errs, err)
		}
	}
	if c.AvoidLabelOverlap {
		c.placeLabels(canvas)
	}
	return errors.Join(errs...)
}

// placeLabels draws the deferred name labels of the series after moving them apart.
func (c *Composer) placeLabels(canvas Canvas) {
	var names []string
	var fonts []Font
	var rects []image.Rectangle
	for _, l := range c.layers {
		lb, ok := l.(labeler)
		if !ok || !l.Visible() {
			continue
		}
		name, rect := lb.pendingLabel()
		if rect.Empty() {
			continue
		}
		names = append(names, name)
		rects = append(rects, rect)
		if b, ok := l.(baser); ok {
			fonts = append(fonts, b.base().Font)
		} else {
			fonts = append(fonts, DefaultFont)
		}
	}

	placed := layout.OptimizeLabelPlacement(c.vp.PlotRect(), rects, nil, uint64(len(rects)))
	for i, r := range placed {
		canvas.SetFont(fonts[i])
		canvas.DrawText(names[i], r.Min.X, r.Min.Y)
	}
}
