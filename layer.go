// Package plotview is a 2D plotting viewport engine. It maps data coordinates through axes into plot coordinates and through a viewport into pixels, generates axis ticks, and renders large series to a Canvas with a bounded number of draw calls.
package plotview

import (
	"context"
	"fmt"
)

// LayerKind identifies the variant of a layer.
type LayerKind int

// see LayerKind
const (
	AxisLayer LayerKind = iota
	FunctionOfXLayer
	FunctionOfYLayer
	ParametricXYLayer
	ProfileLayer
	InfoLayer
	TextLayer
	BitmapLayer
	MovableShapeLayer
)

func (k LayerKind) String() string {
	switch k {
	case AxisLayer:
		return "Axis"
	case FunctionOfXLayer:
		return "FunctionOfX"
	case FunctionOfYLayer:
		return "FunctionOfY"
	case ParametricXYLayer:
		return "ParametricXY"
	case ProfileLayer:
		return "Profile"
	case InfoLayer:
		return "Info"
	case TextLayer:
		return "Text"
	case BitmapLayer:
		return "Bitmap"
	case MovableShapeLayer:
		return "MovableShape"
	}
	return fmt.Sprintf("LayerKind(%d)", int(k))
}

// Alignment places a label or an axis relative to the plot area or a bounding box.
type Alignment int

// see Alignment
const (
	AlignNW Alignment = iota
	AlignNE
	AlignSW
	AlignSE
	AlignCenter
	AlignBorderBottom
	AlignBorderTop
	AlignBorderLeft
	AlignBorderRight
)

// Layer is a drawable unit of a plot. Layers are drawn in the order they are added to the Composer.
type Layer interface {
	Name() string
	Kind() LayerKind
	Visible() bool
	Draw(ctx context.Context, c Canvas, v *Viewport) error
}

// Bounded is implemented by layers that have data and take part in fitting. DataBounds returns the bounding box in data coordinates, and false when there is no data.
type Bounded interface {
	Layer
	DataBounds() (Box, bool)
	Axes() (*Axis, *Axis)
}

// LayerBase holds the attributes shared by all layers and implements the accessors of Layer. It is embedded by every layer type.
type LayerBase struct {
	name string
	kind LayerKind

	Pen                Pen
	Font               Font
	Brush              Brush
	Hidden             bool
	Continuous         bool // connected line instead of points
	DrawOutsideMargins bool
	ShowName           bool
	NameAlign          Alignment

	deferLabel bool // name label is placed by the Composer
}

func newLayerBase(name string, kind LayerKind) LayerBase {
	return LayerBase{
		name:      name,
		kind:      kind,
		Pen:       DefaultPen,
		Font:      DefaultFont,
		Brush:     Brush{Color: White, Style: TransparentFill},
		ShowName:  true,
		NameAlign: AlignNE,
	}
}

// Name returns the name of the layer.
func (l *LayerBase) Name() string {
	return l.name
}

// SetName renames the layer.
func (l *LayerBase) SetName(name string) {
	l.name = name
}

// Kind returns the kind, which is fixed at construction.
func (l *LayerBase) Kind() LayerKind {
	return l.kind
}

// Visible returns true unless the layer is hidden.
func (l *LayerBase) Visible() bool {
	return !l.Hidden
}

// SetVisible shows or hides the layer.
func (l *LayerBase) SetVisible(visible bool) {
	l.Hidden = !visible
}

// clip sets the clipping region to the plot area unless the layer draws outside the margins.
func (l *LayerBase) clip(c Canvas, v *Viewport) func() {
	if l.DrawOutsideMargins {
		return func() {}
	}
	c.SetClippingRegion(v.PlotRect())
	return c.ClearClippingRegion
}

func (l *LayerBase) base() *LayerBase {
	return l
}

// baser is implemented by all layers embedding LayerBase.
type baser interface {
	base() *LayerBase
}
