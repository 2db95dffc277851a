package plotview

import (
	"context"
	"image"
	"strings"
)

// Text is a layer drawing a fixed text at a position relative to the plot area, where (0,0) is the top-left and (1,1) the bottom-right corner.
type Text struct {
	LayerBase
	Text string
	X, Y float64
}

// NewText returns a text layer at the given relative position.
func NewText(name, text string, x, y float64) *Text {
	t := &Text{
		LayerBase: newLayerBase(name, TextLayer),
		Text:      text,
		X:         x,
		Y:         y,
	}
	t.ShowName = false
	return t
}

// Draw draws each line of the text below the previous one.
func (t *Text) Draw(ctx context.Context, c Canvas, v *Viewport) error {
	if t.Text == "" {
		return nil
	}
	r := v.PlotRect()
	x := r.Min.X + pixel(t.X*float64(r.Dx()))
	y := r.Min.Y + pixel(t.Y*float64(r.Dy()))

	defer t.clip(c, v)()
	c.SetFont(t.Font)
	for _, line := range strings.Split(t.Text, "\n") {
		c.DrawText(line, x, y)
		_, h := c.TextExtent(line)
		y += h
	}
	return nil
}

////////////////////////////////////////////////////////////////

// Info is a layer drawing a filled box with text at a pixel position, typically updated by the host with the coordinates under the pointer.
type Info struct {
	LayerBase
	Pos     image.Point
	Padding int
	lines   []string
}

// NewInfo returns an info layer at the given pixel position with an opaque white background.
func NewInfo(name string, pos image.Point) *Info {
	l := &Info{
		LayerBase: newLayerBase(name, InfoLayer),
		Pos:       pos,
		Padding:   4,
	}
	l.Brush = Brush{Color: White, Style: SolidFill}
	l.ShowName = false
	l.DrawOutsideMargins = true
	return l
}

// SetText replaces the text, one line per newline.
func (l *Info) SetText(text string) {
	l.lines = l.lines[:0]
	if text != "" {
		l.lines = strings.Split(text, "\n")
	}
}

// Text returns the text.
func (l *Info) Text() string {
	return strings.Join(l.lines, "\n")
}

// Rect returns the pixel rectangle of the box for the given canvas.
func (l *Info) Rect(c Canvas) image.Rectangle {
	w, h := 0, 0
	for _, line := range l.lines {
		lw, lh := c.TextExtent(line)
		w = max(w, lw)
		h += lh
	}
	return image.Rect(l.Pos.X, l.Pos.Y, l.Pos.X+w+2*l.Padding, l.Pos.Y+h+2*l.Padding)
}

// Draw draws the box and its text.
func (l *Info) Draw(ctx context.Context, c Canvas, v *Viewport) error {
	if len(l.lines) == 0 {
		return nil
	}
	defer l.clip(c, v)()
	c.SetFont(l.Font)
	r := l.Rect(c)
	c.SetPen(l.Pen)
	c.SetBrush(l.Brush)
	c.DrawRectangle(r.Min.X, r.Min.Y, r.Dx(), r.Dy())

	y := r.Min.Y + l.Padding
	for _, line := range l.lines {
		c.DrawText(line, r.Min.X+l.Padding, y)
		_, h := c.TextExtent(line)
		y += h
	}
	return nil
}

////////////////////////////////////////////////////////////////

// Bitmap is a layer drawing an image stretched over a box in data coordinates. Canvases that do not implement ImageDrawer draw its outline instead.
type Bitmap struct {
	LayerBase
	Image        image.Image
	Box          Box
	xAxis, yAxis *Axis
}

// NewBitmap returns a bitmap layer covering the box.
func NewBitmap(name string, img image.Image, box Box, x, y *Axis) *Bitmap {
	b := &Bitmap{
		LayerBase: newLayerBase(name, BitmapLayer),
		Image:     img,
		Box:       box,
		xAxis:     orIdentity(x, XAxis),
		yAxis:     orIdentity(y, YAxis),
	}
	b.ShowName = false
	return b
}

// DataBounds returns the box covered by the image.
func (b *Bitmap) DataBounds() (Box, bool) {
	return b.Box, b.Box.Valid() && !b.Box.Empty()
}

// Axes returns the X and Y axis.
func (b *Bitmap) Axes() (*Axis, *Axis) {
	return b.xAxis, b.yAxis
}

// Draw draws the image.
func (b *Bitmap) Draw(ctx context.Context, c Canvas, v *Viewport) error {
	if b.Image == nil || !b.Box.Valid() {
		return nil
	}
	x0 := v.PlotToScreenX(b.xAxis.TransformToPlot(b.Box.MinX))
	x1 := v.PlotToScreenX(b.xAxis.TransformToPlot(b.Box.MaxX))
	y0 := v.PlotToScreenY(b.yAxis.TransformToPlot(b.Box.MaxY))
	y1 := v.PlotToScreenY(b.yAxis.TransformToPlot(b.Box.MinY))
	if !finite(x0) || !finite(x1) || !finite(y0) || !finite(y1) {
		return nil
	}
	dst := image.Rect(pixel(x0), pixel(y0), pixel(x1), pixel(y1))
	if dst.Empty() {
		return nil
	}

	defer b.clip(c, v)()
	if d, ok := c.(ImageDrawer); ok {
		d.DrawImage(b.Image, dst)
		return nil
	}
	c.SetPen(b.Pen)
	c.SetBrush(Brush{Style: TransparentFill})
	c.DrawRectangle(dst.Min.X, dst.Min.Y, dst.Dx(), dst.Dy())
	return nil
}
