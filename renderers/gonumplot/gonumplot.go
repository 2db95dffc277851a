// Package gonumplot connects plotview to gonum.org/v1/plot: a plotview Canvas drawing onto a gonum draw.Canvas, and plot.Ticker implementations backed by the plotview tick algorithms.
package gonumplot

import (
	"context"
	"image"
	"image/color"
	"io"

	"github.com/tdewolff/plotview"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const ptPerPx = 72.0 / 96.0

// Typeface is the font used for text, it must be present in font.DefaultCache.
var Typeface = font.Font{Typeface: "Liberation", Variant: "Sans"}

// GonumPlot is a canvas drawing onto a gonum draw.Canvas. Pixels are mapped to points at 96 DPI with the origin in the top-left corner of the canvas rectangle. vg has no clipping, so primitives are clipped before they are issued.
type GonumPlot struct {
	dc draw.Canvas

	pen   plotview.Pen
	brush plotview.Brush
	font  plotview.Font
	clip  image.Rectangle
	full  image.Rectangle
}

// New returns a canvas drawing onto dc.
func New(dc draw.Canvas) *GonumPlot {
	w := int(float64(dc.Max.X-dc.Min.X)/ptPerPx + 0.5)
	h := int(float64(dc.Max.Y-dc.Min.Y)/ptPerPx + 0.5)
	full := image.Rect(0, 0, w, h)
	return &GonumPlot{
		dc:   dc,
		pen:  plotview.DefaultPen,
		font: plotview.DefaultFont,
		clip: full,
		full: full,
	}
}

// WritePNG renders the composer onto a vgimg canvas of its screen size and writes it as PNG.
func WritePNG(ctx context.Context, w io.Writer, c *plotview.Composer) error {
	width, height := c.Viewport().ScreenSize()
	img := vgimg.New(vg.Length(float64(width)*ptPerPx), vg.Length(float64(height)*ptPerPx))
	dc := draw.New(img)
	dc.SetColor(color.White)
	dc.Fill(dc.Rectangle.Path())
	if err := c.Redraw(ctx, New(dc)); err != nil && ctx.Err() != nil {
		return err
	}
	_, err := vgimg.PngCanvas{Canvas: img}.WriteTo(w)
	return err
}

func (r *GonumPlot) point(x, y float64) vg.Point {
	return vg.Point{
		X: r.dc.Min.X + vg.Length(x*ptPerPx),
		Y: r.dc.Max.Y - vg.Length(y*ptPerPx),
	}
}

func (r *GonumPlot) SetPen(pen plotview.Pen) {
	r.pen = pen
}

func (r *GonumPlot) SetBrush(brush plotview.Brush) {
	r.brush = brush
}

func (r *GonumPlot) SetFont(f plotview.Font) {
	r.font = f
}

func (r *GonumPlot) SetClippingRegion(rect image.Rectangle) {
	r.clip = rect.Intersect(r.full)
}

func (r *GonumPlot) ClearClippingRegion() {
	r.clip = r.full
}

func (r *GonumPlot) penColor() color.Color {
	if r.pen.Color == nil {
		return plotview.Black
	}
	return r.pen.Color
}

func (r *GonumPlot) fillRect(rect image.Rectangle, col color.Color) {
	var p vg.Path
	p.Move(r.point(float64(rect.Min.X), float64(rect.Min.Y)))
	p.Line(r.point(float64(rect.Max.X), float64(rect.Min.Y)))
	p.Line(r.point(float64(rect.Max.X), float64(rect.Max.Y)))
	p.Line(r.point(float64(rect.Min.X), float64(rect.Max.Y)))
	p.Close()
	r.dc.SetColor(col)
	r.dc.Fill(p)
}

func (r *GonumPlot) DrawPoint(x, y int) {
	if !(image.Point{x, y}).In(r.clip) {
		return
	}
	w := max(r.pen.Width, 1)
	x -= (w - 1) / 2
	y -= (w - 1) / 2
	r.fillRect(image.Rect(x, y, x+w, y+w), r.penColor())
}

func (r *GonumPlot) DrawLine(x0, y0, x1, y1 int) {
	if x0 == x1 && y0 == y1 {
		r.DrawPoint(x0, y0)
		return
	}
	r.DrawLines([]image.Point{{x0, y0}, {x1, y1}})
}

func (r *GonumPlot) DrawLines(points []image.Point) {
	runs := plotview.ClipPolyline(r.clip, points)
	if len(runs) == 0 {
		return
	}

	w := vg.Length(float64(max(r.pen.Width, 1)) * ptPerPx)
	r.dc.SetColor(r.penColor())
	r.dc.SetLineWidth(w)
	switch r.pen.Style {
	case plotview.DashedLine:
		r.dc.SetLineDash([]vg.Length{4 * w, 3 * w}, 0)
	case plotview.DottedLine:
		r.dc.SetLineDash([]vg.Length{w, 2 * w}, 0)
	default:
		r.dc.SetLineDash(nil, 0)
	}

	var p vg.Path
	for _, run := range runs {
		if len(run) == 1 {
			continue
		}
		p.Move(r.point(float64(run[0].X)+0.5, float64(run[0].Y)+0.5))
		for _, q := range run[1:] {
			p.Line(r.point(float64(q.X)+0.5, float64(q.Y)+0.5))
		}
	}
	if len(p) != 0 {
		r.dc.Stroke(p)
	}
}

func (r *GonumPlot) DrawRectangle(x, y, w, h int) {
	rect := image.Rect(x, y, x+w, y+h)
	if r.brush.Style == plotview.SolidFill && r.brush.Color != nil {
		if fill := rect.Intersect(r.clip); !fill.Empty() {
			r.fillRect(fill, r.brush.Color)
		}
	}
	if 0 < r.pen.Width && r.pen.Color != nil {
		r.DrawLines([]image.Point{{x, y}, {x + w - 1, y}, {x + w - 1, y + h - 1}, {x, y + h - 1}, {x, y}})
	}
}

func (r *GonumPlot) face() font.Face {
	size := r.font.Size
	if size <= 0.0 {
		size = plotview.DefaultFont.Size
	}
	return font.DefaultCache.Lookup(Typeface, font.Length(size))
}

func (r *GonumPlot) TextExtent(text string) (int, int) {
	face := r.face()
	w := float64(face.Width(text)) / ptPerPx
	h := float64(face.Extents().Height) / ptPerPx
	return int(w + 0.999), int(h + 0.999)
}

// DrawText draws the text with its top-left corner at (x,y). Text starting outside the clipping region is skipped.
func (r *GonumPlot) DrawText(text string, x, y int) {
	if !(image.Point{x, y}).In(r.clip) {
		return
	}
	face := r.face()
	pt := r.point(float64(x), float64(y))
	pt.Y -= face.Extents().Ascent

	var col color.Color = plotview.Black
	if r.font.Color != nil {
		col = r.font.Color
	}
	r.dc.SetColor(col)
	r.dc.FillString(face, pt, text)
}

// DrawImage draws the image stretched over the destination rectangle.
func (r *GonumPlot) DrawImage(img image.Image, dst image.Rectangle) {
	if dst.Intersect(r.clip).Empty() {
		return
	}
	lo := r.point(float64(dst.Min.X), float64(dst.Max.Y))
	hi := r.point(float64(dst.Max.X), float64(dst.Min.Y))
	r.dc.DrawImage(vg.Rectangle{Min: lo, Max: hi}, img)
}
