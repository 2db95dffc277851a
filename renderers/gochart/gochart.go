// Package gochart is a plotview Canvas drawing onto a github.com/wcharczuk/go-chart renderer, which writes PNG or SVG.
package gochart

import (
	"context"
	"image"
	"image/color"
	"io"

	"github.com/golang/freetype/truetype"
	"github.com/tdewolff/plotview"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font/gofont/goregular"
)

// RendererProvider creates a go-chart renderer of the given size in pixels, such as chart.PNG or chart.SVG.
type RendererProvider func(int, int) (chart.Renderer, error)

// GoChart is a canvas drawing onto a github.com/wcharczuk/go-chart renderer. The renderer has no clipping, so primitives are clipped before they are issued.
type GoChart struct {
	r chart.Renderer

	pen   plotview.Pen
	brush plotview.Brush
	font  plotview.Font
	clip  image.Rectangle
	full  image.Rectangle
}

// New returns a canvas of the given size in pixels drawing onto the renderer. A nil font uses the Go Regular font.
func New(r chart.Renderer, width, height int, f *truetype.Font) (*GoChart, error) {
	if f == nil {
		var err error
		if f, err = truetype.Parse(goregular.TTF); err != nil {
			return nil, err
		}
	}
	r.SetDPI(96.0)
	r.SetFont(f)
	full := image.Rect(0, 0, width, height)
	return &GoChart{
		r:    r,
		pen:  plotview.DefaultPen,
		font: plotview.DefaultFont,
		clip: full,
		full: full,
	}, nil
}

// Write renders the composer with a renderer created by the provider and saves it to w.
func Write(ctx context.Context, w io.Writer, c *plotview.Composer, provider RendererProvider) error {
	width, height := c.Viewport().ScreenSize()
	r, err := provider(width, height)
	if err != nil {
		return err
	}
	gc, err := New(r, width, height, nil)
	if err != nil {
		return err
	}
	if err := c.Redraw(ctx, gc); err != nil && ctx.Err() != nil {
		return err
	}
	return r.Save(w)
}

func toColor(c color.Color) drawing.Color {
	if c == nil {
		return drawing.ColorBlack
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return drawing.Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

func (r *GoChart) SetPen(pen plotview.Pen) {
	r.pen = pen
}

func (r *GoChart) SetBrush(brush plotview.Brush) {
	r.brush = brush
}

func (r *GoChart) SetFont(f plotview.Font) {
	r.font = f
}

func (r *GoChart) SetClippingRegion(rect image.Rectangle) {
	r.clip = rect.Intersect(r.full)
}

func (r *GoChart) ClearClippingRegion() {
	r.clip = r.full
}

func (r *GoChart) setStroke() {
	w := float64(max(r.pen.Width, 1))
	r.r.ResetStyle()
	r.r.SetStrokeColor(toColor(r.pen.Color))
	r.r.SetFillColor(drawing.ColorTransparent)
	r.r.SetStrokeWidth(w)
	switch r.pen.Style {
	case plotview.DashedLine:
		r.r.SetStrokeDashArray([]float64{4.0 * w, 3.0 * w})
	case plotview.DottedLine:
		r.r.SetStrokeDashArray([]float64{w, 2.0 * w})
	}
}

func (r *GoChart) fillRect(rect image.Rectangle, col color.Color) {
	r.r.ResetStyle()
	r.r.SetFillColor(toColor(col))
	r.r.SetStrokeColor(drawing.ColorTransparent)
	r.r.MoveTo(rect.Min.X, rect.Min.Y)
	r.r.LineTo(rect.Max.X, rect.Min.Y)
	r.r.LineTo(rect.Max.X, rect.Max.Y)
	r.r.LineTo(rect.Min.X, rect.Max.Y)
	r.r.Close()
	r.r.Fill()
}

func (r *GoChart) DrawPoint(x, y int) {
	if !(image.Point{x, y}).In(r.clip) {
		return
	}
	w := max(r.pen.Width, 1)
	x -= (w - 1) / 2
	y -= (w - 1) / 2
	r.fillRect(image.Rect(x, y, x+w, y+w), r.pen.Color)
}

func (r *GoChart) DrawLine(x0, y0, x1, y1 int) {
	if x0 == x1 && y0 == y1 {
		r.DrawPoint(x0, y0)
		return
	}
	r.DrawLines([]image.Point{{x0, y0}, {x1, y1}})
}

func (r *GoChart) DrawLines(points []image.Point) {
	runs := plotview.ClipPolyline(r.clip, points)
	if len(runs) == 0 {
		return
	}
	r.setStroke()
	for _, run := range runs {
		if len(run) == 1 {
			continue
		}
		r.r.MoveTo(run[0].X, run[0].Y)
		for _, p := range run[1:] {
			r.r.LineTo(p.X, p.Y)
		}
	}
	r.r.Stroke()
}

func (r *GoChart) DrawRectangle(x, y, w, h int) {
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

func (r *GoChart) setFont() {
	size := r.font.Size
	if size <= 0.0 {
		size = plotview.DefaultFont.Size
	}
	r.r.SetFontSize(size)
	r.r.SetFontColor(toColor(r.font.Color))
}

func (r *GoChart) TextExtent(text string) (int, int) {
	r.setFont()
	box := r.r.MeasureText(text)
	return box.Width(), box.Height()
}

// DrawText draws the text with its top-left corner at (x,y). Text starting outside the clipping region is skipped.
func (r *GoChart) DrawText(text string, x, y int) {
	if !(image.Point{x, y}).In(r.clip) {
		return
	}
	r.setFont()
	box := r.r.MeasureText(text)
	r.r.Text(text, x, y+box.Height())
}
