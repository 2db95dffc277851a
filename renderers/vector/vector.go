// Package vector is a plotview Canvas drawing onto a github.com/tdewolff/canvas context, so that plots can be written as SVG, PDF, EPS or raster images by its renderers.
package vector

import (
	"context"
	"image"
	"image/color"

	"github.com/go-fonts/latin-modern/lmroman10regular"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers"
	"github.com/tdewolff/plotview"
)

const mmPerPx = 25.4 / 96.0

// Vector is a canvas drawing onto a tdewolff/canvas Context. Pixels are mapped to millimeters at 96 DPI, with the origin in the top-left corner.
type Vector struct {
	ctx    *canvas.Context
	height float64 // in mm
	family *canvas.FontFamily

	pen   plotview.Pen
	brush plotview.Brush
	font  plotview.Font
	clip  image.Rectangle
	full  image.Rectangle
}

// New returns a canvas of the given size in pixels drawing onto the context, text is set in Latin Modern Roman.
func New(ctx *canvas.Context, width, height int) (*Vector, error) {
	family := canvas.NewFontFamily("latin-modern")
	if err := family.LoadFont(lmroman10regular.TTF, 0, canvas.FontRegular); err != nil {
		return nil, err
	}
	full := image.Rect(0, 0, width, height)
	return &Vector{
		ctx:    ctx,
		height: float64(height) * mmPerPx,
		family: family,
		pen:    plotview.DefaultPen,
		font:   plotview.DefaultFont,
		clip:   full,
		full:   full,
	}, nil
}

// Draw renders the composer onto a new tdewolff/canvas Canvas of its screen size.
func Draw(ctx context.Context, c *plotview.Composer) (*canvas.Canvas, error) {
	w, h := c.Viewport().ScreenSize()
	cv := canvas.New(float64(w)*mmPerPx, float64(h)*mmPerPx)
	v, err := New(canvas.NewContext(cv), w, h)
	if err != nil {
		return nil, err
	}
	if err := c.Redraw(ctx, v); err != nil && ctx.Err() != nil {
		return nil, err
	}
	return cv, nil
}

// Write renders the composer and writes it to a file, the format follows from the extension (.svg, .pdf, .eps, .png, .jpg, ...).
func Write(ctx context.Context, filename string, c *plotview.Composer, opts ...interface{}) error {
	cv, err := Draw(ctx, c)
	if err != nil {
		return err
	}
	return renderers.Write(filename, cv, opts...)
}

func (r *Vector) x(px float64) float64 {
	return px * mmPerPx
}

func (r *Vector) y(px float64) float64 {
	return r.height - px*mmPerPx
}

func (r *Vector) SetPen(pen plotview.Pen) {
	r.pen = pen
}

func (r *Vector) SetBrush(brush plotview.Brush) {
	r.brush = brush
}

func (r *Vector) SetFont(f plotview.Font) {
	r.font = f
}

func (r *Vector) SetClippingRegion(rect image.Rectangle) {
	r.clip = rect.Intersect(r.full)
}

func (r *Vector) ClearClippingRegion() {
	r.clip = r.full
}

func (r *Vector) penColor() color.Color {
	if r.pen.Color == nil {
		return plotview.Black
	}
	return r.pen.Color
}

func (r *Vector) setStroke() {
	w := float64(max(r.pen.Width, 1)) * mmPerPx
	r.ctx.SetFillColor(canvas.Transparent)
	r.ctx.SetStrokeColor(r.penColor())
	r.ctx.SetStrokeWidth(w)
	r.ctx.SetStrokeCapper(canvas.SquareCap)
	switch r.pen.Style {
	case plotview.DashedLine:
		r.ctx.SetDashes(0.0, 4.0*w, 3.0*w)
	case plotview.DottedLine:
		r.ctx.SetDashes(0.0, w, 2.0*w)
	default:
		r.ctx.SetDashes(0.0)
	}
}

func (r *Vector) DrawPoint(x, y int) {
	if !(image.Point{x, y}).In(r.clip) {
		return
	}
	w := max(r.pen.Width, 1)
	x -= (w - 1) / 2
	y -= (w - 1) / 2
	r.ctx.SetStrokeColor(canvas.Transparent)
	r.ctx.SetFillColor(r.penColor())
	r.ctx.DrawPath(r.x(float64(x)), r.y(float64(y+w)), canvas.Rectangle(float64(w)*mmPerPx, float64(w)*mmPerPx))
}

func (r *Vector) DrawLine(x0, y0, x1, y1 int) {
	if x0 == x1 && y0 == y1 {
		r.DrawPoint(x0, y0)
		return
	}
	r.DrawLines([]image.Point{{x0, y0}, {x1, y1}})
}

func (r *Vector) DrawLines(points []image.Point) {
	runs := plotview.ClipPolyline(r.clip, points)
	if len(runs) == 0 {
		return
	}
	p := &canvas.Path{}
	for _, run := range runs {
		if len(run) == 1 {
			r.DrawPoint(run[0].X, run[0].Y)
			continue
		}
		p.MoveTo(r.x(float64(run[0].X)+0.5), r.y(float64(run[0].Y)+0.5))
		for _, q := range run[1:] {
			p.LineTo(r.x(float64(q.X)+0.5), r.y(float64(q.Y)+0.5))
		}
	}
	if !p.Empty() {
		r.setStroke()
		r.ctx.DrawPath(0.0, 0.0, p)
	}
}

func (r *Vector) DrawRectangle(x, y, w, h int) {
	rect := image.Rect(x, y, x+w, y+h)
	if r.brush.Style == plotview.SolidFill && r.brush.Color != nil {
		if fill := rect.Intersect(r.clip); !fill.Empty() {
			r.ctx.SetStrokeColor(canvas.Transparent)
			r.ctx.SetFillColor(r.brush.Color)
			r.ctx.DrawPath(r.x(float64(fill.Min.X)), r.y(float64(fill.Max.Y)), canvas.Rectangle(float64(fill.Dx())*mmPerPx, float64(fill.Dy())*mmPerPx))
		}
	}
	if 0 < r.pen.Width && r.pen.Color != nil {
		r.DrawLines([]image.Point{{x, y}, {x + w - 1, y}, {x + w - 1, y + h - 1}, {x, y + h - 1}, {x, y}})
	}
}

func (r *Vector) face() *canvas.FontFace {
	size := r.font.Size
	if size <= 0.0 {
		size = plotview.DefaultFont.Size
	}
	var col color.Color = plotview.Black
	if r.font.Color != nil {
		col = r.font.Color
	}
	return r.family.Face(size, col, canvas.FontRegular, canvas.FontNormal)
}

func (r *Vector) TextExtent(text string) (int, int) {
	face := r.face()
	w := face.TextWidth(text) / mmPerPx
	h := face.Metrics().LineHeight / mmPerPx
	return int(w + 0.999), int(h + 0.999)
}

// DrawText draws the text with its top-left corner at (x,y). Text starting outside the clipping region is skipped.
func (r *Vector) DrawText(text string, x, y int) {
	if !(image.Point{x, y}).In(r.clip) {
		return
	}
	face := r.face()
	baseline := r.y(float64(y)) - face.Metrics().Ascent
	r.ctx.DrawText(r.x(float64(x)), baseline, canvas.NewTextLine(face, text, canvas.Left))
}

// DrawImage draws the image stretched over the destination rectangle.
func (r *Vector) DrawImage(img image.Image, dst image.Rectangle) {
	if dst.Intersect(r.clip).Empty() || dst.Dx() == 0 {
		return
	}
	dpmm := float64(img.Bounds().Dx()) / (float64(dst.Dx()) * mmPerPx)
	r.ctx.DrawImage(r.x(float64(dst.Min.X)), r.y(float64(dst.Max.Y)), img, canvas.DPMM(dpmm))
}
