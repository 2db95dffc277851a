// Package rasterizer is a plotview Canvas drawing anti-aliased primitives into a draw.Image.
package rasterizer

import (
	"context"
	"image"
	"image/color"
	"math"

	"github.com/tdewolff/plotview"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Options are the rasterizer options.
type Options struct {
	// Background fills the image before a Composer is drawn by Draw, nil leaves it untouched.
	Background color.Color

	// Face overrides the font faces derived from the layer fonts.
	Face font.Face
}

// DefaultOptions are the default options.
var DefaultOptions = Options{
	Background: plotview.White,
}

// Draw renders the composer on a new image of its screen size.
func Draw(ctx context.Context, c *plotview.Composer, opts *Options) (*image.RGBA, error) {
	if opts == nil {
		defaultOptions := DefaultOptions
		opts = &defaultOptions
	}
	w, h := c.Viewport().ScreenSize()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	ras := New(img, opts)
	if opts.Background != nil {
		draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)
	}
	err := c.Redraw(ctx, ras)
	return img, err
}

// Rasterizer is a rasterizing canvas.
type Rasterizer struct {
	img  draw.Image
	opts Options

	pen   plotview.Pen
	brush plotview.Brush
	font  plotview.Font
	clip  image.Rectangle
	ras   *vector.Rasterizer

	faces   map[float64]font.Face
	dashPos float64
}

// New returns a canvas that draws to a rasterized image.
func New(img draw.Image, opts *Options) *Rasterizer {
	if opts == nil {
		defaultOptions := DefaultOptions
		opts = &defaultOptions
	}
	return &Rasterizer{
		img:   img,
		opts:  *opts,
		pen:   plotview.DefaultPen,
		font:  plotview.DefaultFont,
		clip:  img.Bounds(),
		ras:   vector.NewRasterizer(0, 0),
		faces: map[float64]font.Face{},
	}
}

// Image returns the destination image.
func (r *Rasterizer) Image() draw.Image {
	return r.img
}

func (r *Rasterizer) SetPen(pen plotview.Pen) {
	r.pen = pen
}

func (r *Rasterizer) SetBrush(brush plotview.Brush) {
	r.brush = brush
}

func (r *Rasterizer) SetFont(f plotview.Font) {
	r.font = f
}

func (r *Rasterizer) SetClippingRegion(rect image.Rectangle) {
	r.clip = rect.Intersect(r.img.Bounds())
}

func (r *Rasterizer) ClearClippingRegion() {
	r.clip = r.img.Bounds()
}

func (r *Rasterizer) penWidth() float64 {
	return float64(max(r.pen.Width, 1))
}

func (r *Rasterizer) penColor() color.Color {
	if r.pen.Color == nil {
		return plotview.Black
	}
	return r.pen.Color
}

// dashes returns the on and off lengths in pixels, zero for solid lines.
func (r *Rasterizer) dashes() (float64, float64) {
	w := r.penWidth()
	switch r.pen.Style {
	case plotview.DashedLine:
		return 4.0 * w, 3.0 * w
	case plotview.DottedLine:
		return w, 2.0 * w
	}
	return 0.0, 0.0
}

func (r *Rasterizer) DrawPoint(x, y int) {
	w := max(r.pen.Width, 1)
	x -= (w - 1) / 2
	y -= (w - 1) / 2
	rect := image.Rect(x, y, x+w, y+w).Intersect(r.clip)
	if !rect.Empty() {
		draw.Draw(r.img, rect, image.NewUniform(r.penColor()), image.Point{}, draw.Over)
	}
}

func (r *Rasterizer) DrawLine(x0, y0, x1, y1 int) {
	r.dashPos = 0.0
	if x0 == x1 && y0 == y1 {
		r.DrawPoint(x0, y0)
		return
	}
	r.strokeDashed(float64(x0)+0.5, float64(y0)+0.5, float64(x1)+0.5, float64(y1)+0.5)
}

func (r *Rasterizer) DrawLines(points []image.Point) {
	r.dashPos = 0.0
	if len(points) == 1 {
		r.DrawPoint(points[0].X, points[0].Y)
		return
	}
	for i := 1; i < len(points); i++ {
		p0, p1 := points[i-1], points[i]
		if p0 == p1 {
			continue
		}
		r.strokeDashed(float64(p0.X)+0.5, float64(p0.Y)+0.5, float64(p1.X)+0.5, float64(p1.Y)+0.5)
	}
}

// strokeDashed strokes the segment, continuing the dash pattern from the previous segment.
func (r *Rasterizer) strokeDashed(x0, y0, x1, y1 float64) {
	on, off := r.dashes()
	if on == 0.0 {
		r.stroke(x0, y0, x1, y1)
		return
	}

	length := math.Hypot(x1-x0, y1-y0)
	dx, dy := (x1-x0)/length, (y1-y0)/length
	period := on + off
	t := 0.0
	for t < length {
		pos := math.Mod(r.dashPos, period)
		var n float64
		if pos < on {
			n = math.Min(on-pos, length-t)
			r.stroke(x0+dx*t, y0+dy*t, x0+dx*(t+n), y0+dy*(t+n))
		} else {
			n = math.Min(period-pos, length-t)
		}
		t += n
		r.dashPos += n
	}
}

// stroke fills the rectangle covering the segment with the pen width, extended by half the width at both ends.
func (r *Rasterizer) stroke(x0, y0, x1, y1 float64) {
	hw := r.penWidth() / 2.0
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length == 0.0 {
		dx, dy, length = 1.0, 0.0, 1.0
	}
	dx, dy = dx/length*hw, dy/length*hw // along the segment
	nx, ny := -dy, dx                    // normal

	quad := [4][2]float64{
		{x0 - dx + nx, y0 - dy + ny},
		{x1 + dx + nx, y1 + dy + ny},
		{x1 + dx - nx, y1 + dy - ny},
		{x0 - dx - nx, y0 - dy - ny},
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range quad {
		minX, maxX = math.Min(minX, p[0]), math.Max(maxX, p[0])
		minY, maxY = math.Min(minY, p[1]), math.Max(maxY, p[1])
	}
	bounds := image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX)), int(math.Ceil(maxY)))
	rect := bounds.Intersect(r.clip)
	if rect.Empty() {
		return
	}

	ox, oy := float64(rect.Min.X), float64(rect.Min.Y)
	r.ras.Reset(rect.Dx(), rect.Dy())
	r.ras.MoveTo(float32(quad[0][0]-ox), float32(quad[0][1]-oy))
	for _, p := range quad[1:] {
		r.ras.LineTo(float32(p[0]-ox), float32(p[1]-oy))
	}
	r.ras.ClosePath()
	r.ras.Draw(r.img, rect, image.NewUniform(r.penColor()), image.Point{})
}

func (r *Rasterizer) DrawRectangle(x, y, w, h int) {
	rect := image.Rect(x, y, x+w, y+h)
	if r.brush.Style == plotview.SolidFill && r.brush.Color != nil {
		if fill := rect.Intersect(r.clip); !fill.Empty() {
			draw.Draw(r.img, fill, image.NewUniform(r.brush.Color), image.Point{}, draw.Over)
		}
	}
	if 0 < r.pen.Width && r.pen.Color != nil {
		r.DrawLines([]image.Point{
			{x, y},
			{x + w - 1, y},
			{x + w - 1, y + h - 1},
			{x, y + h - 1},
			{x, y},
		})
	}
}

// face returns the font face for the current font size.
func (r *Rasterizer) face() font.Face {
	if r.opts.Face != nil {
		return r.opts.Face
	}
	size := r.font.Size
	if size <= 0.0 {
		size = plotview.DefaultFont.Size
	}
	if face, ok := r.faces[size]; ok {
		return face
	}

	var face font.Face = basicfont.Face7x13
	if f, err := opentype.Parse(goregular.TTF); err == nil {
		if otf, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 96.0, Hinting: font.HintingFull}); err == nil {
			face = otf
		}
	}
	r.faces[size] = face
	return face
}

func (r *Rasterizer) TextExtent(text string) (int, int) {
	face := r.face()
	m := face.Metrics()
	return font.MeasureString(face, text).Ceil(), (m.Ascent + m.Descent).Ceil()
}

func (r *Rasterizer) DrawText(text string, x, y int) {
	dst := r.img
	if sub, ok := r.img.(interface {
		SubImage(image.Rectangle) image.Image
	}); ok {
		if d, ok := sub.SubImage(r.clip).(draw.Image); ok {
			dst = d
		}
	}

	var col color.Color = plotview.Black
	if r.font.Color != nil {
		col = r.font.Color
	}
	face := r.face()
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y) + face.Metrics().Ascent},
	}
	d.DrawString(text)
}

// DrawImage scales the image into the destination rectangle.
func (r *Rasterizer) DrawImage(img image.Image, dst image.Rectangle) {
	if dst.Intersect(r.clip).Empty() {
		return
	}
	target := r.img
	if sub, ok := r.img.(interface {
		SubImage(image.Rectangle) image.Image
	}); ok {
		if d, ok := sub.SubImage(r.clip).(draw.Image); ok {
			target = d
		}
	}
	draw.CatmullRom.Scale(target, dst, img, img.Bounds(), draw.Over, nil)
}
