// Package svg is a plotview Canvas streaming scalable vector graphics to a writer.
package svg

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/tdewolff/plotview"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

type Options struct {
	Compression int
	EmbedImages bool
	FontFamily  string
}

var DefaultOptions = Options{
	EmbedImages: true,
	FontFamily:  "sans-serif",
}

// SVG is a scalable vector graphics canvas. Coordinates are in pixels, lines are drawn through pixel centers.
type SVG struct {
	w             io.Writer
	width, height int
	opts          *Options
	classes       []string

	pen    plotview.Pen
	brush  plotview.Brush
	font   plotview.Font
	clipID int
	clips  int
	faces  map[float64]font.Face
	err    error
}

// New returns a scalable vector graphics (SVG) canvas of the given size in pixels.
func New(w io.Writer, width, height int, opts *Options) *SVG {
	if opts == nil {
		defaultOptions := DefaultOptions
		opts = &defaultOptions
	}

	if opts.Compression != 0 {
		if opts.Compression < gzip.HuffmanOnly || gzip.BestCompression < opts.Compression {
			opts.Compression = -1
		}
		w, _ = gzip.NewWriterLevel(w, opts.Compression)
	}

	r := &SVG{
		w:      w,
		width:  width,
		height: height,
		opts:   opts,
		pen:    plotview.DefaultPen,
		font:   plotview.DefaultFont,
		faces:  map[float64]font.Face{},
	}
	r.printf(`<svg version="1.1" width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink">`, width, height, width, height)
	return r
}

// Close finishes and closes the SVG, it returns the first write error.
func (r *SVG) Close() error {
	for 0 < r.clips {
		r.ClearClippingRegion()
	}
	r.printf("</svg>")
	if r.opts.Compression != 0 {
		r.w.(*gzip.Writer).Close() // does not close underlying writer
	}
	return r.err
}

func (r *SVG) printf(format string, args ...any) {
	if r.err == nil {
		_, r.err = fmt.Fprintf(r.w, format, args...)
	}
}

func (r *SVG) writeClasses() {
	if len(r.classes) != 0 {
		r.printf(` class="%s"`, strings.Join(r.classes, " "))
	}
}

// SetClass sets the classes to be assigned to drawn objects.
func (r *SVG) SetClass(classes ...string) {
	r.classes = classes
}

// AddClass adds a class to the class list.
func (r *SVG) AddClass(class string) {
	if class == "" {
		return
	}
	for _, c := range r.classes {
		if c == class {
			return
		}
	}
	r.classes = append(r.classes, class)
}

// RemoveClass removes a class from the class list.
func (r *SVG) RemoveClass(class string) {
	for i, c := range r.classes {
		if c == class {
			r.classes = append(r.classes[:i], r.classes[i+1:]...)
			return
		}
	}
}

func (r *SVG) SetPen(pen plotview.Pen) {
	r.pen = pen
}

func (r *SVG) SetBrush(brush plotview.Brush) {
	r.brush = brush
}

func (r *SVG) SetFont(f plotview.Font) {
	r.font = f
}

func (r *SVG) SetClippingRegion(rect image.Rectangle) {
	r.clipID++
	r.clips++
	r.printf(`<clipPath id="clip%d"><rect x="%d" y="%d" width="%d" height="%d"/></clipPath><g clip-path="url(#clip%d)">`, r.clipID, rect.Min.X, rect.Min.Y, rect.Dx(), rect.Dy(), r.clipID)
}

func (r *SVG) ClearClippingRegion() {
	if r.clips == 0 {
		return
	}
	r.clips--
	r.printf("</g>")
}

func (r *SVG) penWidth() int {
	return max(r.pen.Width, 1)
}

func (r *SVG) writeStroke() {
	col, opacity := colorAttr(r.pen.Color)
	r.printf(` fill="none" stroke="%s"`, col)
	if opacity < 1.0 {
		r.printf(` stroke-opacity="%v"`, dec(opacity))
	}
	if w := r.penWidth(); w != 1 {
		r.printf(` stroke-width="%d"`, w)
	}
	switch r.pen.Style {
	case plotview.DashedLine:
		r.printf(` stroke-dasharray="%d %d"`, 4*r.penWidth(), 3*r.penWidth())
	case plotview.DottedLine:
		r.printf(` stroke-dasharray="%d %d"`, r.penWidth(), 2*r.penWidth())
	}
	r.printf(` stroke-linecap="square"`)
	r.writeClasses()
}

func (r *SVG) DrawPoint(x, y int) {
	w := r.penWidth()
	x -= (w - 1) / 2
	y -= (w - 1) / 2
	col, opacity := colorAttr(r.pen.Color)
	r.printf(`<rect x="%d" y="%d" width="%d" height="%d" fill="%s"`, x, y, w, w, col)
	if opacity < 1.0 {
		r.printf(` fill-opacity="%v"`, dec(opacity))
	}
	r.writeClasses()
	r.printf("/>")
}

func (r *SVG) DrawLine(x0, y0, x1, y1 int) {
	if x0 == x1 && y0 == y1 {
		r.DrawPoint(x0, y0)
		return
	}
	r.printf(`<path d="M%v %vL%v %v"`, num(float64(x0)+0.5), num(float64(y0)+0.5), num(float64(x1)+0.5), num(float64(y1)+0.5))
	r.writeStroke()
	r.printf("/>")
}

func (r *SVG) DrawLines(points []image.Point) {
	if len(points) == 0 {
		return
	} else if len(points) == 1 {
		r.DrawPoint(points[0].X, points[0].Y)
		return
	}
	r.printf(`<polyline points="`)
	for i, p := range points {
		if i != 0 {
			r.printf(" ")
		}
		r.printf("%v,%v", num(float64(p.X)+0.5), num(float64(p.Y)+0.5))
	}
	r.printf(`"`)
	r.writeStroke()
	r.printf("/>")
}

func (r *SVG) DrawRectangle(x, y, w, h int) {
	r.printf(`<rect x="%v" y="%v" width="%d" height="%d"`, num(float64(x)+0.5), num(float64(y)+0.5), max(w-1, 0), max(h-1, 0))
	if r.brush.Style == plotview.SolidFill && r.brush.Color != nil {
		col, opacity := colorAttr(r.brush.Color)
		r.printf(` fill="%s"`, col)
		if opacity < 1.0 {
			r.printf(` fill-opacity="%v"`, dec(opacity))
		}
	} else {
		r.printf(` fill="none"`)
	}
	if 0 < r.pen.Width && r.pen.Color != nil {
		col, _ := colorAttr(r.pen.Color)
		r.printf(` stroke="%s"`, col)
		if r.pen.Width != 1 {
			r.printf(` stroke-width="%d"`, r.pen.Width)
		}
	}
	r.writeClasses()
	r.printf("/>")
}

func (r *SVG) fontSize() float64 {
	if r.font.Size <= 0.0 {
		return plotview.DefaultFont.Size
	}
	return r.font.Size
}

// face returns the face used to measure text, the Go Regular font at the current size.
func (r *SVG) face() font.Face {
	size := r.fontSize()
	if face, ok := r.faces[size]; ok {
		return face
	}
	var face font.Face
	if f, err := opentype.Parse(goregular.TTF); err == nil {
		face, _ = opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 96.0})
	}
	r.faces[size] = face
	return face
}

func (r *SVG) TextExtent(text string) (int, int) {
	face := r.face()
	if face == nil {
		px := r.fontSize() * 96.0 / 72.0
		return int(0.6*px*float64(len([]rune(text))) + 0.5), int(1.2*px + 0.5)
	}
	m := face.Metrics()
	return font.MeasureString(face, text).Ceil(), (m.Ascent + m.Descent).Ceil()
}

func (r *SVG) DrawText(text string, x, y int) {
	family := r.opts.FontFamily
	if r.font.Family != "" {
		family = r.font.Family
	}
	ascent := r.fontSize() * 96.0 / 72.0 * 0.8
	if face := r.face(); face != nil {
		ascent = float64(face.Metrics().Ascent) / 64.0
	}

	col, opacity := colorAttr(r.font.Color)
	r.printf(`<text x="%d" y="%v" font-family="%s" font-size="%vpt"`, x, num(float64(y)+ascent), family, num(r.fontSize()))
	if col != "#000" {
		r.printf(` fill="%s"`, col)
	}
	if opacity < 1.0 {
		r.printf(` fill-opacity="%v"`, dec(opacity))
	}
	r.writeClasses()
	r.printf(">")
	if r.err == nil {
		r.err = xml.EscapeText(r.w, []byte(text))
	}
	r.printf("</text>")
}

// DrawImage embeds the image as a base64 encoded PNG, or draws its outline when images are not embedded.
func (r *SVG) DrawImage(img image.Image, dst image.Rectangle) {
	if !r.opts.EmbedImages {
		r.DrawRectangle(dst.Min.X, dst.Min.Y, dst.Dx(), dst.Dy())
		return
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		if r.err == nil {
			r.err = err
		}
		return
	}
	r.printf(`<image x="%d" y="%d" width="%d" height="%d" preserveAspectRatio="none" xlink:href="data:image/png;base64,%s"`, dst.Min.X, dst.Min.Y, dst.Dx(), dst.Dy(), base64.StdEncoding.EncodeToString(buf.Bytes()))
	r.writeClasses()
	r.printf("/>")
}
