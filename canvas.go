package plotview

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// PenStyle is the dash style of a pen.
type PenStyle int

// see PenStyle
const (
	SolidLine PenStyle = iota
	DashedLine
	DottedLine
)

// Pen is used to stroke points and lines.
type Pen struct {
	Color color.Color
	Width int
	Style PenStyle
}

// BrushStyle is the fill style of a brush.
type BrushStyle int

// see BrushStyle
const (
	SolidFill BrushStyle = iota
	TransparentFill
)

// Brush is used to fill rectangles.
type Brush struct {
	Color color.Color
	Style BrushStyle
}

// Font describes the text appearance. Size is in points, sinks map it to their own units.
type Font struct {
	Family string
	Size   float64
	Color  color.Color
}

// DefaultPen is a black solid pen of one pixel.
var DefaultPen = Pen{Color: Black, Width: 1}

// GridPen is a light dotted pen used for axis gridlines.
var GridPen = Pen{Color: LightGray, Width: 1, Style: DottedLine}

// DefaultFont is the font used when a layer has no font set.
var DefaultFont = Font{Family: "sans-serif", Size: 10.0, Color: Black}

// Canvas is the drawing sink the layers draw to. All coordinates are in pixels with the origin in the top-left corner.
type Canvas interface {
	SetPen(Pen)
	SetBrush(Brush)
	SetFont(Font)
	DrawPoint(x, y int)
	DrawLine(x0, y0, x1, y1 int)
	DrawLines(points []image.Point)
	DrawRectangle(x, y, w, h int)
	DrawText(text string, x, y int)
	TextExtent(text string) (int, int)
	SetClippingRegion(image.Rectangle)
	ClearClippingRegion()
}

// ImageDrawer is implemented by canvases that can draw bitmaps.
type ImageDrawer interface {
	DrawImage(img image.Image, dst image.Rectangle)
}

////////////////////////////////////////////////////////////////

// OpType is the type of a recorded canvas operation.
type OpType int

// see OpType
const (
	PenOp OpType = iota
	BrushOp
	FontOp
	PointOp
	LineOp
	LinesOp
	RectangleOp
	TextOp
	ClipOp
	UnclipOp
	ImageOp
)

// IsPrimitive returns true for operations that draw.
func (t OpType) IsPrimitive() bool {
	return t == PointOp || t == LineOp || t == LinesOp || t == RectangleOp || t == TextOp || t == ImageOp
}

// Op is a recorded canvas operation.
type Op struct {
	Type   OpType
	Points []image.Point // PointOp, LineOp, LinesOp; text position for TextOp
	Rect   image.Rectangle
	Text   string
	Pen    Pen
	Brush  Brush
	Font   Font
	Image  image.Image
}

// Recorder is a Canvas that records all operations, so they can be inspected or replayed on another canvas. Text is measured with a 7x13 fixed-width face.
type Recorder struct {
	Ops  []Op
	face font.Face
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{face: basicfont.Face7x13}
}

// Reset removes all recorded operations.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}

// Primitives returns the number of recorded drawing operations.
func (r *Recorder) Primitives() int {
	n := 0
	for _, op := range r.Ops {
		if op.Type.IsPrimitive() {
			n++
		}
	}
	return n
}

// Count returns the number of recorded operations of the given type.
func (r *Recorder) Count(t OpType) int {
	n := 0
	for _, op := range r.Ops {
		if op.Type == t {
			n++
		}
	}
	return n
}

// Replay executes all recorded operations on the given canvas.
func (r *Recorder) Replay(c Canvas) {
	for _, op := range r.Ops {
		switch op.Type {
		case PenOp:
			c.SetPen(op.Pen)
		case BrushOp:
			c.SetBrush(op.Brush)
		case FontOp:
			c.SetFont(op.Font)
		case PointOp:
			c.DrawPoint(op.Points[0].X, op.Points[0].Y)
		case LineOp:
			c.DrawLine(op.Points[0].X, op.Points[0].Y, op.Points[1].X, op.Points[1].Y)
		case LinesOp:
			c.DrawLines(op.Points)
		case RectangleOp:
			c.DrawRectangle(op.Rect.Min.X, op.Rect.Min.Y, op.Rect.Dx(), op.Rect.Dy())
		case TextOp:
			c.DrawText(op.Text, op.Points[0].X, op.Points[0].Y)
		case ClipOp:
			c.SetClippingRegion(op.Rect)
		case UnclipOp:
			c.ClearClippingRegion()
		case ImageOp:
			if d, ok := c.(ImageDrawer); ok {
				d.DrawImage(op.Image, op.Rect)
			}
		}
	}
}

func (r *Recorder) SetPen(pen Pen) {
	r.Ops = append(r.Ops, Op{Type: PenOp, Pen: pen})
}

func (r *Recorder) SetBrush(brush Brush) {
	r.Ops = append(r.Ops, Op{Type: BrushOp, Brush: brush})
}

func (r *Recorder) SetFont(f Font) {
	r.Ops = append(r.Ops, Op{Type: FontOp, Font: f})
}

func (r *Recorder) DrawPoint(x, y int) {
	r.Ops = append(r.Ops, Op{Type: PointOp, Points: []image.Point{{x, y}}})
}

func (r *Recorder) DrawLine(x0, y0, x1, y1 int) {
	r.Ops = append(r.Ops, Op{Type: LineOp, Points: []image.Point{{x0, y0}, {x1, y1}}})
}

func (r *Recorder) DrawLines(points []image.Point) {
	r.Ops = append(r.Ops, Op{Type: LinesOp, Points: append([]image.Point{}, points...)})
}

func (r *Recorder) DrawRectangle(x, y, w, h int) {
	r.Ops = append(r.Ops, Op{Type: RectangleOp, Rect: image.Rect(x, y, x+w, y+h)})
}

func (r *Recorder) DrawText(text string, x, y int) {
	r.Ops = append(r.Ops, Op{Type: TextOp, Text: text, Points: []image.Point{{x, y}}})
}

func (r *Recorder) TextExtent(text string) (int, int) {
	w := font.MeasureString(r.face, text)
	return w.Ceil(), r.face.Metrics().Height.Ceil()
}

func (r *Recorder) SetClippingRegion(rect image.Rectangle) {
	r.Ops = append(r.Ops, Op{Type: ClipOp, Rect: rect})
}

func (r *Recorder) ClearClippingRegion() {
	r.Ops = append(r.Ops, Op{Type: UnclipOp})
}

func (r *Recorder) DrawImage(img image.Image, dst image.Rectangle) {
	r.Ops = append(r.Ops, Op{Type: ImageOp, Image: img, Rect: dst})
}
