package plotview

import (
	"image"
	"testing"

	"github.com/tdewolff/test"
)

func TestRecorder(t *testing.T) {
	rec := NewRecorder()
	w, h := rec.TextExtent("abc")
	test.T(t, w, 21)
	test.T(t, h, 13)

	rec.SetPen(DefaultPen)
	rec.SetBrush(Brush{Color: Red})
	rec.SetFont(DefaultFont)
	rec.SetClippingRegion(image.Rect(0, 0, 10, 10))
	rec.DrawPoint(1, 2)
	rec.DrawLine(0, 0, 5, 5)
	rec.DrawLines([]image.Point{{0, 0}, {1, 1}, {2, 0}})
	rec.DrawRectangle(1, 2, 3, 4)
	rec.DrawText("abc", 4, 5)
	rec.DrawImage(image.NewGray(image.Rect(0, 0, 1, 1)), image.Rect(0, 0, 2, 2))
	rec.ClearClippingRegion()

	test.T(t, len(rec.Ops), 11)
	test.T(t, rec.Primitives(), 6)
	test.T(t, rec.Count(LineOp), 1)
	test.T(t, rec.Ops[7].Rect, image.Rect(1, 2, 4, 6))

	dst := NewRecorder()
	rec.Replay(dst)
	test.T(t, len(dst.Ops), len(rec.Ops))
	for i := range rec.Ops {
		test.T(t, dst.Ops[i].Type, rec.Ops[i].Type)
		test.T(t, dst.Ops[i].Points, rec.Ops[i].Points)
		test.T(t, dst.Ops[i].Rect, rec.Ops[i].Rect)
		test.String(t, dst.Ops[i].Text, rec.Ops[i].Text)
	}

	// canvases without image support skip bitmaps
	dst.Reset()
	rec.Replay(struct{ Canvas }{dst})
	test.T(t, len(dst.Ops), len(rec.Ops)-1)

	rec.Reset()
	test.T(t, rec.Primitives(), 0)
}

func TestOpType(t *testing.T) {
	test.That(t, LinesOp.IsPrimitive())
	test.That(t, ImageOp.IsPrimitive())
	test.That(t, !PenOp.IsPrimitive())
	test.That(t, !ClipOp.IsPrimitive())
}
