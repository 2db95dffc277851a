package plotview

import (
	"context"
	"image"
	"math"
	"testing"

	"github.com/tdewolff/test"
)

func TestShapes(t *testing.T) {
	test.T(t, Line(2.0, 3.0), []Point{{0.0, 0.0}, {2.0, 3.0}})
	test.T(t, Rectangle(2.0, 1.0), []Point{{0.0, 0.0}, {2.0, 0.0}, {2.0, 1.0}, {0.0, 1.0}})
	test.T(t, len(Rectangle(0.0, 1.0)), 0)
	test.T(t, len(Circle(1.0)), ellipseSegments)
	test.T(t, len(Ellipse(1.0, 0.0)), 0)

	ps := RegularPolygon(4, 2.0, true)
	test.T(t, len(ps), 4)
	test.That(t, ps[0].Equals(Point{0.0, 2.0}), "first vertex points north:", ps[0])
	test.That(t, ps[1].Equals(Point{-2.0, 0.0}), "counter clockwise:", ps[1])

	ps = RegularPolygon(4, 1.0, false)
	test.Float(t, ps[0].X, -math.Sqrt2/2.0)
	test.Float(t, ps[0].Y, math.Sqrt2/2.0)
	test.T(t, len(RegularPolygon(2, 1.0, true)), 0)

	ps = RegularStarPolygon(5, 2, 1.0, true)
	test.T(t, len(ps), 5)
	test.T(t, len(RegularStarPolygon(6, 3, 1.0, true)), 0)

	ps = StarPolygon(5, 2.0, 1.0, true)
	test.T(t, len(ps), 10)
	test.That(t, ps[0].Equals(Point{0.0, 2.0}))
	for i, p := range ps {
		r := math.Hypot(p.X, p.Y)
		if i%2 == 0 {
			test.Float(t, r, 2.0)
		} else {
			test.Float(t, r, 1.0)
		}
	}
}

func TestMovableShapeVertices(t *testing.T) {
	s := NewMovableShape("s", []Point{{1.0, 0.0}, {0.0, 2.0}}, nil, nil)
	test.T(t, s.Kind(), MovableShapeLayer)
	test.That(t, !s.ShowName)

	s.SetPosition(Point{10.0, 20.0})
	test.T(t, s.Position(), Point{10.0, 20.0})
	test.T(t, s.Vertices(), []Point{{11.0, 20.0}, {10.0, 22.0}})

	s.SetRotation(90.0)
	test.Float(t, s.Rotation(), 90.0)
	vs := s.Vertices()
	test.That(t, vs[0].Equals(Point{10.0, 21.0}), "rotated:", vs[0])
	test.That(t, vs[1].Equals(Point{8.0, 20.0}), "rotated:", vs[1])

	box, ok := s.DataBounds()
	test.That(t, ok)
	test.Float(t, box.MinX, 8.0)
	test.Float(t, box.MaxX, 10.0)
	test.Float(t, box.MinY, 20.0)
	test.Float(t, box.MaxY, 21.0)

	s.Points = nil
	_, ok = s.DataBounds()
	test.That(t, !ok)
}

func TestMovableShapeDraw(t *testing.T) {
	v := NewViewport(100, 100, nil)
	test.Error(t, v.Fit(0.0, 10.0, 0.0, 10.0))
	s := NewMovableShape("rect", Rectangle(2.0, 1.0), nil, nil)
	s.SetPosition(Point{1.0, 1.0})

	rec := NewRecorder()
	test.Error(t, s.Draw(context.Background(), rec, v))
	test.T(t, rec.Count(ClipOp), 1)
	test.T(t, rec.Count(UnclipOp), 1)
	test.T(t, rec.Count(LinesOp), 1)
	for _, op := range rec.Ops {
		if op.Type == LinesOp {
			test.T(t, op.Points, []image.Point{{10, 90}, {30, 90}, {30, 80}, {10, 80}, {10, 90}})
		}
	}

	s.Closed = false
	rec.Reset()
	test.Error(t, s.Draw(context.Background(), rec, v))
	for _, op := range rec.Ops {
		if op.Type == LinesOp {
			test.T(t, len(op.Points), 4)
		}
	}

	s.Points = []Point{{0.0, 0.0}}
	rec.Reset()
	test.Error(t, s.Draw(context.Background(), rec, v))
	test.T(t, rec.Count(PointOp), 1)
}
