package plotview

import (
	"context"
	"image"
	"math"
)

// ellipseSegments is the number of vertices used to approximate an ellipse.
const ellipseSegments = 64

// Line returns a line from (0,0) to (x,y).
func Line(x, y float64) []Point {
	return []Point{{0.0, 0.0}, {x, y}}
}

// Rectangle returns a rectangle of width w and height h with its origin in the lower-left corner.
func Rectangle(w, h float64) []Point {
	if equal(w, 0.0) || equal(h, 0.0) {
		return nil
	}
	return []Point{{0.0, 0.0}, {w, 0.0}, {w, h}, {0.0, h}}
}

// Circle returns a circle of radius r centered at the origin.
func Circle(r float64) []Point {
	return Ellipse(r, r)
}

// Ellipse returns an ellipse of radii rx and ry centered at the origin, approximated by a polygon.
func Ellipse(rx, ry float64) []Point {
	if equal(rx, 0.0) || equal(ry, 0.0) {
		return nil
	}
	ps := make([]Point, ellipseSegments)
	for i := range ps {
		sintheta, costheta := math.Sincos(2.0 * math.Pi * float64(i) / ellipseSegments)
		ps[i] = Point{rx * costheta, ry * sintheta}
	}
	return ps
}

// RegularPolygon returns a regular polygon with radius r using n vertices. n must be 3 or more. The up boolean defines whether the first point will point north or not.
func RegularPolygon(n int, r float64, up bool) []Point {
	return RegularStarPolygon(n, 1, r, up)
}

// RegularStarPolygon returns a regular star polygon with radius r using n vertices of density d. n must be 3 or more and d 1 or more.
func RegularStarPolygon(n, d int, r float64, up bool) []Point {
	if n < 3 || d < 1 || n == d*2 || equal(r, 0.0) {
		return nil
	}

	dtheta := 2.0 * math.Pi / float64(n)
	theta0 := 0.5 * math.Pi
	if !up {
		theta0 += dtheta / 2.0
	}

	ps := []Point{}
	for i := 0; i == 0 || i%n != 0; i += d {
		sintheta, costheta := math.Sincos(theta0 + float64(i)*dtheta)
		ps = append(ps, Point{r * costheta, r * sintheta})
	}
	return ps
}

// StarPolygon returns a star polygon of n points with alternating radius R and r. The up boolean defines whether the first point (true) or second point (false) will be pointing north.
func StarPolygon(n int, R, r float64, up bool) []Point {
	if n < 3 || equal(R, 0.0) || equal(r, 0.0) {
		return nil
	}

	n *= 2
	dtheta := 2.0 * math.Pi / float64(n)
	theta0 := 0.5 * math.Pi
	if !up {
		theta0 += dtheta
	}

	ps := make([]Point, n)
	for i := range ps {
		sintheta, costheta := math.Sincos(theta0 + float64(i)*dtheta)
		if i%2 == 0 {
			ps[i] = Point{R * costheta, R * sintheta}
		} else {
			ps[i] = Point{r * costheta, r * sintheta}
		}
	}
	return ps
}

////////////////////////////////////////////////////////////////

// MovableShape is a layer drawing an outline given in data units relative to a position, so that it can be moved and rotated without changing its points.
type MovableShape struct {
	LayerBase
	Points []Point
	Closed bool

	pos          Point
	rot          float64 // in degrees
	xAxis, yAxis *Axis
}

// NewMovableShape returns a closed shape layer at the origin.
func NewMovableShape(name string, points []Point, x, y *Axis) *MovableShape {
	s := &MovableShape{
		LayerBase: newLayerBase(name, MovableShapeLayer),
		Points:    points,
		Closed:    true,
		xAxis:     orIdentity(x, XAxis),
		yAxis:     orIdentity(y, YAxis),
	}
	s.ShowName = false
	return s
}

// Position returns the position of the shape's origin in data coordinates.
func (s *MovableShape) Position() Point {
	return s.pos
}

// SetPosition moves the shape's origin to p.
func (s *MovableShape) SetPosition(p Point) {
	s.pos = p
}

// Rotation returns the rotation in degrees.
func (s *MovableShape) Rotation() float64 {
	return s.rot
}

// SetRotation rotates the shape counter clockwise around its origin by rot degrees.
func (s *MovableShape) SetRotation(rot float64) {
	s.rot = rot
}

// Vertices returns the points of the shape in data coordinates.
func (s *MovableShape) Vertices() []Point {
	ps := make([]Point, len(s.Points))
	for i, p := range s.Points {
		if s.rot != 0.0 {
			p = p.Rot(s.rot*math.Pi/180.0, Point{})
		}
		ps[i] = p.Add(s.pos)
	}
	return ps
}

// DataBounds returns the bounding box of the vertices.
func (s *MovableShape) DataBounds() (Box, bool) {
	bb := newBoundsBuilder()
	for _, p := range s.Vertices() {
		bb.Add(p.X, p.Y)
	}
	b := bb.Box()
	return b, !b.Empty()
}

// Axes returns the X and Y axis.
func (s *MovableShape) Axes() (*Axis, *Axis) {
	return s.xAxis, s.yAxis
}

// Draw draws the outline.
func (s *MovableShape) Draw(ctx context.Context, c Canvas, v *Viewport) error {
	ps := s.Vertices()
	if len(ps) == 0 {
		return nil
	}
	coords := make([]image.Point, 0, len(ps)+1)
	for _, p := range ps {
		px := v.PlotToScreenX(s.xAxis.TransformToPlot(p.X))
		py := v.PlotToScreenY(s.yAxis.TransformToPlot(p.Y))
		if !finite(px) || !finite(py) {
			return nil
		}
		coords = append(coords, image.Point{pixel(px), pixel(py)})
	}
	if s.Closed && 2 < len(coords) {
		coords = append(coords, coords[0])
	}

	defer s.clip(c, v)()
	c.SetPen(s.Pen)
	if len(coords) == 1 {
		c.DrawPoint(coords[0].X, coords[0].Y)
	} else {
		c.DrawLines(coords)
	}
	return nil
}
