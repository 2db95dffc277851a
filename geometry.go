package plotview

import (
	"fmt"
	"image"
	"math"

	"github.com/paulmach/orb"
)

// Epsilon is the tolerance used for comparing coordinates.
var Epsilon = 1e-10

func equal(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

////////////////////////////////////////////////////////////////

// Point is a coordinate in data or plot space.
type Point struct {
	X, Y float64
}

// Equals returns true if P and Q are equal with tolerance Epsilon.
func (p Point) Equals(q Point) bool {
	return equal(p.X, q.X) && equal(p.Y, q.Y)
}

// Add adds Q to P.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub subtracts Q from P.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Rot rotates P by phi radians CCW around P0.
func (p Point) Rot(phi float64, p0 Point) Point {
	sinphi, cosphi := math.Sincos(phi)
	return Point{
		p0.X + cosphi*(p.X-p0.X) - sinphi*(p.Y-p0.Y),
		p0.Y + sinphi*(p.X-p0.X) + cosphi*(p.Y-p0.Y),
	}
}

func (p Point) String() string {
	return fmt.Sprintf("[%g; %g]", p.X, p.Y)
}

////////////////////////////////////////////////////////////////

// Box is an axis-aligned bounding box. The zero Box is empty.
type Box struct {
	MinX, MaxX, MinY, MaxY float64
}

// EmptyBox returns a box that is the identity for Union.
func EmptyBox() Box {
	return Box{math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)}
}

// Valid returns true if the box has finite bounds and a non-zero span on both axes.
func (b Box) Valid() bool {
	return finite(b.MinX) && finite(b.MaxX) && finite(b.MinY) && finite(b.MaxY) && b.MinX < b.MaxX && b.MinY < b.MaxY
}

// Empty returns true if the box contains no point.
func (b Box) Empty() bool {
	return !(b.MinX <= b.MaxX && b.MinY <= b.MaxY)
}

// W returns the width.
func (b Box) W() float64 {
	return b.MaxX - b.MinX
}

// H returns the height.
func (b Box) H() float64 {
	return b.MaxY - b.MinY
}

// Translate moves the box.
func (b Box) Translate(dx, dy float64) Box {
	return Box{b.MinX + dx, b.MaxX + dx, b.MinY + dy, b.MaxY + dy}
}

// Union returns the smallest box enclosing both boxes.
func (b Box) Union(q Box) Box {
	if q.Empty() {
		return b
	} else if b.Empty() {
		return q
	}
	return boxFromBound(b.bound().Union(q.bound()))
}

// Contains returns true if the point lies within the box, borders included.
func (b Box) Contains(p Point) bool {
	return b.bound().Contains(orb.Point{p.X, p.Y})
}

// Center returns the center of the box.
func (b Box) Center() Point {
	c := b.bound().Center()
	return Point{c[0], c[1]}
}

func (b Box) bound() orb.Bound {
	return orb.Bound{Min: orb.Point{b.MinX, b.MinY}, Max: orb.Point{b.MaxX, b.MaxY}}
}

func (b Box) String() string {
	return fmt.Sprintf("[%g; %g]x[%g; %g]", b.MinX, b.MaxX, b.MinY, b.MaxY)
}

func boxFromBound(b orb.Bound) Box {
	return Box{b.Min[0], b.Max[0], b.Min[1], b.Max[1]}
}

// boundsBuilder accumulates the bounding box of a stream of points, skipping non-finite values.
type boundsBuilder struct {
	b     orb.Bound
	empty bool
}

func newBoundsBuilder() boundsBuilder {
	return boundsBuilder{empty: true}
}

func (bb *boundsBuilder) Add(x, y float64) {
	if !finite(x) || !finite(y) {
		return
	}
	if bb.empty {
		bb.b = orb.Bound{Min: orb.Point{x, y}, Max: orb.Point{x, y}}
		bb.empty = false
		return
	}
	bb.b = bb.b.Extend(orb.Point{x, y})
}

func (bb *boundsBuilder) Box() Box {
	if bb.empty {
		return EmptyBox()
	}
	return boxFromBound(bb.b)
}

////////////////////////////////////////////////////////////////

// pixel converts a fractional pixel coordinate to the integer pixel containing it.
func pixel(f float64) int {
	if f < -1e9 {
		return -1e9
	} else if 1e9 < f {
		return 1e9
	}
	return int(math.Floor(f))
}

// unionRect is image.Rectangle.Union that treats a zero rectangle as empty but keeps single pixel rectangles.
func unionRect(r, q image.Rectangle) image.Rectangle {
	if r == (image.Rectangle{}) {
		return q
	} else if q == (image.Rectangle{}) {
		return r
	}
	return r.Union(q)
}
