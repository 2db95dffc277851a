package plotview

import "image"

// Polyline is a list of pixel coordinates that form a connected line.
type Polyline struct {
	coords []image.Point
}

// Empty returns true if the polyline has no segment.
func (p *Polyline) Empty() bool {
	return len(p.coords) < 2
}

// Len returns the number of coordinates.
func (p *Polyline) Len() int {
	return len(p.coords)
}

// Add adds a new point to the polyline.
func (p *Polyline) Add(x, y int) *Polyline {
	p.coords = append(p.coords, image.Point{x, y})
	return p
}

// Reset removes all points while keeping the allocated memory.
func (p *Polyline) Reset() {
	p.coords = p.coords[:0]
}

// Coords returns the list of coordinates of the polyline.
func (p *Polyline) Coords() []image.Point {
	return p.coords
}

// Bounds returns the rectangle covering all pixels of the polyline.
func (p *Polyline) Bounds() image.Rectangle {
	if len(p.coords) == 0 {
		return image.Rectangle{}
	}
	r := image.Rectangle{p.coords[0], p.coords[0].Add(image.Point{1, 1})}
	for _, c := range p.coords[1:] {
		r = r.Union(image.Rectangle{c, c.Add(image.Point{1, 1})})
	}
	return r
}

// Compress removes repeated points and the interior points of horizontal runs, i.e. a point is dropped when it and both its neighbours share the same Y and it lies between them in X. Other collinear points are kept.
func (p *Polyline) Compress() *Polyline {
	q := p.coords[:0]
	for _, c := range p.coords {
		n := len(q)
		if 0 < n && q[n-1] == c {
			continue
		} else if 1 < n && q[n-2].Y == q[n-1].Y && q[n-1].Y == c.Y && (q[n-2].X <= q[n-1].X) == (q[n-1].X <= c.X) {
			q[n-1] = c
			continue
		}
		q = append(q, c)
	}
	p.coords = q
	return p
}
