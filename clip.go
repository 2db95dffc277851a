package plotview

import (
	"image"
	"math"
)

// ClipLine clips the segment to the pixels of r using the Liang-Barsky algorithm. It returns false if no part of the segment lies within r. It is used by canvases whose backend has no clipping.
func ClipLine(r image.Rectangle, p0, p1 image.Point) (image.Point, image.Point, bool) {
	if r.Empty() {
		return p0, p1, false
	}
	x0, y0 := float64(p0.X), float64(p0.Y)
	dx, dy := float64(p1.X-p0.X), float64(p1.Y-p0.Y)
	xmin, xmax := float64(r.Min.X), float64(r.Max.X-1)
	ymin, ymax := float64(r.Min.Y), float64(r.Max.Y-1)

	t0, t1 := 0.0, 1.0
	for _, pq := range [4][2]float64{
		{-dx, x0 - xmin},
		{dx, xmax - x0},
		{-dy, y0 - ymin},
		{dy, ymax - y0},
	} {
		p, q := pq[0], pq[1]
		if p == 0.0 {
			if q < 0.0 {
				return p0, p1, false
			}
			continue
		}
		t := q / p
		if p < 0.0 {
			if t1 < t {
				return p0, p1, false
			}
			t0 = math.Max(t0, t)
		} else {
			if t < t0 {
				return p0, p1, false
			}
			t1 = math.Min(t1, t)
		}
	}

	a, b := p0, p1
	if 0.0 < t0 {
		a = image.Point{int(math.Round(x0 + t0*dx)), int(math.Round(y0 + t0*dy))}
	}
	if t1 < 1.0 {
		b = image.Point{int(math.Round(x0 + t1*dx)), int(math.Round(y0 + t1*dy))}
	}
	return a, b, true
}

// ClipPolyline clips a connected line to the pixels of r and returns the visible runs.
func ClipPolyline(r image.Rectangle, points []image.Point) [][]image.Point {
	if len(points) == 1 {
		if points[0].In(r) {
			return [][]image.Point{{points[0]}}
		}
		return nil
	}

	var runs [][]image.Point
	var run []image.Point
	for i := 1; i < len(points); i++ {
		a, b, ok := ClipLine(r, points[i-1], points[i])
		if !ok {
			if run != nil {
				runs = append(runs, run)
				run = nil
			}
			continue
		}
		if run != nil && run[len(run)-1] == a {
			run = append(run, b)
			continue
		} else if run != nil {
			runs = append(runs, run)
		}
		run = []image.Point{a, b}
	}
	if run != nil {
		runs = append(runs, run)
	}
	return runs
}
