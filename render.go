package plotview

import (
	"context"
	"image"
	"log/slog"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
)

// cancelCheckInterval is the number of points between two checks of the context.
const cancelCheckInterval = 4096

// RenderStats reports what a SeriesRenderer did.
type RenderStats struct {
	Points     int             // input points read from the cursor
	Primitives int             // draw calls issued to the canvas
	Bounds     image.Rectangle // pixels covered by the drawn primitives
	Label      image.Rectangle // placement of the name label, zero if none
}

// SeriesRenderer converts series data to pixels and issues a number of draw calls that is bounded by the number of pixel columns rather than the number of points.
//
// In scatter mode, each pixel column emits one point for every distinct pixel row hit within it. In continuous mode, points falling in the same column are merged into a vertical segment spanning their rows, horizontal runs are compressed, and the line is drawn with a single polyline call.
type SeriesRenderer struct {
	Layer        *LayerBase
	XAxis, YAxis *Axis

	// Simplify is the area tolerance in square pixels of an additional Visvalingam-Whyatt simplification of continuous lines, zero disables it.
	Simplify float64

	rows  []int
	seen  map[int]struct{}
	line  Polyline
	stats RenderStats
}

// NewSeriesRenderer returns a renderer for the layer through the given axes.
func NewSeriesRenderer(l *LayerBase, x, y *Axis) *SeriesRenderer {
	return &SeriesRenderer{
		Layer: l,
		XAxis: x,
		YAxis: y,
		seen:  map[int]struct{}{},
	}
}

func (r *SeriesRenderer) toPixel(v *Viewport, x, y float64) (image.Point, bool) {
	px := v.PlotToScreenX(r.XAxis.TransformToPlot(x))
	py := v.PlotToScreenY(r.YAxis.TransformToPlot(y))
	if !finite(px) || !finite(py) {
		return image.Point{}, false
	}
	return image.Point{pixel(px), pixel(py)}, true
}

// Render draws the series and its name label. It stops early and returns the context error when the context is cancelled.
func (r *SeriesRenderer) Render(ctx context.Context, c Canvas, v *Viewport, data SeriesData) (RenderStats, error) {
	r.stats = RenderStats{}
	if err := ctx.Err(); err != nil {
		return r.stats, err
	}
	if r.seen == nil {
		r.seen = map[int]struct{}{}
	}

	restore := r.Layer.clip(c, v)
	c.SetPen(r.Layer.Pen)
	data.Rewind()

	var err error
	if r.Layer.Continuous {
		err = r.renderLines(ctx, c, v, data)
	} else {
		err = r.renderPoints(ctx, c, v, data)
	}
	restore()
	if err != nil {
		return r.stats, err
	}

	r.placeLabel(c, v)
	Logger().Debug("series rendered", slog.String("layer", r.Layer.Name()), slog.Int("points", r.stats.Points), slog.Int("primitives", r.stats.Primitives))
	return r.stats, nil
}

func (r *SeriesRenderer) cancelled(ctx context.Context) error {
	if r.stats.Points%cancelCheckInterval == 0 {
		return ctx.Err()
	}
	return nil
}

func (r *SeriesRenderer) addBounds(x0, y0, x1, y1 int) {
	rect := image.Rect(x0, y0, x1+1, y1+1)
	r.stats.Bounds = unionRect(r.stats.Bounds, rect)
}

func (r *SeriesRenderer) renderPoints(ctx context.Context, c Canvas, v *Viewport, data SeriesData) error {
	clip := !r.Layer.DrawOutsideMargins
	rect := v.PlotRect()
	wide := 1 < r.Layer.Pen.Width

	col, open := 0, false
	rows := r.rows[:0]
	flush := func() {
		for _, y := range rows {
			if wide {
				c.DrawLine(col, y, col, y)
			} else {
				c.DrawPoint(col, y)
			}
			r.stats.Primitives++
			r.addBounds(col, y, col, y)
		}
		rows = rows[:0]
		clear(r.seen)
	}

	for {
		x, y, ok := data.Next()
		if !ok {
			break
		}
		r.stats.Points++
		if err := r.cancelled(ctx); err != nil {
			flush()
			r.rows = rows
			return err
		}

		p, ok := r.toPixel(v, x, y)
		if !ok || clip && !p.In(rect) {
			continue
		}
		if !open || p.X != col {
			flush()
			col, open = p.X, true
		}
		if _, dup := r.seen[p.Y]; !dup {
			r.seen[p.Y] = struct{}{}
			rows = append(rows, p.Y)
		}
	}
	flush()
	r.rows = rows
	return nil
}

// column is the state of the pixel column currently accumulated in continuous mode.
type column struct {
	open        bool
	x           int
	first, last int
	minY, maxY  int
	count       int
}

func (r *SeriesRenderer) renderLines(ctx context.Context, c Canvas, v *Viewport, data SeriesData) error {
	r.line.Reset()
	var col column
	closeColumn := func() {
		if !col.open || col.count < 2 {
			return
		}
		if col.minY != col.maxY {
			c.DrawLine(col.x, col.minY, col.x, col.maxY)
			r.stats.Primitives++
			r.addBounds(col.x, col.minY, col.x, col.maxY)
		}
		if col.last != col.first {
			r.line.Add(col.x, col.last)
		}
	}
	flushLine := func() {
		closeColumn()
		col.open = false
		r.drawLine(c)
	}

	for {
		x, y, ok := data.Next()
		if !ok {
			break
		}
		r.stats.Points++
		if err := r.cancelled(ctx); err != nil {
			flushLine()
			return err
		}

		p, ok := r.toPixel(v, x, y)
		if !ok {
			flushLine() // gap in the data
			continue
		}
		if col.open && p.X == col.x {
			col.count++
			col.minY = min(col.minY, p.Y)
			col.maxY = max(col.maxY, p.Y)
			col.last = p.Y
			continue
		}
		closeColumn()
		col = column{open: true, x: p.X, first: p.Y, last: p.Y, minY: p.Y, maxY: p.Y, count: 1}
		r.line.Add(p.X, p.Y)
	}
	flushLine()
	return nil
}

func (r *SeriesRenderer) drawLine(c Canvas) {
	defer r.line.Reset()
	r.line.Compress()
	if 2 < r.line.Len() && 0.0 < r.Simplify {
		r.simplify()
	}

	coords := r.line.Coords()
	if len(coords) == 0 {
		return
	} else if len(coords) == 1 {
		c.DrawPoint(coords[0].X, coords[0].Y)
	} else {
		c.DrawLines(coords)
	}
	r.stats.Primitives++
	r.stats.Bounds = unionRect(r.stats.Bounds, r.line.Bounds())
}

func (r *SeriesRenderer) simplify() {
	coords := r.line.Coords()
	ls := make(orb.LineString, len(coords))
	for i, p := range coords {
		ls[i] = orb.Point{float64(p.X), float64(p.Y)}
	}
	ls, ok := simplify.VisvalingamThreshold(r.Simplify).Simplify(ls).(orb.LineString)
	if !ok {
		return
	}
	r.line.Reset()
	for _, p := range ls {
		r.line.Add(int(p[0]), int(p[1]))
	}
}

// labelRect returns the rectangle of the name label placed in the corner of the drawn bounds given by the name alignment, kept within the plot area.
func (r *SeriesRenderer) labelRect(c Canvas, v *Viewport) (image.Rectangle, bool) {
	name := r.Layer.Name()
	if !r.Layer.ShowName || name == "" || r.stats.Bounds.Empty() {
		return image.Rectangle{}, false
	}
	w, h := c.TextExtent(name)
	b := r.stats.Bounds
	var x, y int
	switch r.Layer.NameAlign {
	case AlignNW:
		x, y = b.Min.X+2, b.Min.Y+2
	case AlignSW:
		x, y = b.Min.X+2, b.Max.Y-h-2
	case AlignSE:
		x, y = b.Max.X-w-2, b.Max.Y-h-2
	default:
		x, y = b.Max.X-w-2, b.Min.Y+2
	}
	pr := v.PlotRect()
	x = max(min(x, pr.Max.X-w), pr.Min.X)
	y = max(min(y, pr.Max.Y-h), pr.Min.Y)
	return image.Rect(x, y, x+w, y+h), true
}

func (r *SeriesRenderer) placeLabel(c Canvas, v *Viewport) {
	c.SetFont(r.Layer.Font)
	rect, ok := r.labelRect(c, v)
	if !ok {
		return
	}
	r.stats.Label = rect
	if !r.Layer.deferLabel {
		c.DrawText(r.Layer.Name(), rect.Min.X, rect.Min.Y)
		r.stats.Primitives++
	}
}
