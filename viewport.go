package plotview

import (
	"image"
	"log/slog"
	"math"
)

// ViewportConfig holds the tunables of a Viewport.
type ViewportConfig struct {
	// ZoomIncrement is the factor used by ZoomIn and ZoomOut when they are passed a non-positive factor.
	ZoomIncrement float64

	// MaxScale is the maximum number of pixels per plot unit on either axis.
	MaxScale float64
}

// DefaultViewportConfig is used when a nil config is passed to NewViewport.
var DefaultViewportConfig = ViewportConfig{
	ZoomIncrement: 1.1,
	MaxScale:      1e6,
}

// Margins are the space in pixels between the screen border and the plot area.
type Margins struct {
	Top, Right, Bottom, Left int
}

// Viewport maps plot coordinates to pixel coordinates. Pixel X grows to the right and pixel Y grows downwards, so that increasing plot Y maps to decreasing pixel Y.
//
//	pixelX = (plotX - posX) * scaleX
//	pixelY = (posY - plotY) * scaleY
type Viewport struct {
	cfg ViewportConfig

	scaleX, scaleY float64
	posX, posY     float64
	width, height  int
	margins        Margins

	desired Box // requested visible window
	data    Box // bounding box of all data, used by limited view and zoom-out fallback

	lockAspect  bool
	limitedView bool

	cycle uint64 // redraw cycle, advanced by the Composer
}

// NewViewport returns a viewport of the given screen size in pixels showing the unit square.
func NewViewport(width, height int, cfg *ViewportConfig) *Viewport {
	if cfg == nil {
		defaultConfig := DefaultViewportConfig
		cfg = &defaultConfig
	}
	if cfg.ZoomIncrement <= 1.0 {
		cfg.ZoomIncrement = DefaultViewportConfig.ZoomIncrement
	}
	if cfg.MaxScale <= 0.0 {
		cfg.MaxScale = DefaultViewportConfig.MaxScale
	}
	v := &Viewport{
		cfg:    *cfg,
		scaleX: 1.0,
		scaleY: 1.0,
	}
	v.SetScreenSize(width, height)
	v.data = Box{0.0, 1.0, 0.0, 1.0}
	v.Fit(0.0, 1.0, 0.0, 1.0)
	return v
}

// Config returns the viewport configuration.
func (v *Viewport) Config() ViewportConfig {
	return v.cfg
}

// Scale returns the number of pixels per plot unit.
func (v *Viewport) Scale() (float64, float64) {
	return v.scaleX, v.scaleY
}

// Pos returns the plot coordinate under the pixel origin.
func (v *Viewport) Pos() (float64, float64) {
	return v.posX, v.posY
}

// ScreenSize returns the screen size in pixels.
func (v *Viewport) ScreenSize() (int, int) {
	return v.width, v.height
}

// SetScreenSize sets the screen size in pixels. Zero or negative dimensions are treated as 1. The scale and position are left untouched, callers re-fit if they want to keep the desired bounds visible.
func (v *Viewport) SetScreenSize(width, height int) {
	v.width = max(width, 1)
	v.height = max(height, 1)
}

// Margins returns the margins.
func (v *Viewport) Margins() Margins {
	return v.margins
}

// SetMargins sets the margins around the plot area.
func (v *Viewport) SetMargins(m Margins) {
	v.margins = m
}

// PlotRect returns the margined plot area in pixels.
func (v *Viewport) PlotRect() image.Rectangle {
	return image.Rect(v.margins.Left, v.margins.Top, v.width-v.margins.Right, v.height-v.margins.Bottom).Canon()
}

// plotSize returns the size of the margined plot area, at least one pixel in each dimension.
func (v *Viewport) plotSize() (float64, float64) {
	w := v.width - v.margins.Left - v.margins.Right
	h := v.height - v.margins.Top - v.margins.Bottom
	return float64(max(w, 1)), float64(max(h, 1))
}

// DesiredBounds returns the requested visible window in plot coordinates.
func (v *Viewport) DesiredBounds() Box {
	return v.desired
}

// DataBounds returns the bounding box of the data as last set by SetDataBounds.
func (v *Viewport) DataBounds() Box {
	return v.data
}

// SetDataBounds sets the bounding box of all data, which is used by the limited view policy and as fallback for zooming out.
func (v *Viewport) SetDataBounds(b Box) {
	v.data = b
}

// LockAspect returns whether both axes share the same scale.
func (v *Viewport) LockAspect() bool {
	return v.lockAspect
}

// SetLockAspect enables or disables equal scales on both axes and re-fits the desired bounds.
func (v *Viewport) SetLockAspect(lock bool) {
	v.lockAspect = lock
	v.Fit(v.desired.MinX, v.desired.MaxX, v.desired.MinY, v.desired.MaxY)
}

// LimitedView returns whether the window is clamped to the data bounds after every fit, pan and zoom.
func (v *Viewport) LimitedView() bool {
	return v.limitedView
}

// SetLimitedView enables or disables clamping of the visible window to the data bounds plus the margins.
func (v *Viewport) SetLimitedView(limited bool) {
	v.limitedView = limited
	if limited {
		v.clampToData()
	}
}

// ScreenToPlot converts a pixel coordinate to plot coordinates.
func (v *Viewport) ScreenToPlot(x, y float64) (float64, float64) {
	return v.ScreenToPlotX(x), v.ScreenToPlotY(y)
}

// ScreenToPlotX converts a pixel X coordinate to a plot X coordinate.
func (v *Viewport) ScreenToPlotX(x float64) float64 {
	return x/v.scaleX + v.posX
}

// ScreenToPlotY converts a pixel Y coordinate to a plot Y coordinate.
func (v *Viewport) ScreenToPlotY(y float64) float64 {
	return v.posY - y/v.scaleY
}

// PlotToScreen converts plot coordinates to a (fractional) pixel coordinate.
func (v *Viewport) PlotToScreen(x, y float64) (float64, float64) {
	return v.PlotToScreenX(x), v.PlotToScreenY(y)
}

// PlotToScreenX converts a plot X coordinate to a fractional pixel X coordinate.
func (v *Viewport) PlotToScreenX(x float64) float64 {
	return (x - v.posX) * v.scaleX
}

// PlotToScreenY converts a plot Y coordinate to a fractional pixel Y coordinate.
func (v *Viewport) PlotToScreenY(y float64) float64 {
	return (v.posY - y) * v.scaleY
}

// VisibleBounds returns the window in plot coordinates covered by the margined plot area.
func (v *Viewport) VisibleBounds() Box {
	r := v.PlotRect()
	return Box{
		MinX: v.ScreenToPlotX(float64(r.Min.X)),
		MaxX: v.ScreenToPlotX(float64(r.Max.X)),
		MinY: v.ScreenToPlotY(float64(r.Max.Y)),
		MaxY: v.ScreenToPlotY(float64(r.Min.Y)),
	}
}

// Fit sets the desired bounds and computes the scale and position so that the box is centered within the margined plot area. A zero span on an axis yields a scale of 1 on that axis and returns ErrDegenerateRange, the viewport is still updated.
func (v *Viewport) Fit(xMin, xMax, yMin, yMax float64) error {
	if xMax < xMin {
		xMin, xMax = xMax, xMin
	}
	if yMax < yMin {
		yMin, yMax = yMax, yMin
	}
	v.desired = Box{xMin, xMax, yMin, yMax}

	var err error
	w, h := v.plotSize()
	if xMax == xMin {
		v.scaleX = 1.0
		err = ErrDegenerateRange
	} else {
		v.scaleX = w / (xMax - xMin)
	}
	if yMax == yMin {
		v.scaleY = 1.0
		err = ErrDegenerateRange
	} else {
		v.scaleY = h / (yMax - yMin)
	}
	if v.lockAspect {
		s := math.Min(v.scaleX, v.scaleY)
		v.scaleX, v.scaleY = s, s
	}
	v.scaleX = v.clampScale(v.scaleX)
	v.scaleY = v.clampScale(v.scaleY)

	cx, cy := (xMin+xMax)/2.0, (yMin+yMax)/2.0
	v.posX = cx - (float64(v.margins.Left)+w/2.0)/v.scaleX
	v.posY = cy + (float64(v.margins.Top)+h/2.0)/v.scaleY
	if v.limitedView {
		v.clampToData()
	}
	Logger().Debug("viewport fit", slog.Any("box", v.desired), slog.Float64("scaleX", v.scaleX), slog.Float64("scaleY", v.scaleY))
	return err
}

// FitBox is Fit for a Box.
func (v *Viewport) FitBox(b Box) error {
	return v.Fit(b.MinX, b.MaxX, b.MinY, b.MaxY)
}

func (v *Viewport) clampScale(s float64) float64 {
	if math.IsNaN(s) || math.IsInf(s, 0) || s <= 0.0 {
		return 1.0
	}
	return math.Min(s, v.cfg.MaxScale)
}

func (v *Viewport) factor(f float64) float64 {
	if f <= 0.0 || math.IsNaN(f) {
		return v.cfg.ZoomIncrement
	}
	return f
}

// ZoomIn zooms in by factor while keeping the plot coordinate under the anchor pixel in place. A non-positive factor uses the configured zoom increment.
func (v *Viewport) ZoomIn(anchor image.Point, factor float64) {
	f := v.factor(factor)
	v.zoom(anchor, f, f)
}

// ZoomOut zooms out by factor while keeping the plot coordinate under the anchor pixel in place. If the resulting window is degenerate, the viewport is fitted to the data bounds instead.
func (v *Viewport) ZoomOut(anchor image.Point, factor float64) {
	f := v.factor(factor)
	v.zoom(anchor, 1.0/f, 1.0/f)
	if !v.desired.Valid() {
		Logger().Warn("viewport zoom out degenerate, fitting data bounds", slog.Any("box", v.desired))
		v.FitBox(v.data)
	}
}

// ZoomInX zooms in on the X axis only.
func (v *Viewport) ZoomInX(anchor image.Point, factor float64) {
	v.zoom(anchor, v.factor(factor), 1.0)
}

// ZoomOutX zooms out on the X axis only.
func (v *Viewport) ZoomOutX(anchor image.Point, factor float64) {
	v.zoom(anchor, 1.0/v.factor(factor), 1.0)
}

// ZoomInY zooms in on the Y axis only.
func (v *Viewport) ZoomInY(anchor image.Point, factor float64) {
	v.zoom(anchor, 1.0, v.factor(factor))
}

// ZoomOutY zooms out on the Y axis only.
func (v *Viewport) ZoomOutY(anchor image.Point, factor float64) {
	v.zoom(anchor, 1.0, 1.0/v.factor(factor))
}

func (v *Viewport) zoom(anchor image.Point, fx, fy float64) {
	ax, ay := float64(anchor.X), float64(anchor.Y)
	px, py := v.ScreenToPlot(ax, ay)

	v.scaleX = v.clampScale(v.scaleX * fx)
	v.scaleY = v.clampScale(v.scaleY * fy)

	v.posX = px - ax/v.scaleX
	v.posY = py + ay/v.scaleY
	v.desired = v.VisibleBounds()
	if v.limitedView {
		v.clampToData()
	}
	Logger().Debug("viewport zoom", slog.Any("anchor", anchor), slog.Float64("scaleX", v.scaleX), slog.Float64("scaleY", v.scaleY))
}

// Pan translates the visible window by the given delta in plot units. With limited view enabled the window is clamped to the data bounds plus margins.
func (v *Viewport) Pan(dx, dy float64) {
	v.posX += dx
	v.posY += dy
	v.desired = v.desired.Translate(dx, dy)
	if v.limitedView {
		v.clampToData()
	}
}

// clampToData shifts the desired window so it stays within the data bounds extended by the margins expressed in plot units.
func (v *Viewport) clampToData() {
	if !v.data.Valid() {
		return
	}
	loX := v.data.MinX - float64(v.margins.Left)/v.scaleX
	hiX := v.data.MaxX + float64(v.margins.Right)/v.scaleX
	loY := v.data.MinY - float64(v.margins.Bottom)/v.scaleY
	hiY := v.data.MaxY + float64(v.margins.Top)/v.scaleY

	dx := clampShift(v.desired.MinX, v.desired.MaxX, loX, hiX)
	dy := clampShift(v.desired.MinY, v.desired.MaxY, loY, hiY)
	if dx != 0.0 || dy != 0.0 {
		v.posX += dx
		v.posY += dy
		v.desired = v.desired.Translate(dx, dy)
	}
}

// clampShift returns the translation that moves [lo,hi] inside [min,max]. If the window is at least as wide as the limits, it is centered on them.
func clampShift(lo, hi, min, max float64) float64 {
	if max-min <= hi-lo {
		return (min+max)/2.0 - (lo+hi)/2.0
	} else if lo < min {
		return min - lo
	} else if max < hi {
		return max - hi
	}
	return 0.0
}

// ZoomToRect fits the viewport to the rectangle spanned by two pixel corners.
func (v *Viewport) ZoomToRect(a, b image.Point) error {
	x0, y0 := v.ScreenToPlot(float64(a.X), float64(a.Y))
	x1, y1 := v.ScreenToPlot(float64(b.X), float64(b.Y))
	return v.Fit(math.Min(x0, x1), math.Max(x0, x1), math.Min(y0, y1), math.Max(y0, y1))
}
