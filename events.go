package plotview

import (
	"image"
	"log/slog"
	"math"
)

// Button is a pointer button.
type Button int

// see Button
const (
	LeftButton Button = iota
	MiddleButton
	RightButton
)

// Modifier is a set of keyboard modifiers held during an event.
type Modifier int

// see Modifier
const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
)

// Event is a host input event, one of PointerPress, PointerDrag, PointerRelease, WheelRotate or Resize.
type Event interface {
	event()
}

// PointerPress is sent when a pointer button is pressed.
type PointerPress struct {
	Pixel  image.Point
	Button Button
}

// PointerDrag is sent when the pointer moves while a button is held.
type PointerDrag struct {
	Pixel image.Point
}

// PointerRelease is sent when the held button is released.
type PointerRelease struct {
	Pixel image.Point
}

// WheelRotate is sent when the wheel turns, a positive delta zooms in by one increment per unit.
type WheelRotate struct {
	Pixel image.Point
	Delta float64
	Mods  Modifier
}

// Resize is sent when the host window changes size.
type Resize struct {
	Width, Height int
}

func (PointerPress) event()   {}
func (PointerDrag) event()    {}
func (PointerRelease) event() {}
func (WheelRotate) event()    {}
func (Resize) event()         {}

// Controller maps host input events onto viewport operations. A left drag pans, a right drag selects a rectangle that is zoomed to on release, the wheel zooms around the pointer (only X with Ctrl, only Y with Shift), and a resize re-fits the desired bounds.
type Controller struct {
	vp *Viewport

	pressed     bool
	button      Button
	start, last image.Point
}

// NewController returns a controller for the viewport.
func NewController(v *Viewport) *Controller {
	return &Controller{vp: v}
}

// Selection returns the rubber band rectangle of an ongoing right drag.
func (c *Controller) Selection() (image.Rectangle, bool) {
	if !c.pressed || c.button != RightButton {
		return image.Rectangle{}, false
	}
	return image.Rectangle{c.start, c.last}.Canon(), true
}

// Handle applies the event to the viewport and returns whether the view changed and needs a redraw.
func (c *Controller) Handle(e Event) (bool, error) {
	switch e := e.(type) {
	case PointerPress:
		c.pressed, c.button = true, e.Button
		c.start, c.last = e.Pixel, e.Pixel
		return false, nil
	case PointerDrag:
		if !c.pressed {
			return false, nil
		}
		prev := c.last
		c.last = e.Pixel
		if c.button == LeftButton {
			sx, sy := c.vp.Scale()
			d := e.Pixel.Sub(prev)
			c.vp.Pan(-float64(d.X)/sx, float64(d.Y)/sy)
			return d != image.Point{}, nil
		}
		return c.button == RightButton, nil // rubber band
	case PointerRelease:
		if !c.pressed {
			return false, nil
		}
		c.pressed = false
		c.last = e.Pixel
		if c.button != RightButton {
			return false, nil
		}
		r := image.Rectangle{c.start, c.last}.Canon()
		if r.Dx() == 0 || r.Dy() == 0 {
			return true, nil // remove the rubber band
		}
		Logger().Debug("zoom to rect", slog.Any("rect", r))
		return true, c.vp.ZoomToRect(r.Min, r.Max)
	case WheelRotate:
		if e.Delta == 0.0 {
			return false, nil
		}
		f := math.Pow(c.vp.Config().ZoomIncrement, math.Abs(e.Delta))
		in := 0.0 < e.Delta
		switch {
		case e.Mods&ModCtrl != 0 && in:
			c.vp.ZoomInX(e.Pixel, f)
		case e.Mods&ModCtrl != 0:
			c.vp.ZoomOutX(e.Pixel, f)
		case e.Mods&ModShift != 0 && in:
			c.vp.ZoomInY(e.Pixel, f)
		case e.Mods&ModShift != 0:
			c.vp.ZoomOutY(e.Pixel, f)
		case in:
			c.vp.ZoomIn(e.Pixel, f)
		default:
			c.vp.ZoomOut(e.Pixel, f)
		}
		return true, nil
	case Resize:
		c.vp.SetScreenSize(e.Width, e.Height)
		return true, c.vp.FitBox(c.vp.DesiredBounds())
	}
	return false, nil
}
