package viewport

import (
	"math"

	"github.com/semafind/closepairs/models"
)

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Controller owns the zoom, pan and dimensions of a single view and maps point
// coordinates to screen coordinates. It is not safe for concurrent use, the
// owner serialises access.
type Controller struct {
	cfg Config
	// ---------------------------
	zoom float64
	pan  models.Offset
	// ---------------------------
	drag models.DragState
	// Pointer position minus the pan at the start of the drag
	dragAnchor models.Offset
	// ---------------------------
	dims      models.Dimensions
	maxExtent float64
}

// NewController creates a controller at the default view. The extent is the
// maximum extent of the full catalog and fixes the base scale.
func NewController(cfg Config, maxExtent float64) *Controller {
	if maxExtent <= 0 {
		maxExtent = 1
	}
	return &Controller{
		cfg:       cfg,
		zoom:      1,
		dims:      models.Dimensions{Width: cfg.MaxWidth, Height: cfg.MaxHeight},
		maxExtent: maxExtent,
	}
}

func (c *Controller) Zoom() float64 {
	return c.zoom
}

func (c *Controller) Pan() models.Offset {
	return c.pan
}

func (c *Controller) DragState() models.DragState {
	return c.drag
}

func (c *Controller) Dimensions() models.Dimensions {
	return c.dims
}

func (c *Controller) State() models.ViewState {
	return models.ViewState{Zoom: c.zoom, Pan: c.pan}
}

// ---------------------------

func (c *Controller) setZoom(zoom float64) {
	c.zoom = max(c.cfg.MinZoom, min(c.cfg.MaxZoom, zoom))
}

// Wheel applies a scroll event, positive deltaY scrolls down and zooms out.
func (c *Controller) Wheel(deltaY float64) {
	if deltaY > 0 {
		c.ZoomOut()
		return
	}
	c.ZoomIn()
}

func (c *Controller) ZoomIn() {
	c.setZoom(c.zoom * c.cfg.ZoomInFactor)
}

func (c *Controller) ZoomOut() {
	c.setZoom(c.zoom * c.cfg.ZoomOutFactor)
}

// ---------------------------

// DragStart anchors the pointer to the current pan. A pointer so far out that
// the anchor overflows does not start a drag.
func (c *Controller) DragStart(x, y float64) {
	anchor := models.Offset{X: x - c.pan.X, Y: y - c.pan.Y}
	if !finite(anchor.X, anchor.Y) {
		return
	}
	c.drag = models.DragDragging
	c.dragAnchor = anchor
}

// DragMove moves the pan with the pointer, it is ignored unless dragging. The
// pan always stays finite, a move that would overflow keeps the previous pan.
func (c *Controller) DragMove(x, y float64) {
	if c.drag != models.DragDragging {
		return
	}
	pan := models.Offset{X: x - c.dragAnchor.X, Y: y - c.dragAnchor.Y}
	if !finite(pan.X, pan.Y) {
		return
	}
	c.pan = pan
}

func (c *Controller) DragEnd() {
	c.drag = models.DragIdle
}

func (c *Controller) PointerLeave() {
	c.drag = models.DragIdle
}

// Reset restores the default zoom and pan.
func (c *Controller) Reset() {
	c.zoom = 1
	c.pan = models.Offset{}
}

// ---------------------------

// Resize derives the surface dimensions from a window size.
func (c *Controller) Resize(windowWidth, windowHeight float64) {
	c.SetDimensions(windowWidth-c.cfg.MarginX, windowHeight-c.cfg.MarginY)
}

// SetDimensions sets the surface size directly, clamped to the maximum
// surface and to at least one pixel.
func (c *Controller) SetDimensions(width, height float64) {
	c.dims = models.Dimensions{
		Width:  max(1, min(c.cfg.MaxWidth, width)),
		Height: max(1, min(c.cfg.MaxHeight, height)),
	}
}

// ---------------------------

func (c *Controller) BaseScale() float64 {
	return min(c.dims.Width*c.cfg.FitFraction/c.maxExtent, c.dims.Height*c.cfg.FitFraction/c.maxExtent)
}

func (c *Controller) Scale() float64 {
	return c.BaseScale() * c.zoom
}

func (c *Controller) Center() (float64, float64) {
	return c.dims.Width / 2, c.dims.Height / 2
}

// ToScreen maps a point to screen space before the pan translation. The y
// axis points up in point space and down on screen.
func (c *Controller) ToScreen(p models.Point) (float64, float64) {
	scale := c.Scale()
	cx, cy := c.Center()
	return cx + p.X*scale, cy - p.Y*scale
}
