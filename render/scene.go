package render

import (
	"fmt"
	"math"

	"github.com/semafind/closepairs/models"
	"github.com/semafind/closepairs/viewport"
)

const (
	gridSize          = 40
	visibleGridLines  = 41
	markerRadius      = 3
	gridStroke        = "#f0f0f0"
	axisStroke        = "#ddd"
	pairStroke        = "#666"
	pairStrokeWidth   = 0.2
	pairStrokeOpacity = 0.8
	markerFill        = "#4299e1"
)

type Line struct {
	X1          float64 `json:"x1" msgpack:"x1"`
	Y1          float64 `json:"y1" msgpack:"y1"`
	X2          float64 `json:"x2" msgpack:"x2"`
	Y2          float64 `json:"y2" msgpack:"y2"`
	Stroke      string  `json:"stroke" msgpack:"stroke"`
	StrokeWidth float64 `json:"strokeWidth" msgpack:"strokeWidth"`
	Opacity     float64 `json:"opacity,omitempty" msgpack:"opacity,omitempty"`
}

type Circle struct {
	CX   float64 `json:"cx" msgpack:"cx"`
	CY   float64 `json:"cy" msgpack:"cy"`
	R    float64 `json:"r" msgpack:"r"`
	Fill string  `json:"fill" msgpack:"fill"`
}

// Readouts are the textual values shown next to the drawing.
type Readouts struct {
	N              int    `json:"n" msgpack:"n"`
	PointCount     int    `json:"pointCount" msgpack:"pointCount"`
	NominalPoints  int    `json:"nominalPoints" msgpack:"nominalPoints"`
	ClosePairCount int    `json:"closePairCount" msgpack:"closePairCount"`
	Zoom           string `json:"zoom" msgpack:"zoom"`
}

// Scene is everything needed to draw one frame. Shapes are in surface
// coordinates and the whole drawing is translated by Pan.
type Scene struct {
	Width     float64       `json:"width" msgpack:"width"`
	Height    float64       `json:"height" msgpack:"height"`
	Pan       models.Offset `json:"pan" msgpack:"pan"`
	Grid      []Line        `json:"grid" msgpack:"grid"`
	Axes      []Line        `json:"axes" msgpack:"axes"`
	PairLines []Line        `json:"pairLines" msgpack:"pairLines"`
	Markers   []Circle      `json:"markers" msgpack:"markers"`
	Readouts  Readouts      `json:"readouts" msgpack:"readouts"`
}

type SceneInput struct {
	N              int
	Points         []models.Point
	Pairs          []models.ClosePair
	ClosePairCount int
	View           *viewport.Controller
}

// BuildScene lays out the grid, axes, pair connectors and point markers for
// the current view.
func BuildScene(in SceneInput) Scene {
	view := in.View
	dims := view.Dimensions()
	zoom := view.Zoom()
	cx, cy := view.Center()
	// ---------------------------
	half := visibleGridLines / 2
	grid := make([]Line, 0, 2*visibleGridLines)
	for i := -half; i <= half; i++ {
		x := cx + float64(i)*gridSize*zoom
		y := cy + float64(i)*gridSize*zoom
		grid = append(grid,
			Line{X1: x, Y1: -dims.Height, X2: x, Y2: dims.Height * 2, Stroke: gridStroke, StrokeWidth: 1},
			Line{X1: -dims.Width, Y1: y, X2: dims.Width * 2, Y2: y, Stroke: gridStroke, StrokeWidth: 1},
		)
	}
	axes := []Line{
		{X1: -dims.Width, Y1: cy, X2: dims.Width * 2, Y2: cy, Stroke: axisStroke, StrokeWidth: 2},
		{X1: cx, Y1: -dims.Height, X2: cx, Y2: dims.Height * 2, Stroke: axisStroke, StrokeWidth: 2},
	}
	// ---------------------------
	pairLines := make([]Line, len(in.Pairs))
	for i, pair := range in.Pairs {
		x1, y1 := view.ToScreen(pair.Original)
		x2, y2 := view.ToScreen(pair.Duplicate)
		pairLines[i] = Line{
			X1: x1, Y1: y1, X2: x2, Y2: y2,
			Stroke:      pairStroke,
			StrokeWidth: pairStrokeWidth,
			Opacity:     pairStrokeOpacity,
		}
	}
	// Markers shrink as we zoom in so dense regions stay readable
	radius := markerRadius / math.Sqrt(zoom)
	markers := make([]Circle, len(in.Points))
	for i, p := range in.Points {
		x, y := view.ToScreen(p)
		markers[i] = Circle{CX: x, CY: y, R: radius, Fill: markerFill}
	}
	// ---------------------------
	return Scene{
		Width:     dims.Width,
		Height:    dims.Height,
		Pan:       view.Pan(),
		Grid:      grid,
		Axes:      axes,
		PairLines: pairLines,
		Markers:   markers,
		Readouts: Readouts{
			N:              in.N,
			PointCount:     len(in.Points),
			NominalPoints:  1 << in.N,
			ClosePairCount: in.ClosePairCount,
			Zoom:           fmt.Sprintf("%.2fx", zoom),
		},
	}
}
