package render

import (
	"math"
	"testing"

	"github.com/semafind/closepairs/catalog"
	"github.com/semafind/closepairs/models"
	"github.com/semafind/closepairs/points"
	"github.com/semafind/closepairs/viewport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sceneInput(n int, view *viewport.Controller) SceneInput {
	vectors := catalog.Prefix(n)
	pts := points.GeneratePoints(vectors)
	return SceneInput{
		N:              n,
		Points:         pts,
		Pairs:          points.ClosePairs(pts, vectors),
		ClosePairCount: points.ClosePairCount(n),
		View:           view,
	}
}

func TestBuildSceneCounts(t *testing.T) {
	view := viewport.NewController(viewport.DefaultConfig(), 4)
	scene := BuildScene(sceneInput(3, view))
	require.Len(t, scene.Grid, 82)
	require.Len(t, scene.Axes, 2)
	require.Len(t, scene.PairLines, 4)
	require.Len(t, scene.Markers, 8)
	assert.Equal(t, Readouts{N: 3, PointCount: 8, NominalPoints: 8, ClosePairCount: 12, Zoom: "1.00x"}, scene.Readouts)
	assert.Equal(t, 800.0, scene.Width)
	assert.Equal(t, 600.0, scene.Height)
}

func TestBuildSceneOrigin(t *testing.T) {
	view := viewport.NewController(viewport.DefaultConfig(), 4)
	scene := BuildScene(sceneInput(0, view))
	require.Len(t, scene.Markers, 1)
	require.Empty(t, scene.PairLines)
	assert.Equal(t, Circle{CX: 400, CY: 300, R: 3, Fill: markerFill}, scene.Markers[0])
	assert.Equal(t, 1, scene.Readouts.NominalPoints)
}

func TestBuildSceneZoomAndPan(t *testing.T) {
	view := viewport.NewController(viewport.DefaultConfig(), 4)
	for i := 0; i < 200; i++ {
		view.ZoomIn()
	}
	view.DragStart(0, 0)
	view.DragMove(12, -7)
	scene := BuildScene(sceneInput(2, view))
	assert.Equal(t, models.Offset{X: 12, Y: -7}, scene.Pan)
	assert.Equal(t, "10.00x", scene.Readouts.Zoom)
	assert.InDelta(t, 3/math.Sqrt(10), scene.Markers[0].R, 1e-12)
	// Grid spacing follows the zoom, the middle line sits on the centre
	middle := scene.Grid[2*20]
	next := scene.Grid[2*21]
	assert.Equal(t, 400.0, middle.X1)
	assert.Equal(t, 400.0+400.0, next.X1)
}

func TestBuildScenePairLines(t *testing.T) {
	view := viewport.NewController(viewport.DefaultConfig(), 4)
	in := sceneInput(2, view)
	scene := BuildScene(in)
	for i, line := range scene.PairLines {
		x1, y1 := view.ToScreen(in.Pairs[i].Original)
		x2, y2 := view.ToScreen(in.Pairs[i].Duplicate)
		assert.Equal(t, Line{X1: x1, Y1: y1, X2: x2, Y2: y2, Stroke: pairStroke, StrokeWidth: 0.2, Opacity: 0.8}, line)
	}
}
