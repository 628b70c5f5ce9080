package render

import (
	"encoding/xml"
	"fmt"
	"io"
)

type svgLine struct {
	X1            float64 `xml:"x1,attr"`
	Y1            float64 `xml:"y1,attr"`
	X2            float64 `xml:"x2,attr"`
	Y2            float64 `xml:"y2,attr"`
	Stroke        string  `xml:"stroke,attr"`
	StrokeWidth   float64 `xml:"stroke-width,attr"`
	StrokeOpacity float64 `xml:"stroke-opacity,attr,omitempty"`
}

type svgCircle struct {
	CX   float64 `xml:"cx,attr"`
	CY   float64 `xml:"cy,attr"`
	R    float64 `xml:"r,attr"`
	Fill string  `xml:"fill,attr"`
}

type svgGroup struct {
	Transform string      `xml:"transform,attr"`
	Lines     []svgLine   `xml:"line"`
	Circles   []svgCircle `xml:"circle"`
}

type svgDocument struct {
	XMLName xml.Name `xml:"svg"`
	Xmlns   string   `xml:"xmlns,attr"`
	Width   float64  `xml:"width,attr"`
	Height  float64  `xml:"height,attr"`
	ViewBox string   `xml:"viewBox,attr"`
	Group   svgGroup `xml:"g"`
}

func toSVGLines(dst []svgLine, lines []Line) []svgLine {
	for _, l := range lines {
		dst = append(dst, svgLine{
			X1: l.X1, Y1: l.Y1, X2: l.X2, Y2: l.Y2,
			Stroke:        l.Stroke,
			StrokeWidth:   l.StrokeWidth,
			StrokeOpacity: l.Opacity,
		})
	}
	return dst
}

// WriteSVG encodes the scene as a standalone SVG document. Grid and axes are
// drawn first, then pair connectors and finally the point markers on top.
func WriteSVG(w io.Writer, scene Scene) error {
	lines := make([]svgLine, 0, len(scene.Grid)+len(scene.Axes)+len(scene.PairLines))
	lines = toSVGLines(lines, scene.Grid)
	lines = toSVGLines(lines, scene.Axes)
	lines = toSVGLines(lines, scene.PairLines)
	circles := make([]svgCircle, len(scene.Markers))
	for i, m := range scene.Markers {
		circles[i] = svgCircle{CX: m.CX, CY: m.CY, R: m.R, Fill: m.Fill}
	}
	doc := svgDocument{
		Xmlns:   "http://www.w3.org/2000/svg",
		Width:   scene.Width,
		Height:  scene.Height,
		ViewBox: fmt.Sprintf("0 0 %g %g", scene.Width, scene.Height),
		Group: svgGroup{
			Transform: fmt.Sprintf("translate(%g, %g)", scene.Pan.X, scene.Pan.Y),
			Lines:     lines,
			Circles:   circles,
		},
	}
	// ---------------------------
	enc := xml.NewEncoder(w)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("could not encode svg: %w", err)
	}
	return enc.Close()
}
