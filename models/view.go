package models

import "fmt"

type Offset struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
}

type ViewState struct {
	Zoom float64 `json:"zoom" msgpack:"zoom"`
	Pan  Offset  `json:"pan" msgpack:"pan"`
}

// Dimensions of the rendering surface in pixels.
type Dimensions struct {
	Width  float64 `json:"width" msgpack:"width"`
	Height float64 `json:"height" msgpack:"height"`
}

type DragState int

const (
	DragIdle DragState = iota
	DragDragging
)

func (d DragState) String() string {
	switch d {
	case DragIdle:
		return "idle"
	case DragDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

func (d DragState) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *DragState) UnmarshalText(text []byte) error {
	switch string(text) {
	case "idle":
		*d = DragIdle
	case "dragging":
		*d = DragDragging
	default:
		return fmt.Errorf("unknown drag state %q", text)
	}
	return nil
}
