package models

// Vector is a 2D unit vector from the catalog. Vectors are never mutated once
// they are part of the catalog.
type Vector struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
}

// Point is a subset sum of catalog vectors.
type Point struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
}

var Origin = Point{}

func (p Point) Add(v Vector) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// ClosePair links a point to the same point shifted by the last active vector.
// The duplicate is computed and is not necessarily part of the point set.
type ClosePair struct {
	Original  Point `json:"original" msgpack:"original"`
	Duplicate Point `json:"duplicate" msgpack:"duplicate"`
}
