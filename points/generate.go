package points

import (
	"math"

	"github.com/semafind/closepairs/models"
	"gonum.org/v1/gonum/floats"
)

// GeneratePoints returns every subset sum of the given vectors, the origin
// included, in the order they are discovered. Sums are deduplicated on exact
// float equality, so sums that differ in the last bits are distinct points.
func GeneratePoints(vectors []models.Vector) []models.Point {
	points := make([]models.Point, 1, 1<<min(len(vectors), 16))
	points[0] = models.Origin
	seen := make(map[models.Point]struct{}, cap(points))
	seen[models.Origin] = struct{}{}
	// ---------------------------
	for _, v := range vectors {
		// Only the points that existed before this vector are extended
		current := len(points)
		for i := 0; i < current; i++ {
			p := normalise(points[i].Add(v))
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			points = append(points, p)
		}
	}
	return points
}

// Negative zero is folded into positive zero, both compare equal as map keys
// but we want a single representation in the output.
func normalise(p models.Point) models.Point {
	if p.X == 0 {
		p.X = 0
	}
	if p.Y == 0 {
		p.Y = 0
	}
	return p
}

// MaxExtent is the largest absolute coordinate over both axes. An empty or
// degenerate point set reports 1 so it can safely be used as a divisor.
func MaxExtent(points []models.Point) float64 {
	if len(points) == 0 {
		return 1
	}
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = math.Abs(p.X)
		ys[i] = math.Abs(p.Y)
	}
	maxX := floats.Max(xs)
	if maxX == 0 {
		maxX = 1
	}
	maxY := floats.Max(ys)
	if maxY == 0 {
		maxY = 1
	}
	return max(maxX, maxY)
}
