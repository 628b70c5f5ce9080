package points

import "github.com/semafind/closepairs/models"

// Displayed close pair counts indexed by n. These are not derived from the
// drawn pairs.
var closePairCounts = [...]int{0, 1, 4, 12, 32, 80, 192, 448, 1024, 2304, 5120}

// ClosePairCount returns the displayed number of close pairs for n, 0 outside
// of the table.
func ClosePairCount(n int) int {
	if n < 0 || n >= len(closePairCounts) {
		return 0
	}
	return closePairCounts[n]
}

// ClosePairs pairs each point in the first half of points with itself shifted
// by the last vector. Nothing is paired if there are no vectors.
func ClosePairs(points []models.Point, vectors []models.Vector) []models.ClosePair {
	if len(vectors) == 0 {
		return []models.ClosePair{}
	}
	last := vectors[len(vectors)-1]
	half := len(points) / 2
	pairs := make([]models.ClosePair, half)
	for i := 0; i < half; i++ {
		pairs[i] = models.ClosePair{
			Original:  points[i],
			Duplicate: points[i].Add(last),
		}
	}
	return pairs
}
