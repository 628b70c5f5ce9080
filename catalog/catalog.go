package catalog

import (
	"fmt"
	"math"

	"github.com/semafind/closepairs/models"
	"gonum.org/v1/gonum/floats/scalar"
)

// MaxN is the largest number of vectors a view may use. The last catalog entry
// only contributes to the full extent used for the base scale.
const MaxN = 12

const unitTolerance = 1e-9

var unitVectors = [...]models.Vector{
	{X: 0.7071067811865476, Y: -0.7071067811865475},
	{X: 0.8660254037844387, Y: 0.49999999999999994},
	{X: -0.2588190451025207, Y: 0.9659258262890683},
	{X: -0.6427876096865393, Y: -0.766044443118978},
	{X: 0.9396926207859084, Y: -0.3420201433256687},
	{X: -0.1736481776669303, Y: -0.984807753012208},
	{X: 0.42261826174069944, Y: 0.9063077870366499},
	{X: -0.9063077870366499, Y: 0.42261826174069944},
	{X: 0.573576436351046, Y: 0.8191520442889918},
	{X: -0.8191520442889918, Y: 0.573576436351046},
	{X: 0.08715574274765817, Y: -0.9961946980917455},
	{X: -0.9961946980917455, Y: -0.08715574274765817},
	{X: 0.3090169943749474, Y: 0.9510565162951535},
}

func Len() int {
	return len(unitVectors)
}

// All returns a copy of the full catalog so callers cannot mutate it.
func All() []models.Vector {
	vectors := make([]models.Vector, len(unitVectors))
	copy(vectors, unitVectors[:])
	return vectors
}

func ClampN(n int) int {
	return max(0, min(n, MaxN))
}

// Prefix returns the first n vectors of the catalog, n is clamped to [0, MaxN].
func Prefix(n int) []models.Vector {
	return All()[:ClampN(n)]
}

// Validate checks that every vector has unit length.
func Validate(vectors []models.Vector) error {
	for i, v := range vectors {
		norm := math.Hypot(v.X, v.Y)
		if !scalar.EqualWithinAbs(norm, 1, unitTolerance) {
			return fmt.Errorf("vector %d (%v, %v) is not a unit vector, norm %v", i, v.X, v.Y, norm)
		}
	}
	return nil
}
