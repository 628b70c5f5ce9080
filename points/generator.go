package points

import (
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/semafind/closepairs/catalog"
	"github.com/semafind/closepairs/models"
)

type entry struct {
	points []models.Point
	pairs  []models.ClosePair
}

// Generator memoises point sets and close pairs over the catalog for each n.
// Returned slices are shared and must not be modified by callers.
type Generator struct {
	entries    [catalog.MaxN + 1]*entry
	mu         sync.Mutex
	extentOnce sync.Once
	extent     float64
}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) get(n int) *entry {
	n = catalog.ClampN(n)
	g.mu.Lock()
	defer g.mu.Unlock()
	if e := g.entries[n]; e != nil {
		return e
	}
	vectors := catalog.Prefix(n)
	points := GeneratePoints(vectors)
	e := &entry{
		points: points,
		pairs:  ClosePairs(points, vectors),
	}
	g.entries[n] = e
	log.Debug().Int("n", n).Int("points", len(e.points)).Int("pairs", len(e.pairs)).Msg("Generated points")
	return e
}

// Points returns the subset sums of the first n catalog vectors.
func (g *Generator) Points(n int) []models.Point {
	return g.get(n).points
}

func (g *Generator) ClosePairs(n int) []models.ClosePair {
	return g.get(n).pairs
}

// FullExtent is the maximum extent over the points of the whole catalog. It
// does not depend on n which keeps the base scale stable.
func (g *Generator) FullExtent() float64 {
	g.extentOnce.Do(func() {
		g.extent = MaxExtent(GeneratePoints(catalog.All()))
	})
	return g.extent
}
