package render

import (
	"cmp"
	"encoding/binary"
	"math"
	"slices"
	"sync"

	"github.com/cespare/xxhash"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/semafind/closepairs/models"
)

// ViewKey captures every input that changes a rendered document.
type ViewKey struct {
	N    int
	View models.ViewState
	Dims models.Dimensions
}

func (k ViewKey) hash() uint64 {
	var buf [48]byte
	binary.LittleEndian.PutUint64(buf[0:], uint64(k.N))
	binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(k.View.Zoom))
	binary.LittleEndian.PutUint64(buf[16:], math.Float64bits(k.View.Pan.X))
	binary.LittleEndian.PutUint64(buf[24:], math.Float64bits(k.View.Pan.Y))
	binary.LittleEndian.PutUint64(buf[32:], math.Float64bits(k.Dims.Width))
	binary.LittleEndian.PutUint64(buf[40:], math.Float64bits(k.Dims.Height))
	return xxhash.Sum64(buf[:])
}

type cacheEntry struct {
	key ViewKey
	doc []byte
	// Value of the cache clock at the last access
	lastAccessed uint64
}

type sceneCacheMetrics struct {
	hitCount  prometheus.Counter
	missCount prometheus.Counter
}

// SceneCache keeps recently rendered documents so that repeated requests for
// an unchanged view are not rendered again. It holds at most maxEntries
// documents and drops the least recently accessed ones beyond that.
type SceneCache struct {
	maxEntries int
	entries    map[uint64]*cacheEntry
	clock      uint64
	mu         sync.Mutex
	metrics    sceneCacheMetrics
}

func NewSceneCache(maxEntries int) *SceneCache {
	return &SceneCache{
		maxEntries: maxEntries,
		entries:    make(map[uint64]*cacheEntry),
		metrics: sceneCacheMetrics{
			hitCount: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "closepairs_scene_cache_hit_count",
				Help: "Total number of rendered documents served from the cache.",
			}),
			missCount: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "closepairs_scene_cache_miss_count",
				Help: "Total number of documents rendered on demand.",
			}),
		},
	}
}

func (sc *SceneCache) RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(sc.metrics.hitCount, sc.metrics.missCount)
}

func (sc *SceneCache) Len() int {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return len(sc.entries)
}

// GetOrRender returns the cached document for the key or renders and stores a
// new one. Rendering errors are not cached.
func (sc *SceneCache) GetOrRender(key ViewKey, renderFn func() ([]byte, error)) ([]byte, error) {
	if sc.maxEntries <= 0 {
		sc.metrics.missCount.Inc()
		return renderFn()
	}
	h := key.hash()
	// ---------------------------
	sc.mu.Lock()
	if e, ok := sc.entries[h]; ok && e.key == key {
		sc.clock++
		e.lastAccessed = sc.clock
		sc.mu.Unlock()
		sc.metrics.hitCount.Inc()
		return e.doc, nil
	}
	sc.mu.Unlock()
	// ---------------------------
	sc.metrics.missCount.Inc()
	doc, err := renderFn()
	if err != nil {
		return nil, err
	}
	sc.mu.Lock()
	sc.clock++
	sc.entries[h] = &cacheEntry{key: key, doc: doc, lastAccessed: sc.clock}
	sc.pruneLocked()
	sc.mu.Unlock()
	return doc, nil
}

func (sc *SceneCache) pruneLocked() {
	if len(sc.entries) <= sc.maxEntries {
		return
	}
	type elem struct {
		hash         uint64
		lastAccessed uint64
	}
	elems := make([]elem, 0, len(sc.entries))
	for h, e := range sc.entries {
		elems = append(elems, elem{hash: h, lastAccessed: e.lastAccessed})
	}
	slices.SortFunc(elems, func(a, b elem) int {
		return cmp.Compare(a.lastAccessed, b.lastAccessed)
	})
	for _, e := range elems[:len(elems)-sc.maxEntries] {
		delete(sc.entries, e.hash)
	}
	log.Debug().Int("size", len(sc.entries)).Msg("Pruned scene cache")
}
