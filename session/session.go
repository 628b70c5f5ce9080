package session

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/semafind/closepairs/catalog"
	"github.com/semafind/closepairs/models"
	"github.com/semafind/closepairs/points"
	"github.com/semafind/closepairs/render"
	"github.com/semafind/closepairs/viewport"
)

// State is a snapshot of everything a viewer needs besides the drawing.
type State struct {
	Id             uuid.UUID         `json:"id" msgpack:"id"`
	N              int               `json:"n" msgpack:"n"`
	View           models.ViewState  `json:"view" msgpack:"view"`
	Drag           models.DragState  `json:"drag" msgpack:"drag"`
	Dimensions     models.Dimensions `json:"dimensions" msgpack:"dimensions"`
	Scale          float64           `json:"scale" msgpack:"scale"`
	PointCount     int               `json:"pointCount" msgpack:"pointCount"`
	ClosePairCount int               `json:"closePairCount" msgpack:"closePairCount"`
}

// Session is the single owner of one view. Every operation holds the session
// lock so gestures are applied one at a time in arrival order.
type Session struct {
	Id uuid.UUID
	// ---------------------------
	n         int
	view      *viewport.Controller
	generator *points.Generator
	cache     *render.SceneCache
	// ---------------------------
	lastAccessed time.Time
	mu           sync.Mutex
}

func newSession(cfg viewport.Config, generator *points.Generator, cache *render.SceneCache) *Session {
	return &Session{
		Id:           uuid.New(),
		view:         viewport.NewController(cfg, generator.FullExtent()),
		generator:    generator,
		cache:        cache,
		lastAccessed: time.Now(),
	}
}

func (s *Session) touch() {
	s.lastAccessed = time.Now()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastAccessed)
}

// Update runs f with exclusive access to the view and returns the resulting
// state.
func (s *Session) Update(f func(view *viewport.Controller)) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	f(s.view)
	return s.stateLocked()
}

func (s *Session) SetN(n int) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.n = catalog.ClampN(n)
	return s.stateLocked()
}

func (s *Session) Wheel(deltaY float64) State {
	return s.Update(func(view *viewport.Controller) { view.Wheel(deltaY) })
}

func (s *Session) DragStart(x, y float64) State {
	return s.Update(func(view *viewport.Controller) { view.DragStart(x, y) })
}

func (s *Session) DragMove(x, y float64) State {
	return s.Update(func(view *viewport.Controller) { view.DragMove(x, y) })
}

func (s *Session) DragEnd() State {
	return s.Update(func(view *viewport.Controller) { view.DragEnd() })
}

func (s *Session) PointerLeave() State {
	return s.Update(func(view *viewport.Controller) { view.PointerLeave() })
}

func (s *Session) Reset() State {
	return s.Update(func(view *viewport.Controller) { view.Reset() })
}

func (s *Session) Resize(windowWidth, windowHeight float64) State {
	return s.Update(func(view *viewport.Controller) { view.Resize(windowWidth, windowHeight) })
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.stateLocked()
}

func (s *Session) stateLocked() State {
	return State{
		Id:             s.Id,
		N:              s.n,
		View:           s.view.State(),
		Drag:           s.view.DragState(),
		Dimensions:     s.view.Dimensions(),
		Scale:          s.view.Scale(),
		PointCount:     len(s.generator.Points(s.n)),
		ClosePairCount: points.ClosePairCount(s.n),
	}
}

// ---------------------------

func (s *Session) sceneLocked() render.Scene {
	return render.BuildScene(render.SceneInput{
		N:              s.n,
		Points:         s.generator.Points(s.n),
		Pairs:          s.generator.ClosePairs(s.n),
		ClosePairCount: points.ClosePairCount(s.n),
		View:           s.view,
	})
}

func (s *Session) Scene() render.Scene {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.sceneLocked()
}

// SVG renders the current view, reusing a cached document when the same view
// was rendered before by any session.
func (s *Session) SVG() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	key := render.ViewKey{N: s.n, View: s.view.State(), Dims: s.view.Dimensions()}
	return s.cache.GetOrRender(key, func() ([]byte, error) {
		var buf bytes.Buffer
		if err := render.WriteSVG(&buf, s.sceneLocked()); err != nil {
			return nil, fmt.Errorf("could not render session %s: %w", s.Id, err)
		}
		return buf.Bytes(), nil
	})
}
