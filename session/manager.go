package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/semafind/closepairs/points"
	"github.com/semafind/closepairs/render"
	"github.com/semafind/closepairs/viewport"
)

var ErrNotFound = errors.New("session not found")
var ErrTooManySessions = errors.New("too many sessions")

type managerMetrics struct {
	activeSessions prometheus.Gauge
	createdCount   prometheus.Counter
	expiredCount   prometheus.Counter
}

// Manager keeps the live sessions in memory. View state is never persisted,
// idle sessions simply expire.
type Manager struct {
	cfg     Config
	viewCfg viewport.Config
	logger  zerolog.Logger
	// ---------------------------
	generator *points.Generator
	cache     *render.SceneCache
	// ---------------------------
	sessions map[uuid.UUID]*Session
	mu       sync.Mutex
	// ---------------------------
	metrics managerMetrics
}

func NewManager(cfg Config, viewCfg viewport.Config) *Manager {
	return &Manager{
		cfg:       cfg,
		viewCfg:   viewCfg,
		logger:    log.With().Str("component", "sessionManager").Logger(),
		generator: points.NewGenerator(),
		cache:     render.NewSceneCache(cfg.SceneCacheSize),
		sessions:  make(map[uuid.UUID]*Session),
		metrics: managerMetrics{
			activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "closepairs_sessions_active",
				Help: "Number of live sessions.",
			}),
			createdCount: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "closepairs_sessions_created_count",
				Help: "Total number of sessions created.",
			}),
			expiredCount: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "closepairs_sessions_expired_count",
				Help: "Total number of sessions removed after being idle.",
			}),
		},
	}
}

func (m *Manager) RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(m.metrics.activeSessions, m.metrics.createdCount, m.metrics.expiredCount)
	m.cache.RegisterMetrics(reg)
}

// Generator is shared by all sessions so point sets are computed once per n.
func (m *Manager) Generator() *points.Generator {
	return m.generator
}

func (m *Manager) Create() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cfg.MaxSessions > 0 && len(m.sessions) >= m.cfg.MaxSessions {
		return nil, ErrTooManySessions
	}
	s := newSession(m.viewCfg, m.generator, m.cache)
	m.sessions[s.Id] = s
	m.metrics.activeSessions.Set(float64(len(m.sessions)))
	m.metrics.createdCount.Inc()
	m.logger.Debug().Str("id", s.Id.String()).Msg("Created session")
	return s, nil
}

func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (m *Manager) Delete(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(m.sessions, id)
	m.metrics.activeSessions.Set(float64(len(m.sessions)))
	m.logger.Debug().Str("id", id.String()).Msg("Deleted session")
	return nil
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Prune removes sessions idle for longer than the timeout and returns how many
// were removed.
func (m *Manager) Prune(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, s := range m.sessions {
		if s.idleSince(now) > m.cfg.Timeout {
			delete(m.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		m.metrics.activeSessions.Set(float64(len(m.sessions)))
		m.metrics.expiredCount.Add(float64(removed))
		m.logger.Debug().Int("removed", removed).Int("remaining", len(m.sessions)).Msg("Pruned sessions")
	}
	return removed
}

// Run prunes idle sessions periodically until the context is cancelled.
func (m *Manager) Run(ctx context.Context) {
	if m.cfg.PruneInterval <= 0 || m.cfg.Timeout <= 0 {
		m.logger.Warn().Msg("Session pruning is disabled")
		return
	}
	ticker := time.NewTicker(m.cfg.PruneInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			m.Prune(now)
		}
	}
}
