package session

import "time"

type Config struct {
	// Sessions idle for longer than this are removed
	Timeout time.Duration `yaml:"timeout"`
	// How often idle sessions are looked for
	PruneInterval time.Duration `yaml:"pruneInterval"`
	// Maximum number of live sessions, 0 for unlimited
	MaxSessions int `yaml:"maxSessions"`
	// Number of rendered documents kept across all sessions
	SceneCacheSize int `yaml:"sceneCacheSize"`
}

func DefaultConfig() Config {
	return Config{
		Timeout:        30 * time.Minute,
		PruneInterval:  time.Minute,
		MaxSessions:    1000,
		SceneCacheSize: 256,
	}
}
