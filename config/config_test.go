package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
	require.Equal(t, 8081, cfg.HttpApi.HttpPort)
	require.Equal(t, 800.0, cfg.Viewport.MaxWidth)
}

func TestLoadConfig_File(t *testing.T) {
	fpath := filepath.Join(t.TempDir(), "config.yaml")
	content := `
debug: true
httpApi:
  httpPort: 9000
viewport:
  maxZoom: 5
session:
  timeout: 10m
`
	require.NoError(t, os.WriteFile(fpath, []byte(content), 0644))
	t.Setenv(CLOSEPAIRS_CONFIG, fpath)
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.True(t, cfg.Debug)
	require.Equal(t, 9000, cfg.HttpApi.HttpPort)
	require.Equal(t, 5.0, cfg.Viewport.MaxZoom)
	require.Equal(t, 10*time.Minute, cfg.Session.Timeout)
	// Untouched values keep their defaults
	require.Equal(t, "localhost", cfg.HttpApi.HttpHost)
	require.Equal(t, 0.4, cfg.Viewport.MinZoom)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("CLOSEPAIRS_DEBUG", "true")
	t.Setenv("CLOSEPAIRS_HTTPAPI_HTTP_PORT", "9100")
	t.Setenv("CLOSEPAIRS_HTTPAPI_WHITE_LIST_IPS", "10.0.0.1,10.0.0.2")
	t.Setenv("CLOSEPAIRS_SESSION_MAX_SESSIONS", "7")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.True(t, cfg.Debug)
	require.Equal(t, 9100, cfg.HttpApi.HttpPort)
	require.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.HttpApi.WhiteListIPs)
	require.Equal(t, 7, cfg.Session.MaxSessions)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Setenv(CLOSEPAIRS_CONFIG, filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := LoadConfig()
	require.Error(t, err)
	// ---------------------------
	fpath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(fpath, []byte("viewport:\n  minZoom: 20\n"), 0644))
	t.Setenv(CLOSEPAIRS_CONFIG, fpath)
	_, err = LoadConfig()
	require.ErrorContains(t, err, "zoom range")
}
