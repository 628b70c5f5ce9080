package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v8"
	"github.com/semafind/closepairs/httpapi"
	"github.com/semafind/closepairs/session"
	"github.com/semafind/closepairs/viewport"
	"gopkg.in/yaml.v3"
)

// ---------------------------

const CLOSEPAIRS_CONFIG = "CLOSEPAIRS_CONFIG"
const ENV_PREFIX = "CLOSEPAIRS_"

type ConfigMap struct {
	// Global debug flag
	Debug bool `yaml:"debug"`
	// Pretty log output
	PrettyLogOutput bool `yaml:"prettyLogOutput"`
	// HTTP Parameters
	HttpApi httpapi.HttpApiConfig `yaml:"httpApi" envPrefix:"HTTPAPI_"`
	// Drawing surface and zoom limits
	Viewport viewport.Config `yaml:"viewport" envPrefix:"VIEWPORT_"`
	// Session lifetime and caching
	Session session.Config `yaml:"session" envPrefix:"SESSION_"`
}

func DefaultConfig() ConfigMap {
	return ConfigMap{
		HttpApi:  httpapi.DefaultHttpApiConfig(),
		Viewport: viewport.DefaultConfig(),
		Session:  session.DefaultConfig(),
	}
}

// LoadConfig starts from the defaults, overlays the yaml file named by
// CLOSEPAIRS_CONFIG if set and finally any CLOSEPAIRS_ prefixed environment
// variables, e.g. CLOSEPAIRS_HTTPAPI_HTTP_PORT=9000.
func LoadConfig() (ConfigMap, error) {
	configMap := DefaultConfig()
	// Load the file path from the environment variable
	if cFilePath, ok := os.LookupEnv(CLOSEPAIRS_CONFIG); ok {
		cFile, err := os.Open(cFilePath)
		if err != nil {
			return configMap, fmt.Errorf("failed to open config file %s: %w", cFilePath, err)
		}
		defer cFile.Close()
		decoder := yaml.NewDecoder(cFile)
		if err := decoder.Decode(&configMap); err != nil {
			return configMap, fmt.Errorf("failed to parse config file %s: %w", cFilePath, err)
		}
	}
	// ---------------------------
	opts := env.Options{Prefix: ENV_PREFIX, UseFieldNameByDefault: true}
	if err := env.ParseWithOptions(&configMap, opts); err != nil {
		return configMap, fmt.Errorf("failed to parse environment: %w", err)
	}
	// ---------------------------
	if err := configMap.Validate(); err != nil {
		return configMap, fmt.Errorf("invalid config: %w", err)
	}
	return configMap, nil
}

func (c ConfigMap) Validate() error {
	v := c.Viewport
	if v.MaxWidth <= 0 || v.MaxHeight <= 0 {
		return fmt.Errorf("viewport size must be positive, got %vx%v", v.MaxWidth, v.MaxHeight)
	}
	if v.MinZoom <= 0 || v.MinZoom > v.MaxZoom {
		return fmt.Errorf("zoom range [%v, %v] is invalid", v.MinZoom, v.MaxZoom)
	}
	if v.ZoomInFactor <= 1 || v.ZoomOutFactor <= 0 || v.ZoomOutFactor >= 1 {
		return fmt.Errorf("zoom factors in %v out %v are invalid", v.ZoomInFactor, v.ZoomOutFactor)
	}
	if v.FitFraction <= 0 {
		return fmt.Errorf("fit fraction must be positive, got %v", v.FitFraction)
	}
	if c.Session.Timeout <= 0 || c.Session.PruneInterval <= 0 {
		return fmt.Errorf("session timeout and prune interval must be positive")
	}
	return nil
}
