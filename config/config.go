// Package config loads runtime settings from EMULATOR_* environment
// variables with sensible defaults for everything else.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "emulator"

// Config holds the process-level settings.
type Config struct {
	HomeURL     string        `envconfig:"HOME_URL" default:"https://www.apple.com"`
	PrefsPath   string        `envconfig:"PREFS_PATH"`
	DevicesPath string        `envconfig:"DEVICES_PATH"`
	LoadTimeout time.Duration `envconfig:"LOAD_TIMEOUT" default:"30s"`
	Debug       bool          `envconfig:"DEBUG"`
}

// Load reads the environment and fills in path defaults under the
// user's config directory.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, err
	}

	if cfg.PrefsPath == "" || cfg.DevicesPath == "" {
		dir, err := configDir()
		if err != nil {
			return Config{}, err
		}
		if cfg.PrefsPath == "" {
			cfg.PrefsPath = filepath.Join(dir, "prefs.json")
		}
		if cfg.DevicesPath == "" {
			cfg.DevicesPath = filepath.Join(dir, "devices.yaml")
		}
	}
	return cfg, nil
}

func configDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "iphone-browser-emulator"), nil
}
