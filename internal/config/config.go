// Package config loads the optional user preferences file. Preferences seed
// schema defaults and logger setup; flags always win over preferences.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const configName = "config.toml"

// Config holds user preferences. Zero values mean "not set".
type Config struct {
	// Unit is the default delay unit (e.g. "ms", "s", "minute").
	Unit string `toml:"unit,omitempty"`

	// Color enables or disables terminal colors; nil means auto.
	Color *bool `toml:"color,omitempty"`

	// Verbosity is the default logging level name ("quiet", "info",
	// "verbose", "debug").
	Verbosity string `toml:"verbosity,omitempty"`
}

// Path returns the preferences file location, honoring XDG_CONFIG_HOME.
func Path() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}

		base = filepath.Join(home, ".config")
	}

	return filepath.Join(base, "subedit", configName)
}

// Load reads the preferences from Path. A missing file yields a zero Config
// and no error.
func Load() (Config, error) {
	path := Path()
	if path == "" {
		return Config{}, nil
	}

	return LoadFrom(path)
}

// LoadFrom reads preferences from an explicit path.
func LoadFrom(path string) (Config, error) {
	var cfg Config

	_, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil
	}

	if err != nil {
		return Config{}, fmt.Errorf("loading %s: %w", path, err)
	}

	return cfg, nil
}
