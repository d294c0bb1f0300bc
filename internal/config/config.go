// Package config persists stratus settings under ~/.stratus and knows
// the layout of that directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the settings stored in the config file. Zero values
// mean "not set" and fall through to flags, environment or defaults.
type Config struct {
	Profile    string `yaml:"profile,omitempty"`
	Region     string `yaml:"region,omitempty"`
	LogFile    string `yaml:"log_file,omitempty"`
	DemoPrefix string `yaml:"demo_prefix,omitempty"`
}

// Dir is the stratus data directory, ~/.stratus.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".stratus"
	}
	return filepath.Join(home, ".stratus")
}

// Path is the config file location, ~/.stratus/config.yaml.
func Path() string {
	return filepath.Join(Dir(), "config.yaml")
}

// LogDir is where operation logs land, ~/.stratus/logs.
func LogDir() string {
	return filepath.Join(Dir(), "logs")
}

// TmpDir is the scratch space for transient files, ~/.stratus/tmp.
func TmpDir() string {
	return filepath.Join(Dir(), "tmp")
}

// DefaultLogFile is the log location used unless overridden.
func DefaultLogFile() string {
	return filepath.Join(LogDir(), "stratus.log")
}

// EnsureTree creates the data directories stratus expects.
func EnsureTree() error {
	for _, dir := range []string{Dir(), LogDir(), TmpDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

// Load reads the config file. A missing file yields an empty config.
func Load() (*Config, error) {
	data, err := os.ReadFile(Path())
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", Path(), err)
	}
	return cfg, nil
}

// Save writes the config file, creating the directory on first use.
func (c *Config) Save() error {
	if err := os.MkdirAll(Dir(), 0755); err != nil {
		return fmt.Errorf("create %s: %w", Dir(), err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(Path(), data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", Path(), err)
	}
	return nil
}

// RememberProfile persists name as the saved profile, leaving the
// other settings alone.
func RememberProfile(name string) error {
	cfg, err := Load()
	if err != nil {
		cfg = &Config{}
	}
	cfg.Profile = name
	return cfg.Save()
}

// SavedProfile returns the persisted profile name, if any.
func SavedProfile() string {
	cfg, err := Load()
	if err != nil {
		return ""
	}
	return cfg.Profile
}
