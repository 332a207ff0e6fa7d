package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory.
const FileName = "cubeburst.yaml"

// Overrides are command-line values applied on top of the file.
// Zero values leave the config untouched.
type Overrides struct {
	ConfigPath string
	Variant    string
	Seed       uint64
	Width      float64
	Height     float64
	FPS        int
	Debug      bool
	LogFile    string
}

// Load loads configuration with priority: defaults < file < overrides.
func Load(o Overrides) (*Config, error) {
	cfg := Default()

	path := o.ConfigPath
	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
		cfg.Source = path
	}

	o.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (o Overrides) apply(cfg *Config) {
	if o.Variant != "" {
		cfg.Scene.Variant = o.Variant
	}
	if o.Seed != 0 {
		cfg.Scene.Seed = o.Seed
	}
	if o.Width > 0 {
		cfg.Viewport.Width = o.Width
	}
	if o.Height > 0 {
		cfg.Viewport.Height = o.Height
	}
	if o.FPS > 0 {
		cfg.Render.FPS = o.FPS
	}
	if o.Debug {
		cfg.Logging.Level = "debug"
	}
	if o.LogFile != "" {
		cfg.Logging.LogFile = o.LogFile
	}
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		FileName,
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "cubeburst")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "cubeburst")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "cubeburst")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "cubeburst")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
