package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// BladeCount is the number of blades on the hub.
const BladeCount = 3

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg, err := load(ConfigPath())
	if err != nil {
		return nil, err
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads defaults overridden by the file at path, ignoring CLI flags.
// An empty path searches the standard locations.
func LoadFile(path string) (*Config, error) {
	cfg, err := load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func load(configPath string) (*Config, error) {
	cfg := Default()

	// Explicit path takes priority over the search locations
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}
	return cfg, nil
}

// Validate checks the settings the viewer cannot run without.
func (c *Config) Validate() error {
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Graphics.Width, c.Graphics.Height)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("%w: camera clip planes near=%g far=%g", ErrInvalidConfig, c.Camera.Near, c.Camera.Far)
	}
	if c.Turbine.MaxSpeed <= 0 {
		return fmt.Errorf("%w: turbine max_speed must be positive", ErrInvalidConfig)
	}
	if c.Turbine.Acceleration <= 0 {
		return fmt.Errorf("%w: turbine acceleration must be positive", ErrInvalidConfig)
	}
	if len(c.Turbine.Blades) != BladeCount {
		return fmt.Errorf("%w: expected %d blades, got %d", ErrInvalidConfig, BladeCount, len(c.Turbine.Blades))
	}
	for i, b := range c.Turbine.Blades {
		// An axis that travels needs a step, or the blade never settles.
		for axis := 0; axis < 3; axis++ {
			if b.Engaged[axis] != b.Disengaged[axis] && b.Step[axis] == 0 {
				return fmt.Errorf("%w: blade %d has zero step on axis %d", ErrInvalidConfig, i, axis)
			}
		}
	}
	if c.Input.ToggleRotation == "" || c.Input.ToggleEngagement == "" {
		return fmt.Errorf("%w: key bindings must not be empty", ErrInvalidConfig)
	}
	if c.Input.ToggleRotation == c.Input.ToggleEngagement {
		return fmt.Errorf("%w: toggle_rotation and toggle_engagement share key %q", ErrInvalidConfig, c.Input.ToggleRotation)
	}
	if k := c.Input.Screenshot; k == c.Input.ToggleRotation || k == c.Input.ToggleEngagement {
		return fmt.Errorf("%w: screenshot shares key %q with a toggle", ErrInvalidConfig, k)
	}
	if a := c.Graphics.Light.Ambient; a < 0 || a > 1 {
		return fmt.Errorf("%w: light ambient %g outside [0, 1]", ErrInvalidConfig, a)
	}
	return nil
}

// AssetPath resolves an asset file name against the asset directory.
func (c *Config) AssetPath(name string) string {
	if name == "" || filepath.IsAbs(name) || c.Assets.Dir == "" {
		return name
	}
	return filepath.Join(c.Assets.Dir, name)
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./turbine.yaml",
		filepath.Join(ConfigDir(), "turbine.yaml"),
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
		return filepath.Join(home, "Library", "Application Support", "WindTurbine")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "WindTurbine")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "windturbine")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "windturbine")
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
