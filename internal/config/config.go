// Package config loads scenec settings with precedence defaults < file <
// flags.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"roboscene/internal/scene"
)

// Config holds everything the scenec binary needs.
type Config struct {
	// Description is the path to the robot description YAML.
	Description string `yaml:"description"`

	// Listen is the viewer websocket address; empty disables the viewer.
	Listen string `yaml:"listen"`

	Log     LogConfig             `yaml:"log"`
	Physics PhysicsConfig         `yaml:"physics"`
	Field   scene.FieldDimensions `yaml:"field"`
}

// LogConfig selects log level and optional rotating file output.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// PhysicsConfig declares the capabilities of the consuming engine.
type PhysicsConfig struct {
	// UnboundedRevolute is true when the engine models revolute
	// constraints without angular limits; continuous joints compile to
	// constraints only in that case.
	UnboundedRevolute bool `yaml:"unbounded_revolute"`
}

// Default returns the baseline configuration.
func Default() *Config {
	return &Config{
		Description: "robot.yaml",
		Listen:      "",
		Log:         LogConfig{Level: "info"},
		Physics:     PhysicsConfig{UnboundedRevolute: false},
		Field:       scene.DefaultFieldDimensions(),
	}
}

// Load returns the defaults merged with the YAML file at path. An empty
// path returns the defaults untouched.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
