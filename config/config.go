// Package config parses and validates the decomposition run
// configuration from YAML.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is one run's decomposition inputs.
type Config struct {
	// Name registers the decomposition; defaults to "Default".
	Name string `yaml:"name"`
	// MeshPath locates the mesh file.
	MeshPath string `yaml:"meshPath" validate:"required"`
	// Method selects the partitioner realization.
	Method string `yaml:"method" validate:"required,oneof=trivial serial-kway metis-kway distributed-kway"`
	// HaloWidth is the number of halo shells to build.
	HaloWidth int `yaml:"haloWidth" validate:"required,min=1"`
	// StrictHalo fails the build when adjacency resolves to no local
	// entity instead of substituting the boundary sentinel silently.
	StrictHalo bool `yaml:"strictHalo"`
}

var validate = validator.New()

// Parse decodes and validates a YAML document.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{Name: "Default"}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Load reads and parses a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return Parse(data)
}
